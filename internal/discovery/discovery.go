// Package discovery provides Python source discovery with glob pattern
// support.
package discovery

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoveredFile represents a source file found during discovery.
type DiscoveredFile struct {
	// Path is the path to the file.
	// For explicit file inputs, this preserves the original path (relative or absolute).
	// For discovered files (from directories/globs), this is an absolute path.
	Path string

	// ConfigRoot is the directory to use for config file discovery.
	// This is typically the directory containing the file.
	ConfigRoot string
}

// Options configures file discovery behavior.
type Options struct {
	// Patterns are the glob patterns to match (default: DefaultPatterns()).
	// Supports doublestar patterns like "**/*.py".
	Patterns []string

	// ExcludePatterns are glob patterns to exclude from results.
	ExcludePatterns []string
}

// DefaultPatterns returns the default source patterns: Python modules
// and stub files.
func DefaultPatterns() []string {
	return []string{
		"*.py",
		"*.pyi",
	}
}

// Discover finds source files matching the given inputs.
// Each input can be:
// - A specific file path
// - A directory (searched recursively with default patterns)
// - A glob pattern (expanded with doublestar)
//
// Results are deduplicated by absolute path and sorted.
func Discover(inputs []string, opts Options) ([]DiscoveredFile, error) {
	if len(opts.Patterns) == 0 {
		opts.Patterns = DefaultPatterns()
	}

	// Track seen paths to avoid duplicates
	seen := make(map[string]bool)
	var results []DiscoveredFile

	for _, input := range inputs {
		discovered, err := discoverInput(input, opts, seen)
		if err != nil {
			return nil, err
		}
		results = append(results, discovered...)
	}

	// Sort by path for deterministic output
	slices.SortFunc(results, func(a, b DiscoveredFile) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return results, nil
}

// FileNotFoundError indicates an explicitly named input path does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// discoverInput processes a single input (file, directory, or glob pattern).
func discoverInput(input string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	// Check if the input contains glob characters. If so, treat it as a glob pattern
	// without trying os.Stat (which fails on Windows with glob chars like *).
	if ContainsGlobChars(input) {
		return globMatches(input, opts, seen)
	}

	// Try as a literal file or directory
	info, err := os.Stat(input)
	if err == nil {
		if info.IsDir() {
			return discoverDirectory(input, opts, seen)
		}
		return discoverFile(input, opts, seen)
	}

	if !os.IsNotExist(err) {
		return nil, err
	}

	return nil, &FileNotFoundError{Path: input}
}

// ContainsGlobChars returns true if the path contains glob special characters.
func ContainsGlobChars(path string) bool {
	for _, c := range path {
		switch c {
		case '*', '?', '[', ']':
			return true
		}
	}
	return false
}

// discoverFile processes a specific file path.
// Preserves the original path format (relative or absolute) for user-provided inputs.
func discoverFile(path string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if isExcluded(absPath, opts.ExcludePatterns) {
		return nil, nil
	}

	if seen[absPath] {
		return nil, nil
	}
	seen[absPath] = true

	// Preserve original path for display, but use absolute for ConfigRoot
	df := DiscoveredFile{
		Path:       path,
		ConfigRoot: filepath.Dir(absPath),
	}

	return []DiscoveredFile{df}, nil
}

// discoverDirectory recursively searches a directory for source files.
func discoverDirectory(dir string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var results []DiscoveredFile

	// Build all patterns to check (recursive + direct)
	var patterns []string
	for _, pattern := range opts.Patterns {
		patterns = append(patterns,
			filepath.Join(absDir, "**", pattern), // Recursive
			filepath.Join(absDir, pattern),       // Direct
		)
	}

	for _, pattern := range patterns {
		discovered, err := globMatches(pattern, opts, seen)
		if err != nil {
			return nil, err
		}
		results = append(results, discovered...)
	}

	return results, nil
}

// globMatches expands a glob pattern and returns matching files.
func globMatches(pattern string, opts Options, seen map[string]bool) ([]DiscoveredFile, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	var results []DiscoveredFile

	for _, match := range matches {
		absPath, err := filepath.Abs(match)
		if err != nil {
			return nil, err
		}

		if isExcluded(absPath, opts.ExcludePatterns) {
			continue
		}

		if seen[absPath] {
			continue
		}
		seen[absPath] = true

		results = append(results, DiscoveredFile{
			Path:       absPath,
			ConfigRoot: filepath.Dir(absPath),
		})
	}

	return results, nil
}

// isExcluded checks if a path matches any exclusion pattern using a three-step
// matching strategy:
//
//  1. Match against the full absolute path (for absolute patterns)
//  2. Match against just the filename/basename (for simple patterns like "*.bak")
//  3. Match against each suffix subpath produced by splitPath (for relative patterns
//     like "migrations/*" or "build/**")
//
// The subpath matching (step 3) allows patterns like "migrations/*" to match files
// that are direct children of any "migrations" directory component in the path,
// without matching deeply nested files.
//
// Note: doublestar.Match expects forward slashes as path separators even on Windows.
// We normalize all paths to forward slashes before matching for cross-platform compatibility.
func isExcluded(absPath string, excludePatterns []string) bool {
	absPathSlash := filepath.ToSlash(absPath)
	base := filepath.ToSlash(filepath.Base(absPath))

	for _, pattern := range excludePatterns {
		pattern = filepath.ToSlash(pattern)

		// Step 1: Match against full absolute path
		matched, err := doublestar.Match(pattern, absPathSlash)
		if err == nil && matched {
			return true
		}

		// Step 2: Match against just the filename
		matched, err = doublestar.Match(pattern, base)
		if err == nil && matched {
			return true
		}

		// Step 3: Match against each suffix subpath from splitPath
		parts := splitPath(absPath)
		for i := range parts {
			subpath := filepath.ToSlash(filepath.Join(parts[i:]...))
			matched, err = doublestar.Match(pattern, subpath)
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

// splitPath splits a path into its individual directory and filename components.
// For example, "/home/user/pkg/models.py" returns ["home", "user", "pkg", "models.py"].
// On Windows, "C:\foo\bar" returns ["foo", "bar"] (drive letter is stripped).
func splitPath(path string) []string {
	var parts []string
	for path != "" {
		dir, file := filepath.Split(path)
		if file != "" {
			parts = append([]string{file}, parts...)
		}
		path = filepath.Clean(dir)

		// Stop at Unix root or current directory
		if path == "/" || path == "." {
			break
		}

		// Stop at Windows volume root (e.g., "C:\")
		vol := filepath.VolumeName(path)
		if vol != "" && (path == vol || path == vol+string(filepath.Separator)) {
			break
		}
	}
	return parts
}
