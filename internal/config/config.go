// Package config provides configuration loading and discovery for sift.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (SIFT_* prefix)
//  3. Config file (closest .sift.toml or sift.toml)
//  4. Built-in defaults
//
// Config file discovery is cascading: starting from the target file's
// directory, walk up the filesystem until a config file is found. The
// closest config wins (no merging).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".sift.toml", "sift.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "SIFT_"

// Config represents the complete sift configuration, resolved per file.
// It is read-only for the duration of one file's analysis.
type Config struct {
	// LineLength is the maximum allowed line width in characters. Fixes
	// whose rendered replacement would exceed it are not attached.
	LineLength int `json:"line-length" koanf:"line-length"`

	// Select lists enabled rule codes or code prefixes ("SIM", "UP007",
	// or "ALL").
	Select []string `json:"select,omitempty" koanf:"select"`

	// Ignore lists disabled rule codes or code prefixes. At equal
	// specificity, Ignore wins over Select.
	Ignore []string `json:"ignore,omitempty" koanf:"ignore"`

	// Fix enables auto-fix attachment during analysis.
	Fix bool `json:"fix,omitempty" koanf:"fix"`

	// Fixable restricts which rules may attach fixes ("ALL" by default).
	Fixable []string `json:"fixable,omitempty" koanf:"fixable"`

	// Unfixable lists rules that must never attach fixes.
	Unfixable []string `json:"unfixable,omitempty" koanf:"unfixable"`

	// External lists codes owned by other tools. They are never reported
	// as unknown by suppression enforcement.
	External []string `json:"external,omitempty" koanf:"external"`

	// Exclude lists doublestar glob patterns for paths to skip during
	// discovery.
	Exclude []string `json:"exclude,omitempty" koanf:"exclude"`

	// Output configures output format and destination.
	Output OutputConfig `json:"output" koanf:"output"`

	// ConfigFile is the path to the config file that was loaded (if any).
	// Metadata, not loaded from config.
	ConfigFile string `json:"-" koanf:"-"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format: text, json, sarif.
	Format string `json:"format,omitempty" koanf:"format"`

	// Path specifies where to write output: stdout, stderr, or a file.
	Path string `json:"path,omitempty" koanf:"path"`

	// ShowSource enables source code snippets in text output.
	ShowSource bool `json:"show-source,omitempty" koanf:"show-source"`

	// FailLevel is the minimum severity that causes a non-zero exit:
	// error, warning, info, style, or none.
	FailLevel string `json:"fail-level,omitempty" koanf:"fail-level"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LineLength: 88,
		Select:     []string{"E", "SIM", "UP", "PGH", "RUF"},
		Fixable:    []string{"ALL"},
		Output: OutputConfig{
			Format:     "text",
			Path:       "stdout",
			ShowSource: true,
		},
	}
}

// Load loads configuration for a target file path. It discovers the
// closest config file, loads it, and applies environment overrides.
func Load(targetPath string) (*Config, error) {
	return loadWithConfigPath(Discover(targetPath))
}

// LoadFromFile loads configuration from a specific config file path,
// without discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return loadWithConfigPath(configPath)
}

func loadWithConfigPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// SIFT_LINE_LENGTH -> line-length, SIFT_OUTPUT_FORMAT -> output.format
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = configPath
	return &cfg, nil
}

// knownHyphenatedKeys maps dot-separated env patterns to their
// hyphenated config keys.
var knownHyphenatedKeys = map[string]string{
	"line.length": "line-length",
	"show.source": "show-source",
	"fail.level":  "fail-level",
}

var allowedEnvTopLevelKeys = map[string]struct{}{
	"line-length": {},
	"select":      {},
	"ignore":      {},
	"fix":         {},
	"fixable":     {},
	"unfixable":   {},
	"external":    {},
	"exclude":     {},
	"output":      {},
}

func envKeyTransform(k, v string) (string, any) {
	s := strings.TrimPrefix(k, EnvPrefix)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", ".")
	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}

	topLevel := s
	if before, _, ok := strings.Cut(s, "."); ok {
		topLevel = before
	}
	if _, ok := allowedEnvTopLevelKeys[topLevel]; !ok {
		return "", nil
	}
	return s, v
}

// Discover finds the closest config file for a target file path, walking
// up the directory tree. Returns empty string if none is found.
func Discover(targetPath string) string {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}

	dir := filepath.Dir(absPath)
	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
