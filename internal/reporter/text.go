// The text formatter uses Lip Gloss for styling and Chroma for syntax
// highlighting of Python snippets.
package reporter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/siftlint/sift/internal/rules"
)

// Styles for different parts of the output
var (
	// Color detection using termenv (respects NO_COLOR, CLICOLOR_FORCE, terminal detection)
	useColors = termenv.EnvColorProfile() != termenv.Ascii

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")) // Orange/Yellow

	ruleCodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Underline(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")) // White

	fileLocStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")) // Light gray

	lineNumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")) // Darker gray

	markerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	severityStyles = map[rules.Severity]lipgloss.Style{
		rules.SeverityError: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		rules.SeverityWarning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")), // Orange
		rules.SeverityInfo: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")), // Blue
		rules.SeverityStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245")), // Gray
	}
)

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables/disables colored output. Default: auto-detect.
	Color *bool

	// SyntaxHighlight enables Python syntax highlighting in snippets.
	SyntaxHighlight bool

	// ShowSource shows source code snippets. Default: true.
	ShowSource bool

	// ChromaStyle is the Chroma style name for syntax highlighting.
	// Default: "monokai" for dark terminals, "github" for light.
	ChromaStyle string
}

// DefaultTextOptions returns sensible defaults for text output.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Color:           nil, // auto-detect
		SyntaxHighlight: true,
		ShowSource:      true,
		ChromaStyle:     "", // auto-detect
	}
}

// TextReporter formats diagnostics as styled text output.
type TextReporter struct {
	opts      TextOptions
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewTextReporter creates a new text reporter with the given options.
func NewTextReporter(opts TextOptions) *TextReporter {
	r := &TextReporter{opts: opts}

	colorEnabled := useColors
	if opts.Color != nil {
		colorEnabled = *opts.Color
	}

	if colorEnabled && opts.SyntaxHighlight {
		r.lexer = lexers.Get("python")
		if r.lexer == nil {
			r.lexer = lexers.Fallback
		}
		r.lexer = chroma.Coalesce(r.lexer)

		styleName := opts.ChromaStyle
		if styleName == "" {
			if lipgloss.HasDarkBackground() {
				styleName = "monokai"
			} else {
				styleName = "github"
			}
		}
		r.style = styles.Get(styleName)
		if r.style == nil {
			r.style = styles.Fallback
		}

		r.formatter = formatters.Get("terminal256")
		if r.formatter == nil {
			r.formatter = formatters.Fallback
		}
	}

	return r
}

// Print writes diagnostics to the writer.
func (r *TextReporter) Print(w io.Writer, diags []rules.Diagnostic, sources map[string][]byte) error {
	for _, d := range rules.SortDiagnostics(diags) {
		if err := r.printDiagnostic(w, d, sources[d.File]); err != nil {
			return err
		}
	}
	return nil
}

// printDiagnostic formats a single diagnostic.
func (r *TextReporter) printDiagnostic(w io.Writer, d rules.Diagnostic, source []byte) error {
	colorEnabled := useColors
	if r.opts.Color != nil {
		colorEnabled = *r.opts.Color
	}

	sevStyle, ok := severityStyles[d.Severity]
	if !ok {
		sevStyle = warningStyle
	}

	url := docURL(d.Code)

	// Header line: SEVERITY: Code - URL
	var header string
	if colorEnabled {
		sevLabel := strings.ToUpper(d.Severity.String())
		header = fmt.Sprintf("\n%s %s",
			sevStyle.Render(sevLabel+":"),
			ruleCodeStyle.Render(d.Code))
		if url != "" {
			header += " - " + urlStyle.Render(url)
		}
	} else {
		header = fmt.Sprintf("\n%s: %s", strings.ToUpper(d.Severity.String()), d.Code)
		if url != "" {
			header += " - " + url
		}
	}
	fmt.Fprintln(w, header)

	message := d.Message
	if d.Detail != "" {
		message += " (" + d.Detail + ")"
	}
	if colorEnabled {
		fmt.Fprintln(w, messageStyle.Render(message))
	} else {
		fmt.Fprintln(w, message)
	}

	if r.opts.ShowSource && !d.Location.IsZero() && len(source) > 0 {
		r.printSource(w, d, source, colorEnabled)
	}

	return nil
}

// printSource renders the source code snippet with optional syntax highlighting.
func (r *TextReporter) printSource(w io.Writer, d rules.Diagnostic, source []byte, colorEnabled bool) {
	lines := strings.Split(string(source), "\n")

	start := d.Location.Start.Row
	end := d.Location.End.Row
	if end < start {
		end = start
	}

	if start > len(lines) || start < 1 {
		return
	}
	if end > len(lines) {
		end = len(lines)
	}
	affectedStart, affectedEnd := start, end

	// Pad with 2-4 lines of context
	pad := 2
	if end == start {
		pad = 4
	}

	displayStart := start
	p := 0
	for p < pad {
		expanded := false
		if start > 1 {
			start--
			p++
			expanded = true
		}
		if end < len(lines) {
			end++
			p++
			expanded = true
		}
		if !expanded {
			break
		}
	}

	// File:line header
	fmt.Fprintln(w)
	if colorEnabled {
		fmt.Fprintln(w, fileLocStyle.Render(fmt.Sprintf("%s:%d", d.File, displayStart)))
		fmt.Fprintln(w, separatorStyle.Render("────────────────────"))
	} else {
		fmt.Fprintf(w, "%s:%d\n", d.File, displayStart)
		fmt.Fprintln(w, "--------------------")
	}

	for i := start; i <= end; i++ {
		isAffected := i >= affectedStart && i <= affectedEnd
		lineContent := strings.TrimSuffix(lines[i-1], "\r") // Trim CRLF to avoid artifacts

		var lineNum string
		if colorEnabled {
			lineNum = lineNumStyle.Render(fmt.Sprintf(" %3d │", i))
		} else {
			lineNum = fmt.Sprintf(" %3d |", i)
		}

		var marker string
		if isAffected {
			if colorEnabled {
				marker = markerStyle.Render(">>>")
			} else {
				marker = ">>>"
			}
		} else {
			marker = "   "
		}

		var content string
		if colorEnabled && r.lexer != nil && r.style != nil && r.formatter != nil {
			content = r.highlightLine(lineContent)
		} else {
			content = lineContent
		}

		fmt.Fprintf(w, "%s %s %s\n", lineNum, marker, content)
	}

	if colorEnabled {
		fmt.Fprintln(w, separatorStyle.Render("────────────────────"))
	} else {
		fmt.Fprintln(w, "--------------------")
	}
}

// highlightLine applies syntax highlighting to a single line.
func (r *TextReporter) highlightLine(line string) string {
	iterator, err := r.lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	var buf bytes.Buffer
	err = r.formatter.Format(&buf, r.style, iterator)
	if err != nil {
		return line
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

// PrintTextPlain writes diagnostics without any styling (for non-TTY output).
func PrintTextPlain(w io.Writer, diags []rules.Diagnostic, sources map[string][]byte) error {
	noColor := false
	opts := TextOptions{
		Color:           &noColor,
		SyntaxHighlight: false,
		ShowSource:      true,
	}
	r := NewTextReporter(opts)
	return r.Print(w, diags, sources)
}
