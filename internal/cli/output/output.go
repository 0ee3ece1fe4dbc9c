// Package output renders command results for terminals, pipes and machines.
//
// The effective mode is chosen once per renderer: "auto" becomes styled text
// on a terminal and markdown everywhere else, so piped output stays free of
// escape codes.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how output is rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"     // text on a terminal, markdown otherwise
	ModeText     Mode = "text"     // styled terminal output
	ModeMarkdown Mode = "markdown" // plain markdown
	ModeJSON     Mode = "json"     // machine-readable
)

// Modes lists the accepted mode names, for flag completion.
var Modes = []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}

// ParseMode converts a mode name. The empty string is ModeAuto and "md" is
// accepted for markdown.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "text":
		return ModeText, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	case "json":
		return ModeJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of %s)", s, strings.Join(Modes, ", "))
	}
}

// Renderer writes command output in one mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if parsed, err := ParseMode(string(mode)); err == nil {
		mode = parsed
	} else {
		mode = ModeAuto
	}

	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}

	profile := termenv.Ascii
	if r.EffectiveMode() == ModeText && isTTY && !termenv.EnvNoColor() {
		profile = termenv.ANSI256
	}
	lr := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	lr.SetColorProfile(profile)
	r.styles = NewStyles(lr)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the configured mode, which may be ModeAuto.
func (r *Renderer) Mode() Mode { return r.mode }

// EffectiveMode resolves ModeAuto against the terminal state.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the styles for the renderer's color profile.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Success prints a success message. In JSON mode it goes to the error
// writer so standard output stays a single document.
func (r *Renderer) Success(msg string) {
	switch r.EffectiveMode() {
	case ModeJSON:
		_, _ = fmt.Fprintln(r.errOut, msg)
	case ModeMarkdown:
		_, _ = fmt.Fprintln(r.out, msg)
	default:
		_, _ = fmt.Fprintln(r.out, r.styles.Success.Render("✓ "+msg))
	}
}

// Warning prints a warning to the error writer.
func (r *Renderer) Warning(msg string) {
	if r.EffectiveMode() == ModeText {
		msg = r.styles.Warning.Render("! " + msg)
	} else {
		msg = "warning: " + msg
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

// Error prints an error to the error writer.
func (r *Renderer) Error(msg string) {
	if r.EffectiveMode() == ModeText {
		msg = r.styles.Error.Render("✗ " + msg)
	} else {
		msg = "error: " + msg
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

// Header prints a top-level heading.
func (r *Renderer) Header(title string) {
	r.Println(FormatHeader(title, 1, r.EffectiveMode(), r.styles))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatHeader formats a heading of the given level for mode.
func FormatHeader(title string, level int, mode Mode, styles *Styles) string {
	if mode == ModeMarkdown {
		if level < 1 {
			level = 1
		}
		return strings.Repeat("#", level) + " " + title
	}
	if styles == nil {
		return title
	}
	if level <= 1 {
		return styles.Header1.Render(title)
	}
	return styles.Header2.Render(title)
}

// FormatKeyValue formats a labeled value for mode.
func FormatKeyValue(key, value string, mode Mode, styles *Styles) string {
	if mode == ModeMarkdown {
		return fmt.Sprintf("**%s:** %s", key, value)
	}
	if styles == nil {
		return key + ": " + value
	}
	return styles.Bold.Render(key) + ": " + value
}

// FormatCodeBlock formats source lines for mode.
func FormatCodeBlock(code, lang string, mode Mode) string {
	if mode == ModeMarkdown {
		return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
	}
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
