package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode controls whether styles emit escape sequences.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
}

// Printer renders themed lines to stdout and stderr. Each stream has its
// own renderer so colour detection follows the stream, not the process.
type Printer struct {
	out, err   io.Writer
	outR, errR *lipgloss.Renderer
	theme      Theme
}

// NewPrinter builds a Printer for the given streams.
func NewPrinter(out, errW io.Writer, theme Theme, mode ColorMode) *Printer {
	p := &Printer{
		out:   out,
		err:   errW,
		outR:  lipgloss.NewRenderer(out),
		errR:  lipgloss.NewRenderer(errW),
		theme: theme,
	}
	switch {
	case mode == ColorNever || theme.Mono:
		p.outR.SetColorProfile(termenv.Ascii)
		p.errR.SetColorProfile(termenv.Ascii)
	case mode == ColorAlways:
		p.outR.SetColorProfile(termenv.ANSI256)
		p.errR.SetColorProfile(termenv.ANSI256)
	}
	return p
}

func (p *Printer) Out() io.Writer { return p.out }
func (p *Printer) Err() io.Writer { return p.err }
func (p *Printer) Theme() Theme   { return p.theme }

// Renderer is the stdout renderer, for callers that build their own styles.
func (p *Printer) Renderer() *lipgloss.Renderer { return p.outR }

// Styles are built on demand so they pick up the renderer's profile.

func (p *Printer) Success(s string) string {
	return p.outR.NewStyle().Foreground(p.theme.Success).Render(s)
}

func (p *Printer) Muted(s string) string {
	return p.outR.NewStyle().Foreground(p.theme.Muted).Render(s)
}

func (p *Printer) Accent(s string) string {
	return p.outR.NewStyle().Foreground(p.theme.Accent).Render(s)
}

func (p *Printer) Title(s string) string {
	return p.outR.NewStyle().Foreground(p.theme.Title).Bold(p.theme.Bold).Render(s)
}

// Rule repeats ch n times in the success colour.
func (p *Printer) Rule(ch string, n int) string {
	return p.Success(strings.Repeat(ch, n))
}

// Line prints parts joined by a single space.
func (p *Printer) Line(parts ...string) {
	fmt.Fprintln(p.out, strings.Join(parts, " "))
}

func (p *Printer) Fail(msg string) {
	style := p.errR.NewStyle().Foreground(p.theme.Error).Bold(!p.theme.Mono)
	fmt.Fprintln(p.err, style.Render(p.theme.SymFail+" "+msg))
}

// Hint prints a muted line on stderr.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.err, p.errR.NewStyle().Foreground(p.theme.Muted).Render(msg))
}

// Frame draws a bordered box around inner using the theme border.
func (p *Printer) Frame(inner string) string {
	return p.outR.NewStyle().
		Border(p.theme.Border).
		BorderForeground(p.theme.Muted).
		Padding(0, 1).
		Render(inner)
}
