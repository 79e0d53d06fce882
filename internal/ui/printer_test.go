package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPrinter(t *testing.T, theme string, mode ColorMode) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	th, err := ThemeByName(theme)
	require.NoError(t, err)
	var out, errBuf bytes.Buffer
	return NewPrinter(&out, &errBuf, th, mode), &out, &errBuf
}

func TestThemeByName(t *testing.T) {
	for _, name := range Themes {
		th, err := ThemeByName(name)
		require.NoError(t, err, name)
		require.Equal(t, name, th.Name)
		require.NotEmpty(t, th.BoxChecked)
	}

	th, err := ThemeByName("")
	require.NoError(t, err)
	require.Equal(t, "classic", th.Name)

	th, err = ThemeByName("NEON")
	require.NoError(t, err)
	require.Equal(t, "neon", th.Name)

	_, err = ThemeByName("solarized")
	require.Error(t, err)
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"auto", ColorAuto, false},
		{"Always", ColorAlways, false},
		{"never", ColorNever, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPrinterNeverEmitsPlainText(t *testing.T) {
	p, out, errBuf := newTestPrinter(t, "classic", ColorNever)

	p.Line(p.Success("Adding Todo:"), "Buy milk")
	p.Fail("boom")

	require.Equal(t, "Adding Todo: Buy milk\n", out.String())
	require.Equal(t, "✖ boom\n", errBuf.String())
}

func TestPrinterAlwaysEmitsEscapes(t *testing.T) {
	p, out, _ := newTestPrinter(t, "classic", ColorAlways)
	p.Line(p.Success("label"))
	require.Contains(t, out.String(), "\x1b[")
	require.Contains(t, out.String(), "label")
}

func TestMonoThemeDisablesColor(t *testing.T) {
	p, out, errBuf := newTestPrinter(t, "mono", ColorAlways)
	p.Line(p.Success("label"))
	p.Fail("bad")
	require.Equal(t, "label\n", out.String())
	require.Equal(t, "error: bad\n", errBuf.String())
}

func TestRule(t *testing.T) {
	p, _, _ := newTestPrinter(t, "classic", ColorNever)
	require.Equal(t, "*****", p.Rule("*", 5))
}

func TestStyledHelpersPlain(t *testing.T) {
	p, _, _ := newTestPrinter(t, "mono", ColorNever)
	require.Equal(t, "7.", p.Accent("7."))
	require.Equal(t, "Todos", p.Title("Todos"))

	framed := p.Frame("hi")
	require.Equal(t, "+----+\n| hi |\n+----+", framed)
}
