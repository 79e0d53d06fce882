package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// An empty colour means "no colour" for that role.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending lipgloss.TerminalColor
	Bold                                          bool
	BoxUnchecked, BoxChecked                      string
	SymOK, SymFail                                string
	Border                                        lipgloss.Border
	Mono                                          bool
}

var Themes = []string{"classic", "neon", "mono"}

// ThemeByName returns the named theme. Matching is case-insensitive.
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "classic":
		return Theme{
			Name:  "classic",
			Title: lipgloss.NoColor{}, Bold: true,
			Muted: lipgloss.Color("8"), Accent: lipgloss.Color("12"),
			Success: lipgloss.Color("2"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("214"),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymOK: "✔", SymFail: "✖",
			Border: lipgloss.RoundedBorder(),
		}, nil
	case "neon":
		return Theme{
			Name:  "neon",
			Title: lipgloss.Color("13"), Bold: true,
			Muted: lipgloss.Color("8"), Accent: lipgloss.Color("14"),
			Success: lipgloss.Color("10"), Error: lipgloss.Color("9"), Pending: lipgloss.Color("11"),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymOK: "✔", SymFail: "✖",
			Border: lipgloss.RoundedBorder(),
		}, nil
	case "mono":
		return Theme{
			Name:  "mono",
			Title: lipgloss.NoColor{}, Muted: lipgloss.NoColor{}, Accent: lipgloss.NoColor{},
			Success: lipgloss.NoColor{}, Error: lipgloss.NoColor{}, Pending: lipgloss.NoColor{},
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymOK: "ok", SymFail: "error:",
			Border: lipgloss.ASCIIBorder(),
			Mono:   true,
		}, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(Themes, ", "))
}
