package styles

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Palette is the colour set a theme file provides. Empty entries keep the
// default colour.
type Palette struct {
	Primary  string `yaml:"primary"`
	Accent   string `yaml:"accent"`
	Text     string `yaml:"text"`
	Muted    string `yaml:"muted"`
	Border   string `yaml:"border"`
	Success  string `yaml:"success"`
	Warning  string `yaml:"warning"`
	Error    string `yaml:"error"`
	Info     string `yaml:"info"`
	Cursor   string `yaml:"cursor"`
	Selected string `yaml:"selected"`
}

// DefaultPalette is used when no theme file is configured.
func DefaultPalette() Palette {
	return Palette{
		Primary:  "#7B61FF",
		Accent:   "#4F4FB7",
		Text:     "#D8DEE9",
		Muted:    "#888888",
		Border:   "#626262",
		Success:  "#73F59F",
		Warning:  "#EBCB8B",
		Error:    "#FF5F5F",
		Info:     "#5A9",
		Cursor:   "#6B5ECD",
		Selected: "#73F59F",
	}
}

// ThemeStyles defines the core UI styles
type ThemeStyles struct {
	Palette Palette

	Header    lipgloss.Style
	Banner    lipgloss.Style
	Commands  lipgloss.Style
	Pane      lipgloss.Style
	Focused   lipgloss.Style
	Title     lipgloss.Style
	Dir       lipgloss.Style
	File      lipgloss.Style
	Cursor    lipgloss.Style
	Muted     lipgloss.Style
	Help      lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Disabled  lipgloss.Style
	EditorBox lipgloss.Style
}

// Theme is the active style set. Apply replaces it.
var Theme = New(DefaultPalette())

// New builds the styles for a palette.
func New(p Palette) ThemeStyles {
	return ThemeStyles{
		Palette: p,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(p.Accent)).
			Padding(0, 1),
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Primary)),
		Commands: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Primary)).
			Foreground(lipgloss.Color(p.Text)).
			Padding(1, 2),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)),
		Focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Primary)),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Primary)),
		Dir: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81A1C1")).
			Bold(true),
		File: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(p.Cursor)).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Info)),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Info)),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Warning)).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)).
			Bold(true),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Italic(true),
		EditorBox: lipgloss.NewStyle().
			Padding(0, 1),
	}
}

// LoadPalette reads a YAML palette from path, filling gaps from the default.
func LoadPalette(path string) (Palette, error) {
	p := DefaultPalette()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("error reading theme file: %w", err)
	}

	var loaded Palette
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return p, fmt.Errorf("error parsing theme file: %w", err)
	}

	merge(&p.Primary, loaded.Primary)
	merge(&p.Accent, loaded.Accent)
	merge(&p.Text, loaded.Text)
	merge(&p.Muted, loaded.Muted)
	merge(&p.Border, loaded.Border)
	merge(&p.Success, loaded.Success)
	merge(&p.Warning, loaded.Warning)
	merge(&p.Error, loaded.Error)
	merge(&p.Info, loaded.Info)
	merge(&p.Cursor, loaded.Cursor)
	merge(&p.Selected, loaded.Selected)
	return p, nil
}

func merge(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Apply loads the theme at path and makes it active. On error the default
// theme stays active and the error is returned.
func Apply(path string) error {
	p, err := LoadPalette(path)
	if err != nil {
		Theme = New(DefaultPalette())
		return err
	}
	Theme = New(p)
	return nil
}
