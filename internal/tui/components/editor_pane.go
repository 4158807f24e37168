package components

import (
	"strings"

	"vimpi/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// tabGlyph stands in for a tab inside the textarea, which would otherwise
// expand it to spaces.
const tabGlyph = "⇥"

// EditorPane holds the editing buffer shown on the Editor screen.
type EditorPane struct {
	textarea textarea.Model

	// loaded is what the buffer was last filled with. It is returned by
	// Text until the user edits, since the textarea drops control
	// characters and turns lone carriage returns into newlines.
	loaded  string
	edited  bool
	enabled bool

	// crlf and tabs record how loaded was encoded for the textarea so that
	// Text can restore line endings and tabs after an edit.
	crlf bool
	tabs bool

	path     string
	language string

	width  int
	height int
}

// NewEditorPane returns a disabled pane showing placeholder.
func NewEditorPane(placeholder string, lineNumbers bool) *EditorPane {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.ShowLineNumbers = lineNumbers
	ta.Prompt = ""

	e := &EditorPane{textarea: ta}
	e.SetSize(60, 20)
	e.Reset(placeholder)
	return e
}

// Load fills the pane from a ContentLoaded event.
func (e *EditorPane) Load(path, text string) {
	e.path = path
	e.language = Language(path, text)
	e.OnContentLoaded(text)
}

// OnContentLoaded replaces the buffer with text and enables editing.
func (e *EditorPane) OnContentLoaded(text string) {
	e.textarea.SetValue(e.encode(text))
	e.loaded = text
	e.edited = false
	e.enabled = true
}

// Reset puts the placeholder back and disables editing.
func (e *EditorPane) Reset(placeholder string) {
	e.textarea.Blur()
	e.textarea.SetValue(placeholder)
	e.loaded = placeholder
	e.edited = false
	e.enabled = false
	e.crlf = false
	e.tabs = false
	e.path = ""
	e.language = ""
}

// Text returns the buffer.
func (e *EditorPane) Text() string {
	if !e.edited {
		return e.loaded
	}
	return e.decode(e.textarea.Value())
}

// encode prepares text for the textarea. A file using CRLF throughout is
// shown with LF endings, and tabs become tabGlyph unless the text already
// contains one.
func (e *EditorPane) encode(text string) string {
	lines := strings.Count(text, "\n")
	e.crlf = lines > 0 && strings.Count(text, "\r\n") == lines
	text = strings.ReplaceAll(text, "\r\n", "\n")

	e.tabs = !strings.Contains(text, tabGlyph)
	if e.tabs {
		text = strings.ReplaceAll(text, "\t", tabGlyph)
	}
	return text
}

func (e *EditorPane) decode(value string) string {
	if e.tabs {
		value = strings.ReplaceAll(value, tabGlyph, "\t")
	}
	if e.crlf {
		value = strings.ReplaceAll(value, "\n", "\r\n")
	}
	return value
}

// Enabled reports whether a file is loaded for editing.
func (e *EditorPane) Enabled() bool {
	return e.enabled
}

// Focus gives the textarea the cursor. A disabled pane cannot be focused.
func (e *EditorPane) Focus() tea.Cmd {
	if !e.enabled {
		return nil
	}
	return e.textarea.Focus()
}

func (e *EditorPane) Blur() {
	e.textarea.Blur()
}

func (e *EditorPane) Focused() bool {
	return e.textarea.Focused()
}

// SetSize sets the outer size, title line included.
func (e *EditorPane) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.textarea.SetWidth(max(1, width))
	e.textarea.SetHeight(max(1, height-1))
}

// Update passes input to the textarea while the pane is enabled.
func (e *EditorPane) Update(msg tea.Msg) tea.Cmd {
	if !e.enabled {
		return nil
	}
	before := e.textarea.Value()
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	if e.textarea.Value() != before {
		e.edited = true
	}
	return cmd
}

// Title describes the loaded file: path, size and language.
func (e *EditorPane) Title() string {
	if !e.enabled {
		return "No file open"
	}
	parts := []string{e.path, humanize.Bytes(uint64(len(e.Text())))}
	if e.language != "" {
		parts = append(parts, e.language)
	}
	if e.edited {
		parts = append(parts, "modified")
	}
	return strings.Join(parts, " · ")
}

func (e *EditorPane) View() string {
	theme := styles.Theme
	title := theme.Title.Render(truncate(e.Title(), e.width))
	if !e.enabled {
		return title + "\n" + theme.Disabled.Render(e.loaded)
	}
	return title + "\n" + theme.EditorBox.Render(e.textarea.View())
}
