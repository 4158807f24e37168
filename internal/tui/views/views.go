// Package views lays out the Home and Editor screens from the shell's state.
package views

import (
	"strings"

	"vimpi/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Reader defines what the views read from the shell
type Reader interface {
	Size() (width, height int)
	ScreenName() string
	TreeView() string
	EditorView() string
	StatusView() string
	HelpView() string
	TreeFocused() bool
}

// Chrome is the number of rows the Editor screen spends outside the panes:
// header, status line, help footer and the pane borders.
const Chrome = 5

func renderHeader(r Reader) string {
	width, _ := r.Size()
	header := styles.Theme.Header
	if width > 0 {
		header = header.Width(width)
	}
	return header.Render("vimpi · " + r.ScreenName())
}

// RenderHome draws the landing screen.
func RenderHome(r Reader) string {
	theme := styles.Theme
	commands := theme.Commands.Render(strings.Join([]string{
		theme.Title.Render("Vim in Go"),
		"",
		"ctrl+f - file Explorer",
		"ctrl+q - quit",
	}, "\n"))

	body := lipgloss.JoinVertical(lipgloss.Center,
		renderBanner(),
		commands,
	)

	width, height := r.Size()
	if width > 0 && height > 2 {
		body = lipgloss.Place(width, height-2, lipgloss.Center, lipgloss.Center, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(r),
		body,
		theme.Help.Render(r.HelpView()),
	)
}

// RenderEditor draws the tree and editor panes side by side.
func RenderEditor(r Reader) string {
	theme := styles.Theme

	treeStyle, editorStyle := theme.Focused, theme.Pane
	if !r.TreeFocused() {
		treeStyle, editorStyle = theme.Pane, theme.Focused
	}

	width, height := r.Size()
	treeWidth, editorWidth := PaneWidths(width)
	paneHeight := max(1, height-Chrome)
	if width > 0 {
		treeStyle = treeStyle.Width(treeWidth).Height(paneHeight)
		editorStyle = editorStyle.Width(editorWidth).Height(paneHeight)
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		treeStyle.Render(r.TreeView()),
		editorStyle.Render(r.EditorView()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(r),
		panes,
		r.StatusView(),
		theme.Help.Render(r.HelpView()),
	)
}

// PaneWidths splits the terminal width between the panes, borders excluded.
func PaneWidths(width int) (tree, editor int) {
	tree = max(20, width/3)
	editor = max(20, width-tree-4)
	return tree, editor
}

func renderBanner() string {
	return styles.Theme.Banner.Render(`
 '##::::'##:'####:'##::::'##:'########::'####:
  ##:::: ##:. ##:: ###::'###: ##.... ##:. ##::
  ##:::: ##:: ##:: ####'####: ##:::: ##:: ##::
  ##:::: ##:: ##:: ## ### ##: ########::: ##::
 . ##:: ##::: ##:: ##. #: ##: ##.....:::: ##::
 :. ## ##:::: ##:: ##:.:: ##: ##::::::::: ##::
 ::. ###::::'####: ##:::: ##: ##::::::::'####:
 :::...:::::....::..:::::..::..:::::::::....::
`)
}
