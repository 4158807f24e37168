package components

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"vimpi/internal/log"
	"vimpi/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/gobwas/glob"
	"github.com/mattn/go-runewidth"
)

// TreeNode represents a node in the file tree
type TreeNode struct {
	Name     string
	Path     string
	IsDir    bool
	Size     int64
	ModTime  time.Time
	IsOpen   bool
	Children []*TreeNode
	Parent   *TreeNode
	Level    int

	// loaded is set once the directory has been listed.
	loaded bool
}

// FileTree is a component that displays a hierarchical file tree
type FileTree struct {
	Root        *TreeNode
	Cursor      int
	VisibleRows []*TreeNode
	Height      int
	Width       int
	Offset      int  // For scrolling
	ShowHidden  bool // Whether to show hidden files

	ignore []glob.Glob
}

// TreeOptions controls what the tree lists.
type TreeOptions struct {
	ShowHidden bool
	Ignore     []glob.Glob
}

// NewFileTree creates a new file tree component
func NewFileTree(rootDir string, opts TreeOptions) *FileTree {
	if abs, err := filepath.Abs(rootDir); err == nil {
		rootDir = abs
	}

	root := &TreeNode{
		Name:   filepath.Base(rootDir),
		Path:   rootDir,
		IsDir:  true,
		IsOpen: true,
	}

	tree := &FileTree{
		Root:       root,
		Height:     20,
		Width:      30,
		ShowHidden: opts.ShowHidden,
		ignore:     opts.Ignore,
	}

	if err := tree.BuildTree(root); err != nil {
		log.LogWithFields(log.F("path", rootDir), log.F("error", err)).Warn("Cannot list directory")
	}
	tree.UpdateVisibleRows()

	return tree
}

// hidden reports whether an entry called name is filtered out.
func (f *FileTree) hidden(name string) bool {
	if !f.ShowHidden && strings.HasPrefix(name, ".") {
		return true
	}
	for _, g := range f.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// BuildTree lists a directory node. Children that were already known keep
// their expansion state and their own listing.
func (f *FileTree) BuildTree(node *TreeNode) error {
	if !node.IsDir {
		return nil
	}

	entries, err := os.ReadDir(node.Path)
	if err != nil {
		return err
	}

	// Sort entries - directories first, then files
	sort.Slice(entries, func(i, j int) bool {
		isDir1 := entries[i].IsDir()
		isDir2 := entries[j].IsDir()
		if isDir1 != isDir2 {
			return isDir1
		}
		return entries[i].Name() < entries[j].Name()
	})

	previous := make(map[string]*TreeNode, len(node.Children))
	for _, child := range node.Children {
		previous[child.Name] = child
	}

	children := make([]*TreeNode, 0, len(entries))
	for _, entry := range entries {
		if f.hidden(entry.Name()) {
			continue
		}

		var size int64
		var modTime time.Time
		if info, err := entry.Info(); err == nil {
			size = info.Size()
			modTime = info.ModTime()
		}

		if old, ok := previous[entry.Name()]; ok && old.IsDir == entry.IsDir() {
			old.Size = size
			old.ModTime = modTime
			children = append(children, old)
			continue
		}

		children = append(children, &TreeNode{
			Name:    entry.Name(),
			Path:    filepath.Join(node.Path, entry.Name()),
			IsDir:   entry.IsDir(),
			Size:    size,
			ModTime: modTime,
			Parent:  node,
			Level:   node.Level + 1,
		})
	}

	node.Children = children
	node.loaded = true
	return nil
}

// HandleKey applies a navigation key. It returns the path of a regular file
// chosen with enter, l or right, or "" if the key chose nothing.
func (f *FileTree) HandleKey(msg tea.KeyMsg) string {
	switch msg.String() {
	case "up", "k":
		f.MoveUp()
	case "down", "j":
		f.MoveDown()
	case "left", "h":
		// If folder is open, close it. Otherwise, go to parent.
		if current := f.SelectedNode(); current != nil {
			if current.IsDir && current.IsOpen && current != f.Root {
				f.Toggle()
			} else {
				f.MoveToParent()
			}
		}
	case "right", "l", "enter":
		current := f.SelectedNode()
		if current == nil {
			return ""
		}
		if !current.IsDir {
			return current.Path
		}
		if !current.IsOpen {
			f.Toggle()
		}
		if current.IsOpen && len(current.Children) > 0 {
			f.MoveDown()
		}
	case ".":
		f.SetShowHidden(!f.ShowHidden)
	}
	return ""
}

// SetSize sets the area the tree renders into.
func (f *FileTree) SetSize(width, height int) {
	f.Width = width
	f.Height = height
	f.EnsureCursorVisible()
}

// Toggle expands or collapses the directory under the cursor
func (f *FileTree) Toggle() {
	node := f.SelectedNode()
	if node == nil || !node.IsDir {
		return
	}

	node.IsOpen = !node.IsOpen
	if node.IsOpen && !node.loaded {
		if err := f.BuildTree(node); err != nil {
			log.LogWithFields(log.F("path", node.Path), log.F("error", err)).Warn("Cannot list directory")
			node.IsOpen = false
		}
	}

	f.UpdateVisibleRows()
}

// SetShowHidden changes the dot-file filter and re-lists every loaded
// directory.
func (f *FileTree) SetShowHidden(show bool) {
	f.ShowHidden = show
	f.reload(f.Root)
	f.UpdateVisibleRows()
}

func (f *FileTree) reload(node *TreeNode) {
	if !node.IsDir || !node.loaded {
		return
	}
	if err := f.BuildTree(node); err != nil {
		log.LogWithFields(log.F("path", node.Path), log.F("error", err)).Debug("Reload failed")
		return
	}
	for _, child := range node.Children {
		f.reload(child)
	}
}

// Refresh re-lists dir if the tree has already loaded it. It reports whether
// the listing was refreshed.
func (f *FileTree) Refresh(dir string) bool {
	node := f.find(f.Root, filepath.Clean(dir))
	if node == nil || !node.loaded {
		return false
	}

	var current string
	if sel := f.SelectedNode(); sel != nil {
		current = sel.Path
	}

	if err := f.BuildTree(node); err != nil {
		log.LogWithFields(log.F("path", dir), log.F("error", err)).Debug("Refresh failed")
		return false
	}
	f.UpdateVisibleRows()

	// Keep the cursor on the same entry when it still exists.
	for i, row := range f.VisibleRows {
		if row.Path == current {
			f.Cursor = i
			break
		}
	}
	f.EnsureCursorVisible()
	return true
}

func (f *FileTree) find(node *TreeNode, path string) *TreeNode {
	if node.Path == path {
		return node
	}
	if !strings.HasPrefix(path, node.Path) {
		return nil
	}
	for _, child := range node.Children {
		if found := f.find(child, path); found != nil {
			return found
		}
	}
	return nil
}

// OpenDirs returns the paths of the expanded directories, root first.
func (f *FileTree) OpenDirs() []string {
	var dirs []string
	for _, row := range f.VisibleRows {
		if row.IsDir && row.IsOpen {
			dirs = append(dirs, row.Path)
		}
	}
	return dirs
}

// UpdateVisibleRows updates the list of visible rows based on which nodes are open
func (f *FileTree) UpdateVisibleRows() {
	f.VisibleRows = f.VisibleRows[:0]
	f.addVisibleNode(f.Root)

	if f.Cursor >= len(f.VisibleRows) {
		f.Cursor = max(0, len(f.VisibleRows)-1)
	}
}

func (f *FileTree) addVisibleNode(node *TreeNode) {
	f.VisibleRows = append(f.VisibleRows, node)
	if node.IsOpen {
		for _, child := range node.Children {
			f.addVisibleNode(child)
		}
	}
}

// SelectedNode returns the node under the cursor.
func (f *FileTree) SelectedNode() *TreeNode {
	if f.Cursor < 0 || f.Cursor >= len(f.VisibleRows) {
		return nil
	}
	return f.VisibleRows[f.Cursor]
}

// MoveUp moves the cursor up one row
func (f *FileTree) MoveUp() {
	if f.Cursor > 0 {
		f.Cursor--
	}
	f.EnsureCursorVisible()
}

// MoveDown moves the cursor down one row
func (f *FileTree) MoveDown() {
	if f.Cursor < len(f.VisibleRows)-1 {
		f.Cursor++
	}
	f.EnsureCursorVisible()
}

// MoveToParent moves the cursor to the parent of the current node
func (f *FileTree) MoveToParent() {
	node := f.SelectedNode()
	if node == nil || node.Parent == nil {
		return
	}

	for i, row := range f.VisibleRows {
		if row == node.Parent {
			f.Cursor = i
			break
		}
	}

	f.EnsureCursorVisible()
}

// rows is the number of tree lines that fit, leaving room for the details line.
func (f *FileTree) rows() int {
	return max(1, f.Height-1)
}

// EnsureCursorVisible makes sure the cursor is visible by adjusting the scroll offset
func (f *FileTree) EnsureCursorVisible() {
	rows := f.rows()

	if f.Cursor < f.Offset {
		f.Offset = f.Cursor
	}
	if f.Cursor >= f.Offset+rows {
		f.Offset = f.Cursor - rows + 1
	}

	maxOffset := max(0, len(f.VisibleRows)-rows)
	if f.Offset > maxOffset {
		f.Offset = maxOffset
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// View returns the rendered view of the file tree
func (f *FileTree) View() string {
	theme := styles.Theme
	if len(f.VisibleRows) == 0 {
		return theme.Disabled.Render("No files found")
	}

	var b strings.Builder
	end := min(len(f.VisibleRows), f.Offset+f.rows())

	for i := f.Offset; i < end; i++ {
		node := f.VisibleRows[i]

		indent := ""
		if node.Level > 0 {
			branch := "├─ "
			if i == len(f.VisibleRows)-1 || node.Parent != f.VisibleRows[i+1].Parent {
				branch = "└─ "
			}
			indent = strings.Repeat("  ", node.Level-1) + branch
		}

		marker := "  "
		if i == f.Cursor {
			marker = "▶ "
		}

		name := truncate(indent+marker+icon(node)+node.Name, f.Width)

		switch {
		case i == f.Cursor:
			b.WriteString(theme.Cursor.Render(name))
		case node.IsDir:
			b.WriteString(theme.Dir.Render(name))
		default:
			b.WriteString(theme.File.Render(name))
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Muted.Render(truncate(f.details(), f.Width)))
	return b.String()
}

// details describes the node under the cursor.
func (f *FileTree) details() string {
	node := f.SelectedNode()
	if node == nil {
		return ""
	}
	when := ""
	if !node.ModTime.IsZero() {
		when = " · " + humanize.Time(node.ModTime)
	}
	if node.IsDir {
		return fmt.Sprintf("%d entries%s", len(node.Children), when)
	}
	return humanize.Bytes(uint64(node.Size)) + when
}

func icon(node *TreeNode) string {
	if node.IsDir {
		if node.IsOpen {
			return "📂 "
		}
		return "📁 "
	}
	switch filepath.Ext(strings.ToLower(node.Name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "🖼️ "
	case ".txt", ".md", ".go", ".js", ".py":
		return "📝 "
	default:
		return "📄 "
	}
}

// truncate shortens s to width terminal cells, marking the cut with an
// ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
