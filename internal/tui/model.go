package tui

import (
	"time"

	"vimpi/internal/config"
	"vimpi/internal/errors"
	"vimpi/internal/files"
	"vimpi/internal/log"
	"vimpi/internal/session"
	"vimpi/internal/tui/components"
	"vimpi/internal/tui/events"
	"vimpi/internal/tui/messages"
	"vimpi/internal/tui/screens"
	"vimpi/internal/tui/views"
	"vimpi/internal/watch"
	"vimpi/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type pane int

const msgWatchFailed = "Directory watch error: "

const (
	treePane pane = iota
	editorPane
)

// Model is the application shell. It owns the screen stack, the session
// state and the panes, and routes key presses between them.
type Model struct {
	cfg  *config.Config
	keys types.KeyMap
	help help.Model

	state *session.State
	queue *events.Queue
	stack *screens.Stack

	tree       *components.FileTree
	emitter    *components.SelectionEmitter
	editor     *components.EditorPane
	controller *session.Controller
	status     *components.StatusBar
	watcher    *watch.Watcher

	focus  pane
	width  int
	height int
}

// Option configures a Model.
type Option func(*options)

type options struct {
	store   files.Store
	watcher *watch.Watcher
}

// WithStore replaces the filesystem used for selection and saving.
func WithStore(store files.Store) Option {
	return func(o *options) { o.store = store }
}

// WithWatcher refreshes the tree from a running directory watcher.
func WithWatcher(w *watch.Watcher) Option {
	return func(o *options) { o.watcher = w }
}

// New builds the shell with both screens installed and Home on top.
func New(cfg *config.Config, opts ...Option) (*Model, error) {
	o := options{store: files.OS{}}
	for _, opt := range opts {
		opt(&o)
	}

	ignore, err := cfg.IgnoreGlobs()
	if err != nil {
		return nil, err
	}

	m := &Model{
		cfg:     cfg,
		keys:    types.DefaultKeyMap(),
		help:    help.New(),
		state:   &session.State{},
		queue:   &events.Queue{},
		stack:   screens.NewStack(),
		status:  components.NewStatusBar(time.Duration(cfg.Notify.TimeoutSeconds) * time.Second),
		watcher: o.watcher,
	}

	m.tree = components.NewFileTree(cfg.Root, components.TreeOptions{
		ShowHidden: cfg.Tree.ShowHidden,
		Ignore:     ignore,
	})
	m.emitter = components.NewSelectionEmitter(m.tree, o.store, m.state, m.queue)
	m.editor = components.NewEditorPane(cfg.Editor.Placeholder, cfg.Editor.LineNumbers)
	m.controller = session.NewController(m.state, m.editor, o.store, cfg.Editor.Placeholder)

	if err := m.stack.Install(screens.Home, homeScreen{m}); err != nil {
		return nil, err
	}
	if err := m.stack.Install(screens.Editor, editorScreen{m}); err != nil {
		return nil, err
	}
	if err := m.stack.Push(screens.Home); err != nil {
		return nil, err
	}

	return m, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	if !m.watcher.IsRunning() {
		if err := m.watcher.Start(); err != nil {
			log.LogWithFields(log.F("error", err)).Warn("Directory watcher did not start")
		}
	}
	m.syncWatches()
	return m.waitForChange()
}

// View implements tea.Model
func (m *Model) View() string {
	screen := m.stack.Current()
	if screen == nil {
		return ""
	}
	return screen.View()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			log.Debug("Quit requested")
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))

	case messages.DirectoryChangedMsg:
		if m.tree.Refresh(msg.Path) {
			log.LogWithFields(log.F("directory", msg.Path)).Debug("Tree refreshed")
		}
		cmds = append(cmds, m.waitForChange())

	case messages.WatcherClosedMsg:
		log.Debug("Directory watcher closed")

	case messages.NoticeExpiredMsg:
		m.status.Expire(msg)

	case messages.ErrorMsg:
		// The watcher keeps running after a failed event.
		log.LogWithError(msg.Err).Warn("Directory watcher error")
		cmds = append(cmds,
			m.status.Show(session.Notice{Text: msgWatchFailed + msg.Err.Error(), Severity: session.Warning}),
			m.waitForChange(),
		)

	default:
		// Cursor blink and other textarea internals.
		if m.focus == editorPane {
			cmds = append(cmds, m.editor.Update(msg))
		}
	}

	cmds = append(cmds, m.drainEvents())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Toggle) {
		from, to, err := m.stack.Toggle(screens.Home, screens.Editor)
		if err != nil {
			log.LogWithError(err).Error("Screen toggle failed")
			return nil
		}
		m.queue.Push(events.ScreenToggled{From: from, To: to})
		return nil
	}

	// Everything else belongs to the Editor screen.
	if m.stack.Top() != screens.Editor {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Save):
		notice, err := m.controller.Save()
		if err != nil {
			log.LogWithFields(log.F("kind", errors.KindOf(err).String())).Debug("Save not completed")
		}
		return m.status.Show(notice)

	case key.Matches(msg, m.keys.Close):
		notice, err := m.controller.Close()
		if err == nil {
			m.focusTree()
		}
		return m.status.Show(notice)

	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == treePane {
			return m.focusEditor()
		}
		m.focusTree()
		return nil

	case key.Matches(msg, m.keys.FocusTree):
		m.focusTree()
		return nil
	}

	if m.focus == editorPane {
		return m.editor.Update(msg)
	}

	if err := m.emitter.Update(msg); err != nil {
		if errors.IsFileReadError(err) {
			return m.status.Show(session.Notice{Text: session.MsgReadFailed, Severity: session.Failure})
		}
		return nil
	}
	m.syncWatches()
	return nil
}

// drainEvents delivers everything queued during this update.
func (m *Model) drainEvents() tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range m.queue.Drain() {
		switch e := ev.(type) {
		case events.ContentLoaded:
			m.editor.Load(e.Path, e.Text)
			cmds = append(cmds, m.focusEditor())

		case events.ScreenToggled:
			log.LogWithFields(log.F("from", e.From), log.F("to", e.To)).Debug("Screen toggled")
			if e.To == screens.Editor && m.focus == editorPane {
				cmds = append(cmds, m.editor.Focus())
			} else {
				m.editor.Blur()
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) focusEditor() tea.Cmd {
	if !m.editor.Enabled() {
		return nil
	}
	m.focus = editorPane
	return m.editor.Focus()
}

func (m *Model) focusTree() {
	m.focus = treePane
	m.editor.Blur()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	treeWidth, editorWidth := views.PaneWidths(width)
	paneHeight := max(1, height-views.Chrome)
	m.tree.SetSize(treeWidth, paneHeight)
	m.editor.SetSize(editorWidth, paneHeight)
}

// syncWatches makes the watched set match the tree's expanded directories.
func (m *Model) syncWatches() {
	if m.watcher == nil {
		return
	}
	open := make(map[string]bool)
	for _, dir := range m.tree.OpenDirs() {
		open[dir] = true
		if err := m.watcher.AddDirectory(dir); err != nil {
			log.LogWithFields(log.F("directory", dir), log.F("error", err)).Debug("Cannot watch directory")
		}
	}
	for _, dir := range m.watcher.Directories() {
		if !open[dir] {
			if err := m.watcher.RemoveDirectory(dir); err != nil {
				log.LogWithFields(log.F("directory", dir), log.F("error", err)).Debug("Cannot unwatch directory")
			}
		}
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes, errs := m.watcher.Changes(), m.watcher.Errors()
	return func() tea.Msg {
		select {
		case change, ok := <-changes:
			if !ok {
				return messages.WatcherClosedMsg{}
			}
			return messages.DirectoryChangedMsg{Path: change.Dir}
		case err, ok := <-errs:
			if !ok {
				return messages.WatcherClosedMsg{}
			}
			return messages.ErrorMsg{Err: err}
		}
	}
}

// State returns the session state.
func (m *Model) State() *session.State {
	return m.state
}

// Screens returns the stack bottom to top.
func (m *Model) Screens() []string {
	return m.stack.Names()
}

// Editor returns the editor pane.
func (m *Model) Editor() *components.EditorPane {
	return m.editor
}

// Tree returns the file tree.
func (m *Model) Tree() *components.FileTree {
	return m.tree
}

// Notice returns the notification on display.
func (m *Model) Notice() session.Notice {
	return m.status.Notice()
}

// homeScreen and editorScreen expose the shell to the views.
type homeScreen struct{ m *Model }

func (s homeScreen) View() string { return views.RenderHome(reader{s.m, screens.Home}) }

type editorScreen struct{ m *Model }

func (s editorScreen) View() string { return views.RenderEditor(reader{s.m, screens.Editor}) }

type reader struct {
	m    *Model
	name string
}

func (r reader) Size() (int, int)   { return r.m.width, r.m.height }
func (r reader) ScreenName() string { return r.name }
func (r reader) TreeView() string   { return r.m.tree.View() }
func (r reader) EditorView() string { return r.m.editor.View() }
func (r reader) StatusView() string { return r.m.status.View() }
func (r reader) TreeFocused() bool  { return r.m.focus == treePane }

func (r reader) HelpView() string {
	if r.name == screens.Home {
		return r.m.help.ShortHelpView(r.m.keys.HomeKeys())
	}
	return r.m.help.View(r.m.keys)
}
