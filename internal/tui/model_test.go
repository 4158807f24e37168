package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vimpi/internal/config"
	"vimpi/internal/session"
	"vimpi/internal/tui/messages"
	"vimpi/internal/tui/screens"
	"vimpi/internal/watch"
	"vimpi/pkg/testutils"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ctrlF = tea.KeyMsg{Type: tea.KeyCtrlF}
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	ctrlW = tea.KeyMsg{Type: tea.KeyCtrlW}
	ctrlQ = tea.KeyMsg{Type: tea.KeyCtrlQ}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, root string) *Model {
	t.Helper()
	cfg := config.New()
	cfg.Root = root
	cfg.Notify.TimeoutSeconds = 0
	m, err := New(cfg)
	require.NoError(t, err)
	return m
}

func press(m *Model, keys ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func TestModelInitialization(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	assert.Equal(t, []string{screens.Home}, m.Screens())
	assert.False(t, m.State().Selected.IsSet())
	assert.False(t, m.State().FileOpen)
	assert.False(t, m.Editor().Enabled())
	assert.Equal(t, config.DefaultPlaceholder, m.Editor().Text())
	assert.Nil(t, m.Init(), "no watcher, no startup command")
}

func TestModelRejectsBadIgnorePattern(t *testing.T) {
	cfg := config.New()
	cfg.Root = t.TempDir()
	cfg.Tree.Ignore = []string{"[unclosed"}
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	press(m, ctrlF)
	assert.Equal(t, []string{screens.Home, screens.Editor}, m.Screens())

	press(m, ctrlF)
	assert.Equal(t, []string{screens.Home}, m.Screens())

	for i := 0; i < 6; i++ {
		press(m, ctrlF)
		assert.LessOrEqual(t, len(m.Screens()), 2)
	}
	assert.Equal(t, []string{screens.Home}, m.Screens())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	for _, k := range []tea.KeyMsg{ctrlQ, {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestHomeIgnoresEditorBindings(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))
	m := newTestModel(t, root)

	press(m, runes("j"), enter, ctrlS, ctrlW)
	assert.Empty(t, m.Notice().Text)
	assert.False(t, m.State().Selected.IsSet())
	assert.Equal(t, []string{screens.Home}, m.Screens())
}

func TestEditScenario(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))
	m := newTestModel(t, root)

	press(m, ctrlF, runes("j"), enter)
	require.True(t, m.Editor().Enabled())
	assert.Equal(t, "hello", m.Editor().Text())
	assert.Equal(t, editorPane, m.focus, "loading content focuses the editor")

	press(m, runes(" world"))
	assert.Equal(t, "hello world", m.Editor().Text())

	press(m, ctrlS)
	assert.Equal(t, session.MsgSaved, m.Notice().Text)
	assert.True(t, m.State().FileOpen)

	assert.Equal(t, "hello world", testutils.ReadFile(t, path))

	press(m, ctrlW)
	assert.False(t, m.Editor().Enabled())
	assert.Equal(t, config.DefaultPlaceholder, m.Editor().Text())
	assert.Equal(t, treePane, m.focus)
	assert.True(t, m.State().FileOpen)
}

func TestSaveAndCloseNotices(t *testing.T) {
	root := t.TempDir()
	m := newTestModel(t, root)
	press(m, ctrlF)

	press(m, ctrlS)
	assert.Equal(t, session.MsgNoFileSelected, m.Notice().Text)

	press(m, ctrlW)
	assert.Equal(t, session.MsgFileNotOpen, m.Notice().Text)
	assert.Equal(t, config.DefaultPlaceholder, m.Editor().Text())

	// A file removed after selection is not recreated by save.
	path := filepath.Join(root, "gone.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	m.Tree().Refresh(root)
	press(m, runes("j"), enter)
	require.True(t, m.Editor().Enabled())
	require.NoError(t, os.Remove(path))

	press(m, ctrlS)
	assert.Equal(t, session.MsgFileGone, m.Notice().Text)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestReadFailureNotice(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe}, 0644))
	m := newTestModel(t, root)

	press(m, ctrlF, runes("j"), enter)
	assert.Equal(t, session.MsgReadFailed, m.Notice().Text)
	assert.Equal(t, session.Failure, m.Notice().Severity)
	assert.False(t, m.Editor().Enabled())

	selected, ok := m.State().Selected.Path()
	require.True(t, ok)
	assert.Equal(t, path, selected)
}

func TestLoadedTextMatchesDisk(t *testing.T) {
	root := t.TempDir()
	contents := map[string]string{
		"plain.txt": "hello",
		"tabs.go":   "package main\n\tfunc main() {}\n",
		"crlf.txt":  "one\r\ntwo\r\n",
		"utf8.md":   "héllo wörld ✓\n",
		"empty.txt": "",
	}
	testutils.WriteFiles(t, root, contents)
	m := newTestModel(t, root)

	for name, text := range contents {
		require.NoError(t, m.emitter.Select(filepath.Join(root, name)))
		m.drainEvents()
		assert.Equal(t, text, m.Editor().Text(), name)
	}
}

func TestEditedFileKeepsLineEndingsOnSave(t *testing.T) {
	tests := []struct {
		name, file, loaded, want string
	}{
		{"crlf", "crlf.txt", "one\r\ntwo\r\n", "one\r\ntwo\r\nx"},
		{"tabs", "Makefile", "all:\n\tgo build\n", "all:\n\tgo build\nx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			path := filepath.Join(root, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.loaded), 0644))
			m := newTestModel(t, root)

			press(m, ctrlF, runes("j"), enter)
			require.True(t, m.Editor().Enabled())
			press(m, runes("x"), ctrlS)
			require.Equal(t, session.MsgSaved, m.Notice().Text)

			assert.Equal(t, tt.want, testutils.ReadFile(t, path))
		})
	}
}

// A failed read moves the selection but leaves the buffer alone, so save
// writes whatever the editor held to the newly selected file.
func TestSaveAfterReadFailureWritesStaleBuffer(t *testing.T) {
	t.Run("previous file", func(t *testing.T) {
		root := t.TempDir()
		good := filepath.Join(root, "a.txt")
		bad := filepath.Join(root, "b.bin")
		require.NoError(t, os.WriteFile(good, []byte("hello"), 0644))
		require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe}, 0644))
		m := newTestModel(t, root)

		press(m, ctrlF, runes("j"), enter)
		require.Equal(t, "hello", m.Editor().Text())

		press(m, esc, runes("j"), enter)
		require.Equal(t, session.MsgReadFailed, m.Notice().Text)
		selected, _ := m.State().Selected.Path()
		require.Equal(t, bad, selected)

		press(m, ctrlS)
		assert.Equal(t, session.MsgSaved, m.Notice().Text)
		assert.Equal(t, "hello", testutils.ReadFile(t, bad))
		assert.Equal(t, "hello", testutils.ReadFile(t, good))
	})

	t.Run("placeholder", func(t *testing.T) {
		root := t.TempDir()
		bad := filepath.Join(root, "b.bin")
		require.NoError(t, os.WriteFile(bad, []byte{0xff, 0xfe}, 0644))
		m := newTestModel(t, root)

		press(m, ctrlF, runes("j"), enter)
		require.Equal(t, session.MsgReadFailed, m.Notice().Text)
		assert.False(t, m.Editor().Enabled())

		press(m, ctrlS)
		assert.Equal(t, session.MsgSaved, m.Notice().Text)
		assert.Equal(t, config.DefaultPlaceholder, testutils.ReadFile(t, bad))
	})
}

func TestFocusSwitching(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0644))
	m := newTestModel(t, root)
	press(m, ctrlF)

	// The editor cannot take focus before a file is loaded.
	press(m, tab)
	assert.Equal(t, treePane, m.focus)

	press(m, runes("j"), enter)
	assert.Equal(t, editorPane, m.focus)

	press(m, esc)
	assert.Equal(t, treePane, m.focus)
	assert.False(t, m.Editor().Focused())

	press(m, tab)
	assert.Equal(t, editorPane, m.focus)
	assert.True(t, m.Editor().Focused())

	// Leaving the Editor screen blurs the textarea, returning refocuses it.
	press(m, ctrlF)
	assert.False(t, m.Editor().Focused())
	press(m, ctrlF)
	assert.True(t, m.Editor().Focused())
}

func TestDirectoryChanged(t *testing.T) {
	root := t.TempDir()
	m := newTestModel(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "new.txt"), nil, 0644))
	m.Update(messages.DirectoryChangedMsg{Path: root})

	var found bool
	for _, row := range m.Tree().VisibleRows {
		if row.Name == "new.txt" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWatcherFeedsTree(t *testing.T) {
	root := t.TempDir()
	w, err := watch.New()
	require.NoError(t, err)
	defer w.Stop()

	cfg := config.New()
	cfg.Root = root
	m, err := New(cfg, WithWatcher(w))
	require.NoError(t, err)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.True(t, w.IsRunning(), "Init starts the watcher")
	assert.Contains(t, w.Directories(), m.Tree().Root.Path)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "watched.txt"), nil, 0644))

	got := make(chan tea.Msg, 1)
	go func() { got <- cmd() }()

	select {
	case msg := <-got:
		changed, ok := msg.(messages.DirectoryChangedMsg)
		require.True(t, ok)
		assert.Equal(t, m.Tree().Root.Path, changed.Path)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for directory change")
	}
}

func newWatchedModel(t *testing.T, root string) (*Model, *watch.Watcher) {
	t.Helper()
	w, err := watch.New()
	require.NoError(t, err)
	t.Cleanup(w.Stop)

	cfg := config.New()
	cfg.Root = root
	cfg.Notify.TimeoutSeconds = 0
	m, err := New(cfg, WithWatcher(w))
	require.NoError(t, err)
	return m, w
}

func TestCollapsedDirectoryIsUnwatched(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))
	m, w := newWatchedModel(t, root)
	m.Init()
	sub := filepath.Join(m.Tree().Root.Path, "sub")

	// sub is empty, so expanding it leaves the cursor on it.
	press(m, ctrlF, runes("j"), enter)
	assert.Contains(t, w.Directories(), sub)

	press(m, runes("h"))
	assert.NotContains(t, w.Directories(), sub)
	assert.Contains(t, w.Directories(), m.Tree().Root.Path)
}

func TestWatcherErrorNotice(t *testing.T) {
	m, w := newWatchedModel(t, t.TempDir())
	m.Init()

	_, cmd := m.Update(messages.ErrorMsg{Err: fmt.Errorf("event queue overflow")})
	assert.Equal(t, session.Warning, m.Notice().Severity)
	assert.Contains(t, m.Notice().Text, "event queue overflow")

	// The error re-arms the listener, which reports the watcher closing.
	require.NotNil(t, cmd)
	w.Stop()
	assert.Equal(t, messages.WatcherClosedMsg{}, cmd())
}

func TestNoticeExpiry(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	press(m, ctrlF, ctrlS)
	require.Equal(t, session.MsgNoFileSelected, m.Notice().Text)

	m.Update(messages.NoticeExpiredMsg{ID: 1})
	assert.Empty(t, m.Notice().Text)
}

func TestView(t *testing.T) {
	root := t.TempDir()
	testutils.WriteFiles(t, root, map[string]string{"a.txt": "hello", "docs/guide.md": "# guide"})
	m := newTestModel(t, root)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	home := testutils.StripANSI(m.View())
	assert.Contains(t, home, "Vim in Go")
	assert.Contains(t, home, "ctrl+q - quit")

	press(m, ctrlF)
	editor := testutils.StripANSI(m.View())
	assert.Contains(t, editor, "docs")
	assert.Contains(t, editor, "a.txt")
	assert.Contains(t, editor, "No file open")
	assert.NotContains(t, editor, "Vim in Go")
}
