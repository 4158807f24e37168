package components

import (
	"vimpi/internal/errors"
	"vimpi/internal/files"
	"vimpi/internal/log"
	"vimpi/internal/session"
	"vimpi/internal/tui/events"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectionEmitter turns a file chosen in the tree into a ContentLoaded event.
type SelectionEmitter struct {
	Tree *FileTree

	store files.Store
	state *session.State
	queue *events.Queue
}

// NewSelectionEmitter wraps tree. Selections are recorded in state and
// announced on queue.
func NewSelectionEmitter(tree *FileTree, store files.Store, state *session.State, queue *events.Queue) *SelectionEmitter {
	return &SelectionEmitter{
		Tree:  tree,
		store: store,
		state: state,
		queue: queue,
	}
}

// Update forwards navigation keys to the tree and selects the file it
// chooses. A failed selection is returned so the caller can notify the user.
func (s *SelectionEmitter) Update(msg tea.KeyMsg) error {
	path := s.Tree.HandleKey(msg)
	if path == "" {
		return nil
	}
	return s.Select(path)
}

// Select reads path and queues its text. The selected reference is updated
// even when the read fails, in which case nothing is queued.
func (s *SelectionEmitter) Select(path string) error {
	if info, err := s.store.Stat(path); err == nil && info.IsDir() {
		dirErr := errors.NewFileError("cannot select a directory", path, errors.InvalidPath, nil)
		log.LogWithError(dirErr).Error("Selection rejected")
		return dirErr
	}

	s.state.Selected.Set(path)

	text, err := s.store.ReadText(path)
	if err != nil {
		readErr := errors.NewFileReadError(path, err)
		log.LogWithError(readErr).Warn("Selection failed")
		return readErr
	}

	s.queue.Push(events.ContentLoaded{Path: path, Text: text})
	log.LogWithFields(log.F("path", path), log.F("bytes", len(text))).Debug("File selected")
	return nil
}
