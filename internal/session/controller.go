package session

import (
	"vimpi/internal/errors"
	"vimpi/internal/files"
	"vimpi/internal/log"
)

// User-facing notification texts.
const (
	MsgNoFileSelected = "No file selected."
	MsgFileGone       = "File does not exist. At least, not anymore."
	MsgSaved          = "File Saved Successfully."
	MsgSaveFailed     = "Failed to save file."
	MsgFileNotOpen    = "file not open"
	MsgReadFailed     = "Could not read file."
)

// Severity grades a Notice.
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Failure
)

// Notice is a short message for the notification banner. An empty Text means
// nothing should be shown.
type Notice struct {
	Text     string
	Severity Severity
}

// Buffer is the editor pane as seen by the controller.
type Buffer interface {
	Text() string
	Reset(placeholder string)
}

// Controller implements save and close against the session state.
type Controller struct {
	state       *State
	buffer      Buffer
	store       files.Store
	placeholder string
}

// NewController wires a controller. placeholder is the text the buffer is
// reset to on close.
func NewController(state *State, buffer Buffer, store files.Store, placeholder string) *Controller {
	return &Controller{
		state:       state,
		buffer:      buffer,
		store:       store,
		placeholder: placeholder,
	}
}

// Save overwrites the selected file with the buffer. The returned notice is
// always set; the error classifies anything other than success.
func (c *Controller) Save() (Notice, error) {
	path, ok := c.state.Selected.Path()
	if !ok {
		return Notice{Text: MsgNoFileSelected, Severity: Warning}, errors.ErrNoFileSelected
	}

	// The file may have gone away since it was selected. This narrows the
	// race but a write can still fail after the check.
	if !files.IsRegular(c.store, path) {
		err := errors.NewFileError("file no longer exists", path, errors.FileNotFound, nil)
		log.LogWithError(err).Warn("Save skipped")
		return Notice{Text: MsgFileGone, Severity: Warning}, err
	}

	if err := c.store.WriteText(path, c.buffer.Text()); err != nil {
		saveErr := errors.NewSaveError(path, err)
		log.LogWithError(saveErr).Error("Save failed")
		return Notice{Text: MsgSaveFailed, Severity: Failure}, saveErr
	}

	c.state.FileOpen = true
	log.LogWithFields(log.F("path", path)).Info("File saved")
	return Notice{Text: MsgSaved, Severity: Success}, nil
}

// Close resets the buffer when a file is open. FileOpen is left as it is.
func (c *Controller) Close() (Notice, error) {
	if !c.state.FileOpen {
		return Notice{Text: MsgFileNotOpen, Severity: Warning}, errors.ErrFileNotOpen
	}

	c.buffer.Reset(c.placeholder)
	log.Debug("Editor buffer reset")
	return Notice{}, nil
}
