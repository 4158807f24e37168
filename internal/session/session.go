// Package session holds the state shared by the editor screen's handlers and
// the save/close controller that reconciles the editor buffer with disk.
package session

// FileRef is an optional, non-owning reference to the selected path.
type FileRef struct {
	path string
	set  bool
}

// Set points the reference at path.
func (r *FileRef) Set(path string) {
	r.path = path
	r.set = true
}

// Path returns the referenced path and whether one is set.
func (r FileRef) Path() (string, bool) {
	return r.path, r.set
}

// IsSet reports whether a path has ever been selected.
func (r FileRef) IsSet() bool {
	return r.set
}

// State is the process-wide session state. It is only touched from the
// event loop, so it carries no lock.
type State struct {
	// Selected is set by every selection attempt and never cleared.
	Selected FileRef
	// FileOpen becomes true after a successful save. Close does not reset it.
	FileOpen bool
}
