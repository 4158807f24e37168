// Package events is the typed event queue between the file tree, the screen
// stack and the editor. The shell drains it once per update.
package events

// Kind tags an Event.
type Kind int

const (
	KindContentLoaded Kind = iota
	KindScreenToggled
)

func (k Kind) String() string {
	switch k {
	case KindContentLoaded:
		return "content_loaded"
	case KindScreenToggled:
		return "screen_toggled"
	default:
		return "unknown"
	}
}

// Event is one of the variants below.
type Event interface {
	Kind() Kind
}

// ContentLoaded carries the full text of a freshly selected file.
type ContentLoaded struct {
	Path string
	Text string
}

func (ContentLoaded) Kind() Kind { return KindContentLoaded }

// ScreenToggled records a transition made by the toggle binding.
type ScreenToggled struct {
	From string
	To   string
}

func (ScreenToggled) Kind() Kind { return KindScreenToggled }

// Queue is a FIFO used from a single goroutine.
type Queue struct {
	items []Event
}

// Push appends e.
func (q *Queue) Push(e Event) {
	q.items = append(q.items, e)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.items)
}

// Drain removes and returns every pending event in order.
func (q *Queue) Drain() []Event {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
