// Package screens keeps the ordered stack of installed full-terminal screens.
package screens

import (
	"vimpi/internal/errors"
)

// Names of the screens installed at startup.
const (
	Home   = "Home"
	Editor = "Editor"
)

// Screen is a full-terminal view.
type Screen interface {
	View() string
}

// Stack is an ordered stack of installed screens. The top is the visible one.
type Stack struct {
	installed map[string]Screen
	order     []string
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{installed: make(map[string]Screen)}
}

// Install registers s under name. A name can be installed once.
func (s *Stack) Install(name string, screen Screen) error {
	if _, ok := s.installed[name]; ok {
		return errors.NewScreenError("screen already installed", name, errors.ScreenAlreadyInstalled)
	}
	s.installed[name] = screen
	return nil
}

// Push makes an installed screen visible. A screen already on the stack
// cannot be pushed again.
func (s *Stack) Push(name string) error {
	if _, ok := s.installed[name]; !ok {
		return errors.NewScreenError("screen not installed", name, errors.ScreenNotInstalled)
	}
	for _, n := range s.order {
		if n == name {
			return errors.NewScreenError("screen already active", name, errors.ScreenAlreadyActive)
		}
	}
	s.order = append(s.order, name)
	return nil
}

// Pop removes the top screen and returns its name. The last screen stays.
func (s *Stack) Pop() (string, error) {
	if len(s.order) <= 1 {
		return "", errors.NewScreenError("cannot pop the last screen", s.Top(), errors.ScreenStackBottom)
	}
	top := s.order[len(s.order)-1]
	s.order = s.order[:len(s.order)-1]
	return top, nil
}

// Toggle pushes target when home is on top, and otherwise pops back to the
// previous screen. It returns the names of the screens before and after.
func (s *Stack) Toggle(home, target string) (from, to string, err error) {
	from = s.Top()
	if from == home {
		if err := s.Push(target); err != nil {
			return from, from, err
		}
		return from, target, nil
	}
	if _, err := s.Pop(); err != nil {
		return from, from, err
	}
	return from, s.Top(), nil
}

// Top returns the visible screen's name, or "" when nothing is pushed.
func (s *Stack) Top() string {
	if len(s.order) == 0 {
		return ""
	}
	return s.order[len(s.order)-1]
}

// Current returns the visible screen.
func (s *Stack) Current() Screen {
	return s.installed[s.Top()]
}

// Lookup returns the installed screen called name.
func (s *Stack) Lookup(name string) (Screen, bool) {
	screen, ok := s.installed[name]
	return screen, ok
}

// Names returns the stack bottom to top.
func (s *Stack) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Depth returns the number of screens on the stack.
func (s *Stack) Depth() int {
	return len(s.order)
}
