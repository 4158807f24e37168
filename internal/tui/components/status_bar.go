package components

import (
	"time"

	"vimpi/internal/session"
	"vimpi/internal/tui/messages"
	"vimpi/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusBar is the notification banner. Each notice expires after timeout
// unless a newer one replaced it first.
type StatusBar struct {
	notice  session.Notice
	id      int
	timeout time.Duration
}

func NewStatusBar(timeout time.Duration) *StatusBar {
	return &StatusBar{timeout: timeout}
}

// Show displays n and returns the command that expires it. An empty notice
// shows nothing.
func (s *StatusBar) Show(n session.Notice) tea.Cmd {
	if n.Text == "" {
		return nil
	}
	s.id++
	s.notice = n
	if s.timeout <= 0 {
		return nil
	}
	id := s.id
	return tea.Tick(s.timeout, func(time.Time) tea.Msg {
		return messages.NoticeExpiredMsg{ID: id}
	})
}

// Expire clears the banner if msg belongs to the notice on display.
func (s *StatusBar) Expire(msg messages.NoticeExpiredMsg) {
	if msg.ID == s.id {
		s.notice = session.Notice{}
	}
}

// Notice returns the notice on display.
func (s *StatusBar) Notice() session.Notice {
	return s.notice
}

func (s *StatusBar) View() string {
	if s.notice.Text == "" {
		return ""
	}

	theme := styles.Theme
	switch s.notice.Severity {
	case session.Success:
		return theme.Success.Render("✓ " + s.notice.Text)
	case session.Warning:
		return theme.Warning.Render("! " + s.notice.Text)
	case session.Failure:
		return theme.Error.Render("✗ " + s.notice.Text)
	default:
		return theme.Info.Render(s.notice.Text)
	}
}
