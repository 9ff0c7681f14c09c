package screens

import (
	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/jrsteele09/cds-portal/sessions"
)

// Welcome buttons.
const (
	WelcomeReload    = "reload"
	WelcomeToDo      = "todo"
	WelcomeDashboard = "dashboard"
	WelcomeLogout    = "logout"
)

type WelcomeCallbacks struct {
	OnReload        func()
	OnGoToToDo      func()
	OnLogout        func()
	OnGoToDashboard func()
}

// Welcome greets the signed-in user and offers four ways out.
type Welcome struct {
	callbacks WelcomeCallbacks
}

func NewWelcome(callbacks WelcomeCallbacks) *Welcome {
	return &Welcome{callbacks: callbacks}
}

func (s *Welcome) Reload()        { call(s.callbacks.OnReload) }
func (s *Welcome) GoToToDo()      { call(s.callbacks.OnGoToToDo) }
func (s *Welcome) Logout()        { call(s.callbacks.OnLogout) }
func (s *Welcome) GoToDashboard() { call(s.callbacks.OnGoToDashboard) }

// Press invokes the button named action.
func (s *Welcome) Press(action string) error {
	switch action {
	case WelcomeReload:
		s.Reload()
	case WelcomeToDo:
		s.GoToToDo()
	case WelcomeDashboard:
		s.GoToDashboard()
	case WelcomeLogout:
		s.Logout()
	default:
		return perrors.Wrapf(perrors.ErrUnknownDestination, "[Welcome Press] %q", action)
	}
	return nil
}

type WelcomeView struct {
	DisplayName string
	Email       string
}

func (s *Welcome) View(session sessions.Session) WelcomeView {
	return WelcomeView{DisplayName: session.DisplayName(), Email: session.Email()}
}
