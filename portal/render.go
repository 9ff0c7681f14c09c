package portal

import (
	"github.com/jrsteele09/cds-portal/sessions"
	"github.com/jrsteele09/cds-portal/views"
)

// SelectScreen picks the screen to render for a session and requested view. ToDo is checked
// before the authentication guard, so it is reachable without signing in.
func SelectScreen(session sessions.Session, current views.View) views.View {
	switch {
	case current == views.ToDo:
		return views.ToDo
	case session.IsAuthenticated && current.RequiresAuth():
		return current
	case current == views.Login:
		return views.Login
	default:
		return views.Register
	}
}
