package portal

import (
	"github.com/jrsteele09/cds-portal/screens"
	"github.com/jrsteele09/cds-portal/sessions"
	"github.com/jrsteele09/cds-portal/views"
)

// Frame is everything a page render needs. Exactly one of the screen fields is set, matching
// Screen, unless MountError is.
type Frame struct {
	SessionID  string
	Screen     views.View
	Session    sessions.Session
	Notice     string
	MountError error

	Login        *screens.LoginView
	Register     *screens.RegisterView
	Welcome      *screens.WelcomeView
	Dashboard    *screens.DashboardView
	ToDo         *screens.ToDoView
	Destinations []screens.Destination
}

// Render snapshots the rendered screen and consumes the one-time notice.
func (c *Controller) Render() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSeen = c.deps.Clock.Now()

	f := Frame{
		SessionID:  c.id,
		Screen:     SelectScreen(c.session, c.view),
		Session:    c.session,
		Notice:     c.notice,
		MountError: c.mountErr,
	}
	c.notice = ""

	switch {
	case c.login != nil:
		v := c.login.View()
		f.Login = &v
	case c.register != nil:
		v := c.register.View()
		f.Register = &v
	case c.welcome != nil:
		v := c.welcome.View(c.session)
		f.Welcome = &v
	case c.dashboard != nil:
		v := c.dashboard.View()
		f.Dashboard = &v
		f.Destinations = screens.Destinations()
	case c.todo != nil:
		v := c.todo.View()
		f.ToDo = &v
	}

	c.deps.Recorder.RecordRender(f.Screen.String())
	return f
}
