// Package portal is the single owner of a browser's Session and current view. Screens request
// transitions through callbacks bound here; the controller decides what is rendered.
package portal

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/cds-portal/internal/clock"
	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/jrsteele09/cds-portal/internal/metrics"
	"github.com/jrsteele09/cds-portal/recipes"
	"github.com/jrsteele09/cds-portal/screens"
	"github.com/jrsteele09/cds-portal/sessions"
	"github.com/jrsteele09/cds-portal/views"
	"github.com/rs/zerolog/log"
)

const MsgRegistered = "Registration successful! Please log in with your new account."

// Deps are the collaborators shared by every controller.
type Deps struct {
	Clock       clock.Clock
	Recorder    metrics.Recorder
	LoginDelay  time.Duration
	NewProvider screens.ProviderFactory
	NewBrowser  func() *recipes.Browser
}

// Controller holds one browser's state. All exported methods are safe for concurrent use; timer
// callbacks from mounted screens are serialised with them.
type Controller struct {
	mu       sync.Mutex
	id       string
	deps     Deps
	lastSeen time.Time
	closed   bool

	session sessions.Session
	view    views.View
	notice  string

	mounted   views.View
	mountErr  error
	login     *screens.Login
	register  *screens.Register
	welcome   *screens.Welcome
	dashboard *screens.Dashboard
	todo      *screens.ToDo
}

// NewController returns a controller in the initial state: unauthenticated, on the register view.
func NewController(id string, deps Deps) *Controller {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Recorder == nil {
		deps.Recorder = metrics.Nop{}
	}
	if deps.NewBrowser == nil {
		deps.NewBrowser = func() *recipes.Browser {
			return recipes.NewBrowser(recipes.NewStaticSearcher(recipes.MockRecipes()), "")
		}
	}

	c := &Controller{id: id, deps: deps, lastSeen: deps.Clock.Now()}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
	return c
}

func (c *Controller) ID() string {
	return c.id
}

// dispatch runs fn under the controller lock unless the controller was closed.
func (c *Controller) dispatch(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	fn()
}

func (c *Controller) do(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSeen = c.deps.Clock.Now()
	fn()
}

// LoginSuccess signs the fixed mock identity in and shows the Welcome screen.
func (c *Controller) LoginSuccess() { c.do(c.loginSuccess) }

// RegisterSuccess shows the Login screen with a one-time confirmation notice.
func (c *Controller) RegisterSuccess() { c.do(c.registerSuccess) }

func (c *Controller) SwitchToRegister() { c.do(func() { c.setView(views.Register) }) }
func (c *Controller) SwitchToLogin()    { c.do(func() { c.setView(views.Login) }) }
func (c *Controller) GoToToDo()         { c.do(func() { c.setView(views.ToDo) }) }
func (c *Controller) GoToDashboard()    { c.do(func() { c.setView(views.Dashboard) }) }

// BackToWelcome always targets Welcome, whatever view preceded ToDo.
func (c *Controller) BackToWelcome() { c.do(func() { c.setView(views.Welcome) }) }

// Logout clears the session and shows the Login screen. It is idempotent.
func (c *Controller) Logout() { c.do(c.logout) }

// Reload drops all state, as a full page reload of the client would.
func (c *Controller) Reload() { c.do(c.reset) }

func (c *Controller) loginSuccess() {
	c.session = sessions.Authenticated(sessions.MockUser())
	log.Info().Str("session", c.id).Str("email", c.session.Email()).Msg("Login succeeded")
	c.setView(views.Welcome)
}

func (c *Controller) registerSuccess() {
	c.notice = MsgRegistered
	c.setView(views.Login)
}

func (c *Controller) logout() {
	c.session = sessions.Session{}
	c.setView(views.Login)
}

func (c *Controller) reset() {
	c.session = sessions.Session{}
	c.notice = ""
	c.unmount()
	c.setView(views.Register)
}

func (c *Controller) setView(v views.View) {
	c.view = v
	c.deps.Recorder.RecordTransition(v.String())
	c.sync()
}

// sync mounts the screen selected for the current state and unmounts the previous one.
func (c *Controller) sync() {
	screen := SelectScreen(c.session, c.view)
	if c.hasMounted() && c.mounted == screen {
		return
	}
	c.unmount()
	c.mount(screen)
}

func (c *Controller) hasMounted() bool {
	return c.login != nil || c.register != nil || c.welcome != nil || c.dashboard != nil || c.todo != nil || c.mountErr != nil
}

func (c *Controller) mount(screen views.View) {
	c.mounted = screen
	switch screen {
	case views.Login:
		login, err := screens.NewLogin(screens.LoginOptions{
			Clock:    c.deps.Clock,
			Dispatch: c.dispatch,
			Delay:    c.deps.LoginDelay,
			Provider: c.deps.NewProvider,
			Callbacks: screens.LoginCallbacks{
				OnLoginSuccess:     c.loginSuccess,
				OnSwitchToRegister: func() { c.setView(views.Register) },
			},
			Recorder: c.deps.Recorder,
		})
		if err != nil {
			log.Error().Err(err).Str("session", c.id).Msg("Failed to mount login screen")
			c.mountErr = err
			return
		}
		c.login = login
	case views.Welcome:
		c.welcome = screens.NewWelcome(screens.WelcomeCallbacks{
			OnReload:        c.reset,
			OnGoToToDo:      func() { c.setView(views.ToDo) },
			OnLogout:        c.logout,
			OnGoToDashboard: func() { c.setView(views.Dashboard) },
		})
	case views.Dashboard:
		c.dashboard = screens.NewDashboard(screens.DashboardCallbacks{
			OnGoToToDo:      func() { c.setView(views.ToDo) },
			OnGoToDashboard: func() { c.setView(views.Dashboard) },
			OnRegister:      func() { c.setView(views.Register) },
			OnLogin:         func() { c.setView(views.Login) },
			OnLogout:        c.logout,
		}, c.deps.NewBrowser())
	case views.ToDo:
		c.todo = screens.NewToDo(screens.ToDoCallbacks{
			OnBack: func() { c.setView(views.Welcome) },
		}, c.deps.Clock.Now)
	default:
		c.register = screens.NewRegister(screens.RegisterCallbacks{
			OnRegisterSuccess: c.registerSuccess,
			OnSwitchToLogin:   func() { c.setView(views.Login) },
		})
	}
}

func (c *Controller) unmount() {
	if c.login != nil {
		c.login.Close()
	}
	c.login, c.register, c.welcome, c.dashboard, c.todo = nil, nil, nil, nil, nil
	c.mountErr = nil
}

// Close unmounts the current screen. Pending timers are cancelled and later callbacks ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.unmount()
}

// Session returns a copy of the current session.
func (c *Controller) Session() sessions.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.session
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// CurrentView is the requested view, which may differ from the rendered screen.
func (c *Controller) CurrentView() views.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// IdleSince reports when the controller was last used.
func (c *Controller) IdleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

func screenNotShown(op string, want views.View) error {
	return perrors.Wrapf(perrors.ErrUnknownView, "[Controller %s] %s screen is not shown", op, want)
}

// withScreen runs fn with the lock held when the rendered screen is want.
func (c *Controller) withScreen(op string, want views.View, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSeen = c.deps.Clock.Now()
	if c.closed || c.mounted != want || !c.hasMounted() || c.mountErr != nil {
		return screenNotShown(op, want)
	}
	return fn()
}

// PressWelcome presses a Welcome screen button.
func (c *Controller) PressWelcome(action string) error {
	return c.withScreen("PressWelcome", views.Welcome, func() error {
		return c.welcome.Press(action)
	})
}

// ToDoBack presses the ToDo screen's back button.
func (c *Controller) ToDoBack() error {
	return c.withScreen("ToDoBack", views.ToDo, func() error {
		c.todo.Back()
		return nil
	})
}

// LoginToRegister follows the Login screen's link to registration.
func (c *Controller) LoginToRegister() error {
	return c.withScreen("LoginToRegister", views.Login, func() error {
		c.login.SwitchToRegister()
		return nil
	})
}

// RegisterToLogin follows the Register screen's link to login.
func (c *Controller) RegisterToLogin() error {
	return c.withScreen("RegisterToLogin", views.Register, func() error {
		c.register.SwitchToLogin()
		return nil
	})
}

func (c *Controller) SubmitLogin(email, password string) error {
	return c.withScreen("SubmitLogin", views.Login, func() error {
		return c.login.Submit(email, password)
	})
}

func (c *Controller) ForgotPassword() error {
	return c.withScreen("ForgotPassword", views.Login, func() error {
		c.login.ForgotPassword()
		return nil
	})
}

func (c *Controller) EnableOIDC() error {
	return c.withScreen("EnableOIDC", views.Login, func() error {
		c.login.EnableOIDC()
		return nil
	})
}

func (c *Controller) DisableOIDC() error {
	return c.withScreen("DisableOIDC", views.Login, func() error {
		c.login.DisableOIDC()
		return nil
	})
}

// SignIn starts a hosted-UI sign-in on the Login screen and returns the would-be redirect URL.
func (c *Controller) SignIn() (string, error) {
	var redirect string
	err := c.withScreen("SignIn", views.Login, func() error {
		var err error
		redirect, err = c.login.SignIn()
		return err
	})
	return redirect, err
}

func (c *Controller) SignOut() (string, error) {
	var redirect string
	err := c.withScreen("SignOut", views.Login, func() error {
		var err error
		redirect, err = c.login.SignOut()
		return err
	})
	return redirect, err
}

func (c *Controller) SubmitRegister(email, password, confirm string) error {
	return c.withScreen("SubmitRegister", views.Register, func() error {
		return c.register.Submit(email, password, confirm)
	})
}

// Navigate presses a Dashboard button.
func (c *Controller) Navigate(dest screens.Destination) error {
	return c.withScreen("Navigate", views.Dashboard, func() error {
		return c.dashboard.Navigate(dest)
	})
}

func (c *Controller) SubmitContact(name, email, message string) error {
	return c.withScreen("SubmitContact", views.Dashboard, func() error {
		return c.dashboard.SubmitContact(name, email, message)
	})
}

func (c *Controller) AddTask(title string) error {
	return c.withScreen("AddTask", views.ToDo, func() error {
		_, err := c.todo.Add(title)
		return err
	})
}

func (c *Controller) ToggleTask(id string) error {
	return c.withScreen("ToggleTask", views.ToDo, func() error {
		return c.todo.Toggle(id)
	})
}

func (c *Controller) DeleteTask(id string) error {
	return c.withScreen("DeleteTask", views.ToDo, func() error {
		return c.todo.Delete(id)
	})
}

func (c *Controller) recipeBrowser(op string) (*recipes.Browser, error) {
	var browser *recipes.Browser
	err := c.withScreen(op, views.Dashboard, func() error {
		browser = c.dashboard.Browser()
		return nil
	})
	return browser, err
}

// SearchRecipes runs a SpiceRack search. The search itself runs without the controller lock.
func (c *Controller) SearchRecipes(ctx context.Context, query string) error {
	browser, err := c.recipeBrowser("SearchRecipes")
	if err != nil {
		return err
	}
	if err := browser.Search(ctx, query); err != nil {
		c.deps.Recorder.RecordSearch("unavailable")
		return err
	}
	c.deps.Recorder.RecordSearch("ok")
	return nil
}

func (c *Controller) SortRecipes(mode recipes.SortMode) error {
	browser, err := c.recipeBrowser("SortRecipes")
	if err != nil {
		return err
	}
	browser.SetSort(mode)
	return nil
}

func (c *Controller) ToggleFavorite(id string) error {
	browser, err := c.recipeBrowser("ToggleFavorite")
	if err != nil {
		return err
	}
	_, err = browser.ToggleFavorite(id)
	return err
}
