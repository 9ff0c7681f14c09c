package server

import (
	"context"
	"net/http"

	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/jrsteele09/cds-portal/portal"
	"github.com/jrsteele09/cds-portal/recipes"
	"github.com/jrsteele09/cds-portal/screens"
	"github.com/rs/zerolog/log"
)

// PageData is the portal template's input.
type PageData struct {
	portal.Frame
	AppName     string
	Error       string
	AutoRefresh bool
}

// needsRefresh reports whether a timer is about to change the screen, so the page should poll.
func needsRefresh(f portal.Frame) bool {
	if f.Login == nil {
		return false
	}
	if f.Login.Pending {
		return true
	}
	return f.Login.OIDC && !f.Login.Notice.IsError && (f.Login.Provider.IsLoading || f.Login.Provider.IsAuthenticated)
}

// IndexHandler renders whichever screen the controller selects (GET /)
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.controllerFor(w, r)
		if err != nil {
			logError(r.Method, r.URL.Path, err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}

		frame := c.Render()
		data := PageData{
			Frame:       frame,
			AppName:     s.config.GetAppName(),
			Error:       r.URL.Query().Get("error"),
			AutoRefresh: needsRefresh(frame),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.portalPage.Execute(w, data); err != nil {
			logError(r.Method, r.URL.Path, err)
		}
	}
}

// screenAction wraps a form POST: it resolves the controller, runs action and redirects back to
// the index. Errors the screen already shows are not repeated in the redirect.
func (s *Server) screenAction(action func(r *http.Request, c *portal.Controller) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.controllerFor(w, r)
		if err != nil {
			logError(r.Method, r.URL.Path, err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteIndex, "invalid form submission")
			return
		}

		if err := action(r, c); err != nil {
			if perrors.IsRecoverable(err) {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("Screen action rejected")
				redirectSuccess(w, r, RouteIndex)
				return
			}
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Screen action failed")
			redirectWithError(w, r, RouteIndex, userMessage(err))
			return
		}
		redirectSuccess(w, r, RouteIndex)
	}
}

func userMessage(err error) string {
	switch {
	case perrors.Is(err, perrors.ErrUnknownView):
		return "That action is not available on this screen."
	case perrors.Is(err, perrors.ErrUnknownDestination):
		return "Unknown destination."
	case perrors.Is(err, perrors.ErrNotFound):
		return "That item no longer exists."
	default:
		return "Something went wrong. Please try again."
	}
}

// RegisterSubmitHandler handles the registration form (POST /register)
func (s *Server) RegisterSubmitHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		if r.PostFormValue("action") == "login" {
			return c.RegisterToLogin()
		}
		return c.SubmitRegister(r.PostFormValue("email"), r.PostFormValue("password"), r.PostFormValue("confirmPassword"))
	})
}

// LoginSubmitHandler handles the login form (POST /login)
func (s *Server) LoginSubmitHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		if r.PostFormValue("action") == "register" {
			return c.LoginToRegister()
		}
		return c.SubmitLogin(r.PostFormValue("email"), r.PostFormValue("password"))
	})
}

func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return s.screenAction(func(_ *http.Request, c *portal.Controller) error {
		return c.ForgotPassword()
	})
}

func (s *Server) EnableOIDCHandler() http.HandlerFunc {
	return s.screenAction(func(_ *http.Request, c *portal.Controller) error {
		return c.EnableOIDC()
	})
}

func (s *Server) DisableOIDCHandler() http.HandlerFunc {
	return s.screenAction(func(_ *http.Request, c *portal.Controller) error {
		return c.DisableOIDC()
	})
}

// OIDCSignInHandler starts the mocked hosted-UI sign-in. The browser stays on the portal; the
// would-be redirect URL is shown on the login screen instead.
func (s *Server) OIDCSignInHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		redirect, err := c.SignIn()
		if err == nil {
			log.Debug().Str("session", c.ID()).Str("redirect", redirect).Msg("Hosted UI sign-in started")
		}
		return err
	})
}

func (s *Server) OIDCSignOutHandler() http.HandlerFunc {
	return s.screenAction(func(_ *http.Request, c *portal.Controller) error {
		_, err := c.SignOut()
		return err
	})
}

// WelcomeActionHandler presses a Welcome button (POST /welcome/{action})
func (s *Server) WelcomeActionHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		return c.PressWelcome(r.PathValue("action"))
	})
}

// DashboardNavigateHandler presses a dashboard button (POST /dashboard/{destination})
func (s *Server) DashboardNavigateHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		return c.Navigate(screens.Destination(r.PathValue("destination")))
	})
}

func (s *Server) ContactSubmitHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		return c.SubmitContact(r.PostFormValue("name"), r.PostFormValue("email"), r.PostFormValue("message"))
	})
}

func (s *Server) RecipeSearchHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		ctx, cancel := context.WithTimeout(r.Context(), s.config.GetRecipeSearchTimeout())
		defer cancel()
		return c.SearchRecipes(ctx, r.PostFormValue("query"))
	})
}

func (s *Server) RecipeSortHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		return c.SortRecipes(recipes.ParseSortMode(r.PostFormValue("sort")))
	})
}

func (s *Server) RecipeFavoriteHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		return c.ToggleFavorite(r.PathValue("id"))
	})
}

func (s *Server) ToDoAddHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		return c.AddTask(r.PostFormValue("title"))
	})
}

func (s *Server) ToDoToggleHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		return c.ToggleTask(r.PathValue("id"))
	})
}

func (s *Server) ToDoBackHandler() http.HandlerFunc {
	return s.screenAction(func(_ *http.Request, c *portal.Controller) error {
		return c.ToDoBack()
	})
}

func (s *Server) ToDoDeleteHandler() http.HandlerFunc {
	return s.screenAction(func(r *http.Request, c *portal.Controller) error {
		return c.DeleteTask(r.PathValue("id"))
	})
}
