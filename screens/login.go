package screens

import (
	"time"

	"github.com/jrsteele09/cds-portal/internal/clock"
	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/jrsteele09/cds-portal/internal/metrics"
	"github.com/jrsteele09/cds-portal/mockauth"
	"github.com/rs/zerolog/log"
)

const (
	MsgFillAllFields  = "Error: Please fill in all fields"
	MsgLoginSucceeded = "Login successful! Redirecting to dashboard..."
	MsgForgotPassword = "Forgot Password functionality coming soon!"
	MsgIdentityFailed = "Error: Could not verify your identity. Please sign out and try again."
)

// ProviderFactory builds the mocked identity provider for one Login screen. onSignedIn replaces
// the browser-wide sign-in event and must be registered as the provider's listener.
type ProviderFactory func(onSignedIn func()) (*mockauth.Provider, error)

// LoginCallbacks are the transitions the Login screen can request.
type LoginCallbacks struct {
	OnLoginSuccess     func()
	OnSwitchToRegister func()
}

// LoginView is a render snapshot of the Login screen.
type LoginView struct {
	Email       string
	Notice      Notice
	Pending     bool
	OIDC        bool
	Provider    mockauth.Status
	RedirectURL string
	// VerifiedEmail is the email claim of the provider's ID token, once it verifies.
	VerifiedEmail string
}

// Login is the dual-mode login screen: a form whose success is reported after a fixed delay, and
// a mocked hosted-UI sign-in whose completion arrives from the provider.
type Login struct {
	clock     clock.Clock
	dispatch  Dispatcher
	delay     time.Duration
	callbacks LoginCallbacks
	recorder  metrics.Recorder

	// The fields below are only touched through dispatch or by a caller holding the same lock.
	provider *mockauth.Provider
	email    string
	notice   Notice
	oidc     bool
	timer    clock.Timer
	pending  bool
	awaiting bool
	closed   bool
}

// LoginOptions configures NewLogin. Clock, Dispatch and Provider are required.
type LoginOptions struct {
	Clock     clock.Clock
	Dispatch  Dispatcher
	Delay     time.Duration
	Provider  ProviderFactory
	Callbacks LoginCallbacks
	Recorder  metrics.Recorder
}

// NewLogin mounts a Login screen. The provider is created and its status probe started here, so
// unmounting with Close is mandatory.
func NewLogin(opts LoginOptions) (*Login, error) {
	if opts.Clock == nil || opts.Dispatch == nil || opts.Provider == nil {
		return nil, perrors.Wrapf(perrors.ErrAuthError, "[screens NewLogin] clock, dispatcher and provider are required")
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.Nop{}
	}

	s := &Login{
		clock:     opts.Clock,
		dispatch:  opts.Dispatch,
		delay:     opts.Delay,
		callbacks: opts.Callbacks,
		recorder:  opts.Recorder,
	}

	provider, err := opts.Provider(s.onProviderSignedIn)
	if err != nil {
		return nil, perrors.Wrapf(err, "[screens NewLogin] provider")
	}
	if err := provider.Start(); err != nil {
		provider.Close()
		return nil, perrors.Wrapf(err, "[screens NewLogin] provider start")
	}
	s.provider = provider
	return s, nil
}

// Submit validates the form and, when both fields are present, schedules OnLoginSuccess after the
// login delay. A submit while one is already scheduled returns ErrTransitionPending.
func (s *Login) Submit(email, password string) error {
	if s.closed {
		return perrors.ErrProviderClosed
	}
	if s.pending {
		s.recorder.RecordLogin("form", "pending")
		return perrors.Wrapf(perrors.ErrTransitionPending, "[Login Submit]")
	}

	s.email = email
	if email == "" || password == "" {
		s.notice = failure(MsgFillAllFields)
		s.recorder.RecordLogin("form", "missing_fields")
		return perrors.Wrapf(perrors.ErrMissingFields, "[Login Submit]")
	}

	s.notice = info(MsgLoginSucceeded)
	s.pending = true
	s.recorder.RecordLogin("form", "accepted")
	s.timer = s.clock.AfterFunc(s.delay, func() {
		s.dispatch(s.completeFormLogin)
	})
	return nil
}

func (s *Login) completeFormLogin() {
	if s.closed || !s.pending {
		return
	}
	s.pending = false
	s.timer = nil
	s.recorder.RecordLogin("form", "success")
	call(s.callbacks.OnLoginSuccess)
}

// Pending reports whether a form login is waiting for its delay.
func (s *Login) Pending() bool {
	return s.pending
}

// ForgotPassword shows the placeholder notice.
func (s *Login) ForgotPassword() {
	s.notice = info(MsgForgotPassword)
}

// EnableOIDC switches the screen to the hosted-UI sign-in panel.
func (s *Login) EnableOIDC() {
	s.oidc = true
	s.notice = Notice{}
}

// DisableOIDC returns to the regular form. An outstanding hosted-UI attempt still completes.
func (s *Login) DisableOIDC() {
	s.oidc = false
	s.notice = Notice{}
}

// SignIn starts a hosted-UI sign-in attempt and returns the URL the browser would visit.
func (s *Login) SignIn() (string, error) {
	if s.closed {
		return "", perrors.ErrProviderClosed
	}
	redirect, err := s.provider.SigninRedirect()
	if err != nil {
		s.recorder.RecordLogin("oidc", "rejected")
		return "", perrors.Wrapf(err, "[Login SignIn]")
	}
	s.oidc = true
	s.awaiting = true
	s.recorder.RecordLogin("oidc", "redirected")
	return redirect, nil
}

// SignOut starts a hosted-UI sign-out and returns the logout URL. A rejected sign-out leaves an
// outstanding sign-in attempt in place.
func (s *Login) SignOut() (string, error) {
	if s.closed {
		return "", perrors.ErrProviderClosed
	}
	redirect, err := s.provider.SignoutRedirect()
	if err != nil {
		return "", perrors.Wrapf(err, "[Login SignOut]")
	}
	s.awaiting = false
	return redirect, nil
}

// onProviderSignedIn is the provider's listener. It runs on the clock's goroutine, outside the
// controller's lock.
func (s *Login) onProviderSignedIn() {
	s.dispatch(func() {
		if s.closed || !s.awaiting {
			return
		}
		s.awaiting = false

		claims, err := s.provider.Identity()
		if err != nil {
			s.notice = failure(MsgIdentityFailed)
			s.recorder.RecordLogin("oidc", "unverified")
			log.Warn().Err(perrors.Wrapf(perrors.ErrAuthError, "%v", err)).Msg("Hosted UI ID token rejected")
			return
		}
		s.recorder.RecordLogin("oidc", "success")
		log.Info().Str("email", claims.Email).Str("subject", claims.Subject).Msg("Hosted UI sign-in completed")
		call(s.callbacks.OnLoginSuccess)
	})
}

func (s *Login) SwitchToRegister() {
	call(s.callbacks.OnSwitchToRegister)
}

func (s *Login) View() LoginView {
	v := LoginView{
		Email:   s.email,
		Notice:  s.notice,
		Pending: s.pending,
		OIDC:    s.oidc,
	}
	if s.provider != nil {
		v.Provider = s.provider.Status()
		v.RedirectURL = s.provider.LastRedirectURL()
		if v.Provider.IsAuthenticated {
			if claims, err := s.provider.Identity(); err == nil {
				v.VerifiedEmail = claims.Email
			}
		}
	}
	if v.OIDC && v.Provider.Err != nil && !v.Provider.IsLoading {
		v.Notice = failure("Error: " + v.Provider.Err.Error())
	}
	return v
}

// Close unmounts the screen: the pending login timer is cancelled and the provider closed. Later
// timer callbacks that were already dispatched see the closed flag and do nothing.
func (s *Login) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
	s.awaiting = false
	if s.provider != nil {
		s.provider.Close()
	}
}
