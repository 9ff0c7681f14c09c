// Package mockauth simulates an external OIDC identity provider: it walks through the
// loading/authenticated/error states of a hosted-UI redirect flow on fixed delays, without any
// network exchange.
package mockauth

import (
	"sync"
	"time"

	"github.com/jrsteele09/cds-portal/internal/clock"
	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"
)

const (
	DefaultProfileEmail   = "user@cognito.example.com"
	DefaultProfileSubject = "mock-cognito-subject"
)

// Delays are the simulated latencies of the provider.
type Delays struct {
	Probe    time.Duration // initial session probe
	Redirect time.Duration // hosted UI round trip
	Notify   time.Duration // authenticated -> sign-in notification
	Signout  time.Duration // logout round trip
}

func DefaultDelays() Delays {
	return Delays{
		Probe:    1500 * time.Millisecond,
		Redirect: 1 * time.Second,
		Notify:   500 * time.Millisecond,
		Signout:  1 * time.Second,
	}
}

// Provider is a mocked OIDC client session. Every transition is delayed on the configured clock.
// The sign-in listener is called once per successful attempt, after the notify delay, outside the
// provider's lock.
type Provider struct {
	mu       sync.Mutex
	clock    clock.Clock
	delays   Delays
	hostedUI *HostedUI
	tokens   *TokenIssuer
	profile  Profile
	failWith error

	onSignedIn func()

	status  Status
	lastURL string
	timers  map[int]clock.Timer
	nextID  int
	closed  bool

	attempts      atomic.Int64
	notifications atomic.Int64
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

func WithClock(c clock.Clock) ProviderOption {
	return func(p *Provider) {
		p.clock = c
	}
}

func WithDelays(d Delays) ProviderOption {
	return func(p *Provider) {
		p.delays = d
	}
}

func WithHostedUI(h *HostedUI) ProviderOption {
	return func(p *Provider) {
		p.hostedUI = h
	}
}

// WithSignInListener sets the callback that replaces the browser-global "login success" event.
func WithSignInListener(fn func()) ProviderOption {
	return func(p *Provider) {
		p.onSignedIn = fn
	}
}

// WithFailure makes every sign-in attempt end in the error state with err.
func WithFailure(err error) ProviderOption {
	return func(p *Provider) {
		p.failWith = err
	}
}

func WithProfile(profile Profile) ProviderOption {
	return func(p *Provider) {
		p.profile = profile
	}
}

// New returns a provider in the loading state. Call Start to run the initial probe.
func New(options ...ProviderOption) (*Provider, error) {
	p := &Provider{
		clock:   clock.Real(),
		delays:  DefaultDelays(),
		profile: Profile{Email: DefaultProfileEmail, Subject: DefaultProfileSubject},
		status:  Status{IsLoading: true},
		timers:  make(map[int]clock.Timer),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.hostedUI == nil {
		return nil, perrors.Wrapf(perrors.ErrAuthError, "[mockauth New] hosted UI is required")
	}

	tokens, err := NewTokenIssuer(p.hostedUI.Authority(), p.hostedUI.ClientID(), p.clock.Now)
	if err != nil {
		return nil, perrors.Wrapf(err, "[mockauth New]")
	}
	p.tokens = tokens
	return p, nil
}

// Start schedules the initial status probe, after which the provider settles unauthenticated
// with its profile populated.
func (p *Provider) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return perrors.ErrProviderClosed
	}

	p.after(p.delays.Probe, func() func() {
		profile := p.profile
		p.status = Status{User: &profile}
		return nil
	})
	return nil
}

// SigninRedirect starts a sign-in attempt and returns the hosted UI URL the browser would be
// sent to. It fails with ErrTransitionPending while another transition is in flight.
func (p *Provider) SigninRedirect() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return "", perrors.ErrProviderClosed
	}
	if p.status.IsLoading {
		return "", perrors.Wrapf(perrors.ErrTransitionPending, "[mockauth SigninRedirect]")
	}

	attempt := p.attempts.Inc()
	req := p.hostedUI.AuthCodeURL()
	p.lastURL = req.URL
	p.status.IsLoading = true
	p.status.Err = nil
	log.Info().Int64("attempt", attempt).Str("url", req.URL).Msg("Redirecting to hosted UI")

	p.after(p.delays.Redirect, func() func() {
		p.status.IsLoading = false
		if p.failWith != nil {
			p.status.IsAuthenticated = false
			p.status.Err = perrors.Wrapf(perrors.ErrAuthError, "%v", p.failWith)
			log.Warn().Int64("attempt", attempt).Err(p.failWith).Msg("Hosted UI sign-in failed")
			return nil
		}

		profile := p.profile
		token, err := p.tokens.Issue(profile)
		if err != nil {
			p.status.Err = perrors.Wrapf(perrors.ErrAuthError, "%v", err)
			return nil
		}
		profile.IDToken = token
		p.status.IsAuthenticated = true
		p.status.User = &profile

		p.after(p.delays.Notify, func() func() {
			return p.notify
		})
		return nil
	})
	return req.URL, nil
}

// SignoutRedirect starts a sign-out and returns the hosted UI logout URL. Any sign-in
// notification still pending is dropped.
func (p *Provider) SignoutRedirect() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return "", perrors.ErrProviderClosed
	}
	if p.status.IsLoading {
		return "", perrors.Wrapf(perrors.ErrTransitionPending, "[mockauth SignoutRedirect]")
	}

	p.stopTimers()
	logoutURL := p.hostedUI.LogoutURL()
	p.lastURL = logoutURL
	p.status.IsLoading = true
	p.status.Err = nil
	log.Info().Str("url", logoutURL).Msg("Redirecting to hosted UI logout")

	p.after(p.delays.Signout, func() func() {
		p.status.IsLoading = false
		p.status.IsAuthenticated = false
		if p.status.User != nil {
			p.status.User.IDToken = ""
		}
		return nil
	})
	return logoutURL, nil
}

// Status returns a snapshot of the provider state.
func (p *Provider) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status.clone()
}

// LastRedirectURL is the most recent hosted UI URL produced by a sign-in or sign-out.
func (p *Provider) LastRedirectURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastURL
}

// Identity verifies the current ID token and returns its claims.
func (p *Provider) Identity() (*IDClaims, error) {
	p.mu.Lock()
	status := p.status.clone()
	p.mu.Unlock()

	if !status.IsAuthenticated || status.User == nil || status.User.IDToken == "" {
		return nil, perrors.Wrapf(perrors.ErrAuthError, "[mockauth Identity] not signed in")
	}
	return p.tokens.Parse(status.User.IDToken)
}

// Attempts is the number of sign-in attempts started.
func (p *Provider) Attempts() int64 {
	return p.attempts.Load()
}

// Notifications is the number of sign-in notifications delivered.
func (p *Provider) Notifications() int64 {
	return p.notifications.Load()
}

// Close cancels every pending transition. A listener call that already started may still be
// running when Close returns; listeners guard against that themselves.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.stopTimers()
}

func (p *Provider) notify() {
	p.notifications.Inc()
	if p.onSignedIn != nil {
		p.onSignedIn()
	}
}

// after schedules fn on the clock. fn runs under p.mu and may return a function to run once the
// lock is released. Caller holds p.mu.
func (p *Provider) after(d time.Duration, fn func() func()) {
	id := p.nextID
	p.nextID++
	p.timers[id] = p.clock.AfterFunc(d, func() {
		p.mu.Lock()
		if _, pending := p.timers[id]; p.closed || !pending {
			p.mu.Unlock()
			return
		}
		delete(p.timers, id)
		then := fn()
		p.mu.Unlock()

		if then != nil {
			then()
		}
	})
}

// stopTimers cancels every pending transition. Caller holds p.mu.
func (p *Provider) stopTimers() {
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
}
