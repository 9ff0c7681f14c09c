package screens_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/cds-portal/internal/clock"
	"github.com/jrsteele09/cds-portal/internal/config"
	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/jrsteele09/cds-portal/mockauth"
	"github.com/jrsteele09/cds-portal/screens"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type loginFixture struct {
	clock      *clock.Fake
	screen     *screens.Login
	successes  int
	toRegister int
	failWith   error
}

func serialDispatcher() screens.Dispatcher {
	var mu sync.Mutex
	return func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		fn()
	}
}

// queuedDispatcher holds dispatched work until drain is called.
type queuedDispatcher struct {
	mu    sync.Mutex
	queue []func()
}

func (q *queuedDispatcher) dispatch(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queue = append(q.queue, fn)
}

func (q *queuedDispatcher) drain() {
	q.mu.Lock()
	fns := q.queue
	q.queue = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func setupLogin(t *testing.T, failWith error) *loginFixture {
	t.Helper()
	return setupLoginWith(t, failWith, serialDispatcher())
}

func setupLoginWith(t *testing.T, failWith error, dispatch screens.Dispatcher) *loginFixture {
	t.Helper()

	f := &loginFixture{clock: clock.NewFake(epoch), failWith: failWith}
	s, err := screens.NewLogin(screens.LoginOptions{
		Clock:    f.clock,
		Dispatch: dispatch,
		Delay:    time.Second,
		Provider: func(onSignedIn func()) (*mockauth.Provider, error) {
			opts := []mockauth.ProviderOption{
				mockauth.WithClock(f.clock),
				mockauth.WithHostedUI(mockauth.NewHostedUI(config.OIDC{})),
				mockauth.WithSignInListener(onSignedIn),
			}
			if f.failWith != nil {
				opts = append(opts, mockauth.WithFailure(f.failWith))
			}
			return mockauth.New(opts...)
		},
		Callbacks: screens.LoginCallbacks{
			OnLoginSuccess:     func() { f.successes++ },
			OnSwitchToRegister: func() { f.toRegister++ },
		},
	})
	require.NoError(t, err)
	f.screen = s
	t.Cleanup(s.Close)
	return f
}

func TestLogin_EmptyFieldsNeverSucceed(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"both empty", "", ""},
		{"email empty", "", "secret"},
		{"password empty", "user@example.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := setupLogin(t, nil)

			err := f.screen.Submit(tc.email, tc.password)
			require.ErrorIs(t, err, perrors.ErrMissingFields)
			require.Equal(t, screens.MsgFillAllFields, f.screen.View().Notice.Text)
			require.True(t, f.screen.View().Notice.IsError)
			require.False(t, f.screen.Pending())

			f.clock.Advance(10 * time.Second)
			require.Zero(t, f.successes)
		})
	}
}

func TestLogin_WhitespaceIsNotEmpty(t *testing.T) {
	f := setupLogin(t, nil)

	require.NoError(t, f.screen.Submit(" ", "secret"))
	f.clock.Advance(time.Second)
	require.Equal(t, 1, f.successes)
}

func TestLogin_SuccessAfterDelay(t *testing.T) {
	f := setupLogin(t, nil)

	require.NoError(t, f.screen.Submit("user@example.com", "secret"))
	require.Equal(t, screens.MsgLoginSucceeded, f.screen.View().Notice.Text)
	require.True(t, f.screen.Pending())

	f.clock.Advance(999 * time.Millisecond)
	require.Zero(t, f.successes)

	f.clock.Advance(time.Millisecond)
	require.Equal(t, 1, f.successes)
	require.False(t, f.screen.Pending())
}

func TestLogin_ResubmitWhilePendingIsIgnored(t *testing.T) {
	f := setupLogin(t, nil)

	require.NoError(t, f.screen.Submit("user@example.com", "secret"))
	f.clock.Advance(500 * time.Millisecond)
	require.ErrorIs(t, f.screen.Submit("user@example.com", "secret"), perrors.ErrTransitionPending)

	f.clock.Advance(5 * time.Second)
	require.Equal(t, 1, f.successes)
}

func TestLogin_CloseCancelsPendingLogin(t *testing.T) {
	f := setupLogin(t, nil)

	require.NoError(t, f.screen.Submit("user@example.com", "secret"))
	f.screen.Close()
	f.clock.Advance(5 * time.Second)

	require.Zero(t, f.successes)
	require.Zero(t, f.clock.Pending())
}

func TestLogin_ForgotPasswordNotice(t *testing.T) {
	f := setupLogin(t, nil)

	f.screen.ForgotPassword()
	require.Equal(t, screens.MsgForgotPassword, f.screen.View().Notice.Text)
	require.False(t, f.screen.View().Notice.IsError)
}

func TestLogin_SwitchToRegister(t *testing.T) {
	f := setupLogin(t, nil)

	f.screen.SwitchToRegister()
	require.Equal(t, 1, f.toRegister)
	require.Zero(t, f.successes)
}

func TestLogin_HostedUISignInReportsSuccessOnce(t *testing.T) {
	f := setupLogin(t, nil)
	f.screen.EnableOIDC()
	require.True(t, f.screen.View().OIDC)

	_, err := f.screen.SignIn()
	require.ErrorIs(t, err, perrors.ErrTransitionPending, "the initial status check is still running")

	f.clock.Advance(1500 * time.Millisecond)
	require.False(t, f.screen.View().Provider.IsLoading)

	redirect, err := f.screen.SignIn()
	require.NoError(t, err)
	require.Contains(t, redirect, "/oauth2/authorize")
	require.Equal(t, redirect, f.screen.View().RedirectURL)

	f.clock.Advance(time.Second)
	require.True(t, f.screen.View().Provider.IsAuthenticated)
	require.Zero(t, f.successes)

	f.clock.Advance(500 * time.Millisecond)
	require.Equal(t, 1, f.successes)
	require.Equal(t, mockauth.DefaultProfileEmail, f.screen.View().VerifiedEmail)

	f.clock.Advance(time.Minute)
	require.Equal(t, 1, f.successes)
}

func TestLogin_RejectedSignOutKeepsSignInAttempt(t *testing.T) {
	f := setupLogin(t, nil)
	f.screen.EnableOIDC()
	f.clock.Advance(1500 * time.Millisecond)

	_, err := f.screen.SignIn()
	require.NoError(t, err)

	_, err = f.screen.SignOut()
	require.ErrorIs(t, err, perrors.ErrTransitionPending)

	f.clock.Advance(2 * time.Second)
	require.True(t, f.screen.View().Provider.IsAuthenticated)
	require.Equal(t, 1, f.successes)
}

func TestLogin_ExpiredIDTokenIsNotAccepted(t *testing.T) {
	q := &queuedDispatcher{}
	f := setupLoginWith(t, nil, q.dispatch)
	f.screen.EnableOIDC()
	f.clock.Advance(1500 * time.Millisecond)
	q.drain()

	_, err := f.screen.SignIn()
	require.NoError(t, err)
	f.clock.Advance(1500 * time.Millisecond)

	// the sign-in notification is queued; let the ID token expire before it is handled
	f.clock.Advance(2 * time.Hour)
	q.drain()

	require.Zero(t, f.successes)
	v := f.screen.View()
	require.Equal(t, screens.MsgIdentityFailed, v.Notice.Text)
	require.True(t, v.Notice.IsError)
	require.Empty(t, v.VerifiedEmail)
}

func TestLogin_HostedUIFailureShowsError(t *testing.T) {
	f := setupLogin(t, errors.New("access_denied"))
	f.screen.EnableOIDC()
	f.clock.Advance(1500 * time.Millisecond)

	_, err := f.screen.SignIn()
	require.NoError(t, err)
	f.clock.Advance(2 * time.Second)

	v := f.screen.View()
	require.ErrorIs(t, v.Provider.Err, perrors.ErrAuthError)
	require.True(t, v.Notice.IsError)
	require.Contains(t, v.Notice.Text, "access_denied")
	require.Zero(t, f.successes)

	f.screen.DisableOIDC()
	require.False(t, f.screen.View().OIDC)
	require.Empty(t, f.screen.View().Notice.Text)
}

func TestLogin_CloseDropsHostedUINotification(t *testing.T) {
	f := setupLogin(t, nil)
	f.clock.Advance(1500 * time.Millisecond)

	_, err := f.screen.SignIn()
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	f.screen.Close()
	f.clock.Advance(time.Second)

	require.Zero(t, f.successes)
	_, err = f.screen.SignIn()
	require.ErrorIs(t, err, perrors.ErrProviderClosed)
}

func TestLogin_SignOutAfterSignIn(t *testing.T) {
	f := setupLogin(t, nil)
	f.clock.Advance(1500 * time.Millisecond)

	_, err := f.screen.SignIn()
	require.NoError(t, err)
	f.clock.Advance(1500 * time.Millisecond)
	require.Equal(t, 1, f.successes)

	logoutURL, err := f.screen.SignOut()
	require.NoError(t, err)
	require.Contains(t, logoutURL, "/logout")
	f.clock.Advance(time.Second)
	require.False(t, f.screen.View().Provider.IsAuthenticated)
}

func TestNewLogin_RequiresCollaborators(t *testing.T) {
	_, err := screens.NewLogin(screens.LoginOptions{})
	require.Error(t, err)
}
