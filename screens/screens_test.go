package screens_test

import (
	"testing"
	"time"

	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/jrsteele09/cds-portal/screens"
	"github.com/jrsteele09/cds-portal/sessions"
	"github.com/stretchr/testify/require"
)

func TestRegister_Validation(t *testing.T) {
	var successes, toLogin int
	s := screens.NewRegister(screens.RegisterCallbacks{
		OnRegisterSuccess: func() { successes++ },
		OnSwitchToLogin:   func() { toLogin++ },
	})

	require.ErrorIs(t, s.Submit("", "pw", "pw"), perrors.ErrMissingFields)
	require.ErrorIs(t, s.Submit("a@b.c", "", ""), perrors.ErrMissingFields)
	require.Equal(t, screens.MsgFillAllFields, s.View().Notice.Text)

	require.ErrorIs(t, s.Submit("a@b.c", "pw", "other"), perrors.ErrPasswordMismatch)
	require.Equal(t, screens.MsgPasswordMismatch, s.View().Notice.Text)
	require.Equal(t, "a@b.c", s.View().Email)
	require.Zero(t, successes)

	require.NoError(t, s.Submit("a@b.c", "pw", "pw"))
	require.Equal(t, 1, successes)
	require.Empty(t, s.View().Notice.Text)

	s.SwitchToLogin()
	require.Equal(t, 1, toLogin)
}

func TestWelcome_CallbacksAndIdentity(t *testing.T) {
	calls := map[string]int{}
	s := screens.NewWelcome(screens.WelcomeCallbacks{
		OnReload:        func() { calls["reload"]++ },
		OnGoToToDo:      func() { calls["todo"]++ },
		OnLogout:        func() { calls["logout"]++ },
		OnGoToDashboard: func() { calls["dashboard"]++ },
	})

	s.Reload()
	s.GoToToDo()
	s.Logout()
	s.GoToDashboard()
	require.Equal(t, map[string]int{"reload": 1, "todo": 1, "logout": 1, "dashboard": 1}, calls)

	v := s.View(sessions.Authenticated(sessions.MockUser()))
	require.Equal(t, "user", v.DisplayName)
	require.Equal(t, sessions.MockUserEmail, v.Email)

	require.Equal(t, "User", s.View(sessions.Session{}).DisplayName)
}

func TestDashboard_EachButtonInvokesOnlyItsCallback(t *testing.T) {
	for _, dest := range screens.Destinations() {
		t.Run(string(dest), func(t *testing.T) {
			calls := map[screens.Destination]int{}
			record := func(d screens.Destination) func() {
				return func() { calls[d]++ }
			}
			d := screens.NewDashboard(screens.DashboardCallbacks{
				OnGoToToDo:      record(screens.DestToDo),
				OnGoToDashboard: record(screens.DestDashboard),
				OnWeather:       record(screens.DestWeather),
				OnRegister:      record(screens.DestRegister),
				OnLogin:         record(screens.DestLogin),
				OnContact:       record(screens.DestContact),
				OnSpiceRack:     record(screens.DestSpiceRack),
				OnLogout:        record(screens.DestLogout),
			}, nil)

			require.NoError(t, d.Navigate(dest))
			require.Equal(t, map[screens.Destination]int{dest: 1}, calls)
		})
	}
}

func TestDashboard_UnknownDestination(t *testing.T) {
	d := screens.NewDashboard(screens.DashboardCallbacks{}, nil)
	require.ErrorIs(t, d.Navigate("settings"), perrors.ErrUnknownDestination)
}

func TestDashboard_PanelsOpenInPlace(t *testing.T) {
	d := screens.NewDashboard(screens.DashboardCallbacks{}, nil)
	require.Equal(t, screens.PanelNone, d.View().Panel)

	require.NoError(t, d.Navigate(screens.DestWeather))
	require.Equal(t, screens.PanelWeather, d.View().Panel)

	require.NoError(t, d.Navigate(screens.DestSpiceRack))
	require.Equal(t, screens.PanelSpiceRack, d.View().Panel)

	require.NoError(t, d.Navigate(screens.DestContact))
	require.Equal(t, screens.PanelContact, d.View().Panel)
}

func TestDashboard_ContactForm(t *testing.T) {
	d := screens.NewDashboard(screens.DashboardCallbacks{}, nil)
	require.NoError(t, d.Navigate(screens.DestContact))

	err := d.SubmitContact("Ada", "", "hello")
	require.ErrorIs(t, err, perrors.ErrMissingFields)
	v := d.View()
	require.True(t, v.Notice.IsError)
	require.Equal(t, "Ada", v.Contact.Name)
	require.Equal(t, "hello", v.Contact.Message)

	require.NoError(t, d.SubmitContact("Ada", "ada@example.com", "hello"))
	v = d.View()
	require.Equal(t, screens.MsgContactThanks, v.Notice.Text)
	require.Empty(t, v.Contact.Name)
}

func TestToDo_AddToggleDelete(t *testing.T) {
	var backs int
	s := screens.NewToDo(screens.ToDoCallbacks{OnBack: func() { backs++ }}, func() time.Time { return epoch })

	_, err := s.Add("  ")
	require.ErrorIs(t, err, perrors.ErrMissingFields)

	milk, err := s.Add("Buy milk")
	require.NoError(t, err)
	bread, err := s.Add("Bake bread")
	require.NoError(t, err)
	require.NotEqual(t, milk.ID, bread.ID)
	require.Equal(t, 2, s.View().Remaining)

	require.NoError(t, s.Toggle(milk.ID))
	v := s.View()
	require.True(t, v.Tasks[0].Done())
	require.Equal(t, epoch, *v.Tasks[0].CompletedAt)
	require.Equal(t, 1, v.Remaining)

	require.NoError(t, s.Toggle(milk.ID))
	require.False(t, s.View().Tasks[0].Done())
	require.Nil(t, s.View().Tasks[0].CompletedAt)

	require.NoError(t, s.Delete(milk.ID))
	require.Len(t, s.View().Tasks, 1)
	require.Equal(t, "Bake bread", s.View().Tasks[0].Title)

	require.ErrorIs(t, s.Delete(milk.ID), perrors.ErrNotFound)
	require.ErrorIs(t, s.Toggle("nope"), perrors.ErrNotFound)

	s.Back()
	require.Equal(t, 1, backs)
}
