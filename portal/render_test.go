package portal_test

import (
	"testing"

	"github.com/jrsteele09/cds-portal/portal"
	"github.com/jrsteele09/cds-portal/sessions"
	"github.com/jrsteele09/cds-portal/views"
	"github.com/stretchr/testify/require"
)

func TestSelectScreen(t *testing.T) {
	signedIn := sessions.Authenticated(sessions.MockUser())
	signedOut := sessions.Session{}

	cases := []struct {
		session sessions.Session
		view    views.View
		want    views.View
	}{
		{signedOut, views.ToDo, views.ToDo},
		{signedIn, views.ToDo, views.ToDo},
		{signedIn, views.Dashboard, views.Dashboard},
		{signedOut, views.Dashboard, views.Register},
		{signedIn, views.Welcome, views.Welcome},
		{signedOut, views.Welcome, views.Register},
		{signedIn, views.Login, views.Login},
		{signedOut, views.Login, views.Login},
		{signedIn, views.Register, views.Register},
		{signedOut, views.Register, views.Register},
	}

	for _, tc := range cases {
		name := tc.view.String()
		if tc.session.IsAuthenticated {
			name += "/signed-in"
		}
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, portal.SelectScreen(tc.session, tc.view))
		})
	}
}
