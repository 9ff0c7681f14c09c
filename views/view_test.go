package views_test

import (
	"testing"

	"github.com/jrsteele09/cds-portal/views"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	require.Equal(t, "register", views.Register.String())
	require.Equal(t, "todo", views.ToDo.String())
	require.Equal(t, "view(42)", views.View(42).String())
}

func TestRequiresAuth(t *testing.T) {
	require.True(t, views.Welcome.RequiresAuth())
	require.True(t, views.Dashboard.RequiresAuth())
	require.False(t, views.ToDo.RequiresAuth())
	require.False(t, views.Login.RequiresAuth())
	require.False(t, views.Register.RequiresAuth())
}
