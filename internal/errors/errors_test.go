package errors_test

import (
	"io"
	"testing"

	perrors "github.com/jrsteele09/cds-portal/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.Nil(t, perrors.Wrapf(nil, "search %s", "lasagna"))

	err := perrors.Wrapf(perrors.ErrSearchUnavailable, "search %s", "lasagna")
	require.EqualError(t, err, "search lasagna: recipe search unavailable")
	require.True(t, perrors.Is(err, perrors.ErrSearchUnavailable))
}

func TestIsRecoverable(t *testing.T) {
	require.True(t, perrors.IsRecoverable(perrors.Wrapf(perrors.ErrMissingFields, "login")))
	require.True(t, perrors.IsRecoverable(perrors.ErrAuthError))
	require.False(t, perrors.IsRecoverable(io.EOF))
	require.False(t, perrors.IsRecoverable(nil))
}
