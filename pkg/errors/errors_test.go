package errors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKindMatchesKindAndCause(t *testing.T) {
	err := WrapKind(context.DeadlineExceeded, ErrNetworkFailure, "fetch profile 'nasa'")

	assert.True(t, IsNetworkFailure(err))
	assert.True(t, Is(err, context.DeadlineExceeded))
	assert.False(t, IsProfileNotFound(err))
	assert.Equal(t, CodeNetworkFailure, GetCode(err))
	assert.Equal(t, "fetch profile 'nasa': context deadline exceeded", err.Error())
}

func TestNewfCarriesStatusCode(t *testing.T) {
	e := Newf(ErrUnexpectedStatus, "unexpected HTTP status %d for '%s'", 500, "nasa")
	e.StatusCode = 500

	var err error = e
	require.True(t, Is(err, ErrUnexpectedStatus))
	assert.Equal(t, 500, GetStatusCode(err))
	assert.Equal(t, "unexpected HTTP status 500 for 'nasa'", err.Error())
	assert.Equal(t, CodeUnexpectedStatus, GetCode(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Equal(t, 0, GetStatusCode(New("plain")))
	assert.Equal(t, "", GetCode(New("plain")))
}
