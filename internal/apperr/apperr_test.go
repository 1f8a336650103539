package apperr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/studyfocus/internal/apperr"
)

var errSample = &apperr.Error{Message: "invalid value: %d"}

func TestFmtKeepsIdentity(t *testing.T) {
	err := errSample.Fmt(42)

	assert.Equal(t, "invalid value: 42", err.Error())
	assert.ErrorIs(t, err, errSample)
}

func TestWrap(t *testing.T) {
	err := errSample.Fmt(7).Wrap(io.EOF)

	assert.Equal(t, "invalid value: 7: EOF", err.Error())
	assert.ErrorIs(t, err, errSample)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDistinctSentinels(t *testing.T) {
	other := &apperr.Error{Message: "invalid value: %d"}

	assert.False(t, errors.Is(errSample.Fmt(1), other))
}
