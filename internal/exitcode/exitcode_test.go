package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, OK, CodeOf(nil))
	assert.Equal(t, Failure, CodeOf(errors.New("plain")))
	assert.Equal(t, Declined, CodeOf(Newf(Declined, "user said no")))

	wrapped := fmt.Errorf("outer: %w", New(MarkerDesync, errors.New("inner")))
	assert.Equal(t, MarkerDesync, CodeOf(wrapped))
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	assert.ErrorIs(t, New(EmptyFile, inner), inner)
}
