//go:build hoverdebug

package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumeEmptyPanics(t *testing.T) {
	a := NewJumpArbiter(1)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrPreconditionFailed))
		assert.Equal(t, 0, a.Budget())
	}()
	_ = a.Consume()
}
