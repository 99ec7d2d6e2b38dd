//go:build !hoverdebug

package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsumeEmptyReturnsPreconditionError(t *testing.T) {
	a := NewJumpArbiter(1)
	err := a.Consume()
	assert.ErrorIs(t, err, ErrPreconditionFailed)
	assert.Equal(t, 0, a.Budget())
}
