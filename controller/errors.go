package controller

import (
	"errors"

	"github.com/milk9111/hoverkit/force"
)

var (
	// ErrInvalidArgument is returned for a non-positive tick delta. It is the
	// same sentinel the force laws use.
	ErrInvalidArgument = force.ErrInvalidArgument
	// ErrPreconditionFailed marks a caller contract violation, such as
	// consuming a jump with an empty budget.
	ErrPreconditionFailed = errors.New("controller: precondition failed")
	ErrInvalidConfig      = errors.New("controller: invalid config")
)
