//go:build hoverdebug

package controller

import "fmt"

func precondition(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Errorf("%w: "+format, append([]any{ErrPreconditionFailed}, args...)...))
	}
}
