//go:build !hoverdebug

package controller

// precondition is checked only in builds tagged hoverdebug. Callers still
// receive ErrPreconditionFailed.
func precondition(bool, string, ...any) {}
