package util

import "errors"

// Exit codes for automation-friendly CLI usage.
const (
	ExitSuccess       = 0
	ExitGenericError  = 1
	ExitInvalidArgs   = 2
	ExitPassFailed    = 10
	ExitPluginFailed  = 11
	ExitUnknownPass   = 12
	ExitDuplicatePass = 13
)

// Sentinel errors used across the application.
var (
	ErrDuplicatePass    = errors.New("two passes registered with the same argument")
	ErrUnknownPass      = errors.New("unknown pass")
	ErrNotConstructible = errors.New("pass is not constructible")
	ErrPassFailed       = errors.New("pass failed")
	ErrPluginFailed     = errors.New("plugin failed")
)

// ExitCodeForError maps a sentinel error to its CLI exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDuplicatePass):
		return ExitDuplicatePass
	case errors.Is(err, ErrPluginFailed):
		return ExitPluginFailed
	case errors.Is(err, ErrPassFailed):
		return ExitPassFailed
	case errors.Is(err, ErrUnknownPass), errors.Is(err, ErrNotConstructible):
		return ExitUnknownPass
	default:
		return ExitGenericError
	}
}
