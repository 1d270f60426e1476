package util

import (
	"fmt"
	"testing"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"duplicate pass", ErrDuplicatePass, ExitDuplicatePass},
		{"pass failed", ErrPassFailed, ExitPassFailed},
		{"plugin failed", ErrPluginFailed, ExitPluginFailed},
		{"plugin wins over pass", fmt.Errorf("%w: %w", ErrPassFailed, ErrPluginFailed), ExitPluginFailed},
		{"unknown pass", ErrUnknownPass, ExitUnknownPass},
		{"not constructible", ErrNotConstructible, ExitUnknownPass},
		{"wrapped duplicate", fmt.Errorf("context: %w", ErrDuplicatePass), ExitDuplicatePass},
		{"generic", fmt.Errorf("something went wrong"), ExitGenericError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExitCodeForError(tt.err)
			if got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
