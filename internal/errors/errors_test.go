package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrChecksFailed, ExitUser),
			want: "validation failed",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("running lint: %w", ErrTimeout), ExitUser),
			want: "running lint: command timed out",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitSystem),
			want: "exit code 2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrLaunch, ExitUser),
			wantTarget: ErrLaunch,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(Wrap(ErrEmptyCommand, "lint"), ExitUser),
			wantTarget: ErrEmptyCommand,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrTimeout, ExitUser),
			wantTarget: ErrLaunch,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrTimeout,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stderrors.Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError(stderrors.New("bad yaml"))

	if err.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", err.Code, ExitSystem)
	}
	if err.Suggestion == "" {
		t.Error("Suggestion should not be empty")
	}
	if !Is(err, ErrInvalidConfig) {
		t.Error("config error should be marked ErrInvalidConfig")
	}
	if err.Error() != "bad yaml" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad yaml")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", stderrors.New("boom"), ExitUser},
		{"user error", NewUserError(ErrChecksFailed, ""), ExitUser},
		{"system error", NewSystemError(stderrors.New("disk"), ""), ExitSystem},
		{"wrapped exit error", Wrap(NewSystemError(stderrors.New("disk"), ""), "outer"), ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
