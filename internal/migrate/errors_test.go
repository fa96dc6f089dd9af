package migrate

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{
			name: "channel operation error",
			err:  &ChannelOperationError{Channel: "dev", Op: "create", Err: errors.New("boom")},
			want: false,
		},
		{
			name: "finalization error",
			err:  &FinalizationError{Scope: "channel", Name: "dev", Err: errors.New("boom")},
			want: true,
		},
		{
			name: "persistence error",
			err:  &PersistenceError{Err: errors.New("disk full")},
			want: true,
		},
		{
			name: "wrapped finalization error",
			err:  fmt.Errorf("outer: %w", &FinalizationError{Scope: "team", Name: "t", Err: errors.New("boom")}),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")

	for _, err := range []error{
		&ChannelOperationError{Channel: "dev", Op: "create", Err: inner},
		&FinalizationError{Scope: "team", Name: "t", Err: inner},
		&PersistenceError{Err: inner},
	} {
		if !errors.Is(err, inner) {
			t.Errorf("%T does not unwrap its cause", err)
		}
	}
}
