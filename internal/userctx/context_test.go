package userctx

import (
	"context"
	"testing"
)

func TestOwnerID(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"no user", context.Background(), DefaultOwnerID},
		{"blank user", WithUserID(context.Background(), "  "), DefaultOwnerID},
		{"user", WithUserID(context.Background(), "coach-1"), "coach-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OwnerID(tt.ctx); got != tt.want {
				t.Errorf("OwnerID() = %q, want %q", got, tt.want)
			}
		})
	}
}
