package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid", err: Invalid("bad %s", "input"), want: http.StatusBadRequest},
		{name: "wrapped invalid", err: fmt.Errorf("validation failed: %w", Invalid("bad")), want: http.StatusBadRequest},
		{name: "not found", err: NotFound("missing %d", 4), want: http.StatusNotFound},
		{name: "plain", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessageUnwrapsToPlayerText(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("validation failed: %w", Invalid("Player name is required"))
	assert.Equal(t, "Player name is required", Message(err))
	assert.Equal(t, "failed to save: boom", Message(fmt.Errorf("failed to save: %w", errors.New("boom"))))
}
