package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripplanner/backend/internal/domain"
)

func TestUnwrapMessage(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{"nil", nil, domain.ErrValidation, ""},
		{"bare sentinel", domain.ErrValidation, domain.ErrValidation, "validation error"},
		{"service wrapped", fmt.Errorf("service.TripService.Create: %w: name is required", domain.ErrValidation), domain.ErrValidation, "name is required"},
		{"conflict", fmt.Errorf("service.EventService.Create: %w: overlaps %q", domain.ErrConflict, "Lunch"), domain.ErrConflict, `overlaps "Lunch"`},
		{"unrelated text", errors.New("boom"), domain.ErrValidation, "validation error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, unwrapMessage(tc.err, tc.sentinel))
		})
	}
}
