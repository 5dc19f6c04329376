package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripplanner/backend/internal/domain"
)

func ptr(i int) *int { return &i }

func TestNewPaginationParams(t *testing.T) {
	cases := []struct {
		name        string
		page, limit *int
		want        domain.PaginationParams
		wantOffset  int
	}{
		{"defaults", nil, nil, domain.PaginationParams{Page: 1, Limit: 20}, 0},
		{"explicit", ptr(3), ptr(10), domain.PaginationParams{Page: 3, Limit: 10}, 20},
		{"limit capped", ptr(1), ptr(500), domain.PaginationParams{Page: 1, Limit: 100}, 0},
		{"non-positive ignored", ptr(0), ptr(-5), domain.PaginationParams{Page: 1, Limit: 20}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.NewPaginationParams(tc.page, tc.limit)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantOffset, got.Offset())
		})
	}
}
