package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWagerTiers_IsAllowed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount int64
		want   bool
	}{
		{0, true},
		{10, true},
		{50, true},
		{100, true},
		{5, false},
		{110, false},
		{-10, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultWagerTiers.IsAllowed(tt.amount), "amount %d", tt.amount)
	}
}

func TestWagerTiers_Options(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, DefaultWagerTiers.Options())
	assert.Equal(t, []int64{0, 25, 50}, WagerTiers{Step: 25, Max: 50}.Options())
}
