package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  float64
		want int64
	}{
		{"whole number", 42, 42},
		{"rounds down", 41.4, 41},
		{"rounds half up", 41.5, 42},
		{"negative clamps to zero", -5, 0},
		{"NaN reads as zero", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizePoints(tt.raw))
		})
	}
}

func TestClampPoints(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), ClampPoints(-1))
	assert.Equal(t, int64(0), ClampPoints(0))
	assert.Equal(t, int64(7), ClampPoints(7))
}

func TestPointsAccount_IsLinked(t *testing.T) {
	t.Parallel()

	assert.False(t, (&PointsAccount{DiscordID: "1"}).IsLinked())
	assert.True(t, (&PointsAccount{DiscordID: "1", ChatUsername: "viewer"}).IsLinked())
}
