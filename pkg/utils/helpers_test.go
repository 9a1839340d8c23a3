package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(52.2297, 21.0122, 52.2297, 21.0122))
	})

	t.Run("warsaw to krakow is about 252 km", func(t *testing.T) {
		d := Haversine(52.2297, 21.0122, 50.0647, 19.9450)
		assert.InDelta(t, 252, d, 5)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Haversine(52.23, 21.01, 52.24, 21.02)
		b := Haversine(52.24, 21.02, 52.23, 21.01)
		assert.InDelta(t, a, b, 1e-12)
	})
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		value  float64
		places int
		want   float64
	}{
		{12.34567, 1, 12.3},
		{12.35, 1, 12.4},
		{12.34567, 2, 12.35},
		{-3.456, 1, -3.5},
		{5, 0, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundTo(tt.value, tt.places), 1e-9)
	}
}
