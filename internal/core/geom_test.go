package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec
		expected float64
	}{
		{"same point", V(0, 0), V(0, 0), 0},
		{"horizontal", V(0, 0), V(3, 0), 3},
		{"vertical", V(0, 0), V(0, 4), 4},
		{"diagonal 3-4-5", V(1, 1), V(4, 5), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Distance(tc.a, tc.b), 1e-9)
			// Symmetric in its arguments
			assert.InDelta(t, tc.expected, Distance(tc.b, tc.a), 1e-9)
		})
	}
}

func TestVecArithmetic(t *testing.T) {
	v := V(2, -3)

	assert.Equal(t, V(3, -1), v.Add(V(1, 2)))
	assert.Equal(t, V(1, -5), v.Sub(V(1, 2)))
	assert.Equal(t, V(4, -6), v.Scale(2))
	assert.InDelta(t, 5.0, V(3, 4).Len(), 1e-9)
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.Contains(tc.x, tc.y))
		})
	}

	assert.Equal(t, 30, r.Right())
	assert.Equal(t, 25, r.Bottom())
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, Clamp(tc.val, tc.min, tc.max))
	}
}

func TestClampF(t *testing.T) {
	assert.Equal(t, 5.5, ClampF(5.5, 0, 10))
	assert.Equal(t, 0.0, ClampF(-5.5, 0, 10))
	assert.Equal(t, 360.0, ClampF(411, 0, 360))
}
