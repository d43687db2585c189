package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApproxDistanceKm(t *testing.T) {
	// Shibuya -> Shinjuku, a few km.
	d := ApproxDistanceKm(35.6580992, 139.7016358, 35.6896067, 139.7005713)
	assert.InDelta(t, 3.5, d, 0.1)

	// 0.72 degrees of latitude is about 80 km by this formula.
	assert.InDelta(t, 79.92, ApproxDistanceKm(35.0, 139.0, 35.72, 139.0), 0.01)

	assert.Zero(t, ApproxDistanceKm(1, 2, 1, 2))
}

func TestHaversineMeters(t *testing.T) {
	assert.InDelta(t, 111195, HaversineMeters(0, 0, 1, 0), 10)
	assert.InDelta(t, 0, HaversineMeters(35, 139, 35, 139), 1e-9)
}
