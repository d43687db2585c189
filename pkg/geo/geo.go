package geo

import "math"

const (
	// KmPerDegree is the flat-earth factor used for quick plausibility checks.
	KmPerDegree = 111.0

	earthRadiusM = 6371000.0
)

// ApproxDistanceKm is an equirectangular estimate over raw degree deltas.
// Good enough to reject walks between cities, not for measuring them.
func ApproxDistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := lat2 - lat1
	dLng := lng2 - lng1
	return math.Sqrt(dLng*dLng+dLat*dLat) * KmPerDegree
}

// HaversineMeters is the great-circle distance between two points.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
