// Package geo implements the integer-only distance metric used for
// geofence containment. All arithmetic is fixed-point over micro-degree
// coordinates with bounded loops, so any two evaluators given the same
// inputs produce bit-identical results.
package geo

// Limits of the accepted coordinate space, in micro-degrees.
const (
	MinLatitude  = -90_000_000
	MaxLatitude  = 90_000_000
	MinLongitude = -180_000_000
	MaxLongitude = 180_000_000
	MaxHeading   = 359
)

// Distance returns the planar distance between two points in
// micro-degree units, floor(sqrt(dLat^2 + dLon^2)). Geofence radii are
// expressed in the same units, so the comparison against a radius never
// leaves integer space. Valid coordinate deltas are below 2^29, so the
// sum of squares cannot overflow uint64.
func Distance(lat1, lon1, lat2, lon2 int64) int64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return int64(Isqrt(uint64(dLat*dLat) + uint64(dLon*dLon)))
}

// Isqrt returns floor(sqrt(x)) using the digit-by-digit method: at most
// 32 steps, no floating point.
func Isqrt(x uint64) uint64 {
	var res uint64
	bit := uint64(1) << 62
	for bit > x {
		bit >>= 2
	}
	for bit != 0 {
		if x >= res+bit {
			x -= res + bit
			res = res>>1 + bit
		} else {
			res >>= 1
		}
		bit >>= 2
	}
	return res
}

// ValidCoordinates reports whether a latitude/longitude pair lies inside
// the accepted range. Range ends are inclusive.
func ValidCoordinates(lat, lon int64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude &&
		lon >= MinLongitude && lon <= MaxLongitude
}
