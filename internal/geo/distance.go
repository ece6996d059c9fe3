package geo

import (
	"math"

	"sales-activity-backend/internal/apperror"
)

const EarthRadiusMeters = 6371000

// DistanceMeters uses the Haversine formula on a spherical earth.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLng := (lng2 - lng1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

type Validator struct {
	MaxRadius float64
}

func NewValidator(maxRadius float64) *Validator {
	return &Validator{MaxRadius: maxRadius}
}

// Check returns the distance and a *apperror.DistanceError when it exceeds MaxRadius.
func (v *Validator) Check(lat, lng, targetLat, targetLng float64) (float64, error) {
	d := DistanceMeters(lat, lng, targetLat, targetLng)
	if d > v.MaxRadius {
		return d, &apperror.DistanceError{Distance: d, MaxAllowed: v.MaxRadius}
	}
	return d, nil
}
