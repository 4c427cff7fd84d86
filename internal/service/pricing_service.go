package service

import (
	"math"
)

// PricingService computes the per-seat price of a posted ride. The price
// is fixed at creation time and never recomputed.
type PricingService interface {
	PricePerSeat(distanceKm float64, totalSeats int) float64
	EstimateDistanceKm(fromLat, fromLon, toLat, toLon float64) float64
}

type pricingService struct {
	fuelPricePerLitre float64
	mileageKmPerLitre float64
}

func NewPricingService(fuelPricePerLitre, mileageKmPerLitre float64) PricingService {
	return &pricingService{
		fuelPricePerLitre: fuelPricePerLitre,
		mileageKmPerLitre: mileageKmPerLitre,
	}
}

// PricePerSeat divides the fuel cost of the trip evenly across seats:
// distance / mileage gives litres burned, times the fuel price, over seats.
func (s *pricingService) PricePerSeat(distanceKm float64, totalSeats int) float64 {
	if totalSeats < 1 {
		totalSeats = 1
	}
	fuelCost := distanceKm / s.mileageKmPerLitre * s.fuelPricePerLitre
	return round(fuelCost / float64(totalSeats))
}

// EstimateDistanceKm calculates straight-line distance and multiplies by a
// road factor. Used as a fallback when the routing service is unreachable
// at ride creation time.
func (s *pricingService) EstimateDistanceKm(fromLat, fromLon, toLat, toLon float64) float64 {
	straightLine := haversineDistance(fromLat, fromLon, toLat, toLon)
	// Multiply by 1.3 to account for actual road distance
	return round(straightLine * 1.3)
}

// haversineDistance calculates the distance between two points on Earth
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371 // km

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}
