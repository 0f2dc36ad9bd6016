package domain

import (
	"strconv"
	"strings"
)

// Classification thresholds for the largest item dimension.
const (
	largeTruckDimension = 10
	smallTruckDimension = 5
)

// RequiredVehicleType maps shipment items to the vehicle class needed to
// carry them. Each item's size string is split on the literal character
// "x" (case-insensitive); non-numeric tokens are ignored and the item's
// dimension is the largest remaining token. Malformed or missing sizes
// degrade to dimension 0, so the function never fails: an unparseable
// shipment is classified as a Bike load.
func RequiredVehicleType(items []Item) VehicleType {
	maxDimension := 0.0
	for _, item := range items {
		if d := maxItemDimension(item.Size); d > maxDimension {
			maxDimension = d
		}
	}
	switch {
	case maxDimension >= largeTruckDimension:
		return VehicleLargeTruck
	case maxDimension >= smallTruckDimension:
		return VehicleSmallTruck
	default:
		return VehicleBike
	}
}

func maxItemDimension(size string) float64 {
	if size == "" {
		return 0
	}
	max := 0.0
	for _, tok := range strings.Split(strings.ToLower(size), "x") {
		n, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}
