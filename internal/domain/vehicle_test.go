package domain

import "testing"

func TestRequiredVehicleType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []Item
		want  VehicleType
	}{
		{"large dimension", []Item{{Size: "12x4"}}, VehicleLargeTruck},
		{"medium dimension", []Item{{Size: "6x3"}}, VehicleSmallTruck},
		{"small dimension", []Item{{Size: "2x2"}}, VehicleBike},
		{"boundary large", []Item{{Size: "10x1"}}, VehicleLargeTruck},
		{"boundary small", []Item{{Size: "5x1"}}, VehicleSmallTruck},
		{"empty size", []Item{{Size: ""}}, VehicleBike},
		{"no items", nil, VehicleBike},
		{"garbage size", []Item{{Size: "big x heavy"}}, VehicleBike},
		{"mixed tokens", []Item{{Size: "abc x 7"}}, VehicleSmallTruck},
		{"uppercase separator", []Item{{Size: "3X11X2"}}, VehicleLargeTruck},
		{"largest item wins", []Item{{Size: "2x2"}, {Size: "6x1"}, {Size: "4x4"}}, VehicleSmallTruck},
		{"spaces around tokens", []Item{{Size: " 12 x 3 "}}, VehicleLargeTruck},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := RequiredVehicleType(tc.items); got != tc.want {
				t.Fatalf("RequiredVehicleType(%v) = %q, want %q", tc.items, got, tc.want)
			}
		})
	}
}

func TestRequiredVehicleTypeIsPure(t *testing.T) {
	t.Parallel()

	items := []Item{{Size: "7x2"}, {Size: "bad"}}
	first := RequiredVehicleType(items)
	for i := 0; i < 5; i++ {
		if got := RequiredVehicleType(items); got != first {
			t.Fatalf("call %d returned %q, first call returned %q", i, got, first)
		}
	}
}
