package availability

import (
	"delivery-relay/internal/domain"
)

const demoBaseID int64 = 900000

var demoRoster = []struct {
	name, phone, zone string
	dLat, dLon, km    float64
}{
	{"Demo Pickup Douala", "+237600000001", "Douala", 0.004, 0.003, 0.6},
	{"Demo Relay Yaoundé", "+237600000002", "Yaoundé", -0.010, 0.008, 1.4},
	{"Demo Courier Douala", "+237600000003", "Douala", 0.015, -0.012, 2.1},
}

// DemoCouriers synthesizes a small roster around origin. The couriers are
// flagged Demo and can never be assigned.
func DemoCouriers(origin domain.Coordinate) []domain.Courier {
	out := make([]domain.Courier, 0, len(demoRoster))
	for i, d := range demoRoster {
		out = append(out, domain.Courier{
			ID:            demoBaseID + int64(i) + 1,
			Name:          d.name,
			Phone:         d.phone,
			Location:      domain.Coordinate{Lat: origin.Lat + d.dLat, Lon: origin.Lon + d.dLon},
			LocationKnown: true,
			DistanceKm:    d.km,
			Status:        domain.CourierAvailable,
			Zone:          d.zone,
			Demo:          true,
		})
	}
	return out
}
