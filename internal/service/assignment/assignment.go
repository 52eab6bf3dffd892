// Package assignment decides whether an order needs one courier or two and
// builds the candidate pools for each leg. It performs no I/O.
package assignment

import (
	"strings"

	"delivery-relay/internal/domain"
)

// Normalize trims and lower-cases a city name for comparison.
func Normalize(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// IsLocal reports whether both cities are the same after normalization.
// An unknown (blank) city never matches.
func IsLocal(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	return na != "" && na == nb
}

// Classify derives the assignment mode from the merchant and client cities.
func Classify(merchantCity, clientCity string) domain.AssignmentMode {
	if IsLocal(merchantCity, clientCity) {
		return domain.ModeLocal
	}
	return domain.ModeIntercity
}

// Pool is the candidate list for one leg. Degraded is set when no courier
// matched City and the full list is offered instead.
type Pool struct {
	City     string
	Couriers []domain.Courier
	Degraded bool
}

// Pools holds the candidate lists of an order. Pickup is nil in local mode.
type Pools struct {
	Mode     domain.AssignmentMode
	Pickup   *Pool
	Delivery Pool
}

// Degraded reports whether any leg fell back to the full list.
func (p Pools) Degraded() bool {
	return p.Delivery.Degraded || (p.Pickup != nil && p.Pickup.Degraded)
}

// BuildPools filters couriers by zone for each leg. A local order gets a
// single pool in the merchant city; an inter-city order gets a pickup pool
// in the merchant city and a delivery pool in the client city. Each pool
// falls back to the whole list on its own when nothing matches. Input
// order is preserved.
func BuildPools(merchantCity, clientCity string, couriers []domain.Courier) Pools {
	mode := Classify(merchantCity, clientCity)
	if mode == domain.ModeLocal {
		return Pools{Mode: mode, Delivery: filter(merchantCity, couriers)}
	}
	pickup := filter(merchantCity, couriers)
	return Pools{
		Mode:     mode,
		Pickup:   &pickup,
		Delivery: filter(clientCity, couriers),
	}
}

func filter(city string, couriers []domain.Courier) Pool {
	want := Normalize(city)
	matched := make([]domain.Courier, 0, len(couriers))
	if want != "" {
		for _, c := range couriers {
			if Normalize(c.Zone) == want {
				matched = append(matched, c)
			}
		}
	}
	if len(matched) > 0 {
		return Pool{City: city, Couriers: matched}
	}
	all := make([]domain.Courier, len(couriers))
	copy(all, couriers)
	return Pool{City: city, Couriers: all, Degraded: true}
}

// Contains reports whether the pool offers the courier id.
func (p Pool) Contains(id int64) bool {
	for _, c := range p.Couriers {
		if c.ID == id {
			return true
		}
	}
	return false
}
