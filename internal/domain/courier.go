package domain

// CourierStatus is the availability status reported for a courier (livreur).
type CourierStatus string

// Courier statuses as sent by the backend.
const (
	CourierAvailable CourierStatus = "DISPONIBLE"
	CourierBusy      CourierStatus = "OCCUPE"
	CourierOffline   CourierStatus = "HORS_LIGNE"
)

var allowedCourierStatuses = [...]CourierStatus{
	CourierAvailable, CourierBusy, CourierOffline,
}

// Valid reports whether s is a known courier status.
func (s CourierStatus) Valid() bool {
	for _, v := range allowedCourierStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// UnknownDistanceKm is the distance used when the backend does not know it.
const UnknownDistanceKm = 9999.0

// Coordinate is a WGS84 point. The zero value means "unknown".
type Coordinate struct {
	Lat float64
	Lon float64
}

// Known reports whether the coordinate carries a real position.
func (c Coordinate) Known() bool {
	return c.Lat != 0 || c.Lon != 0
}

// Courier is a read projection of a courier returned by an availability query.
// It is never mutated locally.
type Courier struct {
	ID            int64
	Name          string
	Phone         string
	Location      Coordinate
	LocationKnown bool
	DistanceKm    float64
	Status        CourierStatus
	// Zone is the city the courier operates in; pools are filtered on it.
	Zone string
	// Demo marks couriers synthesized by the development fallback.
	Demo bool
}

// Ref returns the order-level reference to this courier.
func (c Courier) Ref() CourierRef {
	return CourierRef{ID: c.ID, Name: c.Name, Phone: c.Phone}
}

// CourierRef is the courier reference embedded in an order or assignment.
type CourierRef struct {
	ID    int64
	Name  string
	Phone string
}
