package events

import "time"

// Event is a delivery status change published by the backend. Courier
// presence events carry only CourierID.
type Event struct {
	OrderID   int64
	CourierID int64
	Status    string
	UpdatedAt time.Time
}
