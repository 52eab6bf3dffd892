package domain

import (
	"fmt"

	"delivery-relay/internal/apperr"
)

// OrderItem is one ordered article.
type OrderItem struct {
	ArticleID   int64
	Designation string
	Quantity    int
	UnitPrice   float64
}

// Address is the client delivery address.
type Address struct {
	Name       string
	Phone      string
	Street     string
	City       string
	PostalCode string
}

// MerchantRef identifies the merchant that owns the order.
type MerchantRef struct {
	Name  string
	Email string
	City  string
}

// DeliveryOrder is the server-owned order as seen by the dashboards.
type DeliveryOrder struct {
	ID int64
	// DeliveryID is the id of the delivery record; zero means it shares the order id.
	DeliveryID    int64
	Code          string
	Status        DeliveryStatus
	Total         float64
	DeliveryFee   float64
	Items         []OrderItem
	ClientID      int64
	Client        Address
	Merchant      MerchantRef
	Pickup        *CourierRef
	Final         *CourierRef
	RefusalReason string
}

// DeliveryRef returns the id used by the /livraisons endpoints.
func (o DeliveryOrder) DeliveryRef() int64 {
	if o.DeliveryID > 0 {
		return o.DeliveryID
	}
	return o.ID
}

// ArticleIDs lists the article ids of the order items.
func (o DeliveryOrder) ArticleIDs() []int64 {
	ids := make([]int64, 0, len(o.Items))
	for _, it := range o.Items {
		if it.ArticleID > 0 {
			ids = append(ids, it.ArticleID)
		}
	}
	return ids
}

// CheckLegs validates the courier slots against the assignment mode.
// A local order only uses the final slot; a pickup courier, if reported,
// must be the same courier.
func (o DeliveryOrder) CheckLegs(mode AssignmentMode) error {
	if mode != ModeLocal || o.Pickup == nil {
		return nil
	}
	if o.Final == nil || o.Final.ID != o.Pickup.ID {
		return fmt.Errorf("%w: local order %d has a distinct pickup courier", apperr.ErrInvalid, o.ID)
	}
	return nil
}

// Party is one end of a delivery as resolved by info-livraison.
type Party struct {
	City     string
	District string
	Address  string
	Location Coordinate
}

// DeliveryInfo is the server-resolved geography of an order.
type DeliveryInfo struct {
	OrderID  int64
	Merchant Party
	Client   Party
}

// AssignmentResult is what the backend returns once couriers are assigned.
type AssignmentResult struct {
	OrderID          int64
	Mode             AssignmentMode
	Pickup           *CourierRef
	Final            *CourierRef
	EstimatedMinutes int
	Status           DeliveryStatus
	Message          string
}

// SingleAssignment is the input of a one-leg (local) assignment.
type SingleAssignment struct {
	OrderID       int64
	ClientID      int64
	MerchantEmail string
	CourierID     int64
}

// DualAssignment is the input of a two-leg (inter-city) assignment.
type DualAssignment struct {
	OrderID             int64
	ClientID            int64
	MerchantEmail       string
	PickupCourierID     int64
	DeliveryCourierID   int64
	AgencyDepartureDist string
	AgencyArrivalDist   string
	FinalDistrict       string
	WeightKg            float64
	VolumeM3            *float64
}
