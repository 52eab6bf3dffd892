package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"delivery-relay/internal/domain"
)

// Order fetches one order.
func (c *Client) Order(ctx context.Context, orderID int64) (domain.DeliveryOrder, error) {
	var dto orderDTO
	path := fmt.Sprintf("commandes/%d", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &dto); err != nil {
		return domain.DeliveryOrder{}, err
	}
	order, err := dto.toDomain()
	if err != nil {
		return domain.DeliveryOrder{}, fmt.Errorf("backend GET %s: %w", path, err)
	}
	return order, nil
}

// DeliveryInfo fetches the resolved geography of both parties.
func (c *Client) DeliveryInfo(ctx context.Context, orderID int64) (domain.DeliveryInfo, error) {
	var dto deliveryInfoDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("commandes/%d/info-livraison", orderID), nil, nil, &dto); err != nil {
		return domain.DeliveryInfo{}, err
	}
	return dto.toDomain(orderID), nil
}

// AssignSingle assigns one courier to a local order.
func (c *Client) AssignSingle(ctx context.Context, a domain.SingleAssignment) (domain.AssignmentResult, error) {
	q := url.Values{}
	q.Set("clientId", strconv.FormatInt(a.ClientID, 10))
	q.Set("merchantEmail", a.MerchantEmail)
	q.Set("livreurId", strconv.FormatInt(a.CourierID, 10))

	var dto assignmentResultDTO
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("commandes/%d/assigner-livreur", a.OrderID), q, nil, &dto); err != nil {
		return domain.AssignmentResult{}, err
	}
	return dto.toDomain(a.OrderID, domain.ModeLocal), nil
}

// AssignDual assigns the pickup and final-leg couriers of an inter-city order.
func (c *Client) AssignDual(ctx context.Context, a domain.DualAssignment) (domain.AssignmentResult, error) {
	body := dualAssignmentDTO{
		ClientID:              a.ClientID,
		MerchantEmail:         a.MerchantEmail,
		LivreurPickupID:       a.PickupCourierID,
		LivreurLivraisonID:    a.DeliveryCourierID,
		QuartierAgenceDepart:  a.AgencyDepartureDist,
		QuartierAgenceArrivee: a.AgencyArrivalDist,
		QuartierLivreurFinal:  a.FinalDistrict,
		PoidsKg:               a.WeightKg,
		VolumeM3:              a.VolumeM3,
	}
	var dto assignmentResultDTO
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("commandes/%d/assigner-livreurs-dual", a.OrderID), nil, body, &dto); err != nil {
		return domain.AssignmentResult{}, err
	}
	return dto.toDomain(a.OrderID, domain.ModeIntercity), nil
}

// UpdateStatus sets the order status directly (merchant-side moves).
func (c *Client) UpdateStatus(ctx context.Context, orderID int64, status domain.DeliveryStatus) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("commandes/%d/statut", orderID), nil, statusDTO{Statut: string(status)}, nil)
}

// AcceptDelivery is the courier accepting its leg.
func (c *Client) AcceptDelivery(ctx context.Context, deliveryID int64) error {
	return c.delivery(ctx, deliveryID, "accepter", nil)
}

// RefuseDelivery is the courier refusing its leg with a reason.
func (c *Client) RefuseDelivery(ctx context.Context, deliveryID int64, reason string) error {
	return c.delivery(ctx, deliveryID, "refuser", refusalDTO{Raison: reason})
}

// StartDelivery marks the parcel as picked up and moving.
func (c *Client) StartDelivery(ctx context.Context, deliveryID int64) error {
	return c.delivery(ctx, deliveryID, "demarrer", nil)
}

// CompleteDelivery marks the parcel as delivered to the client.
func (c *Client) CompleteDelivery(ctx context.Context, deliveryID int64) error {
	return c.delivery(ctx, deliveryID, "terminer", nil)
}

// AssignFinal hands the relay leg of an inter-city delivery to a final courier.
func (c *Client) AssignFinal(ctx context.Context, deliveryID, finalCourierID int64) error {
	path := fmt.Sprintf("livraisons/%d/assigner-final", deliveryID)
	return c.do(ctx, http.MethodPost, path, nil, finalAssignDTO{LivreurFinalID: finalCourierID}, nil)
}

func (c *Client) delivery(ctx context.Context, deliveryID int64, verb string, body any) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("commandes/livraisons/%d/%s", deliveryID, verb), nil, body, nil)
}
