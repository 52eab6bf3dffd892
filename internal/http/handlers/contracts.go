package handlers

import (
	"context"

	"delivery-relay/internal/domain"
	"delivery-relay/internal/service/dispatch"
	"delivery-relay/internal/service/lifecycle"
	"delivery-relay/internal/service/tariff"
)

type lifecycleUsecase interface {
	View(ctx context.Context, orderID int64, role domain.Role) (lifecycle.View, error)
	Perform(ctx context.Context, cmd lifecycle.Command) (lifecycle.View, error)
}

// NewLifecycleUsecase wires a lifecycle Controller into a lifecycleUsecase.
func NewLifecycleUsecase(c *lifecycle.Controller) lifecycleUsecase {
	return c
}

type planUsecase interface {
	Plan(ctx context.Context, orderID int64, hint dispatch.Hint) (dispatch.Plan, error)
}

// NewPlanUsecase wires a dispatch Service into a planUsecase.
func NewPlanUsecase(s *dispatch.Service) planUsecase {
	return s
}

type assignmentSession interface {
	ID() string
	Snapshot() dispatch.Snapshot
	SelectPickup(courierID int64) error
	SelectDelivery(courierID int64) error
	SetDetails(d dispatch.Details) error
	RequestDetailedQuote(ctx context.Context) (domain.DeliveryQuote, error)
}

type sessionUsecase interface {
	Open(ctx context.Context, orderID int64, hint dispatch.Hint) (assignmentSession, error)
	Get(id string) (assignmentSession, error)
	Confirm(ctx context.Context, id string) (dispatch.Confirmation, error)
	Close(id string) error
}

// NewSessionUsecase wires a dispatch Registry into a sessionUsecase.
func NewSessionUsecase(r *dispatch.Registry) sessionUsecase {
	return registrySessions{r: r}
}

type registrySessions struct{ r *dispatch.Registry }

func (s registrySessions) Open(ctx context.Context, orderID int64, hint dispatch.Hint) (assignmentSession, error) {
	o, err := s.r.Open(ctx, orderID, hint)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s registrySessions) Get(id string) (assignmentSession, error) {
	o, err := s.r.Get(id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s registrySessions) Confirm(ctx context.Context, id string) (dispatch.Confirmation, error) {
	return s.r.Confirm(ctx, id)
}

func (s registrySessions) Close(id string) error {
	return s.r.Close(id)
}

type estimateUsecase interface {
	Estimate(ctx context.Context, req domain.QuoteRequest) tariff.Estimate
}

// NewEstimateUsecase wires a tariff Service into an estimateUsecase.
func NewEstimateUsecase(s *tariff.Service) estimateUsecase {
	return s
}
