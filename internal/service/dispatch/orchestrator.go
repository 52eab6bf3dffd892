package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/domain"
	"delivery-relay/internal/inflight"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/assignment"
	"delivery-relay/internal/service/availability"
)

// Details are the shipment attributes entered by the merchant.
type Details struct {
	AgencyDepartureDist string
	AgencyArrivalDist   string
	FinalDistrict       string
	WeightKg            float64
	VolumeM3            *float64
}

// Selection is the mutable state of a session.
type Selection struct {
	Pickup   int64
	Delivery int64
	Details
}

// Snapshot is a consistent copy of a session.
type Snapshot struct {
	ID        string
	Plan      Plan
	Selection Selection
	Quote     *domain.DeliveryQuote
	Result    *domain.AssignmentResult
}

// Confirmation is the outcome of a successful assignment. Order is the
// re-fetched server order; it is nil when that fetch failed.
type Confirmation struct {
	Result domain.AssignmentResult
	Order  *domain.DeliveryOrder
}

// Orchestrator is one merchant's assignment session for one order.
type Orchestrator struct {
	id     string
	svc    *Service
	guard  *inflight.Guard
	logger logx.Logger

	mu     sync.Mutex
	plan   Plan
	sel    Selection
	quote  *domain.DeliveryQuote
	result *domain.AssignmentResult
}

// Open plans orderID and starts a session on it. The order must be PRETE.
func (s *Service) Open(ctx context.Context, orderID int64, hint Hint) (*Orchestrator, error) {
	plan, err := s.Plan(ctx, orderID, hint)
	if err != nil {
		return nil, err
	}
	if plan.Order.Status != domain.StatusReady {
		return nil, fmt.Errorf("%w: order %d is %s, not %s", apperr.ErrStaleState, orderID, plan.Order.Status, domain.StatusReady)
	}
	id := uuid.NewString()
	return &Orchestrator{
		id:     id,
		svc:    s,
		guard:  inflight.New(),
		logger: s.logger.With(logx.String("session_id", id), logx.Int64("order_id", orderID)),
		plan:   plan,
		sel:    Selection{Details: Details{WeightKg: domain.MinWeightKg}},
	}, nil
}

// ID returns the session id.
func (o *Orchestrator) ID() string { return o.id }

// Snapshot returns a copy of the session state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{ID: o.id, Plan: o.plan, Selection: o.sel, Quote: o.quote, Result: o.result}
}

// SelectPickup chooses the pickup-leg courier. Local orders have no pickup leg.
func (o *Orchestrator) SelectPickup(courierID int64) error {
	if courierID <= 0 {
		return fmt.Errorf("%w: courier id %d", apperr.ErrInvalid, courierID)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.plan.Mode == domain.ModeLocal {
		return fmt.Errorf("%w: local order has no pickup leg", apperr.ErrInvalid)
	}
	o.sel.Pickup = courierID
	o.quote = nil
	return nil
}

// SelectDelivery chooses the final-leg courier, the only one for local orders.
func (o *Orchestrator) SelectDelivery(courierID int64) error {
	if courierID <= 0 {
		return fmt.Errorf("%w: courier id %d", apperr.ErrInvalid, courierID)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sel.Delivery = courierID
	o.quote = nil
	return nil
}

// SetDetails replaces the shipment attributes. Weight is floored at 1 kg and
// a non-positive volume is dropped.
func (o *Orchestrator) SetDetails(d Details) error {
	if d.WeightKg < 0 {
		return fmt.Errorf("%w: negative weight", apperr.ErrInvalid)
	}
	if d.WeightKg < domain.MinWeightKg {
		d.WeightKg = domain.MinWeightKg
	}
	if d.VolumeM3 != nil && *d.VolumeM3 <= 0 {
		d.VolumeM3 = nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sel.Details = d
	o.quote = nil
	return nil
}

// RefreshPools rebuilds the pools from a new availability result. Selections
// are kept; they are re-checked on confirm.
func (o *Orchestrator) RefreshPools(res availability.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result != nil {
		return
	}
	o.plan.Availability = res.Kind
	o.plan.Pools = o.svc.buildPools(o.plan.Order.ID, o.plan.MerchantCity, o.plan.ClientCity, res)
}

// RequestDetailedQuote asks for the segmented tariff of the current
// selection. An inter-city order needs its final courier first.
func (o *Orchestrator) RequestDetailedQuote(ctx context.Context) (domain.DeliveryQuote, error) {
	o.mu.Lock()
	plan, sel := o.plan, o.sel
	o.mu.Unlock()

	if plan.Mode == domain.ModeIntercity && sel.Delivery == 0 {
		return domain.DeliveryQuote{}, apperr.ErrFinalCourierRequired
	}

	release, ok := o.guard.Acquire("quote")
	if !ok {
		return domain.DeliveryQuote{}, apperr.ErrInFlight
	}
	defer release()

	q, err := o.svc.quotes.Detailed(ctx, quoteRequest(plan, sel))
	if err != nil {
		o.logger.Warn("detailed quote failed", logx.Err(err))
		return domain.DeliveryQuote{}, err
	}

	o.mu.Lock()
	if o.sel == sel {
		o.quote = &q
	}
	o.mu.Unlock()
	return q, nil
}

func quoteRequest(plan Plan, sel Selection) domain.QuoteRequest {
	req := domain.QuoteRequest{
		DepartureCity:        plan.MerchantCity,
		ArrivalCity:          plan.ClientCity,
		DepartureDistrict:    plan.MerchantDistrict,
		ArrivalDistrict:      plan.ClientDistrict,
		FinalCourierID:       sel.Delivery,
		FinalCourierDistrict: sel.FinalDistrict,
		ArticleIDs:           plan.Order.ArticleIDs(),
		DeliveryType:         plan.Mode.DeliveryType(),
		WeightKg:             sel.WeightKg,
		OrderAmount:          plan.Order.Total,
		VolumeM3:             sel.VolumeM3,
	}
	if plan.Mode == domain.ModeIntercity {
		req.AgencyDepartureCity = plan.MerchantCity
		req.AgencyDepartureDist = sel.AgencyDepartureDist
		req.AgencyArrivalCity = plan.ClientCity
		req.AgencyArrivalDist = sel.AgencyArrivalDist
		req.FinalCourierCity = plan.ClientCity
		if c, ok := findCourier(plan.Pools.Delivery.Couriers, sel.Delivery); ok && c.Zone != "" {
			req.FinalCourierCity = c.Zone
		}
	}
	return req
}

// ConfirmAssignment submits the selection. Preconditions are checked before
// any network call, then the selected couriers are re-checked against a
// fresh availability poll. On failure the selection is kept so the merchant
// can retry or pick someone else.
func (o *Orchestrator) ConfirmAssignment(ctx context.Context) (Confirmation, error) {
	o.mu.Lock()
	plan, sel, done := o.plan, o.sel, o.result != nil
	o.mu.Unlock()

	if done {
		return Confirmation{}, fmt.Errorf("%w: session already confirmed", apperr.ErrConflict)
	}
	if err := checkSelection(plan.Mode, sel); err != nil {
		return Confirmation{}, err
	}

	release, ok := o.guard.Acquire("confirm")
	if !ok {
		return Confirmation{}, apperr.ErrInFlight
	}
	defer release()

	if err := o.checkStillAvailable(ctx, plan, sel); err != nil {
		return Confirmation{}, err
	}

	res, err := o.submit(ctx, plan, sel)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrConflict) {
			err = fmt.Errorf("%w: %w", apperr.ErrCourierUnavailable, err)
		}
		o.logger.Warn("assignment rejected", logx.Err(err))
		return Confirmation{}, err
	}

	o.mu.Lock()
	o.result = &res
	o.mu.Unlock()

	o.svc.invalidate(ctx, plan.Order.ID)
	conf := Confirmation{Result: res}
	if order, err := o.svc.backend.Order(ctx, plan.Order.ID); err != nil {
		o.logger.Warn("order re-fetch after assignment failed", logx.Err(err))
	} else {
		conf.Order = &order
	}

	o.logger.Info("assignment confirmed",
		logx.String("mode", string(plan.Mode)),
		logx.Int64("pickup_id", sel.Pickup),
		logx.Int64("delivery_id", sel.Delivery),
	)
	return conf, nil
}

func checkSelection(mode domain.AssignmentMode, sel Selection) error {
	if sel.Delivery == 0 {
		return fmt.Errorf("%w: delivery courier", apperr.ErrSelectionRequired)
	}
	if mode == domain.ModeIntercity && sel.Pickup == 0 {
		return fmt.Errorf("%w: pickup courier", apperr.ErrSelectionRequired)
	}
	return nil
}

// checkStillAvailable fails when a selected courier vanished from a fresh
// poll. When the poll itself fails the check is skipped and the backend
// decides.
func (o *Orchestrator) checkStillAvailable(ctx context.Context, plan Plan, sel Selection) error {
	for _, id := range []int64{sel.Pickup, sel.Delivery} {
		if c, ok := pooledCourier(plan.Pools, id); ok && c.Demo {
			return fmt.Errorf("%w: courier %d is a demo courier", apperr.ErrCourierUnavailable, id)
		}
	}

	res, err := o.svc.avail.Fresh(ctx, plan.Origin)
	if err != nil {
		return err
	}
	if res.Err != nil {
		o.logger.Warn("availability re-check skipped", logx.Err(res.Err))
		return nil
	}

	live := make([]domain.Courier, 0, len(res.Couriers))
	for _, c := range res.Couriers {
		if !c.Demo {
			live = append(live, c)
		}
	}
	for _, id := range []int64{sel.Pickup, sel.Delivery} {
		if id == 0 {
			continue
		}
		c, ok := findCourier(live, id)
		if !ok || c.Status == domain.CourierOffline {
			return fmt.Errorf("%w: courier %d", apperr.ErrCourierUnavailable, id)
		}
	}
	return nil
}

func (o *Orchestrator) submit(ctx context.Context, plan Plan, sel Selection) (domain.AssignmentResult, error) {
	order := plan.Order
	if plan.Mode == domain.ModeLocal {
		return o.svc.backend.AssignSingle(ctx, domain.SingleAssignment{
			OrderID:       order.ID,
			ClientID:      order.ClientID,
			MerchantEmail: order.Merchant.Email,
			CourierID:     sel.Delivery,
		})
	}
	return o.svc.backend.AssignDual(ctx, domain.DualAssignment{
		OrderID:             order.ID,
		ClientID:            order.ClientID,
		MerchantEmail:       order.Merchant.Email,
		PickupCourierID:     sel.Pickup,
		DeliveryCourierID:   sel.Delivery,
		AgencyDepartureDist: sel.AgencyDepartureDist,
		AgencyArrivalDist:   sel.AgencyArrivalDist,
		FinalDistrict:       sel.FinalDistrict,
		WeightKg:            sel.WeightKg,
		VolumeM3:            sel.VolumeM3,
	})
}

func pooledCourier(pools assignment.Pools, id int64) (domain.Courier, bool) {
	if id == 0 {
		return domain.Courier{}, false
	}
	if c, ok := findCourier(pools.Delivery.Couriers, id); ok {
		return c, true
	}
	if pools.Pickup != nil {
		return findCourier(pools.Pickup.Couriers, id)
	}
	return domain.Courier{}, false
}

func findCourier(cs []domain.Courier, id int64) (domain.Courier, bool) {
	for _, c := range cs {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Courier{}, false
}
