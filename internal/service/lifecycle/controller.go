package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/cache"
	"delivery-relay/internal/domain"
	"delivery-relay/internal/inflight"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/assignment"
)

// View is an order as seen by one role.
type View struct {
	Order    domain.DeliveryOrder
	Mode     domain.AssignmentMode
	Role     domain.Role
	Actions  []Action
	Terminal bool
}

// Command is one action request.
type Command struct {
	OrderID int64
	Role    domain.Role
	Action  Action
	// Reason is mandatory for refusals.
	Reason string
	// FinalCourierID is the relay courier for assign_final.
	FinalCourierID int64
	// Expected, when set, is the status the caller saw; a different server
	// status fails with apperr.ErrStaleState.
	Expected domain.DeliveryStatus
}

// Config stores controller settings.
type Config struct {
	CacheTTL time.Duration
	Timeout  time.Duration
}

// Controller reflects server status and performs role actions. It never
// keeps local state: every mutation is followed by a re-fetch.
type Controller struct {
	gw       gateway
	statuses statusUpdater
	cache    cache.Store
	cfg      Config
	guard    *inflight.Guard
	logger   logx.Logger
	actions  labeledCounter
}

// NewController creates a Controller. statuses usually wraps gw with retries.
func NewController(gw gateway, statuses statusUpdater, store cache.Store, cfg Config, logger logx.Logger, actions labeledCounter) *Controller {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Controller{
		gw:       gw,
		statuses: statuses,
		cache:    store,
		cfg:      cfg,
		guard:    inflight.New(),
		logger:   logger.With(logx.String("component", "lifecycle")),
		actions:  actions,
	}
}

// View returns the order and the actions open to role, served from the
// cache when possible.
func (c *Controller) View(ctx context.Context, orderID int64, role domain.Role) (View, error) {
	if orderID <= 0 {
		return View{}, fmt.Errorf("%w: order id %d", apperr.ErrInvalid, orderID)
	}
	if !role.Valid() {
		return View{}, fmt.Errorf("%w: role %q", apperr.ErrInvalid, role)
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	order, err := c.order(ctx, orderID, true)
	if err != nil {
		return View{}, err
	}
	return c.view(ctx, order, role), nil
}

// Perform validates cmd, checks it against the current server status, calls
// the matching backend endpoint and returns the re-fetched order.
func (c *Controller) Perform(ctx context.Context, cmd Command) (View, error) {
	if err := validate(cmd); err != nil {
		return View{}, err
	}

	key := fmt.Sprintf("%d:%s", cmd.OrderID, cmd.Action)
	release, ok := c.guard.Acquire(key)
	if !ok {
		return View{}, fmt.Errorf("%w: %s on order %d", apperr.ErrInFlight, cmd.Action, cmd.OrderID)
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	order, err := c.order(ctx, cmd.OrderID, false)
	if err != nil {
		return View{}, err
	}
	if cmd.Expected != "" && cmd.Expected != order.Status {
		return View{}, fmt.Errorf("%w: expected %s, order %d is %s", apperr.ErrStaleState, cmd.Expected, order.ID, order.Status)
	}
	mode := c.mode(ctx, order)
	target, err := Next(order.Status, cmd.Action, cmd.Role, mode)
	if err != nil {
		return View{}, fmt.Errorf("%w: %w", apperr.ErrStaleState, err)
	}

	if err := c.execute(ctx, order, cmd, target); err != nil {
		c.count(cmd.Action, "error")
		c.logger.Warn("lifecycle action failed",
			logx.Int64("order_id", order.ID),
			logx.String("action", string(cmd.Action)),
			logx.String("role", string(cmd.Role)),
			logx.Err(err),
		)
		return View{}, err
	}
	c.count(cmd.Action, "ok")

	c.invalidate(ctx, order.ID, cmd.Action)
	fresh, err := c.order(ctx, order.ID, false)
	if err != nil {
		return View{}, fmt.Errorf("reload order %d after %s: %w", order.ID, cmd.Action, err)
	}

	c.logger.Info("lifecycle action performed",
		logx.Int64("order_id", order.ID),
		logx.String("action", string(cmd.Action)),
		logx.String("role", string(cmd.Role)),
		logx.String("from", string(order.Status)),
		logx.String("to", string(fresh.Status)),
	)
	return c.view(ctx, fresh, cmd.Role), nil
}

func validate(cmd Command) error {
	if cmd.OrderID <= 0 {
		return fmt.Errorf("%w: order id %d", apperr.ErrInvalid, cmd.OrderID)
	}
	if !cmd.Role.Valid() {
		return fmt.Errorf("%w: role %q", apperr.ErrInvalid, cmd.Role)
	}
	if !cmd.Action.Valid() {
		return fmt.Errorf("%w: action %q", apperr.ErrInvalid, cmd.Action)
	}
	if cmd.Action == ActionRefuse && strings.TrimSpace(cmd.Reason) == "" {
		return apperr.ErrReasonRequired
	}
	if cmd.Action == ActionAssignFinal && cmd.FinalCourierID <= 0 {
		return fmt.Errorf("%w: final courier", apperr.ErrSelectionRequired)
	}
	if cmd.Action == ActionAssign {
		return fmt.Errorf("%w: couriers are assigned through an assignment session", apperr.ErrInvalid)
	}
	if !performable(cmd.Action, cmd.Role) {
		return fmt.Errorf("%w: %s cannot %s", apperr.ErrTransition, cmd.Role, cmd.Action)
	}
	return nil
}

func (c *Controller) execute(ctx context.Context, order domain.DeliveryOrder, cmd Command, target domain.DeliveryStatus) error {
	ref := order.DeliveryRef()
	switch cmd.Action {
	case ActionAccept:
		return c.gw.AcceptDelivery(ctx, ref)
	case ActionRefuse:
		return c.gw.RefuseDelivery(ctx, ref, strings.TrimSpace(cmd.Reason))
	case ActionStart:
		return c.gw.StartDelivery(ctx, ref)
	case ActionComplete:
		return c.gw.CompleteDelivery(ctx, ref)
	case ActionAssignFinal:
		return c.gw.AssignFinal(ctx, ref, cmd.FinalCourierID)
	default:
		return c.statuses.UpdateStatus(ctx, order.ID, target)
	}
}

func (c *Controller) order(ctx context.Context, orderID int64, useCache bool) (domain.DeliveryOrder, error) {
	key := orderKey(orderID)
	if useCache && c.cache != nil {
		var cached domain.DeliveryOrder
		hit, err := c.cache.Get(ctx, key, &cached)
		if err != nil {
			c.logger.Warn("order cache read failed", logx.Err(err))
		}
		if hit {
			return cached, nil
		}
	}

	order, err := c.gw.Order(ctx, orderID)
	if err != nil {
		return domain.DeliveryOrder{}, fmt.Errorf("load order %d: %w", orderID, err)
	}
	if c.cache != nil {
		if err := c.cache.Set(ctx, key, order, c.cfg.CacheTTL); err != nil {
			c.logger.Warn("order cache write failed", logx.Err(err))
		}
	}
	return order, nil
}

// mode infers the assignment mode. Relay statuses and a distinct pickup
// courier imply inter-city; otherwise the server geography decides.
func (c *Controller) mode(ctx context.Context, order domain.DeliveryOrder) domain.AssignmentMode {
	switch order.Status {
	case domain.StatusAssignedPick, domain.StatusAssignedFinal, domain.StatusAcceptedFinal:
		return domain.ModeIntercity
	}
	if order.Pickup != nil && order.Final != nil && order.Pickup.ID != order.Final.ID {
		return domain.ModeIntercity
	}

	key := cache.Key(cache.ResourceInfo, "id", strconv.FormatInt(order.ID, 10))
	var info domain.DeliveryInfo
	hit := false
	if c.cache != nil {
		hit, _ = c.cache.Get(ctx, key, &info)
	}
	if !hit {
		var err error
		info, err = c.gw.DeliveryInfo(ctx, order.ID)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				c.logger.Debug("info-livraison unavailable, using order cities", logx.Int64("order_id", order.ID), logx.Err(err))
			}
			return assignment.Classify(order.Merchant.City, order.Client.City)
		}
		if c.cache != nil {
			_ = c.cache.Set(ctx, key, info, c.cfg.CacheTTL)
		}
	}
	if info.Merchant.City == "" || info.Client.City == "" {
		return assignment.Classify(order.Merchant.City, order.Client.City)
	}
	return assignment.Classify(info.Merchant.City, info.Client.City)
}

func (c *Controller) view(ctx context.Context, order domain.DeliveryOrder, role domain.Role) View {
	mode := c.mode(ctx, order)
	return View{
		Order:    order,
		Mode:     mode,
		Role:     role,
		Actions:  Actions(order.Status, role, mode),
		Terminal: order.Status.Terminal(),
	}
}

func (c *Controller) invalidate(ctx context.Context, orderID int64, action Action) {
	if c.cache == nil {
		return
	}
	prefixes := []string{cache.Prefix(cache.ResourceOrders, "id", strconv.FormatInt(orderID, 10))}
	switch action {
	case ActionAccept, ActionRefuse, ActionComplete, ActionAssignFinal:
		// courier availability changes with these moves
		prefixes = append(prefixes, cache.Prefix(cache.ResourceCouriers))
	}
	for _, p := range prefixes {
		if err := c.cache.Invalidate(ctx, p); err != nil {
			c.logger.Warn("cache invalidation failed", logx.String("prefix", p), logx.Err(err))
		}
	}
}

func (c *Controller) count(action Action, outcome string) {
	if c.actions != nil {
		c.actions.WithLabelValues(string(action), outcome).Inc()
	}
}

func orderKey(orderID int64) string {
	return cache.Key(cache.ResourceOrders, "id", strconv.FormatInt(orderID, 10))
}
