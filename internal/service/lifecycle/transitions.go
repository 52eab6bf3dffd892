// Package lifecycle holds the delivery state machine and drives it against
// the backend on behalf of merchants and couriers.
package lifecycle

import (
	"fmt"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/domain"
)

// Action is a role-initiated move of an order.
type Action string

// Actions.
const (
	ActionConfirm     Action = "confirm"
	ActionPrepare     Action = "prepare"
	ActionMarkReady   Action = "mark_ready"
	ActionAssign      Action = "assign"
	ActionCancel      Action = "cancel"
	ActionAccept      Action = "accept"
	ActionRefuse      Action = "refuse"
	ActionStart       Action = "start"
	ActionAssignFinal Action = "assign_final"
	ActionComplete    Action = "complete"
	ActionReassign    Action = "reassign"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, r := range table {
		if r.action == a {
			return true
		}
	}
	return false
}

type rule struct {
	from   domain.DeliveryStatus
	action Action
	roles  []domain.Role
	// mode restricts the rule to one assignment mode; empty means both.
	mode domain.AssignmentMode
	to   domain.DeliveryStatus
}

var (
	merchant      = []domain.Role{domain.RoleMerchant}
	courier       = []domain.Role{domain.RoleCourier}
	finalCourier  = []domain.Role{domain.RoleFinalCourier}
	relayHandover = []domain.Role{domain.RoleCourier, domain.RoleMerchant}
)

// table is ordered: Actions lists moves in this order.
var table = []rule{
	{domain.StatusPending, ActionConfirm, merchant, "", domain.StatusConfirmed},
	{domain.StatusConfirmed, ActionPrepare, merchant, "", domain.StatusPreparing},
	{domain.StatusPreparing, ActionMarkReady, merchant, "", domain.StatusReady},
	{domain.StatusReady, ActionAssign, merchant, domain.ModeLocal, domain.StatusAssigned},
	{domain.StatusReady, ActionAssign, merchant, domain.ModeIntercity, domain.StatusAssignedPick},

	{domain.StatusPending, ActionCancel, merchant, "", domain.StatusCanceled},
	{domain.StatusConfirmed, ActionCancel, merchant, "", domain.StatusCanceled},
	{domain.StatusPreparing, ActionCancel, merchant, "", domain.StatusCanceled},
	{domain.StatusReady, ActionCancel, merchant, "", domain.StatusCanceled},
	{domain.StatusRefused, ActionReassign, merchant, "", domain.StatusReady},

	{domain.StatusAssigned, ActionAccept, courier, "", domain.StatusAccepted},
	{domain.StatusAssigned, ActionRefuse, courier, "", domain.StatusRefused},
	{domain.StatusAssignedPick, ActionAccept, courier, "", domain.StatusAccepted},
	{domain.StatusAssignedPick, ActionRefuse, courier, "", domain.StatusRefused},
	{domain.StatusAccepted, ActionStart, courier, "", domain.StatusInTransit},
	{domain.StatusInTransit, ActionComplete, courier, domain.ModeLocal, domain.StatusDelivered},

	{domain.StatusInTransit, ActionAssignFinal, relayHandover, domain.ModeIntercity, domain.StatusAssignedFinal},
	{domain.StatusAssignedFinal, ActionAssignFinal, relayHandover, domain.ModeIntercity, domain.StatusAssignedFinal},

	{domain.StatusAssignedFinal, ActionAccept, finalCourier, "", domain.StatusAcceptedFinal},
	{domain.StatusAssignedFinal, ActionRefuse, finalCourier, "", domain.StatusRefused},
	{domain.StatusAcceptedFinal, ActionComplete, finalCourier, "", domain.StatusDelivered},
}

func (r rule) matches(from domain.DeliveryStatus, action Action, role domain.Role, mode domain.AssignmentMode) bool {
	if r.from != from || r.action != action {
		return false
	}
	if r.mode != "" && r.mode != mode {
		return false
	}
	for _, x := range r.roles {
		if x == role {
			return true
		}
	}
	return false
}

// Next returns the status reached when role performs action on an order in
// status from. It fails with apperr.ErrTransition when the move is illegal.
func Next(from domain.DeliveryStatus, action Action, role domain.Role, mode domain.AssignmentMode) (domain.DeliveryStatus, error) {
	for _, r := range table {
		if r.matches(from, action, role, mode) {
			return r.to, nil
		}
	}
	return "", fmt.Errorf("%w: %s cannot %s from %s", apperr.ErrTransition, role, action, from)
}

// Actions lists the legal actions of role on an order in status.
func Actions(status domain.DeliveryStatus, role domain.Role, mode domain.AssignmentMode) []Action {
	out := []Action{}
	for _, r := range table {
		if r.matches(status, r.action, role, mode) && !contains(out, r.action) {
			out = append(out, r.action)
		}
	}
	return out
}

// performable reports whether role may ever perform action, whatever the status.
func performable(action Action, role domain.Role) bool {
	for _, r := range table {
		if r.action != action {
			continue
		}
		for _, x := range r.roles {
			if x == role {
				return true
			}
		}
	}
	return false
}

func contains(as []Action, a Action) bool {
	for _, x := range as {
		if x == a {
			return true
		}
	}
	return false
}
