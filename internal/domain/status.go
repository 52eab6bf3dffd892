package domain

// DeliveryStatus is the status of an order in its delivery lifecycle.
type DeliveryStatus string

// Delivery statuses as persisted by the backend.
const (
	StatusPending       DeliveryStatus = "EN_ATTENTE"
	StatusConfirmed     DeliveryStatus = "CONFIRMEE"
	StatusPreparing     DeliveryStatus = "EN_PREPARATION"
	StatusReady         DeliveryStatus = "PRETE"
	StatusAssigned      DeliveryStatus = "ASSIGNEE"
	StatusAssignedPick  DeliveryStatus = "ASSIGNEE_PICKUP"
	StatusAccepted      DeliveryStatus = "ACCEPTEE"
	StatusInTransit     DeliveryStatus = "EN_COURS"
	StatusAssignedFinal DeliveryStatus = "ASSIGNEE_FINAL"
	StatusAcceptedFinal DeliveryStatus = "ACCEPTEE_FINAL"
	StatusDelivered     DeliveryStatus = "LIVREE"
	StatusRefused       DeliveryStatus = "REFUSEE"
	StatusCanceled      DeliveryStatus = "ANNULEE"
)

var allowedDeliveryStatuses = [...]DeliveryStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
	StatusAssigned, StatusAssignedPick, StatusAccepted, StatusInTransit,
	StatusAssignedFinal, StatusAcceptedFinal, StatusDelivered,
	StatusRefused, StatusCanceled,
}

// Valid reports whether s is a known delivery status.
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedDeliveryStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no role can move the order any further.
// REFUSEE is not terminal: the merchant may reopen it for reassignment.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// Role identifies who is acting on an order.
type Role string

// Roles that drive lifecycle transitions.
const (
	RoleMerchant     Role = "merchant"
	RoleCourier      Role = "courier"
	RoleFinalCourier Role = "final_courier"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleMerchant, RoleCourier, RoleFinalCourier:
		return true
	default:
		return false
	}
}

// AssignmentMode tells whether an order needs one courier leg or two.
type AssignmentMode string

// Assignment modes.
const (
	ModeLocal     AssignmentMode = "LOCAL"
	ModeIntercity AssignmentMode = "INTERCITY"
)

// Delivery types sent to the tariff endpoint.
const (
	DeliveryTypeLocal     = "LOCALE"
	DeliveryTypeIntercity = "INTERVILLE"
)

// DeliveryType returns the tariff delivery type matching the mode.
func (m AssignmentMode) DeliveryType() string {
	if m == ModeIntercity {
		return DeliveryTypeIntercity
	}
	return DeliveryTypeLocal
}
