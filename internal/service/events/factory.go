package events

import (
	"context"
	"strings"

	"delivery-relay/internal/domain"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byStatus map[string]actionFunc
}

func newActionFactory(onOrderMoved, onCourierMoved, onCourierPresence actionFunc) *actionFactory {
	f := &actionFactory{byStatus: make(map[string]actionFunc)}

	// status changes that do not touch courier workload
	for _, s := range []domain.DeliveryStatus{
		domain.StatusPending, domain.StatusConfirmed, domain.StatusPreparing, domain.StatusReady,
		domain.StatusInTransit,
	} {
		f.byStatus[string(s)] = onOrderMoved
	}
	for _, s := range []domain.DeliveryStatus{
		domain.StatusAssigned, domain.StatusAssignedPick, domain.StatusAccepted,
		domain.StatusAssignedFinal, domain.StatusAcceptedFinal,
		domain.StatusDelivered, domain.StatusRefused, domain.StatusCanceled,
	} {
		f.byStatus[string(s)] = onCourierMoved
	}
	for _, s := range []domain.CourierStatus{domain.CourierAvailable, domain.CourierBusy, domain.CourierOffline} {
		f.byStatus[string(s)] = onCourierPresence
	}
	return f
}

func (f *actionFactory) get(status string) (actionFunc, bool) {
	status = strings.ToUpper(strings.TrimSpace(status))
	fn, ok := f.byStatus[status]
	return fn, ok
}
