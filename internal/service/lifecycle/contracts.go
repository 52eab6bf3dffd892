//go:generate mockgen -source=contracts.go -destination=lifecycle_mocks_test.go -package=lifecycle

package lifecycle

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"delivery-relay/internal/domain"
)

type gateway interface {
	Order(ctx context.Context, orderID int64) (domain.DeliveryOrder, error)
	DeliveryInfo(ctx context.Context, orderID int64) (domain.DeliveryInfo, error)
	AcceptDelivery(ctx context.Context, deliveryID int64) error
	RefuseDelivery(ctx context.Context, deliveryID int64, reason string) error
	StartDelivery(ctx context.Context, deliveryID int64) error
	CompleteDelivery(ctx context.Context, deliveryID int64) error
	AssignFinal(ctx context.Context, deliveryID, finalCourierID int64) error
}

type statusUpdater interface {
	UpdateStatus(ctx context.Context, orderID int64, status domain.DeliveryStatus) error
}

type labeledCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}
