package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"delivery-relay/internal/service/events"
)

func TestProcessor_Handle_OrderMove_InvalidatesOrderEntries(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := NewMockInvalidator(ctrl)
	gomock.InOrder(
		inv.EXPECT().Invalidate(gomock.Any(), "orders:id=7;").Return(nil),
		inv.EXPECT().Invalidate(gomock.Any(), "info:id=7;").Return(nil),
	)

	p := events.NewProcessor(inv, nil)
	require.NoError(t, p.Handle(context.Background(), events.Event{OrderID: 7, Status: " prete "}))
}

func TestProcessor_Handle_CourierMove_InvalidatesBoth(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := NewMockInvalidator(ctrl)
	gomock.InOrder(
		inv.EXPECT().Invalidate(gomock.Any(), "orders:id=7;").Return(nil),
		inv.EXPECT().Invalidate(gomock.Any(), "info:id=7;").Return(nil),
		inv.EXPECT().Invalidate(gomock.Any(), "couriers:").Return(nil),
	)

	p := events.NewProcessor(inv, nil)
	require.NoError(t, p.Handle(context.Background(), events.Event{OrderID: 7, CourierID: 3, Status: "ACCEPTEE"}))
}

func TestProcessor_Handle_CourierPresence(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inv := NewMockInvalidator(ctrl)
	inv.EXPECT().Invalidate(gomock.Any(), "couriers:").Return(nil)

	p := events.NewProcessor(inv, nil)
	require.NoError(t, p.Handle(context.Background(), events.Event{CourierID: 3, Status: "hors_ligne"}))
}

func TestProcessor_Handle_ErrorReturned(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("redis down")
	inv := NewMockInvalidator(ctrl)
	inv.EXPECT().Invalidate(gomock.Any(), "orders:id=7;").Return(boom)
	inv.EXPECT().Invalidate(gomock.Any(), "couriers:").Return(nil)

	p := events.NewProcessor(inv, nil)
	err := p.Handle(context.Background(), events.Event{OrderID: 7, Status: "LIVREE"})
	require.ErrorIs(t, err, boom)
}

func TestProcessor_Handle_UnknownStatus_NoOps(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := events.NewProcessor(NewMockInvalidator(ctrl), nil)
	require.NoError(t, p.Handle(context.Background(), events.Event{OrderID: 1, Status: "some-new-status"}))
}
