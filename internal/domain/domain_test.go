package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"delivery-relay/internal/apperr"
)

func TestCourierStatus_Valid(t *testing.T) {
	require.True(t, CourierAvailable.Valid())
	require.True(t, CourierOffline.Valid())
	require.False(t, CourierStatus("available").Valid())
}

func TestDeliveryStatus_Terminal(t *testing.T) {
	require.True(t, StatusDelivered.Terminal())
	require.True(t, StatusCanceled.Terminal())
	require.False(t, StatusRefused.Terminal())
	require.False(t, StatusReady.Terminal())
	require.False(t, DeliveryStatus("PAID").Valid())
}

func TestCoordinate_Known(t *testing.T) {
	require.False(t, Coordinate{}.Known())
	require.True(t, Coordinate{Lat: 4.05}.Known())
}

func TestQuoteRequest_Normalize(t *testing.T) {
	zero := 0.0
	r := QuoteRequest{WeightKg: 0.2, VolumeM3: &zero}.Normalize()
	require.Equal(t, MinWeightKg, r.WeightKg)
	require.Nil(t, r.VolumeM3)

	vol := 0.5
	r = QuoteRequest{WeightKg: 12, VolumeM3: &vol}.Normalize()
	require.Equal(t, 12.0, r.WeightKg)
	require.Equal(t, 0.5, *r.VolumeM3)
}

func TestDeliveryQuote_Consistent(t *testing.T) {
	q := DeliveryQuote{
		Total:           10500,
		PickupLocalCost: 1500,
		LinehaulCost:    6000,
		FinalLocalCost:  2000,
		InsuranceCost:   500,
		SurchargeCost:   500,
	}
	require.Equal(t, 10500.0, q.PartsSum())
	require.True(t, q.Consistent(QuoteTolerance))

	q.Total = 10500.004
	require.True(t, q.Consistent(QuoteTolerance))

	q.Total = 11000
	require.False(t, q.Consistent(QuoteTolerance))
}

func TestDeliveryOrder_CheckLegs(t *testing.T) {
	c1 := &CourierRef{ID: 1}
	c2 := &CourierRef{ID: 2}

	require.NoError(t, DeliveryOrder{Final: c1}.CheckLegs(ModeLocal))
	require.NoError(t, DeliveryOrder{Pickup: c1, Final: c1}.CheckLegs(ModeLocal))
	require.NoError(t, DeliveryOrder{Pickup: c1, Final: c2}.CheckLegs(ModeIntercity))

	err := DeliveryOrder{ID: 9, Pickup: c1, Final: c2}.CheckLegs(ModeLocal)
	require.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestDeliveryOrder_RefsAndArticles(t *testing.T) {
	o := DeliveryOrder{ID: 5, Items: []OrderItem{{ArticleID: 3}, {ArticleID: 0}, {ArticleID: 8}}}
	require.Equal(t, int64(5), o.DeliveryRef())
	require.Equal(t, []int64{3, 8}, o.ArticleIDs())

	o.DeliveryID = 77
	require.Equal(t, int64(77), o.DeliveryRef())
}

func TestAssignmentMode_DeliveryType(t *testing.T) {
	require.Equal(t, DeliveryTypeLocal, ModeLocal.DeliveryType())
	require.Equal(t, DeliveryTypeIntercity, ModeIntercity.DeliveryType())
}
