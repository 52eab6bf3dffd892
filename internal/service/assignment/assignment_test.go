package assignment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"delivery-relay/internal/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		merchant, client string
		want             domain.AssignmentMode
	}{
		{"Douala", "douala ", domain.ModeLocal},
		{"  YAOUNDÉ", "yaoundé", domain.ModeLocal},
		{"Yaoundé", "Douala", domain.ModeIntercity},
		{"", "", domain.ModeIntercity},
		{"Douala", "", domain.ModeIntercity},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Classify(tc.merchant, tc.client), "%q vs %q", tc.merchant, tc.client)
	}
}

var roster = []domain.Courier{
	{ID: 1, Zone: "Douala"},
	{ID: 2, Zone: "yaoundé"},
	{ID: 3, Zone: " DOUALA "},
	{ID: 4, Zone: ""},
}

func ids(cs []domain.Courier) []int64 {
	out := make([]int64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestBuildPools_Local(t *testing.T) {
	t.Parallel()

	p := BuildPools("Douala", "douala", roster)
	require.Equal(t, domain.ModeLocal, p.Mode)
	require.Nil(t, p.Pickup)
	require.Equal(t, []int64{1, 3}, ids(p.Delivery.Couriers))
	require.False(t, p.Degraded())
}

func TestBuildPools_Intercity(t *testing.T) {
	t.Parallel()

	p := BuildPools("Yaoundé", "Douala", roster)
	require.Equal(t, domain.ModeIntercity, p.Mode)
	require.NotNil(t, p.Pickup)
	require.Equal(t, []int64{2}, ids(p.Pickup.Couriers))
	require.Equal(t, []int64{1, 3}, ids(p.Delivery.Couriers))
	require.True(t, p.Delivery.Contains(3))
	require.False(t, p.Delivery.Contains(2))
}

func TestBuildPools_FallbackIsPerLeg(t *testing.T) {
	t.Parallel()

	p := BuildPools("Bafoussam", "Douala", roster)
	require.True(t, p.Pickup.Degraded)
	require.Equal(t, []int64{1, 2, 3, 4}, ids(p.Pickup.Couriers))
	require.False(t, p.Delivery.Degraded)
	require.True(t, p.Degraded())
}

func TestBuildPools_EmptyRoster(t *testing.T) {
	t.Parallel()

	p := BuildPools("Douala", "Douala", nil)
	require.True(t, p.Delivery.Degraded)
	require.Empty(t, p.Delivery.Couriers)
}

func TestBuildPools_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	in := []domain.Courier{{ID: 1, Zone: "Kribi"}}
	p := BuildPools("Douala", "Douala", in)
	p.Delivery.Couriers[0].ID = 99
	require.EqualValues(t, 1, in[0].ID)
}
