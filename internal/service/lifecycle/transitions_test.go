package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/domain"
)

func walk(t *testing.T, mode domain.AssignmentMode, from domain.DeliveryStatus, steps []struct {
	role   domain.Role
	action Action
	want   domain.DeliveryStatus
}) {
	t.Helper()
	cur := from
	for _, s := range steps {
		next, err := Next(cur, s.action, s.role, mode)
		require.NoError(t, err, "%s %s from %s", s.role, s.action, cur)
		require.Equal(t, s.want, next)
		cur = next
	}
}

type step = struct {
	role   domain.Role
	action Action
	want   domain.DeliveryStatus
}

func TestNext_LocalHappyPath(t *testing.T) {
	t.Parallel()

	walk(t, domain.ModeLocal, domain.StatusPending, []step{
		{domain.RoleMerchant, ActionConfirm, domain.StatusConfirmed},
		{domain.RoleMerchant, ActionPrepare, domain.StatusPreparing},
		{domain.RoleMerchant, ActionMarkReady, domain.StatusReady},
		{domain.RoleMerchant, ActionAssign, domain.StatusAssigned},
		{domain.RoleCourier, ActionAccept, domain.StatusAccepted},
		{domain.RoleCourier, ActionStart, domain.StatusInTransit},
		{domain.RoleCourier, ActionComplete, domain.StatusDelivered},
	})
}

func TestNext_IntercityRelay(t *testing.T) {
	t.Parallel()

	walk(t, domain.ModeIntercity, domain.StatusReady, []step{
		{domain.RoleMerchant, ActionAssign, domain.StatusAssignedPick},
		{domain.RoleCourier, ActionAccept, domain.StatusAccepted},
		{domain.RoleCourier, ActionStart, domain.StatusInTransit},
		{domain.RoleCourier, ActionAssignFinal, domain.StatusAssignedFinal},
		{domain.RoleMerchant, ActionAssignFinal, domain.StatusAssignedFinal},
		{domain.RoleFinalCourier, ActionAccept, domain.StatusAcceptedFinal},
		{domain.RoleFinalCourier, ActionComplete, domain.StatusDelivered},
	})
}

func TestNext_RefusalAndReassign(t *testing.T) {
	t.Parallel()

	walk(t, domain.ModeIntercity, domain.StatusAssignedFinal, []step{
		{domain.RoleFinalCourier, ActionRefuse, domain.StatusRefused},
		{domain.RoleMerchant, ActionReassign, domain.StatusReady},
	})
	walk(t, domain.ModeLocal, domain.StatusAssigned, []step{
		{domain.RoleCourier, ActionRefuse, domain.StatusRefused},
	})
}

func TestNext_Illegal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from   domain.DeliveryStatus
		action Action
		role   domain.Role
		mode   domain.AssignmentMode
	}{
		{domain.StatusInTransit, ActionComplete, domain.RoleCourier, domain.ModeIntercity},
		{domain.StatusInTransit, ActionAssignFinal, domain.RoleCourier, domain.ModeLocal},
		{domain.StatusInTransit, ActionCancel, domain.RoleMerchant, domain.ModeLocal},
		{domain.StatusAssigned, ActionAccept, domain.RoleMerchant, domain.ModeLocal},
		{domain.StatusAssignedFinal, ActionAccept, domain.RoleCourier, domain.ModeIntercity},
		{domain.StatusDelivered, ActionCancel, domain.RoleMerchant, domain.ModeLocal},
		{domain.StatusCanceled, ActionConfirm, domain.RoleMerchant, domain.ModeLocal},
		{domain.StatusRefused, ActionCancel, domain.RoleMerchant, domain.ModeLocal},
	}
	for _, tc := range cases {
		_, err := Next(tc.from, tc.action, tc.role, tc.mode)
		require.ErrorIs(t, err, apperr.ErrTransition, "%s %s from %s (%s)", tc.role, tc.action, tc.from, tc.mode)
	}
}

func TestActions_TerminalStatesHaveNone(t *testing.T) {
	t.Parallel()

	for _, s := range []domain.DeliveryStatus{domain.StatusDelivered, domain.StatusCanceled} {
		for _, r := range []domain.Role{domain.RoleMerchant, domain.RoleCourier, domain.RoleFinalCourier} {
			for _, m := range []domain.AssignmentMode{domain.ModeLocal, domain.ModeIntercity} {
				require.Empty(t, Actions(s, r, m))
			}
		}
	}
}

func TestActions_PerRole(t *testing.T) {
	t.Parallel()

	require.Equal(t, []Action{ActionAssign, ActionCancel}, Actions(domain.StatusReady, domain.RoleMerchant, domain.ModeLocal))
	require.Equal(t, []Action{ActionAccept, ActionRefuse}, Actions(domain.StatusAssigned, domain.RoleCourier, domain.ModeLocal))
	require.Empty(t, Actions(domain.StatusAssigned, domain.RoleMerchant, domain.ModeLocal))
	require.Equal(t, []Action{ActionComplete}, Actions(domain.StatusInTransit, domain.RoleCourier, domain.ModeLocal))
	require.Equal(t, []Action{ActionAssignFinal}, Actions(domain.StatusInTransit, domain.RoleCourier, domain.ModeIntercity))
	require.Equal(t, []Action{ActionAssignFinal}, Actions(domain.StatusInTransit, domain.RoleMerchant, domain.ModeIntercity))
	require.Equal(t, []Action{ActionAccept, ActionRefuse}, Actions(domain.StatusAssignedFinal, domain.RoleFinalCourier, domain.ModeIntercity))
	require.Equal(t, []Action{ActionReassign}, Actions(domain.StatusRefused, domain.RoleMerchant, domain.ModeIntercity))
}

func TestAction_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, ActionAssignFinal.Valid())
	require.False(t, Action("teleport").Valid())
}
