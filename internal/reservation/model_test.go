package reservation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/lab-reservation-backend/internal/pkg/clock"
)

func TestStatusActive(t *testing.T) {
	require.True(t, StatusPending.Active())
	require.True(t, StatusApproved.Active())
	require.False(t, StatusRejected.Active())
	require.False(t, StatusCancelled.Active())
	require.False(t, StatusCompleted.Active())
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted} {
		require.True(t, s.Valid(), "status %q", s)
	}
	require.False(t, Status("unknown").Valid())
	require.False(t, Status("").Valid())
}

func TestCanCancel(t *testing.T) {
	tomorrow := clock.Today().AddDate(0, 0, 1)
	yesterday := clock.Today().AddDate(0, 0, -1)

	tests := []struct {
		name string
		res  Reservation
		want bool
	}{
		{name: "pending future", res: Reservation{Status: StatusPending, Date: tomorrow}, want: true},
		{name: "approved future", res: Reservation{Status: StatusApproved, Date: tomorrow}, want: true},
		{name: "pending today", res: Reservation{Status: StatusPending, Date: clock.Today()}, want: true},
		{name: "rejected future", res: Reservation{Status: StatusRejected, Date: tomorrow}, want: false},
		{name: "cancelled future", res: Reservation{Status: StatusCancelled, Date: tomorrow}, want: false},
		{name: "approved past", res: Reservation{Status: StatusApproved, Date: yesterday}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.res.CanCancel())
		})
	}
}
