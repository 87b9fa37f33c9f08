package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "09:30", want: 9*60 + 30},
		{input: "23:59", want: 23*60 + 59},
		{input: "14:15:00", want: 14*60 + 15},
		{input: "14:15:59", want: 14*60 + 15}, // seconds discarded
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "12", wantErr: true},
		{input: "", wantErr: true},
		{input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayFormatting(t *testing.T) {
	tod, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	require.Equal(t, "09:05", tod.String())
	require.Equal(t, "09:05:00", tod.SQL())
}

func TestTimeOfDayBefore(t *testing.T) {
	a, _ := ParseTimeOfDay("10:00")
	b, _ := ParseTimeOfDay("10:01")
	require.True(t, a.Before(b))
	require.False(t, b.Before(a))
	require.False(t, a.Before(a))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-01")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/09/2026")
	require.Error(t, err)

	_, err = ParseDate("2026-13-01")
	require.Error(t, err)
}

func TestDateOf(t *testing.T) {
	in := time.Date(2026, 3, 14, 15, 9, 26, 535, time.UTC)
	require.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), DateOf(in))
}

func TestFormatDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	require.Equal(t, "2026-02-28", FormatDate(d))
}
