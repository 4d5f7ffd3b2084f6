package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeStringValidate(t *testing.T) {
	assert.NoError(t, TimeString("10:00").Validate())
	assert.NoError(t, TimeString("00:00").Validate())
	assert.NoError(t, TimeString("23:59").Validate())

	assert.Error(t, TimeString("24:00").Validate())
	assert.Error(t, TimeString("10:60").Validate())
	assert.Error(t, TimeString("9:00").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("10-00").Validate())
}

func TestTimeStringAddMinutes(t *testing.T) {
	tests := []struct {
		name     string
		start    TimeString
		minutes  int
		expected TimeString
		wantErr  bool
	}{
		{name: "simple add", start: "10:00", minutes: 50, expected: "10:50"},
		{name: "hour rollover", start: "10:30", minutes: 45, expected: "11:15"},
		{name: "end of day", start: "23:10", minutes: 50, expected: "24:00"},
		{name: "past midnight", start: "23:30", minutes: 50, wantErr: true},
		{name: "negative beyond midnight", start: "00:10", minutes: -20, wantErr: true},
		{name: "invalid source", start: "xx:yy", minutes: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTimeStringComparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("08:30"))
	assert.False(t, TimeString("08:30").IsAfter("08:30"))

	// "24:00" допустим как конец интервала
	assert.True(t, TimeString("23:59").IsBefore("24:00"))
	assert.True(t, TimeString("24:00").IsAfter("23:00"))
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("10:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
