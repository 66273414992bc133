package delay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayMissingInput(t *testing.T) {
	for _, tc := range []struct{ base, real string }{
		{"", ""},
		{"20250113T080000", ""},
		{"", "20250113T080000"},
	} {
		got, err := Delay(tc.base, tc.real)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestDelayOnTime(t *testing.T) {
	got, err := Delay("20250113T080000", "20250113T080000")
	require.NoError(t, err)
	assert.Equal(t, OnTime, got)
}

func TestDelayFormatting(t *testing.T) {
	tests := []struct {
		name string
		base string
		real string
		want string
	}{
		{"three minutes late", "20250113T080000", "20250113T080300", "+3min"},
		{"fifty-nine minutes", "20250113T080000", "20250113T085900", "+59min"},
		{"exactly one hour", "20250113T080000", "20250113T090000", "+1h0min"},
		{"ninety minutes", "20250113T080000", "20250113T093000", "+1h30min"},
		{"across midnight", "20250113T235000", "20250114T001000", "+20min"},
		{"three minutes early", "20250113T080300", "20250113T080000", "+-3min"},
		{"partial minute floors", "20250113T080000", "20250113T080130", "+1min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Delay(tt.base, tt.real)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDelayMalformedInput(t *testing.T) {
	_, err := Delay("not-a-timestamp", "20250113T080000")
	assert.Error(t, err)

	_, err = Delay("20250113T080000", "2025-01-13 08:00")
	assert.Error(t, err)
}

func TestDelayMinutes(t *testing.T) {
	got, err := DelayMinutes("20250113T080000", "20250113T081500")
	require.NoError(t, err)
	assert.Equal(t, 15, got)

	got, err = DelayMinutes("", "20250113T081500")
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestDelayMinutesFloorsNegative(t *testing.T) {
	// 90 seconds early floors to -2 whole minutes, not -1.
	got, err := DelayMinutes("20250113T080130", "20250113T080000")
	require.NoError(t, err)
	assert.Equal(t, -2, got)
}

func TestMaxDelayPicksLarger(t *testing.T) {
	got, err := MaxDelay("+3min", "+10min",
		"20250113T080000", "20250113T080300",
		"20250113T090000", "20250113T091000")
	require.NoError(t, err)
	assert.Equal(t, "+10min", got)
}

func TestMaxDelayTieGoesToDeparture(t *testing.T) {
	got, err := MaxDelay("+5min", "+5min",
		"20250113T080000", "20250113T080500",
		"20250113T090000", "20250113T090500")
	require.NoError(t, err)
	assert.Equal(t, "+5min", got)
}

func TestMaxDelayMissingDataResolvesToDeparture(t *testing.T) {
	got, err := MaxDelay("", "",
		"", "",
		"", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMaxDelayMalformed(t *testing.T) {
	_, err := MaxDelay("+3min", "+5min",
		"garbage", "20250113T080300",
		"20250113T090000", "20250113T090500")
	assert.Error(t, err)
}
