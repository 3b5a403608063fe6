package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MapPeriodToCandleEndpoint(t *testing.T) {
	cases := map[string]string{
		"1s": "seconds",
		"1m": "minutes/1",
		"1h": "minutes/60",
		"4h": "minutes/240",
		"1d": "days",
		"1w": "weeks",
	}
	for period, want := range cases {
		got, err := MapPeriodToCandleEndpoint(period)
		require.NoError(t, err, period)
		assert.Equal(t, want, got)
	}

	_, err := MapPeriodToCandleEndpoint("2m")
	assert.Error(t, err)
}

func Test_ParseTimeframeToDuration(t *testing.T) {
	d, err := ParseTimeframeToDuration("1m")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	d, err = ParseTimeframeToDuration("1d")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, d)

	_, err = ParseTimeframeToDuration("7m")
	assert.Error(t, err)
}

// KST 자정 기준으로 잘라야 한다 (UTC 기준 Truncate와 다름)
func Test_TruncateKST(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	input := time.Date(2025, 1, 1, 10, 37, 12, 0, loc)
	got, err := TruncateKST(input, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, loc).Unix(), got.Unix())

	got, err = TruncateKST(input, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Unix(), got.Unix())
}
