package csvfeed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_LoadFileUnixSeconds(t *testing.T) {
	path := writeCSV(t, "1735689600,100,101,99,100.5,1234\n1735689660,100.5,102,100,101,2345\n")

	candles, err := LoadFile(path, "KRW-BTC")
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, "KRW-BTC", candles[0].Pair)
	assert.Equal(t, time.Unix(1735689600, 0).UTC(), candles[0].Time)
	assert.Equal(t, 100.0, candles[0].Open)
	assert.Equal(t, 100.5, candles[0].Close)
	assert.Equal(t, 1234.0, candles[0].Volume)
	assert.True(t, candles[0].Complete)
}

// 헤더 줄은 자동으로 건너뛴다
func Test_LoadFileWithHeader(t *testing.T) {
	path := writeCSV(t, "timestamp,open,high,low,close,volume\n2025-01-01T09:00:00Z,100,101,99,100.5,1234\n")

	candles, err := LoadFile(path, "KRW-BTC")
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), candles[0].Time)
}

func Test_LoadFileRejectsDuplicateTimestamp(t *testing.T) {
	path := writeCSV(t, "1735689600,100,101,99,100.5,1234\n1735689600,100.5,102,100,101,2345\n")

	_, err := LoadFile(path, "KRW-BTC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func Test_LoadFileRejectsOutOfOrder(t *testing.T) {
	path := writeCSV(t, "1735689660,100,101,99,100.5,1234\n1735689600,100.5,102,100,101,2345\n")

	_, err := LoadFile(path, "KRW-BTC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}

func Test_LoadFileBadRow(t *testing.T) {
	_, err := LoadFile(writeCSV(t, "1735689600,100,101,99\n"), "KRW-BTC")
	assert.Error(t, err)

	_, err = LoadFile(writeCSV(t, "1735689600,abc,101,99,100.5,1234\n"), "KRW-BTC")
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"), "KRW-BTC")
	assert.Error(t, err)
}
