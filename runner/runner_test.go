package runner

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tanuki/chartview"
	"tanuki/indicator"
	"tanuki/model"
	"tanuki/strategy"
)

// stubRuleset : 1번 봉에서 진입 한 번만 내는 최소 룰셋
type stubRuleset struct {
	exits strategy.ExitRules
}

func (s stubRuleset) Name() string                                              { return "stub" }
func (s stubRuleset) WarmupPeriod() int                                         { return 1 }
func (s stubRuleset) FillOnClose() bool                                         { return true }
func (s stubRuleset) Exits() strategy.ExitRules                                 { return s.exits }
func (s stubRuleset) Indicators(df *model.Dataframe) []indicator.ChartIndicator { return nil }
func (s stubRuleset) Signal(df *model.Dataframe, i int) model.SignalType {
	if i == 1 {
		return model.SignalEntryLong
	}
	return model.SignalNone
}

func testCandles(closes ...float64) []model.Candle {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	candles := make([]model.Candle, len(closes))
	for i, c := range closes {
		candles[i] = model.Candle{
			Pair: "KRW-BTC", Time: base.Add(time.Duration(i) * time.Minute),
			Open: c, High: c, Low: c, Close: c, Volume: 100,
		}
	}
	return candles
}

func Test_RunnerEndToEnd(t *testing.T) {
	store := chartview.NewChartDataStore()
	run, err := NewRunner(Config{
		Pair:             "KRW-BTC",
		Timeframe:        "1m",
		InitialBalance:   10000,
		PositionFraction: 0.1,
		ReportDir:        t.TempDir(),
		Chart:            store,
	}, stubRuleset{exits: strategy.DefaultExitRules()})
	require.NoError(t, err)

	// 100 진입 → 100.5 → 100.2 트레일링 청산
	result, summary, err := run.Run(testCandles(100, 100, 100.5, 100.2))
	require.NoError(t, err)

	assert.Equal(t, "stub", result.Strategy)
	assert.Equal(t, 1, result.Entries)
	assert.InDelta(t, 10002.0, result.FinalBalance, 1e-6)
	assert.Equal(t, 1, summary.TotalTrades)

	// 차트 스토어에도 같은 실행 결과가 실려야 한다
	assert.Len(t, store.GetCandles(), 4)
	assert.Len(t, store.GetTrades(), 2)
	assert.Len(t, store.GetEquity(), 4)
}

func Test_RunnerWritesReports(t *testing.T) {
	dir := t.TempDir()
	run, err := NewRunner(Config{
		Pair:             "KRW-BTC",
		Timeframe:        "1m",
		InitialBalance:   10000,
		PositionFraction: 0.1,
		ReportDir:        dir,
	}, stubRuleset{exits: strategy.DefaultExitRules()})
	require.NoError(t, err)

	result, _, err := run.Run(testCandles(100, 100, 100.5, 100.2))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.FileExists(t, filepath.Join(dir, "KRW-BTC_1m_stub.json"))
	assert.FileExists(t, filepath.Join(dir, "KRW-BTC_1m_stub_trades.csv"))
}

func Test_RunnerRequiresRuleset(t *testing.T) {
	_, err := NewRunner(Config{}, nil)
	assert.Error(t, err)
}
