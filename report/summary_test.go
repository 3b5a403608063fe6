package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tanuki/backtest"
	"tanuki/model"
)

func sampleResult() *backtest.Result {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return &backtest.Result{
		Pair:           "KRW-BTC",
		Strategy:       "scalping",
		InitialBalance: 10000,
		FinalBalance:   10010,
		Entries:        2,
		Wins:           1,
		Trades: []model.TradeRecord{
			{Time: base, Kind: model.TradeEntry, Side: model.SideLong, Price: 100, Balance: 10000},
			{Time: base.Add(1 * time.Minute), Kind: model.TradeExitTrailing, Side: model.SideLong, Price: 100.3, Realized: 0.003, Balance: 10030},
			{Time: base.Add(2 * time.Minute), Kind: model.TradeEntry, Side: model.SideLong, Price: 100.3, Balance: 10030},
			{Time: base.Add(3 * time.Minute), Kind: model.TradeExitStopLoss, Side: model.SideLong, Price: 99.7, Realized: -0.002, Balance: 10010},
		},
		Equity: []model.EquityPoint{
			{Time: base, Balance: 10000},
			{Time: base.Add(1 * time.Minute), Balance: 10030},
			{Time: base.Add(2 * time.Minute), Balance: 10030},
			{Time: base.Add(3 * time.Minute), Balance: 10010},
		},
	}
}

func Test_Summarize(t *testing.T) {
	s := Summarize(sampleResult(), "1m")

	// 청산 기록만 거래로 센다 (진입은 제외)
	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.InDelta(t, 0.5, s.WinRate, 1e-9)

	assert.InDelta(t, 0.001, s.TotalReturn, 1e-9)
	assert.InDelta(t, 0.003, s.AverageWin, 1e-9)
	assert.InDelta(t, -0.002, s.AverageLoss, 1e-9)
	assert.InDelta(t, 0.003, s.LargestWin, 1e-9)
	assert.InDelta(t, -0.002, s.LargestLoss, 1e-9)
	assert.InDelta(t, 1.5, s.ProfitFactor, 1e-9)

	// 10030 피크에서 10010까지 하락
	assert.InDelta(t, 20.0/10030.0, s.MaxDrawdown, 1e-9)
}

func Test_SummarizeNoExits(t *testing.T) {
	result := &backtest.Result{Pair: "KRW-BTC", InitialBalance: 10000, FinalBalance: 10000}

	s := Summarize(result, "1m")
	assert.Equal(t, 0, s.TotalTrades)
	assert.Equal(t, 0.0, s.WinRate)
	assert.Equal(t, 0.0, s.TotalReturn)
}

func Test_MaxDrawdown(t *testing.T) {
	base := time.Now()
	equity := []model.EquityPoint{
		{Time: base, Balance: 100},
		{Time: base, Balance: 120},
		{Time: base, Balance: 90},
		{Time: base, Balance: 130},
		{Time: base, Balance: 110},
	}

	// 피크 120 → 90이 최대 하락
	assert.InDelta(t, 30.0/120.0, MaxDrawdown(equity), 1e-9)
	assert.Equal(t, 0.0, MaxDrawdown(nil))
}

func Test_WriteJSONAndCSV(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()
	summary := Summarize(result, "1m")

	jsonPath := filepath.Join(dir, "report.json")
	require.NoError(t, WriteJSON(jsonPath, result, summary))

	body, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload, "summary")
	assert.Contains(t, payload, "result")

	csvPath := filepath.Join(dir, "trades.csv")
	require.NoError(t, WriteTradesCSV(csvPath, result))

	csvBody, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(csvBody), "EXIT_TRAILING")
}
