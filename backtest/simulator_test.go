package backtest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tanuki/model"
)

// frameFromCloses : 종가 나열로 1분봉 프레임 생성. 시가는 직전 종가.
func frameFromCloses(closes ...float64) *model.Dataframe {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	candles := make([]model.Candle, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		candles[i] = model.Candle{
			Pair:     "KRW-BTC",
			Time:     base.Add(time.Duration(i) * time.Minute),
			Open:     open,
			High:     c * 1.001,
			Low:      c * 0.999,
			Close:    c,
			Volume:   100,
			Complete: true,
		}
	}
	return model.NewDataframe("KRW-BTC", candles)
}

func noneSignals(n int) []model.SignalType {
	out := make([]model.SignalType, n)
	for i := range out {
		out[i] = model.SignalNone
	}
	return out
}

// 익절 0.3% + 트레일링 0.5 + 손절 0.5%, 수수료/슬리피지 없음
func testConfig() Config {
	return Config{
		InitialBalance:       10000,
		PositionFraction:     0.1,
		WarmupPeriod:         0,
		StopLossPct:          0.005,
		TakeProfitPct:        0.003,
		TrailingStopFraction: 0.5,
		FillOnClose:          true,
	}
}

func mustRun(t *testing.T, cfg Config, df *model.Dataframe, signals []model.SignalType) *Result {
	t.Helper()
	sim, err := NewSimulator(cfg)
	require.NoError(t, err)
	result, err := sim.Run(df, signals)
	require.NoError(t, err)
	return result
}

// 100 진입 → 100.5(피크 0.5%, 트레일링 armed) → 100.2(0.2% ≤ 0.25%) 청산.
// 잔고 10000*(1+0.002*0.1) = 10002.0
func Test_TrailingStopAfterTakeProfit(t *testing.T) {
	df := frameFromCloses(100, 100.5, 100.2)
	signals := noneSignals(3)
	signals[0] = model.SignalEntryLong

	result := mustRun(t, testConfig(), df, signals)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.TradeEntry, result.Trades[0].Kind)
	assert.Equal(t, model.TradeExitTrailing, result.Trades[1].Kind)
	assert.InDelta(t, 0.002, result.Trades[1].Realized, 1e-9)
	assert.InDelta(t, 10002.0, result.FinalBalance, 1e-6)
}

// 100 진입 → 99.4 (-0.6% < -0.5%) 손절. 잔고 9994.0
func Test_StopLoss(t *testing.T) {
	df := frameFromCloses(100, 99.4)
	signals := noneSignals(2)
	signals[0] = model.SignalEntryLong

	result := mustRun(t, testConfig(), df, signals)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.TradeExitStopLoss, result.Trades[1].Kind)
	assert.InDelta(t, -0.006, result.Trades[1].Realized, 1e-9)
	assert.InDelta(t, 9994.0, result.FinalBalance, 1e-6)
}

// 경계값 포함: unrealized == -stop_loss_pct 정확히 그 값에서 발동해야 한다
func Test_StopLossInclusiveBoundary(t *testing.T) {
	df := frameFromCloses(100, 99.5)
	signals := noneSignals(2)
	signals[0] = model.SignalEntryLong

	result := mustRun(t, testConfig(), df, signals)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.TradeExitStopLoss, result.Trades[1].Kind)
}

// 트레일링 비율 0이면 익절 기준 도달 즉시 하드 익절
func Test_HardTakeProfitWhenTrailingZero(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingStopFraction = 0

	df := frameFromCloses(100, 100.5)
	signals := noneSignals(2)
	signals[0] = model.SignalEntryLong

	result := mustRun(t, cfg, df, signals)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.TradeExitTakeProfit, result.Trades[1].Kind)
	assert.InDelta(t, 0.005, result.Trades[1].Realized, 1e-9)
}

// 시리즈 끝에 열린 포지션은 마지막 종가로 강제 청산
func Test_ForcedFinalExit(t *testing.T) {
	cfg := testConfig()
	cfg.StopLossPct = 0.05
	cfg.TakeProfitPct = 0.05

	df := frameFromCloses(100, 100.1, 100.05)
	signals := noneSignals(3)
	signals[0] = model.SignalEntryLong

	result := mustRun(t, cfg, df, signals)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.TradeExitFinal, result.Trades[1].Kind)
	// 마지막 equity 포인트는 강제 청산 반영 후 잔고와 같아야 한다
	require.Len(t, result.Equity, 3)
	assert.Equal(t, result.FinalBalance, result.Equity[2].Balance)
}

// 청산이 일어난 봉에서는 새 진입 신호를 무시한다
func Test_NoSameBarReentry(t *testing.T) {
	df := frameFromCloses(100, 99.4, 99.3)
	signals := noneSignals(3)
	signals[0] = model.SignalEntryLong
	signals[1] = model.SignalEntryLong // 손절 봉과 같은 봉

	result := mustRun(t, testConfig(), df, signals)

	assert.Equal(t, 1, result.Entries)
	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.TradeExitStopLoss, result.Trades[1].Kind)
}

// 보유 봉 수 기준 시간 청산
func Test_TimeExit(t *testing.T) {
	cfg := testConfig()
	cfg.StopLossPct = 0.05
	cfg.TakeProfitPct = 0.05
	cfg.TimeExitBars = 2

	df := frameFromCloses(100, 100.01, 100.02, 100.03)
	signals := noneSignals(4)
	signals[0] = model.SignalEntryLong

	result := mustRun(t, cfg, df, signals)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.TradeExitTime, result.Trades[1].Kind)
	assert.Equal(t, df.Time[2], result.Trades[1].Time)
}

// 반대 방향 진입 시그널은 청산 시그널로 동작한다
func Test_OpposingSignalExit(t *testing.T) {
	cfg := testConfig()
	cfg.StopLossPct = 0.05
	cfg.TakeProfitPct = 0.05

	df := frameFromCloses(100, 100.01, 100.02)
	signals := noneSignals(3)
	signals[0] = model.SignalEntryLong
	signals[1] = model.SignalEntryShort

	result := mustRun(t, cfg, df, signals)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.TradeExitSignal, result.Trades[1].Kind)
}

// 숏 포지션의 미실현 수익은 부호 반전
func Test_ShortPosition(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingStopFraction = 0

	df := frameFromCloses(100, 99.7)
	signals := noneSignals(2)
	signals[0] = model.SignalEntryShort

	result := mustRun(t, cfg, df, signals)

	require.Len(t, result.Trades, 2)
	assert.Equal(t, model.SideShort, result.Trades[1].Side)
	assert.Equal(t, model.TradeExitTakeProfit, result.Trades[1].Kind)
	assert.InDelta(t, 0.003, result.Trades[1].Realized, 1e-9)
}

// 수수료 왕복 + 슬리피지는 실현 수익률에서 차감
func Test_FeesAndSlippage(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingStopFraction = 0
	cfg.FeeRate = 0.0005
	cfg.Slippage = 0.0002

	df := frameFromCloses(100, 100.5)
	signals := noneSignals(2)
	signals[0] = model.SignalEntryLong

	result := mustRun(t, cfg, df, signals)

	require.Len(t, result.Trades, 2)
	assert.InDelta(t, 0.005-0.0012, result.Trades[1].Realized, 1e-9)
}

// FillOnClose=false면 진입 체결가는 해당 봉 시가
func Test_FillAtOpen(t *testing.T) {
	cfg := testConfig()
	cfg.FillOnClose = false
	cfg.StopLossPct = 0.05
	cfg.TakeProfitPct = 0.05

	df := frameFromCloses(100, 101, 101.5)
	signals := noneSignals(3)
	signals[1] = model.SignalEntryLong

	result := mustRun(t, cfg, df, signals)

	require.NotEmpty(t, result.Trades)
	// 1번 봉 시가 = 0번 봉 종가 = 100
	assert.Equal(t, 100.0, result.Trades[0].Price)
}

// 잔고는 청산 시점에만 바뀐다
func Test_BalanceOnlyMutatesOnExit(t *testing.T) {
	cfg := testConfig()
	cfg.StopLossPct = 0.05
	cfg.TakeProfitPct = 0.05

	df := frameFromCloses(100, 100.1, 100.2, 99.9, 100.0)
	signals := noneSignals(5)
	signals[0] = model.SignalEntryLong

	result := mustRun(t, cfg, df, signals)

	require.Len(t, result.Equity, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 10000.0, result.Equity[i].Balance, "open position must not move balance at bar %d", i)
	}
	assert.NotEqual(t, 10000.0, result.Equity[4].Balance)
}

// 진입 없는 실행은 유효한 NoTrades 결과
func Test_NoTradesResult(t *testing.T) {
	df := frameFromCloses(100, 100.1, 100.2)
	result := mustRun(t, testConfig(), df, noneSignals(3))

	assert.True(t, result.NoTrades())
	assert.Equal(t, 10000.0, result.FinalBalance)
	assert.Empty(t, result.Trades)
}

// lookback보다 짧은 시계열은 DataInsufficientError
func Test_DataInsufficient(t *testing.T) {
	cfg := testConfig()
	cfg.WarmupPeriod = 14

	df := frameFromCloses(100, 100.1, 100.2, 100.3, 100.4)
	sim, err := NewSimulator(cfg)
	require.NoError(t, err)

	_, err = sim.Run(df, noneSignals(5))
	var insufficient DataInsufficientError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 14, insufficient.Required)
	assert.Equal(t, 5, insufficient.Got)
}

func Test_SignalLengthMismatch(t *testing.T) {
	df := frameFromCloses(100, 100.1)
	sim, err := NewSimulator(testConfig())
	require.NoError(t, err)

	_, err = sim.Run(df, noneSignals(3))
	require.Error(t, err)
}

// 타임스탬프 역행은 거부
func Test_OutOfOrderTimestamps(t *testing.T) {
	df := frameFromCloses(100, 100.1, 100.2)
	df.Time[2] = df.Time[0]

	sim, err := NewSimulator(testConfig())
	require.NoError(t, err)

	_, err = sim.Run(df, noneSignals(3))
	require.Error(t, err)
	assert.False(t, errors.As(err, &DataInsufficientError{}))
}

// 같은 입력이면 결과도 같아야 한다 (결정성)
func Test_Deterministic(t *testing.T) {
	df := frameFromCloses(100, 100.5, 100.2, 99.8, 100.4, 100.9, 100.3)
	signals := noneSignals(7)
	signals[0] = model.SignalEntryLong
	signals[4] = model.SignalEntryLong

	first := mustRun(t, testConfig(), df, signals)
	second := mustRun(t, testConfig(), df, signals)

	assert.Equal(t, first.FinalBalance, second.FinalBalance)
	assert.Equal(t, first.Trades, second.Trades)
	assert.Equal(t, first.Equity, second.Equity)
}
