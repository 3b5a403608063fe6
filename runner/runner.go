package runner

import (
	"fmt"
	"path/filepath"

	"tanuki/backtest"
	"tanuki/chartview"
	"tanuki/interfaces"
	"tanuki/model"
	"tanuki/report"
	"tanuki/strategy"
	"tanuki/utils/log"
)

// Config : 단일 백테스트 실행 묶음 설정.
// 차트/리포트/알림은 모두 선택 사항이다.
type Config struct {
	Pair      string
	Timeframe string

	InitialBalance   float64
	PositionFraction float64
	FeeRate          float64
	Slippage         float64

	ReportDir string
	Chart     *chartview.ChartDataStore
	Notifier  interfaces.Notifier
}

// Runner : 캔들 + 룰셋을 받아 시뮬레이션 → 요약 → 차트/리포트/알림까지
// 한 번에 돌리는 오케스트레이터. programs/의 CLI가 사용한다.
type Runner struct {
	cfg     Config
	ruleset strategy.Ruleset
}

func NewRunner(cfg Config, ruleset strategy.Ruleset) (*Runner, error) {
	if ruleset == nil {
		return nil, fmt.Errorf("ruleset is required")
	}
	return &Runner{cfg: cfg, ruleset: ruleset}, nil
}

// Run : 캔들 전체에 대해 지표 계산 → 신호 생성 → 시뮬레이션 → 요약
func (r *Runner) Run(candles []model.Candle) (*backtest.Result, report.Summary, error) {
	df := model.NewDataframe(r.cfg.Pair, candles)

	log.Infof("[Runner] %s %s: %d candles, strategy=%s warmup=%d",
		r.cfg.Pair, r.cfg.Timeframe, df.Length(), r.ruleset.Name(), r.ruleset.WarmupPeriod())

	chartIndicators := r.ruleset.Indicators(df)
	signals := strategy.Signals(df, r.ruleset)

	exits := r.ruleset.Exits()
	sim, err := backtest.NewSimulator(backtest.Config{
		InitialBalance:       r.cfg.InitialBalance,
		PositionFraction:     r.cfg.PositionFraction,
		WarmupPeriod:         r.ruleset.WarmupPeriod(),
		StopLossPct:          exits.StopLossPct,
		TakeProfitPct:        exits.TakeProfitPct,
		TrailingStopFraction: exits.TrailingStopFraction,
		TimeExitBars:         exits.TimeExitBars,
		FeeRate:              r.cfg.FeeRate,
		Slippage:             r.cfg.Slippage,
		FillOnClose:          r.ruleset.FillOnClose(),
	})
	if err != nil {
		return nil, report.Summary{}, err
	}

	result, err := sim.Run(df, signals)
	if err != nil {
		return nil, report.Summary{}, err
	}
	result.Strategy = r.ruleset.Name()

	summary := report.Summarize(result, r.cfg.Timeframe)
	log.Infof("[Runner] %s: trades=%d winRate=%.2f totalReturn=%.4f maxDD=%.4f",
		result.Strategy, summary.TotalTrades, summary.WinRate, summary.TotalReturn, summary.MaxDrawdown)

	if r.cfg.Chart != nil {
		r.cfg.Chart.SetBacktest(candles, chartIndicators, result.Trades, result.Equity)
	}

	if r.cfg.ReportDir != "" {
		if err := r.writeReports(result, summary); err != nil {
			log.Warnf("[Runner] failed to write reports: %v", err)
		}
	}

	if r.cfg.Notifier != nil {
		msg := fmt.Sprintf("[%s/%s] %s finished: trades=%d return=%.4f",
			r.cfg.Pair, r.cfg.Timeframe, result.Strategy, summary.TotalTrades, summary.TotalReturn)
		if err := r.cfg.Notifier.SendNotification(msg); err != nil {
			log.Warnf("[Runner] notification failed: %v", err)
		}
	}

	return result, summary, nil
}

func (r *Runner) writeReports(result *backtest.Result, summary report.Summary) error {
	base := fmt.Sprintf("%s_%s_%s", result.Pair, r.cfg.Timeframe, result.Strategy)
	jsonPath := filepath.Join(r.cfg.ReportDir, base+".json")
	csvPath := filepath.Join(r.cfg.ReportDir, base+"_trades.csv")

	if err := report.WriteJSON(jsonPath, result, summary); err != nil {
		return err
	}
	if err := report.WriteTradesCSV(csvPath, result); err != nil {
		return err
	}
	log.Infof("[Runner] wrote %s and %s", jsonPath, csvPath)
	return nil
}
