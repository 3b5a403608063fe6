package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tanuki/backtest"
	"tanuki/chartview"
	"tanuki/csvfeed"
	"tanuki/model"
	"tanuki/notification"
	"tanuki/strategy"
	"tanuki/sweep"
	"tanuki/utils/log"
	"tanuki/webserver"
)

// 스캘핑 파라미터 그리드 스윕 프로그램. 체크포인트 파일이 있으면 완료된
// 조합은 건너뛰고 이어서 돌린다. 끝나면 최적 조합을 차트/API로 서빙하고
// (옵션) 텔레그램으로 요약을 보낸다.
func main() {
	csvPath := flag.String("csv", "", "OHLCV csv file (timestamp,open,high,low,close,volume)")
	pair := flag.String("pair", "KRW-BTC", "pair label for reports")
	timeframe := flag.String("timeframe", "1m", "timeframe label, used for annualization")
	balance := flag.Float64("balance", 10000000, "initial balance")
	fraction := flag.Float64("fraction", 0.1, "position fraction per trade")
	fee := flag.Float64("fee", 0.0005, "one-way fee rate")
	slippage := flag.Float64("slippage", 0.0002, "slippage per round trip")
	workers := flag.Int("workers", 4, "parallel workers")
	checkpointPath := flag.String("checkpoint", "sweep_checkpoint.json", "completed-combination checkpoint file")
	serve := flag.Bool("serve", false, "serve chart + results API after the sweep")
	chartAddr := flag.String("chart", ":8081", "chartview listen address")
	apiPort := flag.String("api", "8080", "results API port")
	flag.Parse()

	if *csvPath == "" {
		log.Fatal(fmt.Errorf("-csv is required"))
	}

	candles, err := csvfeed.LoadFile(*csvPath, *pair)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Loaded %d candles from %s", len(candles), *csvPath)

	grid := sweep.Grid{
		"stop_loss_pct":          {0.003, 0.005, 0.01},
		"take_profit_pct":        {0.002, 0.003, 0.005},
		"trailing_stop_fraction": {0.3, 0.5},
		"volume_ratio_min":       {1.2, 1.5, 2.0},
		"rsi_long_min":           {45, 50, 55},
	}
	log.Infof("Sweeping %d combinations with %d workers", grid.Size(), *workers)

	run := scalpingRun(candles, *pair, backtest.Config{
		InitialBalance:   *balance,
		PositionFraction: *fraction,
		FeeRate:          *fee,
		Slippage:         *slippage,
		FillOnClose:      true,
	})

	sweepRunner := sweep.NewRunner(*workers, *timeframe, sweep.NewFileCheckpoint(*checkpointPath), run)
	outcomes, err := sweepRunner.Execute(grid)
	if err != nil {
		log.Fatal(err)
	}

	counts := map[sweep.Status]int{}
	for _, o := range outcomes {
		counts[o.Status]++
	}
	log.Infof("Sweep done: completed=%d no_trades=%d skipped=%d failed=%d",
		counts[sweep.StatusCompleted], counts[sweep.StatusNoTrades],
		counts[sweep.StatusSkipped], counts[sweep.StatusFailed])

	best, found := sweep.Best(outcomes)
	if !found {
		log.Warnf("no combination completed with trades")
		return
	}
	fmt.Printf("Best: %s\n  return=%.4f winRate=%.2f maxDD=%.4f trades=%d\n",
		best.Key, best.Summary.TotalReturn, best.Summary.WinRate,
		best.Summary.MaxDrawdown, best.Summary.TotalTrades)

	if token, chatID := os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"); token != "" && chatID != "" {
		notifier := notification.NewTelegramNotifier(token, chatID)
		notifier.SweepNotifier(best.Key, best.Summary, len(outcomes), counts[sweep.StatusCompleted])
	}

	if *serve {
		serveBest(candles, *pair, best, outcomes, *chartAddr, *apiPort, backtest.Config{
			InitialBalance:   *balance,
			PositionFraction: *fraction,
			FeeRate:          *fee,
			Slippage:         *slippage,
			FillOnClose:      true,
		})
	}
}

// scalpingRun : 조합 하나 → 스캘핑 백테스트 한 번. 각 워커가 자기만의
// Dataframe과 시뮬레이터를 만들기 때문에 공유 상태가 없다.
func scalpingRun(candles []model.Candle, pair string, simBase backtest.Config) sweep.RunFunc {
	return func(combo sweep.Combination) (*backtest.Result, error) {
		ruleset, err := strategy.NewScalping(scalpingConfig(combo))
		if err != nil {
			return nil, err
		}
		return runScalping(candles, pair, ruleset, simBase)
	}
}

func runScalping(candles []model.Candle, pair string, ruleset *strategy.Scalping, simBase backtest.Config) (*backtest.Result, error) {
	df := model.NewDataframe(pair, candles)
	ruleset.Indicators(df)
	signals := strategy.Signals(df, ruleset)

	cfg := simBase
	cfg.WarmupPeriod = ruleset.WarmupPeriod()
	exits := ruleset.Exits()
	cfg.StopLossPct = exits.StopLossPct
	cfg.TakeProfitPct = exits.TakeProfitPct
	cfg.TrailingStopFraction = exits.TrailingStopFraction
	cfg.TimeExitBars = exits.TimeExitBars

	sim, err := backtest.NewSimulator(cfg)
	if err != nil {
		return nil, err
	}
	result, err := sim.Run(df, signals)
	if err != nil {
		return nil, err
	}
	result.Strategy = ruleset.Name()
	return result, nil
}

// scalpingConfig : 그리드 조합 값을 기본 설정 위에 덮어쓴다
func scalpingConfig(combo sweep.Combination) strategy.ScalpingConfig {
	cfg := strategy.DefaultScalpingConfig()
	if v, ok := combo["stop_loss_pct"]; ok {
		cfg.StopLossPct = v
	}
	if v, ok := combo["take_profit_pct"]; ok {
		cfg.TakeProfitPct = v
	}
	if v, ok := combo["trailing_stop_fraction"]; ok {
		cfg.TrailingStopFraction = v
	}
	if v, ok := combo["time_exit_bars"]; ok {
		cfg.TimeExitBars = int(v)
	}
	if v, ok := combo["volume_ratio_min"]; ok {
		cfg.VolumeRatioMin = v
	}
	if v, ok := combo["volatility_min"]; ok {
		cfg.VolatilityMin = v
	}
	if v, ok := combo["rsi_long_min"]; ok {
		cfg.RSILongMin = v
	}
	if v, ok := combo["rsi_long_max"]; ok {
		cfg.RSILongMax = v
	}
	return cfg
}

// serveBest : 최적 조합을 다시 돌려 차트 스토어에 싣고 차트/API 서버를 띄운다
func serveBest(candles []model.Candle, pair string, best sweep.Outcome,
	outcomes []sweep.Outcome, chartAddr, apiPort string, simBase backtest.Config) {
	combo, err := sweep.ParseKey(best.Key)
	if err != nil {
		log.Errorf("failed to parse best key %q: %v", best.Key, err)
		return
	}
	ruleset, err := strategy.NewScalping(scalpingConfig(combo))
	if err != nil {
		log.Errorf("failed to rebuild best ruleset: %v", err)
		return
	}

	result, err := runScalping(candles, pair, ruleset, simBase)
	if err != nil {
		log.Errorf("failed to rerun best combination: %v", err)
		return
	}

	df := model.NewDataframe(pair, candles)
	chartIndicators := ruleset.Indicators(df)
	chartview.GlobalChartData.SetBacktest(candles, chartIndicators, result.Trades, nil)
	// 자본 곡선은 점 단위로 밀어 WS 구독 브라우저에도 흘러가게 한다
	for _, point := range result.Equity {
		chartview.GlobalChartData.AppendEquityPoint(point)
	}

	ws := webserver.NewWebServer()
	ws.SetResult(result, best.Summary)
	ws.SetSweep(outcomes)

	go chartview.StartChartServer(chartAddr)
	go ws.Start(apiPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Infof("Shutting down gracefully...")
}
