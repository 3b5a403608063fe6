package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tanuki/chartview"
	"tanuki/exchange"
	"tanuki/runner"
	"tanuki/strategy"
	"tanuki/utils/log"
	"tanuki/webserver"
)

func main() {
	pair := flag.String("pair", "KRW-BTC", "market pair, e.g. KRW-BTC")
	timeframe := flag.String("timeframe", "1m", "candle timeframe, e.g. 1m, 5m, 1d")
	family := flag.String("strategy", "scalping", "strategy family: scalping|bollinger|macd-cross|breakout")
	limit := flag.Int("limit", 2000, "number of candles to fetch")
	balance := flag.Float64("balance", 10000000, "initial balance")
	fraction := flag.Float64("fraction", 0.1, "position fraction per trade")
	fee := flag.Float64("fee", 0.0005, "one-way fee rate")
	slippage := flag.Float64("slippage", 0.0002, "slippage per round trip")
	chartAddr := flag.String("chart", ":8081", "chartview listen address")
	apiPort := flag.String("api", "8080", "results API port")
	flag.Parse()

	ruleset, err := strategy.FromName(*family)
	if err != nil {
		log.Fatal(err)
	}

	// 1) 업비트 공개 REST에서 캔들 수집
	upbit := exchange.NewUpbit()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	candles, err := upbit.CandlesByLimit(ctx, *pair, *timeframe, *limit)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Loaded %d candles for %s-%s", len(candles), *pair, *timeframe)

	// 2) 백테스트 실행
	run, err := runner.NewRunner(runner.Config{
		Pair:             *pair,
		Timeframe:        *timeframe,
		InitialBalance:   *balance,
		PositionFraction: *fraction,
		FeeRate:          *fee,
		Slippage:         *slippage,
		Chart:            chartview.GlobalChartData,
	}, ruleset)
	if err != nil {
		log.Fatal(err)
	}

	result, summary, err := run.Run(candles)
	if err != nil {
		log.Fatal(err)
	}

	// 3) 차트 + 결과 API 서빙
	ws := webserver.NewWebServer()
	ws.SetResult(result, summary)

	go chartview.StartChartServer(*chartAddr)
	go ws.Start(*apiPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Infof("Shutting down gracefully...")
}
