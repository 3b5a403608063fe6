package main

import (
	"flag"
	"fmt"

	"tanuki/csvfeed"
	"tanuki/runner"
	"tanuki/strategy"
	"tanuki/utils/log"
)

// CSV 한 개로 단일 백테스트를 돌리고 리포트 파일을 남기는 프로그램.
func main() {
	csvPath := flag.String("csv", "", "OHLCV csv file (timestamp,open,high,low,close,volume)")
	pair := flag.String("pair", "KRW-BTC", "pair label for reports")
	timeframe := flag.String("timeframe", "1m", "timeframe label, used for annualization")
	family := flag.String("strategy", "scalping", "strategy family: scalping|bollinger|macd-cross|breakout")
	balance := flag.Float64("balance", 10000000, "initial balance")
	fraction := flag.Float64("fraction", 0.1, "position fraction per trade")
	fee := flag.Float64("fee", 0.0005, "one-way fee rate")
	slippage := flag.Float64("slippage", 0.0002, "slippage per round trip")
	reportDir := flag.String("out", ".", "report output directory")
	flag.Parse()

	if *csvPath == "" {
		log.Fatal(fmt.Errorf("-csv is required"))
	}

	candles, err := csvfeed.LoadFile(*csvPath, *pair)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Loaded %d candles from %s", len(candles), *csvPath)

	ruleset, err := strategy.FromName(*family)
	if err != nil {
		log.Fatal(err)
	}

	run, err := runner.NewRunner(runner.Config{
		Pair:             *pair,
		Timeframe:        *timeframe,
		InitialBalance:   *balance,
		PositionFraction: *fraction,
		FeeRate:          *fee,
		Slippage:         *slippage,
		ReportDir:        *reportDir,
	}, ruleset)
	if err != nil {
		log.Fatal(err)
	}

	result, summary, err := run.Run(candles)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Backtest completed.\nStrategy: %s\nTrades: %d (win rate %.2f)\nFinal balance: %.2f (return %.4f, maxDD %.4f)\n",
		result.Strategy, summary.TotalTrades, summary.WinRate, result.FinalBalance, summary.TotalReturn, summary.MaxDrawdown)
}
