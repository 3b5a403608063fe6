package report

import (
	"math"
	"time"

	"github.com/samber/lo"

	"tanuki/backtest"
	"tanuki/model"
	"tanuki/utils/collection"
	"tanuki/utils/tools"
)

// Summary : 단일 백테스트 결과의 집계 지표.
// 필드 수익률은 전부 단순 수익률(소수)이다.
type Summary struct {
	Pair     string `json:"pair"`
	Strategy string `json:"strategy"`

	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`

	InitialBalance   float64 `json:"initial_balance"`
	FinalBalance     float64 `json:"final_balance"`
	TotalReturn      float64 `json:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return"`
	MaxDrawdown      float64 `json:"max_drawdown"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	ProfitFactor     float64 `json:"profit_factor"`

	AverageWin  float64 `json:"average_win"`
	AverageLoss float64 `json:"average_loss"`
	LargestWin  float64 `json:"largest_win"`
	LargestLoss float64 `json:"largest_loss"`
}

// Summarize aggregates a simulation result. timeframe is used only for the
// annualized return; pass "" to skip annualization.
func Summarize(result *backtest.Result, timeframe string) Summary {
	s := Summary{
		Pair:           result.Pair,
		Strategy:       result.Strategy,
		InitialBalance: result.InitialBalance,
		FinalBalance:   result.FinalBalance,
		TotalReturn:    result.TotalReturn(),
		MaxDrawdown:    MaxDrawdown(result.Equity),
	}

	exits := lo.Filter(result.Trades, func(t model.TradeRecord, _ int) bool {
		return t.Kind.IsExit()
	})
	s.TotalTrades = len(exits)
	if s.TotalTrades == 0 {
		return s
	}

	wins := lo.Filter(exits, func(t model.TradeRecord, _ int) bool { return t.Realized > 0 })
	losses := lo.Filter(exits, func(t model.TradeRecord, _ int) bool { return t.Realized <= 0 })

	s.WinningTrades = len(wins)
	s.LosingTrades = len(losses)
	s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades)

	grossWin := collection.SumBy(wins, func(t model.TradeRecord) float64 { return t.Realized })
	grossLoss := -collection.SumBy(losses, func(t model.TradeRecord) float64 { return t.Realized })

	if len(wins) > 0 {
		s.AverageWin = grossWin / float64(len(wins))
		s.LargestWin = lo.MaxBy(wins, func(a, b model.TradeRecord) bool { return a.Realized > b.Realized }).Realized
	}
	if len(losses) > 0 {
		s.AverageLoss = -grossLoss / float64(len(losses))
		s.LargestLoss = lo.MinBy(losses, func(a, b model.TradeRecord) bool { return a.Realized < b.Realized }).Realized
	}
	if grossLoss > 0 {
		s.ProfitFactor = grossWin / grossLoss
	} else if grossWin > 0 {
		s.ProfitFactor = math.Inf(1)
	}

	s.SharpeRatio = sharpeLike(exits)
	s.AnnualizedReturn = annualize(result, timeframe)

	return s
}

// MaxDrawdown : 에쿼티 커브 피크 대비 최대 하락률(양수 소수).
func MaxDrawdown(equity []model.EquityPoint) float64 {
	peak := 0.0
	maxDD := 0.0
	for _, p := range equity {
		if p.Balance > peak {
			peak = p.Balance
		}
		if peak > 0 {
			dd := (peak - p.Balance) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// sharpeLike : 거래별 수익률 평균/표준편차에 √N을 곱한 값.
// 무위험 수익률 0 가정. 표준편차 0이면 0.
func sharpeLike(exits []model.TradeRecord) float64 {
	n := len(exits)
	if n < 2 {
		return 0
	}

	mean := collection.SumBy(exits, func(t model.TradeRecord) float64 { return t.Realized }) / float64(n)
	variance := collection.SumBy(exits, func(t model.TradeRecord) float64 {
		return math.Pow(t.Realized-mean, 2)
	}) / float64(n)
	stdev := math.Sqrt(variance)
	if stdev == 0 {
		return 0
	}
	return mean / stdev * math.Sqrt(float64(n))
}

func annualize(result *backtest.Result, timeframe string) float64 {
	if timeframe == "" || len(result.Equity) < 2 {
		return 0
	}
	barDur, err := tools.ParseTimeframeToDuration(timeframe)
	if err != nil || barDur == 0 {
		return 0
	}

	span := time.Duration(len(result.Equity)) * barDur
	years := span.Hours() / (24 * 365)
	if years <= 0 {
		return 0
	}
	return math.Pow(1+result.TotalReturn(), 1/years) - 1
}
