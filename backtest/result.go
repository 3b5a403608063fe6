package backtest

import (
	"fmt"

	"tanuki/model"
)

// DataInsufficientError : lookback을 채우지 못할 만큼 짧은 시계열.
// 배치(스윕) 호출자는 이 조합을 skip 처리해야 하며, 크래시 사유가 아니다.
type DataInsufficientError struct {
	Required int
	Got      int
}

func (e DataInsufficientError) Error() string {
	return fmt.Sprintf("insufficient data: need more than %d bars, got %d", e.Required, e.Got)
}

// Result holds the full output of a single simulation run. The trade log is
// append-only; past records are never mutated.
type Result struct {
	Pair           string              `json:"pair"`
	Strategy       string              `json:"strategy"`
	InitialBalance float64             `json:"initial_balance"`
	FinalBalance   float64             `json:"final_balance"`
	Entries        int                 `json:"entries"`
	Wins           int                 `json:"wins"`
	Trades         []model.TradeRecord `json:"trades"`
	Equity         []model.EquityPoint `json:"equity"`
}

// NoTrades reports whether the run produced no entries at all. A no-trade run
// is a valid outcome, distinct from a run that traded and ended flat — sweep
// callers record it as "no result" instead of a zero return.
func (r *Result) NoTrades() bool {
	return r.Entries == 0
}

// TotalReturn : (최종잔고-초기잔고)/초기잔고
func (r *Result) TotalReturn() float64 {
	if r.InitialBalance == 0 {
		return 0
	}
	return (r.FinalBalance - r.InitialBalance) / r.InitialBalance
}
