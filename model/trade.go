package model

import "time"

type SideType string
type SignalType string
type TradeKind string

// side (포지션 방향)
const (
	SideFlat  SideType = "flat"
	SideLong  SideType = "long"
	SideShort SideType = "short"
)

// 시그널 종류 (봉 단위 분류)
const (
	SignalNone       SignalType = "none"
	SignalEntryLong  SignalType = "entry_long"
	SignalEntryShort SignalType = "entry_short"
	SignalExit       SignalType = "exit"
)

// 체결 이벤트 종류
const (
	TradeEntry          TradeKind = "ENTRY"
	TradeExitTakeProfit TradeKind = "EXIT_TAKE_PROFIT"
	TradeExitStopLoss   TradeKind = "EXIT_STOP_LOSS"
	TradeExitTrailing   TradeKind = "EXIT_TRAILING"
	TradeExitSignal     TradeKind = "EXIT_SIGNAL"
	TradeExitTime       TradeKind = "EXIT_TIME"
	TradeExitFinal      TradeKind = "EXIT_FINAL"
)

// IsExit : ENTRY를 제외한 모든 이벤트는 청산 이벤트
func (k TradeKind) IsExit() bool {
	return k != TradeEntry
}

// TradeRecord is an append-only log entry emitted on every entry and exit.
// Realized is the sign-adjusted simple return, set on exit events only.
type TradeRecord struct {
	Time     time.Time `json:"time"`
	Kind     TradeKind `json:"kind"`
	Side     SideType  `json:"side"`
	Price    float64   `json:"price"`
	Realized float64   `json:"realized,omitempty"`
	Balance  float64   `json:"balance"`
}

// EquityPoint : 봉 하나당 하나의 (시각, 잔고) 점
type EquityPoint struct {
	Time    time.Time `json:"time"`
	Balance float64   `json:"balance"`
}
