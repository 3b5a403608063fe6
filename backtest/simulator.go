package backtest

import (
	"fmt"
	"time"

	"tanuki/model"
)

// Config : 단일 시뮬레이션 실행 파라미터.
// FeeRate는 편도 수수료율이고 청산 시 왕복으로 차감한다. Slippage도 수익률
// 기준으로 함께 차감한다. FillOnClose는 전략 패밀리의 체결 규칙을 따른다.
type Config struct {
	InitialBalance   float64
	PositionFraction float64
	WarmupPeriod     int

	StopLossPct          float64
	TakeProfitPct        float64
	TrailingStopFraction float64
	TimeExitBars         int

	FeeRate     float64
	Slippage    float64
	FillOnClose bool
}

func (c Config) validate() error {
	if c.InitialBalance <= 0 {
		return fmt.Errorf("initial balance must be positive, got %f", c.InitialBalance)
	}
	if c.PositionFraction <= 0 || c.PositionFraction > 1 {
		return fmt.Errorf("position fraction must be in (0,1], got %f", c.PositionFraction)
	}
	return nil
}

// position : 시뮬레이터의 단일 포지션 상태. Flat으로 시작해서 Flat으로 끝난다.
type position struct {
	side       model.SideType
	entryPrice float64
	entryIndex int

	// 진입 이후 유리한 방향 미실현 수익률의 최댓값. 진입 시 0으로 리셋.
	highestFavorable float64
}

func (p *position) reset() {
	p.side = model.SideFlat
	p.entryPrice = 0
	p.entryIndex = 0
	p.highestFavorable = 0
}

// unrealized returns the sign-adjusted simple return against price.
func (p *position) unrealized(price float64) float64 {
	if p.side == model.SideShort {
		return (p.entryPrice - price) / p.entryPrice
	}
	return (price - p.entryPrice) / p.entryPrice
}

// Simulator walks bar-by-bar through a frame plus per-bar signals and runs
// the single-position state machine. It is single-threaded, deterministic,
// and never panics on well-formed input; degenerate indicator values are the
// signal generator's problem and arrive here as SignalNone.
type Simulator struct {
	cfg Config
}

func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Simulator{cfg: cfg}, nil
}

// Run simulates the whole frame. signals must be aligned 1:1 with the bars.
// Exit conditions are checked in fixed precedence per bar — take-profit armed
// trailing stop, stop-loss, exit signal, time exit — and the first match wins.
func (s *Simulator) Run(df *model.Dataframe, signals []model.SignalType) (*Result, error) {
	n := df.Length()
	if len(signals) != n {
		return nil, fmt.Errorf("signals length %d does not match %d bars", len(signals), n)
	}
	if n == 0 || n <= s.cfg.WarmupPeriod {
		return nil, DataInsufficientError{Required: s.cfg.WarmupPeriod, Got: n}
	}
	for i := 1; i < n; i++ {
		if !df.Time[i].After(df.Time[i-1]) {
			return nil, fmt.Errorf("timestamps not strictly increasing at index %d (%v)", i, df.Time[i])
		}
	}

	result := &Result{
		Pair:           df.Pair,
		InitialBalance: s.cfg.InitialBalance,
		Equity:         make([]model.EquityPoint, 0, n),
	}

	balance := s.cfg.InitialBalance
	pos := &position{side: model.SideFlat}

	for i := 0; i < n; i++ {
		exitedThisBar := false

		if pos.side != model.SideFlat {
			kind, price := s.exitCondition(df, signals, i, pos)
			if kind != "" {
				balance = s.closePosition(result, pos, kind, df.Time[i], price, balance)
				exitedThisBar = true
			}
		}

		// 같은 봉에서 청산 후 재진입은 하지 않는다
		if pos.side == model.SideFlat && !exitedThisBar {
			switch signals[i] {
			case model.SignalEntryLong:
				s.openPosition(result, pos, model.SideLong, df, i, balance)
			case model.SignalEntryShort:
				s.openPosition(result, pos, model.SideShort, df, i, balance)
			}
		}

		result.Equity = append(result.Equity, model.EquityPoint{Time: df.Time[i], Balance: balance})
	}

	// 시리즈 끝에 열려있는 포지션은 마지막 봉 종가로 강제 청산
	if pos.side != model.SideFlat {
		last := n - 1
		balance = s.closePosition(result, pos, model.TradeExitFinal, df.Time[last], df.Close[last], balance)
		result.Equity[last].Balance = balance
	}

	result.FinalBalance = balance
	return result, nil
}

// exitCondition evaluates the exit precedence at bar i and returns the fired
// kind with its fill price, or ("", 0) when the position stays open.
func (s *Simulator) exitCondition(df *model.Dataframe, signals []model.SignalType, i int, pos *position) (model.TradeKind, float64) {
	closePrice := df.Close[i]
	unrealized := pos.unrealized(closePrice)

	if unrealized > pos.highestFavorable {
		pos.highestFavorable = unrealized
	}

	// 1. 익절 + 트레일링 콤보: 피크가 익절 기준을 넘으면 트레일링이 armed.
	//    트레일링 비율 0이면 익절 기준 도달 즉시 하드 익절.
	if pos.highestFavorable >= s.cfg.TakeProfitPct {
		if s.cfg.TrailingStopFraction == 0 {
			return model.TradeExitTakeProfit, closePrice
		}
		if unrealized <= pos.highestFavorable*s.cfg.TrailingStopFraction {
			return model.TradeExitTrailing, closePrice
		}
	}

	// 2. 손절 (경계 포함)
	if unrealized <= -s.cfg.StopLossPct {
		return model.TradeExitStopLoss, closePrice
	}

	// 3. 청산 시그널 또는 반대 방향 진입 시그널
	sig := signals[i]
	opposing := (pos.side == model.SideLong && sig == model.SignalEntryShort) ||
		(pos.side == model.SideShort && sig == model.SignalEntryLong)
	if sig == model.SignalExit || opposing {
		if s.cfg.FillOnClose {
			return model.TradeExitSignal, closePrice
		}
		return model.TradeExitSignal, df.Open[i]
	}

	// 4. 시간 청산
	if s.cfg.TimeExitBars > 0 && i-pos.entryIndex >= s.cfg.TimeExitBars {
		return model.TradeExitTime, closePrice
	}

	return "", 0
}

func (s *Simulator) openPosition(result *Result, pos *position, side model.SideType, df *model.Dataframe, i int, balance float64) {
	price := df.Close[i]
	if !s.cfg.FillOnClose {
		price = df.Open[i]
	}

	pos.side = side
	pos.entryPrice = price
	pos.entryIndex = i
	pos.highestFavorable = 0

	result.Entries++
	result.Trades = append(result.Trades, model.TradeRecord{
		Time:    df.Time[i],
		Kind:    model.TradeEntry,
		Side:    side,
		Price:   price,
		Balance: balance,
	})
}

// closePosition books the realized return and is the only place that mutates
// the balance: balance *= 1 + realized * positionFraction.
func (s *Simulator) closePosition(result *Result, pos *position, kind model.TradeKind, when time.Time, price float64, balance float64) float64 {
	realized := pos.unrealized(price) - (s.cfg.FeeRate*2 + s.cfg.Slippage)

	balance *= 1 + realized*s.cfg.PositionFraction
	if realized > 0 {
		result.Wins++
	}

	result.Trades = append(result.Trades, model.TradeRecord{
		Time:     when,
		Kind:     kind,
		Side:     pos.side,
		Price:    price,
		Realized: realized,
		Balance:  balance,
	})

	pos.reset()
	return balance
}
