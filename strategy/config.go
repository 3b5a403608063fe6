package strategy

import (
	"errors"
	"fmt"
)

// 전략별 수치 파라미터는 과거엔 map[string]float64 하나로 돌려썼지만,
// 여기서는 전략 패밀리마다 타입이 있는 구조체로 나누고 생성 시점에 검증한다.

var (
	ErrStopLossNotPositive = errors.New("stop_loss_pct must be positive")
	ErrTrailingFraction    = errors.New("trailing_stop_fraction must be in [0,1)")
)

// ExitRules holds the exit thresholds shared by every strategy family.
// TakeProfitPct arms the trailing stop; TrailingStopFraction is the share of
// the peak gain that must be kept (0 turns the take-profit into a hard exit).
// TimeExitBars of 0 disables the time-based exit.
type ExitRules struct {
	StopLossPct          float64 `json:"stop_loss_pct"`
	TakeProfitPct        float64 `json:"take_profit_pct"`
	TrailingStopFraction float64 `json:"trailing_stop_fraction"`
	TimeExitBars         int     `json:"time_exit_bars"`
}

func (e ExitRules) Validate() error {
	if e.StopLossPct <= 0 {
		return ErrStopLossNotPositive
	}
	if e.TakeProfitPct <= 0 {
		return errors.New("take_profit_pct must be positive")
	}
	if e.TrailingStopFraction < 0 || e.TrailingStopFraction >= 1 {
		return ErrTrailingFraction
	}
	if e.TimeExitBars < 0 {
		return errors.New("time_exit_bars must not be negative")
	}
	return nil
}

// ScalpingConfig : 단타 변동성 전략 파라미터.
// RSI 구간 검증은 하지 않는다 — 뒤집힌 구간은 단지 신호가 안 나올 뿐이다.
type ScalpingConfig struct {
	ExitRules

	RSIPeriod        int     `json:"rsi_period"`
	VolumeWindow     int     `json:"volume_window"`
	VolatilityWindow int     `json:"volatility_window"`
	VolumeRatioMin   float64 `json:"volume_ratio_min"`
	VolatilityMin    float64 `json:"volatility_min"`
	RSILongMin       float64 `json:"rsi_long_min"`
	RSILongMax       float64 `json:"rsi_long_max"`
	RSIShortMin      float64 `json:"rsi_short_min"`
	RSIShortMax      float64 `json:"rsi_short_max"`
	AllowShort       bool    `json:"allow_short"`
}

func (c ScalpingConfig) Validate() error {
	if err := c.ExitRules.Validate(); err != nil {
		return err
	}
	if c.RSIPeriod < 2 || c.VolumeWindow < 1 || c.VolatilityWindow < 2 {
		return fmt.Errorf("scalping: invalid lookback windows (rsi=%d volume=%d volatility=%d)",
			c.RSIPeriod, c.VolumeWindow, c.VolatilityWindow)
	}
	return nil
}

// BollingerConfig : 밴드 하단 복귀(mean reversion) 전략 파라미터.
type BollingerConfig struct {
	ExitRules

	Window       int     `json:"window"`
	Mult         float64 `json:"mult"`
	RSIPeriod    int     `json:"rsi_period"`
	RSIOversold  float64 `json:"rsi_oversold"`
	EntryBandPos float64 `json:"entry_band_pos"` // 진입: band position ≤ 이 값
	ExitBandPos  float64 `json:"exit_band_pos"`  // 청산: band position ≥ 이 값
}

func (c BollingerConfig) Validate() error {
	if err := c.ExitRules.Validate(); err != nil {
		return err
	}
	if c.Window < 2 || c.Mult <= 0 {
		return fmt.Errorf("bollinger: invalid window=%d mult=%f", c.Window, c.Mult)
	}
	if c.RSIPeriod < 2 {
		return fmt.Errorf("bollinger: invalid rsi_period=%d", c.RSIPeriod)
	}
	return nil
}

// MACDCrossConfig : MACD 골든/데드 크로스 전략 파라미터.
type MACDCrossConfig struct {
	ExitRules

	FastWindow   int `json:"fast_window"`
	SlowWindow   int `json:"slow_window"`
	SignalWindow int `json:"signal_window"`
}

func (c MACDCrossConfig) Validate() error {
	if err := c.ExitRules.Validate(); err != nil {
		return err
	}
	if c.FastWindow < 2 || c.SlowWindow <= c.FastWindow || c.SignalWindow < 2 {
		return fmt.Errorf("macd-cross: invalid windows fast=%d slow=%d signal=%d",
			c.FastWindow, c.SlowWindow, c.SignalWindow)
	}
	return nil
}

// BreakoutConfig : 채널 돌파(터틀) 전략 파라미터.
type BreakoutConfig struct {
	ExitRules

	EntryWindow int `json:"entry_window"`
	ExitWindow  int `json:"exit_window"`
}

func (c BreakoutConfig) Validate() error {
	if err := c.ExitRules.Validate(); err != nil {
		return err
	}
	if c.EntryWindow < 2 || c.ExitWindow < 2 {
		return fmt.Errorf("breakout: invalid windows entry=%d exit=%d", c.EntryWindow, c.ExitWindow)
	}
	return nil
}
