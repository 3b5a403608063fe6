package strategy

import "fmt"

// 프로그램(CLI)에서 쓰는 기본 파라미터. 과거 스크립트들에서 제일 자주
// 나오던 값들이다 (익절 0.3%, 손절 0.5%, 트레일링 0.5).

func DefaultExitRules() ExitRules {
	return ExitRules{
		StopLossPct:          0.005,
		TakeProfitPct:        0.003,
		TrailingStopFraction: 0.5,
		TimeExitBars:         0,
	}
}

func DefaultScalpingConfig() ScalpingConfig {
	return ScalpingConfig{
		ExitRules:        DefaultExitRules(),
		RSIPeriod:        14,
		VolumeWindow:     20,
		VolatilityWindow: 20,
		VolumeRatioMin:   1.5,
		VolatilityMin:    0.002,
		RSILongMin:       50,
		RSILongMax:       70,
		RSIShortMin:      30,
		RSIShortMax:      50,
		AllowShort:       false,
	}
}

func DefaultBollingerConfig() BollingerConfig {
	return BollingerConfig{
		ExitRules:    DefaultExitRules(),
		Window:       20,
		Mult:         2.0,
		RSIPeriod:    14,
		RSIOversold:  30,
		EntryBandPos: 0.05,
		ExitBandPos:  0.5,
	}
}

func DefaultMACDCrossConfig() MACDCrossConfig {
	return MACDCrossConfig{
		ExitRules:    DefaultExitRules(),
		FastWindow:   12,
		SlowWindow:   26,
		SignalWindow: 9,
	}
}

func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		ExitRules:   DefaultExitRules(),
		EntryWindow: 20,
		ExitWindow:  10,
	}
}

// FromName : 패밀리 이름으로 기본 설정 룰셋 생성
func FromName(name string) (Ruleset, error) {
	switch name {
	case "scalping":
		return NewScalping(DefaultScalpingConfig())
	case "bollinger":
		return NewBollinger(DefaultBollingerConfig())
	case "macd-cross":
		return NewMACDCross(DefaultMACDCrossConfig())
	case "breakout":
		return NewBreakout(DefaultBreakoutConfig())
	default:
		return nil, fmt.Errorf("unknown strategy family: %s", name)
	}
}
