package strategy

import (
	"tanuki/indicator"
	"tanuki/model"
)

// Bollinger : 밴드 하단 진입 / 중단 복귀 청산의 역추세 전략.
// 룩어헤드를 피하기 위해 직전 봉(i-1)의 지표로 판단하고 현재 봉 시가에
// 체결한다. band position은 (종가-하단)/(상단-하단)을 [0,1]로 클램프한 값.
type Bollinger struct {
	Config BollingerConfig
}

func NewBollinger(cfg BollingerConfig) (*Bollinger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Bollinger{Config: cfg}, nil
}

func (s *Bollinger) Name() string {
	return "bollinger"
}

func (s *Bollinger) FillOnClose() bool {
	return false
}

func (s *Bollinger) Exits() ExitRules {
	return s.Config.ExitRules
}

func (s *Bollinger) WarmupPeriod() int {
	warmup := s.Config.Window
	if s.Config.RSIPeriod > warmup {
		warmup = s.Config.RSIPeriod
	}
	return warmup + 1
}

func (s *Bollinger) Indicators(df *model.Dataframe) []indicator.ChartIndicator {
	middle, upper, lower := indicator.BollingerBands(df.Close, s.Config.Window, s.Config.Mult)
	df.Metadata["bbMid"] = middle
	df.Metadata["bbUp"] = upper
	df.Metadata["bbLow"] = lower
	df.Metadata["bbPos"] = indicator.BandPosition(df.Close, upper, lower)
	df.Metadata["rsi"] = indicator.RSI(df.Close, s.Config.RSIPeriod)

	return []indicator.ChartIndicator{
		{
			Time:      df.Time,
			Overlay:   true,
			GroupName: "Bollinger",
			Warmup:    s.WarmupPeriod(),
			Metrics: []indicator.IndicatorMetric{
				{Name: "BB Upper", Color: "gray", Style: indicator.StyleLine, Values: upper},
				{Name: "BB Mid", Color: "gray", Style: indicator.StyleLine, Values: middle},
				{Name: "BB Lower", Color: "gray", Style: indicator.StyleLine, Values: lower},
			},
		},
	}
}

func (s *Bollinger) Signal(df *model.Dataframe, i int) model.SignalType {
	// 직전 봉 기준 판단
	prev := i - 1
	if prev < 0 || anyNaN(df, prev, "bbPos", "rsi") {
		return model.SignalNone
	}

	bandPos := df.Metadata["bbPos"][prev]
	rsi := df.Metadata["rsi"][prev]

	if bandPos <= s.Config.EntryBandPos && rsi <= s.Config.RSIOversold {
		return model.SignalEntryLong
	}

	if bandPos >= s.Config.ExitBandPos {
		return model.SignalExit
	}

	return model.SignalNone
}
