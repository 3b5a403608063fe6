package strategy

import (
	"tanuki/indicator"
	"tanuki/model"
)

// MACDCross : MACD가 시그널 라인을 상향 돌파한 봉에서만 진입, 하향 돌파한
// 봉에서만 청산. 돌파는 부등호가 뒤집히는 봉에서 정확히 한 번 발생한다 —
// 이후 부등호가 유지되는 봉에서는 다시 발생하지 않는다.
// 직전 봉 지표로 판단하고 현재 봉 시가에 체결한다.
type MACDCross struct {
	Config MACDCrossConfig
}

func NewMACDCross(cfg MACDCrossConfig) (*MACDCross, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &MACDCross{Config: cfg}, nil
}

func (s *MACDCross) Name() string {
	return "macd-cross"
}

func (s *MACDCross) FillOnClose() bool {
	return false
}

func (s *MACDCross) Exits() ExitRules {
	return s.Config.ExitRules
}

func (s *MACDCross) WarmupPeriod() int {
	return s.Config.SlowWindow + s.Config.SignalWindow + 1
}

func (s *MACDCross) Indicators(df *model.Dataframe) []indicator.ChartIndicator {
	macd, signal, histogram := indicator.MACD(df.Close,
		s.Config.FastWindow, s.Config.SlowWindow, s.Config.SignalWindow)
	df.Metadata["macd"] = macd
	df.Metadata["macdSignal"] = signal
	df.Metadata["macdHist"] = histogram

	return []indicator.ChartIndicator{
		{
			Time:      df.Time,
			GroupName: "MACD",
			Warmup:    s.WarmupPeriod(),
			Metrics: []indicator.IndicatorMetric{
				{Name: "MACD", Color: "blue", Style: indicator.StyleLine, Values: macd},
				{Name: "MACD Signal", Color: "red", Style: indicator.StyleLine, Values: signal},
				{Name: "MACD Hist", Color: "green", Style: indicator.StyleHistogram, Values: histogram},
			},
		},
	}
}

func (s *MACDCross) Signal(df *model.Dataframe, i int) model.SignalType {
	prev := i - 1
	if prev < 1 || anyNaN(df, prev, "macd", "macdSignal") || anyNaN(df, prev-1, "macd", "macdSignal") {
		return model.SignalNone
	}

	macd := df.Metadata["macd"]
	signal := df.Metadata["macdSignal"]

	if macd.CrossoverAt(signal, prev) {
		return model.SignalEntryLong
	}
	if macd.CrossunderAt(signal, prev) {
		return model.SignalExit
	}

	return model.SignalNone
}
