package strategy

import (
	"tanuki/indicator"
	"tanuki/model"
)

// Scalping : 거래량 급증 + RSI 구간 + 최소 변동성 필터의 단타 진입.
// 청산 신호는 내지 않고 익절/트레일링/손절/시간 청산에 맡긴다.
// 과거 스캘핑 최적화 스크립트와 동일하게 당일 봉 종가 기준으로 판단하고
// 같은 봉 종가에 체결한다(룩어헤드 허용 — 패밀리 단위 결정).
type Scalping struct {
	Config ScalpingConfig
}

func NewScalping(cfg ScalpingConfig) (*Scalping, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scalping{Config: cfg}, nil
}

func (s *Scalping) Name() string {
	return "scalping"
}

func (s *Scalping) FillOnClose() bool {
	return true
}

func (s *Scalping) Exits() ExitRules {
	return s.Config.ExitRules
}

func (s *Scalping) WarmupPeriod() int {
	warmup := s.Config.RSIPeriod
	if s.Config.VolumeWindow > warmup {
		warmup = s.Config.VolumeWindow
	}
	if s.Config.VolatilityWindow > warmup {
		warmup = s.Config.VolatilityWindow
	}
	return warmup + 1
}

func (s *Scalping) Indicators(df *model.Dataframe) []indicator.ChartIndicator {
	df.Metadata["rsi"] = indicator.RSI(df.Close, s.Config.RSIPeriod)
	df.Metadata["volumeRatio"] = indicator.VolumeRatio(df.Volume, s.Config.VolumeWindow)
	df.Metadata["volatility"] = indicator.Volatility(df.Close, s.Config.VolatilityWindow)

	return []indicator.ChartIndicator{
		{
			Time:      df.Time,
			GroupName: "RSI",
			Warmup:    s.WarmupPeriod(),
			Metrics: []indicator.IndicatorMetric{
				{Name: "RSI", Color: "purple", Style: indicator.StyleLine, Values: df.Metadata["rsi"]},
			},
		},
		{
			Time:      df.Time,
			GroupName: "Volume Ratio",
			Warmup:    s.WarmupPeriod(),
			Metrics: []indicator.IndicatorMetric{
				{Name: "VolumeRatio", Color: "orange", Style: indicator.StyleBar, Values: df.Metadata["volumeRatio"]},
			},
		},
	}
}

func (s *Scalping) Signal(df *model.Dataframe, i int) model.SignalType {
	if anyNaN(df, i, "rsi", "volumeRatio", "volatility") {
		return model.SignalNone
	}

	rsi := df.Metadata["rsi"][i]
	volumeRatio := df.Metadata["volumeRatio"][i]
	volatility := df.Metadata["volatility"][i]

	if volumeRatio < s.Config.VolumeRatioMin || volatility < s.Config.VolatilityMin {
		return model.SignalNone
	}

	if rsi >= s.Config.RSILongMin && rsi <= s.Config.RSILongMax {
		return model.SignalEntryLong
	}

	if s.Config.AllowShort && rsi >= s.Config.RSIShortMin && rsi <= s.Config.RSIShortMax {
		return model.SignalEntryShort
	}

	return model.SignalNone
}
