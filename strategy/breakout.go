package strategy

import (
	"tanuki/indicator"
	"tanuki/model"
)

// https://www.investopedia.com/articles/trading/08/turtle-trading.asp
// Breakout : 종가가 EntryWindow 봉 최고가에 도달하면 진입, ExitWindow 봉
// 최저가에 도달하면 청산. 같은 봉 종가에 체결한다.
type Breakout struct {
	Config BreakoutConfig
}

func NewBreakout(cfg BreakoutConfig) (*Breakout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Breakout{Config: cfg}, nil
}

func (s *Breakout) Name() string {
	return "breakout"
}

func (s *Breakout) FillOnClose() bool {
	return true
}

func (s *Breakout) Exits() ExitRules {
	return s.Config.ExitRules
}

func (s *Breakout) WarmupPeriod() int {
	if s.Config.EntryWindow > s.Config.ExitWindow {
		return s.Config.EntryWindow
	}
	return s.Config.ExitWindow
}

func (s *Breakout) Indicators(df *model.Dataframe) []indicator.ChartIndicator {
	df.Metadata["chanHigh"] = indicator.Max(df.Close, s.Config.EntryWindow)
	df.Metadata["chanLow"] = indicator.Min(df.Close, s.Config.ExitWindow)
	return nil
}

func (s *Breakout) Signal(df *model.Dataframe, i int) model.SignalType {
	if anyNaN(df, i, "chanHigh", "chanLow") {
		return model.SignalNone
	}

	closePrice := df.Close[i]
	highest := df.Metadata["chanHigh"][i]
	lowest := df.Metadata["chanLow"][i]

	if closePrice >= highest {
		return model.SignalEntryLong
	}
	if closePrice <= lowest {
		return model.SignalExit
	}

	return model.SignalNone
}
