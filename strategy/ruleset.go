package strategy

import (
	"math"

	"tanuki/indicator"
	"tanuki/model"
)

// Ruleset classifies each bar of a prepared Dataframe into an entry/exit
// signal. Rulesets are pure over the frame: Indicators fills the metadata
// series once, Signal reads them by index.
type Ruleset interface {
	Name() string
	// WarmupPeriod is the number of bars needed before any signal can fire.
	WarmupPeriod() int
	// Indicators fills df.Metadata with every series the ruleset reads.
	Indicators(df *model.Dataframe) []indicator.ChartIndicator
	// Signal classifies bar i. Bars before WarmupPeriod are never passed in.
	Signal(df *model.Dataframe, i int) model.SignalType
	// FillOnClose reports the fill discipline: true fills at the signal bar's
	// close, false decides on the previous bar and fills at the current open.
	FillOnClose() bool
	// Exits returns the exit thresholds the simulator applies to this ruleset.
	Exits() ExitRules
}

// Signals runs the ruleset over the whole frame and returns one signal per
// bar. Warmup bars and bars with undefined indicators come out as SignalNone.
func Signals(df *model.Dataframe, rs Ruleset) []model.SignalType {
	out := make([]model.SignalType, df.Length())
	for i := range out {
		out[i] = model.SignalNone
	}
	for i := rs.WarmupPeriod(); i < df.Length(); i++ {
		out[i] = rs.Signal(df, i)
	}
	return out
}

// anyNaN : 해당 봉에서 필요한 지표 중 하나라도 NaN이면 true (시그널 스킵)
func anyNaN(df *model.Dataframe, i int, keys ...string) bool {
	for _, key := range keys {
		series, ok := df.Metadata[key]
		if !ok || i >= len(series) || math.IsNaN(series[i]) {
			return true
		}
	}
	return false
}
