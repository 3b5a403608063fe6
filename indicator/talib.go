package indicator

import (
	"github.com/markcheno/go-talib"

	"tanuki/model"
)

// go-talib 기반 래퍼. 배치 지표(indicator.go)와 달리 warmup 구간이 0으로
// 채워지므로, 전략에서는 WarmupPeriod 이후 값만 사용해야 한다.

// Max returns the highest value over the trailing period.
func Max(source model.Series[float64], period int) model.Series[float64] {
	return talib.Max([]float64(source), period)
}

// Min returns the lowest value over the trailing period.
func Min(source model.Series[float64], period int) model.Series[float64] {
	return talib.Min([]float64(source), period)
}

// WMA returns the weighted moving average.
func WMA(source model.Series[float64], period int) model.Series[float64] {
	return talib.Wma([]float64(source), period)
}

// StdDev returns the rolling standard deviation scaled by nbDev.
func StdDev(source model.Series[float64], period int, nbDev float64) model.Series[float64] {
	return talib.StdDev([]float64(source), period, nbDev)
}

// OBV returns the on-balance volume.
func OBV(closes, volumes model.Series[float64]) model.Series[float64] {
	return talib.Obv([]float64(closes), []float64(volumes))
}
