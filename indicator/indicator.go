package indicator

import (
	"math"
	"time"

	"tanuki/model"
)

// 배치 지표 계산 모음.
// 모든 함수는 전체 시계열에 대한 순수 함수이며, lookback이 채워지기 전의 값은
// math.NaN()으로 둔다. 시뮬레이터는 NaN 봉에서 절대 행동하지 않는다.

type MetricStyle string

const (
	StyleBar       = "bar"
	StyleScatter   = "scatter"
	StyleLine      = "line"
	StyleHistogram = "histogram"
	StyleWaterfall = "waterfall"
)

type IndicatorMetric struct {
	Name   string
	Color  string
	Style  MetricStyle // default: line
	Values model.Series[float64]
}

type ChartIndicator struct {
	Time      []time.Time
	Metrics   []IndicatorMetric
	Overlay   bool
	GroupName string
	Warmup    int
}

// SMA : 종가의 단순 이동평균. 첫 window-1개 봉은 NaN.
func SMA(values model.Series[float64], window int) model.Series[float64] {
	out := make(model.Series[float64], len(values))
	sum := 0.0
	for i := range values {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// EMA : 지수 이동평균, k = 2/(window+1). 첫 window개 구간의 SMA로 시드한다.
func EMA(values model.Series[float64], window int) model.Series[float64] {
	out := make(model.Series[float64], len(values))
	k := 2.0 / (float64(window) + 1)

	var previousEMA float64
	for i := 0; i < len(values); i++ {
		if i == window-1 {
			sum := 0.0
			validCount := 0
			for j := i - window + 1; j <= i; j++ {
				if !math.IsNaN(values[j]) {
					sum += values[j]
					validCount++
				}
			}
			if validCount > 0 {
				previousEMA = sum / float64(validCount)
				out[i] = previousEMA
			} else {
				out[i] = math.NaN()
			}
		} else if i >= window {
			if !math.IsNaN(values[i]) && !math.IsNaN(previousEMA) {
				previousEMA = (values[i]-previousEMA)*k + previousEMA
				out[i] = previousEMA
			} else {
				out[i] = math.NaN()
			}
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// RSI : 단순 롤링 평균 방식. 손실 평균이 0이면 100으로 포화시킨다(예외 없음).
func RSI(values model.Series[float64], period int) model.Series[float64] {
	rsi := make(model.Series[float64], len(values))
	gains := make([]float64, len(values))
	losses := make([]float64, len(values))

	for i := range rsi {
		rsi[i] = math.NaN()
	}

	for i := 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	for i := period; i < len(values); i++ {
		avgGain := 0.0
		avgLoss := 0.0
		for j := i - period + 1; j <= i; j++ {
			avgGain += gains[j]
			avgLoss += losses[j]
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)

		if avgLoss == 0 {
			rsi[i] = 100
		} else {
			rs := avgGain / avgLoss
			rsi[i] = 100 - (100 / (1 + rs))
		}
	}

	return rsi
}

// MACD : EMA(fast)-EMA(slow), 시그널 라인은 MACD의 EMA(signalWindow).
func MACD(values model.Series[float64], fastWindow, slowWindow, signalWindow int) (macd, signal, histogram model.Series[float64]) {
	macd = make(model.Series[float64], len(values))
	histogram = make(model.Series[float64], len(values))

	fastEMA := EMA(values, fastWindow)
	slowEMA := EMA(values, slowWindow)

	for i := 0; i < len(values); i++ {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			macd[i] = fastEMA[i] - slowEMA[i]
		} else {
			macd[i] = math.NaN()
		}
	}

	signal = EMA(macd, signalWindow)

	for i := 0; i < len(values); i++ {
		if !math.IsNaN(macd[i]) && !math.IsNaN(signal[i]) {
			histogram[i] = macd[i] - signal[i]
		} else {
			histogram[i] = math.NaN()
		}
	}

	return macd, signal, histogram
}

// BollingerBands : 중간=SMA, 상/하단=중간±mult*표준편차.
func BollingerBands(values model.Series[float64], period int, multiplier float64) (middle, upper, lower model.Series[float64]) {
	n := len(values)
	middle = make(model.Series[float64], n)
	upper = make(model.Series[float64], n)
	lower = make(model.Series[float64], n)

	for i := 0; i < period-1 && i < n; i++ {
		middle[i] = math.NaN()
		upper[i] = math.NaN()
		lower[i] = math.NaN()
	}

	for i := period - 1; i < n; i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += values[j]
		}
		ma := sum / float64(period)
		middle[i] = ma

		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			variance += math.Pow(values[j]-ma, 2)
		}
		stdDev := math.Sqrt(variance / float64(period))

		upper[i] = ma + (multiplier * stdDev)
		lower[i] = ma - (multiplier * stdDev)
	}

	return middle, upper, lower
}

// BandPosition : (close-lower)/(upper-lower)를 [0,1]로 클램프.
// upper==lower이면 정의되지 않으므로 NaN.
func BandPosition(closes, upper, lower model.Series[float64]) model.Series[float64] {
	out := make(model.Series[float64], len(closes))
	for i := range closes {
		if math.IsNaN(upper[i]) || math.IsNaN(lower[i]) || upper[i] == lower[i] {
			out[i] = math.NaN()
			continue
		}
		pos := (closes[i] - lower[i]) / (upper[i] - lower[i])
		if pos < 0 {
			pos = 0
		} else if pos > 1 {
			pos = 1
		}
		out[i] = pos
	}
	return out
}

// ATR : true range(고저폭, |고가-전봉종가|, |저가-전봉종가| 중 최대)의 단순 평균.
func ATR(highs, lows, closes model.Series[float64], period int) model.Series[float64] {
	n := len(closes)
	out := make(model.Series[float64], n)
	tr := make([]float64, n)

	for i := 0; i < n; i++ {
		out[i] = math.NaN()
		if i == 0 {
			tr[i] = highs[i] - lows[i]
			continue
		}
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	for i := period; i < n; i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			sum += tr[j]
		}
		out[i] = sum / float64(period)
	}

	return out
}

// VolumeRatio : volume / SMA(volume, window). 평균 거래량이 0이면 NaN.
func VolumeRatio(volumes model.Series[float64], window int) model.Series[float64] {
	avg := SMA(volumes, window)
	out := make(model.Series[float64], len(volumes))
	for i := range volumes {
		if math.IsNaN(avg[i]) || avg[i] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = volumes[i] / avg[i]
	}
	return out
}

// Volatility : 종가 단순수익률의 롤링 표준편차.
func Volatility(closes model.Series[float64], window int) model.Series[float64] {
	n := len(closes)
	out := make(model.Series[float64], n)
	rets := make([]float64, n)

	for i := range out {
		out[i] = math.NaN()
	}
	for i := 1; i < n; i++ {
		if closes[i-1] != 0 {
			rets[i] = (closes[i] - closes[i-1]) / closes[i-1]
		}
	}

	for i := window; i < n; i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += rets[j]
		}
		mean /= float64(window)

		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			variance += math.Pow(rets[j]-mean, 2)
		}
		out[i] = math.Sqrt(variance / float64(window))
	}

	return out
}

// Stochastic : %K와 3봉 평균 %D. 고가==저가 구간에서는 %K=50.
func Stochastic(highs, lows, closes model.Series[float64], period int) (stochK, stochD model.Series[float64]) {
	n := len(closes)
	stochK = make(model.Series[float64], n)
	stochD = make(model.Series[float64], n)

	for i := range stochK {
		stochK[i] = math.NaN()
		stochD[i] = math.NaN()
	}

	for i := period - 1; i < n; i++ {
		lowestLow := lows[i]
		highestHigh := highs[i]
		for j := i - period + 1; j <= i; j++ {
			if lows[j] < lowestLow {
				lowestLow = lows[j]
			}
			if highs[j] > highestHigh {
				highestHigh = highs[j]
			}
		}
		if highestHigh != lowestLow {
			stochK[i] = (closes[i] - lowestLow) / (highestHigh - lowestLow) * 100
		} else {
			stochK[i] = 50
		}
	}

	for i := 2; i < n; i++ {
		if !math.IsNaN(stochK[i]) && !math.IsNaN(stochK[i-1]) && !math.IsNaN(stochK[i-2]) {
			stochD[i] = (stochK[i] + stochK[i-1] + stochK[i-2]) / 3
		}
	}

	return stochK, stochD
}
