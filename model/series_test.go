package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SeriesLastValues(t *testing.T) {
	s := Series[float64]{1, 2, 3, 4, 5}

	assert.Equal(t, 5.0, s.Last(0))
	assert.Equal(t, 4.0, s.Last(1))
	assert.Equal(t, []float64{4, 5}, []float64(s.LastValues(2)))
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, []float64(s.LastValues(10)))
}

// 크로스는 부등호가 뒤집히는 봉에서 정확히 한 번만 fire
func Test_CrossoverAtSingleFire(t *testing.T) {
	fast := Series[float64]{1, 2, 3, 4, 5}
	slow := Series[float64]{3, 3, 3, 3, 3}

	fired := []int{}
	for i := 0; i < fast.Length(); i++ {
		if fast.CrossoverAt(slow, i) {
			fired = append(fired, i)
		}
	}
	// index 2: fast 3 == slow 3 (아직 아님), index 3: 4 > 3 이고 직전 3 <= 3
	assert.Equal(t, []int{3}, fired)
}

func Test_CrossunderAtSingleFire(t *testing.T) {
	fast := Series[float64]{5, 4, 3, 2, 1}
	slow := Series[float64]{3, 3, 3, 3, 3}

	fired := []int{}
	for i := 0; i < fast.Length(); i++ {
		if fast.CrossunderAt(slow, i) {
			fired = append(fired, i)
		}
	}
	// index 2에서 3 <= 3 이고 직전 4 > 3
	assert.Equal(t, []int{2}, fired)
}

func Test_CrossoverAtBounds(t *testing.T) {
	fast := Series[float64]{1, 5}
	slow := Series[float64]{3, 3}

	assert.False(t, fast.CrossoverAt(slow, 0), "index 0에는 직전 봉이 없다")
	assert.False(t, fast.CrossoverAt(slow, 2))
	assert.True(t, fast.CrossoverAt(slow, 1))
}

func Test_NewDataframeRoundTrip(t *testing.T) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	candles := []Candle{
		{Pair: "KRW-BTC", Time: base, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
		{Pair: "KRW-BTC", Time: base.Add(time.Minute), Open: 1.5, High: 3, Low: 1, Close: 2.5, Volume: 20},
	}

	df := NewDataframe("KRW-BTC", candles)
	require.Equal(t, 2, df.Length())
	assert.Equal(t, Series[float64]{1.5, 2.5}, df.Close)
	assert.Equal(t, base.Add(time.Minute), df.LastUpdate)

	out := df.Candles()
	require.Len(t, out, 2)
	assert.Equal(t, candles[1].Close, out[1].Close)
	assert.True(t, out[0].Complete)
}
