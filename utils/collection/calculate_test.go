package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type trade struct {
	realized float64
}

func Test_SumBy(t *testing.T) {
	trades := []trade{{0.003}, {-0.002}, {0.001}}

	sum := SumBy(trades, func(t trade) float64 { return t.realized })
	assert.InDelta(t, 0.002, sum, 1e-9)

	assert.Equal(t, 0.0, SumBy(nil, func(t trade) float64 { return t.realized }))
}

func Test_MeanBy(t *testing.T) {
	trades := []trade{{2}, {4}}

	assert.InDelta(t, 3.0, MeanBy(trades, func(t trade) float64 { return t.realized }), 1e-9)
	assert.Equal(t, 0.0, MeanBy(nil, func(t trade) float64 { return t.realized }))
}

func Test_CountBy(t *testing.T) {
	trades := []trade{{0.003}, {-0.002}, {0.001}}

	wins := CountBy(trades, func(t trade) bool { return t.realized > 0 })
	assert.Equal(t, 2, wins)
}
