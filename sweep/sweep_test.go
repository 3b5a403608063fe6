package sweep

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tanuki/backtest"
	"tanuki/model"
)

func Test_CombinationKey(t *testing.T) {
	combo := Combination{"stop_loss_pct": 0.005, "rsi_long_max": 70}

	// 이름 정렬이라 입력 순서와 무관하게 결정적
	assert.Equal(t, "rsi_long_max=70|stop_loss_pct=0.005", combo.Key())
}

func Test_ParseKeyRoundTrip(t *testing.T) {
	combo := Combination{"a": 1.5, "b": 0.003, "c": 70}

	parsed, err := ParseKey(combo.Key())
	require.NoError(t, err)
	assert.Equal(t, combo, parsed)

	_, err = ParseKey("malformed")
	assert.Error(t, err)
}

func Test_GridCombinationsDeterministic(t *testing.T) {
	grid := Grid{
		"x": {1, 2, 3},
		"y": {10, 20},
	}

	combos := grid.Combinations()
	require.Len(t, combos, 6)
	assert.Equal(t, grid.Size(), len(combos))

	// 같은 그리드는 항상 같은 순서
	again := grid.Combinations()
	for i := range combos {
		assert.Equal(t, combos[i].Key(), again[i].Key())
	}

	// 전체 키는 중복 없이 유일
	seen := map[string]bool{}
	for _, c := range combos {
		seen[c.Key()] = true
	}
	assert.Len(t, seen, 6)
}

// mode 값에 따라 완료/무거래/스킵/패닉을 일으키는 가짜 실행 함수
func fakeRun(combo Combination) (*backtest.Result, error) {
	switch combo["mode"] {
	case 1:
		return completedResult(), nil
	case 2:
		return &backtest.Result{Pair: "KRW-BTC", InitialBalance: 10000, FinalBalance: 10000}, nil
	case 3:
		return nil, backtest.DataInsufficientError{Required: 20, Got: 5}
	default:
		panic("boom")
	}
}

func completedResult() *backtest.Result {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return &backtest.Result{
		Pair:           "KRW-BTC",
		Strategy:       "scalping",
		InitialBalance: 10000,
		FinalBalance:   10010,
		Entries:        1,
		Wins:           1,
		Trades: []model.TradeRecord{
			{Time: base, Kind: model.TradeEntry, Side: model.SideLong, Price: 100, Balance: 10000},
			{Time: base.Add(time.Minute), Kind: model.TradeExitTrailing, Side: model.SideLong, Price: 100.1, Realized: 0.001, Balance: 10010},
		},
		Equity: []model.EquityPoint{
			{Time: base, Balance: 10000},
			{Time: base.Add(time.Minute), Balance: 10010},
		},
	}
}

func Test_RunnerStatuses(t *testing.T) {
	grid := Grid{"mode": {1, 2, 3, 4}}
	runner := NewRunner(2, "1m", NopCheckpoint{}, fakeRun)

	outcomes, err := runner.Execute(grid)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	// 결과는 그리드 조합 순서 그대로
	byMode := map[float64]Outcome{}
	combos := grid.Combinations()
	for i, combo := range combos {
		assert.Equal(t, combo.Key(), outcomes[i].Key)
		byMode[combo["mode"]] = outcomes[i]
	}

	assert.Equal(t, StatusCompleted, byMode[1].Status)
	assert.InDelta(t, 0.001, byMode[1].Summary.TotalReturn, 1e-9)

	assert.Equal(t, StatusNoTrades, byMode[2].Status)
	assert.Equal(t, StatusSkipped, byMode[3].Status)

	// 패닉은 배치 전체를 죽이지 않고 failed 센티넬로 남는다
	assert.Equal(t, StatusFailed, byMode[4].Status)
	assert.Contains(t, byMode[4].Error, "panic")
}

func Test_CheckpointResume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.json")
	grid := Grid{"mode": {1, 2}}

	first := NewRunner(1, "1m", NewFileCheckpoint(path), fakeRun)
	outcomes, err := first.Execute(grid)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, outcomes[0].Status)
	assert.Equal(t, StatusNoTrades, outcomes[1].Status)

	// 같은 체크포인트로 다시 돌리면 완료/무거래 조합 모두 스킵
	calls := 0
	second := NewRunner(1, "1m", NewFileCheckpoint(path), func(combo Combination) (*backtest.Result, error) {
		calls++
		return completedResult(), nil
	})
	outcomes, err = second.Execute(grid)
	require.NoError(t, err)

	assert.Equal(t, 0, calls)
	for _, o := range outcomes {
		assert.Equal(t, StatusSkipped, o.Status)
	}
}

func Test_Best(t *testing.T) {
	outcomes := []Outcome{
		{Key: "a", Status: StatusFailed},
		{Key: "b", Status: StatusCompleted},
		{Key: "c", Status: StatusCompleted},
		{Key: "d", Status: StatusNoTrades},
	}
	outcomes[1].Summary.TotalReturn = 0.01
	outcomes[2].Summary.TotalReturn = 0.05

	best, found := Best(outcomes)
	require.True(t, found)
	assert.Equal(t, "c", best.Key)

	_, found = Best([]Outcome{{Key: "a", Status: StatusFailed}})
	assert.False(t, found)
}
