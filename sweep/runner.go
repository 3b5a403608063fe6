package sweep

import (
	"errors"
	"fmt"
	"sync"

	"tanuki/backtest"
	"tanuki/report"
	"tanuki/utils/log"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusNoTrades  Status = "no_trades"  // 유효한 결과지만 진입이 없었음
	StatusSkipped   Status = "skipped"    // 데이터 부족 or 체크포인트에 이미 완료
	StatusFailed    Status = "failed"     // 단일 실행 내부 오류/패닉
)

// Outcome : 조합 하나의 결과. 실패/스킵도 센티넬로 남겨서
// 전체 조합 수 = 완료 + 무거래 + 스킵 + 실패가 항상 성립한다.
type Outcome struct {
	Key     string         `json:"key"`
	Status  Status         `json:"status"`
	Summary report.Summary `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// RunFunc runs one simulation for one parameter combination. The candle data
// it closes over must be treated as read-only; each worker owns its own
// simulator instance.
type RunFunc func(params Combination) (*backtest.Result, error)

// Runner fans a parameter grid out over a fixed worker pool. Workers share
// nothing mutable; they receive combinations from a channel and send
// outcomes back to the coordinating goroutine, which owns the checkpoint.
type Runner struct {
	Workers    int
	Timeframe  string
	Checkpoint Checkpoint
	Run        RunFunc
}

func NewRunner(workers int, timeframe string, checkpoint Checkpoint, run RunFunc) *Runner {
	if workers < 1 {
		workers = 1
	}
	if checkpoint == nil {
		checkpoint = NopCheckpoint{}
	}
	return &Runner{Workers: workers, Timeframe: timeframe, Checkpoint: checkpoint, Run: run}
}

// Execute runs every combination of the grid and returns outcomes in the
// grid's deterministic combination order.
func (r *Runner) Execute(grid Grid) ([]Outcome, error) {
	combos := grid.Combinations()

	completed, err := r.Checkpoint.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	tasks := make(chan Combination, len(combos))
	results := make(chan Outcome, len(combos))

	wg := new(sync.WaitGroup)
	for w := 0; w < r.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for combo := range tasks {
				results <- r.runOne(combo)
			}
		}()
	}

	queued := 0
	outcomeByKey := make(map[string]Outcome, len(combos))
	for _, combo := range combos {
		key := combo.Key()
		if completed.InArray(key) {
			outcomeByKey[key] = Outcome{Key: key, Status: StatusSkipped, Error: "already completed"}
			continue
		}
		tasks <- combo
		queued++
	}
	close(tasks)

	for i := 0; i < queued; i++ {
		outcome := <-results
		outcomeByKey[outcome.Key] = outcome
		if outcome.Status == StatusCompleted || outcome.Status == StatusNoTrades {
			completed.Add(outcome.Key)
		}
	}
	wg.Wait()

	if err := r.Checkpoint.Save(completed); err != nil {
		log.Warnf("failed to save checkpoint: %v", err)
	}

	out := make([]Outcome, 0, len(combos))
	for _, combo := range combos {
		out = append(out, outcomeByKey[combo.Key()])
	}
	return out, nil
}

// runOne executes a single combination, turning panics and expected
// degenerate cases into sentinel outcomes so one bad combination can never
// abort the batch.
func (r *Runner) runOne(combo Combination) (outcome Outcome) {
	key := combo.Key()

	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("sweep: panic on %s: %v", key, rec)
			outcome = Outcome{Key: key, Status: StatusFailed, Error: fmt.Sprintf("panic: %v", rec)}
		}
	}()

	result, err := r.Run(combo)
	if err != nil {
		var insufficient backtest.DataInsufficientError
		if errors.As(err, &insufficient) {
			return Outcome{Key: key, Status: StatusSkipped, Error: insufficient.Error()}
		}
		return Outcome{Key: key, Status: StatusFailed, Error: err.Error()}
	}

	if result.NoTrades() {
		return Outcome{Key: key, Status: StatusNoTrades}
	}

	return Outcome{Key: key, Status: StatusCompleted, Summary: report.Summarize(result, r.Timeframe)}
}

// Best returns the completed outcome with the highest total return, or false
// when nothing completed.
func Best(outcomes []Outcome) (Outcome, bool) {
	best := Outcome{}
	found := false
	for _, o := range outcomes {
		if o.Status != StatusCompleted {
			continue
		}
		if !found || o.Summary.TotalReturn > best.Summary.TotalReturn {
			best = o
			found = true
		}
	}
	return best, found
}
