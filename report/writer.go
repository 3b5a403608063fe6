package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"tanuki/backtest"
	jsonutil "tanuki/utils/json"
)

// WriteJSON : 결과 전체(요약+거래 로그+에쿼티)를 JSON 파일로 저장.
func WriteJSON(path string, result *backtest.Result, summary Summary) error {
	payload := struct {
		Summary Summary          `json:"summary"`
		Result  *backtest.Result `json:"result"`
	}{Summary: summary, Result: result}

	body := jsonutil.SerializeMessageBodyIndent(payload)
	if len(body) == 0 {
		return fmt.Errorf("failed to serialize report for %s", result.Pair)
	}
	return os.WriteFile(path, body, 0o644)
}

// WriteTradesCSV : 거래 로그를 CSV로 저장 (외부 스프레드시트 확인용).
func WriteTradesCSV(path string, result *backtest.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "kind", "side", "price", "realized", "balance"}); err != nil {
		return err
	}
	for _, t := range result.Trades {
		record := []string{
			t.Time.Format(time.RFC3339),
			string(t.Kind),
			string(t.Side),
			strconv.FormatFloat(t.Price, 'f', -1, 64),
			strconv.FormatFloat(t.Realized, 'f', -1, 64),
			strconv.FormatFloat(t.Balance, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
