package csvfeed

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"tanuki/model"
)

// OHLCV CSV 로더. 포맷: timestamp,open,high,low,close,volume
// timestamp는 유닉스 초 또는 RFC3339. 시뮬레이터에 넘기기 전에
// 시간 오름차순과 중복 없음을 보장한다.

func LoadFile(path, pair string) ([]model.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open candle csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read candle csv %s: %w", path, err)
	}

	candles := make([]model.Candle, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		candle, err := parseRow(row, pair)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		candles = append(candles, candle)
	}

	if err := validate(candles); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return candles, nil
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(row[0], 64)
	if err != nil {
		_, terr := time.Parse(time.RFC3339, row[0])
		return terr != nil
	}
	return false
}

func parseRow(row []string, pair string) (model.Candle, error) {
	if len(row) < 6 {
		return model.Candle{}, fmt.Errorf("expected 6 columns, got %d", len(row))
	}

	ts, err := parseTime(row[0])
	if err != nil {
		return model.Candle{}, err
	}

	values := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(row[i+1], 64)
		if err != nil {
			return model.Candle{}, fmt.Errorf("bad numeric column %d: %w", i+1, err)
		}
		values[i] = v
	}

	return model.Candle{
		Pair:     pair,
		Time:     ts,
		Open:     values[0],
		High:     values[1],
		Low:      values[2],
		Close:    values[3],
		Volume:   values[4],
		Complete: true,
	}, nil
}

func parseTime(field string) (time.Time, error) {
	if unix, err := strconv.ParseInt(field, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	if ts, err := time.Parse(time.RFC3339, field); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", field)
}

func validate(candles []model.Candle) error {
	for i := 1; i < len(candles); i++ {
		if candles[i].Time.Equal(candles[i-1].Time) {
			return fmt.Errorf("duplicate timestamp %v", candles[i].Time)
		}
		if candles[i].Time.Before(candles[i-1].Time) {
			return fmt.Errorf("timestamps out of order at %v", candles[i].Time)
		}
	}
	return nil
}
