package interfaces

import (
	"context"
	"time"

	"tanuki/model"
)

// CandleSource : 백테스트 입력 캔들 공급자 (REST 시세 or CSV 파일)
type CandleSource interface {
	CandlesByLimit(ctx context.Context, pair, period string, limit int) ([]model.Candle, error)
	CandlesByPeriod(ctx context.Context, pair, period string, start, end time.Time) ([]model.Candle, error)
}

type Notifier interface {
	SendNotification(message string) error
}
