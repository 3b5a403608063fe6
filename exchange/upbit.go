package exchange

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tanuki/model"
	jsonutil "tanuki/utils/json"
	"tanuki/utils/resty"
	"tanuki/utils/tools"
)

const (
	upbitBaseREST = "https://api.upbit.com"

	// 업비트 캔들 REST는 요청당 최대 200개까지 허용
	upbitMaxCandlesPerReq = 200
)

// Upbit : 업비트 공개 시세 조회 클라이언트 (candle REST 전용).
// 인증이 필요한 주문/자산 API는 다루지 않는다.
type Upbit struct {
	resty resty.RestyClient
}

func NewUpbit(client ...resty.RestyClient) *Upbit {
	if len(client) > 0 && client[0] != nil {
		return &Upbit{resty: client[0]}
	}
	return &Upbit{resty: resty.NewDefaultRestyClientWithRetryCount(false, 3)}
}

// CandlesByLimit : (REST) 최신 캔들부터 limit개를 받아 시간 오름차순으로 반환
func (u *Upbit) CandlesByLimit(ctx context.Context, pair, period string, limit int) ([]model.Candle, error) {
	endpoint, err := tools.MapPeriodToCandleEndpoint(period)
	if err != nil {
		return nil, err
	}

	candles := make([]model.Candle, 0, limit)
	var to string
	for len(candles) < limit {
		count := limit - len(candles)
		if count > upbitMaxCandlesPerReq {
			count = upbitMaxCandlesPerReq
		}

		batch, err := u.fetchCandles(ctx, endpoint, pair, count, to)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		candles = append(candles, batch...)
		// 응답은 최신순. 다음 페이지는 이번 배치의 가장 오래된 봉 이전부터
		to = batch[len(batch)-1].Time.Format("2006-01-02T15:04:05") + "Z"
	}

	sortCandlesAsc(candles)
	return candles, nil
}

// CandlesByPeriod : (REST) start~end 구간의 캔들을 페이지 단위로 수집
func (u *Upbit) CandlesByPeriod(ctx context.Context, pair, period string,
	start, end time.Time) ([]model.Candle, error) {
	endpoint, err := tools.MapPeriodToCandleEndpoint(period)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, fmt.Errorf("invalid candle range: start=%v end=%v", start, end)
	}

	var candles []model.Candle
	to := end.UTC().Format("2006-01-02T15:04:05") + "Z"
	for {
		batch, err := u.fetchCandles(ctx, endpoint, pair, upbitMaxCandlesPerReq, to)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		reachedStart := false
		for _, c := range batch {
			if c.Time.Before(start) {
				reachedStart = true
				continue
			}
			candles = append(candles, c)
		}
		if reachedStart || len(batch) < upbitMaxCandlesPerReq {
			break
		}
		to = batch[len(batch)-1].Time.Format("2006-01-02T15:04:05") + "Z"
	}

	sortCandlesAsc(candles)
	return candles, nil
}

// fetchCandles : 공개 캔들 엔드포인트 1회 호출. 응답은 최신순 그대로 둔다.
func (u *Upbit) fetchCandles(ctx context.Context, endpoint, pair string, count int, to string) ([]model.Candle, error) {
	qParams := []resty.QueryParam{
		{Key: "market", Value: pair},
		{Key: "count", Value: count},
	}
	if to != "" {
		qParams = append(qParams, resty.QueryParam{Key: "to", Value: to})
	}

	resp, err := u.resty.
		MakeRequest(ctx, nil, nil).
		Get(fmt.Sprintf("%s/v1/candles/%s", upbitBaseREST, endpoint), qParams...)
	if err != nil {
		return nil, fmt.Errorf("API 호출 실패: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API 응답 오류: %d, %s", resp.StatusCode(), resp.String())
	}

	raw := jsonutil.DeserializeMessageBody[[]model.UpbitCandleResponse](resp.Body())
	candles := make([]model.Candle, 0, len(raw))
	for _, r := range raw {
		candle, err := convertUpbitCandle(r)
		if err != nil {
			return nil, err
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

func convertUpbitCandle(r model.UpbitCandleResponse) (model.Candle, error) {
	t, err := time.Parse("2006-01-02T15:04:05", r.CandleDateTimeUtc)
	if err != nil {
		return model.Candle{}, fmt.Errorf("bad candle_date_time_utc %q: %w", r.CandleDateTimeUtc, err)
	}
	return model.Candle{
		Pair:      r.Market,
		Time:      t.UTC(),
		UpdatedAt: time.UnixMilli(r.Timestamp).UTC(),
		Open:      r.OpeningPrice,
		High:      r.HighPrice,
		Low:       r.LowPrice,
		Close:     r.TradePrice,
		Volume:    r.CandleAccTradeVolume,
		Complete:  true,
	}, nil
}

func sortCandlesAsc(candles []model.Candle) {
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Time.Before(candles[j].Time)
	})
}
