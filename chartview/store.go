// chartview/store.go
package chartview

import (
	"sort"
	"sync"

	"tanuki/indicator"
	"tanuki/model"
)

// ChartDataStore : 봉(Candle) + 지표 + 체결 기록 + 자본 곡선을 저장
type ChartDataStore struct {
	mu sync.Mutex

	candles    []model.Candle
	indicators []indicator.ChartIndicator
	trades     []model.TradeRecord
	equity     []model.EquityPoint

	// 긴 스윕 도중 자본 곡선을 브라우저로 흘려보내는 구독자들
	equitySubs map[chan model.EquityPoint]struct{}
}

// GlobalChartData : 전역(싱글톤) 데이터 저장소
var GlobalChartData = NewChartDataStore()

func NewChartDataStore() *ChartDataStore {
	return &ChartDataStore{equitySubs: make(map[chan model.EquityPoint]struct{})}
}

// SetBacktest : 단일 백테스트 결과 일괄 반영 (이전 내용은 교체)
func (ds *ChartDataStore) SetBacktest(candles []model.Candle,
	indicators []indicator.ChartIndicator, trades []model.TradeRecord, equity []model.EquityPoint) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.candles = append([]model.Candle(nil), candles...)
	ds.indicators = append([]indicator.ChartIndicator(nil), indicators...)
	ds.trades = append([]model.TradeRecord(nil), trades...)
	ds.equity = append([]model.EquityPoint(nil), equity...)
}

// AppendEquityPoint : 자본 곡선 점 추가 + 실시간 구독자에게 전달
func (ds *ChartDataStore) AppendEquityPoint(point model.EquityPoint) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	ds.equity = append(ds.equity, point)
	for sub := range ds.equitySubs {
		select {
		case sub <- point:
		default: // 느린 구독자는 건너뛴다
		}
	}
}

// SubscribeEquity : 자본 곡선 실시간 채널 구독
func (ds *ChartDataStore) SubscribeEquity() chan model.EquityPoint {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	sub := make(chan model.EquityPoint, 64)
	ds.equitySubs[sub] = struct{}{}
	return sub
}

func (ds *ChartDataStore) UnsubscribeEquity(sub chan model.EquityPoint) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, ok := ds.equitySubs[sub]; ok {
		delete(ds.equitySubs, sub)
		close(sub)
	}
}

// GetCandles : 현재 저장된 모든 봉 복사 반환 (시간 오름차순)
func (ds *ChartDataStore) GetCandles() []model.Candle {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	out := make([]model.Candle, len(ds.candles))
	copy(out, ds.candles)

	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

func (ds *ChartDataStore) GetIndicators() []indicator.ChartIndicator {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	out := make([]indicator.ChartIndicator, len(ds.indicators))
	copy(out, ds.indicators)
	return out
}

func (ds *ChartDataStore) GetTrades() []model.TradeRecord {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	out := make([]model.TradeRecord, len(ds.trades))
	copy(out, ds.trades)
	return out
}

func (ds *ChartDataStore) GetEquity() []model.EquityPoint {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	out := make([]model.EquityPoint, len(ds.equity))
	copy(out, ds.equity)
	return out
}

// GetTimeAxis : x축(time)을 문자열 배열로 변환
func (ds *ChartDataStore) GetTimeAxis() []string {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	out := make([]string, len(ds.candles))
	for i, c := range ds.candles {
		out[i] = c.Time.Format("01/02 15:04")
	}
	return out
}
