package model

import "time"

type Candle struct {
	Pair      string    `json:"pair,omitempty"`
	Time      time.Time `json:"time"`
	UpdatedAt time.Time `json:"updatedAt"`
	Open      float64   `json:"open"`
	Close     float64   `json:"close"`
	Low       float64   `json:"low"`
	High      float64   `json:"high"`
	Volume    float64   `json:"volume"`
	Complete  bool      `json:"complete"`

	// Aditional collums from CSV inputs
	Metadata map[string]float64 `json:"metadata,omitempty"`
}

// UpbitCandleResponse : 업비트 캔들 REST 응답 구조체 (시세 조회 전용)
type UpbitCandleResponse struct {
	Market               string  `json:"market"`
	CandleDateTimeUtc    string  `json:"candle_date_time_utc"`
	CandleDateTimeKst    string  `json:"candle_date_time_kst"`
	OpeningPrice         float64 `json:"opening_price"`
	HighPrice            float64 `json:"high_price"`
	LowPrice             float64 `json:"low_price"`
	TradePrice           float64 `json:"trade_price"`
	CandleAccTradeVolume float64 `json:"candle_acc_trade_volume"`
	CandleAccTradePrice  float64 `json:"candle_acc_trade_price"`
	Timestamp            int64   `json:"timestamp"`
	Unit                 int     `json:"unit,omitempty"`
}
