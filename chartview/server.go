// chartview/server.go
package chartview

import (
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gorilla/websocket"

	"tanuki/utils/log"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StartChartServer : 간단한 http.Server. 백테스트 결과 차트 + 자본 곡선 WS 푸시
func StartChartServer(addr string) {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
            <h2>Tanuki Backtest Chart</h2>
            <p><a href="/chart">Go To Result Chart</a></p>
            </body></html>`))
	})

	http.HandleFunc("/chart", resultChartHandler)
	http.HandleFunc("/ws/equity", equityWSHandler)

	log.Infof("[ChartView] listening on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Errorf("[ChartView] server error: %v", err)
	}
}

func resultChartHandler(w http.ResponseWriter, r *http.Request) {
	page := components.NewPage()
	page.PageTitle = "Tanuki Backtest Chart"

	kline := buildCandleChart()
	equityLine := buildEquityChart()
	page.AddCharts(kline, equityLine)

	// 오버레이가 아닌 지표는 그룹별로 별도 차트
	for _, line := range buildIndicatorCharts() {
		page.AddCharts(line)
	}
	_ = page.Render(w)
}

// equityWSHandler : 스윕/백테스트 진행 중 자본 곡선 점을 실시간 전송
func equityWSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("[ChartView] ws upgrade: %v", err)
		return
	}
	defer conn.Close()

	sub := GlobalChartData.SubscribeEquity()
	defer GlobalChartData.UnsubscribeEquity(sub)

	// 접속 시점까지 누적된 곡선 먼저 전송
	for _, point := range GlobalChartData.GetEquity() {
		if err := conn.WriteJSON(point); err != nil {
			return
		}
	}
	for point := range sub {
		if err := conn.WriteJSON(point); err != nil {
			return
		}
	}
}

// buildCandleChart : 봉차트(Kline) + 진입/청산 마커 + 오버레이 지표
func buildCandleChart() *charts.Kline {
	candles := GlobalChartData.GetCandles()
	n := len(candles)
	if n == 0 {
		return charts.NewKLine()
	}

	xVals := make([]string, n)
	kValues := make([]opts.KlineData, n)

	// go-echarts Kline은 [open, close, low, high] 순서가 표준
	for i, c := range candles {
		xVals[i] = c.Time.Format("01/02 15:04")
		kValues[i] = opts.KlineData{
			Value: [4]float64{c.Open, c.Close, c.Low, c.High},
		}
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Candle Chart",
			Show:  opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	kline.SetXAxis(xVals).
		AddSeries("KLine", kValues).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:        "#ec0000",
				Color0:       "#00da3c",
				BorderColor:  "#8A0000",
				BorderColor0: "#008F28",
			}),
			charts.WithMarkPointNameCoordItemOpts(buildTradeMarkers()...),
		)

	// Overlay=true 지표(밴드, 채널 등)는 봉차트 위에 겹친다
	for _, chartInd := range GlobalChartData.GetIndicators() {
		if !chartInd.Overlay {
			continue
		}
		line := charts.NewLine()
		line.SetXAxis(xVals)
		for _, metric := range chartInd.Metrics {
			series := make([]opts.LineData, len(metric.Values))
			for i, v := range metric.Values {
				series[i] = opts.LineData{Value: v}
			}
			line.AddSeries(metric.Name, series)
		}
		kline.Overlap(line)
	}
	return kline
}

// buildTradeMarkers : 체결 기록을 봉차트 마크포인트로 변환
func buildTradeMarkers() []opts.MarkPointNameCoordItem {
	trades := GlobalChartData.GetTrades()
	items := make([]opts.MarkPointNameCoordItem, 0, len(trades))
	for _, t := range trades {
		color := "#1E90FF" // 진입
		if t.Kind.IsExit() {
			color = "#FF8C00"
		}
		items = append(items, opts.MarkPointNameCoordItem{
			Name:       string(t.Kind),
			Coordinate: []interface{}{t.Time.Format("01/02 15:04"), t.Price},
			Symbol:     "pin",
			SymbolSize: 24,
			ItemStyle:  &opts.ItemStyle{Color: color},
		})
	}
	return items
}

// buildEquityChart : 봉 단위 자본 곡선
func buildEquityChart() *charts.Line {
	equity := GlobalChartData.GetEquity()
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Equity Curve",
			Show:  opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	if len(equity) == 0 {
		return line
	}

	xVals := make([]string, len(equity))
	series := make([]opts.LineData, len(equity))
	for i, p := range equity {
		xVals[i] = p.Time.Format("01/02 15:04")
		series[i] = opts.LineData{Value: p.Balance}
	}

	line.SetXAxis(xVals).
		AddSeries("Balance", series).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
			Smooth: opts.Bool(false),
		}))
	return line
}

// buildIndicatorCharts : Overlay=false 지표를 GroupName 단위로 묶어 라인차트 생성
func buildIndicatorCharts() []*charts.Line {
	xVals := GlobalChartData.GetTimeAxis()

	order := make([]string, 0)
	seriesName := make(map[string][]string)
	seriesData := make(map[string]map[string][]opts.LineData)

	for _, chartInd := range GlobalChartData.GetIndicators() {
		if chartInd.Overlay {
			continue
		}
		group := chartInd.GroupName
		if _, ok := seriesData[group]; !ok {
			order = append(order, group)
			seriesData[group] = make(map[string][]opts.LineData)
		}
		for _, metric := range chartInd.Metrics {
			data := make([]opts.LineData, len(metric.Values))
			for i, v := range metric.Values {
				data[i] = opts.LineData{Value: v}
			}
			seriesName[group] = append(seriesName[group], metric.Name)
			seriesData[group][metric.Name] = data
		}
	}

	lines := make([]*charts.Line, 0, len(order))
	for _, group := range order {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{
				Title: group,
				Show:  opts.Bool(true),
			}),
			charts.WithTooltipOpts(opts.Tooltip{
				Show: opts.Bool(true),
			}),
			charts.WithLegendOpts(opts.Legend{
				Show: opts.Bool(true),
			}),
		)
		line.SetXAxis(xVals)
		for _, name := range seriesName[group] {
			line.AddSeries(name, seriesData[group][name]).
				SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		}
		lines = append(lines, line)
	}
	return lines
}
