package webserver

import (
	"sync"

	"github.com/gofiber/fiber/v2"

	"tanuki/backtest"
	"tanuki/report"
	"tanuki/sweep"
	fiberhelpers "tanuki/utils/fiberhelper"
	"tanuki/utils/fiberhelper/response"
)

// WebServer : 마지막 백테스트/스윕 결과를 JSON API로 노출.
// 결과는 programs/ 쪽에서 실행이 끝날 때마다 밀어넣는다.
type WebServer struct {
	mu sync.RWMutex

	result  *backtest.Result
	summary *report.Summary
	sweep   []sweep.Outcome
}

func NewWebServer() *WebServer {
	return &WebServer{}
}

// SetResult : 단일 백테스트 결과 반영
func (ws *WebServer) SetResult(result *backtest.Result, summary report.Summary) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.result = result
	ws.summary = &summary
}

// SetSweep : 스윕 결과 반영
func (ws *WebServer) SetSweep(outcomes []sweep.Outcome) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.sweep = append([]sweep.Outcome(nil), outcomes...)
}

func (ws *WebServer) Start(port string) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(fiberhelpers.NewRecover())

	api := app.Group("/api")
	api.Get("/summary", ws.summaryHandler)
	api.Get("/trades", ws.tradesHandler)
	api.Get("/sweep", ws.sweepHandler)

	fiberhelpers.ListenWithGraceFullyShutdown(app, port)
}

func (ws *WebServer) summaryHandler(c *fiber.Ctx) error {
	ext := response.Ext{Ctx: c}

	ws.mu.RLock()
	summary := ws.summary
	ws.mu.RUnlock()

	if summary == nil {
		return ext.NotFound("no backtest has completed yet")
	}
	return ext.Ok(summary)
}

func (ws *WebServer) tradesHandler(c *fiber.Ctx) error {
	ext := response.Ext{Ctx: c}

	ws.mu.RLock()
	result := ws.result
	ws.mu.RUnlock()

	if result == nil {
		return ext.NotFound("no backtest has completed yet")
	}
	return ext.Ok(fiber.Map{
		"pair":     result.Pair,
		"strategy": result.Strategy,
		"trades":   result.Trades,
	})
}

func (ws *WebServer) sweepHandler(c *fiber.Ctx) error {
	ext := response.Ext{Ctx: c}

	ws.mu.RLock()
	outcomes := ws.sweep
	ws.mu.RUnlock()

	if outcomes == nil {
		return ext.NotFound("no sweep has completed yet")
	}

	best, found := sweep.Best(outcomes)
	payload := fiber.Map{"outcomes": outcomes}
	if found {
		payload["best"] = best
	}
	return ext.Ok(payload)
}
