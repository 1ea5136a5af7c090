package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/theindianczar/stockmcp/internal/client"
	"github.com/theindianczar/stockmcp/internal/model"
	"github.com/theindianczar/stockmcp/internal/viewstate"
)

func renderPage(t *testing.T, snap viewstate.Snapshot) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Page(&buf, snap); err != nil {
		t.Fatalf("Page: %v", err)
	}
	return buf.String()
}

func sampleResult(withMetrics bool) *model.BacktestResult {
	r := &model.BacktestResult{
		Symbol:      "WIPRO.NS",
		InitialCash: 100000,
		TotalPnL:    300,
		MaxDrawdown: 0.0812,
		EquityCurve: []model.EquityPoint{
			{Date: "2024-01-01", Equity: 100000, Drawdown: 0},
			{Date: "2024-02-01", Equity: 100500, Drawdown: 0},
			{Date: "2024-03-01", Equity: 100300, Drawdown: 0.002},
		},
		Trades: []model.Trade{
			{Symbol: "WIPRO.NS", Quantity: 10, EntryDate: "2024-01-02", EntryPrice: 450},
		},
	}
	if withMetrics {
		r.Metrics = &model.Metrics{CAGR: 0.15, Sharpe: 1.2, MaxDrawdown: 0.0812}
	}
	return r
}

func TestPageIdle(t *testing.T) {
	html := renderPage(t, viewstate.Snapshot{Phase: viewstate.PhaseIdle})
	if !strings.Contains(html, "Run backtest") {
		t.Error("idle page must show the run form")
	}
	if strings.Contains(html, "Equity Curve") {
		t.Error("idle page must not render result surfaces")
	}
}

func TestPageRunningAutoRefreshes(t *testing.T) {
	html := renderPage(t, viewstate.Snapshot{
		Phase:  viewstate.PhaseRunning,
		Params: client.RunParams{Symbol: "WIPRO.NS"},
	})
	if !strings.Contains(html, `http-equiv="refresh"`) {
		t.Error("running page must refresh itself")
	}
	if !strings.Contains(html, "Running backtest for WIPRO.NS") {
		t.Error("running notice missing")
	}
}

func TestPageFailedShowsErrorBanner(t *testing.T) {
	html := renderPage(t, viewstate.Snapshot{
		Phase: viewstate.PhaseFailed,
		Err:   "backtest engine returned status 502",
	})
	if !strings.Contains(html, "backtest engine returned status 502") {
		t.Error("error banner must carry the failure message")
	}
	if strings.Contains(html, "Equity Curve") {
		t.Error("failed page must not show partial data next to the error")
	}
}

func TestPageSucceededRendersAllSurfaces(t *testing.T) {
	html := renderPage(t, viewstate.Snapshot{
		Phase:  viewstate.PhaseSucceeded,
		Result: sampleResult(true),
	})
	for _, want := range []string{"Equity Curve", "Drawdown Chart", "Trades", `<div class="metric-grid">`, "₹300", "8.12%"} {
		if !strings.Contains(html, want) {
			t.Errorf("succeeded page missing %q", want)
		}
	}
	if strings.Contains(html, "incomplete") {
		t.Error("complete result must not show the incomplete notice")
	}
}

func TestPagePartialShowsNoticeAndNoMetricsGrid(t *testing.T) {
	html := renderPage(t, viewstate.Snapshot{
		Phase:  viewstate.PhasePartial,
		Result: sampleResult(false),
	})
	if !strings.Contains(html, "incomplete") {
		t.Error("partial page must show the incomplete notice")
	}
	if strings.Contains(html, `<div class="metric-grid">`) {
		t.Error("partial page must never render the metrics grid")
	}
	if !strings.Contains(html, "Equity Curve") {
		t.Error("partial page still shows the surfaces that have data")
	}
}
