package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/theindianczar/stockmcp/internal/display"
	"github.com/theindianczar/stockmcp/internal/viewstate"
)

// Help copy shown by the chart and decision overlays. Multi-line text is
// rendered verbatim; the modal body preserves line breaks.
var helpTopics = map[string]HelpTopic{
	"drawdown": {
		ID:    "help-drawdown",
		Title: "Drawdown Chart — Understanding Risk and Losses",
		Content: `The Drawdown Chart shows the percentage decline from your portfolio's peak value.

• Y-axis: drawdown percentage (0% = no loss from peak)
• X-axis: trading dates
• Area: magnitude of losses from previous highs

Smaller and shorter drawdowns are better. Avoid strategies with deep, prolonged drawdowns.`,
	},
	"decision": {
		ID:    "help-decision",
		Title: "Investability Verdict",
		Content: `The verdict is a rule-based classification of the strategy:

• INVEST — strong risk-adjusted performance across key metrics
• CAUTION — positive returns but mixed risk metrics
• REJECT — at least one hard rule failed

The score out of 100 is an additive breakdown over the listed metrics.`,
	},
}

type pageData struct {
	Phase     viewstate.Phase
	Params    paramsData
	Err       string
	Seq       uint64
	Summary   []summaryCard
	Equity    template.HTML
	Drawdown  template.HTML
	Decision  template.HTML
	Metrics   template.HTML
	Ledger    template.HTML
	HelpDD    template.HTML
	HelpDec   template.HTML
	HasResult bool
	Partial   bool
}

type paramsData struct {
	Symbol      string
	Start       string
	End         string
	InitialCash float64
}

type summaryCard struct {
	Label string
	Value string
}

const pageTmpl = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  {{- if eq .Phase "running"}}
  <meta http-equiv="refresh" content="2">
  {{- end}}
  <title>StockMCP Dashboard</title>
  <style>{{css}}</style>
</head>
<body>
  <header class="hdr"><h1>StockMCP Dashboard</h1></header>

  <form class="controls" method="post" action="/run">
    <label>Symbol <input name="symbol" value="{{.Params.Symbol}}" placeholder="WIPRO.NS" required></label>
    <label>Start <input name="start" type="date" value="{{.Params.Start}}" required></label>
    <label>End <input name="end" type="date" value="{{.Params.End}}" required></label>
    <label>Initial cash <input name="initial_cash" type="number" min="1" step="1" value="{{if .Params.InitialCash}}{{.Params.InitialCash}}{{else}}100000{{end}}"></label>
    <button type="submit" class="btn">Run backtest</button>
  </form>

  {{- if eq .Phase "idle"}}
  <p class="notice">Set the parameters above and run a backtest to see results.</p>
  {{- else if eq .Phase "running"}}
  <p class="notice">Running backtest for {{.Params.Symbol}}… this page refreshes automatically.</p>
  {{- else if eq .Phase "failed"}}
  <div class="banner error">Error: {{.Err}}</div>
  {{- end}}

  {{- if .HasResult}}
  {{- if .Partial}}
  <div class="banner partial">Result received but incomplete: metrics were not included. Showing available data.</div>
  {{- end}}

  <div class="summary">
    {{- range .Summary}}
    <div class="card metric"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
    {{- end}}
  </div>

  {{.Decision}}
  {{.HelpDec}}

  <section class="card">
    <div class="card-hd"><h2>Equity Curve</h2></div>
    {{.Equity}}
  </section>

  <section class="card">
    <div class="card-hd"><h2>Drawdown Chart</h2>{{.HelpDD}}</div>
    {{.Drawdown}}
  </section>

  {{.Metrics}}
  {{.Ledger}}
  {{- end}}
</body>
</html>`

var page = template.Must(template.New("page").Funcs(template.FuncMap{
	"css": func() template.CSS { return pageCSS },
}).Parse(pageTmpl))

// Page renders the whole dashboard document for the given state snapshot.
// Everything on the page is a pure function of the snapshot.
func Page(w io.Writer, snap viewstate.Snapshot) error {
	data := pageData{
		Phase: snap.Phase,
		Params: paramsData{
			Symbol:      snap.Params.Symbol,
			Start:       snap.Params.Start,
			End:         snap.Params.End,
			InitialCash: snap.Params.InitialCash,
		},
		Err: snap.Err,
		Seq: snap.Seq,
	}

	if r := snap.Result; r != nil && (snap.Phase == viewstate.PhaseSucceeded || snap.Phase == viewstate.PhasePartial) {
		data.HasResult = true
		data.Partial = snap.Phase == viewstate.PhasePartial
		data.Summary = []summaryCard{
			{Label: "Total PnL", Value: display.Currency(r.TotalPnL)},
			{Label: "Max Drawdown", Value: display.Percent(r.MaxDrawdown)},
			{Label: "Trades", Value: fmt.Sprintf("%d", len(r.Trades))},
		}
		data.Equity = EquityPanel(r.EquityCurve)
		data.Drawdown = DrawdownPanel(r.EquityCurve)

		var err error
		if data.Ledger, err = TradeLedger(r.Trades); err != nil {
			return err
		}
		if r.Decision != nil {
			if data.Decision, err = DecisionPanel(r.Decision); err != nil {
				return err
			}
			if data.HelpDec, err = HelpOverlay(helpTopics["decision"]); err != nil {
				return err
			}
		}
		if r.Metrics != nil {
			if data.Metrics, err = MetricsGrid(r.Metrics); err != nil {
				return err
			}
		}
		if data.HelpDD, err = HelpOverlay(helpTopics["drawdown"]); err != nil {
			return err
		}
	}

	return page.Execute(w, data)
}

const pageCSS template.CSS = `
body { font-family: system-ui, sans-serif; margin: 0; padding: 24px; background: #f8fafc; color: #111827; }
.hdr h1 { font-size: 24px; margin: 0 0 16px; }
.controls { display: flex; gap: 12px; align-items: end; flex-wrap: wrap; margin-bottom: 24px; }
.controls label { display: flex; flex-direction: column; font-size: 13px; color: #6b7280; gap: 4px; }
.controls input { padding: 6px 8px; border: 1px solid #d1d5db; border-radius: 6px; }
.btn { padding: 8px 16px; background: #2563eb; color: #fff; border: none; border-radius: 6px; cursor: pointer; }
.notice { color: #6b7280; }
.banner { padding: 12px 16px; border-radius: 8px; margin-bottom: 16px; }
.banner.error { background: #fee2e2; color: #b91c1c; border: 1px solid #fca5a5; }
.banner.partial { background: #fef9c3; color: #854d0e; border: 1px solid #fde047; }
.summary { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; margin-bottom: 16px; }
.card { background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 16px; margin-bottom: 16px; }
.card-hd { display: flex; justify-content: space-between; align-items: center; }
.card h2 { font-size: 18px; margin: 0 0 8px; }
.metric .label { font-size: 13px; color: #6b7280; }
.metric .value { font-size: 20px; font-weight: 600; }
.metric-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 12px; }
.badge { padding: 4px 12px; border-radius: 999px; font-weight: 600; font-size: 13px; border: 1px solid; }
.badge-invest { background: #dcfce7; color: #166534; border-color: #4ade80; }
.badge-caution { background: #fef9c3; color: #854d0e; border-color: #facc15; }
.badge-reject { background: #fee2e2; color: #b91c1c; border-color: #f87171; }
.decision-head { display: flex; gap: 16px; align-items: center; margin-bottom: 8px; }
.score { font-weight: 600; }
.reasons { margin: 4px 0 8px; padding-left: 20px; font-size: 14px; color: #374151; }
.checks { list-style: none; padding: 0; font-size: 14px; }
.checks li { display: flex; gap: 8px; align-items: center; }
.check-value { margin-left: auto; color: #6b7280; font-size: 12px; }
.dot { width: 10px; height: 10px; border-radius: 50%; display: inline-block; }
.dot.pass { background: #22c55e; }
.dot.fail { background: #ef4444; }
.contributions { font-size: 14px; border-collapse: collapse; min-width: 240px; }
.contributions td { padding: 2px 8px 2px 0; }
.contributions .total td { border-top: 1px solid #e5e7eb; font-weight: 600; }
.ledger { width: 100%; border-collapse: collapse; font-size: 14px; }
.ledger th, .ledger td { text-align: left; padding: 6px 8px; border-top: 1px solid #e5e7eb; }
.num { text-align: right; }
.pnl-loss { color: #dc2626; }
.pnl-gain { color: #16a34a; }
.chart-empty { color: #6b7280; font-size: 14px; }
svg { width: 100%; height: auto; }
.help-button { cursor: pointer; color: #6b7280; border: 1px solid #d1d5db; border-radius: 50%; width: 20px; height: 20px; display: inline-flex; align-items: center; justify-content: center; font-size: 13px; }
.modal-toggle { display: none; }
.modal { display: none; position: fixed; inset: 0; background: rgba(0,0,0,0.3); align-items: center; justify-content: center; z-index: 50; padding: 16px; }
.modal-toggle:checked + .help-button + .modal, .modal-toggle:checked ~ .modal { display: flex; }
.modal-box { background: #fff; border-radius: 8px; max-width: 640px; width: 100%; max-height: 80vh; display: flex; flex-direction: column; }
.modal-head { display: flex; justify-content: space-between; align-items: center; padding: 16px 24px; border-bottom: 1px solid #e5e7eb; }
.modal-head h3 { margin: 0; font-size: 16px; }
.modal-close { cursor: pointer; color: #9ca3af; font-size: 20px; }
.modal-body { padding: 16px 24px; overflow-y: auto; white-space: pre-line; font-size: 14px; color: #374151; }
.modal-foot { display: flex; justify-content: flex-end; padding: 16px 24px; border-top: 1px solid #e5e7eb; background: #f9fafb; }
.modal-foot .btn { cursor: pointer; }
`
