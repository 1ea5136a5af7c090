package render

import (
	"bytes"
	"html/template"

	"github.com/theindianczar/stockmcp/internal/display"
	"github.com/theindianczar/stockmcp/internal/model"
)

var funcs = template.FuncMap{
	"currency": display.Currency,
	"percent":  display.Percent,
	"ratio":    display.Ratio,
	"date":     display.Date,
}

const decisionPanelTmpl = `
<section class="card decision decision-{{.Category | lower}}">
  <div class="decision-head">
    <span class="badge badge-{{.Category | lower}}">{{.Category}}</span>
    <span class="score">Score: {{.Score}} / 100</span>
  </div>
  <h3>Why this recommendation?</h3>
  <ul class="reasons">
    {{- range .Reasons}}
    <li>{{.}}</li>
    {{- end}}
  </ul>
  {{- if .Checks}}
  <h4>Checks</h4>
  <ul class="checks">
    {{- range .Checks}}
    <li><span class="dot {{if .Passed}}pass{{else}}fail{{end}}"></span>{{.Name}}
      <span class="check-value">{{ratio .Value}} vs {{ratio .Threshold}}</span></li>
    {{- end}}
  </ul>
  {{- end}}
  {{- if .Contributions}}
  <h4>Score breakdown</h4>
  <table class="contributions">
    {{- range .Contributions}}
    <tr><td>{{.Metric}}</td><td class="num">{{.Contribution}}</td></tr>
    {{- end}}
    <tr class="total"><td>Total</td><td class="num">{{.Score}}</td></tr>
  </table>
  {{- end}}
</section>`

const metricsGridTmpl = `
<section class="card metrics">
  <h2>Metrics</h2>
  <div class="metric-grid">
    <div class="metric"><div class="label">CAGR</div><div class="value">{{percent .CAGR}}</div></div>
    <div class="metric"><div class="label">Volatility</div><div class="value">{{percent .Volatility}}</div></div>
    <div class="metric"><div class="label">Sharpe</div><div class="value">{{ratio .Sharpe}}</div></div>
    <div class="metric"><div class="label">Sortino</div><div class="value">{{ratio .Sortino}}</div></div>
    <div class="metric"><div class="label">Profit Factor</div><div class="value">{{ratio .ProfitFactor}}</div></div>
    <div class="metric"><div class="label">Time in Market</div><div class="value">{{percent .TimeInMarket}}</div></div>
    <div class="metric"><div class="label">Avg Trade Duration</div><div class="value">{{ratio .AvgTradeDurationDays}} days</div></div>
    <div class="metric"><div class="label">Max Consecutive Losses</div><div class="value">{{.MaxConsecutiveLosses}}</div></div>
    <div class="metric"><div class="label">Max Drawdown</div><div class="value">{{percent .MaxDrawdown}}</div></div>
  </div>
</section>`

const tradeLedgerTmpl = `
<section class="card trades">
  <h2>Trades</h2>
  <table class="ledger">
    <thead>
      <tr><th>Symbol</th><th>Qty</th><th>Entry</th><th>Exit</th><th>PnL</th></tr>
    </thead>
    <tbody>
      {{- range .}}
      <tr class="{{.Class}}">
        <td>{{.Symbol}}</td>
        <td class="num">{{.Quantity}}</td>
        <td>{{.Entry}}</td>
        <td>{{.Exit}}</td>
        <td class="num pnl-{{.Class}}">{{.PnL}}</td>
      </tr>
      {{- end}}
    </tbody>
  </table>
</section>`

const helpOverlayTmpl = `
<input type="checkbox" id="{{.ID}}" class="modal-toggle">
<label for="{{.ID}}" class="help-button" title="Help">?</label>
<div class="modal">
  <div class="modal-box">
    <div class="modal-head">
      <h3>{{.Title}}</h3>
      <label for="{{.ID}}" class="modal-close">×</label>
    </div>
    <div class="modal-body">{{.Content}}</div>
    <div class="modal-foot"><label for="{{.ID}}" class="btn">Got it</label></div>
  </div>
</div>`

var (
	decisionPanel = mustParse("decision_panel", decisionPanelTmpl)
	metricsGrid   = mustParse("metrics_grid", metricsGridTmpl)
	tradeLedger   = mustParse("trade_ledger", tradeLedgerTmpl)
	helpOverlay   = mustParse("help_overlay", helpOverlayTmpl)
)

func mustParse(name, text string) *template.Template {
	t := template.New(name).Funcs(funcs).Funcs(template.FuncMap{
		"lower": lower,
	})
	return template.Must(t.Parse(text))
}

func lower(c model.DecisionCategory) string {
	switch c {
	case model.CategoryInvest:
		return "invest"
	case model.CategoryCaution:
		return "caution"
	default:
		return "reject"
	}
}

// DecisionPanel renders the verdict badge, score, ordered reasons, and the
// optional checks and contribution breakdown.
func DecisionPanel(d *model.Decision) (template.HTML, error) {
	return execute(decisionPanel, d)
}

// MetricsGrid renders the summary statistics cards.
func MetricsGrid(m *model.Metrics) (template.HTML, error) {
	return execute(metricsGrid, m)
}

// TradeRow is one display-ready ledger row.
type TradeRow struct {
	Symbol   string
	Quantity float64
	Entry    string
	Exit     string
	PnL      string
	Class    display.Class
}

// TradeLedger renders one row per trade in the order received.
func TradeLedger(trades []model.Trade) (template.HTML, error) {
	rows := make([]TradeRow, 0, len(trades))
	for i := range trades {
		rows = append(rows, newTradeRow(&trades[i]))
	}
	return execute(tradeLedger, rows)
}

func newTradeRow(t *model.Trade) TradeRow {
	label, class := display.PnL(t)
	row := TradeRow{
		Symbol:   t.Symbol,
		Quantity: t.Quantity,
		Entry:    display.Date(t.EntryDate) + " @ " + display.Currency(t.EntryPrice),
		Exit:     string(display.StatusOpen),
		PnL:      label,
		Class:    class,
	}
	if display.TradeStatus(t) == display.StatusClosed {
		row.Exit = display.Date(*t.ExitDate) + " @ " + display.Currency(*t.ExitPrice)
	}
	return row
}

// HelpTopic is the content of one help overlay. Content is plain text; line
// breaks are preserved by the modal body's pre-line styling.
type HelpTopic struct {
	ID      string
	Title   string
	Content string
}

// HelpOverlay renders a modal with a checkbox-backed open/close toggle. Each
// topic owns its own toggle, so overlapping topics cannot leak state into
// each other.
func HelpOverlay(topic HelpTopic) (template.HTML, error) {
	return execute(helpOverlay, topic)
}

func execute(t *template.Template, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
