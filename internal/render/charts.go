package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"math"

	"github.com/theindianczar/stockmcp/internal/display"
	"github.com/theindianczar/stockmcp/internal/model"
)

const (
	chartWidth  = 960.0
	chartHeight = 300.0
	chartLeft   = 70.0
	chartRight  = 20.0
	chartTop    = 16.0
	chartBottom = 36.0
)

// EquityPanel renders the equity curve as an SVG line series. Each sample
// carries a native tooltip with its formatted date and currency value.
func EquityPanel(curve []model.EquityPoint) template.HTML {
	if len(curve) < 2 {
		return `<p class="chart-empty">Not enough equity samples to chart.</p>`
	}

	minV := math.Inf(1)
	maxV := math.Inf(-1)
	for _, p := range curve {
		minV = math.Min(minV, p.Equity)
		maxV = math.Max(maxV, p.Equity)
	}
	pad := (maxV - minV) * 0.05
	if pad <= 0 {
		pad = math.Abs(minV)*0.02 + 1
	}
	minV -= pad
	maxV += pad

	plotW := chartWidth - chartLeft - chartRight
	plotH := chartHeight - chartTop - chartBottom
	step := plotW / float64(len(curve)-1)

	toY := func(v float64) float64 {
		r := (v - minV) / (maxV - minV)
		return chartTop + (1.0-r)*plotH
	}
	toX := func(i int) float64 {
		return chartLeft + float64(i)*step
	}

	var buf bytes.Buffer
	openSVG(&buf)

	// Horizontal gridlines with currency labels.
	for i := 0; i <= 4; i++ {
		v := minV + (maxV-minV)*float64(i)/4
		y := toY(v)
		fmt.Fprintf(&buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e5e7eb"/>`,
			chartLeft, y, chartWidth-chartRight, y)
		fmt.Fprintf(&buf, `<text x="%.1f" y="%.1f" text-anchor="end" font-size="11" fill="#6b7280">%s</text>`,
			chartLeft-6, y+4, html.EscapeString(display.Currency(v)))
	}

	buf.WriteString(`<polyline fill="none" stroke="#2563eb" stroke-width="2" points="`)
	for i, p := range curve {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%.1f,%.1f", toX(i), toY(p.Equity))
	}
	buf.WriteString(`"/>`)

	for i, p := range curve {
		fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="3" fill="#2563eb" fill-opacity="0"><title>%s — %s</title></circle>`,
			toX(i), toY(p.Equity),
			html.EscapeString(display.Date(p.Date)),
			html.EscapeString(display.Currency(p.Equity)))
	}

	axisDates(&buf, curve, toX)
	buf.WriteString(`</svg>`)
	return template.HTML(buf.String())
}

// DrawdownPanel renders drawdown as an SVG area series in percentage units.
// The y-domain lower bound is fixed at zero.
func DrawdownPanel(curve []model.EquityPoint) template.HTML {
	if len(curve) < 2 {
		return `<p class="chart-empty">Not enough equity samples to chart.</p>`
	}

	maxDD := 0.0
	for _, p := range curve {
		maxDD = math.Max(maxDD, p.Drawdown)
	}
	// Keep a visible scale even for an all-zero drawdown series.
	top := math.Max(maxDD*1.1, 0.01)

	plotW := chartWidth - chartLeft - chartRight
	plotH := chartHeight - chartTop - chartBottom
	step := plotW / float64(len(curve)-1)
	baseline := chartTop + plotH

	toY := func(v float64) float64 {
		return chartTop + (1.0-v/top)*plotH
	}
	toX := func(i int) float64 {
		return chartLeft + float64(i)*step
	}

	var buf bytes.Buffer
	openSVG(&buf)

	for i := 0; i <= 4; i++ {
		v := top * float64(i) / 4
		y := toY(v)
		fmt.Fprintf(&buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e5e7eb"/>`,
			chartLeft, y, chartWidth-chartRight, y)
		fmt.Fprintf(&buf, `<text x="%.1f" y="%.1f" text-anchor="end" font-size="11" fill="#6b7280">%s</text>`,
			chartLeft-6, y+4, html.EscapeString(display.Percent(v)))
	}

	buf.WriteString(`<path fill="#fecaca" stroke="#dc2626" stroke-width="2" d="`)
	fmt.Fprintf(&buf, "M%.1f,%.1f", toX(0), baseline)
	for i, p := range curve {
		fmt.Fprintf(&buf, " L%.1f,%.1f", toX(i), toY(p.Drawdown))
	}
	fmt.Fprintf(&buf, " L%.1f,%.1f Z", toX(len(curve)-1), baseline)
	buf.WriteString(`"/>`)

	for i, p := range curve {
		fmt.Fprintf(&buf, `<circle cx="%.1f" cy="%.1f" r="3" fill="#dc2626" fill-opacity="0"><title>%s — %s</title></circle>`,
			toX(i), toY(p.Drawdown),
			html.EscapeString(display.Date(p.Date)),
			html.EscapeString(display.Percent(p.Drawdown)))
	}

	axisDates(&buf, curve, toX)
	buf.WriteString(`</svg>`)
	return template.HTML(buf.String())
}

func openSVG(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<svg viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg" role="img">`,
		chartWidth, chartHeight)
}

// axisDates labels the first and last sample dates under the x axis.
func axisDates(buf *bytes.Buffer, curve []model.EquityPoint, toX func(int) float64) {
	y := chartHeight - chartBottom + 18
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="start" font-size="11" fill="#6b7280">%s</text>`,
		toX(0), y, html.EscapeString(display.Date(curve[0].Date)))
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" text-anchor="end" font-size="11" fill="#6b7280">%s</text>`,
		toX(len(curve)-1), y, html.EscapeString(display.Date(curve[len(curve)-1].Date)))
}
