package model

import (
	"fmt"
)

// DecisionCategory is the closed set of investability verdicts.
type DecisionCategory string

const (
	CategoryInvest  DecisionCategory = "INVEST"
	CategoryCaution DecisionCategory = "CAUTION"
	CategoryReject  DecisionCategory = "REJECT"
)

// Valid reports whether the category is one of the known verdicts.
func (c DecisionCategory) Valid() bool {
	switch c {
	case CategoryInvest, CategoryCaution, CategoryReject:
		return true
	}
	return false
}

// Trade represents a single position lifecycle entry produced by the engine.
// Exit fields and pnl are absent while the position is still open. Dates are
// ISO YYYY-MM-DD strings as emitted on the wire.
type Trade struct {
	Symbol     string   `json:"symbol"`
	Quantity   float64  `json:"quantity"`
	EntryDate  string   `json:"entry_date"`
	EntryPrice float64  `json:"entry_price"`
	ExitDate   *string  `json:"exit_date,omitempty"`
	ExitPrice  *float64 `json:"exit_price,omitempty"`
	PnL        *float64 `json:"pnl,omitempty"`
}

// IsOpen reports whether the trade has not been closed yet. A trade missing
// either exit field counts as open.
func (t *Trade) IsOpen() bool {
	return t.ExitDate == nil || t.ExitPrice == nil
}

// EquityPoint is one time-indexed sample of portfolio state. Drawdown is the
// fractional decline from the running peak, in [0,1].
type EquityPoint struct {
	Date     string  `json:"date"`
	Equity   float64 `json:"equity"`
	Drawdown float64 `json:"drawdown"`
}

// Metrics is the summary statistics bundle computed by the engine. The
// dashboard never recomputes any of these, it only formats them.
type Metrics struct {
	CAGR                 float64  `json:"cagr"`
	Volatility           float64  `json:"volatility"`
	Sharpe               float64  `json:"sharpe"`
	Sortino              float64  `json:"sortino"`
	ProfitFactor         float64  `json:"profit_factor"`
	TimeInMarket         float64  `json:"time_in_market"`
	AvgTradeDurationDays float64  `json:"avg_trade_duration_days"`
	MaxConsecutiveLosses int      `json:"max_consecutive_losses"`
	MaxDrawdown          float64  `json:"max_drawdown"`
	TotalPnL             *float64 `json:"total_pnl,omitempty"`
}

// DecisionCheck is one per-rule pass/fail detail row.
type DecisionCheck struct {
	Name      string  `json:"name"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Passed    bool    `json:"passed"`
}

// DecisionContribution is one additive component of the score breakdown.
// Contributions are expected to sum to the decision score; the dashboard
// displays both side by side but does not enforce the equality.
type DecisionContribution struct {
	Metric       string  `json:"metric"`
	Value        float64 `json:"value"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Decision is the investability verdict produced with a backtest result.
// Reasons are rendered in order, never reordered or deduplicated.
type Decision struct {
	Category      DecisionCategory       `json:"category"`
	Score         float64                `json:"score"`
	Reasons       []string               `json:"reasons"`
	Checks        []DecisionCheck        `json:"checks,omitempty"`
	Contributions []DecisionContribution `json:"contributions,omitempty"`
}

// BacktestResult is the root aggregate returned by one backtest invocation.
// It is immutable once received; a new run produces a new result.
type BacktestResult struct {
	Symbol      string        `json:"symbol"`
	InitialCash float64       `json:"initial_cash"`
	TotalTrades int           `json:"total_trades"`
	TotalPnL    float64       `json:"total_pnl"`
	WinRate     float64       `json:"win_rate"`
	MaxDrawdown float64       `json:"max_drawdown"`
	EquityCurve []EquityPoint `json:"equity_curve"`
	Trades      []Trade       `json:"trades"`
	Metrics     *Metrics      `json:"metrics,omitempty"`
	Decision    *Decision     `json:"decision,omitempty"`
}

// IsComplete reports whether the payload carries the full metrics bundle.
// Results without metrics are rendered as a partial success, not an error.
func (r *BacktestResult) IsComplete() bool {
	return r.Metrics != nil
}

// Validate performs the structural checks the engine contract promises:
// equity curve ordered by non-decreasing date with non-negative drawdowns,
// exit fields paired on every trade, and a well-formed decision when present.
// It returns the first violation found.
func (r *BacktestResult) Validate() error {
	for i, p := range r.EquityCurve {
		if p.Drawdown < 0 {
			return fmt.Errorf("equity_curve[%d]: negative drawdown %v", i, p.Drawdown)
		}
		if i > 0 && p.Date < r.EquityCurve[i-1].Date {
			return fmt.Errorf("equity_curve[%d]: date %q before %q", i, p.Date, r.EquityCurve[i-1].Date)
		}
	}
	for i, t := range r.Trades {
		if (t.ExitDate == nil) != (t.ExitPrice == nil) {
			return fmt.Errorf("trades[%d]: exit_date and exit_price must be present together", i)
		}
	}
	if d := r.Decision; d != nil {
		if !d.Category.Valid() {
			return fmt.Errorf("decision: unknown category %q", d.Category)
		}
		if d.Score < 0 || d.Score > 100 {
			return fmt.Errorf("decision: score %v out of range [0,100]", d.Score)
		}
	}
	return nil
}
