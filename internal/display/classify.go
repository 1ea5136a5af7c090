package display

import "github.com/theindianczar/stockmcp/internal/model"

// Status is the display classification of a trade's lifecycle.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Class is the styling class applied to a pnl value.
type Class string

const (
	// ClassGain styles zero, positive and absent pnl. An absent pnl is a
	// deliberate policy choice, not a fallthrough: unknown is never shown as
	// a loss.
	ClassGain Class = "gain"
	ClassLoss Class = "loss"
)

// PnLPlaceholder is shown when a trade has no pnl to display.
const PnLPlaceholder = "—"

// TradeStatus classifies a trade as open or closed. Open means either exit
// field is absent.
func TradeStatus(t *model.Trade) Status {
	if t.IsOpen() {
		return StatusOpen
	}
	return StatusClosed
}

// PnL returns the display label and styling class for a trade's pnl. A closed
// trade may still lack pnl; it gets the placeholder and neutral styling.
func PnL(t *model.Trade) (string, Class) {
	if t.PnL == nil {
		return PnLPlaceholder, ClassGain
	}
	if *t.PnL < 0 {
		return Currency(*t.PnL), ClassLoss
	}
	return Currency(*t.PnL), ClassGain
}
