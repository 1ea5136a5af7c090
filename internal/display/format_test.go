package display

import (
	"testing"

	"github.com/theindianczar/stockmcp/internal/model"
)

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }

func TestCurrencyIndianGrouping(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{100000, "₹1,00,000"},
		{10000000, "₹1,00,00,000"},
		{1234, "₹1,234"},
		{0, "₹0"},
		{-200, "₹-200"},
		{500.4, "₹500"}, // whole units only
	}
	for _, tc := range cases {
		if got := Currency(tc.in); got != tc.want {
			t.Errorf("Currency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.1234, "12.34%"},
		{0, "0.00%"},
		{-0.05, "-5.00%"},
		{1, "100.00%"},
	}
	for _, tc := range cases {
		if got := Percent(tc.in); got != tc.want {
			t.Errorf("Percent(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDate(t *testing.T) {
	if got := Date("2024-01-01"); got != "Jan 1, 2024" {
		t.Errorf("Date = %q", got)
	}
	// Unparseable input passes through untouched.
	if got := Date("n/a"); got != "n/a" {
		t.Errorf("Date fallback = %q", got)
	}
}

func TestTradeStatus(t *testing.T) {
	open := model.Trade{Symbol: "X"}
	if TradeStatus(&open) != StatusOpen {
		t.Fatal("trade without exit fields must be OPEN")
	}

	half := model.Trade{ExitDate: sptr("2024-01-05")}
	if TradeStatus(&half) != StatusOpen {
		t.Fatal("trade missing exit price must be OPEN")
	}

	closed := model.Trade{ExitDate: sptr("2024-01-05"), ExitPrice: fptr(460)}
	if TradeStatus(&closed) != StatusClosed {
		t.Fatal("trade with both exit fields must be CLOSED")
	}
}

func TestPnLClassification(t *testing.T) {
	loss := model.Trade{PnL: fptr(-200)}
	if label, class := PnL(&loss); class != ClassLoss || label != "₹-200" {
		t.Fatalf("loss trade: label=%q class=%q", label, class)
	}

	gain := model.Trade{PnL: fptr(500)}
	if _, class := PnL(&gain); class != ClassGain {
		t.Fatal("positive pnl must not get loss styling")
	}

	zero := model.Trade{PnL: fptr(0)}
	if _, class := PnL(&zero); class != ClassGain {
		t.Fatal("zero pnl must not get loss styling")
	}

	// Absent pnl is a policy-neutral placeholder, never a loss.
	unknown := model.Trade{ExitDate: sptr("2024-01-05"), ExitPrice: fptr(460)}
	label, class := PnL(&unknown)
	if label != PnLPlaceholder || class != ClassLoss && class != ClassGain {
		t.Fatalf("absent pnl: label=%q class=%q", label, class)
	}
	if class == ClassLoss {
		t.Fatal("absent pnl must not be styled as loss")
	}
}
