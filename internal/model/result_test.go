package model

import "testing"

func fptr(v float64) *float64 { return &v }
func sptr(s string) *string   { return &s }

func TestIsCompleteClassification(t *testing.T) {
	r := &BacktestResult{Symbol: "WIPRO.NS"}
	if r.IsComplete() {
		t.Fatal("result without metrics must be incomplete")
	}
	r.Metrics = &Metrics{Sharpe: 1.2}
	if !r.IsComplete() {
		t.Fatal("result with metrics must be complete")
	}
}

func TestTradeIsOpen(t *testing.T) {
	cases := []struct {
		name  string
		trade Trade
		open  bool
	}{
		{"no exit fields", Trade{Symbol: "X"}, true},
		{"only exit date", Trade{ExitDate: sptr("2024-02-01")}, true},
		{"only exit price", Trade{ExitPrice: fptr(101)}, true},
		{"both exit fields", Trade{ExitDate: sptr("2024-02-01"), ExitPrice: fptr(101)}, false},
	}
	for _, tc := range cases {
		if got := tc.trade.IsOpen(); got != tc.open {
			t.Errorf("%s: IsOpen() = %v, want %v", tc.name, got, tc.open)
		}
	}
}

func TestValidateAcceptsWellFormedResult(t *testing.T) {
	r := &BacktestResult{
		EquityCurve: []EquityPoint{
			{Date: "2024-01-01", Equity: 100000, Drawdown: 0},
			{Date: "2024-01-02", Equity: 99000, Drawdown: 0.01},
			{Date: "2024-01-02", Equity: 99500, Drawdown: 0.005},
		},
		Trades: []Trade{
			{Symbol: "WIPRO.NS", EntryDate: "2024-01-01", EntryPrice: 450},
			{Symbol: "WIPRO.NS", EntryDate: "2024-01-01", EntryPrice: 450,
				ExitDate: sptr("2024-01-05"), ExitPrice: fptr(460)},
		},
		Decision: &Decision{Category: CategoryCaution, Score: 55, Reasons: []string{"mixed"}},
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		r    BacktestResult
	}{
		{"negative drawdown", BacktestResult{
			EquityCurve: []EquityPoint{{Date: "2024-01-01", Drawdown: -0.1}},
		}},
		{"dates out of order", BacktestResult{
			EquityCurve: []EquityPoint{
				{Date: "2024-01-05"},
				{Date: "2024-01-01"},
			},
		}},
		{"unpaired exit fields", BacktestResult{
			Trades: []Trade{{ExitDate: sptr("2024-01-05")}},
		}},
		{"unknown category", BacktestResult{
			Decision: &Decision{Category: "MAYBE", Score: 50},
		}},
		{"score above range", BacktestResult{
			Decision: &Decision{Category: CategoryInvest, Score: 101},
		}},
		{"score below range", BacktestResult{
			Decision: &Decision{Category: CategoryReject, Score: -1},
		}},
	}
	for _, tc := range cases {
		if err := tc.r.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
