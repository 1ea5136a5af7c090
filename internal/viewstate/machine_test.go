package viewstate

import (
	"testing"

	"go.uber.org/zap"

	"github.com/theindianczar/stockmcp/internal/client"
	"github.com/theindianczar/stockmcp/internal/model"
)

func params(symbol string) client.RunParams {
	return client.RunParams{Symbol: symbol, Start: "2024-01-01", End: "2025-12-01", InitialCash: 100000}
}

func completeResult(symbol string) *model.BacktestResult {
	return &model.BacktestResult{Symbol: symbol, Metrics: &model.Metrics{Sharpe: 1}}
}

func TestLifecycleTransitions(t *testing.T) {
	m := NewMachine(zap.NewNop())

	if snap := m.Snapshot(); snap.Phase != PhaseIdle {
		t.Fatalf("fresh machine phase = %s, want idle", snap.Phase)
	}

	seq := m.Begin(params("WIPRO.NS"))
	if snap := m.Snapshot(); snap.Phase != PhaseRunning || snap.Seq != seq {
		t.Fatalf("after Begin: phase=%s seq=%d", snap.Phase, snap.Seq)
	}

	m.Resolve(seq, completeResult("WIPRO.NS"))
	snap := m.Snapshot()
	if snap.Phase != PhaseSucceeded {
		t.Fatalf("complete payload must land in succeeded, got %s", snap.Phase)
	}
	if snap.Result == nil || snap.Result.Symbol != "WIPRO.NS" {
		t.Fatalf("result not stored: %+v", snap.Result)
	}

	// Re-entrant: a new action leaves the terminal state.
	seq2 := m.Begin(params("TCS.NS"))
	if snap := m.Snapshot(); snap.Phase != PhaseRunning || seq2 != seq+1 {
		t.Fatalf("machine not re-entrant: phase=%s seq=%d", snap.Phase, seq2)
	}

	m.Fail(seq2, "backtest engine returned status 502")
	snap = m.Snapshot()
	if snap.Phase != PhaseFailed || snap.Err == "" {
		t.Fatalf("after Fail: phase=%s err=%q", snap.Phase, snap.Err)
	}
	if snap.Result != nil {
		t.Fatal("failed state must not carry a result")
	}
}

func TestIncompletePayloadIsPartialPhase(t *testing.T) {
	m := NewMachine(zap.NewNop())
	seq := m.Begin(params("WIPRO.NS"))
	m.Resolve(seq, &model.BacktestResult{Symbol: "WIPRO.NS"}) // no metrics

	snap := m.Snapshot()
	if snap.Phase != PhasePartial {
		t.Fatalf("metrics-less payload must land in partial, got %s", snap.Phase)
	}
	if snap.Result == nil {
		t.Fatal("partial state must still carry the result")
	}
}

func TestStaleResolutionIsDiscarded(t *testing.T) {
	m := NewMachine(zap.NewNop())

	seqA := m.Begin(params("AAA"))
	seqB := m.Begin(params("BBB"))

	// B resolves first, then the stale A arrives. A must be discarded.
	m.Resolve(seqB, completeResult("BBB"))
	m.Resolve(seqA, completeResult("AAA"))

	snap := m.Snapshot()
	if snap.Result.Symbol != "BBB" {
		t.Fatalf("stale result overwrote the latest run: got %s", snap.Result.Symbol)
	}

	// Same with the orders swapped: A arrives first (discarded), then B.
	m = NewMachine(zap.NewNop())
	seqA = m.Begin(params("AAA"))
	seqB = m.Begin(params("BBB"))
	m.Resolve(seqA, completeResult("AAA"))
	if snap := m.Snapshot(); snap.Phase != PhaseRunning {
		t.Fatalf("stale resolution must leave machine running, got %s", snap.Phase)
	}
	m.Resolve(seqB, completeResult("BBB"))
	if snap := m.Snapshot(); snap.Result.Symbol != "BBB" {
		t.Fatalf("latest run lost: got %s", snap.Result.Symbol)
	}
}

func TestStaleFailureIsDiscarded(t *testing.T) {
	m := NewMachine(zap.NewNop())

	seqA := m.Begin(params("AAA"))
	seqB := m.Begin(params("BBB"))

	m.Resolve(seqB, completeResult("BBB"))
	m.Fail(seqA, "too slow")

	snap := m.Snapshot()
	if snap.Phase != PhaseSucceeded || snap.Err != "" {
		t.Fatalf("stale failure applied: phase=%s err=%q", snap.Phase, snap.Err)
	}
}

func TestVersionBumpsOnAppliedTransitionsOnly(t *testing.T) {
	m := NewMachine(zap.NewNop())

	v0 := m.Snapshot().Version
	seqA := m.Begin(params("AAA"))
	seqB := m.Begin(params("BBB"))
	v1 := m.Snapshot().Version
	if v1 != v0+2 {
		t.Fatalf("two Begins must bump twice: %d -> %d", v0, v1)
	}

	m.Resolve(seqA, completeResult("AAA")) // stale, discarded
	if got := m.Snapshot().Version; got != v1 {
		t.Fatalf("discarded transition bumped version: %d -> %d", v1, got)
	}

	m.Resolve(seqB, completeResult("BBB"))
	if got := m.Snapshot().Version; got != v1+1 {
		t.Fatalf("applied transition must bump version: %d -> %d", v1, got)
	}
}
