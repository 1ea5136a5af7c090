package viewstate

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/theindianczar/stockmcp/internal/client"
	"github.com/theindianczar/stockmcp/internal/model"
)

// Phase is the observable lifecycle state of the dashboard.
type Phase string

const (
	// PhaseIdle means no backtest has been requested yet.
	PhaseIdle Phase = "idle"
	// PhaseRunning means a request is in flight.
	PhaseRunning Phase = "running"
	// PhaseSucceeded means the latest request resolved with a full payload.
	PhaseSucceeded Phase = "succeeded"
	// PhasePartial means the latest request resolved but the payload carries
	// no metrics. Rendered as a passive notice, not an error.
	PhasePartial Phase = "partial"
	// PhaseFailed means the latest request failed; only the message survives.
	PhaseFailed Phase = "failed"
)

// Snapshot is an immutable copy of the machine state handed to renderers.
type Snapshot struct {
	Phase     Phase                 `json:"phase"`
	Seq       uint64                `json:"seq"`
	Version   uint64                `json:"version"`
	Params    client.RunParams      `json:"params"`
	Result    *model.BacktestResult `json:"result,omitempty"`
	Err       string                `json:"error,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Machine owns the single backtest result slot. Every user-triggered run gets
// a monotonically increasing sequence number; a resolution is applied only if
// it carries the latest sequence, so a slow stale request can never overwrite
// the result of a newer one.
type Machine struct {
	mu        sync.Mutex
	phase     Phase
	seq       uint64
	version   uint64
	params    client.RunParams
	result    *model.BacktestResult
	errMsg    string
	updatedAt time.Time
	logger    *zap.Logger
}

// NewMachine creates a machine in the idle phase.
func NewMachine(logger *zap.Logger) *Machine {
	return &Machine{phase: PhaseIdle, logger: logger}
}

// Begin transitions to running on an explicit user action and returns the
// sequence number the eventual resolution must present.
func (m *Machine) Begin(params client.RunParams) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.phase = PhaseRunning
	m.params = params
	m.errMsg = ""
	m.bump()

	m.logger.Info("Backtest run started",
		zap.Uint64("seq", m.seq),
		zap.String("symbol", params.Symbol))
	return m.seq
}

// Resolve applies a successful result for the given sequence. The result is
// classified as succeeded or partial depending on payload completeness. Stale
// sequences are discarded.
func (m *Machine) Resolve(seq uint64, result *model.BacktestResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq {
		m.logger.Info("Discarding stale backtest result",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", m.seq))
		return
	}

	m.result = result
	m.errMsg = ""
	if result.IsComplete() {
		m.phase = PhaseSucceeded
	} else {
		m.phase = PhasePartial
	}
	m.bump()

	m.logger.Info("Backtest run resolved",
		zap.Uint64("seq", seq),
		zap.String("phase", string(m.phase)),
		zap.Int("trades", len(result.Trades)))
}

// Fail applies a failure for the given sequence. Only the message is kept.
// Stale sequences are discarded.
func (m *Machine) Fail(seq uint64, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.seq {
		m.logger.Info("Discarding stale backtest failure",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", m.seq))
		return
	}

	m.phase = PhaseFailed
	m.errMsg = msg
	m.result = nil
	m.bump()

	m.logger.Warn("Backtest run failed",
		zap.Uint64("seq", seq),
		zap.String("error", msg))
}

// Snapshot returns a copy of the current state for rendering. The contained
// result is shared but treated as immutable by every consumer.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Phase:     m.phase,
		Seq:       m.seq,
		Version:   m.version,
		Params:    m.params,
		Result:    m.result,
		Err:       m.errMsg,
		UpdatedAt: m.updatedAt,
	}
}

// bump records an applied transition. Callers hold the lock.
func (m *Machine) bump() {
	m.version++
	m.updatedAt = time.Now()
}
