package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/theindianczar/stockmcp/internal/model"
)

// EngineClient handles communication with the backtest engine.
type EngineClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewEngineClient creates a new backtest engine client. The timeout bounds a
// single run request; backtests can take a while, so callers should be
// generous.
func NewEngineClient(baseURL string, timeout time.Duration, logger *zap.Logger) *EngineClient {
	return &EngineClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Run executes a single backtest against the engine. One invocation issues
// exactly one request: no retries. Failures come back as *EngineError with
// the cause kind set.
func (c *EngineClient) Run(ctx context.Context, params RunParams) (*model.BacktestResult, error) {
	params.Normalize()

	query := url.Values{}
	query.Set("symbol", params.Symbol)
	query.Set("start", params.Start)
	query.Set("end", params.End)
	query.Set("initial_cash", strconv.FormatFloat(params.InitialCash, 'f', -1, 64))

	reqURL := fmt.Sprintf("%s/backtest/run?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &EngineError{Kind: KindNetwork, Msg: "failed to create request", Err: err}
	}

	c.logger.Info("Sending backtest request",
		zap.String("symbol", params.Symbol),
		zap.String("start", params.Start),
		zap.String("end", params.End),
		zap.Float64("initial_cash", params.InitialCash))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to reach backtest engine", zap.Error(err))
		return nil, &EngineError{Kind: KindNetwork, Msg: "failed to reach backtest engine", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Backtest engine returned error status", zap.Int("status", resp.StatusCode))
		return nil, &EngineError{
			Kind:   KindStatus,
			Status: resp.StatusCode,
			Msg:    fmt.Sprintf("backtest engine returned status %d", resp.StatusCode),
		}
	}

	var result model.BacktestResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("Failed to decode backtest response", zap.Error(err))
		return nil, &EngineError{Kind: KindDecode, Msg: "failed to decode backtest response", Err: err}
	}
	if err := result.Validate(); err != nil {
		c.logger.Error("Backtest response failed validation", zap.Error(err))
		return nil, &EngineError{Kind: KindDecode, Msg: "backtest response failed validation", Err: err}
	}

	return &result, nil
}

// CheckHealth checks whether the backtest engine is reachable and healthy.
func (c *EngineClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("engine health returned status %d", resp.StatusCode)
	}
	return nil
}

// WaitForEngine polls the engine health endpoint with exponential backoff
// until it responds or the context is cancelled. Used at startup so the
// dashboard does not come up pointing at a dead engine without a trace in the
// logs. The run path itself never retries.
func (c *EngineClient) WaitForEngine(ctx context.Context) error {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.RetryNotify(
		func() error { return c.CheckHealth(ctx) },
		policy,
		func(err error, next time.Duration) {
			c.logger.Warn("Backtest engine not ready",
				zap.Error(err),
				zap.Duration("retry_in", next))
		},
	)
}
