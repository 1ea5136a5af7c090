package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theindianczar/stockmcp/internal/client"
	"github.com/theindianczar/stockmcp/internal/render"
	"github.com/theindianczar/stockmcp/internal/viewstate"
)

// DashboardHandler binds HTTP requests to the view state machine.
type DashboardHandler struct {
	engine  *client.EngineClient
	machine *viewstate.Machine
	logger  *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(engine *client.EngineClient, machine *viewstate.Machine, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		engine:  engine,
		machine: machine,
		logger:  logger,
	}
}

// Index renders the dashboard page from the current state snapshot.
func (h *DashboardHandler) Index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := render.Page(c.Writer, h.machine.Snapshot()); err != nil {
		h.logger.Error("Failed to render dashboard", zap.Error(err))
	}
}

// RunForm handles the dashboard's parameter form and redirects back to the
// page, which then shows the running state.
func (h *DashboardHandler) RunForm(c *gin.Context) {
	var params client.RunParams
	if err := c.ShouldBind(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.trigger(params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// RunAPI handles a JSON run request and responds with the issued sequence
// number without waiting for the engine.
func (h *DashboardHandler) RunAPI(c *gin.Context) {
	var params client.RunParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seq, err := h.trigger(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"seq":     seq,
		"message": "Backtest started",
	})
}

// State returns the current state snapshot as JSON.
func (h *DashboardHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.machine.Snapshot())
}

// trigger validates the parameters, transitions the machine to running and
// launches the engine call. The resolution goroutine presents its sequence
// number to the machine, which discards it if a newer run has been issued in
// the meantime.
func (h *DashboardHandler) trigger(params client.RunParams) (uint64, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return 0, err
	}

	seq := h.machine.Begin(params)
	go func() {
		result, err := h.engine.Run(context.Background(), params)
		if err != nil {
			var engineErr *client.EngineError
			if errors.As(err, &engineErr) {
				h.logger.Warn("Backtest run failed",
					zap.Uint64("seq", seq),
					zap.String("kind", string(engineErr.Kind)),
					zap.Int("status", engineErr.Status),
					zap.Error(err))
			}
			h.machine.Fail(seq, err.Error())
			return
		}
		h.machine.Resolve(seq, result)
	}()
	return seq, nil
}
