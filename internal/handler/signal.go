package handler

import (
	"net/http"
	"strconv"
	"strings"

	"yqt-signal-desk/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// RequestSignal godoc
// @Summary      Request a trading signal
// @Description  Starts an oracle request for the selected market and timeframe
// @Tags         signals
// @Accept       json
// @Produce      json
// @Param        body  body  object{market=string,timeframe=string}  true  "Selection"
// @Success      202  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/signals/request [post]
func (h *Handler) RequestSignal(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.request-signal")
	defer span.End()

	var body struct {
		Market    string `json:"market"`
		Timeframe string `json:"timeframe"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "market and timeframe are required"})
		return
	}

	market := domain.MarketType(strings.ToUpper(strings.TrimSpace(body.Market)))
	timeframe := strings.ToLower(strings.TrimSpace(body.Timeframe))
	span.SetAttributes(
		attribute.String("market", string(market)),
		attribute.String("timeframe", timeframe),
	)

	accepted, err := h.desk.RequestSignal(ctx, market, timeframe)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !accepted {
		state, remaining := h.desk.Status(ctx)
		c.JSON(http.StatusConflict, gin.H{
			"error":              "signal request unavailable",
			"state":              state,
			"cooldown_remaining": remaining,
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "requested"})
}

// GetStatus godoc
// @Summary      Get signal request status
// @Description  Returns the request state and remaining cooldown seconds
// @Tags         signals
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/signals/status [get]
func (h *Handler) GetStatus(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-status")
	defer span.End()

	state, remaining := h.desk.Status(ctx)
	c.JSON(http.StatusOK, gin.H{"state": state, "cooldown_remaining": remaining})
}

// GetCurrentSignal godoc
// @Summary      Get the current signal
// @Description  Returns the most recent successful signal
// @Tags         signals
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/signals/current [get]
func (h *Handler) GetCurrentSignal(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-current-signal")
	defer span.End()

	sig, ok := h.desk.CurrentSignal(ctx)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no signal generated yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"signal": sig})
}

// GetSignalLog godoc
// @Summary      Get the signal log
// @Description  Returns logged signals, most recent first
// @Tags         signals
// @Produce      json
// @Param        limit  query  int  false  "Number of entries (default all)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/signals [get]
func (h *Handler) GetSignalLog(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-signal-log")
	defer span.End()

	limit := 0
	if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, gin.H{"signals": h.desk.ListLog(ctx, limit)})
}

// ExportSignalLog godoc
// @Summary      Export the signal log
// @Description  Returns the signal history as a downloadable text file
// @Tags         signals
// @Produce      plain
// @Success      200  {file}  binary
// @Router       /api/signals/export [get]
func (h *Handler) ExportSignalLog(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.export-signal-log")
	defer span.End()

	filename, content := h.desk.ExportLog(ctx)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
