package handler

import (
	"net/http"
	"strconv"
	"strings"

	"yqt-signal-desk/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// Health godoc
// @Summary      Service health
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetMarkets godoc
// @Summary      List simulated markets
// @Description  Returns the current price snapshot for both markets
// @Tags         markets
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/markets [get]
func (h *Handler) GetMarkets(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-markets")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"markets": h.desk.GetMarkets(ctx)})
}

// GetHistory godoc
// @Summary      Get market price history
// @Description  Returns the rolling price window for a market, oldest first
// @Tags         markets
// @Produce      json
// @Param        market  path   string  true   "Market type (CRYPTO or FOREX)"
// @Param        limit   query  int     false  "Number of points (default full window)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/markets/{market}/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-history")
	defer span.End()

	market := domain.MarketType(strings.ToUpper(strings.TrimSpace(c.Param("market"))))
	span.SetAttributes(attribute.String("market", string(market)))

	limit := 0
	if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 || n > domain.HistoryWindowCapacity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 21"})
			return
		}
		limit = n
	}

	points, err := h.desk.GetHistory(ctx, market, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"market": market, "history": points})
}

// GetChart godoc
// @Summary      Get market chart image
// @Description  Renders the current price window as a PNG line chart
// @Tags         markets
// @Produce      png
// @Param        market  path  string  true  "Market type (CRYPTO or FOREX)"
// @Success      200  {file}  binary
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/markets/{market}/chart.png [get]
func (h *Handler) GetChart(c *gin.Context) {
	if h.renderer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chart renderer unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-chart")
	defer span.End()

	market := domain.MarketType(strings.ToUpper(strings.TrimSpace(c.Param("market"))))
	points, err := h.desk.GetHistory(ctx, market, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only mark the chart when the current signal is for this market's
	// asset.
	var marker *domain.MarketSignal
	if sig, ok := h.desk.CurrentSignal(ctx); ok {
		for _, snap := range h.desk.GetMarkets(ctx) {
			if snap.Market == market && snap.Asset == sig.Asset {
				marker = &sig
				break
			}
		}
	}

	data, err := h.renderer.RenderHistoryChart(points, marker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

// SetForexSymbol godoc
// @Summary      Change the forex symbol
// @Description  Relabels the forex feed; price history is unaffected
// @Tags         markets
// @Accept       json
// @Produce      json
// @Param        body  body  object{symbol=string}  true  "New symbol"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /api/markets/forex/symbol [put]
func (h *Handler) SetForexSymbol(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.set-forex-symbol")
	defer span.End()

	var body struct {
		Symbol string `json:"symbol"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Symbol) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	symbol := h.desk.SetForexSymbol(ctx, body.Symbol)
	c.JSON(http.StatusOK, gin.H{"symbol": symbol})
}
