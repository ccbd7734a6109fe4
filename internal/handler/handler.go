package handler

import (
	"yqt-signal-desk/internal/domain"
	"yqt-signal-desk/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer   trace.Tracer
	desk     *service.DeskService
	renderer ChartRenderer
}

// ChartRenderer draws a PNG from a price window.
type ChartRenderer interface {
	RenderHistoryChart(points []domain.PricePoint, signal *domain.MarketSignal) ([]byte, error)
}

func New(tracer trace.Tracer, desk *service.DeskService, renderer ChartRenderer) *Handler {
	return &Handler{
		tracer:   tracer,
		desk:     desk,
		renderer: renderer,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/markets", h.GetMarkets)
	r.GET("/api/markets/stream", h.StreamMarkets)
	r.GET("/api/markets/:market/history", h.GetHistory)
	r.GET("/api/markets/:market/chart.png", h.GetChart)
	r.PUT("/api/markets/forex/symbol", h.SetForexSymbol)
	r.POST("/api/signals/request", h.RequestSignal)
	r.GET("/api/signals/status", h.GetStatus)
	r.GET("/api/signals/current", h.GetCurrentSignal)
	r.GET("/api/signals", h.GetSignalLog)
	r.GET("/api/signals/export", h.ExportSignalLog)
}
