package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const streamInterval = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// StreamMarkets godoc
// @Summary      Stream market snapshots
// @Description  Pushes the current snapshot of both markets over a websocket once per second
// @Tags         markets
// @Success      101
// @Router       /api/markets/stream [get]
func (h *Handler) StreamMarkets(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	// Reader goroutine: surfaces client disconnects and services
	// control frames.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for {
		if err := conn.WriteJSON(gin.H{"markets": h.desk.GetMarkets(ctx)}); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
