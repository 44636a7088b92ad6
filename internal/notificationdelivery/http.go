// Package notificationdelivery streams push notifications to holders over
// server-sent events.
package notificationdelivery

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/VictorMordachini/conta-bancaria/internal/notification"
	"github.com/VictorMordachini/conta-bancaria/pkg/web"
)

// Handler facilitates notification delivery layer logic.
type Handler struct {
	hub *notification.Hub
}

// NewHandler returns notification handler.
func NewHandler(hub *notification.Hub) Handler {
	return Handler{hub: hub}
}

type streamRequest struct {
	HolderID string `uri:"holderID" binding:"required"`
}

// Stream handles http request to open the holder's push stream. Opening a
// second stream for the same holder closes the first.
func (h *Handler) Stream(gctx *gin.Context) {
	l := zerolog.Ctx(gctx)

	var req streamRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	stream := h.hub.Subscribe(req.HolderID)
	defer h.hub.Unsubscribe(req.HolderID, stream)

	l.Info().Str("holder_id", req.HolderID).Msg("notification stream opened")

	gctx.Stream(func(w io.Writer) bool {
		select {
		case n, ok := <-stream:
			if !ok {
				return false
			}

			gctx.SSEvent(string(n.Kind), n)

			return true
		case <-gctx.Request.Context().Done():
			return false
		}
	})

	l.Info().Str("holder_id", req.HolderID).Msg("notification stream closed")
}
