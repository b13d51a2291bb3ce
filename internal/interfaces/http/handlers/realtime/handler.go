package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

// StatusStream is the hub side of the live status feed.
type StatusStream interface {
	Serve(conn *websocket.Conn, userID uint) error
}

type Handler struct {
	stream   StatusStream
	upgrader websocket.Upgrader
	logger   logger.Interface
}

// NewHandler accepts upgrades from the listed origins only. Requests without
// an Origin header (non-browser clients) are always accepted.
func NewHandler(stream StatusStream, allowedOrigins []string, log logger.Interface) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &Handler{
		stream: stream,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		logger: log,
	}
}

// StatusFeed godoc
// @Summary Live asset status feed
// @Description WebSocket stream of asset_status_changed messages. The JWT may be passed as a bearer header or a token query parameter.
// @Tags realtime
// @Security Bearer
// @Param token query string false "Access token"
// @Success 101
// @Failure 401 {object} utils.APIResponse
// @Router /ws/asset-status [get]
func (h *Handler) StatusFeed(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("failed to upgrade status feed",
			"error", err,
			"user_id", userID,
			"ip", c.ClientIP(),
		)
		return
	}

	h.logger.Debugw("status feed connected", "user_id", userID, "ip", c.ClientIP())
	if err := h.stream.Serve(conn, userID); err != nil {
		h.logger.Warnw("status feed rejected", "user_id", userID, "error", err)
	}
}
