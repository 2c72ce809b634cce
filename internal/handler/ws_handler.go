package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stayhub/hotel-booking-backend/internal/middleware"
	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/response"
	"github.com/stayhub/hotel-booking-backend/internal/service"
	ws "github.com/stayhub/hotel-booking-backend/internal/websocket"
)

// EventSource delivers role-permission events until ctx is cancelled. The
// returned channel is closed when the subscription ends.
type EventSource interface {
	Events(ctx context.Context) (<-chan model.RolePermissionEvent, error)
}

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams role-permission changes to matrix editors.
type WSHandler struct {
	events   EventSource
	service  *service.RolePermissionService
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(events EventSource, svc *service.RolePermissionService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		events:   events,
		service:  svc,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// RolePermissionStream godoc
// WS /ws/v1/role-permissions/stream
// Sends the matrix on connect, then one message per change.
func (h *WSHandler) RolePermissionStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, err := h.events.Events(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("subscribe to role-permission events failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Int("user_id", claims.UserID).Str("role", claims.Role).Logger()
	wsLog.Info().Msg("matrix editor connected")

	if err := h.sendSnapshot(ctx, conn); err != nil {
		wsLog.Warn().Err(err).Msg("initial snapshot failed")
		return
	}

	// Only this goroutine reads; writes happen on the handler goroutine.
	requests := make(chan ws.Action)
	go func() {
		defer cancel()
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			select {
			case requests <- msg.Action:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			wsLog.Debug().Msg("matrix editor disconnected")
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if err := ws.WriteTyped(conn, ws.ChangedResponse{Event: ws.EventChanged, Change: event}); err != nil {
				return
			}

		case action := <-requests:
			var err error
			switch action {
			case ws.ActionPing:
				err = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			case ws.ActionSnapshot:
				err = h.sendSnapshot(ctx, conn)
			default:
				err = ws.WriteError(conn, "unknown action: "+string(action))
			}
			if err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) sendSnapshot(ctx context.Context, conn *websocket.Conn) error {
	matrix, err := h.service.GetRolePermissionMatrix(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("load matrix failed")
		return ws.WriteError(conn, "failed to load matrix")
	}
	return ws.WriteTyped(conn, ws.SnapshotResponse{Event: ws.EventSnapshot, Matrix: *matrix})
}
