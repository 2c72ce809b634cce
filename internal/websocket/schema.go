package websocket

import "github.com/stayhub/hotel-booking-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing     Action = "ping"
	ActionSnapshot Action = "snapshot"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError    Event = "error"
	EventPong     Event = "pong"
	EventSnapshot Event = "snapshot"
	EventChanged  Event = "role_permissions_changed"
)

// SnapshotResponse carries the full role-permission matrix. It is sent on
// connect and whenever the client asks for it.
type SnapshotResponse struct {
	Event  Event                      `json:"event"`
	Matrix model.RolePermissionMatrix `json:"matrix"`
}

// ChangedResponse relays one role-permission event.
type ChangedResponse struct {
	Event  Event                     `json:"event"`
	Change model.RolePermissionEvent `json:"change"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
