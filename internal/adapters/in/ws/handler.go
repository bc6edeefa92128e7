// Package ws is the websocket transport over the realtime hub. Clients
// authenticate with the same JWT as the REST surface (passed as a query
// parameter, browsers cannot set headers on websocket upgrades), then send
// join frames to pick the channels they want and receive event frames as JSON.
package ws

import (
	"log/slog"
	nethttp "net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/net/websocket"

	"foodgo/internal/adapters/in/http"
	"foodgo/internal/core/application/events"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/realtime"
)

// Join actions a client may send.
const (
	ActionJoinOrder   = "joinOrder"
	ActionJoinPartner = "joinPartner"
)

// joinFrame is the client-to-server message: which channel to attach.
type joinFrame struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

// Handler upgrades connections and bridges them to hub subscriptions.
type Handler struct {
	hub    *realtime.Hub
	secret []byte
	logger *slog.Logger
}

// NewHandler creates the websocket handler.
func NewHandler(hub *realtime.Hub, secret []byte, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{hub: hub, secret: secret, logger: logger}
}

// Register mounts the websocket endpoint.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/ws", h.handle)
}

func (h *Handler) handle(c echo.Context) error {
	identity, err := http.ParseToken(h.secret, c.QueryParam("token"))
	if err != nil {
		return c.NoContent(nethttp.StatusUnauthorized)
	}

	server := websocket.Server{Handler: func(conn *websocket.Conn) {
		h.serve(conn, identity)
	}}
	server.ServeHTTP(c.Response(), c.Request())
	return nil
}

// serve runs one connection. Partners start attached to the broadcast channel
// so they see new offers immediately; everyone else starts with nothing and
// joins explicitly.
func (h *Handler) serve(conn *websocket.Conn, identity http.Identity) {
	defer conn.Close()

	channels := make(map[string]struct{})
	if identity.Role == kernel.RoleDeliveryPartner || identity.Role == kernel.RoleAdmin {
		channels[events.ChannelBroadcast] = struct{}{}
	}

	var (
		mu  sync.Mutex
		sub *realtime.Subscription
	)

	resubscribe := func() {
		names := make([]string, 0, len(channels))
		for channel := range channels {
			names = append(names, channel)
		}

		mu.Lock()
		if sub != nil {
			sub.Close()
		}
		sub = h.hub.Subscribe(names...)
		current := sub
		mu.Unlock()

		go func() {
			for frame := range current.C() {
				if err := websocket.JSON.Send(conn, frame); err != nil {
					h.logger.Debug("websocket send failed", "error", err)
					return
				}
			}
		}()
	}
	resubscribe()

	defer func() {
		mu.Lock()
		if sub != nil {
			sub.Close()
		}
		mu.Unlock()
	}()

	for {
		var frame joinFrame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			return
		}

		channel, ok := h.resolveChannel(frame, identity)
		if !ok {
			continue
		}
		if _, joined := channels[channel]; joined {
			continue
		}
		channels[channel] = struct{}{}
		resubscribe()
	}
}

// resolveChannel maps a join frame to a channel name, enforcing that a
// partner channel is only joinable by that partner or an admin.
func (h *Handler) resolveChannel(frame joinFrame, identity http.Identity) (string, bool) {
	switch frame.Action {
	case ActionJoinOrder:
		if frame.ID == "" {
			return "", false
		}
		return events.OrderChannel(frame.ID), true
	case ActionJoinPartner:
		if frame.ID == "" {
			return "", false
		}
		if identity.Role != kernel.RoleAdmin && frame.ID != identity.UserID.String() {
			return "", false
		}
		return events.PartnerChannel(frame.ID), true
	default:
		return "", false
	}
}
