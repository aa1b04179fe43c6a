/*
Package handler provides the HTTP handlers and routing for the Sehra server.

This file upgrades HTTP requests to WebSocket sessions and hands them to the
gateway. Connections start unauthenticated; the client sends an authenticate
event over the socket to bind its identity.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"sehra/internal/pkg/errs"
	"sehra/internal/pkg/limiter"
	"sehra/internal/pkg/logx"
	"sehra/internal/pkg/resp"
)

// HandleWebSocket rate-limits, upgrades and registers a realtime connection.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: rate limit exceeded", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		sock, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		conn := deps.Gateway.Accept(sock)

		go conn.WritePump()

		logx.Info("WebSocket connection established", "conn_id", conn.ID())

		conn.ReadPump(deps.Gateway)
	}
}
