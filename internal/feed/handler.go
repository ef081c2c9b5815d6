package feed

import (
	"context"
	"net/http"

	ws "github.com/coder/websocket"
)

// Handler upgrades requests to WebSocket and subscribes them to hub.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hub.closed() {
			http.Error(w, "event feed closed", http.StatusServiceUnavailable)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			// Same origin policy as the CORS middleware: any origin.
			InsecureSkipVerify: true,
		})
		if err != nil {
			hub.logger.Warn("Feed upgrade failed", "error", err)
			return
		}
		defer conn.CloseNow()

		hub.logger.Info("Feed subscriber connected", "remote", r.RemoteAddr)
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		stop := context.AfterFunc(hub.ctx, cancel)
		defer stop()

		NewClient(hub, conn).Run(ctx)
		hub.logger.Info("Feed subscriber disconnected", "remote", r.RemoteAddr)
	}
}
