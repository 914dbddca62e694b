package gateway

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the client origin list is known.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebsocket upgrades the connection and registers the player with
// the hub until the connection drops.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	playerID := uuidstring.ID(r.URL.Query().Get("player_id"))
	if playerID.IsNil() {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade websocket",
			zap.String("player_id", playerID.String()),
			zap.Error(err))
		return
	}

	ctx, cf := context.WithCancel(r.Context())
	defer cf()

	client := NewClient(conn, playerID, s.logger)
	s.hub.RegisterCh <- client

	go client.writePump(ctx, cf)
	go client.readPump(ctx, cf)

	<-ctx.Done()
	s.hub.UnregisterCh <- client
}
