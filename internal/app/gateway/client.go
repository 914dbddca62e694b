package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/fpslabs/fps-backend/pkg/uuidstring"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// Client is one player's websocket connection. The hub owns registration;
// the client owns its pumps.
type Client struct {
	PlayerID uuidstring.ID

	conn      *websocket.Conn
	sendCh    chan []byte
	logger    *zap.Logger
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn, playerID uuidstring.ID, logger *zap.Logger) *Client {
	return &Client{
		PlayerID: playerID,
		conn:     conn,
		sendCh:   make(chan []byte, sendBufferSize),
		logger:   logger,
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.conn.Close()
	})
}

func (c *Client) writePump(ctx context.Context, cf context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Debug("failed to write to websocket",
					zap.String("player_id", c.PlayerID.String()),
					zap.Error(err))
				cf()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cf()
				return
			}
		}
	}
}

// readPump drains the connection so pongs and close frames are processed.
// Notifications flow one way; inbound payloads are ignored.
func (c *Client) readPump(ctx context.Context, cf context.CancelFunc) {
	defer cf()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly",
					zap.String("player_id", c.PlayerID.String()),
					zap.Error(err))
			}
			return
		}
	}
}
