// Package ws streams executed fills to WebSocket subscribers.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/DenisPandarakalam/Onymos-StockTradingEngine/domain/engine"
)

const (
	writeWait      = 10 * time.Second
	broadcastDepth = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type fillMessage struct {
	Symbol     string `json:"symbol"`
	Qty        int64  `json:"qty"`
	BuyPrice   int64  `json:"buy_price"`
	SellPrice  int64  `json:"sell_price"`
	BuyOrder   uint64 `json:"buy_order"`
	SellOrder  uint64 `json:"sell_order"`
	Seq        uint64 `json:"seq"`
	ExecutedAt int64  `json:"executed_at"`
}

// Hub fans fills out to connected clients. OnFill is called inside the
// matching critical section, so delivery is a non-blocking channel
// send: a full hub drops the message rather than stall the engine.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	log        *zap.Logger
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, broadcastDepth),
		done:       make(chan struct{}),
		log:        log,
	}
}

// OnFill implements engine.FillSink.
func (h *Hub) OnFill(f engine.Fill) {
	msg, err := json.Marshal(fillMessage{
		Symbol:     f.Symbol,
		Qty:        f.Qty,
		BuyPrice:   f.BuyPrice,
		SellPrice:  f.SellPrice,
		BuyOrder:   f.BuyOrder,
		SellOrder:  f.SellOrder,
		Seq:        f.Seq,
		ExecutedAt: f.ExecutedAt,
	})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
	}
}

// Run owns the client set. All mutation goes through the channels, so
// no lock is needed. When it returns, done is closed and upgrades
// arriving afterwards are refused instead of blocking on register.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				c.conn.Close()
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer; cut it loose.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// ServeWS upgrades an HTTP request and attaches it to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 256)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writeLoop()
	go c.readLoop(h)
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readLoop exists to notice disconnects; inbound frames are discarded.
func (c *client) readLoop(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
