package httpserver

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"fogchess/internal/fogchess"
	"fogchess/internal/server/game"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

// Client 一个 websocket 连接，只订阅一局、只看 observer 一方的视角。
type Client struct {
	gameID   string
	observer fogchess.Side
	send     chan []byte
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// Hub 在对局变化时，把各自视角的棋盘推给订阅该局的连接。
type Hub struct {
	mgr *game.Manager
	log *zap.Logger

	mu        sync.Mutex
	clients   map[*Client]struct{}
	broadcast chan string
}

func NewHub(mgr *game.Manager, log *zap.Logger) *Hub {
	return &Hub{
		mgr:       mgr,
		log:       log,
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan string, 64),
	}
}

// Run 处理广播，直到 done 关闭。
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case id := <-h.broadcast:
			h.push(id)
		}
	}
}

// Publish 不阻塞；队列满时丢弃，客户端下一次变化时会拿到完整视图。
func (h *Hub) Publish(id string) {
	select {
	case h.broadcast <- id:
	default:
		h.log.Warn("ws broadcast queue full", zap.String("game", id))
	}
}

func (h *Hub) push(id string) {
	sess, err := h.mgr.Get(id)
	if err != nil {
		return
	}
	// 会话锁可能被引擎思考占住，生成视图不能在 h.mu 之下进行
	targets := h.subscribers(id)
	views := make(map[fogchess.Side]wsMessage, 2)
	for _, c := range targets {
		msg, ok := views[c.observer]
		if !ok {
			msg = viewMessage(sess, c.observer)
			views[c.observer] = msg
		}
		h.deliver(c, msg)
	}
}

func (h *Hub) subscribers(id string) []*Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*Client
	for c := range h.clients {
		if c.gameID == id {
			out = append(out, c)
		}
	}
	return out
}

// deliver 只给仍注册着的连接发送；Unregister 会关闭 send。
func (h *Hub) deliver(c *Client, msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		c.sendJSON(msg)
	}
}

func viewMessage(sess *game.Session, side fogchess.Side) wsMessage {
	return wsMessage{Type: "view", Payload: mustMarshal(snapshotToDTO(sess.View(side)))}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Clients 当前订阅 id 这一局的连接数。
func (h *Hub) Clients(id string) int {
	return len(h.subscribers(id))
}
