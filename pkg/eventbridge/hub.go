// Package eventbridge 把会话事件通过 websocket 推送给外部观察者（如直播叠加层、统计工具）
//
// 每个连接到 /events 的客户端都会收到当前会话的分数更新和 game-over 帧，
// 帧使用 msgpack 编码的 map：{type, sessionId, score, time}。
package eventbridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gonewx/fishy-escape/pkg/game"
)

// 帧类型
const (
	FrameScore    = "score"
	FrameGameOver = "gameOver"
)

const (
	// EventsPath websocket 端点路径
	EventsPath = "/events"

	clientBufferSize = 64
	pingInterval     = 30 * time.Second
	pongWait         = 60 * time.Second
	writeWait        = 10 * time.Second
)

// Frame 推送给客户端的一帧
type Frame struct {
	Type      string `msgpack:"type"`
	SessionID string `msgpack:"sessionId"`
	Score     int    `msgpack:"score"`
	Time      int    `msgpack:"time"` // 存活时间（毫秒），仅 game-over 帧有意义
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub 管理 websocket 客户端并广播会话事件
//
// Attach 的回调在游戏循环中执行，广播永不阻塞：客户端缓冲区满时丢弃该帧。
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	detach  func()

	dropped atomic.Int64
}

// NewHub 创建事件桥
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // 本地观察者，不限制来源
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Attach 订阅一个会话的事件，并取消对上一个会话的订阅
//
// 参数：
//   - events: 会话事件出口
//   - sessionID: 写入每一帧的会话标识
func (h *Hub) Attach(events *game.SessionEvents, sessionID string) {
	offScore := events.OnScoreUpdate(func(score int) {
		h.Broadcast(Frame{Type: FrameScore, SessionID: sessionID, Score: score})
	})
	offOver := events.OnGameOver(func(ev game.GameOverEvent) {
		h.Broadcast(Frame{Type: FrameGameOver, SessionID: sessionID, Score: ev.Score, Time: ev.Time})
	})

	h.mu.Lock()
	prev := h.detach
	h.detach = func() {
		offScore()
		offOver()
	}
	h.mu.Unlock()

	if prev != nil {
		prev()
	}
	log.Printf("[EventBridge] attached to session %s", sessionID)
}

// Broadcast 把一帧发给所有客户端
func (h *Hub) Broadcast(frame Frame) {
	data, err := msgpack.Marshal(frame)
	if err != nil {
		log.Printf("[EventBridge] Error marshaling %s frame: %v", frame.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped.Add(1)
		}
	}
}

// ClientCount 返回当前连接数
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped 返回因客户端缓冲区已满而丢弃的帧数
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ServeHTTP 把请求升级为 websocket 连接
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[EventBridge] WebSocket upgrade error: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, clientBufferSize)}
	h.register(c)
	log.Printf("[EventBridge] client connected from %s", r.RemoteAddr)

	go h.writePump(c)
	h.readPump(c)
}

// readPump 只处理控制帧和关闭；客户端发来的数据被忽略
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[EventBridge] WebSocket error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				log.Printf("[EventBridge] Write error: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Serve 在 addr 上提供 /events 端点，直到 ctx 结束
//
// 返回：
//   - error: 监听失败时的错误；ctx 结束导致的正常关闭返回 nil
func (h *Hub) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(EventsPath, h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[EventBridge] serving %s on %s", EventsPath, addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("event bridge on %s: %w", addr, err)
	}
	return nil
}
