package eventbridge

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gonewx/fishy-escape/pkg/game"
)

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + EventsPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client was never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var frame Frame
	if err := msgpack.Unmarshal(data, &frame); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return frame
}

// TestHubStreamsSessionEvents 分数和 game-over 事件以 msgpack 帧推送
func TestHubStreamsSessionEvents(t *testing.T) {
	hub := NewHub()
	conn := dial(t, hub)

	events := game.NewSessionEvents()
	hub.Attach(events, "session-1")

	events.EmitScoreUpdate(42)
	frame := readFrame(t, conn)
	if frame.Type != FrameScore || frame.Score != 42 || frame.SessionID != "session-1" {
		t.Errorf("unexpected score frame: %+v", frame)
	}

	events.EmitGameOver(game.GameOverEvent{Score: 50, Time: 5000, SessionID: "session-1"})
	frame = readFrame(t, conn)
	if frame.Type != FrameGameOver || frame.Score != 50 || frame.Time != 5000 {
		t.Errorf("unexpected game over frame: %+v", frame)
	}
	t.Logf("✓ score and game over frames delivered")
}

// TestAttachReplacesPreviousSession 新会话接管事件流，旧会话不再推送
func TestAttachReplacesPreviousSession(t *testing.T) {
	hub := NewHub()
	conn := dial(t, hub)

	old := game.NewSessionEvents()
	hub.Attach(old, "old")
	next := game.NewSessionEvents()
	hub.Attach(next, "new")

	old.EmitScoreUpdate(1)
	next.EmitScoreUpdate(2)

	frame := readFrame(t, conn)
	if frame.SessionID != "new" || frame.Score != 2 {
		t.Errorf("expected the new session's frame first, got %+v", frame)
	}
}

// TestBroadcastDropsWhenFull 缓冲区满时丢弃而不是阻塞
func TestBroadcastDropsWhenFull(t *testing.T) {
	hub := NewHub()
	c := &client{send: make(chan []byte, 1)}
	hub.register(c)

	hub.Broadcast(Frame{Type: FrameScore, Score: 1})
	hub.Broadcast(Frame{Type: FrameScore, Score: 2})

	if len(c.send) != 1 {
		t.Errorf("buffer should hold one frame, got %d", len(c.send))
	}
	if hub.Dropped() != 1 {
		t.Errorf("expected 1 dropped frame, got %d", hub.Dropped())
	}

	hub.unregister(c)
	hub.unregister(c)
	if hub.ClientCount() != 0 {
		t.Error("client should be removed")
	}
}
