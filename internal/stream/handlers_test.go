package stream

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
)

func TestStreamHandlersUpgradeRequired(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), NewHub(nil))

	req := httptest.NewRequest(http.MethodGet, "/stream/ws/session-1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode == http.StatusOK {
		t.Fatalf("expected non-200 for non-websocket request")
	}
}

func dialStream(t *testing.T, hub *Hub, path string) (*websocket.Conn, func()) {
	t.Helper()

	app := fiber.New()
	RegisterRoutes(app.Group("/stream"), hub)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}

	go func() {
		_ = app.Listener(ln)
	}()

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+path, nil)
	if err != nil {
		ln.Close()
		t.Fatalf("dial error: %v", err)
	}

	return conn, func() {
		conn.Close()
		_ = app.Shutdown()
		ln.Close()
	}
}

func TestStreamHandlersBroadcast(t *testing.T) {
	hub := NewHub(nil)
	conn, cleanup := dialStream(t, hub, "/stream/ws/session-1")
	defer cleanup()

	hub.Broadcast("session-1", []byte(`{"lat":1,"lng":2,"intensity":50}`))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if string(msg) != `{"lat":1,"lng":2,"intensity":50}` {
		t.Fatalf("unexpected message %s", msg)
	}
}

func TestStreamHandlersClosedClient(t *testing.T) {
	hub := NewHub(nil)
	conn, cleanup := dialStream(t, hub, "/stream/ws/session-2")
	defer cleanup()

	conn.Close()
	hub.Broadcast("session-2", []byte("ping"))
	time.Sleep(20 * time.Millisecond)
}

func TestStreamHandlersCloseMessage(t *testing.T) {
	hub := NewHub(nil)
	conn, cleanup := dialStream(t, hub, "/stream/ws/session-3")
	defer cleanup()

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	conn.Close()

	hub.Broadcast("session-3", []byte("ping"))
	time.Sleep(20 * time.Millisecond)
}
