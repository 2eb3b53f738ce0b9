package hub

import (
	"encoding/json"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", h.ClientCount(), want)
}

func TestHubBroadcast(t *testing.T) {
	h := New()
	go h.Run()
	defer h.Stop()

	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()
	waitForClients(t, h, 1)

	h.Broadcast(map[string]string{"request_id": "abc", "mode": "temperature"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["request_id"] != "abc" || got["mode"] != "temperature" {
		t.Errorf("broadcast payload = %v", got)
	}
}

func TestHubStopReleasesReaders(t *testing.T) {
	h := New()
	go h.Run()

	srv := httptest.NewServer(h)
	defer srv.Close()

	base := runtime.NumGoroutine()
	conns := make([]*websocket.Conn, 3)
	for i := range conns {
		conns[i] = dialHub(t, srv)
	}
	waitForClients(t, h, 3)

	// Clients dropping after Stop must not strand their reader goroutines
	// on the halted event loop.
	h.Stop()
	for _, c := range conns {
		c.Close()
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= base+2 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("goroutines did not settle: %d, baseline %d", runtime.NumGoroutine(), base)
}

func TestHubDisconnect(t *testing.T) {
	h := New()
	go h.Run()
	defer h.Stop()

	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialHub(t, srv)
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)
}
