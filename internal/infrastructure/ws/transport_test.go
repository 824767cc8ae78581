package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/claritynotes/clarity-client/internal/usecase/chat"
)

func TestDialReadWriteRoundTrip(t *testing.T) {
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Fatalf("upgrade failed: %v", err)
		}
		defer conn.Close()

		// Echo the first event back, then push one of our own.
		var ev chat.Event
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if err := conn.WriteJSON(ev); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		if err := conn.WriteJSON(chat.Event{Name: "new_meeting", Data: json.RawMessage(`{"meeting_id":"m-1"}`)}); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	transport, err := NewDialer(url).Dial(context.Background())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer transport.Close()

	sent := chat.Event{Name: "message", Data: json.RawMessage(`{"message":"hi","meeting_id":"m-1"}`)}
	if err := transport.WriteEvent(sent); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	echoed, err := transport.ReadEvent()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if echoed.Name != "message" {
		t.Fatalf("unexpected event %q", echoed.Name)
	}

	pushed, err := transport.ReadEvent()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if pushed.Name != "new_meeting" {
		t.Fatalf("unexpected event %q", pushed.Name)
	}
}

func TestDial_Failure(t *testing.T) {
	if _, err := NewDialer("ws://127.0.0.1:1/socket").Dial(context.Background()); err == nil {
		t.Fatal("expected dial error")
	}
}
