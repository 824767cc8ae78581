package ws

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/claritynotes/clarity-client/internal/usecase/chat"
)

// Dialer establishes websocket transports to the backend chat channel. Each
// Dial returns a fresh, explicitly owned connection; the relay decides when to
// open and close it.
type Dialer struct {
	url string
}

// NewDialer creates a dialer for the given websocket URL.
func NewDialer(url string) *Dialer {
	return &Dialer{url: url}
}

// Dial opens a new connection.
func (d *Dialer) Dial(ctx context.Context) (chat.Transport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, d.url, nil)
	if err != nil {
		return nil, err
	}
	return &transport{conn: conn}, nil
}

// transport adapts a websocket connection to the chat transport contract.
// Events travel as JSON envelopes in text frames.
type transport struct {
	conn *websocket.Conn
	// writeMu serializes writers; gorilla allows at most one concurrent
	// writer per connection.
	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func (t *transport) ReadEvent() (*chat.Event, error) {
	var ev chat.Event
	if err := t.conn.ReadJSON(&ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (t *transport) WriteEvent(ev chat.Event) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return t.conn.WriteJSON(ev)
}

func (t *transport) Close() error {
	t.closeOnce.Do(func() {
		t.writeMu.Lock()
		t.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		t.writeMu.Unlock()
		t.closeErr = t.conn.Close()
	})
	return t.closeErr
}
