package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/claritynotes/clarity-client/internal/domain/entities"
)

// Event is the envelope exchanged over the chat channel.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// Inbound and outbound event names.
const (
	EventMessage    = "message"
	EventNewMeeting = "new_meeting"
)

// Transport is a single established bidirectional channel. ReadEvent blocks
// until an event arrives or the connection dies; Close unblocks a pending
// read.
type Transport interface {
	ReadEvent() (*Event, error)
	WriteEvent(ev Event) error
	Close() error
}

// Dialer establishes transports. The relay owns the connection lifecycle
// explicitly; there is no process-wide shared socket.
type Dialer interface {
	Dial(ctx context.Context) (Transport, error)
}

// Directory fetches the meeting roster.
type Directory interface {
	Meetings(ctx context.Context) ([]entities.MeetingSummary, error)
}

// Options tunes relay behavior.
type Options struct {
	// ReconnectAttempts bounds automatic reconnection after a drop. Once
	// exhausted the relay stays disconnected; there is no indefinite retry.
	ReconnectAttempts uint64
	// FilterByMeeting drops inbound messages tagged with a meeting_id other
	// than the selected meeting. The original product displays every inbound
	// message regardless of meeting, so this defaults to off.
	FilterByMeeting bool
}

// messagePayload is the wire shape of message events in both directions.
type messagePayload struct {
	Type      string `json:"type,omitempty"`
	Message   string `json:"message,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	MeetingID string `json:"meeting_id,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
}

const timestampLayout = "2006-01-02 15:04:05"

// Relay maintains connectivity, the meeting roster, the selected-meeting
// pointer and an ordered message log. It runs independently of the recording
// and upload workflows. The roster and selection are mutated only here; the
// message log is append-only in receipt order.
type Relay struct {
	dialer    Dialer
	directory Directory
	logger    *zap.Logger
	opts      Options

	// injectable for tests
	now        func() time.Time
	newID      func() string
	newBackOff func() backoff.BackOff

	mu        sync.Mutex
	meetings  []entities.MeetingSummary
	selected  string
	log       []entities.ChatMessage
	connected bool
	terminal  bool
	transport Transport
	// pending tracks client ids of optimistic echoes awaiting a server echo,
	// so the confirmed copy is not appended a second time.
	pending map[string]struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRelay constructs a chat relay.
func NewRelay(dialer Dialer, directory Directory, opts Options, logger *zap.Logger) *Relay {
	if opts.ReconnectAttempts == 0 {
		opts.ReconnectAttempts = 5
	}
	return &Relay{
		dialer:    dialer,
		directory: directory,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
		newID:     uuid.NewString,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = time.Second
			bo.MaxInterval = 10 * time.Second
			return bo
		},
		pending: make(map[string]struct{}),
	}
}

// Start fetches the roster once and begins the connection loop. A roster
// fetch failure is logged but does not prevent the chat channel from coming
// up; sending just stays unavailable until a meeting exists.
func (r *Relay) Start(ctx context.Context) {
	meetings, err := r.directory.Meetings(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("failed to fetch meeting roster", zap.Error(err))
		}
	} else {
		r.mu.Lock()
		r.meetings = meetings
		if r.selected == "" && len(meetings) > 0 {
			r.selected = meetings[0].MeetingID
		}
		r.mu.Unlock()
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(runCtx)
	}()
}

// Close tears the relay down and waits for the connection loop to exit.
func (r *Relay) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Lock()
	t := r.transport
	r.mu.Unlock()
	if t != nil {
		t.Close()
	}
	r.wg.Wait()
	return nil
}

// run is the connection loop: dial with bounded retries, read until the
// connection drops, reconnect. Exhausting the retry budget is terminal.
func (r *Relay) run(ctx context.Context) {
	for {
		transport, err := r.connect(ctx)
		if err != nil {
			if ctx.Err() == nil && r.logger != nil {
				r.logger.Error("chat reconnect attempts exhausted, staying disconnected", zap.Error(err))
			}
			r.mu.Lock()
			r.terminal = true
			r.mu.Unlock()
			return
		}

		r.handleConnect(transport)
		r.readLoop(transport)
		r.handleDisconnect(transport)

		if ctx.Err() != nil {
			return
		}
	}
}

func (r *Relay) connect(ctx context.Context) (Transport, error) {
	var transport Transport
	op := func() error {
		t, err := r.dialer.Dial(ctx)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("chat dial failed", zap.Error(err))
			}
			return err
		}
		transport = t
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.opts.ReconnectAttempts), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return transport, nil
}

func (r *Relay) handleConnect(t Transport) {
	r.mu.Lock()
	r.connected = true
	r.transport = t
	r.appendLocked(entities.ChatMessage{
		Type:      entities.MessageTypeStatus,
		Content:   "Connected to chat",
		Timestamp: r.now().Format(timestampLayout),
	})
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Info("chat connected")
	}
}

func (r *Relay) handleDisconnect(t Transport) {
	t.Close()

	r.mu.Lock()
	r.connected = false
	r.transport = nil
	r.appendLocked(entities.ChatMessage{
		Type:      entities.MessageTypeStatus,
		Content:   "Disconnected from chat",
		Timestamp: r.now().Format(timestampLayout),
	})
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Info("chat disconnected")
	}
}

func (r *Relay) readLoop(t Transport) {
	for {
		ev, err := t.ReadEvent()
		if err != nil {
			return
		}
		r.handleEvent(ev)
	}
}

func (r *Relay) handleEvent(ev *Event) {
	switch ev.Name {
	case EventMessage:
		var payload messagePayload
		if err := json.Unmarshal(ev.Data, &payload); err != nil {
			if r.logger != nil {
				r.logger.Warn("malformed message event", zap.Error(err))
			}
			return
		}
		r.appendInbound(payload)

	case EventNewMeeting:
		var meeting entities.MeetingSummary
		if err := json.Unmarshal(ev.Data, &meeting); err != nil {
			if r.logger != nil {
				r.logger.Warn("malformed new_meeting event", zap.Error(err))
			}
			return
		}
		r.mu.Lock()
		// A pushed meeting goes to the top of the roster and always wins the
		// selection, even over an explicit user choice.
		r.meetings = append([]entities.MeetingSummary{meeting}, r.meetings...)
		r.selected = meeting.MeetingID
		r.mu.Unlock()
		if r.logger != nil {
			r.logger.Info("new meeting pushed",
				zap.String("meeting_id", meeting.MeetingID),
				zap.String("meeting_title", meeting.MeetingTitle),
			)
		}

	default:
		if r.logger != nil {
			r.logger.Debug("ignoring unknown event", zap.String("event", ev.Name))
		}
	}
}

func (r *Relay) appendInbound(payload messagePayload) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if payload.ClientID != "" {
		if _, ok := r.pending[payload.ClientID]; ok {
			// Server echo of a message already shown optimistically.
			delete(r.pending, payload.ClientID)
			return
		}
	}

	if r.opts.FilterByMeeting && payload.MeetingID != "" && payload.MeetingID != r.selected {
		return
	}

	msgType := payload.Type
	if msgType == "" {
		msgType = entities.MessageTypeMessage
	}
	timestamp := payload.Timestamp
	if timestamp == "" {
		timestamp = r.now().Format(timestampLayout)
	}

	r.appendLocked(entities.ChatMessage{
		Type:      msgType,
		Content:   payload.Content,
		Timestamp: timestamp,
		MeetingID: payload.MeetingID,
		ClientID:  payload.ClientID,
	})
}

// appendLocked appends to the log. Caller holds r.mu.
func (r *Relay) appendLocked(msg entities.ChatMessage) {
	r.log = append(r.log, msg)
}

// Send emits a message scoped to the selected meeting and appends an
// optimistic local echo before any server acknowledgment. Invalid sends are
// rejected without touching the transport.
func (r *Relay) Send(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return entities.ErrEmptyMessage
	}
	if !r.connected || r.transport == nil {
		return entities.ErrNotConnected
	}
	if r.selected == "" {
		return entities.ErrNoMeetingSelected
	}

	clientID := r.newID()
	timestamp := r.now().Format(timestampLayout)

	payload, err := json.Marshal(messagePayload{
		Message:   text,
		MeetingID: r.selected,
		Timestamp: timestamp,
		ClientID:  clientID,
	})
	if err != nil {
		return err
	}
	if err := r.transport.WriteEvent(Event{Name: EventMessage, Data: payload}); err != nil {
		return err
	}

	r.pending[clientID] = struct{}{}
	r.appendLocked(entities.ChatMessage{
		Type:      entities.MessageTypeMessage,
		Content:   "You: " + text,
		Timestamp: timestamp,
		MeetingID: r.selected,
		ClientID:  clientID,
	})
	return nil
}

// Select points the relay at a meeting from the roster.
func (r *Relay) Select(meetingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.meetings {
		if m.MeetingID == meetingID {
			r.selected = meetingID
			return nil
		}
	}
	return entities.ErrUnknownMeeting
}

// Connected reports current connectivity.
func (r *Relay) Connected() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.connected
}

// Terminal reports whether the reconnect budget is exhausted.
func (r *Relay) Terminal() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.terminal
}

// Selected returns the selected meeting id, empty when none.
func (r *Relay) Selected() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// Meetings returns a copy of the roster.
func (r *Relay) Meetings() []entities.MeetingSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.MeetingSummary, len(r.meetings))
	copy(out, r.meetings)
	return out
}

// Messages returns a copy of the message log in receipt order.
func (r *Relay) Messages() []entities.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.ChatMessage, len(r.log))
	copy(out, r.log)
	return out
}
