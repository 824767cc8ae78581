package recording

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/claritynotes/clarity-client/errors"
	"github.com/claritynotes/clarity-client/internal/domain/entities"
)

// Phase is the lifecycle phase of the single recording session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStarting
	PhaseRecording
	PhaseFetching
	PhaseStopping
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStarting:
		return "starting"
	case PhaseRecording:
		return "recording"
	case PhaseFetching:
		return "fetching"
	case PhaseStopping:
		return "stopping"
	}
	return "unknown"
}

// startAck is the acknowledgment content that arms the auto-fetch timer. If
// the backend answers with anything else the session still enters the
// recording phase, but results only arrive through a manual stop.
const startAck = "Recording started"

const stopAck = "Recording stopped"

// Backend is the subset of the notes backend the controller drives.
type Backend interface {
	StartRealtime(ctx context.Context, cfg entities.RecordingConfig) (string, error)
	StopRecording(ctx context.Context) (string, error)
	TranscriptionResults(ctx context.Context) (*entities.InsightResult, error)
}

// ResultSink receives fetched results. Delivery is last-write-wins: when the
// auto-fetch timer and a manual stop race, the sink sees at most the newer
// fetch's outcome.
type ResultSink interface {
	PresentResult(result *entities.InsightResult)
	PresentError(err error)
}

// Controller coordinates start/stop of the server-side recording job with the
// delayed, polled retrieval of its results. There is no persisted session
// identity: it owns exactly one ephemeral session at a time.
type Controller struct {
	backend Backend
	sink    ResultSink
	logger  *zap.Logger

	fetchDelay time.Duration
	// afterFunc schedules the auto-fetch timer; injectable for tests.
	afterFunc func(d time.Duration, f func()) *time.Timer

	mu           sync.Mutex
	phase        Phase
	config       entities.RecordingConfig
	fetchSeq     uint64
	deliveredSeq uint64
}

// NewController constructs a recording session controller.
func NewController(backend Backend, sink ResultSink, fetchDelay time.Duration, logger *zap.Logger) *Controller {
	return &Controller{
		backend:    backend,
		sink:       sink,
		logger:     logger,
		fetchDelay: fetchDelay,
		afterFunc:  time.AfterFunc,
	}
}

// Phase reports the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Config returns the configuration of the active session.
func (c *Controller) Config() entities.RecordingConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Start begins a real-time recording session. Valid only from idle; a second
// Start while a session is active is rejected rather than relying on the
// caller to disable the control. On a recognized acknowledgment the auto-fetch
// timer is armed fire-and-forget; the call itself never blocks on it.
func (c *Controller) Start(ctx context.Context, cfg entities.RecordingConfig) error {
	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return apperrors.ErrRecordingInProgress()
	}
	c.phase = PhaseStarting
	c.config = cfg
	c.mu.Unlock()

	status, err := c.backend.StartRealtime(ctx, cfg)
	if err != nil {
		c.mu.Lock()
		c.phase = PhaseIdle
		c.mu.Unlock()
		return apperrors.ErrBackendFailure("start recording", err)
	}

	c.mu.Lock()
	c.phase = PhaseRecording
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("recording session started",
			zap.String("meeting_title", cfg.MeetingTitle),
			zap.String("status", status),
		)
	}

	if status == startAck {
		c.afterFunc(c.fetchDelay, c.autoFetch)
	}
	return nil
}

// Stop ends the active session. Valid only from the recording phase. On
// acknowledgment it synchronously fetches results; the session is idle
// afterwards regardless of the fetch outcome, and a failed stop is not
// retried.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseRecording {
		c.mu.Unlock()
		return apperrors.ErrNoActiveRecording()
	}
	c.phase = PhaseStopping
	c.mu.Unlock()

	status, err := c.backend.StopRecording(ctx)

	// Stop always lands in idle, even on failure.
	c.mu.Lock()
	c.phase = PhaseIdle
	c.mu.Unlock()

	if err != nil {
		return apperrors.ErrBackendFailure("stop recording", err)
	}

	if c.logger != nil {
		c.logger.Info("recording session stopped", zap.String("status", status))
	}

	if status == stopAck {
		c.FetchResults(ctx)
	}
	return nil
}

// FetchResults retrieves the latest transcription artifact and delivers it to
// the sink. It never changes the lifecycle phase; the start/stop transitions
// own that. Concurrent fetches are sequenced so a stale response cannot
// clobber a newer one.
func (c *Controller) FetchResults(ctx context.Context) {
	c.mu.Lock()
	c.fetchSeq++
	seq := c.fetchSeq
	c.mu.Unlock()

	result, err := c.backend.TranscriptionResults(ctx)

	c.mu.Lock()
	if seq < c.deliveredSeq {
		// A newer fetch already delivered; drop this one.
		c.mu.Unlock()
		return
	}
	c.deliveredSeq = seq
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, entities.ErrResultsNotReady) {
			c.sink.PresentError(apperrors.ErrResultsNotReady())
		} else {
			c.sink.PresentError(apperrors.ErrBackendFailure("fetch results", err))
		}
		if c.logger != nil {
			c.logger.Warn("result fetch failed", zap.Error(err))
		}
		return
	}

	if c.logger != nil {
		c.logger.Info("transcription results fetched")
	}
	c.sink.PresentResult(result)
}

// autoFetch is the fixed-delay timer path: the recording window has elapsed,
// fetch results without requiring an explicit stop.
func (c *Controller) autoFetch() {
	c.mu.Lock()
	if c.phase == PhaseRecording {
		c.phase = PhaseFetching
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	c.FetchResults(ctx)

	c.mu.Lock()
	if c.phase == PhaseFetching {
		c.phase = PhaseIdle
	}
	c.mu.Unlock()
}
