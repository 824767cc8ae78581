package recording

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/claritynotes/clarity-client/errors"
	"github.com/claritynotes/clarity-client/internal/domain/entities"
)

// fakeBackend is a test double for the notes backend with preset responses.
type fakeBackend struct {
	mu sync.Mutex

	startStatus string
	startErr    error
	stopStatus  string
	stopErr     error

	results    []*entities.InsightResult
	resultErrs []error
	fetchCalls int

	// fetchGate, when set, blocks a fetch until released so tests can order
	// concurrent fetches deterministically.
	fetchGate chan struct{}
}

func (f *fakeBackend) StartRealtime(ctx context.Context, cfg entities.RecordingConfig) (string, error) {
	return f.startStatus, f.startErr
}

func (f *fakeBackend) StopRecording(ctx context.Context) (string, error) {
	return f.stopStatus, f.stopErr
}

func (f *fakeBackend) TranscriptionResults(ctx context.Context) (*entities.InsightResult, error) {
	f.mu.Lock()
	call := f.fetchCalls
	f.fetchCalls++
	gate := f.fetchGate
	f.mu.Unlock()

	if gate != nil && call == 0 {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var result *entities.InsightResult
	var err error
	if call < len(f.results) {
		result = f.results[call]
	}
	if call < len(f.resultErrs) {
		err = f.resultErrs[call]
	}
	return result, err
}

// captureSink records what the controller presents.
type captureSink struct {
	mu      sync.Mutex
	results []*entities.InsightResult
	errs    []error
}

func (s *captureSink) PresentResult(result *entities.InsightResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

func (s *captureSink) PresentError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func newTestController(backend *fakeBackend, sink *captureSink) (*Controller, *[]func()) {
	c := NewController(backend, sink, 35*time.Second, nil)
	timers := &[]func(){}
	c.afterFunc = func(d time.Duration, f func()) *time.Timer {
		*timers = append(*timers, f)
		return time.NewTimer(time.Hour)
	}
	return c, timers
}

func insight(summary string) *entities.InsightResult {
	return &entities.InsightResult{Summary: entities.SummaryPayload{Text: summary}}
}

func TestStart_TransitionsAndArmsTimer(t *testing.T) {
	backend := &fakeBackend{startStatus: "Recording started"}
	ctrl, timers := newTestController(backend, &captureSink{})

	require.NoError(t, ctrl.Start(context.Background(), entities.RecordingConfig{MeetingTitle: "demo"}))
	assert.Equal(t, PhaseRecording, ctrl.Phase())
	assert.Len(t, *timers, 1)
	assert.Equal(t, "demo", ctrl.Config().MeetingTitle)
}

func TestStart_UnrecognizedAckSkipsTimer(t *testing.T) {
	backend := &fakeBackend{startStatus: "ok"}
	ctrl, timers := newTestController(backend, &captureSink{})

	require.NoError(t, ctrl.Start(context.Background(), entities.RecordingConfig{}))
	// Still recording, but results only arrive through a manual stop.
	assert.Equal(t, PhaseRecording, ctrl.Phase())
	assert.Empty(t, *timers)
}

func TestStart_WhileRecordingRejected(t *testing.T) {
	backend := &fakeBackend{startStatus: "Recording started"}
	ctrl, _ := newTestController(backend, &captureSink{})

	require.NoError(t, ctrl.Start(context.Background(), entities.RecordingConfig{}))
	err := ctrl.Start(context.Background(), entities.RecordingConfig{})

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_RECORDING_ACTIVE, appErr.Code)
	assert.Equal(t, PhaseRecording, ctrl.Phase())
}

func TestStart_FailureRevertsToIdle(t *testing.T) {
	backend := &fakeBackend{startErr: errors.New("connection refused")}
	ctrl, _ := newTestController(backend, &captureSink{})

	err := ctrl.Start(context.Background(), entities.RecordingConfig{})
	require.Error(t, err)
	assert.Equal(t, PhaseIdle, ctrl.Phase())

	// The session can be started again after the failure.
	backend.startErr = nil
	backend.startStatus = "Recording started"
	require.NoError(t, ctrl.Start(context.Background(), entities.RecordingConfig{}))
}

func TestStop_FetchesAndLandsIdle(t *testing.T) {
	backend := &fakeBackend{
		startStatus: "Recording started",
		stopStatus:  "Recording stopped",
		results:     []*entities.InsightResult{insight("done")},
	}
	sink := &captureSink{}
	ctrl, _ := newTestController(backend, sink)

	require.NoError(t, ctrl.Start(context.Background(), entities.RecordingConfig{}))
	require.NoError(t, ctrl.Stop(context.Background()))

	assert.Equal(t, PhaseIdle, ctrl.Phase())
	require.Len(t, sink.results, 1)
	assert.Equal(t, "done", sink.results[0].Summary.Text)
}

func TestStop_WithoutActiveSessionRejected(t *testing.T) {
	ctrl, _ := newTestController(&fakeBackend{}, &captureSink{})

	err := ctrl.Stop(context.Background())
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_RECORDING_INACTIVE, appErr.Code)
}

func TestStop_IdleEvenWhenFetchFails(t *testing.T) {
	backend := &fakeBackend{
		startStatus: "Recording started",
		stopStatus:  "Recording stopped",
		resultErrs:  []error{errors.New("boom")},
	}
	sink := &captureSink{}
	ctrl, _ := newTestController(backend, sink)

	require.NoError(t, ctrl.Start(context.Background(), entities.RecordingConfig{}))
	require.NoError(t, ctrl.Stop(context.Background()))

	assert.Equal(t, PhaseIdle, ctrl.Phase())
	require.Len(t, sink.errs, 1)
}

func TestStop_FailureStillLandsIdle(t *testing.T) {
	backend := &fakeBackend{
		startStatus: "Recording started",
		stopErr:     errors.New("backend down"),
	}
	ctrl, _ := newTestController(backend, &captureSink{})

	require.NoError(t, ctrl.Start(context.Background(), entities.RecordingConfig{}))
	err := ctrl.Stop(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseIdle, ctrl.Phase())
}

func TestFetchResults_NotReadyVariant(t *testing.T) {
	backend := &fakeBackend{resultErrs: []error{entities.ErrResultsNotReady}}
	sink := &captureSink{}
	ctrl, _ := newTestController(backend, sink)

	ctrl.FetchResults(context.Background())

	require.Len(t, sink.errs, 1)
	var appErr apperrors.AppError
	require.ErrorAs(t, sink.errs[0], &appErr)
	assert.Equal(t, apperrors.ErrorCode_RESULTS_NOT_READY, appErr.Code)
}

func TestFetchResults_GenericVariantKeepsDetail(t *testing.T) {
	backend := &fakeBackend{resultErrs: []error{fmt.Errorf("backend returned status 500: workflow crashed")}}
	sink := &captureSink{}
	ctrl, _ := newTestController(backend, sink)

	ctrl.FetchResults(context.Background())

	require.Len(t, sink.errs, 1)
	var appErr apperrors.AppError
	require.ErrorAs(t, sink.errs[0], &appErr)
	assert.Equal(t, apperrors.ErrorCode_BACKEND_FAILURE, appErr.Code)
	assert.Contains(t, sink.errs[0].Error(), "workflow crashed")
}

func TestFetchResults_StaleResponseDiscarded(t *testing.T) {
	gate := make(chan struct{})
	backend := &fakeBackend{
		fetchGate: gate,
		results:   []*entities.InsightResult{insight("stale"), insight("fresh")},
	}
	sink := &captureSink{}
	ctrl, _ := newTestController(backend, sink)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.FetchResults(context.Background()) // first fetch, blocked on gate
	}()

	// Wait until the first fetch is in flight, then let a second one win.
	require.Eventually(t, func() bool {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.fetchCalls == 1
	}, time.Second, time.Millisecond)

	ctrl.FetchResults(context.Background()) // second fetch resolves first
	close(gate)
	wg.Wait()

	require.Len(t, sink.results, 1)
	assert.Equal(t, "fresh", sink.results[0].Summary.Text)
}

func TestAutoFetchTimer_DeliversWithoutStop(t *testing.T) {
	backend := &fakeBackend{
		startStatus: "Recording started",
		results:     []*entities.InsightResult{insight("auto")},
	}
	sink := &captureSink{}
	ctrl, timers := newTestController(backend, sink)

	require.NoError(t, ctrl.Start(context.Background(), entities.RecordingConfig{}))
	require.Len(t, *timers, 1)

	(*timers)[0]() // fire the auto-fetch timer

	assert.Equal(t, PhaseIdle, ctrl.Phase())
	require.Len(t, sink.results, 1)
	assert.Equal(t, "auto", sink.results[0].Summary.Text)
}
