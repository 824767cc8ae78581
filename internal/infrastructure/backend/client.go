package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/claritynotes/clarity-client/internal/domain/entities"
	"github.com/claritynotes/clarity-client/pkg/config"
)

// Client is a minimal client for the notes backend HTTP API. The backend owns
// persistence, transcription and summarization; this client only speaks its
// fixed contract. No call is retried automatically: every failure surfaces to
// the caller, and a retry takes a new explicit user action.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend client using values from the provided config.
func NewClient(cfg *config.BackendConfig) *Client {
	timeout := 120 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	base := "http://localhost:8000"
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	}

	return &Client{
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

// statusResponse is the ack shape for start/stop/feedback calls
type statusResponse struct {
	Status string `json:"status"`
}

// errorResponse is the backend's error body shape
type errorResponse struct {
	Detail string `json:"detail"`
}

// Meetings fetches the full meeting roster.
func (c *Client) Meetings(ctx context.Context) ([]entities.MeetingSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get_meetings", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.decodeError(resp)
	}

	var body struct {
		Meetings []entities.MeetingSummary `json:"meetings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode meetings: %w", err)
	}
	return body.Meetings, nil
}

// ProcessMeeting uploads an audio file with its processing options and returns
// the produced insight payload. The input options travel as a JSON form field
// next to the file part.
func (c *Client) ProcessMeeting(ctx context.Context, input entities.MeetingInput, filename string, file io.Reader) (*entities.InsightResult, error) {
	if file == nil {
		return nil, entities.ErrMissingFile
	}
	if input.NotifySlack && input.Channel == "" {
		return nil, entities.ErrChannelRequired
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	inputJSON, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	if err := mw.WriteField("input", string(inputJSON)); err != nil {
		return nil, err
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process_meeting", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.decodeError(resp)
	}

	var body struct {
		MeetingID string                  `json:"meeting_id"`
		Result    *entities.InsightResult `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode process result: %w", err)
	}
	if body.Result == nil {
		return nil, fmt.Errorf("empty result from backend")
	}
	return body.Result, nil
}

// SubmitFeedback posts a rating for a meeting.
func (c *Client) SubmitFeedback(ctx context.Context, fb entities.Feedback) error {
	b, err := json.Marshal(fb)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/feedback", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}
	return nil
}

// StartRealtime asks the backend to start a real-time recording session and
// returns the acknowledgment status string.
func (c *Client) StartRealtime(ctx context.Context, cfg entities.RecordingConfig) (string, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/real_time_transcribe", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.decodeError(resp)
	}

	var sr statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("failed to decode start response: %w", err)
	}
	return sr.Status, nil
}

// StopRecording asks the backend to stop the active recording session.
func (c *Client) StopRecording(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/stop_recording", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.decodeError(resp)
	}

	var sr statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("failed to decode stop response: %w", err)
	}
	return sr.Status, nil
}

// TranscriptionResults fetches the latest real-time transcription artifact.
// A 404 means the results are not ready yet and maps to
// entities.ErrResultsNotReady so callers can distinguish "try again later"
// from a hard failure.
func (c *Client) TranscriptionResults(ctx context.Context) (*entities.InsightResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get_transcription_results", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, entities.ErrResultsNotReady
	}
	if resp.StatusCode >= 400 {
		return nil, c.decodeError(resp)
	}

	var result entities.InsightResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode transcription results: %w", err)
	}
	return &result, nil
}

// decodeError turns a non-2xx response into an error carrying the backend's
// detail text when present.
func (c *Client) decodeError(resp *http.Response) error {
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Detail != "" {
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, er.Detail)
	}
	return fmt.Errorf("backend returned status %d", resp.StatusCode)
}
