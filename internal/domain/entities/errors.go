package entities

import "errors"

// Recording session errors
var (
	ErrRecordingInProgress = errors.New("recording already in progress")
	ErrNoActiveRecording   = errors.New("no active recording")
	ErrResultsNotReady     = errors.New("transcription results not yet available")
)

// Chat relay errors
var (
	ErrNotConnected      = errors.New("chat is not connected")
	ErrNoMeetingSelected = errors.New("no meeting selected")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrUnknownMeeting    = errors.New("meeting is not in the roster")
)

// Upload / feedback validation errors
var (
	ErrMissingFile        = errors.New("an audio file is required")
	ErrFileTooLarge       = errors.New("file size exceeds 25MB limit")
	ErrChannelRequired    = errors.New("channel required when notify_slack is true")
	ErrMissingMeetingID   = errors.New("meeting_id is required")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)
