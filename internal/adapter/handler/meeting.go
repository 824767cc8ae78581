package handler

import (
	"encoding/json"
	stderrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/claritynotes/clarity-client/errors"
	dtocommon "github.com/claritynotes/clarity-client/internal/adapter/dto/common"
	dtomeeting "github.com/claritynotes/clarity-client/internal/adapter/dto/meeting"
	"github.com/claritynotes/clarity-client/internal/adapter/presenter"
	"github.com/claritynotes/clarity-client/internal/domain/entities"
	"github.com/claritynotes/clarity-client/internal/infrastructure/backend"
	pkgvalidator "github.com/claritynotes/clarity-client/pkg/validator"
)

// maxUploadSize caps audio uploads at 25MB, matching the backend's own limit
// so oversized files are rejected before leaving the machine.
const maxUploadSize = 25 << 20

// MeetingController handles meeting upload processing and feedback
type MeetingController struct {
	api    *backend.Client
	store  *ResultStore
	logger *zap.Logger
}

// NewMeetingController creates a new meeting controller
func NewMeetingController(api *backend.Client, store *ResultStore, logger *zap.Logger) *MeetingController {
	return &MeetingController{api: api, store: store, logger: logger}
}

// Process uploads a meeting recording for processing and returns the
// structured insight built from the backend's result.
func (mc *MeetingController) Process(c echo.Context) error {
	var opts dtomeeting.ProcessOptions
	if raw := c.FormValue("input"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			return HandleError(mc.logger, c, apperrors.ErrInvalidArgument("Invalid input JSON"))
		}
	}
	opts.ApplyDefaults()

	if opts.NotifySlack && opts.Channel == "" {
		return HandleError(mc.logger, c, apperrors.ErrInvalidArgument(entities.ErrChannelRequired.Error()))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(mc.logger, c, apperrors.ErrInvalidArgument(entities.ErrMissingFile.Error()))
	}
	if fileHeader.Size > maxUploadSize {
		return HandleError(mc.logger, c, apperrors.ErrInvalidArgument(entities.ErrFileTooLarge.Error()))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(mc.logger, c, apperrors.ErrInternal(err))
	}
	defer file.Close()

	input := entities.MeetingInput{
		Language:                opts.Language,
		NotifySlack:             opts.NotifySlack,
		Channel:                 opts.Channel,
		Industry:                opts.Industry,
		UserID:                  opts.UserID,
		MeetingTitle:            opts.MeetingTitle,
		CustomPromptDescription: opts.CustomPromptDescription,
	}

	result, err := mc.api.ProcessMeeting(c.Request().Context(), input, fileHeader.Filename, file)
	if err != nil {
		return HandleError(mc.logger, c, apperrors.ErrBackendFailure("process meeting", err))
	}

	mc.store.PresentResult(result)

	if mc.logger != nil {
		mc.logger.Info("meeting processed",
			zap.String("meeting_title", opts.MeetingTitle),
			zap.String("filename", fileHeader.Filename),
		)
	}
	return HandleSuccess(mc.logger, c, presenter.BuildInsightView(result))
}

// Results returns the latest insight, from either an upload or a recording
// session fetch.
func (mc *MeetingController) Results(c echo.Context) error {
	result, lastErr := mc.store.Snapshot()
	if result == nil {
		if lastErr != nil {
			return HandleError(mc.logger, c, lastErr)
		}
		return HandleError(mc.logger, c, apperrors.ErrNotFound("Results"))
	}

	view := presenter.BuildInsightView(result)
	if lastErr != nil {
		// A stale-but-present result with a newer failed fetch: serve the
		// result, surface the failure alongside it.
		return HandleSuccess(mc.logger, c, map[string]interface{}{
			"result": view,
			"error":  lastErr.Error(),
		})
	}
	return HandleSuccess(mc.logger, c, view)
}

// Feedback submits a rating for a meeting. Validation failures never reach
// the backend.
func (mc *MeetingController) Feedback(c echo.Context) error {
	var req dtomeeting.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(mc.logger, c, apperrors.ErrInvalidArgument("Invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(mc.logger, c, apperrors.ErrValidation(stderrors.New(pkgvalidator.Describe(err))))
	}

	fb := entities.Feedback{MeetingID: req.MeetingID, Rating: req.Rating, Comments: req.Comments}
	if err := mc.api.SubmitFeedback(c.Request().Context(), fb); err != nil {
		return HandleError(mc.logger, c, apperrors.ErrBackendFailure("submit feedback", err))
	}

	return HandleSuccess(mc.logger, c, dtocommon.StatusResponse{Status: "Feedback saved"})
}
