package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/claritynotes/clarity-client/errors"
	dtocommon "github.com/claritynotes/clarity-client/internal/adapter/dto/common"
	dtosession "github.com/claritynotes/clarity-client/internal/adapter/dto/session"
	"github.com/claritynotes/clarity-client/internal/domain/entities"
	"github.com/claritynotes/clarity-client/internal/usecase/recording"
)

// SessionController exposes the real-time recording session
type SessionController struct {
	ctrl   *recording.Controller
	logger *zap.Logger
}

// NewSessionController creates a new session controller
func NewSessionController(ctrl *recording.Controller, logger *zap.Logger) *SessionController {
	return &SessionController{ctrl: ctrl, logger: logger}
}

// Start begins a recording session
func (sc *SessionController) Start(c echo.Context) error {
	var req dtosession.StartRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(sc.logger, c, apperrors.ErrInvalidArgument("Invalid payload"))
	}
	req.ApplyDefaults()

	cfg := entities.RecordingConfig{
		Language:                req.Language,
		Industry:                req.Industry,
		UserID:                  req.UserID,
		MeetingTitle:            req.MeetingTitle,
		CustomPromptDescription: req.CustomPromptDescription,
	}
	if err := sc.ctrl.Start(c.Request().Context(), cfg); err != nil {
		return HandleError(sc.logger, c, err)
	}

	return HandleSuccess(sc.logger, c, dtocommon.StatusResponse{Status: "Recording started"})
}

// Stop ends the active recording session and triggers a result fetch
func (sc *SessionController) Stop(c echo.Context) error {
	if err := sc.ctrl.Stop(c.Request().Context()); err != nil {
		return HandleError(sc.logger, c, err)
	}
	return HandleSuccess(sc.logger, c, dtocommon.StatusResponse{Status: "Recording stopped"})
}

// Status reports the session's lifecycle phase
func (sc *SessionController) Status(c echo.Context) error {
	return HandleSuccess(sc.logger, c, dtosession.StatusResponse{Phase: sc.ctrl.Phase().String()})
}
