package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/claritynotes/clarity-client/errors"
	dtochat "github.com/claritynotes/clarity-client/internal/adapter/dto/chat"
	dtocommon "github.com/claritynotes/clarity-client/internal/adapter/dto/common"
	dtomeeting "github.com/claritynotes/clarity-client/internal/adapter/dto/meeting"
	"github.com/claritynotes/clarity-client/internal/domain/entities"
	"github.com/claritynotes/clarity-client/internal/usecase/chat"
	pkgvalidator "github.com/claritynotes/clarity-client/pkg/validator"
)

// ChatController exposes the live chat relay
type ChatController struct {
	relay  *chat.Relay
	logger *zap.Logger
}

// NewChatController creates a new chat controller
func NewChatController(relay *chat.Relay, logger *zap.Logger) *ChatController {
	return &ChatController{relay: relay, logger: logger}
}

// Meetings returns the chat meeting roster
func (cc *ChatController) Meetings(c echo.Context) error {
	return HandleSuccess(cc.logger, c, dtomeeting.MeetingsResponse{Meetings: cc.relay.Meetings()})
}

// Messages returns the chat log with connection state
func (cc *ChatController) Messages(c echo.Context) error {
	return HandleSuccess(cc.logger, c, dtochat.LogResponse{
		Connected:       cc.relay.Connected(),
		SelectedMeeting: cc.relay.Selected(),
		Messages:        cc.relay.Messages(),
	})
}

// Send emits a message to the selected meeting
func (cc *ChatController) Send(c echo.Context) error {
	var req dtochat.SendRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(cc.logger, c, apperrors.ErrInvalidArgument("Invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(cc.logger, c, apperrors.ErrValidation(errors.New(pkgvalidator.Describe(err))))
	}

	if err := cc.relay.Send(req.Message); err != nil {
		return HandleError(cc.logger, c, mapChatError(err))
	}
	return HandleSuccess(cc.logger, c, dtocommon.StatusResponse{Status: "sent"})
}

// Select points the chat at a meeting
func (cc *ChatController) Select(c echo.Context) error {
	var req dtochat.SelectRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(cc.logger, c, apperrors.ErrInvalidArgument("Invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(cc.logger, c, apperrors.ErrValidation(errors.New(pkgvalidator.Describe(err))))
	}

	if err := cc.relay.Select(req.MeetingID); err != nil {
		return HandleError(cc.logger, c, apperrors.ErrNotFound("Meeting"))
	}
	return HandleSuccess(cc.logger, c, dtocommon.StatusResponse{Status: "selected"})
}

func mapChatError(err error) error {
	switch {
	case errors.Is(err, entities.ErrEmptyMessage):
		return apperrors.ErrInvalidArgument(entities.ErrEmptyMessage.Error())
	case errors.Is(err, entities.ErrNoMeetingSelected):
		return apperrors.ErrInvalidArgument(entities.ErrNoMeetingSelected.Error())
	case errors.Is(err, entities.ErrNotConnected):
		return apperrors.ErrChatDisconnected()
	}
	return apperrors.ErrInternal(err)
}
