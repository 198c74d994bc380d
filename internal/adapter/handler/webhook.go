package handler

import (
	"io"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/transcript-search/errors"
	transcriptUsecase "github.com/johnquangdev/transcript-search/internal/usecase/transcript"
	"github.com/johnquangdev/transcript-search/pkg/webhook"
)

// maxWebhookBody bounds the webhook payload read into memory
const maxWebhookBody = 1 << 20

// Webhook handles transcription provider callbacks
type Webhook struct {
	transcriptService transcriptUsecase.Service
	logger            *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(transcriptService transcriptUsecase.Service, logger *zap.Logger) *Webhook {
	return &Webhook{
		transcriptService: transcriptService,
		logger:            logger,
	}
}

// HandleAssemblyAIWebhook receives completion webhooks from AssemblyAI
// @Summary      AssemblyAI webhook
// @Description  Imports a transcript when AssemblyAI reports it completed. The body is verified with HMAC-SHA256 when a webhook secret is configured.
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        meeting_id           query     string  true   "Meeting the transcript belongs to (UUID)"
// @Param        X-Webhook-Signature  header    string  false  "HMAC-SHA256 of the body, hex encoded"
// @Success      200  {object}  common.SuccessResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      401  {object}  common.ErrorResponse
// @Router       /webhooks/assemblyai [post]
func (h *Webhook) HandleAssemblyAIWebhook(c echo.Context) error {
	meetingID, err := uuid.Parse(c.QueryParam("meeting_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting_id query parameter is required").
			WithDetail("meeting_id", c.QueryParam("meeting_id")))
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		appErr := errors.ErrInvalidPayload()
		appErr.Raw = err
		return HandleError(h.logger, c, appErr)
	}

	t, err := h.transcriptService.HandleWebhook(c.Request().Context(), transcriptUsecase.WebhookInput{
		Payload:   body,
		Signature: c.Request().Header.Get(webhook.SignatureHeader),
		MeetingID: meetingID,
	})
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}

	resp := map[string]interface{}{"status": "ignored"}
	if t != nil {
		resp["status"] = "imported"
		resp["transcript_id"] = t.ID.String()
	}
	return HandleSuccess(h.logger, c, resp)
}
