package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling turns a handler error into a reply. Input and validation
// problems go back to the user as is; anything else is logged and answered
// with a generic message.
func (h *Handler) withErrorHandling(command string, fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)

		var input inputError
		switch {
		case err == nil:
		case errors.As(err, &input):
			h.sendError(chatID, input.msg)
		case errors.Is(err, entities.ErrValidation):
			h.sendError(chatID, "⚠️ "+err.Error())
		default:
			h.logger.Error("command failed",
				zap.String("command", command),
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}

		return nil
	}
}
