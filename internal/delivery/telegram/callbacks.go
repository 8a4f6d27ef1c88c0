package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer h.answerCallback(cb)

	if cb.Message == nil {
		return
	}

	// Buttons only exist on messages sent to registered users.
	userID := entities.TelegramUserID(cb.From.ID)
	data := decodeCallback(cb.Data)

	var (
		text string
		kb   tgbotapi.InlineKeyboardMarkup
	)

	switch data.Action {
	case actionStats:
		tf, ok := parseTimeframe(data.param(0))
		if !ok {
			h.logger.Warn("invalid stats callback", zap.String("data", data.Raw))
			return
		}
		text = h.renderStats(ctx, userID, tf)
		kb = buildStatsKeyboard(tf)

	case actionGoals:
		text = h.renderGoals(ctx, userID)
		kb = buildGoalsKeyboard()

	default:
		h.logger.Warn("unknown callback", zap.String("data", data.Raw))
		return
	}

	edit := newEdit(cb.Message.Chat.ID, cb.Message.MessageID, text)
	edit.ReplyMarkup = &kb
	_ = h.send(edit)
}

// answerCallback removes the loading indicator on the pressed button.
func (h *Handler) answerCallback(cb *tgbotapi.CallbackQuery) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
