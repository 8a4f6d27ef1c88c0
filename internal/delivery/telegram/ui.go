package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

// buildStatsKeyboard builds the timeframe switcher; the current one is marked.
func buildStatsKeyboard(current entities.Timeframe) tgbotapi.InlineKeyboardMarkup {
	button := func(tf entities.Timeframe, label string) tgbotapi.InlineKeyboardButton {
		if tf == current {
			label = "• " + label + " •"
		}
		return tgbotapi.NewInlineKeyboardButtonData(label, buildStatsCallback(tf))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button(entities.TimeframeWeek, "Week"),
			button(entities.TimeframeMonth, "Month"),
			button(entities.TimeframeYear, "Year"),
		),
	)
}

// buildGoalsKeyboard builds keyboard for goals screen.
func buildGoalsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh", buildGoalsRefreshCallback()),
			tgbotapi.NewInlineKeyboardButtonData("📊 This week", buildStatsCallback(entities.TimeframeWeek)),
		),
	)
}
