package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/clock"
)

// Commands is the command menu registered with Telegram.
var Commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Start the bot"},
	{Command: "languages", Description: "Languages you are learning"},
	{Command: "log", Description: "Log a study session: /log es reading 45m"},
	{Command: "stats", Description: "Statistics for a week, month or year"},
	{Command: "goals", Description: "Goals and their progress"},
	{Command: "streak", Description: "Current study streak"},
	{Command: "help", Description: "Help"},
}

type Handler struct {
	bot               *tgbotapi.BotAPI
	logger            *zap.Logger
	clock             clock.Clock
	userService       UserService
	languageService   LanguageService
	sessionService    SessionService
	goalService       GoalService
	statisticsService StatisticsService
	streakService     StreakService
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	clk clock.Clock,
	userService UserService,
	languageService LanguageService,
	sessionService SessionService,
	goalService GoalService,
	statisticsService StatisticsService,
	streakService StreakService,
) *Handler {
	return &Handler{
		bot:               bot,
		logger:            logger,
		clock:             clk,
		userService:       userService,
		languageService:   languageService,
		sessionService:    sessionService,
		goalService:       goalService,
		statisticsService: statisticsService,
		streakService:     streakService,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("telegram_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	from := update.Message.From

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", update.Message.Text),
	)

	userID, err := h.userService.EnsureTelegramUser(ctx, from.ID, chatID, from.FirstName)
	if err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("telegram_id", from.ID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return
	}

	if !update.Message.IsCommand() {
		_ = h.send(newMessage(chatID, md(msgUseCommands)))
		return
	}

	args := update.Message.CommandArguments()

	switch update.Message.Command() {
	case "start":
		_ = h.send(newMessage(chatID, welcomeMessage(from.FirstName)))

	case "help":
		_ = h.send(newMessage(chatID, helpMessage()))

	case "languages":
		_ = h.withErrorHandling("languages", h.handleLanguages(userID))(ctx, chatID)

	case "log":
		_ = h.withErrorHandling("log", h.handleLog(userID, args))(ctx, chatID)

	case "stats":
		_ = h.withErrorHandling("stats", h.handleStats(userID, args))(ctx, chatID)

	case "goals":
		_ = h.withErrorHandling("goals", h.handleGoals(userID))(ctx, chatID)

	case "streak":
		_ = h.withErrorHandling("streak", h.handleStreak(userID))(ctx, chatID)

	default:
		_ = h.send(newMessage(chatID, md(msgUnknownCommand)))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newMessage(chatID, md(text)))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return err
	}
	return nil
}
