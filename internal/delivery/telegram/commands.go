package telegram

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/service"
)

// inputError is a problem with the user's command, shown back as is.
type inputError struct{ msg string }

func (e inputError) Error() string { return e.msg }

type logRequest struct {
	LanguageID   string
	LanguageName string
	Type         entities.ActivityType
	Minutes      int
	Note         string
}

// parseLogArgs reads "<language> <activity> <duration> [note]". The
// language is matched by code or name among the user's languages.
func parseLogArgs(args string, languages []entities.LanguageProgress) (logRequest, error) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return logRequest{}, inputError{msgLogUsage}
	}

	var req logRequest
	for _, p := range languages {
		if strings.EqualFold(p.Language.Code, fields[0]) || strings.EqualFold(p.Language.Name, fields[0]) {
			req.LanguageID, req.LanguageName = p.LanguageID, p.Language.Name
			break
		}
	}
	if req.LanguageID == "" {
		return logRequest{}, inputError{msgUnknownLanguage}
	}

	typ, ok := entities.ParseActivityType(fields[1])
	if !ok {
		return logRequest{}, inputError{msgUnknownActivity}
	}
	req.Type = typ

	minutes, err := entities.ParseDuration(fields[2])
	if err != nil {
		return logRequest{}, inputError{msgBadDuration}
	}
	req.Minutes = minutes
	req.Note = strings.Join(fields[3:], " ")

	return req, nil
}

// parseTimeframe accepts week, month or year; empty means week.
func parseTimeframe(s string) (entities.Timeframe, bool) {
	switch tf := entities.Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case "":
		return entities.TimeframeWeek, true
	case entities.TimeframeWeek, entities.TimeframeMonth, entities.TimeframeYear:
		return tf, true
	default:
		return "", false
	}
}

func (h *Handler) handleLanguages(userID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		languages, err := h.languageService.List(ctx, userID)
		if err != nil {
			return err
		}
		if len(languages) == 0 {
			return h.send(newMessage(chatID, md(msgNoLanguages)))
		}
		return h.send(newMessage(chatID, formatLanguages(languages)))
	}
}

func (h *Handler) handleLog(userID, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		languages, err := h.languageService.List(ctx, userID)
		if err != nil {
			return err
		}
		if len(languages) == 0 {
			return h.send(newMessage(chatID, md(msgNoLanguages)))
		}

		req, err := parseLogArgs(args, languages)
		if err != nil {
			return err
		}

		sess, err := h.sessionService.Create(ctx, userID, service.SessionInput{
			LanguageID:      req.LanguageID,
			Type:            req.Type,
			Date:            h.clock.Now(),
			DurationMinutes: req.Minutes,
			Description:     req.Note,
		})
		if err != nil {
			return err
		}

		return h.send(newMessage(chatID, formatSessionLogged(req.LanguageName, sess)))
	}
}

func (h *Handler) handleStats(userID, args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		tf, ok := parseTimeframe(args)
		if !ok {
			return h.send(newMessage(chatID, md(msgUseStats)))
		}

		msg := newMessage(chatID, h.renderStats(ctx, userID, tf))
		msg.ReplyMarkup = buildStatsKeyboard(tf)
		return h.send(msg)
	}
}

func (h *Handler) handleGoals(userID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newMessage(chatID, h.renderGoals(ctx, userID))
		msg.ReplyMarkup = buildGoalsKeyboard()
		return h.send(msg)
	}
}

func (h *Handler) handleStreak(userID string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		streak, err := h.streakService.Get(ctx, userID)
		if err != nil {
			h.logger.Error("failed to get streak", zap.String("user_id", userID), zap.Error(err))
			return h.send(newMessage(chatID, md(msgStreakUnavailable)))
		}
		return h.send(newMessage(chatID, formatStreak(streak)))
	}
}

// renderStats falls back to a notice when statistics cannot be loaded.
func (h *Handler) renderStats(ctx context.Context, userID string, tf entities.Timeframe) string {
	stats, err := h.statisticsService.Get(ctx, userID, tf)
	if err != nil {
		h.logger.Error("failed to get statistics", zap.String("user_id", userID), zap.Error(err))
		return md(msgStatsUnavailable)
	}
	return formatStatistics(stats)
}

func (h *Handler) renderGoals(ctx context.Context, userID string) string {
	list, err := h.goalService.List(ctx, userID, "")
	if err != nil {
		h.logger.Error("failed to get goals", zap.String("user_id", userID), zap.Error(err))
		return md(msgGoalsUnavailable)
	}
	if len(list.Goals) == 0 {
		return md(msgNoGoals)
	}
	return formatGoals(list)
}
