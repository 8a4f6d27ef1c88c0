// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/service"
)

// Error and hint messages.
const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgUnknownCommand    = "Unknown command. Send /help to see what I can do."
	msgUseCommands       = "I understand commands only. Send /help for the list."
	msgLogUsage          = "Usage: /log <language> <activity> <duration> [note]\nExample: /log es reading 45m chapter two"
	msgUnknownLanguage   = "You are not learning this language. Send /languages to see your list."
	msgUnknownActivity   = "Unknown activity. Use one of: reading, writing, listening, speaking, vocabulary, grammar, immersion, other."
	msgBadDuration       = "Duration must be a number of minutes or look like 1h30m."
	msgUseStats          = "Usage: /stats [week|month|year]"
	msgNoLanguages       = "You have no languages yet. Add one in the web app to start logging."
	msgNoGoals           = "You have no active goals yet."
	msgStatsUnavailable  = "Statistics are unavailable right now. Please try again later."
	msgGoalsUnavailable  = "Goals are unavailable right now. Please try again later."
	msgStreakUnavailable = "Your streak is unavailable right now. Please try again later."
)

const dayLayout = "2006-01-02"

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// humanize turns enum values like UPPER_INTERMEDIATE into "Upper intermediate".
func humanize(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func welcomeMessage(name string) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Hi, %s! 👋", name)))
	sb.WriteString("\n\n")
	sb.WriteString(md("I keep track of your language learning: study sessions, goals, statistics and your daily streak."))
	sb.WriteString("\n\n")
	sb.WriteString(helpMessage())

	return sb.String()
}

func helpMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Commands"))
	sb.WriteString("\n\n")
	sb.WriteString(md("📚 /languages: languages you are learning"))
	sb.WriteString("\n")
	sb.WriteString(md("✍️ /log es reading 45m [note]: log a study session"))
	sb.WriteString("\n")
	sb.WriteString(md("📊 /stats [week|month|year]: your statistics"))
	sb.WriteString("\n")
	sb.WriteString(md("🎯 /goals: goals and progress"))
	sb.WriteString("\n")
	sb.WriteString(md("🔥 /streak: consecutive days of study"))

	return sb.String()
}

func formatLanguages(languages []entities.LanguageProgress) string {
	var sb strings.Builder

	sb.WriteString(bold("📚 Your languages"))
	sb.WriteString("\n\n")
	for _, p := range languages {
		sb.WriteString(md(fmt.Sprintf("• %s (%s): %s, %s studied",
			p.Language.Name,
			p.Language.Code,
			humanize(string(p.Level)),
			entities.FormatMinutes(p.TotalMinutes),
		)))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func formatSessionLogged(languageName string, sess *entities.StudySession) string {
	text := fmt.Sprintf("✅ Logged %s of %s in %s.",
		entities.FormatMinutes(sess.Duration),
		strings.ToLower(humanize(string(sess.Type))),
		languageName,
	)
	return md(text)
}

func formatStreak(streak int) string {
	if streak == 0 {
		return md("You have no streak yet. Log a session today to start one!")
	}
	return bold(fmt.Sprintf("🔥 Current streak: %s", pluralDays(streak)))
}

func formatStatistics(s service.Statistics) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("📊 Last %s", pluralDays(s.Days))))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("⏱ Total: %s\n", entities.FormatMinutes(s.TotalMinutes))))
	sb.WriteString(md(fmt.Sprintf("📅 Daily average: %s\n", entities.FormatMinutes(s.AverageMinutesPerDay))))
	sb.WriteString(md(fmt.Sprintf("🔥 Streak: %s", pluralDays(s.CurrentStreak))))

	if s.TotalMinutes == 0 {
		sb.WriteString("\n\n")
		sb.WriteString(md("No sessions in this period yet."))
		return sb.String()
	}

	sb.WriteString("\n\n")
	sb.WriteString(bold("By activity"))
	for _, t := range entities.ActivityTypes {
		if minutes := s.Distribution[t]; minutes > 0 {
			sb.WriteString("\n")
			sb.WriteString(md(fmt.Sprintf("%s: %s", humanize(string(t)), entities.FormatMinutes(minutes))))
		}
	}

	// A day-by-day chart only fits the weekly view.
	if s.Timeframe != entities.TimeframeWeek {
		return sb.String()
	}

	busiest := 0
	for _, d := range s.Daily {
		busiest = max(busiest, dayTotal(d))
	}

	sb.WriteString("\n\n")
	sb.WriteString(bold("By day"))
	for _, d := range s.Daily {
		label := d.Date
		if day, err := time.Parse(dayLayout, d.Date); err == nil {
			label = day.Format("Mon 02")
		}
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %s %s", label, buildProgressBar(dayTotal(d), busiest, 8), entities.FormatMinutes(dayTotal(d)))))
	}

	return sb.String()
}

func dayTotal(d service.DailyActivity) int {
	return d.Reading + d.Listening + d.Speaking + d.Writing
}

func goalIcon(status entities.GoalStatus) string {
	switch status {
	case entities.GoalCompleted:
		return "✅"
	case entities.GoalInProgress:
		return "📖"
	default:
		return "⏳"
	}
}

func formatGoals(list service.GoalList) string {
	var sb strings.Builder

	sb.WriteString(bold("🎯 Your goals"))
	for _, g := range list.Goals {
		sb.WriteString("\n\n")
		sb.WriteString(goalIcon(g.Status) + " ")
		sb.WriteString(bold(fmt.Sprintf("%s · %s", g.LanguageName, humanize(string(g.ActivityType)))))
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %s / %s (%.0f%%)",
			buildProgressBar(g.Progress, g.TargetMinutes, 10),
			entities.FormatMinutes(g.Progress),
			entities.FormatMinutes(g.TargetMinutes),
			g.Percent,
		)))
		if g.Deadline != nil {
			sb.WriteString("\n")
			sb.WriteString(md("⏰ Deadline: " + g.Deadline.Format(dayLayout)))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Active: %d · Completed: %d · Success rate: %.1f%%\n🔥 Streak: %s",
		list.Summary.ActiveGoals,
		list.Summary.CompletedGoals,
		list.Summary.SuccessRate,
		pluralDays(list.Summary.CurrentStreak),
	)))

	return sb.String()
}

// buildReminderNotification builds reminder notification message.
func buildReminderNotification(payload entities.ReminderPayload) string {
	var sb strings.Builder

	name := payload.UserName
	if name == "" {
		name = "Hey"
	}

	sb.WriteString(bold(fmt.Sprintf("🔥 %s, keep your %s streak alive!", name, pluralDays(payload.CurrentStreak))))
	sb.WriteString("\n\n")
	sb.WriteString(md("You have not studied today yet. Even 10 minutes count: /log es listening 10m"))

	return sb.String()
}
