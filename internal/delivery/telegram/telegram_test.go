package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
	"github.com/aliskhannn/lingua-tracker/internal/service"
)

var enrolled = []entities.LanguageProgress{
	{LanguageID: "lang-es", Language: entities.Language{ID: "lang-es", Name: "Spanish", Code: "es"}},
	{LanguageID: "lang-ja", Language: entities.Language{ID: "lang-ja", Name: "Japanese", Code: "ja"}},
}

func TestParseLogArgs(t *testing.T) {
	req, err := parseLogArgs("ES Reading 1h30m chapter two of the novel", enrolled)
	require.NoError(t, err)
	assert.Equal(t, logRequest{
		LanguageID:   "lang-es",
		LanguageName: "Spanish",
		Type:         entities.ActivityReading,
		Minutes:      90,
		Note:         "chapter two of the novel",
	}, req)

	req, err = parseLogArgs("japanese listening 45", enrolled)
	require.NoError(t, err)
	assert.Equal(t, "lang-ja", req.LanguageID)
	assert.Equal(t, 45, req.Minutes)
	assert.Empty(t, req.Note)
}

func TestParseLogArgsErrors(t *testing.T) {
	cases := map[string]string{
		"":                    msgLogUsage,
		"es reading":          msgLogUsage,
		"fr reading 30m":      msgUnknownLanguage,
		"es juggling 30m":     msgUnknownActivity,
		"es reading soon":     msgBadDuration,
		"es reading 0":        msgBadDuration,
		"es reading 90s":      msgBadDuration,
		"es reading -1h":      msgBadDuration,
		"es speaking 1h30x m": msgBadDuration,
	}
	for args, want := range cases {
		_, err := parseLogArgs(args, enrolled)
		require.Error(t, err, args)
		assert.Equal(t, want, err.Error(), args)
	}
}

func TestParseTimeframe(t *testing.T) {
	for in, want := range map[string]entities.Timeframe{
		"":        entities.TimeframeWeek,
		"week":    entities.TimeframeWeek,
		" Month ": entities.TimeframeMonth,
		"YEAR":    entities.TimeframeYear,
	} {
		tf, ok := parseTimeframe(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, tf, in)
	}

	_, ok := parseTimeframe("decade")
	assert.False(t, ok)
}

func TestBuildProgressBar(t *testing.T) {
	assert.Equal(t, "[░░░░]", buildProgressBar(5, 0, 4))
	assert.Equal(t, "[██░░]", buildProgressBar(30, 60, 4))
	assert.Equal(t, "[████]", buildProgressBar(90, 60, 4))
	assert.Equal(t, "[░░░░]", buildProgressBar(-5, 60, 4))
}

func TestCallbackData(t *testing.T) {
	cd := decodeCallback(buildStatsCallback(entities.TimeframeMonth))
	assert.Equal(t, actionStats, cd.Action)
	assert.Equal(t, "month", cd.param(0))
	assert.Empty(t, cd.param(1))

	cd = decodeCallback(buildGoalsRefreshCallback())
	assert.Equal(t, actionGoals, cd.Action)
	assert.Equal(t, goalsRefresh, cd.param(0))

	cd = decodeCallback("stats")
	assert.Equal(t, actionStats, cd.Action)
	assert.Empty(t, cd.Params)
}

func TestFormatGoals(t *testing.T) {
	text := formatGoals(service.GoalList{
		Goals: []service.GoalWithProgress{
			{
				Goal: entities.Goal{
					LanguageName:  "Spanish",
					ActivityType:  entities.ActivityReading,
					TargetMinutes: 120,
					Status:        entities.GoalInProgress,
				},
				Progress: 60,
				Percent:  50,
			},
		},
		Summary: service.GoalSummary{ActiveGoals: 1, CurrentStreak: 1},
	})

	assert.Contains(t, text, "📖")
	assert.Contains(t, text, "Spanish · Reading")
	assert.Contains(t, text, "1h 0m / 2h 0m")
	assert.Contains(t, text, "1 day")
}

func TestFormatStatistics(t *testing.T) {
	week := service.EmptyStatistics(entities.TimeframeWeek)
	assert.Contains(t, formatStatistics(week), "No sessions in this period yet")

	week.TotalMinutes = 75
	week.Distribution[entities.ActivityListening] = 75
	week.Daily = []service.DailyActivity{
		{Date: "2025-03-10", Listening: 75},
		{Date: "2025-03-11"},
	}
	text := formatStatistics(week)
	assert.Contains(t, text, "Listening: 1h 15m")
	assert.Contains(t, text, "Mon 10")
	assert.Contains(t, text, "Last 7 days")

	month := service.EmptyStatistics(entities.TimeframeMonth)
	month.TotalMinutes = 30
	month.Distribution[entities.ActivityGrammar] = 30
	text = formatStatistics(month)
	assert.Contains(t, text, "Grammar: 30m")
	assert.NotContains(t, text, "By day")
}

func TestFormatLanguages(t *testing.T) {
	text := formatLanguages([]entities.LanguageProgress{
		{LanguageID: "lang-es", Language: entities.Language{Name: "Spanish", Code: "es"}, Level: entities.LevelBeginner, TotalMinutes: 75},
	})
	assert.Contains(t, text, "Spanish")
	assert.Contains(t, text, "1h 15m studied")
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Upper intermediate", humanize(string(entities.LevelUpperIntermediate)))
	assert.Equal(t, "Reading", humanize(string(entities.ActivityReading)))
	assert.Empty(t, humanize(""))
}
