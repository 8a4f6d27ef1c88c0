package telegram

import (
	"strings"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

// Callback action constants.
const (
	actionStats = "stats"
	actionGoals = "goals"
)

// Goals sub-actions.
const (
	goalsRefresh = "refresh"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func (cd callbackData) param(i int) string {
	if i < len(cd.Params) {
		return cd.Params[i]
	}
	return ""
}

// buildStatsCallback builds callback data for switching the statistics timeframe.
func buildStatsCallback(tf entities.Timeframe) string {
	return callbackData{
		Action: actionStats,
		Params: []string{string(tf)},
	}.encode()
}

func buildGoalsRefreshCallback() string {
	return callbackData{
		Action: actionGoals,
		Params: []string{goalsRefresh},
	}.encode()
}
