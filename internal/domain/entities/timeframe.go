package entities

// Timeframe selects the statistics window.
type Timeframe string

const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// Days returns the window length. Anything other than week or month is a year.
func (t Timeframe) Days() int {
	switch t {
	case TimeframeWeek:
		return 7
	case TimeframeMonth:
		return 30
	default:
		return 365
	}
}
