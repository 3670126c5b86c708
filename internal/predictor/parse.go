package predictor

import (
	"strconv"
	"strings"
)

// Defaults used when the text does not name a day or an hour
const (
	DefaultDay  = "friday"
	DefaultHour = 12
)

// ParseDayHour reads phrases like "Friday 6 PM". The first token is the day
// and the second the hour. When "pm" appears anywhere in the text an hour
// below 12 is moved to the afternoon. A missing or non-numeric hour becomes
// 12, and empty text becomes friday at 12.
func ParseDayHour(text string) (string, int) {
	lower := strings.ToLower(text)
	pm := strings.Contains(lower, "pm")
	cleaned := strings.ReplaceAll(strings.ReplaceAll(lower, "pm", ""), "am", "")
	parts := strings.Fields(cleaned)

	switch len(parts) {
	case 0:
		return DefaultDay, DefaultHour
	case 1:
		return parts[0], DefaultHour
	}

	day := parts[0]
	hour, err := strconv.Atoi(parts[1])
	if err != nil {
		return day, DefaultHour
	}
	if pm && hour < 12 {
		hour += 12
	}
	return day, hour
}
