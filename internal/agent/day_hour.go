package agent

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed prompts/day_hour.md
var dayHourPrompt string

// DayHourExtractor rewrites a demand question as "<day> <hour>" text, the
// form predictor.ParseDayHour reads.
type DayHourExtractor interface {
	ExtractDayHour(ctx context.Context, question string) (string, error)
}

// ExtractDayHour asks the completer for the weekday and hour in question
func (a *LLMAgent) ExtractDayHour(ctx context.Context, question string) (string, error) {
	out, err := a.llm.Complete(ctx, dayHourPrompt, question)
	if err != nil {
		return "", fmt.Errorf("day hour completion: %w", err)
	}

	line := strings.TrimSpace(out)
	if i := strings.IndexByte(line, '\n'); i != -1 {
		line = line[:i]
	}
	line = strings.TrimSpace(strings.Trim(line, "`\"'."))
	if line == "" {
		return "", fmt.Errorf("%w: empty day hour", ErrNoPlan)
	}
	a.log.Debug("extracted day hour", "question", question, "text", line)
	return line, nil
}
