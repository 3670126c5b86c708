package agent

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/query"
)

var (
	weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

	dateRe     = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	meridiemRe = regexp.MustCompile(`\b(\d{1,2})(?::\d{2})?\s*(am|pm)\b`)
	clockRe    = regexp.MustCompile(`\b(\d{1,2}):\d{2}\b`)
	atHourRe   = regexp.MustCompile(`\b(?:at|hour)\s+(\d{1,2})\b`)
)

// rule maps question keywords to an operation. Rules are tried in order.
type rule struct {
	keywords  []string
	operation string
	columns   []string
}

var rules = []rule{
	{keywords: []string{"hot zone", "hotzone", "hotspot", "hot spot"}, operation: query.OpHotzones},
	{keywords: []string{"predict", "demand", "expect", "forecast"}, operation: query.OpPredictDemand},
	{keywords: []string{"large group", "big group", "large-group"}, operation: query.OpLargeGroupShare},
	{keywords: []string{"peak", "busiest hour", "busiest time", "rush"}, operation: query.OpPeakHours},
	{keywords: []string{"pickup", "pick up", "pick-up"}, operation: query.OpTopPickups},
	{keywords: []string{"dropoff", "drop off", "drop-off", "destination"}, operation: query.OpTopDropoffs},
	{keywords: []string{"age group", "ages", "how old"}, operation: query.OpGroupCount, columns: []string{"age_group"}},
	{keywords: []string{"summary", "summarize", "overview"}, operation: query.OpWeekdaySummary},
	{keywords: []string{"how many", "count", "number of", "total"}, operation: query.OpTripCount},
}

// KeywordAgent maps questions to plans with fixed keyword rules. It needs no
// network access and always produces the same plan for the same question.
type KeywordAgent struct{}

// NewKeywordAgent creates a keyword agent
func NewKeywordAgent() *KeywordAgent {
	return &KeywordAgent{}
}

// Compute derives a plan from the question and executes it
func (a *KeywordAgent) Compute(ctx context.Context, question string, ds *dataset.Dataset) (*query.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan, err := PlanFor(question)
	if err != nil {
		return nil, err
	}
	return query.Execute(ds, plan)
}

// PlanFor builds the keyword plan for a question
func PlanFor(question string) (query.Plan, error) {
	q := strings.ToLower(question)

	var plan query.Plan
	for _, d := range weekdays {
		if strings.Contains(q, d) {
			plan.Day = d
			break
		}
	}
	if m := dateRe.FindStringSubmatch(q); m != nil {
		plan.Date = m[1]
	}
	if h, ok := hourOf(q); ok {
		plan.Hour = &h
	}

	for _, r := range rules {
		if containsAny(q, r.keywords) {
			plan.Operation = r.operation
			plan.Columns = r.columns
			break
		}
	}

	switch {
	case plan.Operation == query.OpWeekdaySummary && plan.Date != "":
		plan.Operation = query.OpDailySummary
	case plan.Operation == query.OpPredictDemand && plan.Day == "":
		plan.Day = predictor.DefaultDay
	case plan.Operation != "":
	case plan.Date != "":
		plan.Operation = query.OpDailySummary
	case plan.Day != "":
		plan.Operation = query.OpWeekdaySummary
	default:
		return query.Plan{}, ErrNoPlan
	}
	return plan, nil
}

// hourOf finds an hour of day in text: "9pm", "21:00" or "at 14"
func hourOf(q string) (int, bool) {
	if m := meridiemRe.FindStringSubmatch(q); m != nil {
		h, _ := strconv.Atoi(m[1])
		if h < 1 || h > 12 {
			return 0, false
		}
		h %= 12
		if m[2] == "pm" {
			h += 12
		}
		return h, true
	}
	for _, re := range []*regexp.Regexp{clockRe, atHourRe} {
		if m := re.FindStringSubmatch(q); m != nil {
			h, _ := strconv.Atoi(m[1])
			if h <= 23 {
				return h, true
			}
		}
	}
	return 0, false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
