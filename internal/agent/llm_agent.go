package agent

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/llm"
	"github.com/rideshareai/rideshare-backend-go/internal/query"
)

//go:embed prompts/plan.md
var planPrompt string

// LLMAgent asks a completer for a query plan and executes it
type LLMAgent struct {
	llm llm.Completer
	log *slog.Logger
}

// NewLLMAgent creates an agent backed by c
func NewLLMAgent(c llm.Completer, log *slog.Logger) *LLMAgent {
	if log == nil {
		log = slog.Default()
	}
	return &LLMAgent{llm: c, log: log}
}

// Compute makes a single completion call; any failure is returned
func (a *LLMAgent) Compute(ctx context.Context, question string, ds *dataset.Dataset) (*query.Result, error) {
	user := fmt.Sprintf("%s\nQuestion: %s", ds.Context().String(), question)

	out, err := a.llm.Complete(ctx, planPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("plan completion: %w", err)
	}

	plan, err := ParsePlan(out)
	if err != nil {
		a.log.Warn("failed to parse query plan", "error", err, "response", truncate(out, 300))
		return nil, err
	}
	a.log.Debug("query plan", "operation", plan.Operation, "day", plan.Day, "date", plan.Date, "columns", plan.Columns)

	return query.Execute(ds, plan)
}

// ParsePlan extracts a JSON query plan from a completion, which may be
// wrapped in a markdown code block or surrounded by prose.
func ParsePlan(response string) (query.Plan, error) {
	raw := extractJSON(response)
	if raw == "" {
		return query.Plan{}, ErrNoPlan
	}
	var plan query.Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return query.Plan{}, fmt.Errorf("%w: %w", ErrNoPlan, err)
	}
	if strings.TrimSpace(plan.Operation) == "" {
		return query.Plan{}, fmt.Errorf("%w: missing operation", ErrNoPlan)
	}
	return plan, nil
}

func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if start := strings.Index(response, "```"); start != -1 {
		start += 3
		if end := strings.Index(response[start:], "```"); end != -1 {
			block := strings.TrimSpace(response[start : start+end])
			block = strings.TrimSpace(strings.TrimPrefix(block, "json"))
			if strings.HasPrefix(block, "{") {
				return extractObject(block, 0)
			}
		}
	}

	if start := strings.Index(response, "{"); start != -1 {
		return extractObject(response, start)
	}
	return ""
}

// extractObject returns the balanced JSON object starting at s[start]
func extractObject(s string, start int) string {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
