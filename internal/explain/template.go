package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/query"
)

const noMatches = "No matching trips found."

// TemplateExplainer renders results as fixed markdown templates
type TemplateExplainer struct{}

// NewTemplateExplainer creates a template explainer
func NewTemplateExplainer() *TemplateExplainer {
	return &TemplateExplainer{}
}

// Explain renders result. Unknown result types are rendered as JSON.
func (e *TemplateExplainer) Explain(ctx context.Context, _ string, result any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Render(result)
}

// Render formats a computed result as markdown
func Render(result any) (string, error) {
	scope := ""
	if r, ok := result.(*query.Result); ok {
		if r == nil {
			return noMatches, nil
		}
		scope = describe(r.Plan)
		result = r.Value
	}

	var b strings.Builder
	switch v := result.(type) {
	case int:
		fmt.Fprintf(&b, "There were **%d** trips%s.", v, scope)

	case []models.GroupCount:
		if len(v) == 0 {
			return noMatches, nil
		}
		fmt.Fprintf(&b, "Trips by group%s:\n", scope)
		for _, g := range v {
			fmt.Fprintf(&b, "\n- %s: **%d**", orNone(g.Key), g.Count)
		}

	case models.WeekdaySummary:
		writeSummary(&b, titleCase(v.Day), v.Summary)
	case []models.WeekdaySummary:
		if len(v) == 0 {
			return noMatches, nil
		}
		for i, s := range v {
			if i > 0 {
				b.WriteString("\n\n")
			}
			writeSummary(&b, titleCase(s.Day), s.Summary)
		}

	case models.DailySummary:
		writeSummary(&b, dailyTitle(v), v.Summary)
	case []models.DailySummary:
		if len(v) == 0 {
			return noMatches, nil
		}
		for i, s := range v {
			if i > 0 {
				b.WriteString("\n\n")
			}
			writeSummary(&b, dailyTitle(s), s.Summary)
		}

	case []models.Hotzone:
		if len(v) == 0 {
			return noMatches, nil
		}
		fmt.Fprintf(&b, "Top drop-off hot zones%s:\n", scope)
		for i, z := range v {
			fmt.Fprintf(&b, "\n%d. %s (%.4f, %.4f): **%d** trips", i+1, orNone(z.Name), z.Lat, z.Lng, z.Count)
		}

	case predictor.Prediction:
		if !v.Found() {
			return v.Message(), nil
		}
		fmt.Fprintf(&b, "Historical demand on **%s** at **%02d:00**: **%d** trips.", titleCase(v.Day), v.Hour, v.Count)

	case []models.NameCount:
		if len(v) == 0 {
			return noMatches, nil
		}
		fmt.Fprintf(&b, "Top locations%s:\n", scope)
		for i, n := range v {
			fmt.Fprintf(&b, "\n%d. %s: **%d** trips", i+1, orNone(n.Name), n.Count)
		}

	case []models.HourCount:
		if len(v) == 0 {
			return noMatches, nil
		}
		fmt.Fprintf(&b, "Busiest hours%s:\n", scope)
		for i, h := range v {
			fmt.Fprintf(&b, "\n%d. %02d:00: **%d** trips", i+1, h.Hour, h.Count)
		}

	case query.LargeGroupShare:
		if v.TotalRides == 0 {
			return noMatches, nil
		}
		fmt.Fprintf(&b, "**%d** of **%d** trips%s were large groups (%.1f%%).", v.LargeGroups, v.TotalRides, scope, v.Share*100)

	default:
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintf(&b, "```json\n%s\n```", raw)
	}
	return b.String(), nil
}

func writeSummary(b *strings.Builder, title string, s models.Summary) {
	fmt.Fprintf(b, "**%s**: %d rides, %.2f passengers on average.", title, s.TotalRides, s.AvgPassengers)
	if s.TotalRides == 0 {
		return
	}
	fmt.Fprintf(b, "\n\n- Top pickups: %s", joinNames(s.TopPickups))
	fmt.Fprintf(b, "\n- Top drop-offs: %s", joinNames(s.TopDropoffs))

	hours := make([]string, len(s.PeakHours))
	for i, h := range s.PeakHours {
		hours[i] = fmt.Sprintf("%02d:00 (%d)", h.Hour, h.Count)
	}
	fmt.Fprintf(b, "\n- Peak hours: %s", strings.Join(hours, ", "))
}

func joinNames(names []models.NameCount) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s (%d)", orNone(n.Name), n.Count)
	}
	return strings.Join(parts, ", ")
}

func dailyTitle(s models.DailySummary) string {
	if s.Weekday == "" {
		return s.Date
	}
	return fmt.Sprintf("%s, %s", titleCase(s.Weekday), s.Date)
}

// describe renders the filters of a plan as a phrase
func describe(p query.Plan) string {
	var parts []string
	if p.Day != "" {
		parts = append(parts, "on "+titleCase(p.Day))
	}
	if p.Date != "" {
		parts = append(parts, "on "+p.Date)
	}
	if p.Hour != nil {
		parts = append(parts, fmt.Sprintf("at %02d:00", *p.Hour))
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
