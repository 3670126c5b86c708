package explain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/query"
)

type countingCompleter struct {
	reply string
	err   error
	calls int
	user  string
}

func (c *countingCompleter) Complete(_ context.Context, _, user string) (string, error) {
	c.calls++
	c.user = user
	return c.reply, c.err
}

func TestLLMExplainer_CachesReplies(t *testing.T) {
	stub := &countingCompleter{reply: "  **42** trips.  "}
	e := NewLLMExplainer(stub, time.Minute, nil)
	result := map[string]int{"trips": 42}

	out, err := e.Explain(context.Background(), "How many trips?", result)
	require.NoError(t, err)
	require.Equal(t, "**42** trips.", out)
	require.Contains(t, stub.user, `{"trips":42}`)

	out, err = e.Explain(context.Background(), " how many trips? ", result)
	require.NoError(t, err)
	require.Equal(t, "**42** trips.", out)
	require.Equal(t, 1, stub.calls)

	_, err = e.Explain(context.Background(), "How many trips?", map[string]int{"trips": 7})
	require.NoError(t, err)
	require.Equal(t, 2, stub.calls)
}

func TestLLMExplainer_CacheIsBounded(t *testing.T) {
	stub := &countingCompleter{reply: "ok"}
	e := NewLLMExplainer(stub, time.Hour, nil)

	for i := 0; i < cacheCapacity+500; i++ {
		_, err := e.Explain(context.Background(), fmt.Sprintf("question %d", i), 1)
		require.NoError(t, err)
	}
	require.Equal(t, cacheCapacity, e.cache.Len())

	// the most recent question is still cached, the oldest was evicted
	calls := stub.calls
	_, err := e.Explain(context.Background(), fmt.Sprintf("question %d", cacheCapacity+499), 1)
	require.NoError(t, err)
	require.Equal(t, calls, stub.calls)

	_, err = e.Explain(context.Background(), "question 0", 1)
	require.NoError(t, err)
	require.Equal(t, calls+1, stub.calls)
}

func TestLLMExplainer_Errors(t *testing.T) {
	stub := &countingCompleter{err: errors.New("rate limited")}
	e := NewLLMExplainer(stub, 0, nil)

	_, err := e.Explain(context.Background(), "q", 1)
	require.Error(t, err)

	// failures are not cached
	_, err = e.Explain(context.Background(), "q", 1)
	require.Error(t, err)
	require.Equal(t, 2, stub.calls)

	_, err = e.Explain(context.Background(), "q", make(chan int))
	require.Error(t, err)
	require.Equal(t, 2, stub.calls)
}

func TestRender(t *testing.T) {
	hour := 21
	tests := []struct {
		name   string
		result any
		want   string
	}{
		{
			name:   "count with filters",
			result: &query.Result{Operation: query.OpTripCount, Plan: query.Plan{Day: "friday", Hour: &hour}, Value: 12},
			want:   "There were **12** trips on Friday at 21:00.",
		},
		{
			name:   "prediction found",
			result: predictor.Prediction{Day: "friday", Hour: 9, Count: 4, Status: predictor.StatusFound},
			want:   "Historical demand on **Friday** at **09:00**: **4** trips.",
		},
		{
			name:   "prediction miss",
			result: predictor.Prediction{Day: "friday", Hour: 3, Status: predictor.StatusHourNotFound},
			want:   "No data for friday at hour 3.",
		},
		{
			name:   "empty hotzones",
			result: &query.Result{Value: []models.Hotzone{}},
			want:   noMatches,
		},
		{
			name:   "large groups",
			result: query.LargeGroupShare{LargeGroups: 1, TotalRides: 4, Share: 0.25},
			want:   "**1** of **4** trips were large groups (25.0%).",
		},
		{
			name:   "peak hours",
			result: []models.HourCount{{Hour: 21, Count: 5}, {Hour: 9, Count: 2}},
			want:   "Busiest hours:\n\n1. 21:00: **5** trips\n2. 09:00: **2** trips",
		},
		{
			name: "weekday summary",
			result: models.WeekdaySummary{Day: "friday", Summary: models.Summary{
				TotalRides:    2,
				AvgPassengers: 5.5,
				TopPickups:    []models.NameCount{{Name: "West Campus", Count: 2}},
				TopDropoffs:   []models.NameCount{{Name: "Moody Center", Count: 2}},
				PeakHours:     []models.HourCount{{Hour: 12, Count: 2}},
			}},
			want: "**Friday**: 2 rides, 5.50 passengers on average.\n\n" +
				"- Top pickups: West Campus (2)\n" +
				"- Top drop-offs: Moody Center (2)\n" +
				"- Peak hours: 12:00 (2)",
		},
		{
			name:   "unknown type",
			result: map[string]int{"a": 1},
			want:   "```json\n{\n  \"a\": 1\n}\n```",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.result)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateExplainer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewTemplateExplainer().Explain(ctx, "q", 1)
	require.ErrorIs(t, err, context.Canceled)
}
