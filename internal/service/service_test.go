package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rideshareai/rideshare-backend-go/internal/agent"
	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/explain"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/query"
	"github.com/rideshareai/rideshare-backend-go/internal/stats"
)

type failingAgent struct{ err error }

func (a failingAgent) Compute(context.Context, string, *dataset.Dataset) (*query.Result, error) {
	return nil, a.err
}

// blockingAgent ignores its context and never returns
type blockingAgent struct{ release chan struct{} }

func (a blockingAgent) Compute(context.Context, string, *dataset.Dataset) (*query.Result, error) {
	<-a.release
	return nil, nil
}

type stubExplainer struct {
	reply string
	err   error
}

func (e stubExplainer) Explain(context.Context, string, any) (string, error) {
	return e.reply, e.err
}

func testDataset() *dataset.Dataset {
	mk := func(day, date string, hour int, dropoff string, lat float64) models.Trip {
		return models.Trip{
			Day: day, Date: date, Hour: hour,
			Time:              time.Date(2025, 8, 15, hour, 0, 0, 0, time.UTC),
			Passengers:        2,
			PickUpNormalized:  "West Campus",
			DropOffNormalized: dropoff,
			DropOffLat:        lat,
			DropOffLng:        -97.74,
		}
	}
	return dataset.New([]models.Trip{
		mk("friday", "2025-08-15", 21, "Moody Center", 30.2835),
		mk("friday", "2025-08-15", 21, "Moody Center", 30.2835),
		mk("friday", "2025-08-15", 12, "Downtown", 30.26),
		mk("saturday", "2025-08-16", 22, "6th Street", 30.267),
	}, nil)
}

func TestChatService_Success(t *testing.T) {
	s := NewChatService(testDataset(), agent.NewKeywordAgent(), explain.NewTemplateExplainer(), time.Second, nil)

	resp := s.Chat(context.Background(), "How many trips on Friday at 9pm?")
	require.Equal(t, "There were **2** trips on Friday at 21:00.", resp.Reply)
	res := resp.ComputedResult.(*query.Result)
	require.Equal(t, 2, res.Value)
}

func TestChatService_AgentFailure(t *testing.T) {
	s := NewChatService(testDataset(), failingAgent{err: errors.New("upstream down")}, explain.NewTemplateExplainer(), time.Second, nil)

	resp := s.Chat(context.Background(), "anything")
	require.Equal(t, explain.FallbackReply, resp.Reply)
	require.Nil(t, resp.ComputedResult)
}

func TestChatService_ExplainerFailureKeepsResult(t *testing.T) {
	s := NewChatService(testDataset(), agent.NewKeywordAgent(), stubExplainer{err: errors.New("429")}, time.Second, nil)

	resp := s.Chat(context.Background(), "how many trips")
	require.Equal(t, explain.FallbackReply, resp.Reply)
	require.NotNil(t, resp.ComputedResult)
}

func TestChatService_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	s := NewChatService(testDataset(), blockingAgent{release: release}, explain.NewTemplateExplainer(), 50*time.Millisecond, nil)

	start := time.Now()
	resp := s.Chat(context.Background(), "how many trips")
	require.Equal(t, explain.FallbackReply, resp.Reply)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestCompanyChatService(t *testing.T) {
	ds := testDataset()
	s := NewCompanyChatService(ds, nil, explain.NewTemplateExplainer(), time.Second, nil)

	p := s.Predict("Friday 9 pm")
	require.Equal(t, predictor.Prediction{Day: "friday", Hour: 21, Count: 2, Status: predictor.StatusFound}, p)

	resp := s.Chat(context.Background(), "Friday 9 pm")
	require.Equal(t, "Historical demand on **Friday** at **21:00**: **2** trips.", resp.Reply)

	resp = s.Chat(context.Background(), "sunday 3")
	require.Equal(t, "No data for sunday.", resp.Reply)

	failing := NewCompanyChatService(ds, nil, stubExplainer{err: errors.New("boom")}, time.Second, nil)
	require.Equal(t, explain.FallbackReply, failing.Chat(context.Background(), "friday 9 pm").Reply)
}

// stubCompleter answers every prompt with reply
type stubCompleter struct {
	reply string
	err   error
}

func (c stubCompleter) Complete(context.Context, string, string) (string, error) {
	return c.reply, c.err
}

// panickingExtractor fails inside the collaborator goroutine
type panickingExtractor struct{}

func (panickingExtractor) ExtractDayHour(context.Context, string) (string, error) {
	panic("extractor bug")
}

func TestCompanyChatService_ExtractsDayHour(t *testing.T) {
	ds := testDataset()
	question := "How busy is Friday at 9 PM?"

	// parsed as-is the first word is taken as the day
	raw := NewCompanyChatService(ds, nil, explain.NewTemplateExplainer(), time.Second, nil)
	require.Equal(t, "No data for how.", raw.Chat(context.Background(), question).Reply)

	llmAgent := agent.NewLLMAgent(stubCompleter{reply: "Friday 9 PM"}, nil)
	s := NewCompanyChatService(ds, llmAgent, explain.NewTemplateExplainer(), time.Second, nil)
	require.Equal(t, "Historical demand on **Friday** at **21:00**: **2** trips.", s.Chat(context.Background(), question).Reply)

	// a failed extraction falls back to the question text
	down := agent.NewLLMAgent(stubCompleter{err: errors.New("upstream down")}, nil)
	s = NewCompanyChatService(ds, down, explain.NewTemplateExplainer(), time.Second, nil)
	require.Equal(t, "Historical demand on **Friday** at **21:00**: **2** trips.", s.Chat(context.Background(), "friday 9 pm").Reply)

	s = NewCompanyChatService(ds, panickingExtractor{}, explain.NewTemplateExplainer(), time.Second, nil)
	require.Equal(t, "No data for sunday.", s.Chat(context.Background(), "sunday 3").Reply)
}

// panickingAgent fails inside the collaborator goroutine
type panickingAgent struct{}

func (panickingAgent) Compute(context.Context, string, *dataset.Dataset) (*query.Result, error) {
	panic("agent bug")
}

type panickingExplainer struct{}

func (panickingExplainer) Explain(context.Context, string, any) (string, error) {
	panic("explainer bug")
}

func TestChatService_CollaboratorPanic(t *testing.T) {
	s := NewChatService(testDataset(), panickingAgent{}, explain.NewTemplateExplainer(), time.Second, nil)
	resp := s.Chat(context.Background(), "How many trips?")
	require.Equal(t, explain.FallbackReply, resp.Reply)
	require.Nil(t, resp.ComputedResult)

	s = NewChatService(testDataset(), agent.NewKeywordAgent(), panickingExplainer{}, time.Second, nil)
	resp = s.Chat(context.Background(), "How many trips on Friday?")
	require.Equal(t, explain.FallbackReply, resp.Reply)
	require.NotNil(t, resp.ComputedResult)

	_, err := call(context.Background(), time.Second, "test", func(context.Context) (int, error) {
		panic("boom")
	})
	require.ErrorContains(t, err, "test panicked: boom")
}

func TestHotzoneService(t *testing.T) {
	s := NewHotzoneService(testDataset(), time.Minute)

	zones := s.Hotzones(models.HotzoneFilter{Day: "Friday"})
	require.Len(t, zones, 2)
	require.Equal(t, models.Hotzone{Lat: 30.2835, Lng: -97.74, Count: 2, Name: "Moody Center"}, zones[0])

	// cached result is identical
	require.Equal(t, zones, s.Hotzones(models.HotzoneFilter{Day: "friday"}))

	require.Len(t, s.Hotzones(models.HotzoneFilter{Hour: "not-an-hour"}), 3)
	require.Empty(t, s.Hotzones(models.HotzoneFilter{Day: "monday"}))

	cells := s.Cells(models.CellHotzoneFilter{})
	require.NotEmpty(t, cells)
	require.Equal(t, "Moody Center", cells[0].Name)
}

func TestHotzoneService_CacheIsBounded(t *testing.T) {
	s := NewHotzoneService(testDataset(), time.Hour)

	for i := 0; i < hotzoneCacheCapacity+1000; i++ {
		require.Empty(t, s.Hotzones(models.HotzoneFilter{Day: fmt.Sprintf("d%d", i)}))
	}
	require.Equal(t, hotzoneCacheCapacity, s.cache.Len())
}

func TestHotzoneService_KeyFollowsParsedFilter(t *testing.T) {
	s := NewHotzoneService(testDataset(), time.Hour)

	for _, f := range []models.HotzoneFilter{
		{Day: "Friday", Hour: "21"},
		{Day: " friday ", Hour: " 21 "},
		{Day: "FRIDAY", Hour: "021"},
	} {
		zones := s.Hotzones(f)
		require.Len(t, zones, 1)
		require.Equal(t, 2, zones[0].Count)
	}
	require.Equal(t, 1, s.cache.Len())

	// invalid hours are ignored, so they share the unfiltered entry
	require.Len(t, s.Hotzones(models.HotzoneFilter{Hour: "25"}), 3)
	require.Len(t, s.Hotzones(models.HotzoneFilter{Hour: "soon"}), 3)
	require.Len(t, s.Hotzones(models.HotzoneFilter{}), 3)
	require.Equal(t, 2, s.cache.Len())
}

func TestSummaryService(t *testing.T) {
	s := NewSummaryService(testDataset())

	fri, err := s.WeekdaySummary("Friday")
	require.NoError(t, err)
	require.Equal(t, 3, fri.TotalRides)

	_, err = s.WeekdaySummary("monday")
	require.ErrorIs(t, err, ErrNotFound)

	day, err := s.DailySummary("2025-08-16")
	require.NoError(t, err)
	require.Equal(t, "saturday", day.Weekday)

	_, err = s.DailySummary("2025-01-01")
	require.ErrorIs(t, err, ErrNotFound)

	require.Len(t, s.WeekdaySummaries(), 2)
	require.Len(t, s.DailySummaries(), 2)

	require.Equal(t, 2, s.Demand(models.DemandFilter{Day: "FRIDAY", Hour: 21}).Count)
	require.Len(t, s.DemandTable(), 3)

	top, err := s.Top("drop_off_normalized", models.TopFilter{N: 1})
	require.NoError(t, err)
	require.Equal(t, []models.GroupCount{{Key: "Moody Center", Count: 2}}, top)

	top, err = s.Top("day,hour", models.TopFilter{Day: "friday"})
	require.NoError(t, err)
	require.Equal(t, "friday | 21", top[0].Key)

	_, err = s.Top("colour", models.TopFilter{})
	require.ErrorIs(t, err, stats.ErrUnknownColumn)
}

func TestTripService(t *testing.T) {
	s := NewTripService(testDataset())
	require.Len(t, s.List(), 4)
	require.Equal(t, 4, s.Count())

	require.NotNil(t, NewTripService(dataset.New(nil, nil)).List())
}
