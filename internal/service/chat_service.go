package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rideshareai/rideshare-backend-go/internal/agent"
	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/explain"
	"github.com/rideshareai/rideshare-backend-go/internal/metrics"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/query"
)

// DefaultCollaboratorTimeout bounds each agent or explainer call
const DefaultCollaboratorTimeout = 30 * time.Second

// Collaborator names used in logs and metrics
const (
	collaboratorAgent     = "agent"
	collaboratorExplainer = "explainer"
	collaboratorExtractor = "extractor"
)

// ChatService answers free-text questions about the dataset
type ChatService struct {
	ds        *dataset.Dataset
	agent     agent.Agent
	explainer explain.Explainer
	timeout   time.Duration
	log       *slog.Logger
}

// NewChatService creates a chat service. A non-positive timeout uses
// DefaultCollaboratorTimeout.
func NewChatService(ds *dataset.Dataset, a agent.Agent, e explain.Explainer, timeout time.Duration, log *slog.Logger) *ChatService {
	if timeout <= 0 {
		timeout = DefaultCollaboratorTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &ChatService{ds: ds, agent: a, explainer: e, timeout: timeout, log: log}
}

// Chat computes and explains an answer. Collaborator failures never surface
// as errors; the reply degrades to explain.FallbackReply and the computed
// result is kept when computation succeeded.
func (s *ChatService) Chat(ctx context.Context, question string) models.ChatResponse {
	metrics.ChatRequestsTotal.WithLabelValues("chat").Inc()

	result, err := call(ctx, s.timeout, collaboratorAgent, func(ctx context.Context) (*query.Result, error) {
		return s.agent.Compute(ctx, question, s.ds)
	})
	if err != nil {
		s.log.Warn("agent failed", "question", question, "error", err)
		return models.ChatResponse{Reply: explain.FallbackReply}
	}

	reply, err := explainWithin(ctx, s.timeout, s.explainer, question, result)
	if err != nil {
		s.log.Warn("explainer failed", "question", question, "error", err)
		return models.ChatResponse{Reply: explain.FallbackReply, ComputedResult: result}
	}
	return models.ChatResponse{Reply: reply, ComputedResult: result}
}

// CompanyChatService answers demand questions such as "Friday 9 pm"
type CompanyChatService struct {
	ds        *dataset.Dataset
	extractor agent.DayHourExtractor
	explainer explain.Explainer
	timeout   time.Duration
	log       *slog.Logger
}

// NewCompanyChatService creates a company chat service. A nil extractor
// parses the question text directly.
func NewCompanyChatService(ds *dataset.Dataset, x agent.DayHourExtractor, e explain.Explainer, timeout time.Duration, log *slog.Logger) *CompanyChatService {
	if timeout <= 0 {
		timeout = DefaultCollaboratorTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &CompanyChatService{ds: ds, extractor: x, explainer: e, timeout: timeout, log: log}
}

// Predict parses a day and hour from text and looks up demand
func (s *CompanyChatService) Predict(text string) predictor.Prediction {
	day, hour := predictor.ParseDayHour(text)
	return s.ds.Demand().Predict(day, hour)
}

// Chat predicts demand for the question and explains it
func (s *CompanyChatService) Chat(ctx context.Context, question string) models.CompanyChatResponse {
	metrics.ChatRequestsTotal.WithLabelValues("company-chat").Inc()

	p := s.Predict(s.dayHourText(ctx, question))
	reply, err := explainWithin(ctx, s.timeout, s.explainer, question, p)
	if err != nil {
		s.log.Warn("explainer failed", "question", question, "error", err)
		return models.CompanyChatResponse{Reply: explain.FallbackReply}
	}
	return models.CompanyChatResponse{Reply: reply}
}

// dayHourText returns the extractor's "<day> <hour>" rewrite of question,
// or question itself without an extractor or when extraction fails.
func (s *CompanyChatService) dayHourText(ctx context.Context, question string) string {
	if s.extractor == nil {
		return question
	}
	text, err := call(ctx, s.timeout, collaboratorExtractor, func(ctx context.Context) (string, error) {
		return s.extractor.ExtractDayHour(ctx, question)
	})
	if err != nil {
		s.log.Warn("day hour extraction failed, parsing question", "question", question, "error", err)
		return question
	}
	return text
}

func explainWithin(ctx context.Context, timeout time.Duration, e explain.Explainer, question string, result any) (string, error) {
	return call(ctx, timeout, collaboratorExplainer, func(ctx context.Context) (string, error) {
		return e.Explain(ctx, question, result)
	})
}

// call runs fn under a deadline and records latency and failures. A
// collaborator that ignores its context is abandoned at the deadline, and a
// panic in fn is returned as an error.
func call[T any](ctx context.Context, timeout time.Duration, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%s panicked: %v", name, r)}
			}
		}()
		v, err := fn(ctx)
		done <- outcome{value: v, err: err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		out.err = ctx.Err()
	}

	metrics.CollaboratorDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if out.err != nil {
		metrics.CollaboratorFailuresTotal.WithLabelValues(name).Inc()
	}
	return out.value, out.err
}
