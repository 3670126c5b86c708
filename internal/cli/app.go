package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rideshareai/rideshare-backend-go/internal/agent"
	"github.com/rideshareai/rideshare-backend-go/internal/config"
	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/explain"
	"github.com/rideshareai/rideshare-backend-go/internal/ingest"
	"github.com/rideshareai/rideshare-backend-go/internal/llm"
)

// app is the state shared by every subcommand
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	ds      *dataset.Dataset
	verbose bool
}

// loadApp reads configuration and builds the dataset. Any failure aborts
// the command before it does work.
func loadApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfgFile, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	verbose = verbose || cfg.Verbose
	log := newLogger(verbose)

	var hotspots []ingest.Hotspot
	if cfg.HotspotsFile != "" {
		hotspots, err = ingest.LoadHotspots(cfg.HotspotsFile)
		if err != nil {
			return nil, err
		}
		log.Info("loaded hotspots", "path", cfg.HotspotsFile, "count", len(hotspots))
	}

	ds, err := dataset.Build(ctx, dataset.Options{
		Logger:      log,
		DataPath:    cfg.DataPath,
		DemandPath:  cfg.DemandPath,
		CachePath:   cfg.CachePath,
		PreferCache: cfg.PreferCache,
		Enricher: ingest.EnricherConfig{
			Logger:              log,
			LargeGroupThreshold: cfg.LargeGroupThreshold,
			TimestampLayout:     cfg.TimestampLayout,
			Hotspots:            hotspots,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset: %w", err)
	}
	return &app{cfg: cfg, log: log, ds: ds, verbose: verbose}, nil
}

// collaborators returns the query agent and explainer for the configured
// LLM provider. Without a provider, or without its API key, the keyword
// agent and template explainer are used.
func (a *app) collaborators() (agent.Agent, explain.Explainer, error) {
	completer, err := llm.New(llm.Config{
		Provider:  a.cfg.LLMProvider,
		Model:     a.cfg.LLMModel,
		BaseURL:   a.cfg.LLMBaseURL,
		APIKey:    a.cfg.APIKey(),
		MaxTokens: a.cfg.LLMMaxTokens,
		Timeout:   a.cfg.LLMTimeout,
		Logger:    a.log,
	})
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		a.log.Warn("llm api key missing, answering offline", "provider", a.cfg.LLMProvider)
	case err != nil:
		return nil, nil, err
	}

	if completer == nil {
		return agent.NewKeywordAgent(), explain.NewTemplateExplainer(), nil
	}
	a.log.Info("llm collaborators enabled", "provider", a.cfg.LLMProvider, "model", a.cfg.LLMModel)
	return agent.NewLLMAgent(completer, a.log), explain.NewLLMExplainer(completer, a.cfg.ExplainCacheTTL, a.log), nil
}
