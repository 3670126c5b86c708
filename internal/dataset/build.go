package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/rideshareai/rideshare-backend-go/internal/database"
	"github.com/rideshareai/rideshare-backend-go/internal/ingest"
	"github.com/rideshareai/rideshare-backend-go/internal/models"
	"github.com/rideshareai/rideshare-backend-go/internal/predictor"
	"github.com/rideshareai/rideshare-backend-go/internal/repository"
	"github.com/rideshareai/rideshare-backend-go/internal/stats"
)

// Dataset sources
const (
	SourceCSV    = "csv"
	SourceCache  = "cache"
	SourceMemory = "memory"
)

const (
	metaSource   = "source_path"
	metaLoadedAt = "loaded_at"
	metaRows     = "rows"
)

// Options configures dataset initialization
type Options struct {
	Logger *slog.Logger

	// DataPath is the trip CSV. Required unless the cache is preferred and populated.
	DataPath string
	// DemandPath is an optional day,hour,trip_count CSV. When empty the
	// demand table is derived from the trips.
	DemandPath string
	// CachePath enables the sqlite cache of the normalized table
	CachePath   string
	PreferCache bool

	Enricher ingest.EnricherConfig
}

// Build loads, enriches and precomputes the dataset. Any failure is
// returned; a server must not start without a dataset.
func Build(ctx context.Context, opts Options) (*Dataset, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Enricher.Logger == nil {
		opts.Enricher.Logger = log
	}
	enricher := ingest.NewEnricher(opts.Enricher)

	var repo *repository.TripRepository
	if opts.CachePath != "" {
		db, err := database.Open(database.Config{Path: opts.CachePath, Logger: log})
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		defer db.Close()
		repo = repository.NewTripRepository(db)
	}

	trips, source, err := load(ctx, log, opts, enricher, repo)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		trips:    trips,
		source:   source,
		loadedAt: time.Now().UTC(),
	}
	for _, h := range enricher.Normalizer().Hotspots() {
		ds.hotspots = append(ds.hotspots, h.Name)
	}

	start := time.Now()
	if err := ds.precompute(ctx, opts.DemandPath); err != nil {
		return nil, err
	}
	log.Info("dataset precomputed",
		"rows", len(trips),
		"weekdays", len(ds.weekday),
		"dates", len(ds.daily),
		"duration", time.Since(start))

	if repo != nil && source == SourceCSV {
		if err := writeCache(repo, opts.DataPath, trips); err != nil {
			// the cache is an optimization, the in-memory dataset is complete
			log.Warn("failed to write dataset cache", "path", opts.CachePath, "error", err)
		} else {
			log.Info("dataset cache written", "path", opts.CachePath, "rows", len(trips))
		}
	}
	return ds, nil
}

func load(ctx context.Context, log *slog.Logger, opts Options, e *ingest.Enricher, repo *repository.TripRepository) ([]models.Trip, string, error) {
	if repo != nil && opts.PreferCache {
		trips, err := repo.LoadAll()
		switch {
		case err != nil:
			log.Warn("failed to read dataset cache, falling back to csv", "error", err)
		case len(trips) > 0:
			log.Info("dataset loaded from cache", "path", opts.CachePath, "rows", len(trips))
			return trips, SourceCache, nil
		default:
			log.Info("dataset cache is empty", "path", opts.CachePath)
		}
	}

	if opts.DataPath == "" {
		return nil, "", errors.New("no dataset path configured")
	}
	trips, _, err := ingest.LoadFile(ctx, opts.DataPath, e)
	if err != nil {
		return nil, "", err
	}
	return trips, SourceCSV, nil
}

// precompute derives the summaries and the demand table in parallel
func (d *Dataset) precompute(ctx context.Context, demandPath string) error {
	pool := pond.NewPool(3)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	group.SubmitErr(func() error {
		d.weekday = stats.WeekdaySummaries(d.trips)
		return nil
	})
	group.SubmitErr(func() error {
		d.daily = stats.DailySummaries(d.trips)
		return nil
	})
	group.SubmitErr(func() error {
		if demandPath == "" {
			d.demand = predictor.FromTrips(d.trips)
			return nil
		}
		rows, err := ingest.LoadDemandFile(demandPath)
		if err != nil {
			return err
		}
		d.demand = predictor.NewTable(rows)
		return nil
	})
	if err := group.Wait(); err != nil {
		return fmt.Errorf("precompute dataset: %w", err)
	}
	return nil
}

func writeCache(repo *repository.TripRepository, sourcePath string, trips []models.Trip) error {
	if err := repo.ReplaceAll(trips); err != nil {
		return err
	}
	for k, v := range map[string]string{
		metaSource:   sourcePath,
		metaLoadedAt: time.Now().UTC().Format(time.RFC3339),
		metaRows:     strconv.Itoa(len(trips)),
	} {
		if err := repo.SetMeta(k, v); err != nil {
			return err
		}
	}
	return nil
}
