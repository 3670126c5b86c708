package api

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rideshareai/rideshare-backend-go/internal/agent"
	"github.com/rideshareai/rideshare-backend-go/internal/dataset"
	"github.com/rideshareai/rideshare-backend-go/internal/explain"
	"github.com/rideshareai/rideshare-backend-go/internal/handler"
	"github.com/rideshareai/rideshare-backend-go/internal/middleware"
	"github.com/rideshareai/rideshare-backend-go/internal/service"
)

// Options wires the router to a dataset and its collaborators
type Options struct {
	Logger    *slog.Logger
	Dataset   *dataset.Dataset
	Agent     agent.Agent
	Explainer explain.Explainer

	AllowedOrigins      []string
	CollaboratorTimeout time.Duration
	CacheTTL            time.Duration

	// RateLimiter limits the chat routes when set. The caller owns it and
	// stops it on shutdown.
	RateLimiter *middleware.RateLimiter
}

// SetupRouter builds the HTTP router
func SetupRouter(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	ds := opts.Dataset
	// LLM-backed agents also extract the day and hour for company chat
	extractor, _ := opts.Agent.(agent.DayHourExtractor)

	healthHandler := handler.NewHealthHandler(ds)
	tripHandler := handler.NewTripHandler(service.NewTripService(ds))
	hotzoneHandler := handler.NewHotzoneHandler(service.NewHotzoneService(ds, opts.CacheTTL))
	summaryHandler := handler.NewSummaryHandler(service.NewSummaryService(ds))
	chatHandler := handler.NewChatHandler(
		service.NewChatService(ds, opts.Agent, opts.Explainer, opts.CollaboratorTimeout, log),
		service.NewCompanyChatService(ds, extractor, opts.Explainer, opts.CollaboratorTimeout, log),
	)

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/trips", tripHandler.GetTrips)
	r.GET("/hotzones", hotzoneHandler.GetHotzones)
	r.GET("/hotzones/cells", hotzoneHandler.GetCellHotzones)

	summaries := r.Group("/summaries")
	{
		summaries.GET("/weekday", summaryHandler.GetWeekdaySummaries)
		summaries.GET("/weekday/:day", summaryHandler.GetWeekdaySummary)
		summaries.GET("/daily", summaryHandler.GetDailySummaries)
		summaries.GET("/daily/:date", summaryHandler.GetDailySummary)
	}
	r.GET("/demand", summaryHandler.GetDemand)
	r.GET("/top/:column", summaryHandler.GetTop)

	// chat routes call the LLM and are limited per client
	chat := r.Group("/")
	if opts.RateLimiter != nil {
		chat.Use(opts.RateLimiter.Handler())
	}
	{
		chat.POST("/chat", chatHandler.Chat)
		chat.POST("/company-chat", chatHandler.CompanyChat)
	}

	return r
}

// corsConfig allows the given origins, or any origin without credentials
// when none are configured
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
