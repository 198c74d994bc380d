package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/transcript-search/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/transcript-search/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	tokens            middleware.TokenValidator
	transcriptHandler *Transcript
	searchHandler     *Search
	webhookHandler    *Webhook
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	tokens middleware.TokenValidator,
	transcriptHandler *Transcript,
	searchHandler *Search,
	webhookHandler *Webhook,
) *Router {
	return &Router{
		cfg:               cfg,
		tokens:            tokens,
		transcriptHandler: transcriptHandler,
		searchHandler:     searchHandler,
		webhookHandler:    webhookHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	// Webhooks authenticate with signatures, not JWT
	rt.setupWebhookRoutes(v1)

	protected := v1.Group("", middleware.EchoAuth(rt.tokens))
	rt.setupTranscriptRoutes(protected)
	rt.setupSearchRoutes(protected)
}

// setupTranscriptRoutes configures transcript and per-transcript search routes
func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	transcripts := g.Group("/transcripts")

	transcripts.POST("", rt.transcriptHandler.CreateTranscript)
	transcripts.GET("", rt.transcriptHandler.ListTranscripts)
	transcripts.POST("/import", rt.transcriptHandler.ImportTranscript)
	transcripts.GET("/:id", rt.transcriptHandler.GetTranscript)
	transcripts.DELETE("/:id", rt.transcriptHandler.DeleteTranscript)

	transcripts.POST("/:id/search", rt.searchHandler.SearchTranscript)
	transcripts.POST("/:id/search/export", rt.searchHandler.ExportSearch)
	transcripts.GET("/:id/speakers", rt.searchHandler.Speakers)
}

// setupSearchRoutes configures history and saved search routes
func (rt *Router) setupSearchRoutes(g *echo.Group) {
	searches := g.Group("/searches")

	searches.GET("/recent", rt.searchHandler.RecentSearches)
	searches.DELETE("/recent", rt.searchHandler.ClearRecentSearches)
	searches.POST("", rt.searchHandler.SaveSearch)
	searches.GET("", rt.searchHandler.ListSavedSearches)
	searches.DELETE("/:id", rt.searchHandler.DeleteSavedSearch)
}

func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhooks := g.Group("/webhooks")
	webhooks.POST("/assemblyai", rt.webhookHandler.HandleAssemblyAIWebhook)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
