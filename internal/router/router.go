package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/Harshil0408/contentify-backend/internal/handler"
	"github.com/Harshil0408/contentify-backend/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Video        *handler.VideoHandler
	Like         *handler.LikeHandler
	Subscription *handler.SubscriptionHandler
	Stats        *handler.StatsHandler
	Health       *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given
// Fiber app.
func Setup(app *fiber.App, h *Handlers, parser middleware.TokenParser, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	requireAuth := middleware.NewAuth(parser)

	browseLimit := middleware.NewBrowseRateLimiter().Handler()
	authLimit := middleware.NewAuthRateLimiter().Handler()
	uploadLimit := middleware.NewUploadRateLimiter().Handler()
	toggleLimit := middleware.NewToggleRateLimiter().Handler()
	progressLimit := middleware.NewProgressRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()

	// Probes and metrics (no auth)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())
	app.Get("/stats", h.Stats.GetStats, statsLimit)

	// Auth routes
	auth := app.Group("/auth", authLimit)
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh-token", h.Auth.Refresh)
	auth.Post("/logout", h.Auth.Logout, requireAuth)
	auth.Get("/google", h.Auth.GoogleLogin)
	auth.Get("/google/callback", h.Auth.GoogleCallback)

	// User routes
	user := app.Group("/user", requireAuth)
	user.Get("/me", h.User.Me)
	user.Patch("/onboarding", h.User.Onboard)
	user.Get("/channel/:channelId", h.User.Channel)

	// Video routes. Literal paths are registered before /:videoId so the
	// wildcard never shadows them.
	video := app.Group("/video", requireAuth)
	video.Get("/", h.Video.List, browseLimit)
	video.Post("/publish-video", h.Video.Publish, uploadLimit)
	video.Get("/recommend-video", h.Video.Recommend, browseLimit)
	video.Get("/video/getWatchHistory", h.Video.GetWatchHistory, browseLimit)
	video.Get("/like-videos/user", h.Video.ListLiked, browseLimit)
	video.Get("/user/user-videos", h.Video.ListOwn, browseLimit)
	video.Get("/subscribed/videos", h.Video.ListSubscribed, browseLimit)
	video.Patch("/update/watch-progress", h.Video.UpdateProgress, progressLimit)
	video.Get("/watch-progress", h.Video.GetAllProgress, browseLimit)
	video.Get("/watch-progress/:videoId", h.Video.GetProgress, browseLimit)
	video.Get("/:videoId", h.Video.GetByID, browseLimit)
	video.Patch("/:videoId", h.Video.Update, uploadLimit)
	video.Delete("/:videoId", h.Video.Delete)

	// Engagement toggles
	like := app.Group("/like", requireAuth)
	like.Post("/like-video/:videoId", h.Like.ToggleVideoLike, toggleLimit)

	subscription := app.Group("/subscription", requireAuth)
	subscription.Post("/toggle-subscribe/:channelId", h.Subscription.Toggle, toggleLimit)
}
