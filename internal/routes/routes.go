package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/matchday-hq/matchday/internal/config"
	"github.com/matchday-hq/matchday/internal/handlers"
	"github.com/matchday-hq/matchday/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	leagueHandler *handlers.LeagueHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	participationHandler *handlers.ParticipationHandler,
	statsHandler *handlers.StatsHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Probe endpoint outside the rate-limited API surface.
	app.Get("/healthz", healthHandler.Check)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), middleware.LoadUser(db), authHandler.Me)

	// Dashboard — every route re-resolves the account and re-checks
	// approval.
	dashboard := api.Group("/dashboard", middleware.JWTProtected(cfg), middleware.LoadUser(db))
	dashboard.Get("/summary", statsHandler.Summary)
	dashboard.Get("/statistics", statsHandler.Statistics)

	// Management surfaces: admins and coaches only. Per-object ownership
	// is decided in the handlers.
	staff := dashboard.Group("", middleware.StaffOnly())

	staff.Get("/teams", teamHandler.List)
	staff.Post("/teams", teamHandler.Create)
	staff.Get("/teams/:id", teamHandler.Get)
	staff.Put("/teams/:id", teamHandler.Update)
	staff.Delete("/teams/:id", teamHandler.Delete)

	staff.Get("/leagues", leagueHandler.List)
	staff.Post("/leagues", leagueHandler.Create)
	staff.Get("/leagues/:id", leagueHandler.Get)
	staff.Put("/leagues/:id", leagueHandler.Update)
	staff.Delete("/leagues/:id", leagueHandler.Delete)

	staff.Get("/players", playerHandler.List)
	staff.Post("/players", playerHandler.Create)
	staff.Get("/players/:id", playerHandler.Get)
	staff.Put("/players/:id", playerHandler.Update)
	staff.Delete("/players/:id", playerHandler.Delete)

	staff.Get("/matches", matchHandler.List)
	staff.Post("/matches", matchHandler.Create)
	staff.Get("/matches/:id", matchHandler.Get)
	staff.Put("/matches/:id", matchHandler.Update)
	staff.Delete("/matches/:id", matchHandler.Delete)
	staff.Get("/matches/:id/participants", matchHandler.Participants)
	staff.Post("/matches/:id/participants", matchHandler.RecordStats)

	staff.Get("/player-stats", statsHandler.List)
	staff.Post("/player-stats", statsHandler.Create)
	staff.Get("/player-stats/:id", statsHandler.Get)
	staff.Put("/player-stats/:id", statsHandler.Update)
	staff.Delete("/player-stats/:id", statsHandler.Delete)

	// Player self-service: own fixtures and the opt-in toggle.
	self := dashboard.Group("", middleware.PlayerOnly())
	self.Get("/my-matches", participationHandler.MyMatches)
	self.Get("/my-matches/:id/participate", participationHandler.ParticipationStatus)
	self.Post("/my-matches/:id/participate", participationHandler.Participate)

	// Admin account management and the approval queue.
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.LoadUser(db), middleware.AdminOnly())
	admin.Get("/users", userHandler.List)
	admin.Post("/users/:id/approve", userHandler.Approve)
	admin.Put("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Reject)
}
