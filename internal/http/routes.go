package http

import (
	"time"

	"minigames_webapp/internal/config"
	"minigames_webapp/internal/http/handlers"
	"minigames_webapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Префиксы страниц за воротами. Сами страницы отдаёт фронтенд,
// гейт только проверяет наличие куки и редиректит на логин.
var protectedPagePrefixes = []string{"/dashboard", "/games"}

const signinPath = "/auth/signin"

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, handlers.HandlerConfig{
		SessionCookieName: cfg.SessionCookieName,
		SessionTTLHours:   cfg.SessionTTLHours,
	})
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authWindow := time.Duration(cfg.AuthRateWindow) * time.Second
	gameWindow := time.Duration(cfg.GameRateWindow) * time.Second

	session := middleware.Session(cfg.SessionCookieName)

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiWindow))

	// Auth (tighter per-IP limit)
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, authWindow)
	api.POST("/auth/signup", authRL, h.Signup)
	api.POST("/auth/signin", authRL, h.Signin)
	api.POST("/auth/signout", h.Signout)

	// Profile
	api.GET("/me", session, h.Me)

	// Game result pipeline (per-user limiter, not per-IP)
	gameRL := middleware.UserRateLimit(cfg.GameRateLimit, gameWindow)
	api.POST("/games/result", session, gameRL, h.RecordResult)
	api.GET("/games/stats", session, h.Stats)
	api.GET("/games/history", session, h.History)

	// Access gate + static frontend for the pages
	gate := middleware.AccessGate(
		protectedPagePrefixes,
		[]string{cfg.SessionCookieName, "__Secure-" + cfg.SessionCookieName},
		signinPath,
	)
	r.StaticFS("/assets", gin.Dir(cfg.FrontendDir+"/assets", false))
	r.NoRoute(gate, func(c *gin.Context) {
		c.File(cfg.FrontendDir + "/index.html")
	})
}
