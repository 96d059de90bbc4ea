package handlers

import (
	"minigames_webapp/internal/repository"
	"minigames_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds per-deployment handler settings.
type HandlerConfig struct {
	SessionCookieName string
	SessionTTLHours   int
}

type Handler struct {
	DB          *pgxpool.Pool
	Cfg         HandlerConfig
	UserRepo    *repository.UserRepository
	AuthService *service.AuthService
	GameService *service.GameService
}

func NewHandler(db *pgxpool.Pool, cfg HandlerConfig) *Handler {
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "session_token"
	}
	if cfg.SessionTTLHours <= 0 {
		cfg.SessionTTLHours = 24
	}

	userRepo := repository.NewUserRepository(db)
	return &Handler{
		DB:          db,
		Cfg:         cfg,
		UserRepo:    userRepo,
		AuthService: service.NewAuthService(userRepo),
		GameService: service.NewGameService(db),
	}
}

// getUserID достаёт user_id из контекста Gin
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
