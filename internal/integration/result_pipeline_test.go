package integration

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"minigames_webapp/internal/config"
	"minigames_webapp/internal/domain"
	apphttp "minigames_webapp/internal/http"
	"minigames_webapp/internal/repository"
	"minigames_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func newTestUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()
	auth := service.NewAuthService(repository.NewUserRepository(db))
	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())
	u, err := auth.Register(context.Background(), email, "test-password-123", "IT User")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestRecordResult_CounterIncrements(t *testing.T) {
	db := testPool(t)
	svc := service.NewGameService(db)
	users := repository.NewUserRepository(db)
	sessions := repository.NewGameSessionRepository(db)
	u := newTestUser(t, db)
	ctx := context.Background()

	// win bumps both counters
	err := svc.RecordResult(ctx, u.ID, domain.GameTypeRPS, domain.GameResultWin, map[string]interface{}{
		"playerChoice":   "rock",
		"computerChoice": "scissors",
	})
	if err != nil {
		t.Fatalf("record win: %v", err)
	}

	played, won, err := users.GetCounters(ctx, u.ID)
	if err != nil {
		t.Fatalf("counters: %v", err)
	}
	if played != 1 || won != 1 {
		t.Fatalf("after win: played=%d won=%d; want 1/1", played, won)
	}

	// lose and draw bump only games_played
	for _, res := range []domain.GameResult{domain.GameResultLose, domain.GameResultDraw} {
		if err := svc.RecordResult(ctx, u.ID, domain.GameTypeTicTacToe, res, nil); err != nil {
			t.Fatalf("record %s: %v", res, err)
		}
	}

	played, won, err = users.GetCounters(ctx, u.ID)
	if err != nil {
		t.Fatalf("counters: %v", err)
	}
	if played != 3 || won != 1 {
		t.Fatalf("after lose+draw: played=%d won=%d; want 3/1", played, won)
	}

	// every submission produced its own immutable session record
	n, err := sessions.CountByPlayer(ctx, u.ID)
	if err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 session records, got %d", n)
	}
}

func TestRecordResult_SessionRecordShape(t *testing.T) {
	db := testPool(t)
	svc := service.NewGameService(db)
	sessions := repository.NewGameSessionRepository(db)
	u := newTestUser(t, db)
	ctx := context.Background()

	gameData := map[string]interface{}{
		"board":        []interface{}{"X", "X", "X", "O", "O", nil, nil, nil, nil},
		"gameMode":     "computer",
		"playerSymbol": "X",
	}
	if err := svc.RecordResult(ctx, u.ID, domain.GameTypeTicTacToe, domain.GameResultWin, gameData); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := sessions.GetByPlayer(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("get sessions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 session, got %d", len(got))
	}

	gs := got[0]
	if gs.Status != domain.GameStatusCompleted {
		t.Fatalf("status = %s; want completed", gs.Status)
	}
	if gs.CompletedAt == nil {
		t.Fatalf("completed_at not set")
	}
	if gs.WinnerID == nil || *gs.WinnerID != u.ID {
		t.Fatalf("winner = %v; want %d", gs.WinnerID, u.ID)
	}
	if gs.Player2ID != nil {
		t.Fatalf("player2 must stay empty")
	}
	if gs.GameData["gameMode"] != "computer" {
		t.Fatalf("game_data not stored verbatim: %v", gs.GameData)
	}
}

func TestRecordResult_DrawHasNoWinner(t *testing.T) {
	db := testPool(t)
	svc := service.NewGameService(db)
	sessions := repository.NewGameSessionRepository(db)
	u := newTestUser(t, db)
	ctx := context.Background()

	if err := svc.RecordResult(ctx, u.ID, domain.GameTypeRPS, domain.GameResultDraw, nil); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := sessions.GetByPlayer(ctx, u.ID, 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("get sessions: %v (%d)", err, len(got))
	}
	if got[0].WinnerID != nil {
		t.Fatalf("draw must have no winner, got %v", *got[0].WinnerID)
	}
}

func TestStats_ExactPayload(t *testing.T) {
	db := testPool(t)
	svc := service.NewGameService(db)
	u := newTestUser(t, db)
	ctx := context.Background()

	results := []domain.GameResult{
		domain.GameResultWin, domain.GameResultWin,
		domain.GameResultLose, domain.GameResultLose, domain.GameResultDraw,
	}
	for _, res := range results {
		if err := svc.RecordResult(ctx, u.ID, domain.GameTypeRPS, res, nil); err != nil {
			t.Fatalf("record %s: %v", res, err)
		}
	}

	stats, err := svc.Stats(ctx, u.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.GamesPlayed != 5 || stats.GamesWon != 2 || stats.WinRate != 40 {
		t.Fatalf("stats = %+v; want {5 2 40}", stats)
	}
}

func TestResultEndpoint_Unauthenticated(t *testing.T) {
	db := testPool(t)
	t.Setenv("JWT_SECRET", "integration-secret")
	service.InitJWT()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{
		SessionCookieName: "session_token",
		SessionTTLHours:   24,
		APIRateLimit:      1000, APIRateWindow: 60,
		AuthRateLimit: 1000, AuthRateWindow: 60,
		GameRateLimit: 1000, GameRateWindow: 60,
		FrontendDir: t.TempDir(),
	}
	apphttp.RegisterRoutes(r, db, cfg, "test")

	var before int
	if err := db.QueryRow(context.Background(), `SELECT COUNT(*) FROM game_sessions`).Scan(&before); err != nil {
		t.Fatalf("count: %v", err)
	}

	body := []byte(`{"gameType":"rock-paper-scissors","result":"win","gameData":{}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/games/result", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}

	var after int
	if err := db.QueryRow(context.Background(), `SELECT COUNT(*) FROM game_sessions`).Scan(&after); err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before {
		t.Fatalf("unauthenticated submission must not write: before=%d after=%d", before, after)
	}
}

func TestResultEndpoint_MissingFields(t *testing.T) {
	db := testPool(t)
	t.Setenv("JWT_SECRET", "integration-secret")
	service.InitJWT()
	u := newTestUser(t, db)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{
		SessionCookieName: "session_token",
		SessionTTLHours:   24,
		APIRateLimit:      1000, APIRateWindow: 60,
		AuthRateLimit: 1000, AuthRateWindow: 60,
		GameRateLimit: 1000, GameRateWindow: 60,
		FrontendDir: t.TempDir(),
	}
	apphttp.RegisterRoutes(r, db, cfg, "test")

	token, err := service.GenerateSessionToken(u.ID)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	for _, body := range []string{
		`{"result":"win"}`,
		`{"gameType":"rock-paper-scissors"}`,
		`{"gameType":"chess","result":"win"}`,
		`{"gameType":"rock-paper-scissors","result":"crushed-it"}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/games/result", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}
