package service

import (
	"context"
	"math"
	"time"

	"minigames_webapp/internal/domain"
	"minigames_webapp/internal/game"
	"minigames_webapp/internal/logger"
	"minigames_webapp/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var resultMismatches = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "game_result_mismatches_total",
		Help: "Submissions whose payload disagreed with the reported result",
	},
)

func init() {
	prometheus.MustRegister(resultMismatches)
}

// GameService - рекордер результатов и чтение статистики.
type GameService struct {
	users    *repository.UserRepository
	sessions *repository.GameSessionRepository
}

func NewGameService(db *pgxpool.Pool) *GameService {
	return &GameService{
		users:    repository.NewUserRepository(db),
		sessions: repository.NewGameSessionRepository(db),
	}
}

// UserStats - агрегаты для дашборда
type UserStats struct {
	GamesPlayed int64 `json:"gamesPlayed"`
	GamesWon    int64 `json:"gamesWon"`
	WinRate     int   `json:"winRate"`
}

// RecordResult writes one completed GameSession and bumps the caller's
// counters. The two writes are independent on purpose: if the second fails
// after the first succeeded, the records diverge and nothing reconciles
// them. Resubmitting the same game double-counts; at-most-once submission
// is the client's job.
func (s *GameService) RecordResult(ctx context.Context, userID int64, gameType domain.GameType, result domain.GameResult, gameData map[string]interface{}) error {
	s.crossCheck(userID, gameType, result, gameData)

	var winnerID *int64
	if result == domain.GameResultWin {
		winnerID = &userID
	}

	now := time.Now()
	gs := &domain.GameSession{
		GameType:    gameType,
		Player1ID:   userID,
		WinnerID:    winnerID,
		GameData:    gameData,
		Status:      domain.GameStatusCompleted,
		CompletedAt: &now,
	}

	if err := s.sessions.Create(ctx, gs); err != nil {
		return err
	}

	return s.users.RecordGamePlayed(ctx, userID, result == domain.GameResultWin)
}

// Stats возвращает счётчики и winRate для пользователя.
func (s *GameService) Stats(ctx context.Context, userID int64) (*UserStats, error) {
	played, won, err := s.users.GetCounters(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		GamesPlayed: played,
		GamesWon:    won,
		WinRate:     WinRate(played, won),
	}, nil
}

// History возвращает последние сессии пользователя.
func (s *GameService) History(ctx context.Context, userID int64, limit int) ([]*domain.GameSession, error) {
	if limit > 100 {
		limit = 100
	}
	return s.sessions.GetByPlayer(ctx, userID, limit)
}

// WinRate is round(100 * won / played), 0 when nothing was played yet.
func WinRate(played, won int64) int {
	if played <= 0 {
		return 0
	}
	return int(math.Round(float64(won) / float64(played) * 100))
}

// crossCheck re-runs the outcome evaluator against the submitted payload
// when it happens to parse. The reported result stays authoritative; a
// mismatch is only logged so the self-reporting gap is at least visible.
func (s *GameService) crossCheck(userID int64, gameType domain.GameType, result domain.GameResult, gameData map[string]interface{}) {
	expected, ok := evaluateReported(gameType, gameData)
	if !ok || expected == "" {
		return
	}
	if expected != string(result) {
		resultMismatches.Inc()
		logger.Warn("reported result disagrees with evaluator",
			"user_id", userID,
			"game_type", gameType,
			"reported", result,
			"evaluated", expected,
		)
	}
}

// evaluateReported derives the outcome from game_data. Returns ok=false when
// the payload does not contain a parsable terminal state.
func evaluateReported(gameType domain.GameType, gameData map[string]interface{}) (string, bool) {
	switch gameType {
	case domain.GameTypeTicTacToe:
		board, ok := parseBoard(gameData["board"])
		if !ok {
			return "", false
		}
		// клиент всегда играет за X
		switch game.EvaluateBoard(board) {
		case game.BoardWinX:
			return "win", true
		case game.BoardWinO:
			return "lose", true
		case game.BoardDraw:
			return "draw", true
		default:
			return "", true // non-terminal board, nothing to compare
		}

	case domain.GameTypeRPS:
		player, ok1 := gameData["playerChoice"].(string)
		opponent, ok2 := gameData["computerChoice"].(string)
		if !ok1 || !ok2 || !game.ValidMove(game.Move(player)) || !game.ValidMove(game.Move(opponent)) {
			return "", false
		}
		return game.Decide(game.Move(player), game.Move(opponent)), true
	}

	return "", false
}

func parseBoard(v interface{}) ([9]game.Mark, bool) {
	var board [9]game.Mark

	cells, ok := v.([]interface{})
	if !ok || len(cells) != 9 {
		return board, false
	}

	for i, c := range cells {
		switch cell := c.(type) {
		case nil:
			board[i] = game.MarkNone
		case string:
			switch cell {
			case "X":
				board[i] = game.MarkX
			case "O":
				board[i] = game.MarkO
			case "":
				board[i] = game.MarkNone
			default:
				return board, false
			}
		default:
			return board, false
		}
	}

	return board, true
}
