package repository

import (
	"context"
	"encoding/json"

	"minigames_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GameSessionRepository struct {
	db *pgxpool.Pool
}

func NewGameSessionRepository(db *pgxpool.Pool) *GameSessionRepository {
	return &GameSessionRepository{db: db}
}

// Create сохраняет запись игры. game_data пишем как есть, без схемы.
func (r *GameSessionRepository) Create(ctx context.Context, gs *domain.GameSession) error {
	dataJSON, err := json.Marshal(gs.GameData)
	if err != nil {
		dataJSON = []byte("{}")
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO game_sessions
			(game_type, player1_id, player2_id, winner_id, game_data, status, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		gs.GameType,
		gs.Player1ID,
		gs.Player2ID,
		gs.WinnerID,
		dataJSON,
		gs.Status,
		gs.CompletedAt,
	).Scan(&gs.ID, &gs.CreatedAt)
}

// GetByPlayer возвращает последние сессии игрока, новые первыми.
func (r *GameSessionRepository) GetByPlayer(ctx context.Context, playerID int64, limit int) ([]*domain.GameSession, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, game_type, player1_id, player2_id, winner_id, game_data, status, created_at, completed_at
		 FROM game_sessions
		 WHERE player1_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.GameSession
	for rows.Next() {
		var (
			gs       domain.GameSession
			dataJSON []byte
		)
		if err := rows.Scan(
			&gs.ID, &gs.GameType, &gs.Player1ID, &gs.Player2ID, &gs.WinnerID,
			&dataJSON, &gs.Status, &gs.CreatedAt, &gs.CompletedAt,
		); err != nil {
			return nil, err
		}
		if len(dataJSON) > 0 {
			_ = json.Unmarshal(dataJSON, &gs.GameData)
		}
		result = append(result, &gs)
	}

	return result, rows.Err()
}

// CountByPlayer подсчитывает сессии игрока (для интеграционных тестов и отладки).
func (r *GameSessionRepository) CountByPlayer(ctx context.Context, playerID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM game_sessions WHERE player1_id = $1`,
		playerID,
	).Scan(&n)
	return n, err
}
