package repository

import (
	"context"
	"errors"

	"minigames_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEmailTaken = errors.New("email already registered")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create вставляет нового пользователя, счётчики стартуют с нуля.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name)
		 VALUES ($1, $2, $3)
		 RETURNING id, games_played, games_won, created_at`,
		u.Email,
		u.PasswordHash,
		u.Name,
	).Scan(&u.ID, &u.GamesPlayed, &u.GamesWon, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, COALESCE(name, ''), games_played, games_won, created_at
		 FROM users
		 WHERE email = $1`,
		email,
	))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanOne(r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, COALESCE(name, ''), games_played, games_won, created_at
		 FROM users
		 WHERE id = $1`,
		id,
	))
}

// RecordGamePlayed атомарно инкрементит счётчики: games_played всегда +1,
// games_won +1 только при победе. Один UPDATE, чтобы конкурентные сабмиты
// не теряли инкременты.
func (r *UserRepository) RecordGamePlayed(ctx context.Context, userID int64, won bool) error {
	wonInc := 0
	if won {
		wonInc = 1
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE users
		 SET games_played = games_played + 1, games_won = games_won + $1
		 WHERE id = $2`,
		wonInc, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found")
	}
	return nil
}

// GetCounters возвращает только агрегатные счётчики пользователя.
func (r *UserRepository) GetCounters(ctx context.Context, userID int64) (played, won int64, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT games_played, games_won FROM users WHERE id = $1`,
		userID,
	).Scan(&played, &won)
	return played, won, err
}

func (r *UserRepository) scanOne(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.GamesPlayed,
		&u.GamesWon,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
