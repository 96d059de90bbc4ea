package domain

import "time"

// User - зарегистрированный игрок. Счётчики games_played/games_won
// обновляются только рекордером результатов, больше никем.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	GamesPlayed  int64     `db:"games_played" json:"games_played"`
	GamesWon     int64     `db:"games_won" json:"games_won"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
