package domain

import "time"

// GameType - тип игры
type GameType string

const (
	GameTypeTicTacToe GameType = "tic-tac-toe"
	GameTypeRPS       GameType = "rock-paper-scissors"
)

// ValidGameType reports whether t is one of the supported game types.
func ValidGameType(t GameType) bool {
	return t == GameTypeTicTacToe || t == GameTypeRPS
}

// GameResult - результат игры со стороны игрока, который её репортит
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLose GameResult = "lose"
	GameResultDraw GameResult = "draw"
)

// ValidGameResult reports whether r is one of the supported outcomes.
func ValidGameResult(r GameResult) bool {
	return r == GameResultWin || r == GameResultLose || r == GameResultDraw
}

// GameStatus - статус сессии
type GameStatus string

const (
	GameStatusWaiting    GameStatus = "waiting"
	GameStatusInProgress GameStatus = "in-progress"
	GameStatusCompleted  GameStatus = "completed"
)

// GameSession - запись одной завершённой игры. Текущие флоу пишут её сразу
// со статусом completed и больше не трогают. Player2ID зарезервирован под
// мультиплеер и сейчас нигде не заполняется.
type GameSession struct {
	ID          int64                  `db:"id" json:"id"`
	GameType    GameType               `db:"game_type" json:"game_type"`
	Player1ID   int64                  `db:"player1_id" json:"player1_id"`
	Player2ID   *int64                 `db:"player2_id" json:"player2_id,omitempty"`
	WinnerID    *int64                 `db:"winner_id" json:"winner_id,omitempty"`
	GameData    map[string]interface{} `db:"game_data" json:"game_data,omitempty"`
	Status      GameStatus             `db:"status" json:"status"`
	CreatedAt   time.Time              `db:"created_at" json:"created_at"`
	CompletedAt *time.Time             `db:"completed_at" json:"completed_at,omitempty"`
}
