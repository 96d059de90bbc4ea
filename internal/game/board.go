package game

// Mark - клетка поля 3x3
type Mark string

const (
	MarkNone Mark = ""
	MarkX    Mark = "X"
	MarkO    Mark = "O"
)

// BoardOutcome is the terminal-state classification of a tic-tac-toe board.
type BoardOutcome string

const (
	BoardWinX       BoardOutcome = "x_wins"
	BoardWinO       BoardOutcome = "o_wins"
	BoardDraw       BoardOutcome = "draw"
	BoardInProgress BoardOutcome = "in_progress"
)

// winLines - 8 выигрышных троек в фиксированном порядке:
// 3 строки, 3 столбца, 2 диагонали.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// EvaluateBoard classifies a 9-cell board. The first line fully occupied by
// one mark wins; a full board with no winner is a draw; anything else is
// still in progress.
func EvaluateBoard(board [9]Mark) BoardOutcome {
	for _, line := range winLines {
		m := board[line[0]]
		if m != MarkNone && m == board[line[1]] && m == board[line[2]] {
			if m == MarkX {
				return BoardWinX
			}
			return BoardWinO
		}
	}

	for _, m := range board {
		if m == MarkNone {
			return BoardInProgress
		}
	}
	return BoardDraw
}

// WinnerMark returns the winning mark for terminal win outcomes, MarkNone otherwise.
func WinnerMark(o BoardOutcome) Mark {
	switch o {
	case BoardWinX:
		return MarkX
	case BoardWinO:
		return MarkO
	default:
		return MarkNone
	}
}
