package game

// Move - выбор в камень-ножницы-бумага
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"
)

// ValidMove reports whether m is one of the three choices.
func ValidMove(m Move) bool {
	return m == MoveRock || m == MovePaper || m == MoveScissors
}

// Decide returns "win"/"lose"/"draw" from the perspective of moveA.
// The beats-relation is cyclic: rock > scissors > paper > rock.
func Decide(moveA, moveB Move) string {
	if moveA == moveB {
		return "draw"
	}

	switch moveA {
	case MoveRock:
		if moveB == MoveScissors {
			return "win"
		}
	case MovePaper:
		if moveB == MoveRock {
			return "win"
		}
	case MoveScissors:
		if moveB == MovePaper {
			return "win"
		}
	}

	return "lose"
}
