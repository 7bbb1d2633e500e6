package entity

// Cell is the content of one board position.
type Cell uint8

const (
	EmptyCell Cell = iota
	Player1
	Player2
)

const (
	player1Mark = "●"
	player2Mark = "○"
	emptyMark   = " "
)

// Opponent returns the other player's token. EmptyCell has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return EmptyCell
	}
}

func (that Cell) IsPlayer() bool {
	return that == Player1 || that == Player2
}

// Name - human-readable player name.
func (that Cell) Name() string {
	switch that {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return ""
	}
}

func (that Cell) String() string {
	switch that {
	case Player1:
		return player1Mark
	case Player2:
		return player2Mark
	default:
		return emptyMark
	}
}
