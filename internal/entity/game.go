package entity

import (
	"fmt"
	"time"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Score is the running score of a session. A draw gives half a point to each player.
type Score struct {
	Player1 float64 `json:"player1"`
	Player2 float64 `json:"player2"`
}

func (that Score) String() string {
	return fmt.Sprintf("%.1f - %.1f", that.Player1, that.Player2)
}

// GameState is everything the engine owns between two moves.
type GameState struct {
	Board          Board `json:"board"`
	CurrentPlayer  Cell  `json:"current_player"`
	StartingPlayer Cell  `json:"starting_player"`
	TurnCount      int   `json:"turn_count"`
	GameOver       bool  `json:"game_over"`
	Score          Score `json:"score"`
}

func NewGameState() GameState {
	return GameState{
		CurrentPlayer:  Player1,
		StartingPlayer: Player1,
		TurnCount:      1,
	}
}

// Session is one play session: a sequence of games between the same two players.
type Session struct {
	ID        string    `json:"id"`
	State     GameState `json:"state"`
	Status    string    `json:"status"`
	Winner    Cell      `json:"winner"`
	Games     int       `json:"games"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		State:     NewGameState(),
		Status:    StatusOngoing,
		Winner:    EmptyCell,
		Games:     1,
		UpdatedAt: time.Now().UTC(),
	}
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Session) IsDraw() bool {
	return that.IsFinished() && that.Winner == EmptyCell
}

// Message - the line shown to the players after the last change.
func (that *Session) Message() string {
	switch {
	case that.IsDraw():
		return "It's a draw!"
	case that.IsFinished():
		return that.Winner.Name() + " wins!"
	default:
		return that.State.CurrentPlayer.Name() + "'s turn"
	}
}

// ScoreLine - the running score as the end-of-game prompt shows it.
func (that *Session) ScoreLine() string {
	return "Current score is " + that.State.Score.String()
}
