package entity

import "time"

// Result is the record of one finished game.
type Result struct {
	SessionID  string    `json:"session_id"`
	Game       int       `json:"game"`
	Winner     Cell      `json:"winner"`
	Draw       bool      `json:"draw"`
	Moves      int       `json:"moves"`
	Score      Score     `json:"score"`
	FinishedAt time.Time `json:"finished_at"`
}
