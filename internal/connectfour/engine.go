package connectfour

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// NoRow is returned by DropToken when the drop is rejected.
const NoRow = -1

// Result - what a move did to the game.
type Result string

const (
	Rejected  Result = "rejected"
	Continued Result = "continued"
	Won       Result = "won"
	Draw      Result = "draw"
)

// MoveOutcome describes a move applied with ApplyMove.
type MoveOutcome struct {
	Row    int         `json:"row"`
	Column int         `json:"column"`
	Player entity.Cell `json:"player"`
	Result Result      `json:"result"`
}

// axes are the four line directions scanned from the last placed token,
// each as a (row, col) step. Both directions of every axis are walked,
// except vertical: nothing can sit above the token that was just dropped.
var axes = [4][2]int{
	{0, 1},  // horizontal
	{-1, 0}, // vertical, downward
	{1, 1},  // diagonal /
	{1, -1}, // diagonal \
}

// Engine owns the rules of one game. It mutates the state it was created
// with and is not safe for concurrent use.
type Engine struct {
	state *entity.GameState
}

func NewEngine(state *entity.GameState) *Engine {
	return &Engine{state: state}
}

// DropToken places the current player's token at the lowest empty row of the
// column and returns that row, or NoRow if the column is out of range, full,
// or the game is over. It never switches players or evaluates the result.
func (that *Engine) DropToken(column int) int {
	if column < 0 || column >= entity.Cols || that.state.GameOver {
		return NoRow
	}

	row := that.state.Board.Height(column)
	if row == entity.Rows {
		return NoRow
	}

	that.state.Board[row][column] = that.state.CurrentPlayer
	that.state.TurnCount++

	return row
}

// CheckDrop - returns the reason a drop into the column would be rejected, nil if it would land.
func (that *Engine) CheckDrop(column int) error {
	if that.state.GameOver {
		return apperror.ErrGameFinished
	}

	if column < 0 || column >= entity.Cols {
		return fmt.Errorf("%w: column %d", apperror.ErrInvalidColumn, column)
	}

	if that.state.Board.Height(column) == entity.Rows {
		return fmt.Errorf("%w: column %d", apperror.ErrColumnFull, column)
	}

	return nil
}

// CheckWin reports whether the token at (row, col) completes a line of
// WinLength. The line is matched against the current player, so it must be
// called with the coordinates DropToken returned and before SwitchPlayer.
func (that *Engine) CheckWin(row, col int) bool {
	if !entity.InBounds(row, col) {
		return false
	}

	for i, axis := range axes {
		count := 1 + that.countRun(row, col, axis[0], axis[1])
		if i != 1 {
			count += that.countRun(row, col, -axis[0], -axis[1])
		}

		if count >= entity.WinLength {
			return true
		}
	}

	return false
}

// countRun - counts the current player's tokens from (row, col), exclusive, stepping by (dRow, dCol).
func (that *Engine) countRun(row, col, dRow, dCol int) int {
	count := 0

	for r, c := row+dRow, col+dCol; entity.InBounds(r, c); r, c = r+dRow, c+dCol {
		if that.state.Board[r][c] != that.state.CurrentPlayer {
			break
		}
		count++
	}

	return count
}

// IsBoardFull is only meaningful after CheckWin returned false for the last move.
func (that *Engine) IsBoardFull() bool {
	return that.state.TurnCount > entity.Cells
}

func (that *Engine) SwitchPlayer() {
	that.state.CurrentPlayer = that.state.CurrentPlayer.Opponent()
}

// RestartGame clears the board for the next game of the session. The player
// who did not start the previous game starts this one; the score is kept.
func (that *Engine) RestartGame() {
	starter := that.state.StartingPlayer.Opponent()
	if !starter.IsPlayer() {
		starter = entity.Player1
	}

	that.state.Board = entity.Board{}
	that.state.StartingPlayer = starter
	that.state.CurrentPlayer = starter
	that.state.TurnCount = 1
	that.state.GameOver = false
}

func (that *Engine) UpdateScore(isDraw bool, winner entity.Cell) {
	if isDraw {
		that.state.Score.Player1 += 0.5
		that.state.Score.Player2 += 0.5
		return
	}

	switch winner {
	case entity.Player1:
		that.state.Score.Player1++
	case entity.Player2:
		that.state.Score.Player2++
	}
}

// ApplyMove runs a whole turn: drop, win check, full-board check, and either
// ends the game (updating the score) or passes the turn.
func (that *Engine) ApplyMove(column int) MoveOutcome {
	player := that.state.CurrentPlayer
	outcome := MoveOutcome{Row: NoRow, Column: column, Player: player, Result: Rejected}

	row := that.DropToken(column)
	if row == NoRow {
		return outcome
	}
	outcome.Row = row

	switch {
	case that.CheckWin(row, column):
		that.SetGameOver(true)
		that.UpdateScore(false, player)
		outcome.Result = Won
	case that.IsBoardFull():
		that.SetGameOver(true)
		that.UpdateScore(true, entity.EmptyCell)
		outcome.Result = Draw
	default:
		that.SwitchPlayer()
		outcome.Result = Continued
	}

	return outcome
}

func (that *Engine) CurrentPlayer() entity.Cell {
	return that.state.CurrentPlayer
}

func (that *Engine) CurrentPlayerName() string {
	return that.state.CurrentPlayer.Name()
}

// Board returns a copy of the grid.
func (that *Engine) Board() entity.Board {
	return that.state.Board
}

func (that *Engine) IsGameOver() bool {
	return that.state.GameOver
}

func (that *Engine) SetGameOver(gameOver bool) {
	that.state.GameOver = gameOver
}

func (that *Engine) TurnCount() int {
	return that.state.TurnCount
}

func (that *Engine) Score() entity.Score {
	return that.state.Score
}
