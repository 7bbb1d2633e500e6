package connectfour

import (
	"testing"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drawMoves fills the board without any line of four.
var drawMoves = []int{
	5, 4, 5, 0, 6, 2, 4, 5, 5, 0, 4, 1, 1, 0, 4, 5, 6, 5, 3, 1, 1,
	2, 2, 6, 2, 6, 6, 3, 6, 2, 0, 3, 0, 3, 3, 4, 3, 1, 4, 2, 1, 0,
}

func newTestEngine() (*Engine, *entity.GameState) {
	state := entity.NewGameState()
	return NewEngine(&state), &state
}

// play applies the moves and requires every one of them to be accepted.
func play(t *testing.T, engine *Engine, columns ...int) MoveOutcome {
	t.Helper()

	var outcome MoveOutcome
	for i, column := range columns {
		outcome = engine.ApplyMove(column)
		require.NotEqual(t, Rejected, outcome.Result, "move %d into column %d", i, column)
	}

	return outcome
}

func TestNewEngine(t *testing.T) {
	// Given: a fresh game state
	engine, _ := newTestEngine()

	// Then: player 1 starts on an empty board at turn 1
	assert.Equal(t, entity.Player1, engine.CurrentPlayer())
	assert.Equal(t, "Player 1", engine.CurrentPlayerName())
	assert.Equal(t, 1, engine.TurnCount())
	assert.False(t, engine.IsGameOver())
	assert.Equal(t, entity.Board{}, engine.Board())
	assert.Equal(t, entity.Score{}, engine.Score())
}

func TestEngine_DropToken(t *testing.T) {
	t.Run("Tokens stack from the bottom", func(t *testing.T) {
		// Given: a new game
		engine, state := newTestEngine()

		// When: both players drop into column 3
		first := engine.DropToken(3)
		engine.SwitchPlayer()
		second := engine.DropToken(3)

		// Then: the tokens occupy rows 0 and 1
		assert.Equal(t, 0, first)
		assert.Equal(t, 1, second)
		assert.Equal(t, entity.Player1, state.Board[0][3])
		assert.Equal(t, entity.Player2, state.Board[1][3])
		assert.Equal(t, 3, engine.TurnCount())
	})

	t.Run("Drop does not switch the player", func(t *testing.T) {
		// Given: a new game
		engine, _ := newTestEngine()

		// When: player 1 drops a token
		row := engine.DropToken(0)

		// Then: player 1 is still to move until SwitchPlayer is called
		require.Equal(t, 0, row)
		assert.Equal(t, entity.Player1, engine.CurrentPlayer())
	})

	t.Run("Full column is rejected", func(t *testing.T) {
		// Given: column 0 filled to the top
		engine, state := newTestEngine()
		for i := 0; i < entity.Rows; i++ {
			require.NotEqual(t, NoRow, engine.DropToken(0))
			engine.SwitchPlayer()
		}
		before := *state

		// When: another token is dropped into column 0
		row := engine.DropToken(0)

		// Then: the drop is rejected and nothing changes
		assert.Equal(t, NoRow, row)
		assert.Equal(t, before, *state)
		assert.Equal(t, entity.Rows+1, engine.TurnCount())
	})

	t.Run("Out of range columns are rejected", func(t *testing.T) {
		for _, column := range []int{-1, entity.Cols, 100} {
			// Given: a new game
			engine, state := newTestEngine()

			// When: dropping into a column outside the board
			row := engine.DropToken(column)

			// Then: the drop is rejected and the state is untouched
			assert.Equal(t, NoRow, row, "column %d", column)
			assert.Equal(t, entity.NewGameState(), *state)
		}
	})

	t.Run("Drop after game over is rejected", func(t *testing.T) {
		// Given: a game that is over
		engine, state := newTestEngine()
		engine.SetGameOver(true)

		// When: dropping into an empty column
		row := engine.DropToken(2)

		// Then: the drop is rejected
		assert.Equal(t, NoRow, row)
		assert.Equal(t, entity.EmptyCell, state.Board[0][2])
		assert.Equal(t, 1, engine.TurnCount())
	})
}

func TestEngine_CheckDrop(t *testing.T) {
	t.Run("Accepted drop", func(t *testing.T) {
		engine, _ := newTestEngine()

		assert.NoError(t, engine.CheckDrop(0))
	})

	t.Run("Invalid column", func(t *testing.T) {
		engine, _ := newTestEngine()

		assert.ErrorIs(t, engine.CheckDrop(-1), apperror.ErrInvalidColumn)
		assert.ErrorIs(t, engine.CheckDrop(entity.Cols), apperror.ErrInvalidColumn)
	})

	t.Run("Full column", func(t *testing.T) {
		// Given: column 6 filled alternately
		engine, _ := newTestEngine()
		play(t, engine, 6, 6, 6, 6, 6, 6)

		// Then: the reason is a full column
		assert.ErrorIs(t, engine.CheckDrop(6), apperror.ErrColumnFull)
	})

	t.Run("Game over wins over everything else", func(t *testing.T) {
		engine, _ := newTestEngine()
		engine.SetGameOver(true)

		assert.ErrorIs(t, engine.CheckDrop(-1), apperror.ErrGameFinished)
	})
}

func TestEngine_CheckWin(t *testing.T) {
	t.Run("Horizontal line in the bottom row", func(t *testing.T) {
		// Given: player 1 on columns 0..2 of row 0, player 2 stacked on top
		engine, _ := newTestEngine()
		play(t, engine, 0, 0, 1, 1, 2, 2)

		// When: player 1 drops into column 3
		row := engine.DropToken(3)

		// Then: the move wins
		require.Equal(t, 0, row)
		assert.True(t, engine.CheckWin(0, 3))
	})

	t.Run("Horizontal line completed in the middle", func(t *testing.T) {
		// Given: player 1 on columns 0, 1 and 3 of row 0
		engine, _ := newTestEngine()
		play(t, engine, 0, 0, 1, 1, 3, 3)

		// When: player 1 fills the gap at column 2
		row := engine.DropToken(2)

		// Then: both directions are counted
		assert.True(t, engine.CheckWin(row, 2))
	})

	t.Run("Vertical line", func(t *testing.T) {
		// Given: three player 1 tokens in column 0, player 2 in column 1
		engine, _ := newTestEngine()
		play(t, engine, 0, 1, 0, 1, 0, 1)

		// When: player 1 drops a fourth token into column 0
		row := engine.DropToken(0)

		// Then: the move wins
		require.Equal(t, 3, row)
		assert.True(t, engine.CheckWin(row, 0))
	})

	t.Run("Diagonal rising to the right", func(t *testing.T) {
		// Given: player 1 on (0,0), (1,1), (2,2)
		engine, _ := newTestEngine()
		play(t, engine, 0, 1, 1, 2, 3, 2, 2, 3, 4, 3)

		// When: player 1 drops into column 3
		row := engine.DropToken(3)

		// Then: (3,3) completes the diagonal
		require.Equal(t, 3, row)
		assert.True(t, engine.CheckWin(row, 3))
	})

	t.Run("Diagonal rising to the left", func(t *testing.T) {
		// Given: player 1 on (0,6), (1,5), (2,4)
		engine, _ := newTestEngine()
		play(t, engine, 6, 5, 5, 4, 3, 4, 4, 3, 2, 3)

		// When: player 1 drops into column 3
		row := engine.DropToken(3)

		// Then: (3,3) completes the diagonal
		require.Equal(t, 3, row)
		assert.True(t, engine.CheckWin(row, 3))
	})

	t.Run("Three in a row is not a win", func(t *testing.T) {
		engine, _ := newTestEngine()
		play(t, engine, 0, 0, 1, 1)

		row := engine.DropToken(2)

		assert.False(t, engine.CheckWin(row, 2))
	})

	t.Run("Opponent tokens break the line", func(t *testing.T) {
		// Given: P1 P1 P2 in row 0
		engine, _ := newTestEngine()
		play(t, engine, 0, 2, 1, 6, 4, 6)

		// When: player 1 drops into column 3, between P2 at 2 and P1 at 4
		row := engine.DropToken(3)

		// Then: only two contiguous tokens count
		assert.False(t, engine.CheckWin(row, 3))
	})

	t.Run("Out of bounds coordinates never win", func(t *testing.T) {
		engine, _ := newTestEngine()

		assert.False(t, engine.CheckWin(-1, 0))
		assert.False(t, engine.CheckWin(0, entity.Cols))
	})
}

func TestEngine_IsBoardFull(t *testing.T) {
	// Given: all cells but the last one filled without a line of four
	engine, _ := newTestEngine()
	play(t, engine, drawMoves[:len(drawMoves)-1]...)
	require.False(t, engine.IsBoardFull())

	// When: the last token is dropped
	last := drawMoves[len(drawMoves)-1]
	row := engine.DropToken(last)

	// Then: it does not win and the board is full
	require.NotEqual(t, NoRow, row)
	assert.False(t, engine.CheckWin(row, last))
	assert.True(t, engine.IsBoardFull())
	assert.Equal(t, entity.Cells+1, engine.TurnCount())
}

func TestEngine_SwitchPlayer(t *testing.T) {
	engine, _ := newTestEngine()

	engine.SwitchPlayer()
	assert.Equal(t, entity.Player2, engine.CurrentPlayer())
	assert.Equal(t, "Player 2", engine.CurrentPlayerName())

	engine.SwitchPlayer()
	assert.Equal(t, entity.Player1, engine.CurrentPlayer())
}

func TestEngine_ApplyMove(t *testing.T) {
	t.Run("Non terminal move passes the turn", func(t *testing.T) {
		// Given: a new game
		engine, _ := newTestEngine()

		// When: player 1 plays column 4
		outcome := engine.ApplyMove(4)

		// Then: the move continues the game and player 2 is to move
		assert.Equal(t, MoveOutcome{Row: 0, Column: 4, Player: entity.Player1, Result: Continued}, outcome)
		assert.Equal(t, entity.Player2, engine.CurrentPlayer())
		assert.False(t, engine.IsGameOver())
	})

	t.Run("Rejected move changes nothing", func(t *testing.T) {
		// Given: a new game
		engine, state := newTestEngine()

		// When: an invalid column is played
		outcome := engine.ApplyMove(9)

		// Then: the move is rejected, the player keeps the turn
		assert.Equal(t, MoveOutcome{Row: NoRow, Column: 9, Player: entity.Player1, Result: Rejected}, outcome)
		assert.Equal(t, entity.NewGameState(), *state)
	})

	t.Run("Winning move ends the game", func(t *testing.T) {
		// Given: player 1 one move from a vertical line
		engine, _ := newTestEngine()
		play(t, engine, 0, 1, 0, 1, 0, 1)

		// When: player 1 completes it
		outcome := engine.ApplyMove(0)

		// Then: the game is over, the winner keeps the turn and scores
		assert.Equal(t, Won, outcome.Result)
		assert.Equal(t, entity.Player1, outcome.Player)
		assert.True(t, engine.IsGameOver())
		assert.Equal(t, entity.Player1, engine.CurrentPlayer())
		assert.Equal(t, entity.Score{Player1: 1}, engine.Score())

		// And: further moves are rejected
		assert.Equal(t, Rejected, engine.ApplyMove(5).Result)
	})

	t.Run("Last cell without a line is a draw", func(t *testing.T) {
		// Given: a board one token from full
		engine, _ := newTestEngine()
		play(t, engine, drawMoves[:len(drawMoves)-1]...)

		// When: the last token is played
		outcome := engine.ApplyMove(drawMoves[len(drawMoves)-1])

		// Then: the game ends in a draw
		assert.Equal(t, Draw, outcome.Result)
		assert.True(t, engine.IsGameOver())
		assert.Equal(t, entity.Score{Player1: 0.5, Player2: 0.5}, engine.Score())
	})
}

func TestEngine_RestartGame(t *testing.T) {
	t.Run("Restart after a win alternates the starter", func(t *testing.T) {
		// Given: a game won by player 1
		engine, state := newTestEngine()
		outcome := play(t, engine, 0, 1, 0, 1, 0, 1, 0)
		require.Equal(t, Won, outcome.Result)

		// When: the game is restarted
		engine.RestartGame()

		// Then: the board is cleared, player 2 starts, the score is kept
		assert.Equal(t, entity.Board{}, engine.Board())
		assert.Equal(t, 1, engine.TurnCount())
		assert.False(t, engine.IsGameOver())
		assert.Equal(t, entity.Player2, engine.CurrentPlayer())
		assert.Equal(t, entity.Player2, state.StartingPlayer)
		assert.Equal(t, entity.Score{Player1: 1}, engine.Score())
	})

	t.Run("Starter flips relative to the previous starter, not the winner", func(t *testing.T) {
		// Given: a second game, started by player 2, won by player 2
		engine, state := newTestEngine()
		engine.RestartGame()
		outcome := play(t, engine, 0, 1, 0, 1, 0, 1, 0)
		require.Equal(t, Won, outcome.Result)
		require.Equal(t, entity.Player2, outcome.Player)

		// When: the game is restarted
		engine.RestartGame()

		// Then: player 1 starts again
		assert.Equal(t, entity.Player1, engine.CurrentPlayer())
		assert.Equal(t, entity.Player1, state.StartingPlayer)
		assert.Equal(t, entity.Score{Player2: 1}, engine.Score())
	})
}

func TestEngine_UpdateScore(t *testing.T) {
	t.Run("Win adds one point to the winner only", func(t *testing.T) {
		engine, _ := newTestEngine()

		engine.UpdateScore(false, entity.Player2)

		assert.Equal(t, entity.Score{Player2: 1}, engine.Score())
	})

	t.Run("Draw adds half a point to both", func(t *testing.T) {
		engine, _ := newTestEngine()

		engine.UpdateScore(true, entity.EmptyCell)
		engine.UpdateScore(false, entity.Player1)

		assert.Equal(t, entity.Score{Player1: 1.5, Player2: 0.5}, engine.Score())
	})
}

func TestEngine_Board(t *testing.T) {
	// Given: a game with one token
	engine, state := newTestEngine()
	play(t, engine, 3)

	// When: the caller modifies the returned board
	board := engine.Board()
	board[0][3] = entity.Player2
	board[5][5] = entity.Player1

	// Then: the engine's grid is untouched
	assert.Equal(t, entity.Player1, state.Board[0][3])
	assert.Equal(t, entity.EmptyCell, state.Board[5][5])
}
