package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	ListBySession(ctx context.Context, sessionID string) ([]entity.Result, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

func (that *resultRepository) Save(ctx context.Context, result *entity.Result) error {
	query := `INSERT INTO results (session_id, game, winner, draw, moves, score_p1, score_p2, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.SessionID,
		result.Game,
		int(result.Winner),
		result.Draw,
		result.Moves,
		result.Score.Player1,
		result.Score.Player2,
		result.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *resultRepository) ListBySession(ctx context.Context, sessionID string) ([]entity.Result, error) {
	query := `SELECT session_id, game, winner, draw, moves, score_p1, score_p2, finished_at
		FROM results WHERE session_id = ? ORDER BY game`

	rows, err := that.conn.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}
	defer rows.Close()

	results := make([]entity.Result, 0)

	for rows.Next() {
		var (
			result     entity.Result
			winner     int
			finishedAt int64
		)

		if err = rows.Scan(
			&result.SessionID,
			&result.Game,
			&winner,
			&result.Draw,
			&result.Moves,
			&result.Score.Player1,
			&result.Score.Player2,
			&finishedAt,
		); err != nil {
			return nil, fmt.Errorf("can't scan result: %w", err)
		}

		result.Winner = entity.Cell(winner)
		result.FinishedAt = time.UnixMilli(finishedAt).UTC()
		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't list results: %w", err)
	}

	return results, nil
}
