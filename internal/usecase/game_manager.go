package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/pkg"
)

type sessionRepoDep interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepoDep interface {
	Save(ctx context.Context, result *entity.Result) error
	ListBySession(ctx context.Context, sessionID string) ([]entity.Result, error)
}

type notifierDep interface {
	Publish(session *entity.Session)
}

// GameManager runs play sessions. Every engine call for a session happens
// while that session's lock is held, so moves on one session are applied
// strictly one after another.
type GameManager struct {
	logger *slog.Logger

	sessionRepo sessionRepoDep
	resultRepo  resultRepoDep
	notifier    notifierDep

	locks *keyedMutex
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepoDep, resultRepo resultRepoDep, notifier notifierDep) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		sessionRepo: sessionRepo,
		resultRepo:  resultRepo,
		notifier:    notifier,

		locks: newKeyedMutex(),
	}
}

func (that *GameManager) CreateSession(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(pkg.GenerateSessionID())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "session", session.ID)

	return session, nil
}

func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// MakeMove drops the current player's token into the column. A rejected move
// returns the session unchanged together with the reason.
func (that *GameManager) MakeMove(ctx context.Context, id string, column int) (*entity.Session, connectfour.MoveOutcome, error) {
	log := that.logger.With("method", "MakeMove", "session", id)

	unlock := that.locks.Lock(id)
	defer unlock()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, connectfour.MoveOutcome{}, err
	}

	engine := connectfour.NewEngine(&session.State)

	outcome := engine.ApplyMove(column)
	if outcome.Result == connectfour.Rejected {
		return session, outcome, fmt.Errorf("failed make move: %w", engine.CheckDrop(column))
	}

	switch outcome.Result {
	case connectfour.Won:
		session.Status = entity.StatusFinished
		session.Winner = outcome.Player
	case connectfour.Draw:
		session.Status = entity.StatusFinished
		session.Winner = entity.EmptyCell
	}
	session.UpdatedAt = time.Now().UTC()

	if err = that.updateSession(ctx, session); err != nil {
		return nil, connectfour.MoveOutcome{}, err
	}

	if session.IsFinished() {
		log.Info("game finished", "result", outcome.Result, "winner", session.Winner.Name(), "score", session.State.Score.String())
		that.saveResult(ctx, session)
	}

	that.publish(session)

	return session, outcome, nil
}

// RestartSession starts the next game of the session. The score is kept and
// the other player starts.
func (that *GameManager) RestartSession(ctx context.Context, id string) (*entity.Session, error) {
	unlock := that.locks.Lock(id)
	defer unlock()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	connectfour.NewEngine(&session.State).RestartGame()

	session.Status = entity.StatusOngoing
	session.Winner = entity.EmptyCell
	session.Games++
	session.UpdatedAt = time.Now().UTC()

	if err = that.updateSession(ctx, session); err != nil {
		return nil, err
	}

	that.logger.Info("session restarted", "session", id, "starting_player", session.State.StartingPlayer.Name())

	that.publish(session)

	return session, nil
}

func (that *GameManager) DeleteSession(ctx context.Context, id string) error {
	unlock := that.locks.Lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "session", id)

	return nil
}

// History - finished games of the session, oldest first.
func (that *GameManager) History(ctx context.Context, id string) ([]entity.Result, error) {
	results, err := that.resultRepo.ListBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

func (that *GameManager) updateSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// saveResult - history is best effort, the move itself already succeeded.
func (that *GameManager) saveResult(ctx context.Context, session *entity.Session) {
	log := that.logger.With("method", "saveResult", "session", session.ID)

	result := &entity.Result{
		SessionID:  session.ID,
		Game:       session.Games,
		Winner:     session.Winner,
		Draw:       session.IsDraw(),
		Moves:      session.State.TurnCount - 1,
		Score:      session.State.Score,
		FinishedAt: session.UpdatedAt,
	}

	if err := that.resultRepo.Save(ctx, result); err != nil {
		log.Error("failed to save result", "error", err)
	}
}

func (that *GameManager) publish(session *entity.Session) {
	if that.notifier != nil {
		that.notifier.Publish(session)
	}
}
