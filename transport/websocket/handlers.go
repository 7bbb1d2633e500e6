package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

func (that *Server) handleMove(ctx context.Context, c *client, msg *Message) error {
	var req Payload
	if err := json.Unmarshal(msg.Payload, &req); err != nil || req.Column == nil {
		return that.sendError(c, msg.Action, "column is required")
	}

	session, outcome, err := that.uGame.MakeMove(ctx, c.sessionID, *req.Column)
	if err != nil {
		return that.answerError(c, msg.Action, err)
	}

	payload := sessionPayload(session)
	payload.Outcome = &outcome

	return that.send(c, msg.Action, payload)
}

func (that *Server) handleRestart(ctx context.Context, c *client, msg *Message) error {
	session, err := that.uGame.RestartSession(ctx, c.sessionID)
	if err != nil {
		return that.answerError(c, msg.Action, err)
	}

	return that.send(c, msg.Action, sessionPayload(session))
}

// answerError tells the sender why the action failed. Errors that are not the
// player's fault are hidden and returned for logging.
func (that *Server) answerError(c *client, action string, err error) error {
	for _, known := range []error{
		apperror.ErrSessionNotFound,
		apperror.ErrInvalidColumn,
		apperror.ErrColumnFull,
		apperror.ErrGameFinished,
	} {
		if errors.Is(err, known) {
			return that.sendError(c, action, known.Error())
		}
	}

	if sendErr := that.sendError(c, action, "internal error"); sendErr != nil {
		return errors.Join(err, sendErr)
	}

	return err
}

func (that *Server) sendError(c *client, action, text string) error {
	return that.send(c, action, Payload{Error: text})
}

func (that *Server) send(c *client, action string, payload Payload) error {
	message, err := encodeMessage(action, payload)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", action, err)
	}

	if !c.enqueue(message) {
		return errClientGone
	}

	return nil
}
