package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	actionSessionState   = "session:state"
	actionSessionMove    = "session:move"
	actionSessionRestart = "session:restart"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is shared by requests and responses; only the relevant fields are set.
type Payload struct {
	Session *entity.Session          `json:"session,omitempty"`
	Outcome *connectfour.MoveOutcome `json:"outcome,omitempty"`
	Column  *int                     `json:"column,omitempty"`
	Message string                   `json:"message,omitempty"`
	Score   string                   `json:"score,omitempty"`
	Error   string                   `json:"error,omitempty"`
}

func sessionPayload(session *entity.Session) Payload {
	return Payload{
		Session: session,
		Message: session.Message(),
		Score:   session.ScoreLine(),
	}
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Action: action, Payload: rawPayload})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return message, nil
}
