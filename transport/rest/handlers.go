package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type errorResponse struct {
	Error string `json:"error"`
}

type sessionResponse struct {
	Session *entity.Session `json:"session"`
	Message string          `json:"message"`
	Score   string          `json:"score"`
}

type moveRequest struct {
	Column *int `json:"column"`
}

type moveResponse struct {
	sessionResponse
	Outcome connectfour.MoveOutcome `json:"outcome"`
}

func newSessionResponse(session *entity.Session) sessionResponse {
	return sessionResponse{
		Session: session,
		Message: session.Message(),
		Score:   session.ScoreLine(),
	}
}

func (that *Server) createSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.CreateSession(r.Context())
	if err != nil {
		that.respondWithAppError(w, "createSession", err)
		return
	}

	that.respondWithJSON(w, http.StatusCreated, newSessionResponse(session))
}

func (that *Server) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondWithAppError(w, "getSession", err)
		return
	}

	that.respondWithJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteSession(r.Context(), mux.Vars(r)["id"]); err != nil {
		that.respondWithAppError(w, "deleteSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) makeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Column == nil {
		that.respondWithError(w, http.StatusBadRequest, "column is required")
		return
	}

	session, outcome, err := that.uGame.MakeMove(r.Context(), mux.Vars(r)["id"], *req.Column)
	if err != nil {
		that.respondWithAppError(w, "makeMove", err)
		return
	}

	that.respondWithJSON(w, http.StatusOK, moveResponse{
		sessionResponse: newSessionResponse(session),
		Outcome:         outcome,
	})
}

func (that *Server) restartSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uGame.RestartSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondWithAppError(w, "restartSession", err)
		return
	}

	that.respondWithJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *Server) listResults(w http.ResponseWriter, r *http.Request) {
	results, err := that.uGame.History(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.respondWithAppError(w, "listResults", err)
		return
	}

	that.respondWithJSON(w, http.StatusOK, results)
}

// respondWithAppError maps domain errors to status codes; anything unknown is logged as a 500.
func (that *Server) respondWithAppError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		that.respondWithError(w, http.StatusNotFound, apperror.ErrSessionNotFound.Error())
	case errors.Is(err, apperror.ErrInvalidColumn):
		that.respondWithError(w, http.StatusBadRequest, apperror.ErrInvalidColumn.Error())
	case errors.Is(err, apperror.ErrColumnFull):
		that.respondWithError(w, http.StatusConflict, apperror.ErrColumnFull.Error())
	case errors.Is(err, apperror.ErrGameFinished):
		that.respondWithError(w, http.StatusConflict, apperror.ErrGameFinished.Error())
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		that.respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (that *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	that.respondWithJSON(w, code, errorResponse{Error: message})
}

func (that *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		that.logger.Error("failed to marshal response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if _, err = w.Write(response); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
