package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrInvalidColumn   = errors.New("invalid column index")
	ErrColumnFull      = errors.New("column is full")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotFound        = errors.New("not found")
)
