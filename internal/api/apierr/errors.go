package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes; the same codes travel in actionRejected events
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeRoomNotAvailable     = "ROOM_NOT_AVAILABLE"
	CodeRoomSameUser         = "ROOM_SAME_USER"
	CodeRoomWrongPassword    = "ROOM_WRONG_PASSWORD"
	CodeNotCreator           = "NOT_CREATOR"
	CodeRoomNotWaiting       = "ROOM_NOT_WAITING"
	CodeNotYourTurn          = "NOT_YOUR_TURN"
	CodeGameNotInProgress    = "GAME_NOT_IN_PROGRESS"
	CodeNoNewTiles           = "NO_NEW_TILES"
	CodeDisconnectedWord     = "DISCONNECTED_PLACEMENT"
	CodeMustCoverCenter      = "MUST_COVER_CENTER"
	CodeOutOfBounds          = "OUT_OF_BOUNDS"
	CodeInvalidWords         = "INVALID_WORDS"
	CodeInsufficientLetters  = "INSUFFICIENT_RACK_LETTERS"
	CodeExchangeReserveLow   = "EXCHANGE_RESERVE_LOW"
	CodeSessionNotFound      = "SESSION_NOT_FOUND"
	CodePlayerNotFound       = "PLAYER_NOT_FOUND"
	CodeDictionaryNotLoaded  = "DICTIONARY_NOT_LOADED"
	CodeFatalState           = "FATAL_STATE"
	CodeInternalError        = "INTERNAL_ERROR"
)

// Kind maps an error to its wire code
func Kind(err error) string {
	switch {
	case errors.Is(err, model.ErrRoomNotAvailable):
		return CodeRoomNotAvailable
	case errors.Is(err, model.ErrRoomSameUser):
		return CodeRoomSameUser
	case errors.Is(err, model.ErrRoomWrongPassword):
		return CodeRoomWrongPassword
	case errors.Is(err, model.ErrNotCreator):
		return CodeNotCreator
	case errors.Is(err, model.ErrRoomNotWaiting):
		return CodeRoomNotWaiting
	case errors.Is(err, model.ErrNotYourTurn):
		return CodeNotYourTurn
	case errors.Is(err, model.ErrGameNotInProgress):
		return CodeGameNotInProgress
	case errors.Is(err, model.ErrNoNewTiles):
		return CodeNoNewTiles
	case errors.Is(err, model.ErrDisconnectedPlacement):
		return CodeDisconnectedWord
	case errors.Is(err, model.ErrMustCoverCenter):
		return CodeMustCoverCenter
	case errors.Is(err, model.ErrOutOfBounds):
		return CodeOutOfBounds
	case errors.Is(err, model.ErrInvalidWords):
		return CodeInvalidWords
	case errors.Is(err, model.ErrInsufficientRackLetters):
		return CodeInsufficientLetters
	case errors.Is(err, model.ErrExchangeReserveLow):
		return CodeExchangeReserveLow
	case errors.Is(err, model.ErrSessionNotFound):
		return CodeSessionNotFound
	case errors.Is(err, model.ErrPlayerNotFound):
		return CodePlayerNotFound
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return CodeDictionaryNotLoaded
	case errors.Is(err, model.ErrFatalState):
		return CodeFatalState
	default:
		return CodeInternalError
	}
}

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRoomNotAvailable):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotAvailable, "Room is not available"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "No live match for this room"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
