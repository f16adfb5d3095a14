package model

import "errors"

// Common errors used across the application. All are recoverable,
// user-facing rejections except ErrFatalState, which aborts the session.
var (
	// Room errors
	ErrRoomNotAvailable  = errors.New("room is not available")
	ErrRoomSameUser      = errors.New("user already occupies a seat in this room")
	ErrRoomWrongPassword = errors.New("wrong room password")
	ErrNotCreator        = errors.New("player is not the room creator")
	ErrRoomNotWaiting    = errors.New("room is not accepting a start")

	// Placement errors
	ErrNoNewTiles            = errors.New("placement puts no new tiles on the board")
	ErrDisconnectedPlacement = errors.New("placement does not touch an existing tile")
	ErrMustCoverCenter       = errors.New("first placement must cover the center cell")
	ErrOutOfBounds           = errors.New("placement starts outside the board")
	ErrInvalidWords          = errors.New("placement forms invalid words")

	// Turn errors
	ErrNotYourTurn             = errors.New("not this player's turn")
	ErrGameNotInProgress       = errors.New("game is not in progress")
	ErrInsufficientRackLetters = errors.New("rack does not hold the requested letters")
	ErrExchangeReserveLow      = errors.New("reserve too low to exchange")

	// Registry errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists for room")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")

	// Fatal errors terminate the affected session with an abort notice
	ErrFatalState = errors.New("session state is corrupted")
)
