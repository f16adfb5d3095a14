package model

import "time"

// EventType identifies the type of an outbound event
type EventType string

const (
	// Lobby events
	EventRoomListUpdated EventType = "roomListUpdated"
	EventRoomJoined      EventType = "roomJoined"
	EventRoomClosed      EventType = "roomClosed"
	EventMatchStarting   EventType = "matchStarting"

	// Game events
	EventBoardUpdated       EventType = "boardUpdated"
	EventRackUpdated        EventType = "rackUpdated"
	EventTurnChanged        EventType = "turnChanged"
	EventScoreUpdated       EventType = "scoreUpdated"
	EventObjectiveCompleted EventType = "objectiveCompleted"
	EventPlayerDisconnected EventType = "playerDisconnected"
	EventMatchEnded         EventType = "matchEnded"
	EventActionRejected     EventType = "actionRejected"
)

// Event is a typed broadcast to a room or to the lobby
type Event struct {
	Type      EventType `json:"type"`
	RoomID    RoomID    `json:"roomId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// RoomListUpdatedPayload carries password-stripped room listings
type RoomListUpdatedPayload struct {
	Rooms []RoomListing `json:"rooms"`
}

// RoomJoinedPayload notifies a room of its updated seating
type RoomJoinedPayload struct {
	Room   RoomListing `json:"room"`
	Joined RoomPlayer  `json:"joined"`
}

// RoomClosedPayload tells evicted occupants the room was torn down
type RoomClosedPayload struct {
	Reason string `json:"reason"`
}

// MatchStartingPayload announces a promoted room
type MatchStartingPayload struct {
	Players     []RoomPlayer `json:"players"`
	TurnSeconds int          `json:"turnSeconds"`
}

// BoardUpdatedPayload carries the occupied cells after a valid play
type BoardUpdatedPayload struct {
	Cells []Cell `json:"cells"`
}

// RackUpdatedPayload carries one player's refilled rack; it is sent to
// that player only, never multicast
type RackUpdatedPayload struct {
	PlayerID PlayerID `json:"playerId"`
	Rack     Rack     `json:"rack"`
}

// TurnChangedPayload announces the next active player
type TurnChangedPayload struct {
	ActivePlayerID PlayerID `json:"activePlayerId"`
	TurnSeconds    int      `json:"turnSeconds"`
}

// ScoreUpdatedPayload announces a score change
type ScoreUpdatedPayload struct {
	PlayerID PlayerID `json:"playerId"`
	NewScore int      `json:"newScore"`
}

// ObjectiveCompletedPayload announces a completed bonus objective
type ObjectiveCompletedPayload struct {
	Objective Objective `json:"objective"`
	PlayerID  PlayerID  `json:"playerId"`
}

// PlayerDisconnectedPayload reports a dropped connection in a live match
type PlayerDisconnectedPayload struct {
	PlayerID PlayerID `json:"playerId"`
}

// MatchEndedPayload carries the final result
type MatchEndedPayload struct {
	Winner PlayerID         `json:"winner,omitempty"`
	Scores map[PlayerID]int `json:"scores"`
	Reason EndReason        `json:"reason"`
}

// ActionRejectedPayload is returned to the originating connection only
type ActionRejectedPayload struct {
	ErrorKind string `json:"errorKind"`
}
