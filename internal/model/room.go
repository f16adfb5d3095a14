package model

import "time"

// RoomID is a short unique identifier for joining rooms
type RoomID string

// Visibility controls who can join a room
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityLocked  Visibility = "locked" // requires password
)

// RoomState is the lifecycle phase of a room
type RoomState string

const (
	RoomStateWaiting    RoomState = "waiting"
	RoomStateStarting   RoomState = "starting"
	RoomStateInProgress RoomState = "in_progress"
	RoomStateEnded      RoomState = "ended"
)

// GameMode selects the ruleset
type GameMode string

const (
	ModeClassic    GameMode = "classic"
	ModeObjectives GameMode = "objectives"
)

// GameConfig holds the ruleset parameters configured on a room
type GameConfig struct {
	TurnSeconds int      `json:"turnSeconds"`
	Dictionary  string   `json:"dictionary"`
	Mode        GameMode `json:"mode"`
	PlayerCount int      `json:"playerCount"`
	// SkipLimit ends the match once this many consecutive non-play turns
	// accumulate across all players
	SkipLimit int `json:"skipLimit"`
}

// DefaultGameConfig returns the standard two-player classic setup
func DefaultGameConfig() GameConfig {
	return GameConfig{
		TurnSeconds: 60,
		Dictionary:  "default",
		Mode:        ModeClassic,
		PlayerCount: 2,
		SkipLimit:   6,
	}
}

// RoomPlayer is a seat in a waiting room
type RoomPlayer struct {
	ID        PlayerID   `json:"id"`
	Name      string     `json:"name"`
	Type      PlayerType `json:"type"`
	IsCreator bool       `json:"isCreator"`
}

// Room groups players awaiting (or observing) one match. The password
// hash never leaves the server; listings are built via Listing.
type Room struct {
	ID           RoomID
	Visibility   Visibility
	PasswordHash string
	Config       GameConfig
	Players      []RoomPlayer
	State        RoomState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GetPlayer returns the seat held by the given player, or nil
func (r *Room) GetPlayer(id PlayerID) *RoomPlayer {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// Creator returns the seat of the room creator, or nil if the creator
// already left
func (r *Room) Creator() *RoomPlayer {
	for i := range r.Players {
		if r.Players[i].IsCreator {
			return &r.Players[i]
		}
	}
	return nil
}

// SeatedCount returns the number of non-observer seats taken
func (r *Room) SeatedCount() int {
	count := 0
	for _, p := range r.Players {
		if p.Type != TypeObserver {
			count++
		}
	}
	return count
}

// BotIndex returns the index of the first bot seat, or -1
func (r *Room) BotIndex() int {
	for i, p := range r.Players {
		if p.Type == TypeBot {
			return i
		}
	}
	return -1
}

// RoomListing is the outward-facing view of a room; it carries no
// password material
type RoomListing struct {
	ID          RoomID       `json:"id"`
	Visibility  Visibility   `json:"visibility"`
	HasPassword bool         `json:"hasPassword"`
	Config      GameConfig   `json:"config"`
	Players     []RoomPlayer `json:"players"`
	State       RoomState    `json:"state"`
}

// Listing builds the password-stripped view broadcast to the lobby
func (r *Room) Listing() RoomListing {
	players := make([]RoomPlayer, len(r.Players))
	copy(players, r.Players)
	return RoomListing{
		ID:          r.ID,
		Visibility:  r.Visibility,
		HasPassword: r.PasswordHash != "",
		Config:      r.Config,
		Players:     players,
		State:       r.State,
	}
}
