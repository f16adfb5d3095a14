package model

import "time"

// GameState is the phase of a live match
type GameState string

const (
	GameWaitingToStart GameState = "waiting_to_start"
	GameInProgress     GameState = "in_progress"
	GameEnded          GameState = "ended"
)

// EndReason records why a match ended
type EndReason string

const (
	EndReasonSkipLimit   EndReason = "skip_limit"
	EndReasonReserve     EndReason = "reserve_exhausted"
	EndReasonAbandoned   EndReason = "abandoned"
	EndReasonFatal       EndReason = "fatal"
)

// Game is the authoritative state of one in-progress match. It is owned
// by the session that runs it; nothing outside the session mutates it.
type Game struct {
	RoomID    RoomID
	Config    GameConfig
	Board     *Board
	Reserve   *Reserve
	Players   []*Player
	ActiveIdx int
	SkipCount int
	State     GameState
	EndedFor  EndReason
	StartedAt time.Time
}

// ActivePlayer returns the player whose turn it is, or nil before start
// and after end
func (g *Game) ActivePlayer() *Player {
	if g.State != GameInProgress || len(g.Players) == 0 {
		return nil
	}
	return g.Players[g.ActiveIdx]
}

// GetPlayer returns the participant with the given id, or nil
func (g *Game) GetPlayer(id PlayerID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TilesInPlay counts every tile across racks, board and reserve; it is
// constant for the life of a match
func (g *Game) TilesInPlay() int {
	total := g.Reserve.Count() + g.Board.OccupiedCount()
	for _, p := range g.Players {
		total += len(p.Rack)
	}
	return total
}

// Winner returns the highest-scoring playing participant, or nil on a tie
func (g *Game) Winner() *Player {
	var best *Player
	tie := false
	for _, p := range g.Players {
		if !p.IsPlaying() {
			continue
		}
		switch {
		case best == nil || p.Score > best.Score:
			best = p
			tie = false
		case p.Score == best.Score:
			tie = true
		}
	}
	if tie {
		return nil
	}
	return best
}

// MatchRecord is the history entry written once per completed match
type MatchRecord struct {
	RoomID   RoomID             `json:"roomId"`
	Players  []string           `json:"players"`
	Scores   map[PlayerID]int   `json:"scores"`
	Winner   PlayerID           `json:"winner"`
	Duration time.Duration      `json:"duration"`
	EndedAt  time.Time          `json:"endedAt"`
	Reason   EndReason          `json:"reason"`
}
