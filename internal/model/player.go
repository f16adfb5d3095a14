package model

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PlayerType distinguishes humans, bots and observers
type PlayerType string

const (
	TypeHuman    PlayerType = "human"
	TypeBot      PlayerType = "bot"
	TypeObserver PlayerType = "observer"
)

// Player is one participant in a match: identity, score, rack and the
// per-match counters the objectives tracker reads
type Player struct {
	ID   PlayerID
	Name string
	Type PlayerType

	Score int
	Rack  Rack

	// Objective bookkeeping. FiveLetterStreak counts turns in a row with
	// five or more letters placed; HintUses counts hint requests.
	FiveLetterStreak int
	HintUses         int
	Objectives       []Objective

	Connected bool
}

// IsPlaying reports whether this player takes turns (observers do not)
func (p *Player) IsPlaying() bool {
	return p.Type != TypeObserver
}
