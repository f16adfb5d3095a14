package response

import (
	"time"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

// RoomsResponse wraps the lobby listings
type RoomsResponse struct {
	Rooms []model.RoomListing `json:"rooms"`
}

// MatchSummary is one completed match in the history listing
type MatchSummary struct {
	RoomID   string         `json:"room_id"`
	Players  []string       `json:"players"`
	Scores   map[string]int `json:"scores"`
	Winner   string         `json:"winner,omitempty"`
	Duration string         `json:"duration"`
	EndedAt  time.Time      `json:"ended_at"`
	Reason   string         `json:"reason"`
}

// MatchSummaryFromModel converts a model.MatchRecord
func MatchSummaryFromModel(r *model.MatchRecord) MatchSummary {
	scores := make(map[string]int, len(r.Scores))
	for pid, score := range r.Scores {
		scores[string(pid)] = score
	}
	return MatchSummary{
		RoomID:   string(r.RoomID),
		Players:  r.Players,
		Scores:   scores,
		Winner:   string(r.Winner),
		Duration: r.Duration.String(),
		EndedAt:  r.EndedAt,
		Reason:   string(r.Reason),
	}
}

// HistoryResponse wraps the match history listing
type HistoryResponse struct {
	Matches []MatchSummary `json:"matches"`
}
