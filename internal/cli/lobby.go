package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

// HealthResult is the health endpoint response
type HealthResult struct {
	Status string `json:"status"`
}

// RoomsResult is the room listing response
type RoomsResult struct {
	Rooms []model.RoomListing `json:"rooms"`
}

// HistoryMatch is one entry in the history response
type HistoryMatch struct {
	RoomID   string         `json:"room_id"`
	Players  []string       `json:"players"`
	Scores   map[string]int `json:"scores"`
	Winner   string         `json:"winner,omitempty"`
	Duration string         `json:"duration"`
	EndedAt  time.Time      `json:"ended_at"`
	Reason   string         `json:"reason"`
}

// HistoryResult is the match history response
type HistoryResult struct {
	Matches []HistoryMatch `json:"matches"`
}

func newRoomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List open rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomsResult
			if err := client.Get("/api/v1/rooms", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List completed matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HistoryResult
			if err := client.Get("/api/v1/history", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
