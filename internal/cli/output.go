package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

// Output handles formatting results as text or JSON
type Output struct {
	format string
}

// NewOutput creates an Output for the given format
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print renders a result to stdout
func (o *Output) Print(result any) {
	if o.format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to marshal output: %v\n", err)
			return
		}
		fmt.Println(string(data))
		return
	}

	switch r := result.(type) {
	case HealthResult:
		fmt.Printf("Status: %s\n", r.Status)
	case RoomsResult:
		o.printRooms(r)
	case HistoryResult:
		o.printHistory(r)
	default:
		fmt.Printf("%+v\n", result)
	}
}

func (o *Output) printRooms(r RoomsResult) {
	if len(r.Rooms) == 0 {
		fmt.Println("No open rooms")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATE\tVISIBILITY\tMODE\tPLAYERS")
	for _, room := range r.Rooms {
		names := make([]string, 0, len(room.Players))
		for _, p := range room.Players {
			name := p.Name
			if p.Type == "bot" {
				name += " (bot)"
			}
			names = append(names, name)
		}
		locked := string(room.Visibility)
		if room.HasPassword {
			locked += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			room.ID, room.State, locked, room.Config.Mode, strings.Join(names, ", "))
	}
	_ = w.Flush()
}

func (o *Output) printHistory(r HistoryResult) {
	if len(r.Matches) == 0 {
		fmt.Println("No completed matches")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROOM\tWINNER\tREASON\tDURATION\tENDED")
	for _, m := range r.Matches {
		winner := m.Winner
		if winner == "" {
			winner = "(tie)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			m.RoomID, winner, m.Reason, m.Duration, m.EndedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
}
