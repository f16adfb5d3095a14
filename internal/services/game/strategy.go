package game

import "github.com/yasskadd/Scrabble-sub001/internal/model"

// BotActionKind enumerates what a bot may do on its turn
type BotActionKind string

const (
	BotPlace    BotActionKind = "place"
	BotExchange BotActionKind = "exchange"
	BotSkip     BotActionKind = "skip"
)

// BotAction is a bot's chosen move. Place and Exchange carry the same
// letter encoding as the player commands.
type BotAction struct {
	Kind        BotActionKind
	FirstCoord  model.Position
	Orientation model.Orientation
	Letters     string
}

// BotStrategy picks a move for a bot player from the visible game state.
// The session falls back to exchange, then skip, when the chosen action
// is rejected.
type BotStrategy interface {
	ChooseAction(g *model.Game, bot *model.Player) BotAction
}
