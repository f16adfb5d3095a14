package game

import (
	"context"
	"log/slog"

	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/clock"
	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/random"
	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/services/board"
	"github.com/yasskadd/Scrabble-sub001/internal/services/dictionary"
	"github.com/yasskadd/Scrabble-sub001/internal/services/objectives"
	"github.com/yasskadd/Scrabble-sub001/internal/services/scoring"
	"github.com/yasskadd/Scrabble-sub001/internal/storage"
)

// Broadcaster is the room-addressable multicast channel sessions emit
// events on. The transport behind it is a collaborator; sessions only
// know the event surface.
type Broadcaster interface {
	ToRoom(roomID model.RoomID, event model.Event)
	ToPlayer(playerID model.PlayerID, event model.Event)
	ToLobby(event model.Event)
}

// Controller creates live game sessions from promoted rooms and owns the
// session registry
type Controller struct {
	registry       *Registry
	storage        storage.Storage
	boardService   *board.Service
	scoringService *scoring.Service
	dictionary     dictionary.ServiceInterface
	objectives     *objectives.Service
	botStrategy    BotStrategy
	broadcaster    Broadcaster
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	scoringService *scoring.Service,
	dictionary dictionary.ServiceInterface,
	objectivesService *objectives.Service,
	botStrategy BotStrategy,
	broadcaster Broadcaster,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		registry:       NewRegistry(),
		storage:        storage,
		boardService:   boardService,
		scoringService: scoringService,
		dictionary:     dictionary,
		objectives:     objectivesService,
		botStrategy:    botStrategy,
		broadcaster:    broadcaster,
		clock:          clk,
		random:         rnd,
		logger:         logger,
	}
}

// Registry exposes the session registry for lookups
func (c *Controller) Registry() *Registry {
	return c.registry
}

// closeRoom tears the room down once its match has ended and tells the
// lobby the listing is gone
func (c *Controller) closeRoom(roomID model.RoomID) {
	ctx := context.Background()
	if err := c.storage.DeleteRoom(ctx, roomID); err != nil {
		c.logger.Error("failed to delete room after match",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()),
		)
	}
	c.broadcaster.ToRoom(roomID, model.Event{
		Type:      model.EventRoomClosed,
		RoomID:    roomID,
		Timestamp: c.clock.Now(),
		Payload:   model.RoomClosedPayload{Reason: "match ended"},
	})
	c.broadcastRoomList(ctx)
}

// broadcastRoomList pushes the current public listings to every lobby
// subscriber
func (c *Controller) broadcastRoomList(ctx context.Context) {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		c.logger.Error("failed to list rooms", slog.String("error", err.Error()))
		return
	}
	listings := make([]model.RoomListing, 0, len(rooms))
	for _, r := range rooms {
		if r.Visibility != model.VisibilityPrivate {
			listings = append(listings, r.Listing())
		}
	}
	c.broadcaster.ToLobby(model.Event{
		Type:      model.EventRoomListUpdated,
		Timestamp: c.clock.Now(),
		Payload:   model.RoomListUpdatedPayload{Rooms: listings},
	})
}

// StartMatch promotes a room into a live session: seats become players,
// racks are drawn from a fresh reserve, objectives are dealt when the
// mode asks for them, and the turn clock starts.
func (c *Controller) StartMatch(ctx context.Context, room *model.Room) (*Session, error) {
	reserve := model.NewReserve()

	players := make([]*model.Player, 0, len(room.Players))
	for _, seat := range room.Players {
		p := &model.Player{
			ID:        seat.ID,
			Name:      seat.Name,
			Type:      seat.Type,
			Connected: true,
		}
		if p.IsPlaying() {
			p.Rack = reserve.Draw(model.RackSize, c.random)
		}
		players = append(players, p)
	}

	// Random starting player among the playing seats
	playing := 0
	for _, p := range players {
		if p.IsPlaying() {
			playing++
		}
	}
	if playing < 2 {
		return nil, model.ErrRoomNotWaiting
	}
	startIdx := c.random.Intn(playing)
	activeIdx := 0
	for i, p := range players {
		if !p.IsPlaying() {
			continue
		}
		if startIdx == 0 {
			activeIdx = i
			break
		}
		startIdx--
	}

	g := &model.Game{
		RoomID:    room.ID,
		Config:    room.Config,
		Board:     model.NewBoard(),
		Reserve:   reserve,
		Players:   players,
		ActiveIdx: activeIdx,
		State:     model.GameWaitingToStart,
		StartedAt: c.clock.Now(),
	}

	if g.Config.Mode == model.ModeObjectives {
		c.objectives.Deal(players, c.random)
	}

	session := newSession(g, c)
	if err := c.registry.Add(session); err != nil {
		return nil, err
	}

	c.logger.Info("match starting",
		slog.String("room_id", string(room.ID)),
		slog.Int("players", len(players)),
		slog.String("mode", string(g.Config.Mode)),
	)

	c.broadcaster.ToRoom(room.ID, model.Event{
		Type:      model.EventMatchStarting,
		RoomID:    room.ID,
		Timestamp: c.clock.Now(),
		Payload: model.MatchStartingPayload{
			Players:     room.Players,
			TurnSeconds: g.Config.TurnSeconds,
		},
	})

	for _, p := range players {
		if p.IsPlaying() {
			c.broadcaster.ToPlayer(p.ID, model.Event{
				Type:      model.EventRackUpdated,
				RoomID:    room.ID,
				Timestamp: c.clock.Now(),
				Payload:   model.RackUpdatedPayload{PlayerID: p.ID, Rack: p.Rack},
			})
		}
	}

	session.Start()
	return session, nil
}
