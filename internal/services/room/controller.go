package room

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/clock"
	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/random"
	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/services/game"
	"github.com/yasskadd/Scrabble-sub001/internal/storage"
)

const (
	// roomIDAlphabet excludes easily-confused characters
	roomIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomIDLength   = 6
)

// botNames seed virtual opponents; the original roster ships with the
// project
var botNames = []string{"Hector", "Laura", "Esteban", "Aurelie", "Thomas", "Camille"}

// Controller manages the waiting-room lifecycle: creation, seating,
// bot eviction, teardown and promotion into live matches. Rooms are the
// storage-backed half of the system; promoted matches live in the game
// registry.
type Controller struct {
	storage storage.Storage
	games   *game.Controller
	emitter game.Broadcaster
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new room Controller
func NewController(
	store storage.Storage,
	games *game.Controller,
	emitter game.Broadcaster,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: store,
		games:   games,
		emitter: emitter,
		clock:   clk,
		random:  rnd,
		logger:  logger,
	}
}

// CreateRoom opens a waiting room with the creator seated and the
// remaining playing seats filled by bots. Humans joining later take over
// bot seats one at a time.
func (c *Controller) CreateRoom(ctx context.Context, creatorID model.PlayerID, creatorName string, visibility model.Visibility, password string, config model.GameConfig) (*model.Room, error) {
	if config.TurnSeconds <= 0 {
		config = model.DefaultGameConfig()
	}
	if config.PlayerCount < 2 {
		config.PlayerCount = 2
	}
	if config.PlayerCount > 4 {
		config.PlayerCount = 4
	}
	if config.SkipLimit <= 0 {
		config.SkipLimit = model.DefaultGameConfig().SkipLimit
	}
	// More seats means more players must pass in a row before the match
	// stalls out
	if config.PlayerCount > 2 {
		config.SkipLimit = 3 * config.PlayerCount
	}

	var passwordHash string
	if visibility == model.VisibilityLocked {
		if password == "" {
			return nil, model.ErrRoomWrongPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash room password: %w", err)
		}
		passwordHash = string(hash)
	}

	id, err := c.generateRoomID(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	room := &model.Room{
		ID:           id,
		Visibility:   visibility,
		PasswordHash: passwordHash,
		Config:       config,
		State:        model.RoomStateWaiting,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	room.Players = append(room.Players, model.RoomPlayer{
		ID:        creatorID,
		Name:      creatorName,
		Type:      model.TypeHuman,
		IsCreator: true,
	})
	for i := 1; i < config.PlayerCount; i++ {
		room.Players = append(room.Players, c.newBotSeat(room))
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	c.logger.Info("room created",
		slog.String("room_id", string(id)),
		slog.String("creator", creatorName),
		slog.String("visibility", string(visibility)),
	)

	c.broadcastRoomList(ctx)
	return room, nil
}

// JoinRoom seats a player. A human takes over a bot seat while one
// remains, then any vacated playing seat; once the playing seats are
// full, or the match already started, the player is seated as an
// observer.
func (c *Controller) JoinRoom(ctx context.Context, playerID model.PlayerID, name string, roomID model.RoomID, password string) (*model.Room, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.State == model.RoomStateEnded || room.State == model.RoomStateStarting {
		return nil, model.ErrRoomNotAvailable
	}
	if room.GetPlayer(playerID) != nil {
		return nil, model.ErrRoomSameUser
	}
	if room.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(password)); err != nil {
			return nil, model.ErrRoomWrongPassword
		}
	}

	seat := model.RoomPlayer{ID: playerID, Name: name, Type: model.TypeHuman}
	botIdx := room.BotIndex()
	switch {
	case room.State == model.RoomStateWaiting && botIdx >= 0:
		// The human takes the bot's seat
		room.Players[botIdx] = seat
	case room.State == model.RoomStateWaiting && room.SeatedCount() < room.Config.PlayerCount:
		// A vacated seat is open
		room.Players = append(room.Players, seat)
	default:
		seat.Type = model.TypeObserver
		room.Players = append(room.Players, seat)
	}

	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	c.logger.Info("player joined room",
		slog.String("room_id", string(roomID)),
		slog.String("player", name),
		slog.String("seat_type", string(seat.Type)),
	)

	c.emitter.ToRoom(roomID, model.Event{
		Type:      model.EventRoomJoined,
		RoomID:    roomID,
		Timestamp: c.clock.Now(),
		Payload:   model.RoomJoinedPayload{Room: room.Listing(), Joined: seat},
	})
	c.broadcastRoomList(ctx)
	return room, nil
}

// LeaveRoom vacates a seat before the match starts. When the creator
// leaves, the room is torn down and everyone is evicted; any other seat
// is simply vacated, leaving it open for a later joiner.
func (c *Controller) LeaveRoom(ctx context.Context, playerID model.PlayerID, roomID model.RoomID) error {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	seat := room.GetPlayer(playerID)
	if seat == nil {
		return model.ErrPlayerNotFound
	}

	if seat.IsCreator && room.State == model.RoomStateWaiting {
		return c.closeRoom(ctx, room, "creator left")
	}

	for i := range room.Players {
		if room.Players[i].ID == playerID {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			break
		}
	}

	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}

	c.emitter.ToRoom(roomID, model.Event{
		Type:      model.EventRoomJoined,
		RoomID:    roomID,
		Timestamp: c.clock.Now(),
		Payload:   model.RoomJoinedPayload{Room: room.Listing()},
	})
	c.broadcastRoomList(ctx)
	return nil
}

// StartMatch promotes a waiting room into a live session. Only the
// creator may start, and at least two playing seats must be taken.
func (c *Controller) StartMatch(ctx context.Context, playerID model.PlayerID, roomID model.RoomID) (*game.Session, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.State != model.RoomStateWaiting {
		return nil, model.ErrRoomNotWaiting
	}
	creator := room.Creator()
	if creator == nil || creator.ID != playerID {
		return nil, model.ErrNotCreator
	}
	if room.SeatedCount() < 2 {
		return nil, model.ErrRoomNotWaiting
	}

	room.State = model.RoomStateStarting
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to save room: %w", err)
	}

	session, err := c.games.StartMatch(ctx, room)
	if err != nil {
		room.State = model.RoomStateWaiting
		if saveErr := c.storage.SaveRoom(ctx, room); saveErr != nil {
			c.logger.Error("failed to restore room state",
				slog.String("room_id", string(roomID)),
				slog.String("error", saveErr.Error()),
			)
		}
		return nil, err
	}

	room.State = model.RoomStateInProgress
	room.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRoom(ctx, room); err != nil {
		c.logger.Error("failed to mark room in progress",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()),
		)
	}
	c.broadcastRoomList(ctx)
	return session, nil
}

// ListRooms returns the joinable listings shown in the lobby
func (c *Controller) ListRooms(ctx context.Context) ([]model.RoomListing, error) {
	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	listings := make([]model.RoomListing, 0, len(rooms))
	for _, r := range rooms {
		if r.Visibility == model.VisibilityPrivate {
			continue
		}
		listings = append(listings, r.Listing())
	}
	return listings, nil
}

// GetRoom returns one room by id
func (c *Controller) GetRoom(ctx context.Context, roomID model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, roomID)
}

// PlayerDisconnected reacts to a dropped connection. In a waiting room
// the seat is vacated as a leave; during a live match the game session
// decides how to route around the seat.
func (c *Controller) PlayerDisconnected(ctx context.Context, playerID model.PlayerID, roomID model.RoomID) {
	if session, err := c.games.Registry().Get(roomID); err == nil {
		session.PlayerDisconnected(playerID)
		return
	}
	if err := c.LeaveRoom(ctx, playerID, roomID); err != nil {
		c.logger.Debug("disconnect cleanup skipped",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()),
		)
	}
}

// closeRoom tears a waiting room down and evicts its occupants
func (c *Controller) closeRoom(ctx context.Context, room *model.Room, reason string) error {
	if err := c.storage.DeleteRoom(ctx, room.ID); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	c.logger.Info("room closed",
		slog.String("room_id", string(room.ID)),
		slog.String("reason", reason),
	)
	c.emitter.ToRoom(room.ID, model.Event{
		Type:      model.EventRoomClosed,
		RoomID:    room.ID,
		Timestamp: c.clock.Now(),
		Payload:   model.RoomClosedPayload{Reason: reason},
	})
	c.broadcastRoomList(ctx)
	return nil
}

// generateRoomID draws short codes until one is free
func (c *Controller) generateRoomID(ctx context.Context) (model.RoomID, error) {
	for attempt := 0; attempt < 10; attempt++ {
		id := model.RoomID(c.random.String(roomIDLength, roomIDAlphabet))
		exists, err := c.storage.RoomExists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to check room id: %w", err)
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique room id")
}

// newBotSeat creates a virtual opponent with a name not already seated
func (c *Controller) newBotSeat(room *model.Room) model.RoomPlayer {
	taken := make(map[string]bool, len(room.Players))
	for _, p := range room.Players {
		taken[p.Name] = true
	}
	name := botNames[c.random.Intn(len(botNames))]
	for taken[name] {
		name = botNames[c.random.Intn(len(botNames))]
	}
	return model.RoomPlayer{
		ID:   model.PlayerID("bot-" + uuid.NewString()),
		Name: name,
		Type: model.TypeBot,
	}
}

func (c *Controller) broadcastRoomList(ctx context.Context) {
	listings, err := c.ListRooms(ctx)
	if err != nil {
		c.logger.Error("failed to build room list", slog.String("error", err.Error()))
		return
	}
	c.emitter.ToLobby(model.Event{
		Type:      model.EventRoomListUpdated,
		Timestamp: c.clock.Now(),
		Payload:   model.RoomListUpdatedPayload{Rooms: listings},
	})
}
