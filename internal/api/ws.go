package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yasskadd/Scrabble-sub001/internal/api/apierr"
	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/clock"
	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/services/game"
	"github.com/yasskadd/Scrabble-sub001/internal/services/room"
	"github.com/yasskadd/Scrabble-sub001/internal/ws"
)

// Gateway upgrades connections and dispatches inbound commands to the
// room and game controllers. Every command either reaches exactly one
// controller entry point or comes back to the sender as a rejection;
// nothing else reads the command union.
type Gateway struct {
	rooms    *room.Controller
	games    *game.Controller
	manager  *ws.HubManager
	upgrader websocket.Upgrader
	clock    clock.Clock
	logger   *slog.Logger
}

// NewGateway creates a new websocket Gateway
func NewGateway(rooms *room.Controller, games *game.Controller, manager *ws.HubManager, clk clock.Clock, logger *slog.Logger) *Gateway {
	return &Gateway{
		rooms:   rooms,
		games:   games,
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game server fronts browser clients on other origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clock:  clk,
		logger: logger,
	}
}

// ServeWS handles GET /ws. Identity rides on query parameters: a name,
// and optionally the player id of a dropped connection to reclaim.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	playerID := model.PlayerID(r.URL.Query().Get("player_id"))
	if playerID == "" {
		playerID = model.PlayerID(uuid.NewString())
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := ws.NewClient(g.manager, conn, playerID, name, g.logger)
	g.manager.Connect(client)
	go client.WritePump()

	g.logger.Info("client connected",
		slog.String("player_id", string(playerID)),
		slog.String("name", name),
	)

	// Blocks for the life of the connection
	client.ReadPump(g.handleMessage)

	if roomID := client.RoomID(); roomID != "" {
		g.rooms.PlayerDisconnected(context.Background(), playerID, roomID)
	}
}

// handleMessage decodes one inbound frame and dispatches it. Rejections
// go back to the originating connection only; accepted commands surface
// through the event broadcasts the controllers emit.
func (g *Gateway) handleMessage(client *ws.Client, data []byte) {
	cmd, err := model.DecodeCommand(data)
	if err != nil {
		g.reject(client, apierr.CodeInvalidRequest)
		return
	}

	ctx := context.Background()
	switch cmd.Kind {
	case model.CmdCreateRoom:
		g.createRoom(ctx, client, cmd.CreateRoom)
	case model.CmdJoinRoom:
		g.joinRoom(ctx, client, cmd.JoinRoom)
	case model.CmdLeaveRoom:
		g.leaveRoom(ctx, client, cmd.LeaveRoom)
	case model.CmdStartMatch:
		if _, err := g.rooms.StartMatch(ctx, client.PlayerID(), cmd.StartMatch.RoomID); err != nil {
			g.rejectErr(client, err)
		}
	case model.CmdPlaceWord:
		g.withSession(client, cmd.PlaceWord.RoomID, func(s *game.Session) error {
			return s.PlaceWord(client.PlayerID(), cmd.PlaceWord.FirstCoord, cmd.PlaceWord.Orientation, cmd.PlaceWord.Letters)
		})
	case model.CmdExchangeLetters:
		g.withSession(client, cmd.ExchangeLetters.RoomID, func(s *game.Session) error {
			return s.ExchangeLetters(client.PlayerID(), cmd.ExchangeLetters.Letters)
		})
	case model.CmdSkipTurn:
		g.withSession(client, cmd.SkipTurn.RoomID, func(s *game.Session) error {
			return s.SkipTurn(client.PlayerID())
		})
	case model.CmdHint:
		g.withSession(client, cmd.Hint.RoomID, func(s *game.Session) error {
			return s.Hint(client.PlayerID())
		})
	}
}

func (g *Gateway) createRoom(ctx context.Context, client *ws.Client, cmd *model.CreateRoomCommand) {
	created, err := g.rooms.CreateRoom(ctx, client.PlayerID(), client.Name(), cmd.Visibility, cmd.Password, cmd.Config)
	if err != nil {
		g.rejectErr(client, err)
		return
	}
	g.manager.JoinRoom(client, created.ID)
	g.sendEvent(client, model.Event{
		Type:      model.EventRoomJoined,
		RoomID:    created.ID,
		Timestamp: g.clock.Now(),
		Payload:   model.RoomJoinedPayload{Room: created.Listing()},
	})
}

func (g *Gateway) joinRoom(ctx context.Context, client *ws.Client, cmd *model.JoinRoomCommand) {
	// A player rejoining their live match reclaims the seat instead of
	// taking a new one
	if session, err := g.games.Registry().Get(cmd.RoomID); err == nil && session.HasPlayer(client.PlayerID()) {
		g.manager.JoinRoom(client, cmd.RoomID)
		session.PlayerReconnected(client.PlayerID())
		return
	}

	joined, err := g.rooms.JoinRoom(ctx, client.PlayerID(), client.Name(), cmd.RoomID, cmd.Password)
	if err != nil {
		g.rejectErr(client, err)
		return
	}
	g.manager.JoinRoom(client, joined.ID)
	g.sendEvent(client, model.Event{
		Type:      model.EventRoomJoined,
		RoomID:    joined.ID,
		Timestamp: g.clock.Now(),
		Payload:   model.RoomJoinedPayload{Room: joined.Listing(), Joined: *joined.GetPlayer(client.PlayerID())},
	})

	// Observers arriving mid-match get the current board
	if session, err := g.games.Registry().Get(cmd.RoomID); err == nil {
		g.sendEvent(client, model.Event{
			Type:      model.EventBoardUpdated,
			RoomID:    cmd.RoomID,
			Timestamp: g.clock.Now(),
			Payload:   model.BoardUpdatedPayload{Cells: session.BoardCells()},
		})
	}
}

func (g *Gateway) leaveRoom(ctx context.Context, client *ws.Client, cmd *model.LeaveRoomCommand) {
	if session, err := g.games.Registry().Get(cmd.RoomID); err == nil {
		session.PlayerDisconnected(client.PlayerID())
		g.manager.LeaveRoom(client)
		return
	}
	if err := g.rooms.LeaveRoom(ctx, client.PlayerID(), cmd.RoomID); err != nil {
		g.rejectErr(client, err)
		return
	}
	g.manager.LeaveRoom(client)
}

func (g *Gateway) withSession(client *ws.Client, roomID model.RoomID, fn func(s *game.Session) error) {
	session, err := g.games.Registry().Get(roomID)
	if err != nil {
		g.rejectErr(client, err)
		return
	}
	if err := fn(session); err != nil {
		g.rejectErr(client, err)
	}
}

func (g *Gateway) rejectErr(client *ws.Client, err error) {
	g.reject(client, apierr.Kind(err))
}

func (g *Gateway) reject(client *ws.Client, code string) {
	g.sendEvent(client, model.Event{
		Type:      model.EventActionRejected,
		Timestamp: g.clock.Now(),
		Payload:   model.ActionRejectedPayload{ErrorKind: code},
	})
}

func (g *Gateway) sendEvent(client *ws.Client, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		g.logger.Error("failed to marshal event", slog.String("error", err.Error()))
		return
	}
	client.Send(data)
}
