package handler

import (
	"net/http"

	"github.com/yasskadd/Scrabble-sub001/internal/api/apierr"
	"github.com/yasskadd/Scrabble-sub001/internal/api/response"
	"github.com/yasskadd/Scrabble-sub001/internal/services/room"
	"github.com/yasskadd/Scrabble-sub001/internal/storage"
)

// LobbyHandler serves the read-only REST surface: room listings and
// match history. All mutations travel over the websocket command
// channel.
type LobbyHandler struct {
	rooms   *room.Controller
	storage storage.Storage
}

// NewLobbyHandler creates a new LobbyHandler
func NewLobbyHandler(rooms *room.Controller, store storage.Storage) *LobbyHandler {
	return &LobbyHandler{rooms: rooms, storage: store}
}

// ListRooms handles GET /rooms
func (h *LobbyHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	listings, err := h.rooms.ListRooms(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RoomsResponse{Rooms: listings})
}

// MatchHistory handles GET /history
func (h *LobbyHandler) MatchHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.storage.GetMatchHistory(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	matches := make([]response.MatchSummary, 0, len(records))
	for _, rec := range records {
		matches = append(matches, response.MatchSummaryFromModel(rec))
	}
	response.JSON(w, http.StatusOK, response.HistoryResponse{Matches: matches})
}
