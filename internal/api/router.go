package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yasskadd/Scrabble-sub001/internal/api/handler"
	apimiddleware "github.com/yasskadd/Scrabble-sub001/internal/api/middleware"
	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/clock"
	"github.com/yasskadd/Scrabble-sub001/internal/services/game"
	"github.com/yasskadd/Scrabble-sub001/internal/services/room"
	"github.com/yasskadd/Scrabble-sub001/internal/storage"
	"github.com/yasskadd/Scrabble-sub001/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	RoomController *room.Controller
	GameController *game.Controller
	HubManager     *ws.HubManager
	Storage        storage.Storage
	Clock          clock.Clock
}

// NewRouter creates a new API router with all routes configured. The
// REST surface is read-only; gameplay runs over the websocket endpoint.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	lobbyHandler := handler.NewLobbyHandler(cfg.RoomController, cfg.Storage)
	gateway := NewGateway(cfg.RoomController, cfg.GameController, cfg.HubManager, cfg.Clock, cfg.Logger)

	loggingMiddleware := apimiddleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/rooms", lobbyHandler.ListRooms).Methods(http.MethodGet)
	api.HandleFunc("/history", lobbyHandler.MatchHistory).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// The websocket endpoint skips the request logging; a hijacked
	// connection would log a zero status hours after the upgrade
	r.HandleFunc("/ws", gateway.ServeWS).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
