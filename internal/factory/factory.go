package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/clock"
	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/random"
	"github.com/yasskadd/Scrabble-sub001/internal/services/board"
	"github.com/yasskadd/Scrabble-sub001/internal/services/bot"
	"github.com/yasskadd/Scrabble-sub001/internal/services/dictionary"
	"github.com/yasskadd/Scrabble-sub001/internal/services/game"
	"github.com/yasskadd/Scrabble-sub001/internal/services/objectives"
	"github.com/yasskadd/Scrabble-sub001/internal/services/room"
	"github.com/yasskadd/Scrabble-sub001/internal/services/scoring"
	"github.com/yasskadd/Scrabble-sub001/internal/storage"
	"github.com/yasskadd/Scrabble-sub001/internal/storage/memory"
	redisstorage "github.com/yasskadd/Scrabble-sub001/internal/storage/redis"
	"github.com/yasskadd/Scrabble-sub001/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	BoardService      *board.Service
	ScoringService    *scoring.Service
	ObjectiveService  *objectives.Service
	BotStrategy       *bot.GreedyStrategy
	GameController    *game.Controller
	RoomController    *room.Controller
	HubManager        *ws.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, dictionary must be loaded manually
	DictionaryPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	dictService := dictionary.New(store)
	boardService := board.New()
	scoringService := scoring.New()
	objectiveService := objectives.New()
	botStrategy := bot.NewGreedyStrategy(boardService, scoringService, dictService)
	hubManager := ws.NewHubManager(logger)
	gameController := game.NewController(store, boardService, scoringService, dictService, objectiveService, botStrategy, hubManager, clk, rnd, logger)
	roomController := room.NewController(store, gameController, hubManager, clk, rnd, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		BoardService:      boardService,
		ScoringService:    scoringService,
		ObjectiveService:  objectiveService,
		BotStrategy:       botStrategy,
		GameController:    gameController,
		RoomController:    roomController,
		HubManager:        hubManager,
	}
}
