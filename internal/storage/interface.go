package storage

import (
	"context"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

// Storage defines the interface for data persistence: waiting rooms,
// per-match history records and the dictionary word list. Live game
// sessions are never persisted; they belong to the in-process registry.
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error
	RoomExists(ctx context.Context, id model.RoomID) (bool, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)

	// Match history operations; records are written once per completed
	// match
	AppendMatchRecord(ctx context.Context, record *model.MatchRecord) error
	GetMatchHistory(ctx context.Context) ([]*model.MatchRecord, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
