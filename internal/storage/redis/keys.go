package redis

import "github.com/yasskadd/Scrabble-sub001/internal/model"

// Key prefixes namespace everything under scrabble:
const (
	roomPrefix    = "scrabble:room:"
	historyKey    = "scrabble:history"
	dictionaryKey = "scrabble:dictionary"
	roomIndexKey  = "scrabble:rooms"
)

func roomKey(id model.RoomID) string {
	return roomPrefix + string(id)
}
