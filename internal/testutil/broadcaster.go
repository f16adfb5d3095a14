package testutil

import (
	"sync"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

// RecordingBroadcaster captures emitted events for assertions instead of
// pushing them onto a transport
type RecordingBroadcaster struct {
	mu sync.Mutex

	RoomEvents   []model.Event
	PlayerEvents map[model.PlayerID][]model.Event
	LobbyEvents  []model.Event
}

// NewRecordingBroadcaster creates an empty RecordingBroadcaster
func NewRecordingBroadcaster() *RecordingBroadcaster {
	return &RecordingBroadcaster{
		PlayerEvents: make(map[model.PlayerID][]model.Event),
	}
}

// ToRoom records a room broadcast
func (b *RecordingBroadcaster) ToRoom(roomID model.RoomID, event model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.RoomEvents = append(b.RoomEvents, event)
}

// ToPlayer records a direct send
func (b *RecordingBroadcaster) ToPlayer(playerID model.PlayerID, event model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.PlayerEvents[playerID] = append(b.PlayerEvents[playerID], event)
}

// ToLobby records a lobby broadcast
func (b *RecordingBroadcaster) ToLobby(event model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LobbyEvents = append(b.LobbyEvents, event)
}

// RoomEventTypes returns the types of recorded room events in order
func (b *RecordingBroadcaster) RoomEventTypes() []model.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]model.EventType, len(b.RoomEvents))
	for i, e := range b.RoomEvents {
		types[i] = e.Type
	}
	return types
}

// LastRoomEvent returns the most recent room event of the given type, or
// a zero event
func (b *RecordingBroadcaster) LastRoomEvent(eventType model.EventType) (model.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.RoomEvents) - 1; i >= 0; i-- {
		if b.RoomEvents[i].Type == eventType {
			return b.RoomEvents[i], true
		}
	}
	return model.Event{}, false
}

// Reset clears all recorded events
func (b *RecordingBroadcaster) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.RoomEvents = nil
	b.PlayerEvents = make(map[model.PlayerID][]model.Event)
	b.LobbyEvents = nil
}
