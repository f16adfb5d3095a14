package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	manager *HubManager
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	s.manager = NewHubManager(testutil.NopLogger())
}

func (s *HubSuite) client(playerID model.PlayerID) *Client {
	return NewClient(s.manager, nil, playerID, string(playerID), testutil.NopLogger())
}

// receive waits briefly for the next queued message
func (s *HubSuite) receive(c *Client) []byte {
	select {
	case data := <-c.send:
		return data
	case <-time.After(time.Second):
		s.FailNow("no message received")
		return nil
	}
}

func (s *HubSuite) receiveEvent(c *Client) model.Event {
	var event model.Event
	s.Require().NoError(json.Unmarshal(s.receive(c), &event))
	return event
}

func (s *HubSuite) assertNothingQueued(c *Client) {
	select {
	case data := <-c.send:
		s.Failf("unexpected message", "%s", data)
	default:
	}
}

func (s *HubSuite) TestHubBroadcastReachesRegisteredClients() {
	hub := NewHub("ROOM01", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	first := s.client("p1")
	second := s.client("p2")
	hub.Register(first)
	hub.Register(second)
	s.Equal(2, hub.ClientCount())

	hub.Broadcast([]byte("hello"))

	s.Equal([]byte("hello"), s.receive(first))
	s.Equal([]byte("hello"), s.receive(second))
}

func (s *HubSuite) TestHubUnregisterStopsDelivery() {
	hub := NewHub("ROOM01", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := s.client("p1")
	hub.Register(client)
	s.Equal(1, hub.ClientCount())

	hub.Unregister(client)
	s.Equal(0, hub.ClientCount())

	hub.Broadcast([]byte("hello"))
	time.Sleep(20 * time.Millisecond)
	s.assertNothingQueued(client)
}

func (s *HubSuite) TestHubCloseEvictsClients() {
	hub := NewHub("ROOM01", testutil.NopLogger())
	go hub.Run()

	client := s.client("p1")
	hub.Register(client)
	s.Equal(1, hub.ClientCount())

	hub.Close()
	s.Equal(0, hub.ClientCount())

	// Registration against a closed hub is refused
	hub.Register(s.client("p2"))
	s.Equal(0, hub.ClientCount())
}

func (s *HubSuite) TestToPlayerReachesOnlyThatPlayer() {
	alice := s.client("p1")
	bob := s.client("p2")
	s.manager.Connect(alice)
	s.manager.Connect(bob)

	s.manager.ToPlayer("p1", model.Event{Type: model.EventRackUpdated})

	event := s.receiveEvent(alice)
	s.Equal(model.EventRackUpdated, event.Type)
	s.assertNothingQueued(bob)
}

func (s *HubSuite) TestToPlayerUnknownIsNoop() {
	s.manager.ToPlayer("ghost", model.Event{Type: model.EventRackUpdated})
}

func (s *HubSuite) TestToRoomReachesSubscribersOnly() {
	alice := s.client("p1")
	bob := s.client("p2")
	carol := s.client("p3")
	s.manager.Connect(alice)
	s.manager.Connect(bob)
	s.manager.Connect(carol)

	s.manager.JoinRoom(alice, "ROOM01")
	s.manager.JoinRoom(bob, "ROOM01")

	s.manager.ToRoom("ROOM01", model.Event{Type: model.EventBoardUpdated, RoomID: "ROOM01"})

	s.Equal(model.EventBoardUpdated, s.receiveEvent(alice).Type)
	s.Equal(model.EventBoardUpdated, s.receiveEvent(bob).Type)
	s.assertNothingQueued(carol)
}

func (s *HubSuite) TestToLobbyReachesEveryConnection() {
	alice := s.client("p1")
	bob := s.client("p2")
	s.manager.Connect(alice)
	s.manager.Connect(bob)

	s.manager.ToLobby(model.Event{Type: model.EventRoomListUpdated})

	s.Equal(model.EventRoomListUpdated, s.receiveEvent(alice).Type)
	s.Equal(model.EventRoomListUpdated, s.receiveEvent(bob).Type)
}

func (s *HubSuite) TestDisconnectRemovesClient() {
	alice := s.client("p1")
	s.manager.Connect(alice)
	s.manager.JoinRoom(alice, "ROOM01")
	s.Equal(1, s.manager.ClientCount())

	s.manager.Disconnect(alice)

	s.Equal(0, s.manager.ClientCount())
	s.manager.ToPlayer("p1", model.Event{Type: model.EventRackUpdated})

	// The send channel is closed once the client is gone
	_, open := <-alice.send
	s.False(open)
}

func (s *HubSuite) TestSendAfterDisconnectIsDropped() {
	alice := s.client("p1")
	s.manager.Connect(alice)
	s.manager.Disconnect(alice)

	// A broadcaster that snapshotted the client before the disconnect
	// still holds a reference; its send must drop, not panic
	s.NotPanics(func() {
		s.False(alice.Send([]byte("late")))
	})
	s.NotPanics(func() {
		s.manager.ToLobby(model.Event{Type: model.EventRoomListUpdated})
	})
}

func (s *HubSuite) TestDisconnectIsIdempotent() {
	alice := s.client("p1")
	s.manager.Connect(alice)
	s.manager.Disconnect(alice)
	s.NotPanics(func() { s.manager.Disconnect(alice) })
}

func (s *HubSuite) TestDisconnectKeepsReplacementConnection() {
	old := s.client("p1")
	s.manager.Connect(old)
	replacement := s.client("p1")
	s.manager.Connect(replacement)

	s.manager.Disconnect(old)

	s.Equal(1, s.manager.ClientCount())
	s.manager.ToPlayer("p1", model.Event{Type: model.EventRackUpdated})
	s.Equal(model.EventRackUpdated, s.receiveEvent(replacement).Type)
}

func (s *HubSuite) TestLeaveRoomTearsDownEmptyHub() {
	alice := s.client("p1")
	s.manager.Connect(alice)
	s.manager.JoinRoom(alice, "ROOM01")

	s.manager.LeaveRoom(alice)

	s.Equal(model.RoomID(""), alice.RoomID())
	s.manager.mu.RLock()
	_, ok := s.manager.hubs["ROOM01"]
	s.manager.mu.RUnlock()
	s.False(ok)
}

func (s *HubSuite) TestCloseRoomResetsClients() {
	alice := s.client("p1")
	s.manager.Connect(alice)
	s.manager.JoinRoom(alice, "ROOM01")

	s.manager.CloseRoom("ROOM01")

	s.Equal(model.RoomID(""), alice.RoomID())
	// Sends to the closed room are dropped without error
	s.manager.ToRoom("ROOM01", model.Event{Type: model.EventBoardUpdated})
	time.Sleep(20 * time.Millisecond)
	s.assertNothingQueued(alice)
}
