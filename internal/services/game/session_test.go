package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/mocks"
	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/services/board"
	"github.com/yasskadd/Scrabble-sub001/internal/services/dictionary"
	"github.com/yasskadd/Scrabble-sub001/internal/services/objectives"
	"github.com/yasskadd/Scrabble-sub001/internal/services/scoring"
	"github.com/yasskadd/Scrabble-sub001/internal/storage/memory"
	"github.com/yasskadd/Scrabble-sub001/internal/testutil"
)

// stubStrategy always proposes the scripted action
type stubStrategy struct {
	action BotAction
}

func (s *stubStrategy) ChooseAction(g *model.Game, bot *model.Player) BotAction {
	return s.action
}

type SessionSuite struct {
	suite.Suite
	ctx         context.Context
	store       *memory.Storage
	clock       *mocks.MockClock
	random      *mocks.MockRandom
	broadcaster *testutil.RecordingBroadcaster
	strategy    *stubStrategy
	controller  *Controller
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.broadcaster = testutil.NewRecordingBroadcaster()
	s.strategy = &stubStrategy{action: BotAction{Kind: BotSkip}}

	dict := dictionary.New(s.store)
	dict.LoadWords([]string{"aa", "at", "ta", "cat", "hat", "cha", "chat", "tea", "chats"})

	s.controller = NewController(
		s.store,
		board.New(),
		scoring.New(),
		dict,
		objectives.New(),
		s.strategy,
		s.broadcaster,
		s.clock,
		s.random,
		testutil.NopLogger(),
	)
}

// startMatch saves a room with the given seats and promotes it. The mock
// random always picks index zero, so the first seat opens the match and
// every reserve draw is deterministic.
func (s *SessionSuite) startMatch(seats ...model.RoomPlayer) *Session {
	room := &model.Room{
		ID:      "ROOM42",
		Config:  model.DefaultGameConfig(),
		Players: seats,
		State:   model.RoomStateWaiting,
	}
	s.Require().NoError(s.store.SaveRoom(s.ctx, room))

	session, err := s.controller.StartMatch(s.ctx, room)
	s.Require().NoError(err)
	return session
}

func twoHumans() []model.RoomPlayer {
	return []model.RoomPlayer{
		{ID: "p1", Name: "Alice", Type: model.TypeHuman, IsCreator: true},
		{ID: "p2", Name: "Bob", Type: model.TypeHuman},
	}
}

func rackOf(symbols string) model.Rack {
	rack := make(model.Rack, 0, len(symbols))
	for _, r := range symbols {
		rack = append(rack, model.Letter{Value: r, Points: model.PointsFor(r)})
	}
	return rack
}

func (s *SessionSuite) TestStartMatchDealsRacksAndOpensFirstTurn() {
	sess := s.startMatch(twoHumans()...)

	s.Equal(model.GameInProgress, sess.State())
	s.Equal(model.PlayerID("p1"), sess.ActivePlayerID())
	s.Len(sess.Rack("p1"), model.RackSize)
	s.Len(sess.Rack("p2"), model.RackSize)
	s.Equal(100, sess.TilesInPlay())

	s.Len(s.broadcaster.PlayerEvents["p1"], 1)
	s.Len(s.broadcaster.PlayerEvents["p2"], 1)
	event, ok := s.broadcaster.LastRoomEvent(model.EventTurnChanged)
	s.Require().True(ok)
	payload := event.Payload.(model.TurnChangedPayload)
	s.Equal(model.PlayerID("p1"), payload.ActivePlayerID)
	s.Equal(1, s.clock.PendingTimers())
}

func (s *SessionSuite) TestStartMatchRefusesSingleSeat() {
	room := &model.Room{
		ID:      "SOLO",
		Config:  model.DefaultGameConfig(),
		Players: []model.RoomPlayer{{ID: "p1", Name: "Alice", Type: model.TypeHuman}},
	}
	_, err := s.controller.StartMatch(s.ctx, room)
	s.ErrorIs(err, model.ErrRoomNotWaiting)
}

func (s *SessionSuite) TestPlaceWordScoresRefillsAndAdvances() {
	sess := s.startMatch(twoHumans()...)
	sess.game.Players[0].Rack = rackOf("CHATAAA")
	s.broadcaster.Reset()

	err := sess.PlaceWord("p1", model.Center, model.Horizontal, "chat")
	s.Require().NoError(err)

	s.Equal(18, sess.Score("p1"))
	s.Len(sess.Rack("p1"), model.RackSize)
	s.Len(sess.BoardCells(), 4)
	s.Equal(model.PlayerID("p2"), sess.ActivePlayerID())
	s.Equal(0, sess.SkipCount())

	types := s.broadcaster.RoomEventTypes()
	s.Contains(types, model.EventBoardUpdated)
	s.Contains(types, model.EventScoreUpdated)
	s.Contains(types, model.EventTurnChanged)
	s.Len(s.broadcaster.PlayerEvents["p1"], 1)
}

func (s *SessionSuite) TestPlaceWordOutOfTurn() {
	sess := s.startMatch(twoHumans()...)
	err := sess.PlaceWord("p2", model.Center, model.Horizontal, "chat")
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *SessionSuite) TestPlaceWordWithoutRackLetters() {
	sess := s.startMatch(twoHumans()...)
	sess.game.Players[0].Rack = rackOf("AAAAAAA")

	err := sess.PlaceWord("p1", model.Center, model.Horizontal, "chat")
	s.ErrorIs(err, model.ErrInsufficientRackLetters)
	s.Equal(model.PlayerID("p1"), sess.ActivePlayerID())
}

func (s *SessionSuite) TestRejectedWordLeavesStateUntouched() {
	sess := s.startMatch(twoHumans()...)
	sess.game.Players[0].Rack = rackOf("TACCCCC")

	err := sess.PlaceWord("p1", model.Center, model.Horizontal, "tacc")
	s.ErrorIs(err, model.ErrInvalidWords)

	s.Empty(sess.BoardCells())
	s.Equal(rackOf("TACCCCC"), sess.Rack("p1"))
	s.Equal(0, sess.Score("p1"))
	s.Equal(model.PlayerID("p1"), sess.ActivePlayerID())
	s.Equal(100, sess.TilesInPlay())
}

func (s *SessionSuite) TestBlankPlaysAsChosenLetterForZero() {
	sess := s.startMatch(twoHumans()...)
	sess.game.Players[0].Rack = model.Rack{
		{Value: 'C', Points: 3},
		{Value: 'H', Points: 4},
		{Value: 'A', Points: 1},
		{Value: model.Blank, Points: 0},
		{Value: 'A', Points: 1},
		{Value: 'A', Points: 1},
		{Value: 'A', Points: 1},
	}

	// Uppercase T spends the blank as a T worth nothing.
	err := sess.PlaceWord("p1", model.Center, model.Horizontal, "chaT")
	s.Require().NoError(err)
	s.Equal(16, sess.Score("p1"))
}

func (s *SessionSuite) TestExchangeDrawsBeforeReturning() {
	sess := s.startMatch(twoHumans()...)
	// Deterministic draws hand p1 every A in the bag minus the two that
	// went to p2, so a returned A can only reappear if the return
	// happened before the draw.
	s.Equal(rackOf("AAAAAAA"), sess.Rack("p1"))

	err := sess.ExchangeLetters("p1", "aaa")
	s.Require().NoError(err)

	rack := sess.Rack("p1")
	s.Len(rack, model.RackSize)
	countA := 0
	for _, l := range rack {
		if l.Value == 'A' {
			countA++
		}
	}
	s.Equal(4, countA)
	s.Equal(model.PlayerID("p2"), sess.ActivePlayerID())
	s.Equal(100, sess.TilesInPlay())
}

func (s *SessionSuite) TestExchangeRefusedWhenReserveLow() {
	sess := s.startMatch(twoHumans()...)
	sess.game.Reserve.Draw(sess.game.Reserve.Count()-6, s.random)

	err := sess.ExchangeLetters("p1", "aa")
	s.ErrorIs(err, model.ErrExchangeReserveLow)
	s.Equal(model.PlayerID("p1"), sess.ActivePlayerID())
}

func (s *SessionSuite) TestSkipLimitEndsMatch() {
	sess := s.startMatch(twoHumans()...)

	players := []model.PlayerID{"p1", "p2"}
	for i := 0; i < 6; i++ {
		s.Require().NoError(sess.SkipTurn(players[i%2]))
	}

	s.Equal(model.GameEnded, sess.State())
	s.Equal(model.EndReasonSkipLimit, sess.game.EndedFor)
	s.Equal(0, s.clock.PendingTimers())

	event, ok := s.broadcaster.LastRoomEvent(model.EventMatchEnded)
	s.Require().True(ok)
	s.Equal(model.EndReasonSkipLimit, event.Payload.(model.MatchEndedPayload).Reason)

	_, err := s.controller.Registry().Get("ROOM42")
	s.ErrorIs(err, model.ErrSessionNotFound)
	_, err = s.store.GetRoom(s.ctx, "ROOM42")
	s.ErrorIs(err, model.ErrRoomNotAvailable)

	history, err := s.store.GetMatchHistory(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(model.EndReasonSkipLimit, history[0].Reason)
}

func (s *SessionSuite) TestTurnTimeoutCountsAsSkip() {
	sess := s.startMatch(twoHumans()...)

	s.clock.Advance(60 * time.Second)

	s.Equal(1, sess.SkipCount())
	s.Equal(model.PlayerID("p2"), sess.ActivePlayerID())
}

func (s *SessionSuite) TestStaleTimerLosesToCompletedTurn() {
	sess := s.startMatch(twoHumans()...)

	// p2 drops while waiting; once their turn opens, a grace timer is
	// armed alongside the countdown.
	sess.PlayerDisconnected("p2")
	s.Require().NoError(sess.SkipTurn("p1"))
	s.Equal(model.PlayerID("p2"), sess.ActivePlayerID())

	sess.PlayerReconnected("p2")
	sess.game.Players[1].Rack = rackOf("CHATAAA")
	s.Require().NoError(sess.PlaceWord("p2", model.Center, model.Horizontal, "chat"))

	// The grace timer fires after the turn already advanced and must not
	// skip anyone.
	s.clock.Advance(5 * time.Second)
	s.Equal(model.PlayerID("p1"), sess.ActivePlayerID())
	s.Equal(0, sess.SkipCount())
	s.Equal(model.GameInProgress, sess.State())
}

func (s *SessionSuite) TestAllHumansGoneAbandonsMatch() {
	sess := s.startMatch(twoHumans()...)

	sess.PlayerDisconnected("p1")
	s.Equal(model.GameInProgress, sess.State())

	sess.PlayerDisconnected("p2")
	s.Equal(model.GameEnded, sess.State())
	s.Equal(model.EndReasonAbandoned, sess.game.EndedFor)
}

func (s *SessionSuite) TestReconnectResendsState() {
	sess := s.startMatch(twoHumans()...)
	sess.PlayerDisconnected("p2")
	s.broadcaster.Reset()

	sess.PlayerReconnected("p2")

	events := s.broadcaster.PlayerEvents["p2"]
	s.Require().Len(events, 2)
	s.Equal(model.EventBoardUpdated, events[0].Type)
	s.Equal(model.EventRackUpdated, events[1].Type)
}

func (s *SessionSuite) TestBotPlaysAfterThinkDelay() {
	sess := s.startMatch(
		model.RoomPlayer{ID: "p1", Name: "Alice", Type: model.TypeHuman, IsCreator: true},
		model.RoomPlayer{ID: "bot1", Name: "Hector", Type: model.TypeBot},
	)
	s.strategy.action = BotAction{
		Kind:        BotPlace,
		FirstCoord:  model.Center,
		Orientation: model.Horizontal,
		Letters:     "aa",
	}

	s.Require().NoError(sess.SkipTurn("p1"))
	s.Equal(model.PlayerID("bot1"), sess.ActivePlayerID())

	s.clock.Advance(botThinkDelay)

	s.Equal(4, sess.Score("bot1"))
	s.Len(sess.BoardCells(), 2)
	s.Equal(model.PlayerID("p1"), sess.ActivePlayerID())
	s.Equal(0, sess.SkipCount())
}

func (s *SessionSuite) TestBotFallsBackToExchange() {
	sess := s.startMatch(
		model.RoomPlayer{ID: "p1", Name: "Alice", Type: model.TypeHuman, IsCreator: true},
		model.RoomPlayer{ID: "bot1", Name: "Hector", Type: model.TypeBot},
	)
	s.strategy.action = BotAction{
		Kind:        BotPlace,
		FirstCoord:  model.Center,
		Orientation: model.Horizontal,
		Letters:     "zz",
	}

	s.Require().NoError(sess.SkipTurn("p1"))
	s.clock.Advance(botThinkDelay)

	s.Empty(sess.BoardCells())
	s.Len(sess.Rack("bot1"), model.RackSize)
	s.Equal(model.PlayerID("p1"), sess.ActivePlayerID())
	s.Equal(1, sess.SkipCount())
}

func (s *SessionSuite) TestBotFallsBackToSkipWhenReserveLow() {
	sess := s.startMatch(
		model.RoomPlayer{ID: "p1", Name: "Alice", Type: model.TypeHuman, IsCreator: true},
		model.RoomPlayer{ID: "bot1", Name: "Hector", Type: model.TypeBot},
	)
	s.strategy.action = BotAction{
		Kind:        BotPlace,
		FirstCoord:  model.Center,
		Orientation: model.Horizontal,
		Letters:     "zz",
	}
	sess.game.Reserve.Draw(sess.game.Reserve.Count()-6, s.random)

	s.Require().NoError(sess.SkipTurn("p1"))
	s.clock.Advance(botThinkDelay)

	s.Equal(2, sess.SkipCount())
	s.Equal(model.PlayerID("p1"), sess.ActivePlayerID())
}

func (s *SessionSuite) TestEmptyRackWithEmptyReserveEndsMatch() {
	sess := s.startMatch(twoHumans()...)
	sess.game.Reserve.Draw(sess.game.Reserve.Count(), s.random)
	sess.game.Players[0].Rack = rackOf("CHAT")

	err := sess.PlaceWord("p1", model.Center, model.Horizontal, "chat")
	s.Require().NoError(err)

	s.Equal(model.GameEnded, sess.State())
	s.Equal(model.EndReasonReserve, sess.game.EndedFor)
	event, ok := s.broadcaster.LastRoomEvent(model.EventMatchEnded)
	s.Require().True(ok)
	s.Equal(model.PlayerID("p1"), event.Payload.(model.MatchEndedPayload).Winner)
}

func (s *SessionSuite) TestActionsRefusedAfterEnd() {
	sess := s.startMatch(twoHumans()...)
	players := []model.PlayerID{"p1", "p2"}
	for i := 0; i < 6; i++ {
		s.Require().NoError(sess.SkipTurn(players[i%2]))
	}

	s.ErrorIs(sess.SkipTurn("p1"), model.ErrGameNotInProgress)
	s.ErrorIs(sess.PlaceWord("p1", model.Center, model.Horizontal, "chat"), model.ErrGameNotInProgress)
}

func (s *SessionSuite) TestHintCountsAgainstPlayer() {
	sess := s.startMatch(twoHumans()...)

	s.Require().NoError(sess.Hint("p2"))
	s.Equal(1, sess.game.Players[1].HintUses)

	s.ErrorIs(sess.Hint("ghost"), model.ErrPlayerNotFound)
}
