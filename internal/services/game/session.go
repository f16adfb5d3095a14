package game

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode"

	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/clock"
	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/services/objectives"
)

const (
	// botThinkDelay spaces out bot moves so they read as turns, not
	// instant replies
	botThinkDelay = 2 * time.Second

	// disconnectGrace bounds how long a turn waits for a disconnected
	// player before it is skipped for them
	disconnectGrace = 5 * time.Second
)

// Session runs one live match. Every mutation (placing, exchanging,
// skipping, timer expiry, disconnects) is serialized behind one mutex,
// so at most one in-flight mutation exists per session; two sessions are
// fully independent. The turn countdown carries a turn epoch, and a
// stale timer firing after the turn already advanced is ignored, so a
// timeout and a valid play can never both apply to the same turn.
type Session struct {
	c *Controller

	mu        sync.Mutex
	game      *model.Game
	turnEpoch int
	turnTimer clock.Timer

	logger *slog.Logger
}

func newSession(g *model.Game, c *Controller) *Session {
	return &Session{
		c:      c,
		game:   g,
		logger: c.logger.With(slog.String("room_id", string(g.RoomID))),
	}
}

// RoomID returns the identifier the session is registered under
func (s *Session) RoomID() model.RoomID {
	return s.game.RoomID
}

// Start begins the first turn
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.game.State != model.GameWaitingToStart {
		return
	}
	s.game.State = model.GameInProgress
	s.beginTurn()
}

// State returns the current match phase
func (s *Session) State() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State
}

// ActivePlayerID returns the player whose turn it is, or empty
func (s *Session) ActivePlayerID() model.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.game.ActivePlayer(); p != nil {
		return p.ID
	}
	return ""
}

// SkipCount returns the consecutive non-play turn count
func (s *Session) SkipCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.SkipCount
}

// TilesInPlay returns the total tile count across racks, board and
// reserve
func (s *Session) TilesInPlay() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.TilesInPlay()
}

// HasPlayer reports whether the given player holds a playing seat in
// this match
func (s *Session) HasPlayer(playerID model.PlayerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.game.GetPlayer(playerID)
	return p != nil && p.IsPlaying()
}

// Rack returns a copy of one player's rack
func (s *Session) Rack(playerID model.PlayerID) model.Rack {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.game.GetPlayer(playerID)
	if p == nil {
		return nil
	}
	rack := make(model.Rack, len(p.Rack))
	copy(rack, p.Rack)
	return rack
}

// Score returns one player's score
func (s *Session) Score(playerID model.PlayerID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.game.GetPlayer(playerID); p != nil {
		return p.Score
	}
	return 0
}

// BoardCells returns the occupied cells of the board
func (s *Session) BoardCells() []model.Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Board.Cells()
}

// PlaceWord applies a placement command for the active player. The
// placement is fully validated before any state commits: the word builder
// rolls its speculative letters back on a build error, and a dictionary
// rejection rolls them back here, so a rejected play leaves board and
// rack untouched.
func (s *Session) PlaceWord(playerID model.PlayerID, firstCoord model.Position, orientation model.Orientation, letters string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.requireActive(playerID)
	if err != nil {
		return err
	}

	symbols, resolved, err := resolveLetters(letters)
	if err != nil {
		return err
	}
	removed, remainingRack, ok := p.Rack.Remove(symbols)
	if !ok {
		return model.ErrInsufficientRackLetters
	}

	result, err := s.c.boardService.BuildPlacement(s.game.Board, firstCoord, orientation, resolved)
	if err != nil {
		return err
	}

	invalid, err := s.c.dictionary.Validate(result.Words)
	if err != nil {
		s.c.boardService.Rollback(s.game.Board, result)
		s.abort(err)
		return model.ErrFatalState
	}
	if len(invalid) > 0 {
		s.c.boardService.Rollback(s.game.Board, result)
		return model.ErrInvalidWords
	}

	// Commit: rack, score, refill
	tilesPlaced := len(removed)
	points := s.c.scoringService.Score(s.game.Board, result.Words, tilesPlaced)
	p.Rack = append(remainingRack, s.game.Reserve.Draw(tilesPlaced, s.c.random)...)
	p.Score += points
	s.game.SkipCount = 0

	s.logger.Info("word placed",
		slog.String("player_id", string(p.ID)),
		slog.Int("points", points),
		slog.Int("words", len(result.Words)),
	)

	s.emitToRoom(model.EventBoardUpdated, model.BoardUpdatedPayload{Cells: s.game.Board.Cells()})
	s.emitToRoom(model.EventScoreUpdated, model.ScoreUpdatedPayload{PlayerID: p.ID, NewScore: p.Score})
	s.emitToPlayer(p.ID, model.EventRackUpdated, model.RackUpdatedPayload{PlayerID: p.ID, Rack: p.Rack})

	if s.game.Config.Mode == model.ModeObjectives {
		turn := objectives.Turn{Words: result.Words, LettersPlaced: tilesPlaced, TurnPoints: points}
		for _, completion := range s.c.objectives.EvaluateTurn(s.game, p, turn) {
			s.emitToRoom(model.EventObjectiveCompleted, model.ObjectiveCompletedPayload{
				Objective: completion.Objective,
				PlayerID:  completion.PlayerID,
			})
			s.emitToRoom(model.EventScoreUpdated, model.ScoreUpdatedPayload{PlayerID: p.ID, NewScore: p.Score})
		}
	}

	// Reserve exhausted and the rack could not refill: the match is over
	if s.game.Reserve.Count() == 0 && len(p.Rack) == 0 {
		s.endMatch(model.EndReasonReserve)
		return nil
	}

	s.advanceTurn()
	return nil
}

// ExchangeLetters swaps rack letters against the reserve. The removed
// tiles go back to the bag only after the replacements are drawn, so a
// player cannot redraw the very tiles they gave up.
func (s *Session) ExchangeLetters(playerID model.PlayerID, letters string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.requireActive(playerID)
	if err != nil {
		return err
	}

	if s.game.Reserve.Count() < model.RackSize {
		return model.ErrExchangeReserveLow
	}

	symbols := make([]rune, 0, len(letters))
	for _, r := range letters {
		if r == model.Blank {
			symbols = append(symbols, model.Blank)
			continue
		}
		symbols = append(symbols, unicode.ToUpper(r))
	}

	removed, remainingRack, ok := p.Rack.Remove(symbols)
	if !ok {
		return model.ErrInsufficientRackLetters
	}

	drawn := s.game.Reserve.Draw(len(removed), s.c.random)
	s.game.Reserve.Return(removed)
	p.Rack = append(remainingRack, drawn...)

	s.emitToPlayer(p.ID, model.EventRackUpdated, model.RackUpdatedPayload{PlayerID: p.ID, Rack: p.Rack})
	s.advanceTurn()
	return nil
}

// SkipTurn passes the turn; enough consecutive skips end the match
func (s *Session) SkipTurn(playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireActive(playerID); err != nil {
		return err
	}
	s.recordSkip()
	return nil
}

// Hint counts a hint request against the player's counters; the
// objectives mode awards players who never ask for one
func (s *Session) Hint(playerID model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.game.GetPlayer(playerID)
	if p == nil {
		return model.ErrPlayerNotFound
	}
	p.HintUses++
	return nil
}

// PlayerDisconnected marks a dropped connection. The seat is routed
// around rather than forfeited: the running turn timer (or the
// disconnect grace on later turns) forces a skip, and the match is
// aborted only when no connected human remains.
func (s *Session) PlayerDisconnected(playerID model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.game.GetPlayer(playerID)
	if p == nil || s.game.State != model.GameInProgress {
		return
	}
	p.Connected = false
	s.emitToRoom(model.EventPlayerDisconnected, model.PlayerDisconnectedPayload{PlayerID: p.ID})

	for _, other := range s.game.Players {
		if other.Type == model.TypeHuman && other.Connected {
			return
		}
	}
	s.endMatch(model.EndReasonAbandoned)
}

// PlayerReconnected restores a seat and resends the authoritative state
// to that player
func (s *Session) PlayerReconnected(playerID model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.game.GetPlayer(playerID)
	if p == nil {
		return
	}
	p.Connected = true
	s.emitToPlayer(p.ID, model.EventBoardUpdated, model.BoardUpdatedPayload{Cells: s.game.Board.Cells()})
	s.emitToPlayer(p.ID, model.EventRackUpdated, model.RackUpdatedPayload{PlayerID: p.ID, Rack: p.Rack})
}

// requireActive checks the match is running and it is this player's turn
func (s *Session) requireActive(playerID model.PlayerID) (*model.Player, error) {
	if s.game.State != model.GameInProgress {
		return nil, model.ErrGameNotInProgress
	}
	p := s.game.ActivePlayer()
	if p == nil || p.ID != playerID {
		return nil, model.ErrNotYourTurn
	}
	return p, nil
}

// recordSkip counts a non-play turn (explicit skip or timeout) and either
// ends the match at the configured limit or passes the turn
func (s *Session) recordSkip() {
	s.game.SkipCount++
	if s.game.SkipCount >= s.game.Config.SkipLimit {
		s.endMatch(model.EndReasonSkipLimit)
		return
	}
	s.advanceTurn()
}

// beginTurn starts the countdown for the current active player and lines
// up bot or disconnect handling. Callers hold the lock.
func (s *Session) beginTurn() {
	s.turnEpoch++
	epoch := s.turnEpoch

	seconds := s.game.Config.TurnSeconds
	s.turnTimer = s.c.clock.AfterFunc(time.Duration(seconds)*time.Second, func() {
		s.handleTimeout(epoch)
	})

	p := s.game.ActivePlayer()
	s.emitToRoom(model.EventTurnChanged, model.TurnChangedPayload{ActivePlayerID: p.ID, TurnSeconds: seconds})

	switch {
	case p.Type == model.TypeBot:
		s.c.clock.AfterFunc(botThinkDelay, func() {
			s.runBotTurn(epoch, p.ID)
		})
	case !p.Connected:
		s.c.clock.AfterFunc(disconnectGrace, func() {
			s.handleTimeout(epoch)
		})
	}
}

// advanceTurn cancels the countdown and passes the turn to the next
// playing participant. Callers hold the lock. No new timer starts once
// the match has ended.
func (s *Session) advanceTurn() {
	if s.game.State != model.GameInProgress {
		return
	}
	if s.turnTimer != nil {
		s.turnTimer.Stop()
	}

	for i := 1; i <= len(s.game.Players); i++ {
		idx := (s.game.ActiveIdx + i) % len(s.game.Players)
		if s.game.Players[idx].IsPlaying() {
			s.game.ActiveIdx = idx
			break
		}
	}
	s.beginTurn()
}

// handleTimeout treats an expired countdown as an implicit skip. A stale
// epoch means the turn already advanced; the timer loses the race and
// does nothing.
func (s *Session) handleTimeout(epoch int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.turnEpoch || s.game.State != model.GameInProgress {
		return
	}
	s.logger.Info("turn timed out", slog.String("player_id", string(s.game.ActivePlayer().ID)))
	s.recordSkip()
}

// runBotTurn asks the strategy for a move and applies it through the
// same entry points players use, degrading to exchange and then skip
func (s *Session) runBotTurn(epoch int, botID model.PlayerID) {
	s.mu.Lock()
	if epoch != s.turnEpoch || s.game.State != model.GameInProgress {
		s.mu.Unlock()
		return
	}
	action := s.c.botStrategy.ChooseAction(s.game, s.game.ActivePlayer())
	s.mu.Unlock()

	if action.Kind == BotPlace {
		if err := s.PlaceWord(botID, action.FirstCoord, action.Orientation, action.Letters); err == nil {
			return
		}
		action.Kind = BotExchange
		action.Letters = ""
	}
	if action.Kind == BotExchange {
		letters := action.Letters
		if letters == "" {
			rack := s.Rack(botID)
			symbols := make([]rune, len(rack))
			for i, l := range rack {
				symbols[i] = l.Value
			}
			letters = string(symbols)
		}
		if err := s.ExchangeLetters(botID, letters); err == nil {
			return
		}
	}
	_ = s.SkipTurn(botID)
}

// endMatch finishes the session: runs end-of-match objectives, writes
// the history record exactly once, notifies the room and removes the
// session from the registry. Callers hold the lock.
func (s *Session) endMatch(reason model.EndReason) {
	if s.game.State == model.GameEnded {
		return
	}
	s.game.State = model.GameEnded
	s.game.EndedFor = reason
	if s.turnTimer != nil {
		s.turnTimer.Stop()
	}

	if s.game.Config.Mode == model.ModeObjectives && reason != model.EndReasonFatal {
		for _, completion := range s.c.objectives.EvaluateEndOfMatch(s.game) {
			s.emitToRoom(model.EventObjectiveCompleted, model.ObjectiveCompletedPayload{
				Objective: completion.Objective,
				PlayerID:  completion.PlayerID,
			})
		}
	}

	scores := make(map[model.PlayerID]int, len(s.game.Players))
	names := make([]string, 0, len(s.game.Players))
	for _, p := range s.game.Players {
		if !p.IsPlaying() {
			continue
		}
		scores[p.ID] = p.Score
		names = append(names, p.Name)
	}
	var winnerID model.PlayerID
	if winner := s.game.Winner(); winner != nil {
		winnerID = winner.ID
	}

	record := &model.MatchRecord{
		RoomID:   s.game.RoomID,
		Players:  names,
		Scores:   scores,
		Winner:   winnerID,
		Duration: s.c.clock.Now().Sub(s.game.StartedAt),
		EndedAt:  s.c.clock.Now(),
		Reason:   reason,
	}
	if err := s.c.storage.AppendMatchRecord(context.Background(), record); err != nil {
		s.logger.Error("failed to write match record", slog.String("error", err.Error()))
	}

	s.emitToRoom(model.EventMatchEnded, model.MatchEndedPayload{
		Winner: winnerID,
		Scores: scores,
		Reason: reason,
	})

	s.logger.Info("match ended",
		slog.String("reason", string(reason)),
		slog.String("winner", string(winnerID)),
	)

	s.c.registry.Remove(s.game.RoomID)
	s.c.closeRoom(s.game.RoomID)
}

// abort terminates the session on an unrecoverable condition rather than
// continuing with a possibly invalid board
func (s *Session) abort(cause error) {
	s.logger.Error("aborting session", slog.String("error", cause.Error()))
	s.endMatch(model.EndReasonFatal)
}

func (s *Session) emitToRoom(eventType model.EventType, payload any) {
	s.c.broadcaster.ToRoom(s.game.RoomID, model.Event{
		Type:      eventType,
		RoomID:    s.game.RoomID,
		Timestamp: s.c.clock.Now(),
		Payload:   payload,
	})
}

func (s *Session) emitToPlayer(playerID model.PlayerID, eventType model.EventType, payload any) {
	s.c.broadcaster.ToPlayer(playerID, model.Event{
		Type:      eventType,
		RoomID:    s.game.RoomID,
		Timestamp: s.c.clock.Now(),
		Payload:   payload,
	})
}

// resolveLetters parses a placement's letter string. Lowercase symbols
// come straight off the rack with their table value; uppercase symbols
// are blanks played as that letter, worth zero.
func resolveLetters(letters string) (rackSymbols []rune, resolved []model.Letter, err error) {
	if letters == "" {
		return nil, nil, model.ErrNoNewTiles
	}
	for _, r := range letters {
		if !unicode.IsLetter(r) {
			return nil, nil, model.ErrInsufficientRackLetters
		}
		upper := unicode.ToUpper(r)
		if unicode.IsUpper(r) {
			rackSymbols = append(rackSymbols, model.Blank)
			resolved = append(resolved, model.Letter{Value: upper, Points: 0})
			continue
		}
		rackSymbols = append(rackSymbols, upper)
		resolved = append(resolved, model.Letter{Value: upper, Points: model.PointsFor(upper)})
	}
	return rackSymbols, resolved, nil
}
