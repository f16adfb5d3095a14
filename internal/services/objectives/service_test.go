package objectives

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/mocks"
	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	game    *model.Game
	actor   *model.Player
	other   *model.Player
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.actor = &model.Player{ID: "p1", Name: "Alice", Type: model.TypeHuman}
	s.other = &model.Player{ID: "p2", Name: "Bob", Type: model.TypeHuman}
	s.game = &model.Game{
		Config:  model.GameConfig{Mode: model.ModeObjectives},
		Players: []*model.Player{s.actor, s.other},
	}
}

func (s *ServiceSuite) give(p *model.Player, id model.ObjectiveID, public bool) {
	for _, obj := range s.service.Catalog() {
		if obj.ID == id {
			obj.Public = public
			p.Objectives = append(p.Objectives, obj)
			return
		}
	}
	s.FailNow("unknown objective", string(id))
}

func words(texts ...string) []*model.Word {
	ws := make([]*model.Word, len(texts))
	for i, t := range texts {
		ws[i] = &model.Word{Text: t}
	}
	return ws
}

func (s *ServiceSuite) TestDealAssignsTwoPublicAndOnePrivate() {
	rnd := mocks.NewMockRandom()
	s.service.Deal(s.game.Players, rnd)

	for _, p := range s.game.Players {
		s.Require().Len(p.Objectives, 3)
		s.True(p.Objectives[0].Public)
		s.True(p.Objectives[1].Public)
		s.False(p.Objectives[2].Public)
	}

	// The two public objectives are shared; the privates are distinct.
	s.Equal(s.actor.Objectives[0].ID, s.other.Objectives[0].ID)
	s.Equal(s.actor.Objectives[1].ID, s.other.Objectives[1].ID)
	s.NotEqual(s.actor.Objectives[2].ID, s.other.Objectives[2].ID)
}

func (s *ServiceSuite) TestDealSkipsObservers() {
	observer := &model.Player{ID: "obs", Type: model.TypeObserver}
	s.service.Deal([]*model.Player{s.actor, observer}, mocks.NewMockRandom())
	s.Len(s.actor.Objectives, 3)
	s.Empty(observer.Objectives)
}

func (s *ServiceSuite) TestPalindromeNeedsThreeLetters() {
	s.give(s.actor, model.ObjectivePalindrome, false)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("AA")})
	s.Empty(done)
	s.Len(s.actor.Objectives, 1)

	done = s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("RADAR")})
	s.Require().Len(done, 1)
	s.Equal(model.ObjectivePalindrome, done[0].Objective.ID)
	s.Equal(50, s.actor.Score)
	s.Empty(s.actor.Objectives)
}

func (s *ServiceSuite) TestAlphabeticalWord() {
	s.give(s.actor, model.ObjectiveAlphabetical, false)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("CAT")})
	s.Empty(done)

	done = s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("BELT")})
	s.Require().Len(done, 1)
	s.Equal(20, s.actor.Score)
}

func (s *ServiceSuite) TestLongWord() {
	s.give(s.actor, model.ObjectiveLongWord, false)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("PLAYGROUND")})
	s.Empty(done)

	done = s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("PLAYGROUNDS")})
	s.Require().Len(done, 1)
	s.Equal(40, s.actor.Score)
}

func (s *ServiceSuite) TestThreeWordsDoublesTurnPoints() {
	s.give(s.actor, model.ObjectiveThreeWords, false)

	turn := Turn{Words: words("AT", "HA", "AT"), TurnPoints: 11}
	done := s.service.EvaluateTurn(s.game, s.actor, turn)
	s.Require().Len(done, 1)
	s.Equal(22, done[0].Objective.Points)
	s.Equal(22, s.actor.Score)
}

func (s *ServiceSuite) TestOneVowelDoublesWordPoints() {
	s.give(s.actor, model.ObjectiveOneVowel, false)

	// Two vowels, no award.
	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("STREET")})
	s.Empty(done)

	word := &model.Word{Text: "RHYTHMS", Points: 18}
	done = s.service.EvaluateTurn(s.game, s.actor, Turn{Words: []*model.Word{word}})
	s.Empty(done)

	word = &model.Word{Text: "STRENGTH", Points: 12}
	done = s.service.EvaluateTurn(s.game, s.actor, Turn{Words: []*model.Word{word}})
	s.Require().Len(done, 1)
	s.Equal(24, s.actor.Score)
}

func (s *ServiceSuite) TestSameWordTwiceInOneTurn() {
	s.give(s.actor, model.ObjectiveSameWordTwice, false)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("AT", "HA")})
	s.Empty(done)

	done = s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("AT", "at")})
	s.Require().Len(done, 1)
	s.Equal(25, s.actor.Score)
}

func (s *ServiceSuite) TestFiveLettersOnConsecutiveTurns() {
	s.give(s.actor, model.ObjectiveFiveTwice, false)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{LettersPlaced: 5})
	s.Empty(done)
	s.Equal(1, s.actor.FiveLetterStreak)

	// A short turn resets the streak.
	done = s.service.EvaluateTurn(s.game, s.actor, Turn{LettersPlaced: 2})
	s.Empty(done)
	s.Equal(0, s.actor.FiveLetterStreak)

	s.service.EvaluateTurn(s.game, s.actor, Turn{LettersPlaced: 6})
	done = s.service.EvaluateTurn(s.game, s.actor, Turn{LettersPlaced: 5})
	s.Require().Len(done, 1)
	s.Equal(30, s.actor.Score)
}

func (s *ServiceSuite) TestNoHintsAwardedAtEndOfMatch() {
	s.give(s.actor, model.ObjectiveNoHints, false)
	s.give(s.other, model.ObjectiveNoHints, false)
	s.other.HintUses = 1

	// Never completes mid-match.
	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("CAT")})
	s.Empty(done)

	done = s.service.EvaluateEndOfMatch(s.game)
	s.Require().Len(done, 1)
	s.Equal(s.actor.ID, done[0].PlayerID)
	s.Equal(15, s.actor.Score)
	s.Equal(0, s.other.Score)
}

func (s *ServiceSuite) TestPublicObjectiveRetiredForEveryone() {
	s.give(s.actor, model.ObjectivePalindrome, true)
	s.give(s.other, model.ObjectivePalindrome, true)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("LEVEL")})
	s.Require().Len(done, 1)
	s.Empty(s.actor.Objectives)
	s.Empty(s.other.Objectives)
	s.Equal(0, s.other.Score)
}

func (s *ServiceSuite) TestPrivateObjectiveStaysWithOthers() {
	s.give(s.actor, model.ObjectiveAlphabetical, false)
	s.give(s.other, model.ObjectiveAlphabetical, false)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("ABBOT")})
	s.Require().Len(done, 1)
	s.Empty(s.actor.Objectives)
	s.Len(s.other.Objectives, 1)
}

func (s *ServiceSuite) TestMultipleCompletionsInOneTurn() {
	s.give(s.actor, model.ObjectivePalindrome, false)
	s.give(s.actor, model.ObjectiveAlphabetical, false)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("LEVEL", "ABBOT")})
	s.Len(done, 2)
	s.Equal(70, s.actor.Score)
	s.Empty(s.actor.Objectives)
}

func (s *ServiceSuite) TestCompletionsWithFullDealtHand() {
	// A dealt hand holds three objectives; completing the first and last
	// in the same turn must award each exactly once and leave the middle
	// one in play.
	s.give(s.actor, model.ObjectivePalindrome, true)
	s.give(s.actor, model.ObjectiveLongWord, true)
	s.give(s.actor, model.ObjectiveAlphabetical, false)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("LEVEL", "ABBOT")})
	s.Require().Len(done, 2)
	s.Equal(model.ObjectivePalindrome, done[0].Objective.ID)
	s.Equal(model.ObjectiveAlphabetical, done[1].Objective.ID)
	s.Equal(70, s.actor.Score)

	s.Require().Len(s.actor.Objectives, 1)
	s.Equal(model.ObjectiveLongWord, s.actor.Objectives[0].ID)
}

func (s *ServiceSuite) TestLaterObjectivesStillCheckedAfterRetire() {
	s.give(s.actor, model.ObjectivePalindrome, false)
	s.give(s.actor, model.ObjectiveAlphabetical, false)
	s.give(s.actor, model.ObjectiveLongWord, false)

	done := s.service.EvaluateTurn(s.game, s.actor, Turn{Words: words("LEVEL", "BERT")})
	s.Require().Len(done, 2)
	s.Equal(70, s.actor.Score)
	s.Require().Len(s.actor.Objectives, 1)
	s.Equal(model.ObjectiveLongWord, s.actor.Objectives[0].ID)
}
