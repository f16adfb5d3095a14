package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/services/board"
)

type ServiceSuite struct {
	suite.Suite
	board        *model.Board
	boardService *board.Service
	service      *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.board = model.NewBoard()
	s.boardService = board.New()
	s.service = New()
}

func letters(word string) []model.Letter {
	ls := make([]model.Letter, 0, len(word))
	for _, r := range word {
		ls = append(ls, model.Letter{Value: r, Points: model.PointsFor(r)})
	}
	return ls
}

func (s *ServiceSuite) build(word string, firstCoord model.Position, orientation model.Orientation) *board.PlacementResult {
	result, err := s.boardService.BuildPlacement(s.board, firstCoord, orientation, letters(word))
	s.Require().NoError(err)
	return result
}

func (s *ServiceSuite) TestFirstWordDoublesOnCenter() {
	result := s.build("CHAT", model.Center, model.Horizontal)

	points := s.service.Score(s.board, result.Words, 4)

	// C3 + H4 + A1 + T1 = 9, doubled by the center cell
	s.Equal(18, points)
	s.Equal(18, result.Words[0].Points)
}

func (s *ServiceSuite) TestLetterMultiplierAppliesToNewTileOnly() {
	result := s.build("CHAT", model.Center, model.Horizontal)
	s.service.Score(s.board, result.Words, 4)

	// CHATS: S lands on the double letter at row 7 col 11
	extend := s.build("S", model.Position{Row: 7, Col: 11}, model.Horizontal)
	points := s.service.Score(s.board, extend.Words, 1)

	// 9 for the settled letters plus S doubled; the center word
	// multiplier was consumed on the first turn
	s.Equal(11, points)
}

func (s *ServiceSuite) TestCrossWordsAllScore() {
	first := s.build("CHAT", model.Center, model.Horizontal)
	s.service.Score(s.board, first.Words, 4)

	// AT below HA forms AT, HA and AT
	parallel := s.build("AT", model.Position{Row: 8, Col: 8}, model.Horizontal)
	points := s.service.Score(s.board, parallel.Words, 2)

	// The A lands on the double letter at row 8 col 8, so the main AT
	// is 3, the cross HA is 6 and the cross AT is 2
	s.Equal(11, points)
}

func (s *ServiceSuite) TestWordMultiplierCompounds() {
	result, err := s.boardService.BuildPlacement(s.board, model.Center, model.Horizontal, letters("STATE"))
	s.Require().NoError(err)

	// The E doubles on the letter cell at row 7 col 11, then the center
	// doubles the whole word: (1+1+1+1+2) * 2
	points := s.service.Score(s.board, result.Words, 5)
	s.Equal(12, points)
}

func (s *ServiceSuite) TestBingoBonus() {
	result, err := s.boardService.BuildPlacement(s.board, model.Position{Row: 7, Col: 4}, model.Horizontal, letters("RETSINA"))
	s.Require().NoError(err)

	points := s.service.Score(s.board, result.Words, model.RackSize)

	// Seven one-point letters doubled on the center, plus the full rack
	// bonus
	s.Equal(14+BingoBonus, points)
}

func (s *ServiceSuite) TestSettledWordScoresNothingNew() {
	result := s.build("CHAT", model.Center, model.Horizontal)
	s.service.Score(s.board, result.Words, 4)

	// Re-scoring a word with no new cells yields zero
	settled := &model.Word{
		Orientation: model.Horizontal,
		Cells:       result.Words[0].Cells,
	}
	s.Equal(0, s.service.Score(s.board, []*model.Word{settled}, 0))
}

func (s *ServiceSuite) TestScoreIsMonotonicInWordCount() {
	first := s.build("CHAT", model.Center, model.Horizontal)
	s.service.Score(s.board, first.Words, 4)

	parallel := s.build("AT", model.Position{Row: 8, Col: 8}, model.Horizontal)

	one := s.service.Score(s.board, parallel.Words[:1], 2)
	all := s.service.Score(s.board, parallel.Words, 2)
	s.Greater(all, one)
}
