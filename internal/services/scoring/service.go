package scoring

import "github.com/yasskadd/Scrabble-sub001/internal/model"

// BingoBonus is awarded when all seven rack tiles are used in one turn
const BingoBonus = 50

// Service computes the point value of the words a placement formed
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// Score totals the given words against the board. A cell's letter
// multiplier applies only when the cell was newly placed this turn; a
// word's total is then multiplied by the word multiplier of every newly
// placed cell it contains, compounding when a word covers more than one.
// Words without any newly placed cell contribute nothing. The bingo bonus
// applies when the turn placed a full rack of tiles.
func (s *Service) Score(b *model.Board, words []*model.Word, tilesPlaced int) int {
	total := 0
	for _, word := range words {
		word.Points = s.scoreWord(b, word)
		total += word.Points
	}
	if tilesPlaced == model.RackSize {
		total += BingoBonus
	}
	return total
}

func (s *Service) scoreWord(b *model.Board, word *model.Word) int {
	if len(word.NewCells) == 0 {
		return 0
	}

	points := 0
	wordMultiplier := 1
	for _, pos := range word.Cells {
		cell := b.GetCell(pos)
		letterPoints := cell.Letter.Points
		if word.HasNewCell(pos) {
			letterPoints *= cell.LetterMultiplier
			wordMultiplier *= cell.WordMultiplier
		}
		points += letterPoints
	}
	return points * wordMultiplier
}

// Interface for dependency injection
type ServiceInterface interface {
	Score(b *model.Board, words []*model.Word, tilesPlaced int) int
}

var _ ServiceInterface = (*Service)(nil)
