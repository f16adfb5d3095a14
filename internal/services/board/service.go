package board

import (
	"strings"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

// Service derives the words formed by a placement command. While a
// placement is being built the new letters are written to the board
// speculatively; on any validation failure they are removed before the
// error is returned, so a failed placement leaves the board untouched.
type Service struct{}

// New creates a new board Service
func New() *Service {
	return &Service{}
}

// PlacementResult holds the outcome of a successful build. Words[0] is
// the primary word along the placement axis; the rest are the newly
// formed perpendicular words. NewCells is every coordinate written this
// turn, used for multiplier consumption and rollback.
type PlacementResult struct {
	Words    []*model.Word
	NewCells []model.Position
}

// BuildPlacement walks the board from the first coordinate along the
// placement axis, consuming a command letter on every empty cell and
// passing through occupied ones, then continuing through any trailing
// occupied cells that extend the word. Every newly placed cell is scanned
// perpendicular to the axis for contiguous occupied neighbors; each such
// run becomes a secondary word.
//
// The letters slice carries resolved tiles: blanks already hold their
// assigned symbol and a zero point value.
func (s *Service) BuildPlacement(
	b *model.Board,
	firstCoord model.Position,
	orientation model.Orientation,
	letters []model.Letter,
) (*PlacementResult, error) {
	if !b.InBounds(firstCoord) {
		return nil, model.ErrOutOfBounds
	}

	wasEmpty := b.IsEmpty()

	// Rewind through occupied cells preceding the first coordinate so a
	// command that extends the tail of an existing word still reads the
	// whole run
	start := firstCoord
	for b.GetCell(start.Prev(orientation)).Occupied {
		start = start.Prev(orientation)
	}

	main := &model.Word{Orientation: orientation}
	cur := start
	remaining := letters

	for len(remaining) > 0 || b.GetCell(cur).Occupied {
		if !b.InBounds(cur) {
			// Letters run off the edge of the board
			s.rollback(b, main.NewCells)
			return nil, model.ErrOutOfBounds
		}
		cell := b.GetCell(cur)
		if cell.Occupied {
			main.Cells = append(main.Cells, cur)
		} else {
			b.PlaceLetter(cur, remaining[0])
			remaining = remaining[1:]
			main.Cells = append(main.Cells, cur)
			main.NewCells = append(main.NewCells, cur)
		}
		cur = cur.Next(orientation)
	}

	if len(main.NewCells) == 0 {
		return nil, model.ErrNoNewTiles
	}

	if wasEmpty && !coversCenter(main.NewCells) {
		s.rollback(b, main.NewCells)
		return nil, model.ErrMustCoverCenter
	}

	main.Text = s.readText(b, main.Cells)

	result := &PlacementResult{
		Words:    []*model.Word{main},
		NewCells: main.NewCells,
	}
	perp := orientation.Perpendicular()
	for _, pos := range main.NewCells {
		if cross := s.crossWord(b, pos, perp); cross != nil {
			result.Words = append(result.Words, cross)
		}
	}

	// A placement on a non-empty board must connect to what is already
	// there: either the primary word passes through an old tile, or at
	// least one new tile formed a perpendicular word.
	if !wasEmpty {
		touchesOld := len(main.Cells) > len(main.NewCells)
		if !touchesOld && len(result.Words) == 1 {
			s.rollback(b, main.NewCells)
			return nil, model.ErrDisconnectedPlacement
		}
	}

	// A lone letter that only contributed to perpendicular words is not a
	// word of its own
	if len(main.Cells) == 1 && len(result.Words) > 1 {
		result.Words = result.Words[1:]
	}

	return result, nil
}

// Rollback removes this turn's speculative letters, restoring the board
// to its pre-placement state. Used when dictionary validation rejects the
// words.
func (s *Service) Rollback(b *model.Board, result *PlacementResult) {
	s.rollback(b, result.NewCells)
}

func (s *Service) rollback(b *model.Board, newCells []model.Position) {
	for _, pos := range newCells {
		b.RemoveLetter(pos)
	}
}

// crossWord builds the perpendicular word through pos, or nil when pos
// has no occupied neighbor on that axis
func (s *Service) crossWord(b *model.Board, pos model.Position, perp model.Orientation) *model.Word {
	start := pos
	for b.GetCell(start.Prev(perp)).Occupied {
		start = start.Prev(perp)
	}
	end := pos
	for b.GetCell(end.Next(perp)).Occupied {
		end = end.Next(perp)
	}
	if start == end {
		return nil
	}

	word := &model.Word{Orientation: perp, NewCells: []model.Position{pos}}
	for cur := start; ; cur = cur.Next(perp) {
		word.Cells = append(word.Cells, cur)
		if cur == end {
			break
		}
	}
	word.Text = s.readText(b, word.Cells)
	return word
}

// readText derives a word's string form from the board, re-fetching each
// cell by coordinate
func (s *Service) readText(b *model.Board, cells []model.Position) string {
	var sb strings.Builder
	for _, pos := range cells {
		sb.WriteRune(b.GetCell(pos).Letter.Value)
	}
	return sb.String()
}

func coversCenter(cells []model.Position) bool {
	for _, pos := range cells {
		if pos == model.Center {
			return true
		}
	}
	return false
}

// ServiceInterface defines the interface for the board service
type ServiceInterface interface {
	BuildPlacement(b *model.Board, firstCoord model.Position, orientation model.Orientation, letters []model.Letter) (*PlacementResult, error)
	Rollback(b *model.Board, result *PlacementResult)
}

var _ ServiceInterface = (*Service)(nil)
