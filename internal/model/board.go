package model

// BoardSize is the board dimension; the ruleset is fixed at 15x15
const BoardSize = 15

// Center is the cell the first placement of a match must cover
var Center = Position{Row: 7, Col: 7}

// Position identifies a cell on the board, 0-indexed
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Next returns the following position along the given orientation
func (p Position) Next(o Orientation) Position {
	if o == Horizontal {
		return Position{Row: p.Row, Col: p.Col + 1}
	}
	return Position{Row: p.Row + 1, Col: p.Col}
}

// Prev returns the preceding position along the given orientation
func (p Position) Prev(o Orientation) Position {
	if o == Horizontal {
		return Position{Row: p.Row, Col: p.Col - 1}
	}
	return Position{Row: p.Row - 1, Col: p.Col}
}

// Orientation is the axis of a placement or word
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Perpendicular returns the other axis
func (o Orientation) Perpendicular() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Cell is one addressable board position. Multipliers are assigned once
// at board construction and never change; they only count when the letter
// on the cell was placed in the current turn.
type Cell struct {
	Pos              Position `json:"pos"`
	Letter           Letter   `json:"letter"`
	Occupied         bool     `json:"occupied"`
	LetterMultiplier int      `json:"letterMultiplier"`
	WordMultiplier   int      `json:"wordMultiplier"`
}

// Board owns a flat arena of cells. Words refer to cells by coordinate
// and re-fetch from the board, never by pointer, so rolling back a turn
// cannot leave stale aliased cells behind.
type Board struct {
	cells [BoardSize * BoardSize]Cell
}

// NewBoard constructs an empty board with the static multiplier layout
// applied
func NewBoard() *Board {
	b := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			b.cells[row*BoardSize+col] = Cell{
				Pos:              Position{Row: row, Col: col},
				LetterMultiplier: 1,
				WordMultiplier:   1,
			}
		}
	}
	for _, pos := range doubleLetterCells {
		b.cells[pos.Row*BoardSize+pos.Col].LetterMultiplier = 2
	}
	for _, pos := range tripleLetterCells {
		b.cells[pos.Row*BoardSize+pos.Col].LetterMultiplier = 3
	}
	for _, pos := range doubleWordCells {
		b.cells[pos.Row*BoardSize+pos.Col].WordMultiplier = 2
	}
	for _, pos := range tripleWordCells {
		b.cells[pos.Row*BoardSize+pos.Col].WordMultiplier = 3
	}
	b.cells[Center.Row*BoardSize+Center.Col].WordMultiplier = 2
	return b
}

// InBounds reports whether the position addresses a real cell
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < BoardSize && pos.Col >= 0 && pos.Col < BoardSize
}

// GetCell returns the cell at the position. Out-of-bounds positions
// return an unoccupied sentinel cell so adjacency scans terminate safely
// at the board edge.
func (b *Board) GetCell(pos Position) Cell {
	if !b.InBounds(pos) {
		return Cell{Pos: pos, LetterMultiplier: 1, WordMultiplier: 1}
	}
	return b.cells[pos.Row*BoardSize+pos.Col]
}

// PlaceLetter puts a letter on an empty cell. It returns false without
// mutating anything if the cell is occupied or out of bounds.
func (b *Board) PlaceLetter(pos Position, letter Letter) bool {
	if !b.InBounds(pos) {
		return false
	}
	cell := &b.cells[pos.Row*BoardSize+pos.Col]
	if cell.Occupied {
		return false
	}
	cell.Letter = letter
	cell.Occupied = true
	return true
}

// RemoveLetter clears a cell, a no-op when the cell is empty or out of
// bounds. Used to roll back an invalid turn.
func (b *Board) RemoveLetter(pos Position) {
	if !b.InBounds(pos) {
		return
	}
	cell := &b.cells[pos.Row*BoardSize+pos.Col]
	if !cell.Occupied {
		return
	}
	cell.Letter = Letter{}
	cell.Occupied = false
}

// IsEmpty reports whether no tile has been placed yet
func (b *Board) IsEmpty() bool {
	for i := range b.cells {
		if b.cells[i].Occupied {
			return false
		}
	}
	return true
}

// OccupiedCount returns the number of tiles on the board
func (b *Board) OccupiedCount() int {
	count := 0
	for i := range b.cells {
		if b.cells[i].Occupied {
			count++
		}
	}
	return count
}

// Cells returns a snapshot of every occupied cell, used for board
// broadcasts
func (b *Board) Cells() []Cell {
	var occupied []Cell
	for i := range b.cells {
		if b.cells[i].Occupied {
			occupied = append(occupied, b.cells[i])
		}
	}
	return occupied
}

// Word is a contiguous run of cells read off the board. Cells are stored
// as coordinates; NewCells is the subset placed in the current turn,
// which is what decides multiplier consumption.
type Word struct {
	Orientation Orientation
	Cells       []Position
	NewCells    []Position
	Text        string
	Points      int
}

// HasNewCell reports whether the given position was placed this turn as
// part of this word
func (w *Word) HasNewCell(pos Position) bool {
	for _, p := range w.NewCells {
		if p == pos {
			return true
		}
	}
	return false
}

// Static multiplier layout. This table is ruleset data and is reproduced
// exactly for game-rule compatibility.
var (
	doubleLetterCells = []Position{
		{0, 3}, {0, 11}, {2, 6}, {2, 8}, {3, 0}, {3, 7}, {3, 14},
		{6, 2}, {6, 6}, {6, 8}, {6, 12}, {7, 3}, {7, 11},
		{8, 2}, {8, 6}, {8, 8}, {8, 12}, {11, 0}, {11, 7}, {11, 14},
		{12, 6}, {12, 8}, {14, 3}, {14, 11},
	}
	tripleLetterCells = []Position{
		{1, 5}, {1, 9}, {5, 1}, {5, 5}, {5, 9}, {5, 13},
		{9, 1}, {9, 5}, {9, 9}, {9, 13}, {13, 5}, {13, 9},
	}
	doubleWordCells = []Position{
		{1, 1}, {2, 2}, {3, 3}, {4, 4}, {1, 13}, {2, 12}, {3, 11}, {4, 10},
		{10, 4}, {11, 3}, {12, 2}, {13, 1}, {10, 10}, {11, 11}, {12, 12}, {13, 13},
	}
	tripleWordCells = []Position{
		{0, 0}, {0, 7}, {0, 14}, {7, 0}, {7, 14}, {14, 0}, {14, 7}, {14, 14},
	}
)
