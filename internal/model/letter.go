package model

// Blank is the wildcard tile marker. A blank scores zero and takes on
// whichever letter the player assigns when placing it.
const Blank rune = '*'

// RackSize is the maximum number of letters a player holds
const RackSize = 7

// Letter is a single tile: its symbol and point value
type Letter struct {
	Value  rune `json:"value"`
	Points int  `json:"points"`
}

// IsBlank returns true for an unassigned wildcard tile. A blank that has
// been assigned a letter keeps its zero point value but carries the
// assigned symbol.
func (l Letter) IsBlank() bool {
	return l.Value == Blank
}

// LetterCount pairs a letter with its initial quantity in the reserve
type LetterCount struct {
	Letter   Letter
	Quantity int
}

// LetterSet is the static tile table: symbol, point value and starting
// quantity. The bag totals exactly 100 tiles.
var LetterSet = []LetterCount{
	{Letter{'A', 1}, 9},
	{Letter{'B', 3}, 2},
	{Letter{'C', 3}, 2},
	{Letter{'D', 2}, 3},
	{Letter{'E', 1}, 13},
	{Letter{'F', 4}, 2},
	{Letter{'G', 2}, 2},
	{Letter{'H', 4}, 2},
	{Letter{'I', 1}, 8},
	{Letter{'J', 8}, 1},
	{Letter{'K', 10}, 1},
	{Letter{'L', 1}, 5},
	{Letter{'M', 2}, 3},
	{Letter{'N', 1}, 6},
	{Letter{'O', 1}, 6},
	{Letter{'P', 3}, 2},
	{Letter{'Q', 8}, 1},
	{Letter{'R', 1}, 6},
	{Letter{'S', 1}, 6},
	{Letter{'T', 1}, 6},
	{Letter{'U', 1}, 6},
	{Letter{'V', 4}, 2},
	{Letter{'W', 10}, 1},
	{Letter{'X', 10}, 1},
	{Letter{'Y', 10}, 1},
	{Letter{'Z', 10}, 1},
	{Letter{Blank, 0}, 2},
}

var letterPoints = func() map[rune]int {
	m := make(map[rune]int, len(LetterSet))
	for _, lc := range LetterSet {
		m[lc.Letter.Value] = lc.Letter.Points
	}
	return m
}()

// PointsFor returns the point value of a letter symbol, or 0 for unknown
// symbols and blanks
func PointsFor(symbol rune) int {
	return letterPoints[symbol]
}

// Rack is a player's hand of letters, at most RackSize
type Rack []Letter

// Contains reports whether the rack holds the given symbols, respecting
// duplicates. Blanks are matched by the Blank marker, not by their
// assigned letter.
func (r Rack) Contains(symbols []rune) bool {
	remaining := make(map[rune]int, len(r))
	for _, l := range r {
		remaining[l.Value]++
	}
	for _, s := range symbols {
		if remaining[s] == 0 {
			return false
		}
		remaining[s]--
	}
	return true
}

// Remove takes the given symbols out of the rack, returning the removed
// letters and the remaining rack. The second return is false if the rack
// does not hold all requested symbols.
func (r Rack) Remove(symbols []rune) ([]Letter, Rack, bool) {
	if !r.Contains(symbols) {
		return nil, r, false
	}
	removed := make([]Letter, 0, len(symbols))
	remaining := make(Rack, len(r))
	copy(remaining, r)
	for _, s := range symbols {
		for i, l := range remaining {
			if l.Value == s {
				removed = append(removed, l)
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	return removed, remaining, true
}
