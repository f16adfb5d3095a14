package model

import "github.com/yasskadd/Scrabble-sub001/internal/dependencies/random"

// Reserve is the shared bag of tiles for one match. Draws are weighted by
// remaining per-symbol quantity. Total tiles in play (racks + board +
// reserve) stays constant for the life of a match.
type Reserve struct {
	counts []LetterCount
	total  int
}

// NewReserve creates a full reserve from the static letter table
func NewReserve() *Reserve {
	counts := make([]LetterCount, len(LetterSet))
	copy(counts, LetterSet)
	total := 0
	for _, lc := range counts {
		total += lc.Quantity
	}
	return &Reserve{counts: counts, total: total}
}

// Count returns the number of tiles left in the bag
func (r *Reserve) Count() int {
	return r.total
}

// Draw removes up to n tiles from the bag, fewer if the bag is nearly
// empty. Each draw picks a symbol with probability proportional to its
// remaining quantity.
func (r *Reserve) Draw(n int, rnd random.Random) []Letter {
	if n > r.total {
		n = r.total
	}
	drawn := make([]Letter, 0, n)
	for i := 0; i < n; i++ {
		pick := rnd.Intn(r.total)
		for j := range r.counts {
			if pick < r.counts[j].Quantity {
				drawn = append(drawn, r.counts[j].Letter)
				r.counts[j].Quantity--
				r.total--
				break
			}
			pick -= r.counts[j].Quantity
		}
	}
	return drawn
}

// Return puts tiles back in the bag, used when a player exchanges letters
func (r *Reserve) Return(letters []Letter) {
	for _, l := range letters {
		for j := range r.counts {
			if r.counts[j].Letter.Value == l.Value {
				r.counts[j].Quantity++
				r.total++
				break
			}
		}
	}
}
