package bot

import (
	"strings"
	"unicode"

	"github.com/yasskadd/Scrabble-sub001/internal/model"
	"github.com/yasskadd/Scrabble-sub001/internal/services/board"
	"github.com/yasskadd/Scrabble-sub001/internal/services/dictionary"
	"github.com/yasskadd/Scrabble-sub001/internal/services/game"
	"github.com/yasskadd/Scrabble-sub001/internal/services/scoring"
)

// maxCandidates bounds how many placements one bot turn evaluates, so a
// bot move stays cheap even on a crowded board
const maxCandidates = 400

// GreedyStrategy evaluates a bounded set of candidate placements against
// the live board and plays the highest scoring valid one. Candidates are
// built speculatively through the same word builder players go through
// and rolled back after evaluation, so probing never leaves residue on
// the board.
type GreedyStrategy struct {
	board      board.ServiceInterface
	scoring    scoring.ServiceInterface
	dictionary dictionary.ServiceInterface
}

// NewGreedyStrategy creates a new GreedyStrategy
func NewGreedyStrategy(
	boardService board.ServiceInterface,
	scoringService scoring.ServiceInterface,
	dictionaryService dictionary.ServiceInterface,
) *GreedyStrategy {
	return &GreedyStrategy{
		board:      boardService,
		scoring:    scoringService,
		dictionary: dictionaryService,
	}
}

type candidate struct {
	firstCoord  model.Position
	orientation model.Orientation
	letters     string
}

// ChooseAction probes candidate placements and returns the best one
// found. With no valid placement it asks to exchange; the session
// degrades that to a skip when the reserve is too low.
func (s *GreedyStrategy) ChooseAction(g *model.Game, bot *model.Player) game.BotAction {
	letters := playableLetters(bot.Rack)
	if len(letters) < 2 {
		return game.BotAction{Kind: game.BotExchange}
	}

	var (
		best       candidate
		bestPoints = -1
	)
	for _, cand := range s.candidates(g.Board, letters) {
		resolved := resolve(cand.letters)
		result, err := s.board.BuildPlacement(g.Board, cand.firstCoord, cand.orientation, resolved)
		if err != nil {
			continue
		}
		invalid, err := s.dictionary.Validate(result.Words)
		if err != nil || len(invalid) > 0 {
			s.board.Rollback(g.Board, result)
			continue
		}
		points := s.scoring.Score(g.Board, result.Words, len(cand.letters))
		s.board.Rollback(g.Board, result)
		if points > bestPoints {
			bestPoints = points
			best = cand
		}
	}

	if bestPoints < 0 {
		return game.BotAction{Kind: game.BotExchange}
	}
	return game.BotAction{
		Kind:        game.BotPlace,
		FirstCoord:  best.firstCoord,
		Orientation: best.orientation,
		Letters:     best.letters,
	}
}

// candidates enumerates placements to probe: letter pairs and triples at
// the center on an empty board, otherwise the same sequences anchored
// just before or after each occupied cell
func (s *GreedyStrategy) candidates(b *model.Board, letters []rune) []candidate {
	sequences := permutations(letters)

	var out []candidate
	if b.IsEmpty() {
		for _, seq := range sequences {
			out = append(out, candidate{model.Center, model.Horizontal, seq})
			if len(out) >= maxCandidates {
				break
			}
		}
		return out
	}

	for _, cell := range b.Cells() {
		for _, orientation := range []model.Orientation{model.Horizontal, model.Vertical} {
			for _, seq := range sequences {
				// Start on the occupied cell so the builder passes
				// through it, and one cell past it so the run extends it
				out = append(out,
					candidate{cell.Pos, orientation, seq},
					candidate{cell.Pos.Next(orientation), orientation, seq},
				)
				if len(out) >= maxCandidates {
					return out
				}
			}
		}
	}
	return out
}

// playableLetters returns the rack's concrete letters in the lowercase
// command encoding; blanks are left out rather than guessed at
func playableLetters(rack model.Rack) []rune {
	letters := make([]rune, 0, len(rack))
	for _, l := range rack {
		if l.IsBlank() {
			continue
		}
		letters = append(letters, unicode.ToLower(l.Value))
	}
	return letters
}

// permutations builds the ordered 2 and 3 letter sequences of the rack
func permutations(letters []rune) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(seq string) {
		if !seen[seq] {
			seen[seq] = true
			out = append(out, seq)
		}
	}
	for i, a := range letters {
		for j, b := range letters {
			if i == j {
				continue
			}
			add(string([]rune{a, b}))
			for k, c := range letters {
				if k == i || k == j {
					continue
				}
				add(string([]rune{a, b, c}))
			}
		}
	}
	return out
}

func resolve(letters string) []model.Letter {
	resolved := make([]model.Letter, 0, len(letters))
	for _, r := range strings.ToUpper(letters) {
		resolved = append(resolved, model.Letter{Value: r, Points: model.PointsFor(r)})
	}
	return resolved
}

var _ game.BotStrategy = (*GreedyStrategy)(nil)
