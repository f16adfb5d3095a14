package objectives

import (
	"sort"
	"strings"

	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/random"
	"github.com/yasskadd/Scrabble-sub001/internal/model"
)

const (
	minPalindromeLength = 3
	minOneVowelLength   = 6
	minLongWordLength   = 11
	fiveLetterThreshold = 5
)

// Turn is everything a predicate may inspect: the words formed this turn,
// the number of tiles placed, and the turn's point total. Predicates are
// pure over (Turn, player counters).
type Turn struct {
	Words         []*model.Word
	LettersPlaced int
	TurnPoints    int
}

// Completion records one objective completed this turn
type Completion struct {
	Objective model.Objective
	PlayerID  model.PlayerID
}

// Service deals bonus objectives at match start and evaluates them after
// every turn. Only matches in the objectives mode carry a tracker.
type Service struct{}

// New creates a new objectives Service
func New() *Service {
	return &Service{}
}

// Catalog returns the full objective catalog
func (s *Service) Catalog() []model.Objective {
	return []model.Objective{
		{ID: model.ObjectivePalindrome, Description: "Form a palindromic word of 3 letters or more", Points: 50},
		{ID: model.ObjectiveAlphabetical, Description: "Form a word whose letters are in alphabetical order", Points: 20},
		{ID: model.ObjectiveLongWord, Description: "Form a word of more than 10 letters", Points: 40},
		{ID: model.ObjectiveThreeWords, Description: "Form three or more words in a single turn (turn points doubled)", Points: 0},
		{ID: model.ObjectiveOneVowel, Description: "Form a word of more than 5 letters with exactly one vowel (word points doubled)", Points: 0},
		{ID: model.ObjectiveSameWordTwice, Description: "Form the same word twice in a single turn", Points: 25},
		{ID: model.ObjectiveFiveTwice, Description: "Place 5 letters or more on two consecutive turns", Points: 30},
		{ID: model.ObjectiveNoHints, Description: "Never use the hint command", Points: 15},
	}
}

// Deal assigns objectives for a new match: two public objectives shared
// by every player, then one private objective each. Public objectives are
// first-to-complete-wins.
func (s *Service) Deal(players []*model.Player, rnd random.Random) {
	pool := s.Catalog()
	rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	publics := []model.Objective{pool[0], pool[1]}
	publics[0].Public = true
	publics[1].Public = true
	pool = pool[2:]

	for _, p := range players {
		if !p.IsPlaying() {
			continue
		}
		private := pool[0]
		private.Public = false
		pool = pool[1:]
		p.Objectives = append(p.Objectives, publics[0], publics[1], private)
	}
}

// EvaluateTurn runs the actor's remaining objectives against the turn.
// Completed objectives are removed from every holder's list (both lists
// for public ones), their points credited to the actor, and returned for
// broadcasting.
func (s *Service) EvaluateTurn(g *model.Game, actor *model.Player, turn Turn) []Completion {
	var completions []Completion
	// Retiring mutates the holder lists, so walk a snapshot
	remaining := append([]model.Objective(nil), actor.Objectives...)
	for _, obj := range remaining {
		done, award := s.evaluate(obj, actor, turn)
		if !done {
			continue
		}
		if award == 0 {
			award = obj.Points
		}
		completed := obj
		completed.Points = award

		s.retire(g, actor, completed)
		actor.Score += award
		completions = append(completions, Completion{Objective: completed, PlayerID: actor.ID})
	}
	return completions
}

// EvaluateEndOfMatch awards the hint objective to every holder who never
// used the hint command
func (s *Service) EvaluateEndOfMatch(g *model.Game) []Completion {
	var completions []Completion
	for _, p := range g.Players {
		held := append([]model.Objective(nil), p.Objectives...)
		for _, obj := range held {
			if obj.ID != model.ObjectiveNoHints || p.HintUses > 0 {
				continue
			}
			s.retire(g, p, obj)
			p.Score += obj.Points
			completions = append(completions, Completion{Objective: obj, PlayerID: p.ID})
		}
	}
	return completions
}

// retire removes a completed objective from its holders
func (s *Service) retire(g *model.Game, actor *model.Player, obj model.Objective) {
	if obj.Public {
		for _, p := range g.Players {
			p.Objectives = removeObjective(p.Objectives, obj.ID)
		}
		return
	}
	actor.Objectives = removeObjective(actor.Objectives, obj.ID)
}

func removeObjective(list []model.Objective, id model.ObjectiveID) []model.Objective {
	for i, o := range list {
		if o.ID == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// evaluate runs one predicate; a non-zero award overrides the catalog
// points
func (s *Service) evaluate(obj model.Objective, actor *model.Player, turn Turn) (bool, int) {
	switch obj.ID {
	case model.ObjectivePalindrome:
		return s.hasPalindrome(turn.Words), 0
	case model.ObjectiveAlphabetical:
		return s.hasAlphabeticalWord(turn.Words), 0
	case model.ObjectiveLongWord:
		return s.hasLongWord(turn.Words), 0
	case model.ObjectiveThreeWords:
		if len(turn.Words) >= 3 {
			return true, 2 * turn.TurnPoints
		}
		return false, 0
	case model.ObjectiveOneVowel:
		return s.oneVowelWord(turn.Words)
	case model.ObjectiveSameWordTwice:
		return s.sameWordTwice(turn.Words), 0
	case model.ObjectiveFiveTwice:
		return s.fiveLettersTwice(actor, turn.LettersPlaced), 0
	case model.ObjectiveNoHints:
		// Checked at end of match
		return false, 0
	}
	return false, 0
}

func (s *Service) hasPalindrome(words []*model.Word) bool {
	for _, w := range words {
		text := strings.ToLower(w.Text)
		if len(text) < minPalindromeLength {
			continue
		}
		reversed := []rune(text)
		for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
			reversed[i], reversed[j] = reversed[j], reversed[i]
		}
		if text == string(reversed) {
			return true
		}
	}
	return false
}

func (s *Service) hasAlphabeticalWord(words []*model.Word) bool {
	for _, w := range words {
		text := strings.ToLower(w.Text)
		sorted := strings.Split(text, "")
		sort.Strings(sorted)
		if text == strings.Join(sorted, "") {
			return true
		}
	}
	return false
}

func (s *Service) hasLongWord(words []*model.Word) bool {
	for _, w := range words {
		if len(w.Text) >= minLongWordLength {
			return true
		}
	}
	return false
}

func (s *Service) oneVowelWord(words []*model.Word) (bool, int) {
	for _, w := range words {
		text := strings.ToLower(w.Text)
		if len(text) < minOneVowelLength {
			continue
		}
		vowels := 0
		for _, r := range text {
			if strings.ContainsRune("aeiouy", r) {
				vowels++
			}
		}
		if vowels == 1 {
			return true, 2 * w.Points
		}
	}
	return false, 0
}

func (s *Service) sameWordTwice(words []*model.Word) bool {
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		text := strings.ToLower(w.Text)
		if seen[text] {
			return true
		}
		seen[text] = true
	}
	return false
}

// fiveLettersTwice tracks the streak on the player; it completes on the
// second qualifying turn in a row
func (s *Service) fiveLettersTwice(actor *model.Player, lettersPlaced int) bool {
	if lettersPlaced < fiveLetterThreshold {
		actor.FiveLetterStreak = 0
		return false
	}
	actor.FiveLetterStreak++
	if actor.FiveLetterStreak >= 2 {
		actor.FiveLetterStreak = 0
		return true
	}
	return false
}

// Interface for dependency injection
type ServiceInterface interface {
	Catalog() []model.Objective
	Deal(players []*model.Player, rnd random.Random)
	EvaluateTurn(g *model.Game, actor *model.Player, turn Turn) []Completion
	EvaluateEndOfMatch(g *model.Game) []Completion
}

var _ ServiceInterface = (*Service)(nil)
