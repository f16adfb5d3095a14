package factory

import (
	"time"

	"github.com/yasskadd/Scrabble-sub001/internal/dependencies/mocks"
	"github.com/yasskadd/Scrabble-sub001/internal/storage/memory"
	"github.com/yasskadd/Scrabble-sub001/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small word list covering the short words
// the integration flows place
func (t *TestApp) LoadTestDictionary() {
	words := []string{
		// 2-letter words
		"at", "be", "do", "go", "he", "if", "in", "is", "it", "me",
		"my", "no", "of", "on", "or", "so", "ta", "to", "up", "us", "we",
		// 3-letter words
		"ace", "act", "ant", "are", "arm", "art", "ate", "bat", "bet",
		"cab", "can", "cap", "car", "cat", "cha", "dog", "ear", "eat",
		"hat", "hit", "hot", "let", "mat", "net", "oat", "pat", "pet",
		"rat", "sat", "set", "tan", "tap", "tar", "tea", "ten", "the",
		"tin", "top",
		// 4-letter words
		"cart", "cast", "cats", "chat", "chit", "coat", "hats", "heat",
		"neat", "rate", "rats", "seat", "tale", "tame", "team", "tear",
		"tent", "test", "that",
		// longer words the objective predicates look for
		"level", "radar", "rotor", "stage", "start", "state", "abhors",
		"almost", "begins", "rhythm", "strength", "playground",
		"playgrounds",
	}
	t.DictionaryService.LoadWords(words)
}
