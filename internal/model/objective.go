package model

// ObjectiveID identifies one bonus condition in the catalog
type ObjectiveID string

const (
	ObjectivePalindrome    ObjectiveID = "palindrome"
	ObjectiveAlphabetical  ObjectiveID = "alphabetical"
	ObjectiveLongWord      ObjectiveID = "long_word"
	ObjectiveThreeWords    ObjectiveID = "three_words"
	ObjectiveOneVowel      ObjectiveID = "one_vowel"
	ObjectiveSameWordTwice ObjectiveID = "same_word_twice"
	ObjectiveFiveTwice     ObjectiveID = "five_letters_twice"
	ObjectiveNoHints       ObjectiveID = "no_hints"
)

// Objective is one bonus condition dealt at match start. Public
// objectives are shared, first-to-complete-wins; private ones belong to a
// single player.
type Objective struct {
	ID          ObjectiveID `json:"id"`
	Description string      `json:"description"`
	Points      int         `json:"points"`
	Public      bool        `json:"public"`
}
