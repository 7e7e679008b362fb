package trainer

import "github.com/gmkornilov/tactics-trainer/internal/position"

// MoveMatches reports whether input names the expected SAN move. The check
// or mate marker of the expected move may be left out; anything else must
// match exactly, case included.
func MoveMatches(input, expected string) bool {
	if input == expected {
		return true
	}
	if bare := position.StripAnnotation(expected); bare != expected {
		return input == bare
	}
	return false
}
