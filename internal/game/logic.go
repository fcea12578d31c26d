// Package game holds the typing practice rules: per-character comparison,
// sentence completion and the round state machine.
package game

import (
	"strings"
)

// CharClass is the render state of one character of the target sentence.
type CharClass string

const (
	ClassNone      CharClass = ""          // Index outside the target
	ClassPending   CharClass = "pending"   // Not typed yet
	ClassCorrect   CharClass = "correct"   // Typed and matching
	ClassIncorrect CharClass = "incorrect" // Typed and not matching
)

// CharClassAt returns the class of the rune at index in target, comparing
// against input without regard to case.
func CharClassAt(index int, input, target string) CharClass {
	want := []rune(target)
	if index < 0 || index >= len(want) {
		return ClassNone
	}

	got := []rune(input)
	if index >= len(got) {
		return ClassPending
	}
	if sameRune(got[index], want[index]) {
		return ClassCorrect
	}
	return ClassIncorrect
}

// Classes returns the class of every rune of target.
func Classes(input, target string) []CharClass {
	want := []rune(target)
	got := []rune(input)

	classes := make([]CharClass, len(want))
	for i := range want {
		switch {
		case i >= len(got):
			classes[i] = ClassPending
		case sameRune(got[i], want[i]):
			classes[i] = ClassCorrect
		default:
			classes[i] = ClassIncorrect
		}
	}
	return classes
}

// IsSentenceComplete reports whether input matches a non-empty target,
// ignoring case.
func IsSentenceComplete(input, target string) bool {
	return target != "" && strings.EqualFold(input, target)
}

func sameRune(a, b rune) bool {
	return a == b || strings.EqualFold(string(a), string(b))
}
