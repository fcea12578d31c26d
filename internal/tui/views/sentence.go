package views

import (
	"strings"
	"unicode/utf8"

	"github.com/f3rmion/swty/internal/game"
	"github.com/mattn/go-runewidth"
)

const defaultSentenceWidth = 60

// span is a half-open rune range [start, end) making up one display line.
type span struct {
	start int
	end   int
}

// renderSentence styles every rune of target by its class against input
// and wraps the result at word boundaries.
func renderSentence(input, target string, width int) string {
	runes := []rune(target)
	classes := game.Classes(input, target)
	cursor := utf8.RuneCountInString(input)

	var lines []string
	for _, sp := range wrapSpans(runes, width) {
		var b strings.Builder
		for i := sp.start; i < sp.end; i++ {
			b.WriteString(renderChar(runes[i], classes[i], i == cursor))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func renderChar(r rune, class game.CharClass, cursor bool) string {
	s := string(r)
	switch class {
	case game.ClassCorrect:
		return charCorrectStyle.Render(s)
	case game.ClassIncorrect:
		if r == ' ' {
			s = "·"
		}
		return charIncorrectStyle.Render(s)
	default:
		if cursor {
			return charCursorStyle.Render(s)
		}
		return charPendingStyle.Render(s)
	}
}

// wrapSpans splits runes into lines no wider than width display cells.
// Lines break after the last space that fits; a word longer than a line
// is split hard. Spans are contiguous and cover every rune.
func wrapSpans(runes []rune, width int) []span {
	if width <= 0 {
		width = defaultSentenceWidth
	}

	var spans []span
	start := 0
	for start < len(runes) {
		end := start
		cells := 0
		lastBreak := -1
		for end < len(runes) {
			w := runewidth.RuneWidth(runes[end])
			if cells+w > width && end > start {
				break
			}
			cells += w
			if runes[end] == ' ' {
				lastBreak = end + 1
			}
			end++
		}

		if end < len(runes) {
			switch {
			case runes[end] == ' ':
				// Keep the space at the end of this line
				end++
			case lastBreak > start:
				end = lastBreak
			}
		}

		spans = append(spans, span{start: start, end: end})
		start = end
	}
	return spans
}
