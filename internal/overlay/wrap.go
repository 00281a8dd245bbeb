package overlay

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
)

// referenceString is measured to derive an average glyph width for the wrap
// arithmetic.
const referenceString = "ABCDEFGHIJKLMNOPQRSTUVWXYZ abcdefghijklmnopqrstuvwxyz"

// wrapSafetyFactor compensates for proportional-font width variance. The wrap
// width is a visual-fit heuristic, not a guaranteed non-overflow bound.
const wrapSafetyFactor = 0.8

// AverageGlyphWidth measures the reference string with the given face and
// returns its rendered width divided by its character count.
func AverageGlyphWidth(face font.Face) float64 {
	width := font.MeasureString(face, referenceString)
	return float64(width) / 64 / float64(len(referenceString))
}

// WrapWidth computes the wrap width in characters for a canvas of the given
// pixel width. The result is always at least 1.
func WrapWidth(canvasWidth, margin int, avgGlyphWidth float64) int {
	if avgGlyphWidth <= 0 {
		return 1
	}
	chars := int(float64(canvasWidth-margin) / avgGlyphWidth * wrapSafetyFactor)
	if chars < 1 {
		return 1
	}
	return chars
}

// Wrap greedily fills words into lines of at most width characters. Words are
// never broken across lines unless a single word alone exceeds the width, in
// which case it is split into width-sized chunks.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	var (
		lines    []string
		current  strings.Builder
		curRunes int
	)

	flush := func() {
		if curRunes > 0 {
			lines = append(lines, current.String())
			current.Reset()
			curRunes = 0
		}
	}

	for _, word := range strings.Fields(text) {
		for _, chunk := range splitLongWord(word, width) {
			// Line lengths are counted in runes so multi-byte text wraps at
			// the same character width as ASCII.
			chunkRunes := utf8.RuneCountInString(chunk)
			switch {
			case curRunes == 0:
				current.WriteString(chunk)
				curRunes = chunkRunes
			case curRunes+1+chunkRunes <= width:
				current.WriteByte(' ')
				current.WriteString(chunk)
				curRunes += 1 + chunkRunes
			default:
				flush()
				current.WriteString(chunk)
				curRunes = chunkRunes
			}
		}
	}
	flush()

	return lines
}

func splitLongWord(word string, width int) []string {
	if utf8.RuneCountInString(word) <= width {
		return []string{word}
	}
	runes := []rune(word)
	var chunks []string
	for len(runes) > width {
		chunks = append(chunks, string(runes[:width]))
		runes = runes[width:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
