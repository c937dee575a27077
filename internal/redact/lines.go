package redact

import (
	"sort"
	"strings"

	"github.com/scrubworks/sheetmask/internal/ocr"
)

// Line is a logical text line reconstructed from tokens sharing a LineKey.
type Line struct {
	Key   ocr.LineKey
	Text  string    // member token texts joined with single spaces
	Boxes []ocr.Box // member token boxes in emission order
}

// realText reports whether a token is actual recognized text. Blank tokens
// and tokens with negative confidence are Tesseract layout noise.
func realText(tok ocr.Token) bool {
	return strings.TrimSpace(tok.Text) != "" && tok.Confidence >= 0
}

// AssembleLines groups a token stream into lines keyed by the tokens'
// LineKeys. Within a line, token order follows the engine's emission order;
// it is not re-sorted by position. Lines are returned in ascending key
// order so a transcript can be rebuilt top to bottom.
func AssembleLines(tokens []ocr.Token) []Line {
	index := make(map[ocr.LineKey]int)
	parts := make(map[ocr.LineKey][]string)
	var lines []Line

	for _, tok := range tokens {
		if !realText(tok) {
			continue
		}
		i, ok := index[tok.Key]
		if !ok {
			i = len(lines)
			index[tok.Key] = i
			lines = append(lines, Line{Key: tok.Key})
		}
		parts[tok.Key] = append(parts[tok.Key], tok.Text)
		lines[i].Boxes = append(lines[i].Boxes, tok.Box)
	}

	for i := range lines {
		lines[i].Text = strings.Join(parts[lines[i].Key], " ")
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Key.Less(lines[j].Key)
	})
	return lines
}

// Transcript joins line texts with newlines into a whole-image transcript.
func Transcript(lines []Line) string {
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}
