package processor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/yoockh/telepatia/internal/utils"
)

// emojiRanges are removed before punctuation filtering. The last range is wide
// and also drops dingbats, enclosed characters and CJK blocks.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F1E0, 0x1F1FF}, // flags
	{0x2702, 0x27B0},   // dingbats
	{0x24C2, 0x1F251},  // enclosed characters and the rest
}

func isEmoji(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// U+001C..U+001F, which are also treated as whitespace when splitting text.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}

// keep reports whether r survives simplification: word characters, whitespace
// and sentence punctuation.
func keep(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsNumber(r), r == '_':
		return true
	case isSpace(r):
		return true
	default:
		return strings.ContainsRune(".,!?-:;", r)
	}
}

// Simplify removes emoji, non-semantic punctuation and control characters, then
// collapses line breaks and whitespace runs into single spaces.
func (p *Processor) Simplify(candidate string) (string, error) {
	const op = "Processor.Simplify"

	if candidate == "" {
		p.log.Error("no text provided for simplification")
		return "", utils.E(utils.CodeInternal, op, "no text provided for simplification", ErrEmptyText)
	}

	composed := norm.NFC.String(candidate)

	var b strings.Builder
	b.Grow(len(composed))
	for _, r := range composed {
		if isEmoji(r) || !keep(r) {
			continue
		}
		b.WriteRune(r)
	}

	out := strings.Join(strings.FieldsFunc(b.String(), isSpace), " ")
	if out == "" {
		p.log.Warn("simplified text is empty")
		return "", utils.E(utils.CodeInternal, op, "simplified text is empty", ErrEmptyResult)
	}

	p.log.WithField("chars", utf8.RuneCountInString(out)).Info("simplified text")
	return out, nil
}
