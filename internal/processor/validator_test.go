package processor

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/telepatia/internal/logger"
	"github.com/yoockh/telepatia/internal/utils"
)

func newTestProcessor() *Processor {
	return New(logger.Discard())
}

func TestValidateText(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"empty", "", false},
		{"only spaces", "   \n\t ", false},
		{"single letter", "a", false},
		{"single letter padded", "  a  ", false},
		{"single letter after separator", "\x1ca", false},
		{"only separators", "\x1c\x1d\x1e\x1f", false},
		{"numbers split by separators", "12\x1e34", false},
		{"words split by separator", "no\x1fsi", true},
		{"two letters", "Hi", true},
		{"only numbers", "123456789", false},
		{"numbers and punctuation", "(+57) 300-123, 45.6", false},
		{"accented spanish", "ñú", true},
		{"emoji and text", "Hello! 😊 This is a test text with emojis and special characters... How are you?", true},
		{"no latin letters", "дом здоровья", false},
		{"max length", strings.Repeat("a", MaxTextLength), true},
		{"too long", strings.Repeat("a", MaxTextLength+1), false},
		{"clinical", "The patient presents fever and headache", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.ValidateText(tt.input)
			if tt.valid {
				assert.NoError(t, err)
				assert.True(t, p.ValidText(tt.input))
				return
			}
			require.Error(t, err)
			assert.False(t, p.ValidText(tt.input))
			assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
			assert.True(t, errors.Is(err, ErrInvalidText))
		})
	}
}

func TestValidateTextLengthCountsRunes(t *testing.T) {
	p := newTestProcessor()
	// 10,000 two-byte runes is 20,000 bytes but still within the limit.
	assert.NoError(t, p.ValidateText(strings.Repeat("ñ", MaxTextLength)))
}

func TestValidateTextReasons(t *testing.T) {
	p := newTestProcessor()

	assert.Equal(t, "text is too short (less than 2 characters)", utils.SafeMessage(p.ValidateText("x")))
	assert.Equal(t, "text must contain at least one alphabetic character", utils.SafeMessage(p.ValidateText("12 34")))
	assert.Equal(t, "text must contain at least one alphabetic character", utils.SafeMessage(p.ValidateText("?!")))
	assert.Equal(t, "text is too short (less than 2 characters)", utils.SafeMessage(p.ValidateText("\x1ca\x1f")))
	assert.Equal(t, "text is empty", utils.SafeMessage(p.ValidateText("\x1c\x1d")))
}
