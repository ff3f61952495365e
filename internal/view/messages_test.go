package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestLocalizer(t *testing.T) {
	vi := NewLocalizer(language.Vietnamese)
	en := NewLocalizer(language.English)

	assert.Equal(t, "Chưa nghe", vi.T(MsgNotStarted))
	assert.Equal(t, "Not started", en.T(MsgNotStarted))
	assert.Equal(t, "Đã nghe đến 02:05", vi.T(MsgListenedUpTo, "02:05"))
	assert.Equal(t, "vi", vi.Lang())
	assert.Equal(t, "en", en.Lang())
}

func TestTranslationsCoverSameKeys(t *testing.T) {
	vi := translations[language.Vietnamese]
	en := translations[language.English]

	assert.Equal(t, len(vi), len(en))
	for key := range vi {
		_, ok := en[key]
		assert.True(t, ok, "missing english message %s", key)
	}
}
