package tasks

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "héll…", truncate("héllo world", 5))

	got := truncate("日本語のタイトルです", 6)
	assert.Equal(t, "日本語のタ…", got)
	assert.True(t, utf8.ValidString(got))
}

func TestTruncateShortInputsUntouched(t *testing.T) {
	assert.Equal(t, "", truncate("", 10))
	assert.Equal(t, "ok", truncate("ok", 2))
	assert.Equal(t, "", truncate("overflow", 0))
}
