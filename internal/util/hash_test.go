package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashContentDeterministic(t *testing.T) {
	inputs := []string{"", "a", "hello world", "Review 1 (5/5 stars):\nGreat\n"}
	for _, s := range inputs {
		assert.Equal(t, HashContent(s), HashContent(s))
	}
}

func TestHashContentDistinct(t *testing.T) {
	corpus := []string{"", "a", "b", "ab", "a b", "hello", "hello ", "Review 1", "review 1"}
	seen := make(map[string]string)
	for _, s := range corpus {
		h := HashContent(s)
		prev, dup := seen[h]
		assert.False(t, dup, "collision between %q and %q", s, prev)
		seen[h] = s
	}
}

func TestHashContentFormat(t *testing.T) {
	h := HashContent("anything")
	assert.Len(t, h, 64)
	assert.Regexp(t, "^[0-9a-f]+$", h)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc...", Preview("abc", 10))
	assert.Equal(t, "abcde...", Preview("abcdefgh", 5))
}
