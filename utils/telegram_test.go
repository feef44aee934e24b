package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGroupHandle(t *testing.T) {
	assert.Equal(t, "devtr", NormalizeGroupHandle("devtr"))
	assert.Equal(t, "devtr", NormalizeGroupHandle("@devtr"))
	assert.Equal(t, "devtr", NormalizeGroupHandle("t.me/devtr"))
	assert.Equal(t, "devtr", NormalizeGroupHandle("https://t.me/devtr"))
	assert.Equal(t, "devtr", NormalizeGroupHandle("  @devtr "))
}

func TestHandleRegex(t *testing.T) {
	assert.True(t, handleRegex.MatchString("devtr_group"))
	assert.True(t, handleRegex.MatchString("abcde"))
	// Telegram impose au moins 5 caractères
	assert.False(t, handleRegex.MatchString("dev"))
	assert.False(t, handleRegex.MatchString("has space"))
	assert.False(t, handleRegex.MatchString("has-dash"))
}

func TestExtractHashtags(t *testing.T) {
	tags := extractHashtags("Türkiye'nin yazılım topluluğu #golang #backend ve #golang")
	assert.Equal(t, []string{"golang", "backend"}, tags)

	assert.Empty(t, extractHashtags("no tags here"))
}

func TestFetchGroupMetadata_InvalidHandle(t *testing.T) {
	_, err := FetchGroupMetadata("ab")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
