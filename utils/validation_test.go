package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("ahmet@example.com"))
	assert.True(t, ValidateEmail("a.b+c@sub.domain.org"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePasswordComplexity(t *testing.T) {
	assert.True(t, ValidatePasswordComplexity("Passw0rd"))
	assert.True(t, ValidatePasswordComplexity("Abc123"))
	assert.False(t, ValidatePasswordComplexity("alllowercase1"))
	assert.False(t, ValidatePasswordComplexity("ALLUPPERCASE1"))
	assert.False(t, ValidatePasswordComplexity("NoDigitsHere"))
	assert.False(t, ValidatePasswordComplexity("Ab1"))
}
