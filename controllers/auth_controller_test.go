package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsernamePattern(t *testing.T) {
	valid := []string{"marcus", "Jess_99", "abc", "a23456789012345678_0"}
	for _, username := range valid {
		assert.NoError(t, validateUsernamePattern(username), username)
	}

	invalid := map[string]string{
		"ab":                     "too short",
		"a234567890123456789012": "too long",
		"9lives":                 "starts with a digit",
		"_under":                 "starts with underscore",
		"has space":              "contains space",
		"dash-ed":                "contains dash",
		"admin":                  "reserved",
		"Admin":                  "reserved, case-insensitive",
		"null":                   "reserved",
	}
	for username, reason := range invalid {
		assert.Error(t, validateUsernamePattern(username), "%s (%s)", username, reason)
	}
}
