package controllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidImageType(t *testing.T) {
	for _, ct := range []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic"} {
		assert.True(t, isValidImageType(ct), ct)
	}
	for _, ct := range []string{"video/mp4", "application/pdf", "text/html", "image/svg+xml", ""} {
		assert.False(t, isValidImageType(ct), ct)
	}
}

func TestGenerateImageKey_EmbedsOwner(t *testing.T) {
	uc := &UploadController{}

	key := uc.generateImageKey(42, "beach.jpg")

	assert.True(t, strings.HasPrefix(key, "uploads/activities/42/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
}

func TestVerifyFileOwnership(t *testing.T) {
	uc := &UploadController{}

	key := uc.generateImageKey(7, "photo.png")
	assert.True(t, uc.verifyFileOwnership(key, 7))
	assert.False(t, uc.verifyFileOwnership(key, 8))

	assert.False(t, uc.verifyFileOwnership("garbage", 7))
	assert.False(t, uc.verifyFileOwnership("uploads/activities", 7))
}
