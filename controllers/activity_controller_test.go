package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRating(t *testing.T) {
	for _, r := range []float64{0, 0.5, 1, 2.5, 4.5, 5} {
		assert.True(t, validRating(r), "rating %v", r)
	}
	for _, r := range []float64{-0.5, 5.5, 3.3, 4.75, 100} {
		assert.False(t, validRating(r), "rating %v", r)
	}
}

func TestValidZip(t *testing.T) {
	assert.True(t, validZip("95060"))
	assert.True(t, validZip("00001"))

	assert.False(t, validZip(""))
	assert.False(t, validZip("9506"))
	assert.False(t, validZip("950601"))
	assert.False(t, validZip("9506o"))
	assert.False(t, validZip("95-60"))
}
