package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// LevelForExperience is mirrored in SQL by the badger repository's completion
// award; this pins the formula they both implement.
func TestLevelForExperience(t *testing.T) {
	tests := []struct {
		experience int
		level      int
	}{
		{0, 1},
		{100, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelForExperience(tt.experience), "experience %d", tt.experience)
	}
}

func TestBadgerIsAvailable(t *testing.T) {
	cid := "ch-1"

	b := &Badger{IsActive: true}
	assert.True(t, b.IsAvailable())

	b.ChallengeID = &cid
	assert.False(t, b.IsAvailable(), "assigned badgers are busy")

	b.ChallengeID = nil
	b.IsActive = false
	assert.False(t, b.IsAvailable(), "retired badgers never become available")
}
