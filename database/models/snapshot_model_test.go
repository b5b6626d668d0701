package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("should allow the forward progression", func(t *testing.T) {
		assert.True(t, SnapshotStatusPending.CanTransition(SnapshotStatusParsed))
		assert.True(t, SnapshotStatusPending.CanTransition(SnapshotStatusFailed))
		assert.True(t, SnapshotStatusParsed.CanTransition(SnapshotStatusEnriched))
		assert.True(t, SnapshotStatusParsed.CanTransition(SnapshotStatusFailed))
	})

	t.Run("should never leave a terminal state", func(t *testing.T) {
		for _, terminal := range []SnapshotStatus{SnapshotStatusEnriched, SnapshotStatusFailed} {
			for _, to := range []SnapshotStatus{SnapshotStatusPending, SnapshotStatusParsed, SnapshotStatusEnriched, SnapshotStatusFailed} {
				assert.False(t, terminal.CanTransition(to), "%s -> %s", terminal, to)
			}
		}
	})

	t.Run("should never move backwards", func(t *testing.T) {
		assert.False(t, SnapshotStatusParsed.CanTransition(SnapshotStatusPending))
		assert.False(t, SnapshotStatusPending.CanTransition(SnapshotStatusEnriched))
	})
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, SnapshotStatusPending.IsTerminal())
	assert.False(t, SnapshotStatusParsed.IsTerminal())
	assert.True(t, SnapshotStatusEnriched.IsTerminal())
	assert.True(t, SnapshotStatusFailed.IsTerminal())
}
