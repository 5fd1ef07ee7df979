package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSeedLatch_ImmediateSeed verifies the plain path: no restoration,
// exactly one seed.
func TestSeedLatch_ImmediateSeed(t *testing.T) {
	latch := NewSeedLatch()
	assert.Equal(t, SeedUnseeded, latch.Phase())

	assert.True(t, latch.TrySeed())
	assert.False(t, latch.TrySeed(), "a second seed request must be absorbed")
	assert.Equal(t, SeedSeeded, latch.Phase())
}

// TestSeedLatch_DeferredSeed verifies a restoration in flight defers the
// seed until completion with nothing restored.
func TestSeedLatch_DeferredSeed(t *testing.T) {
	latch := NewSeedLatch()
	latch.RestorationStarted()

	assert.False(t, latch.TrySeed(), "seeding must wait for the restoration")
	assert.Equal(t, SeedAwaitingRestoration, latch.Phase())

	assert.True(t, latch.RestorationCompleted(false), "nothing restored, caller seeds now")
	assert.Equal(t, SeedSeeded, latch.Phase())
	assert.False(t, latch.TrySeed())
}

// TestSeedLatch_RestoredSuppressesSeed verifies a successful restore means
// no seed at all.
func TestSeedLatch_RestoredSuppressesSeed(t *testing.T) {
	latch := NewSeedLatch()
	latch.RestorationStarted()

	assert.False(t, latch.RestorationCompleted(true))
	assert.False(t, latch.TrySeed())
}

// TestSeedLatch_CompletionWithoutStart verifies the signals tolerate
// arriving in any order relative to the latch's creation.
func TestSeedLatch_CompletionWithoutStart(t *testing.T) {
	latch := NewSeedLatch()

	assert.True(t, latch.RestorationCompleted(false),
		"completion without a start still resolves to a seed")
	assert.Equal(t, SeedSeeded, latch.Phase())
}

// TestSeedLatch_StartAfterSeed verifies a late restoration start cannot
// un-seed an already seeded latch.
func TestSeedLatch_StartAfterSeed(t *testing.T) {
	latch := NewSeedLatch()
	assert.True(t, latch.TrySeed())

	latch.RestorationStarted()
	assert.Equal(t, SeedSeeded, latch.Phase())
	assert.False(t, latch.RestorationCompleted(false), "state already exists, no second seed")
}

// TestSeedLatch_MarkSeeded verifies a wholesale state replacement forces
// the seeded phase.
func TestSeedLatch_MarkSeeded(t *testing.T) {
	latch := NewSeedLatch()
	latch.RestorationStarted()
	latch.MarkSeeded()

	assert.Equal(t, SeedSeeded, latch.Phase())
	assert.False(t, latch.RestorationCompleted(false))
}
