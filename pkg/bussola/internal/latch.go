package internal

import "go.uber.org/atomic"

// SeedPhase is the state of the initial-route seed latch.
type SeedPhase int32

const (
	// SeedUnseeded means no initial route has been pushed yet and no
	// restoration is in flight; the next seed request proceeds immediately.
	SeedUnseeded SeedPhase = iota
	// SeedAwaitingRestoration means a restoration handshake started before
	// the initial route was seeded; seeding is deferred until the
	// restoration completes.
	SeedAwaitingRestoration
	// SeedSeeded means an initial state exists, either seeded or restored.
	// Further seed requests are no-ops.
	SeedSeeded
)

// SeedLatch guards initial-route seeding against the restoration handshake.
// The invariant is "seed exactly once, either immediately or after restoration
// resolves". Restoration-started and restoration-completed signals may arrive
// in any order relative to the latch's creation, and a seed may be requested
// more than once; the latch absorbs both.
type SeedLatch struct {
	phase atomic.Int32
}

// NewSeedLatch returns a latch in the Unseeded phase.
func NewSeedLatch() *SeedLatch {
	return &SeedLatch{}
}

// Phase returns the current phase.
func (l *SeedLatch) Phase() SeedPhase {
	return SeedPhase(l.phase.Load())
}

// TrySeed reports whether a seed should happen now. It returns true exactly
// once, and only when no restoration is in progress.
func (l *SeedLatch) TrySeed() bool {
	return l.phase.CompareAndSwap(int32(SeedUnseeded), int32(SeedSeeded))
}

// RestorationStarted defers any pending seed until RestorationCompleted.
// A latch that already seeded stays seeded.
func (l *SeedLatch) RestorationStarted() {
	l.phase.CompareAndSwap(int32(SeedUnseeded), int32(SeedAwaitingRestoration))
}

// RestorationCompleted resolves the handshake. If state was restored the
// latch moves to Seeded; otherwise it reports true, meaning the caller
// should seed now as if no restoration had been attempted.
func (l *SeedLatch) RestorationCompleted(wasRestored bool) (seedNow bool) {
	if wasRestored {
		l.phase.Store(int32(SeedSeeded))
		return false
	}
	return l.phase.CompareAndSwap(int32(SeedAwaitingRestoration), int32(SeedSeeded)) ||
		l.phase.CompareAndSwap(int32(SeedUnseeded), int32(SeedSeeded))
}

// MarkSeeded forces the latch into the Seeded phase. Used when restoration
// replaces the state wholesale.
func (l *SeedLatch) MarkSeeded() {
	l.phase.Store(int32(SeedSeeded))
}
