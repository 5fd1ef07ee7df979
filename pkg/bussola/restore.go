package bussola

import (
	"log/slog"

	"github.com/bussola-ui/bussola/pkg/bussola/constants"
)

// SnapshotProvider is the restoration contract. A host application state
// that wants its navigation restored must expose the snapshot that was
// persisted with it; a restored state that does not is a hard failure,
// because silently skipping restoration produces confusing navigation bugs.
type SnapshotProvider interface {
	NavigationSnapshot() *Snapshot
}

// RestorationStrategy filters which persisted stacks survive a restore.
// Strategies form a closed set of variants.
type RestorationStrategy interface {
	filter(snap Snapshot, appState any, log *slog.Logger) Snapshot
}

// RestoreAll passes the persisted snapshot through unchanged.
type RestoreAll struct{}

func (RestoreAll) filter(snap Snapshot, _ any, _ *slog.Logger) Snapshot {
	return snap
}

// RestoreOnly keeps the stacks for the listed layers and zeroes the rest.
type RestoreOnly struct {
	Layers []constants.Layer
}

func (s RestoreOnly) filter(snap Snapshot, _ any, _ *slog.Logger) Snapshot {
	if !s.has(constants.LayerScene) {
		snap.SceneRoutes = nil
	}
	if !s.has(constants.LayerContent) {
		snap.ContentRoutes = nil
	}
	if !s.has(constants.LayerModal) {
		snap.ModalRoutes = nil
	}
	return snap
}

func (s RestoreOnly) has(layer constants.Layer) bool {
	for _, l := range s.Layers {
		if l == layer {
			return true
		}
	}
	return false
}

// RestoreSpecific keeps only entries whose path is in the corresponding
// per-layer allow-set. Layers with no allow-set are dropped entirely.
type RestoreSpecific struct {
	Paths map[constants.Layer][]string
}

func (s RestoreSpecific) filter(snap Snapshot, _ any, _ *slog.Logger) Snapshot {
	snap.SceneRoutes = keepAllowed(snap.SceneRoutes, s.Paths[constants.LayerScene])
	snap.ContentRoutes = keepAllowed(snap.ContentRoutes, s.Paths[constants.LayerContent])
	snap.ModalRoutes = keepAllowed(snap.ModalRoutes, s.Paths[constants.LayerModal])
	return snap
}

func keepAllowed(entries []SnapshotEntry, allowed []string) []SnapshotEntry {
	if len(allowed) == 0 {
		return nil
	}
	allow := make(map[string]bool, len(allowed))
	for _, path := range allowed {
		allow[NormalizePath(path)] = true
	}
	kept := make([]SnapshotEntry, 0, len(entries))
	for _, entry := range entries {
		if allow[NormalizePath(entry.Path)] {
			kept = append(kept, entry)
		}
	}
	return kept
}

// ConditionalDefault pairs a predicate over the restored application state
// with a target route. The first matching default wins.
type ConditionalDefault struct {
	Predicate func(appState any) bool
	Path      string
	Layer     constants.Layer
}

// ConditionalDefaultsConfig is an ordered list of conditional defaults plus
// an optional unconditional fallback.
type ConditionalDefaultsConfig struct {
	Defaults      []ConditionalDefault
	FallbackPath  string
	FallbackLayer constants.Layer
}

// pick returns the target path and layer of the first default whose
// predicate matches, else the fallback, else ok=false. A panicking
// predicate is recovered, logged, and treated as "does not match"; a single
// bad predicate must not abort restoration.
func (c ConditionalDefaultsConfig) pick(appState any, log *slog.Logger) (path string, layer constants.Layer, ok bool) {
	for i, def := range c.Defaults {
		if def.Predicate == nil {
			continue
		}
		if safePredicate(def.Predicate, appState, i, log) {
			return def.Path, def.Layer, true
		}
	}
	if c.FallbackPath != "" {
		return c.FallbackPath, c.FallbackLayer, true
	}
	return "", constants.LayerAuto, false
}

func safePredicate(pred func(any) bool, appState any, index int, log *slog.Logger) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("conditional default predicate panicked, skipping", "index", index, "panic", r)
			matched = false
		}
	}()
	return pred(appState)
}

// RestoreWithDefaults applies Base first, then evaluates the conditional
// defaults against the restored application state. A matching default (or
// the fallback) discards the filtered result entirely and seeds a brand-new
// single-entry stack at the target layer. Defaults are an override, not a
// merge: they exist to let a restart force a specific screen regardless of
// what was last open.
type RestoreWithDefaults struct {
	Base     RestorationStrategy
	Defaults ConditionalDefaultsConfig
}

func (s RestoreWithDefaults) filter(snap Snapshot, appState any, log *slog.Logger) Snapshot {
	base := snap
	if s.Base != nil {
		base = s.Base.filter(snap, appState, log)
	}
	path, layer, ok := s.Defaults.pick(appState, log)
	if !ok {
		return base
	}
	override := Snapshot{
		DeviceContext:      base.DeviceContext,
		EnabledFeatures:    base.EnabledFeatures,
		LastTransitionKind: base.LastTransitionKind,
	}
	entry := []SnapshotEntry{{Path: NormalizePath(path)}}
	switch layer {
	case constants.LayerScene:
		override.SceneRoutes = entry
	case constants.LayerModal:
		override.ModalRoutes = entry
	default:
		override.ContentRoutes = entry
	}
	return override
}

// restorer reconciles a persisted snapshot against the live route table.
type restorer struct {
	table    *Table
	strategy RestorationStrategy
	log      *slog.Logger
}

// restore extracts the snapshot from the restored application state,
// applies the strategy, and rebuilds a full navigation state. The second
// return reports whether anything was actually restored.
func (r *restorer) restore(appState any) (NavigationState, bool, error) {
	provider, ok := appState.(SnapshotProvider)
	if !ok {
		return NavigationState{}, false, NewRestorationError("extract_snapshot", ErrMissingSnapshot)
	}
	snap := provider.NavigationSnapshot()
	if snap == nil {
		return NavigationState{}, false, NewRestorationError("extract_snapshot", ErrMissingSnapshot)
	}

	filtered := *snap
	if r.strategy != nil {
		filtered = r.strategy.filter(*snap, appState, r.log)
	}
	if filtered.IsEmpty() {
		return NavigationState{}, false, nil
	}

	st := NavigationState{
		SceneStack:      r.rejoin(filtered.SceneRoutes, constants.LayerScene),
		ContentStack:    r.rejoin(filtered.ContentRoutes, constants.LayerContent),
		ModalStack:      r.rejoin(filtered.ModalRoutes, constants.LayerModal),
		EnabledFeatures: append([]string(nil), filtered.EnabledFeatures...),
		LastTransition:  parseTransition(filtered.LastTransitionKind),
	}
	if filtered.DeviceContext != nil {
		device := *filtered.DeviceContext
		st.DeviceContext = &device
	}
	if st.SceneStack.IsEmpty() && st.ContentStack.IsEmpty() && st.ModalStack.IsEmpty() {
		// Every surviving path was since removed from the route table.
		return NavigationState{}, false, nil
	}
	return st, true, nil
}

// rejoin recovers full route definitions for persisted paths. A path no
// longer registered is silently dropped: the route was removed since the
// state was saved, which is expected. Restored instances always carry a nil
// parameter.
func (r *restorer) rejoin(entries []SnapshotEntry, layer constants.Layer) Stack {
	if len(entries) == 0 {
		return nil
	}
	stack := make(Stack, 0, len(entries))
	for _, entry := range entries {
		def := r.table.lookup(entry.Path, layer)
		if def == nil {
			def = r.table.lookup(entry.Path, constants.LayerAuto)
		}
		if def == nil {
			r.log.Info("persisted route no longer registered, dropping", "path", entry.Path)
			continue
		}
		inst := newInstance(def, nil)
		// Stack membership comes from the snapshot, even if the route has
		// since been re-registered under another layer.
		inst.Layer = layer
		stack = append(stack, inst)
	}
	return stack
}

func parseTransition(name string) constants.TransitionKind {
	switch name {
	case "scene":
		return constants.TransitionScene
	case "content":
		return constants.TransitionContent
	case "modal":
		return constants.TransitionModal
	case "back":
		return constants.TransitionBack
	default:
		return constants.TransitionNone
	}
}
