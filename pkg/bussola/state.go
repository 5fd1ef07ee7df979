package bussola

import (
	"encoding/json"

	"github.com/bussola-ui/bussola/pkg/bussola/constants"
)

// Stack is an ordered sequence of route instances for one layer. The last
// entry is the visible one. Stacks have value semantics: every mutation
// returns a fresh slice, so previously published snapshots never change
// under a reader.
type Stack []RouteInstance

// Top returns the visible entry, or nil if the stack is empty.
func (s Stack) Top() *RouteInstance {
	if len(s) == 0 {
		return nil
	}
	top := s[len(s)-1]
	return &top
}

// IsEmpty returns true if the stack has no entries.
func (s Stack) IsEmpty() bool {
	return len(s) == 0
}

// Len returns the number of entries in the stack.
func (s Stack) Len() int {
	return len(s)
}

// Paths returns the entry paths in stack order.
func (s Stack) Paths() []string {
	paths := make([]string, len(s))
	for i := range s {
		paths[i] = s[i].Path
	}
	return paths
}

// push returns a new stack with inst appended.
func (s Stack) push(inst RouteInstance) Stack {
	out := make(Stack, len(s)+1)
	copy(out, s)
	out[len(s)] = inst
	return out
}

// pop returns a new stack without the top entry. Popping an empty stack
// returns it unchanged.
func (s Stack) pop() Stack {
	if len(s) == 0 {
		return s
	}
	out := make(Stack, len(s)-1)
	copy(out, s[:len(s)-1])
	return out
}

// truncateTo returns a new stack cut down to the last occurrence of path,
// inclusive. The second return reports whether the path was found.
func (s Stack) truncateTo(path string) (Stack, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Path == path {
			out := make(Stack, i+1)
			copy(out, s[:i+1])
			return out, true
		}
	}
	return s, false
}

// removePath returns a new stack with every entry matching path removed.
// The second return reports whether anything was removed.
func (s Stack) removePath(path string) (Stack, bool) {
	out := make(Stack, 0, len(s))
	removed := false
	for _, entry := range s {
		if entry.Path == path {
			removed = true
			continue
		}
		out = append(out, entry)
	}
	return out, removed
}

// NavigationState is the authoritative navigation state: the three layer
// stacks plus auxiliary signals. It is mutated exclusively by the action
// processor through pure transitions and replaced wholesale during
// restoration; the presentation layer only ever reads it.
type NavigationState struct {
	SceneStack   Stack
	ContentStack Stack
	ModalStack   Stack

	DeviceContext   *DeviceContext
	EnabledFeatures []string // sorted, last-evaluated
	LastTransition  constants.TransitionKind
}

// VisibleScene returns the top of the scene stack, or nil.
func (st NavigationState) VisibleScene() *RouteInstance { return st.SceneStack.Top() }

// VisibleContent returns the top of the content stack, or nil.
func (st NavigationState) VisibleContent() *RouteInstance { return st.ContentStack.Top() }

// VisibleModal returns the top of the modal stack, or nil.
func (st NavigationState) VisibleModal() *RouteInstance { return st.ModalStack.Top() }

// stack returns the stack for the given layer.
func (st NavigationState) stack(layer constants.Layer) Stack {
	switch layer {
	case constants.LayerScene:
		return st.SceneStack
	case constants.LayerModal:
		return st.ModalStack
	default:
		return st.ContentStack
	}
}

// withStack returns a copy of the state with the given layer's stack
// replaced.
func (st NavigationState) withStack(layer constants.Layer, stack Stack) NavigationState {
	switch layer {
	case constants.LayerScene:
		st.SceneStack = stack
	case constants.LayerModal:
		st.ModalStack = stack
	default:
		st.ContentStack = stack
	}
	return st
}

// Snapshot projects the state into its serialization-safe form: paths and
// layer membership only. Parameters and render handles are dropped on
// purpose; a parameter is typically a rich runtime object with no stable
// serialization contract, so the projection drops it rather than risk a
// corrupt round-trip.
func (st NavigationState) Snapshot() Snapshot {
	snap := Snapshot{
		SceneRoutes:     entriesFor(st.SceneStack),
		ContentRoutes:   entriesFor(st.ContentStack),
		ModalRoutes:     entriesFor(st.ModalStack),
		EnabledFeatures: append([]string{}, st.EnabledFeatures...),
	}
	if st.DeviceContext != nil {
		device := *st.DeviceContext
		snap.DeviceContext = &device
	}
	if st.LastTransition != constants.TransitionNone {
		snap.LastTransitionKind = st.LastTransition.String()
	}
	return snap
}

func entriesFor(stack Stack) []SnapshotEntry {
	entries := make([]SnapshotEntry, len(stack))
	for i := range stack {
		entries[i] = SnapshotEntry{Path: stack[i].Path}
	}
	return entries
}

// SnapshotEntry is one persisted stack entry. Only the path survives.
type SnapshotEntry struct {
	Path string `json:"path"`
}

// Snapshot is the persisted navigation state: a JSON-compatible projection
// the host can write wherever it persists application state.
type Snapshot struct {
	SceneRoutes        []SnapshotEntry `json:"sceneRoutes"`
	ContentRoutes      []SnapshotEntry `json:"contentRoutes"`
	ModalRoutes        []SnapshotEntry `json:"modalRoutes"`
	DeviceContext      *DeviceContext  `json:"deviceContext,omitempty"`
	LastTransitionKind string          `json:"lastTransitionKind,omitempty"`
	EnabledFeatures    []string        `json:"enabledFeatures"`
}

// IsEmpty reports whether no stack entry survived into the snapshot.
func (s Snapshot) IsEmpty() bool {
	return len(s.SceneRoutes) == 0 && len(s.ContentRoutes) == 0 && len(s.ModalRoutes) == 0
}

// Marshal encodes the snapshot into its JSON wire shape.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// ParseSnapshot decodes a snapshot from its JSON wire shape.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
