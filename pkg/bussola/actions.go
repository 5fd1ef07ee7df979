package bussola

import "github.com/bussola-ui/bussola/pkg/bussola/constants"

// Action is a navigation intent delivered to the processor. Actions form a
// closed set of variants; the processor switches over them exhaustively and
// ignores anything it does not recognize, so hosts can share one dispatch
// channel between navigation and their own action types.
type Action interface {
	isAction()
}

// NavigateTo pushes a route onto the stack of its resolved layer.
// Scene pushes clear the content and modal stacks entirely: a scene is a
// full application context switch, so stale state from the previous scene
// must not leak forward. Content pushes append, or replace the whole
// content stack (and clear modals) when ClearHistory is set. Modal pushes
// always append.
type NavigateTo struct {
	Path         string
	Layer        constants.Layer // LayerAuto resolves across all layers
	Param        any
	ClearHistory bool
}

// ReplaceContent swaps the entire content stack for a single new entry.
// No-op if the path resolves to a non-content route.
type ReplaceContent struct {
	Path  string
	Param any
}

// GoBack pops the topmost modal if any, else one content entry if more than
// one remains, else one scene entry if more than one remains. At the root it
// is a no-op, but LastTransition still records the attempt.
type GoBack struct{}

// PopToPath truncates the content stack to the last occurrence of Path,
// inclusive. No-op if the path is not on the stack.
type PopToPath struct {
	Path string
}

// ClearLayer empties the specified stack only.
type ClearLayer struct {
	Layer constants.Layer
}

// ShowModal resolves a route restricted to the modal layer and appends it.
// No-op if nothing resolves.
type ShowModal struct {
	Path  string
	Param any
}

// DismissModal removes all modal entries matching Path, or pops the topmost
// modal when Path is empty.
type DismissModal struct {
	Path string
}

// DeepLink parses a scheme-qualified URL into a path and delegates to
// NavigateTo. The URL's query string, if any, is forwarded as the
// navigation parameter.
type DeepLink struct {
	URL string
}

// UpdateDeviceContext replaces the device context wholesale with
// host-supplied signals.
type UpdateDeviceContext struct {
	Context DeviceContext
}

// UpdateScreenSize records a raw screen size. When no explicit context was
// supplied earlier, the device class and orientation are derived from the
// size using the fixed width breakpoints.
type UpdateScreenSize struct {
	Width  int
	Height int
}

// UpdateOrientation records the screen orientation.
type UpdateOrientation struct {
	Orientation constants.Orientation
}

// RestorationStarted signals that the host store began restoring persisted
// state. Initial-route seeding is deferred until RestorationCompleted.
type RestorationStarted struct{}

// RestorationCompleted signals the end of the restoration handshake. When
// nothing was restored, the deferred initial-route seed proceeds as if no
// restoration had been attempted.
type RestorationCompleted struct {
	WasRestored bool
}

// RestoreState carries the restored host application state. The state must
// expose a navigation snapshot through SnapshotProvider; the configured
// restoration strategy then decides what survives.
type RestoreState struct {
	AppState any
}

// StateChanged is the derived notification emitted after every transition
// that changed the navigation state. It is always the last event in a
// cycle: consumers reacting to the originating action and consumers
// reacting to this notification both see a consistent world.
type StateChanged struct {
	State NavigationState
}

func (NavigateTo) isAction()           {}
func (ReplaceContent) isAction()       {}
func (GoBack) isAction()               {}
func (PopToPath) isAction()            {}
func (ClearLayer) isAction()           {}
func (ShowModal) isAction()            {}
func (DismissModal) isAction()         {}
func (DeepLink) isAction()             {}
func (UpdateDeviceContext) isAction()  {}
func (UpdateScreenSize) isAction()     {}
func (UpdateOrientation) isAction()    {}
func (RestorationStarted) isAction()   {}
func (RestorationCompleted) isAction() {}
func (RestoreState) isAction()         {}
func (StateChanged) isAction()         {}
