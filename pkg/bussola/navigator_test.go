package bussola

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bussola-ui/bussola/pkg/bussola/constants"
)

// recordingDispatcher captures actions sent back into the host runtime.
type recordingDispatcher struct {
	actions []Action
}

func (d *recordingDispatcher) Dispatch(action Action) {
	d.actions = append(d.actions, action)
}

func newTestNavigator(t *testing.T, opts Options) *Navigator {
	t.Helper()
	if opts.Table == nil {
		opts.Table = NewTable().
			Register(RouteDefinition{Path: "/", Layer: constants.LayerContent}).
			Register(RouteDefinition{Path: "/a", Layer: constants.LayerContent}).
			Register(RouteDefinition{Path: "/b", Layer: constants.LayerModal})
	}
	nav, err := New(opts)
	require.NoError(t, err)
	return nav
}

// TestNew_RequiresTable verifies configuration without a route table fails.
func TestNew_RequiresTable(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

// TestSeed_InitialPath verifies startup seeding lands on the configured
// initial path as the sole entry of its layer.
func TestSeed_InitialPath(t *testing.T) {
	nav := newTestNavigator(t, Options{InitialPath: "/a"})
	require.NoError(t, nav.Seed(nil))

	st := nav.State()
	assert.Equal(t, []string{"/a"}, st.ContentStack.Paths())
	assert.Equal(t, constants.TransitionContent, st.LastTransition)
}

// TestSeed_FallsBackToRoot verifies an unresolvable initial path seeds the
// root route instead.
func TestSeed_FallsBackToRoot(t *testing.T) {
	nav := newTestNavigator(t, Options{InitialPath: "/missing"})
	require.NoError(t, nav.Seed(nil))
	assert.Equal(t, []string{"/"}, nav.State().ContentStack.Paths())
}

// TestSeed_Idempotent verifies a second seed attempt is a no-op.
func TestSeed_Idempotent(t *testing.T) {
	nav := newTestNavigator(t, Options{})
	require.NoError(t, nav.Seed(nil))
	require.NoError(t, nav.Navigate(nil, "/a", nil))

	require.NoError(t, nav.Seed(nil))
	assert.Equal(t, []string{"/", "/a"}, nav.State().ContentStack.Paths(),
		"a second seed must not reset navigation")
}

// TestSeed_ErrorWhenNothingRegistered verifies seeding surfaces an error
// when neither the initial path nor the root resolves.
func TestSeed_ErrorWhenNothingRegistered(t *testing.T) {
	nav := newTestNavigator(t, Options{
		Table: NewTable().Register(RouteDefinition{Path: "/only", Layer: constants.LayerContent}),
	})
	err := nav.Seed(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoInitialRoute)
}

// TestRestorationHandshake_DefersSeeding verifies a seed requested during a
// restoration is deferred until the handshake resolves with nothing
// restored.
func TestRestorationHandshake_DefersSeeding(t *testing.T) {
	nav := newTestNavigator(t, Options{})

	require.NoError(t, nav.Handle(nil, RestorationStarted{}))
	require.NoError(t, nav.Seed(nil))
	assert.Empty(t, nav.State().ContentStack, "seed must wait for the restoration to resolve")

	require.NoError(t, nav.Handle(nil, RestorationCompleted{WasRestored: false}))
	assert.Equal(t, []string{"/"}, nav.State().ContentStack.Paths(),
		"completion with nothing restored seeds as if no restoration happened")
}

// TestRestorationHandshake_RestoredStateWins verifies a successful restore
// suppresses seeding entirely.
func TestRestorationHandshake_RestoredStateWins(t *testing.T) {
	nav := newTestNavigator(t, Options{})

	require.NoError(t, nav.Handle(nil, RestorationStarted{}))
	snap := Snapshot{ContentRoutes: []SnapshotEntry{{Path: "/a"}}}
	require.NoError(t, nav.Handle(nil, RestoreState{AppState: hostState{snapshot: &snap}}))
	require.NoError(t, nav.Handle(nil, RestorationCompleted{WasRestored: true}))

	require.NoError(t, nav.Seed(nil))
	assert.Equal(t, []string{"/a"}, nav.State().ContentStack.Paths())
}

// TestRestoreState_ContractViolation verifies the missing-snapshot error
// reaches the caller.
func TestRestoreState_ContractViolation(t *testing.T) {
	nav := newTestNavigator(t, Options{})
	err := nav.Handle(nil, RestoreState{AppState: 42})
	require.Error(t, err)
	assert.True(t, IsRestorationError(err))
}

// TestHandle_EmitsStateChangedLast verifies the derived notification is the
// final event of a cycle and carries the post-transition state.
func TestHandle_EmitsStateChangedLast(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	nav := newTestNavigator(t, Options{Dispatcher: dispatcher})
	require.NoError(t, nav.Seed(nil))
	dispatcher.actions = nil

	require.NoError(t, nav.Navigate(nil, "/a", nil))

	require.Len(t, dispatcher.actions, 1)
	changed, ok := dispatcher.actions[0].(StateChanged)
	require.True(t, ok)
	assert.Equal(t, []string{"/", "/a"}, changed.State.ContentStack.Paths())
}

// TestHandle_NoNotificationOnNoOp verifies unchanged cycles stay silent.
func TestHandle_NoNotificationOnNoOp(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	nav := newTestNavigator(t, Options{Dispatcher: dispatcher})
	require.NoError(t, nav.Seed(nil))
	dispatcher.actions = nil

	require.NoError(t, nav.Navigate(nil, "/missing", nil))
	assert.Empty(t, dispatcher.actions)
}

// TestMiddleware_ForwardsBeforeHandling verifies the originating action
// reaches downstream consumers before the navigator reacts to it.
func TestMiddleware_ForwardsBeforeHandling(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	nav := newTestNavigator(t, Options{Dispatcher: dispatcher})
	require.NoError(t, nav.Seed(nil))
	dispatcher.actions = nil

	var order []string
	handler := nav.Middleware(func() any { return nil }, func(action Action) {
		order = append(order, "downstream")
		assert.Equal(t, 0, len(dispatcher.actions), "no notification before the action is forwarded")
	})

	handler(NavigateTo{Path: "/a"})
	order = append(order, "notified")

	assert.Equal(t, []string{"downstream", "notified"}, order)
	require.Len(t, dispatcher.actions, 1)
	assert.IsType(t, StateChanged{}, dispatcher.actions[0])
}

// TestSubscribe_ReceivesSnapshots verifies observers get post-transition
// snapshots.
func TestSubscribe_ReceivesSnapshots(t *testing.T) {
	nav := newTestNavigator(t, Options{})
	ch, cancel := nav.Subscribe()
	defer cancel()

	require.NoError(t, nav.Seed(nil))
	st := <-ch
	assert.Equal(t, []string{"/"}, st.ContentStack.Paths())
}

// TestSubscribe_ConflatesForSlowReaders verifies a reader that falls behind
// sees the latest snapshot rather than a backlog, and the writer is never
// blocked.
func TestSubscribe_ConflatesForSlowReaders(t *testing.T) {
	nav := newTestNavigator(t, Options{})
	ch, cancel := nav.Subscribe()
	defer cancel()

	require.NoError(t, nav.Seed(nil))
	for i := 0; i < 10; i++ {
		require.NoError(t, nav.Navigate(nil, "/a", nil))
	}

	st := <-ch
	assert.Equal(t, 11, st.ContentStack.Len(), "slow reader skips straight to the latest snapshot")

	select {
	case _, open := <-ch:
		assert.True(t, open, "channel stays open until cancelled")
		t.Fatal("no further snapshot should be pending")
	default:
	}
}

// TestSubscribe_CancelStopsDelivery verifies cancellation closes the
// channel and later transitions do not reach it.
func TestSubscribe_CancelStopsDelivery(t *testing.T) {
	nav := newTestNavigator(t, Options{})
	ch, cancel := nav.Subscribe()

	cancel()
	cancel() // cancelling twice is fine

	require.NoError(t, nav.Seed(nil))
	_, open := <-ch
	assert.False(t, open)
}

// TestCommandSurface covers the convenience commands end to end.
func TestCommandSurface(t *testing.T) {
	nav := newTestNavigator(t, Options{})
	require.NoError(t, nav.Seed(nil))

	require.NoError(t, nav.Navigate(nil, "/a", nil))
	require.NoError(t, nav.ShowModal(nil, "/b", nil))
	require.NoError(t, nav.GoBack(nil))

	st := nav.State()
	assert.Empty(t, st.ModalStack)
	assert.Equal(t, []string{"/", "/a"}, st.ContentStack.Paths())

	require.NoError(t, nav.GoBack(nil))
	assert.Equal(t, []string{"/"}, nav.State().ContentStack.Paths())

	require.NoError(t, nav.Replace(nil, "/a", nil))
	assert.Equal(t, []string{"/a"}, nav.State().ContentStack.Paths())

	require.NoError(t, nav.Clear(nil, constants.LayerContent))
	assert.Empty(t, nav.State().ContentStack)
}
