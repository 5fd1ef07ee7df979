// Package bussola is a navigation state manager for reactive UI
// applications. Given a table of registered routes and a stream of
// navigation actions, it computes the set of screens and overlays that
// should currently be visible, enforces authentication and feature gating,
// and produces a state object that can be persisted and restored.
//
// Navigation is modeled as three parallel stacks: a full-screen scene
// layer, an in-place content layer, and a modal overlay layer. The last
// entry of each stack is the visible one. Scene transitions clear the other
// two stacks entirely; a scene is a full application context switch.
//
// # Basic Usage
//
//	table := bussola.NewTable().
//	    Register(bussola.RouteDefinition{Path: "/", Layer: constants.LayerContent, Render: homeView}).
//	    Register(bussola.RouteDefinition{Path: "/settings", Layer: constants.LayerContent, Render: settingsView}).
//	    Register(bussola.RouteDefinition{Path: "/confirm", Layer: constants.LayerModal, Render: confirmView})
//
//	nav, err := bussola.New(bussola.Options{
//	    Table:        table,
//	    FallbackPath: "/",
//	})
//	if err != nil {
//	    return err
//	}
//
//	nav.Seed(appState)
//	nav.Navigate(appState, "/settings", nil)
//	nav.ShowModal(appState, "/confirm", nil)
//	nav.GoBack(appState) // dismisses the modal first
//
// # Conditional Routes
//
// The same path may be registered multiple times with different
// applicability conditions; the first registration whose conditions hold
// wins, so registration order is developer-intended priority:
//
//	table.Register(bussola.RouteDefinition{
//	    Path:             "/dash",
//	    Layer:            constants.LayerContent,
//	    RenderConditions: []bussola.Condition{bussola.ScreenSize{MinWidth: 1024}},
//	    Render:           wideDash,
//	}).Register(bussola.RouteDefinition{
//	    Path:   "/dash",
//	    Layer:  constants.LayerContent,
//	    Render: narrowDash,
//	})
//
// # Persistence
//
// NavigationState.Snapshot projects the state into a JSON-compatible form
// holding paths only. Navigation parameters and render handles are
// intentionally dropped at this boundary; they do not survive a
// persist/restore cycle. On restart, a RestorationStrategy decides which
// persisted stacks survive, and surviving paths are rejoined against the
// live route table to recover real render handles. Paths whose routes were
// removed since the save are silently dropped.
package bussola
