package bussola

import (
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/bussola-ui/bussola/pkg/bussola/constants"
	"github.com/bussola-ui/bussola/pkg/bussola/internal"
)

// Dispatcher is the port back into the host's action-dispatch runtime.
// The navigator sends derived StateChanged actions through it, always as
// the last event of a navigation cycle.
type Dispatcher interface {
	Dispatch(action Action)
}

// Options configures a Navigator.
type Options struct {
	Table        *Table              // Route table to resolve against; required
	InitialPath  string              // Path seeded at startup; empty falls back to "/"
	FallbackPath string              // Path resolved when a requested path misses; empty disables the fallback
	Auth         AuthPolicy          // Authentication gate; zero value disables enforcement
	Features     FeatureToggle       // Feature flag port; nil means every feature reads as disabled
	Restoration  RestorationStrategy // Strategy applied to persisted snapshots; nil = RestoreAll
	Dispatcher   Dispatcher          // Receives derived StateChanged actions; optional
	LogPath      string              // Full path for the log file including filename (creates parent directories)
	LogLevel     string              // Minimum log level: debug, info, warn, error
}

// Navigator is the single-writer navigation state container. All mutation
// funnels through Handle; readers observe immutable snapshots through
// State and Subscribe and never block the writer.
type Navigator struct {
	mu    sync.Mutex
	state NavigationState

	proc        processor
	rest        restorer
	latch       *internal.SeedLatch
	dispatcher  Dispatcher
	initialPath string

	subMu  sync.Mutex
	subs   map[int]chan NavigationState
	nextID int

	log *slog.Logger
}

// New creates a Navigator for the given route table and policies.
func New(opts Options) (*Navigator, error) {
	if opts.Table == nil {
		return nil, errors.New("bussola: a route table is required")
	}
	if opts.LogPath != "" {
		internal.SetLogPath(opts.LogPath)
	}
	if raw := os.Getenv(constants.LogLevelEnvVar); raw != "" {
		internal.SetRawLogLevel(raw)
	} else if opts.LogLevel != "" {
		internal.SetRawLogLevel(opts.LogLevel)
	} else if constants.IsDevMode() {
		internal.SetRawLogLevel("debug")
	}
	log := internal.GetLogger()

	strategy := opts.Restoration
	if strategy == nil {
		strategy = RestoreAll{}
	}
	initial := opts.InitialPath
	if initial == "" {
		initial = constants.RootPath
	}

	return &Navigator{
		proc: processor{
			table:        opts.Table,
			auth:         opts.Auth,
			fallbackPath: opts.FallbackPath,
			features:     opts.Features,
			log:          log,
		},
		rest: restorer{
			table:    opts.Table,
			strategy: strategy,
			log:      log,
		},
		latch:       internal.NewSeedLatch(),
		dispatcher:  opts.Dispatcher,
		initialPath: initial,
		subs:        make(map[int]chan NavigationState),
		log:         log,
	}, nil
}

// Handle delivers one action to the navigation core. Navigation and device
// actions go through the pure transition function; restoration signals
// drive the seed latch. The only errors surfaced are restoration contract
// violations; everything else degrades to a no-op.
func (n *Navigator) Handle(appState any, action Action) error {
	switch a := action.(type) {
	case RestorationStarted:
		n.latch.RestorationStarted()
		return nil

	case RestorationCompleted:
		if n.latch.RestorationCompleted(a.WasRestored) {
			return n.seed(appState)
		}
		return nil

	case RestoreState:
		return n.restoreFrom(a.AppState)

	default:
		n.mu.Lock()
		next, changed := n.proc.apply(n.state, action, appState)
		if changed {
			n.state = next
		}
		n.mu.Unlock()
		if changed {
			n.emit(next)
		}
		return nil
	}
}

// Middleware adapts the navigator to a store's action pipeline. The
// originating action is forwarded downstream first, then handled here, so
// consumers of the original action and consumers of the derived
// StateChanged notification both see a consistent world.
func (n *Navigator) Middleware(appState func() any, next func(Action)) func(Action) {
	return func(action Action) {
		if next != nil {
			next(action)
		}
		if err := n.Handle(appState(), action); err != nil {
			n.log.Error("restoration failed", "error", err)
		}
	}
}

// restoreFrom replaces the navigation state wholesale from a restored host
// application state.
func (n *Navigator) restoreFrom(restoredState any) error {
	st, restored, err := n.rest.restore(restoredState)
	if err != nil {
		return err
	}
	if !restored {
		// Nothing survived the strategy; the RestorationCompleted signal
		// decides whether seeding proceeds.
		n.log.Info("nothing to restore")
		return nil
	}
	n.latch.MarkSeeded()
	n.mu.Lock()
	n.state = st
	n.mu.Unlock()
	n.emit(st)
	return nil
}

// Seed pushes the initial route as the sole stack entry. Seeding happens at
// most once per navigator; calling Seed after a restoration, or twice, is a
// no-op. When a restoration handshake is in flight the seed is deferred
// until it resolves.
func (n *Navigator) Seed(appState any) error {
	if !n.latch.TrySeed() {
		return nil
	}
	return n.seed(appState)
}

func (n *Navigator) seed(appState any) error {
	ec := &evalContext{
		appState: appState,
		features: newFeatureCache(n.proc.features, appState),
	}
	n.mu.Lock()
	ec.device = n.state.DeviceContext
	def := n.proc.table.resolve(n.initialPath, constants.LayerAuto, ec)
	if def == nil && n.initialPath != constants.RootPath {
		def = n.proc.table.resolve(constants.RootPath, constants.LayerAuto, ec)
	}
	if def == nil {
		n.mu.Unlock()
		return NewRestorationError("seed", ErrNoInitialRoute)
	}
	st := n.state.withStack(def.Layer, Stack{newInstance(def, nil)})
	switch def.Layer {
	case constants.LayerScene:
		st.LastTransition = constants.TransitionScene
	case constants.LayerModal:
		st.LastTransition = constants.TransitionModal
	default:
		st.LastTransition = constants.TransitionContent
	}
	n.state = st
	n.mu.Unlock()
	n.emit(st)
	return nil
}

// State returns the current navigation state snapshot.
func (n *Navigator) State() NavigationState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Subscribe registers an observer for navigation state snapshots. The
// channel is conflating: a slow reader sees the latest snapshot, never a
// backlog, and the writer never blocks on reader speed. The returned
// function cancels the subscription.
func (n *Navigator) Subscribe() (<-chan NavigationState, func()) {
	ch := make(chan NavigationState, 1)
	n.subMu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.subMu.Unlock()

	cancel := func() {
		n.subMu.Lock()
		if _, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
		n.subMu.Unlock()
	}
	return ch, cancel
}

// emit publishes a snapshot to subscribers, then forwards the derived
// StateChanged action. The dispatch is last on purpose; see StateChanged.
func (n *Navigator) emit(st NavigationState) {
	n.subMu.Lock()
	for _, ch := range n.subs {
		select {
		case ch <- st:
		default:
			// Replace the stale pending snapshot with the fresh one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
	n.subMu.Unlock()

	if n.dispatcher != nil {
		n.dispatcher.Dispatch(StateChanged{State: st})
	}
}

// Navigate pushes the route at path with an optional parameter.
func (n *Navigator) Navigate(appState any, path string, param any) error {
	return n.Handle(appState, NavigateTo{Path: path, Param: param})
}

// NavigateWith pushes a route with full control over layer and history.
func (n *Navigator) NavigateWith(appState any, action NavigateTo) error {
	return n.Handle(appState, action)
}

// GoBack pops the topmost entry per the back priority order.
func (n *Navigator) GoBack(appState any) error {
	return n.Handle(appState, GoBack{})
}

// ShowModal appends a modal-layer route.
func (n *Navigator) ShowModal(appState any, path string, param any) error {
	return n.Handle(appState, ShowModal{Path: path, Param: param})
}

// DismissModal removes modal entries matching path, or the topmost modal
// when path is empty.
func (n *Navigator) DismissModal(appState any, path string) error {
	return n.Handle(appState, DismissModal{Path: path})
}

// PopToRoute truncates the content stack to the last occurrence of path.
func (n *Navigator) PopToRoute(appState any, path string) error {
	return n.Handle(appState, PopToPath{Path: path})
}

// Replace swaps the entire content stack for a single entry at path.
func (n *Navigator) Replace(appState any, path string, param any) error {
	return n.Handle(appState, ReplaceContent{Path: path, Param: param})
}

// Clear empties the stack for one layer.
func (n *Navigator) Clear(appState any, layer constants.Layer) error {
	return n.Handle(appState, ClearLayer{Layer: layer})
}

// OpenDeepLink parses a scheme-qualified URL and navigates to it.
func (n *Navigator) OpenDeepLink(appState any, url string) error {
	return n.Handle(appState, DeepLink{URL: url})
}
