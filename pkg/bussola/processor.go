package bussola

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/bussola-ui/bussola/pkg/bussola/constants"
)

// AuthPolicy gates routes that declare RequiresAuth. It is supplied once at
// configuration time and never mutated. A nil Checker disables enforcement.
type AuthPolicy struct {
	// Checker reads the host application state and reports whether the
	// current user is authenticated.
	Checker func(appState any) bool
	// UnauthenticatedPath is navigated to instead of a denied route.
	UnauthenticatedPath string
	// OnFailure, if set, is invoked with the denied path before the
	// redirect. It is a side-channel notification, not an error.
	OnFailure func(appState any, deniedPath string)
}

// processor is the single-writer transition function over NavigationState.
// Every transition is pure: (state, action) in, new state out, no partial
// updates observable from outside.
type processor struct {
	table        *Table
	auth         AuthPolicy
	fallbackPath string
	features     FeatureToggle
	log          *slog.Logger
}

// apply computes the next navigation state for an action. The second return
// reports whether the state changed; unchanged cycles emit no notification.
// Actions the processor does not recognize (restoration signals, host
// actions sharing the channel) leave the state untouched.
func (p *processor) apply(st NavigationState, action Action, appState any) (NavigationState, bool) {
	ec := &evalContext{
		device:   st.DeviceContext,
		appState: appState,
		features: newFeatureCache(p.features, appState),
	}

	switch a := action.(type) {
	case NavigateTo:
		next, changed := p.navigate(st, a.Path, a.Layer, a.Param, a.ClearHistory, ec)
		return p.finishCycle(next, ec, changed), changed

	case ReplaceContent:
		def := p.table.resolve(a.Path, constants.LayerAuto, ec)
		if def == nil || def.Layer != constants.LayerContent {
			return st, false
		}
		st.ContentStack = Stack{newInstance(def, a.Param)}
		st.LastTransition = constants.TransitionContent
		return p.finishCycle(st, ec, true), true

	case GoBack:
		prev := st.LastTransition
		popped := false
		switch {
		case len(st.ModalStack) > 0:
			st.ModalStack = st.ModalStack.pop()
			popped = true
		case len(st.ContentStack) > 1:
			st.ContentStack = st.ContentStack.pop()
			popped = true
		case len(st.SceneStack) > 1:
			st.SceneStack = st.SceneStack.pop()
			popped = true
		}
		// The transition kind records the attempt even at the root.
		st.LastTransition = constants.TransitionBack
		return st, popped || prev != constants.TransitionBack

	case PopToPath:
		stack, found := st.ContentStack.truncateTo(NormalizePath(a.Path))
		if !found {
			return st, false
		}
		st.ContentStack = stack
		st.LastTransition = constants.TransitionBack
		return st, true

	case ClearLayer:
		if a.Layer == constants.LayerAuto {
			return st, false
		}
		if st.stack(a.Layer).IsEmpty() {
			return st, false
		}
		return st.withStack(a.Layer, nil), true

	case ShowModal:
		def := p.table.resolve(a.Path, constants.LayerModal, ec)
		if def == nil {
			p.log.Debug("modal path did not resolve", "path", a.Path)
			return st, false
		}
		st.ModalStack = st.ModalStack.push(newInstance(def, a.Param))
		st.LastTransition = constants.TransitionModal
		return p.finishCycle(st, ec, true), true

	case DismissModal:
		if a.Path != "" {
			stack, removed := st.ModalStack.removePath(NormalizePath(a.Path))
			if !removed {
				return st, false
			}
			st.ModalStack = stack
		} else {
			if st.ModalStack.IsEmpty() {
				return st, false
			}
			st.ModalStack = st.ModalStack.pop()
		}
		st.LastTransition = constants.TransitionBack
		return st, true

	case DeepLink:
		path, param := parseDeepLink(a.URL)
		if path == "" {
			p.log.Debug("deep link did not parse", "url", a.URL)
			return st, false
		}
		next, changed := p.navigate(st, path, constants.LayerAuto, param, false, ec)
		return p.finishCycle(next, ec, changed), changed

	case UpdateDeviceContext:
		device := a.Context
		device.Explicit = true
		st.DeviceContext = &device
		return st, true

	case UpdateScreenSize:
		var device DeviceContext
		if st.DeviceContext != nil {
			device = *st.DeviceContext
		}
		device.Width = a.Width
		device.Height = a.Height
		if !device.Explicit {
			device.Class = constants.ClassifyWidth(a.Width)
			if a.Width > a.Height {
				device.Orientation = constants.OrientationLandscape
			} else {
				device.Orientation = constants.OrientationPortrait
			}
		}
		st.DeviceContext = &device
		return st, true

	case UpdateOrientation:
		var device DeviceContext
		if st.DeviceContext != nil {
			device = *st.DeviceContext
		}
		device.Orientation = a.Orientation
		st.DeviceContext = &device
		return st, true

	default:
		return st, false
	}
}

// navigate resolves a path and pushes the result onto its layer's stack,
// applying the fallback, auth, and layer-isolation rules.
func (p *processor) navigate(st NavigationState, path string, layer constants.Layer, param any, clearHistory bool, ec *evalContext) (NavigationState, bool) {
	def := p.table.resolve(path, layer, ec)
	if def == nil && p.fallbackPath != "" && NormalizePath(path) != NormalizePath(p.fallbackPath) {
		p.log.Debug("path did not resolve, trying fallback", "path", path, "fallback", p.fallbackPath)
		def = p.table.resolve(p.fallbackPath, layer, ec)
	}
	if def == nil {
		// A miss on the fallback itself degrades to a no-op; navigation
		// failures must not crash a running UI.
		p.log.Warn("navigation dropped, nothing resolved", "path", path)
		return st, false
	}

	if def.RequiresAuth && p.auth.Checker != nil && !p.auth.Checker(ec.appState) {
		if p.auth.OnFailure != nil {
			p.auth.OnFailure(ec.appState, def.Path)
		}
		p.log.Info("auth denied, redirecting", "path", def.Path, "redirect", p.auth.UnauthenticatedPath)
		redirect := p.table.resolve(p.auth.UnauthenticatedPath, layer, ec)
		if redirect == nil {
			return st, false
		}
		def = redirect
		param = nil // the parameter belonged to the denied route
	}

	inst := newInstance(def, param)
	switch def.Layer {
	case constants.LayerScene:
		st.SceneStack = st.SceneStack.push(inst)
		// A scene is a full context switch; nothing below survives.
		st.ContentStack = nil
		st.ModalStack = nil
		st.LastTransition = constants.TransitionScene
	case constants.LayerModal:
		st.ModalStack = st.ModalStack.push(inst)
		st.LastTransition = constants.TransitionModal
	default:
		if clearHistory {
			st.ContentStack = Stack{inst}
			st.ModalStack = nil
		} else {
			st.ContentStack = st.ContentStack.push(inst)
		}
		st.LastTransition = constants.TransitionContent
	}
	return st, true
}

// finishCycle folds the feature flags consulted during a changed transition
// into the state. Cycles that consulted no flags keep the previous set.
func (p *processor) finishCycle(st NavigationState, ec *evalContext, changed bool) NavigationState {
	if !changed || len(ec.features.seen) == 0 {
		return st
	}
	st.EnabledFeatures = ec.features.enabledNames()
	return st
}

// parseDeepLink turns a scheme-qualified URL into a navigation path: the
// scheme is stripped and the remainder becomes a rooted path. The query
// string, if present, is forwarded as the navigation parameter.
func parseDeepLink(raw string) (string, any) {
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		// Malformed per RFC but still navigable: strip any scheme prefix
		// by hand and treat the rest as a path.
		rest := raw
		if idx := strings.Index(raw, "://"); idx >= 0 {
			rest = raw[idx+3:]
		}
		return NormalizePath(rest), nil
	}
	path := NormalizePath(u.Host + "/" + u.Path)
	var param any
	if u.RawQuery != "" {
		param = u.Query()
	}
	return path, param
}
