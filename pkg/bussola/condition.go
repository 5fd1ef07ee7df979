package bussola

import "github.com/bussola-ui/bussola/pkg/bussola/constants"

// DeviceContext holds the last-known device signals used to pick among
// competing route registrations for the same path.
type DeviceContext struct {
	Width       int
	Height      int
	Class       constants.DeviceClass
	Orientation constants.Orientation

	// Explicit marks a context supplied wholesale by the host (as opposed
	// to one derived from raw screen-size updates). Derived fields never
	// overwrite an explicit context.
	Explicit bool
}

// Condition restricts when a route registration is applicable. Conditions
// form a closed set of variants; evaluation is pure and total, except that a
// panicking Custom predicate propagates to the caller.
type Condition interface {
	evaluate(ec *evalContext) bool
}

// ScreenSize matches when the screen width falls within the given bounds,
// inclusive. A zero bound leaves that side unconstrained.
type ScreenSize struct {
	MinWidth int
	MaxWidth int
}

func (c ScreenSize) evaluate(ec *evalContext) bool {
	if ec.device == nil {
		return false
	}
	if c.MinWidth > 0 && ec.device.Width < c.MinWidth {
		return false
	}
	if c.MaxWidth > 0 && ec.device.Width > c.MaxWidth {
		return false
	}
	return true
}

// OrientationIs matches when the device orientation equals Value.
type OrientationIs struct {
	Value constants.Orientation
}

func (c OrientationIs) evaluate(ec *evalContext) bool {
	return ec.device != nil && ec.device.Orientation == c.Value
}

// DeviceTypeIn matches when the device class is a member of Classes.
type DeviceTypeIn struct {
	Classes []constants.DeviceClass
}

func (c DeviceTypeIn) evaluate(ec *evalContext) bool {
	if ec.device == nil {
		return false
	}
	for _, class := range c.Classes {
		if ec.device.Class == class {
			return true
		}
	}
	return false
}

// FeatureEnabled matches when the named feature flag is enabled for the
// current application state. Without a configured feature toggle port the
// condition is false: features are opt-in.
type FeatureEnabled struct {
	Name string
}

func (c FeatureEnabled) evaluate(ec *evalContext) bool {
	return ec.features.enabled(c.Name)
}

// Custom wraps a caller-supplied predicate. The predicate receives the
// current device context (zero value if none observed yet) and the host
// application state. A panicking predicate is the caller's responsibility
// and propagates.
type Custom struct {
	Predicate func(device DeviceContext, appState any) bool
}

func (c Custom) evaluate(ec *evalContext) bool {
	if c.Predicate == nil {
		return false
	}
	device := DeviceContext{}
	if ec.device != nil {
		device = *ec.device
	}
	return c.Predicate(device, ec.appState)
}

type compositeOp int

const (
	opAnd compositeOp = iota
	opOr
)

// composite combines child conditions with AND or OR semantics.
// AND of zero children is vacuously true, OR of zero children false.
type composite struct {
	op       compositeOp
	children []Condition
}

func (c composite) evaluate(ec *evalContext) bool {
	if c.op == opAnd {
		for _, child := range c.children {
			if !child.evaluate(ec) {
				return false
			}
		}
		return true
	}
	for _, child := range c.children {
		if child.evaluate(ec) {
			return true
		}
	}
	return false
}

// And combines conditions so that all must hold. Nested And groups are
// flattened at construction; this is a convenience, evaluation does not
// depend on it.
func And(children ...Condition) Condition {
	return composite{op: opAnd, children: flatten(opAnd, children)}
}

// Or combines conditions so that at least one must hold. Nested Or groups
// are flattened at construction.
func Or(children ...Condition) Condition {
	return composite{op: opOr, children: flatten(opOr, children)}
}

func flatten(op compositeOp, children []Condition) []Condition {
	out := make([]Condition, 0, len(children))
	for _, child := range children {
		if group, ok := child.(composite); ok && group.op == op {
			out = append(out, group.children...)
			continue
		}
		out = append(out, child)
	}
	return out
}

// evalContext carries everything condition evaluation needs for one
// navigation cycle: the observed device context, the host application state,
// and the per-cycle feature flag cache.
type evalContext struct {
	device   *DeviceContext
	appState any
	features *featureCache
}
