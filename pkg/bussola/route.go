package bussola

import (
	"strings"

	"github.com/google/uuid"

	"github.com/bussola-ui/bussola/pkg/bussola/constants"
)

// RenderHandle is an opaque capability reference to the presentation logic
// for a route. The core never inspects, invokes, or serializes it; it is
// carried on the definition and handed back to the presentation layer by
// path and instance identity.
type RenderHandle any

// RouteDefinition is an immutable registration in the route table. The same
// path may be registered multiple times with different conditions; resolution
// walks registrations in order and the first applicable one wins, so earlier
// registrations carry developer-intended priority.
type RouteDefinition struct {
	Path             string
	Layer            constants.Layer
	RequiresAuth     bool
	RequiredFeature  string      // shorthand feature gate, empty = none
	RenderConditions []Condition // all must hold; empty = always applicable
	Config           any         // caller-defined metadata, not interpreted
	Render           RenderHandle
}

// RouteInstance is a resolved, runtime-only binding of a RouteDefinition to
// an optional navigation parameter. The parameter is an opaque payload; it
// is stored and forwarded without interpretation and intentionally does not
// survive a persist/restore cycle.
type RouteInstance struct {
	ID         string // stable identity for the presentation layer
	Path       string
	Layer      constants.Layer
	Param      any
	Definition *RouteDefinition
}

func newInstance(def *RouteDefinition, param any) RouteInstance {
	return RouteInstance{
		ID:         uuid.NewString(),
		Path:       def.Path,
		Layer:      def.Layer,
		Param:      param,
		Definition: def,
	}
}

// Table is the ordered route table. Registrations are append-only; the
// table is immutable once navigation begins.
type Table struct {
	defs []RouteDefinition
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{}
}

// Register appends a route definition to the table, normalizing its path.
// Registration order is resolution priority for duplicate paths.
func (t *Table) Register(def RouteDefinition) *Table {
	if def.Layer == constants.LayerAuto {
		def.Layer = constants.LayerContent
	}
	def.Path = NormalizePath(def.Path)
	t.defs = append(t.defs, def)
	return t
}

// Len returns the number of registrations.
func (t *Table) Len() int {
	return len(t.defs)
}

// Paths returns every registered path in registration order, duplicates
// included.
func (t *Table) Paths() []string {
	paths := make([]string, len(t.defs))
	for i := range t.defs {
		paths[i] = t.defs[i].Path
	}
	return paths
}

// resolve returns the first registration for path that is applicable in the
// given context, optionally restricted to a layer (LayerAuto = any layer).
// Returns nil when nothing matches.
func (t *Table) resolve(path string, layer constants.Layer, ec *evalContext) *RouteDefinition {
	normalized := NormalizePath(path)
	for i := range t.defs {
		def := &t.defs[i]
		if def.Path != normalized {
			continue
		}
		if layer != constants.LayerAuto && def.Layer != layer {
			continue
		}
		if !applicable(def, ec) {
			continue
		}
		return def
	}
	return nil
}

// lookup finds the first registration for path, optionally restricted to a
// layer, without condition filtering. Used when rejoining persisted paths:
// at restore time the device context is usually not yet observed, so
// condition filtering would wrongly drop routes.
func (t *Table) lookup(path string, layer constants.Layer) *RouteDefinition {
	normalized := NormalizePath(path)
	for i := range t.defs {
		def := &t.defs[i]
		if def.Path != normalized {
			continue
		}
		if layer != constants.LayerAuto && def.Layer != layer {
			continue
		}
		return def
	}
	return nil
}

func applicable(def *RouteDefinition, ec *evalContext) bool {
	if def.RequiredFeature != "" && !ec.features.enabled(def.RequiredFeature) {
		return false
	}
	// Until any device context has been observed, condition-bearing
	// registrations are not eligible.
	if ec.device == nil {
		return len(def.RenderConditions) == 0
	}
	for _, cond := range def.RenderConditions {
		if !cond.evaluate(ec) {
			return false
		}
	}
	return true
}

// NormalizePath collapses repeated separators and leading/trailing noise
// into the canonical form: a single leading slash, no trailing slash except
// for the root path itself.
func NormalizePath(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return constants.RootPath
	}
	return "/" + strings.Join(segments, "/")
}
