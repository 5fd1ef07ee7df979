package bussola

import "sort"

// FeatureToggle is the injected feature flag port. It is consulted by
// FeatureEnabled conditions and by route-level RequiredFeature gating,
// receiving the host application state and the feature name.
type FeatureToggle func(appState any, feature string) bool

// StaticFeatures builds a FeatureToggle from a fixed set of enabled names.
// Useful for configuration files and tests.
func StaticFeatures(names ...string) FeatureToggle {
	enabled := make(map[string]bool, len(names))
	for _, name := range names {
		enabled[name] = true
	}
	return func(_ any, feature string) bool {
		return enabled[feature]
	}
}

// featureCache memoizes feature toggle lookups for a single navigation
// cycle, so a flag consulted by several route registrations is evaluated
// once per action. A fresh cache is built for every cycle; flags may change
// between actions but not within one.
type featureCache struct {
	port     FeatureToggle
	appState any
	seen     map[string]bool
}

func newFeatureCache(port FeatureToggle, appState any) *featureCache {
	return &featureCache{
		port:     port,
		appState: appState,
		seen:     make(map[string]bool),
	}
}

func (c *featureCache) enabled(name string) bool {
	if c.port == nil {
		return false
	}
	if value, ok := c.seen[name]; ok {
		return value
	}
	value := c.port(c.appState, name)
	c.seen[name] = value
	return value
}

// enabledNames returns the sorted set of features that evaluated true
// during this cycle. Used to populate NavigationState.EnabledFeatures.
func (c *featureCache) enabledNames() []string {
	names := make([]string, 0, len(c.seen))
	for name, value := range c.seen {
		if value {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
