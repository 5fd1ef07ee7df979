// Package constants defines shared constants, types, and configuration values
// used throughout the bussola navigation framework.
package constants

import "os"

// Development is the environment variable value for development mode.
const Development = "DEV"

// LogLevelEnvVar is the environment variable name for overriding the log level.
const LogLevelEnvVar = "BUSSOLA_LOG_LEVEL"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Layer identifies which of the three navigation stacks a route belongs to.
// Scene is a full-screen context switch, Content is an in-place screen within
// the current scene, Modal is an overlay on top of everything else.
// The zero value LayerAuto means "whatever layer the resolved route declares"
// and is only meaningful on actions, never on route definitions.
type Layer int

const (
	LayerAuto Layer = iota
	LayerScene
	LayerContent
	LayerModal
)

func (l Layer) String() string {
	switch l {
	case LayerScene:
		return "scene"
	case LayerContent:
		return "content"
	case LayerModal:
		return "modal"
	case LayerAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseLayer maps a layer name back to its Layer value.
// Returns LayerAuto for unrecognized names.
func ParseLayer(name string) Layer {
	switch name {
	case "scene":
		return LayerScene
	case "content":
		return LayerContent
	case "modal":
		return LayerModal
	default:
		return LayerAuto
	}
}

// TransitionKind records what kind of transition last mutated the navigation
// state. It exists for observability and testing; no decision depends on it.
type TransitionKind int

const (
	TransitionNone TransitionKind = iota
	TransitionScene
	TransitionContent
	TransitionModal
	TransitionBack
)

func (t TransitionKind) String() string {
	switch t {
	case TransitionScene:
		return "scene"
	case TransitionContent:
		return "content"
	case TransitionModal:
		return "modal"
	case TransitionBack:
		return "back"
	default:
		return "none"
	}
}

// DeviceClass is the coarse device category derived from screen width.
type DeviceClass int

const (
	DeviceUnknown DeviceClass = iota
	DeviceWatch
	DevicePhone
	DeviceTablet
	DeviceDesktop
)

func (d DeviceClass) String() string {
	switch d {
	case DeviceWatch:
		return "watch"
	case DevicePhone:
		return "phone"
	case DeviceTablet:
		return "tablet"
	case DeviceDesktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// Orientation is the screen orientation derived from width vs height.
type Orientation int

const (
	OrientationUnknown Orientation = iota
	OrientationPortrait
	OrientationLandscape
)

func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationLandscape:
		return "landscape"
	default:
		return "unknown"
	}
}

// Width breakpoints for deriving DeviceClass from a raw screen size.
// A width at or below WatchMaxWidth is a watch; below PhoneMaxWidth a phone;
// below TabletMaxWidth a tablet; everything else a desktop.
const (
	WatchMaxWidth  = 320
	PhoneMaxWidth  = 600
	TabletMaxWidth = 1024
)

// ClassifyWidth maps a screen width in logical pixels to a DeviceClass.
func ClassifyWidth(width int) DeviceClass {
	switch {
	case width <= WatchMaxWidth:
		return DeviceWatch
	case width < PhoneMaxWidth:
		return DevicePhone
	case width < TabletMaxWidth:
		return DeviceTablet
	default:
		return DeviceDesktop
	}
}

// RootPath is the path seeded at startup when no initial path is configured.
const RootPath = "/"
