// Package pipeline implements the pure, per-event transformation stages
// of the input-event processing pipeline — code remap, rotation,
// axis-invert, axis-snap, and scaling — plus the Config/State/Tunables
// data model they operate over. The stateful keybind dispatcher and
// temp-layer controller, which need the binding and keymap
// collaborators, live in package processor; this package holds only the
// parts that are pure functions of (*State, Event).
package pipeline

import "github.com/cormoran/zmk-module-runtime-input-processor/inputproc"

// TempLayerConfig holds the temp-layer controller's tunables: whether it
// is enabled, which layer it opportunistically activates, and the
// activation/deactivation timing windows.
type TempLayerConfig struct {
	Enabled bool
	Layer   uint8
	ActMs   uint16
	DeactMs uint16
}

// AxisSnapConfig holds the axis-snap stage's tunables.
type AxisSnapConfig struct {
	Mode      inputproc.AxisSnapMode
	Threshold uint16
	TimeoutMs uint16
}

// KeybindConfig holds the keybind dispatcher's tunables.
type KeybindConfig struct {
	Enabled      bool
	Count        uint8
	DegreeOffset uint16
	Tick         uint16
}

// Tunables is the full set of runtime-configurable values an instance
// carries in two parallel views (current and persistent, see
// [State]). Its field order and widths mirror the persisted-blob layout
// exactly, so package store can encode/decode it directly.
type Tunables struct {
	ScaleMul uint32
	ScaleDiv uint32

	RotationDeg int32

	TempLayer TempLayerConfig

	ActiveLayers uint32

	AxisSnap AxisSnapConfig

	XYToScroll bool
	XYSwap     bool
	XInvert    bool
	YInvert    bool

	KeybindEnabled      bool
	KeybindCount        uint8
	KeybindDegreeOffset uint16
	KeybindTick         uint16
}
