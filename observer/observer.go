// Package observer implements the RPC/observer-channel external
// collaborator (spec §6): a notification sink invoked whenever an
// instance's persistent configuration changes. Production firmware
// wires this to a real RPC channel facing a host UI; [Logging] is a
// reference sink that exercises the module's logging story until one
// is.
package observer

import "go.uber.org/zap"

// PublicConfig is the read-only view of an instance's tunables an
// Observer is notified with: everything [processor.Instance.GetConfig]
// would expose to a UI, duplicated here so this package has no import
// edge back onto processor.
type PublicConfig struct {
	ScaleMul, ScaleDiv     uint32
	RotationDeg            int32
	TempLayerEnabled       bool
	TempLayerLayer         uint8
	TempLayerActMs         uint16
	TempLayerDeactMs       uint16
	ActiveLayers           uint32
	AxisSnapMode           uint8
	AxisSnapThreshold      uint16
	AxisSnapTimeoutMs      uint16
	XYToScroll, XYSwap     bool
	XInvert, YInvert       bool
	KeybindEnabled         bool
	KeybindCount           uint8
	KeybindDegreeOffset    uint16
	KeybindTick            uint16
}

// Observer is notified of an instance's persistent-configuration
// changes, per spec §6's "Observer event (published on persistent
// change): {name, current public config view}".
type Observer interface {
	Notify(name string, view PublicConfig)
}

// Noop discards every notification. It is the default Observer for an
// instance that has nothing wired to a UI yet.
type Noop struct{}

// Notify implements [Observer].
func (Noop) Notify(string, PublicConfig) {}

// Logging logs every notification at info level via a zap logger,
// standing in for a real RPC channel to a host UI.
type Logging struct {
	Logger *zap.SugaredLogger
}

// NewLogging builds a Logging observer backed by logger.
func NewLogging(logger *zap.SugaredLogger) *Logging {
	return &Logging{Logger: logger}
}

// Notify implements [Observer].
func (o *Logging) Notify(name string, view PublicConfig) {
	o.Logger.Infow("instance configuration changed",
		"instance", name,
		"scale_mul", view.ScaleMul,
		"scale_div", view.ScaleDiv,
		"rotation_deg", view.RotationDeg,
		"active_layers", view.ActiveLayers,
	)
}
