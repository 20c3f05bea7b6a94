// Package processor implements the owning Instance for one configured
// pipeline (spec §2, §4.1–§4.3, §4.7): it sequences the pure pipeline
// stages, dispatches keybind gestures, runs the temp-layer controller,
// and exposes the public control surface every setter in spec §4.7
// describes. It is the one package that knows about every collaborator
// interface (binding, keymap, store, schedule, observer).
package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cormoran/zmk-module-runtime-input-processor/binding"
	"github.com/cormoran/zmk-module-runtime-input-processor/inputproc"
	"github.com/cormoran/zmk-module-runtime-input-processor/keymap"
	"github.com/cormoran/zmk-module-runtime-input-processor/observer"
	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
	"github.com/cormoran/zmk-module-runtime-input-processor/schedule"
	"github.com/cormoran/zmk-module-runtime-input-processor/store"
	"go.uber.org/zap"
)

const defaultSaveDebounce = 500 * time.Millisecond

// Instance is one configured pipeline: an immutable [pipeline.Config], a
// mutable [pipeline.State], and the collaborators (binding registry,
// keymap controller, settings store, deferred-work executor, observer)
// that sequencing and the control surface reach into. Mu serializes all
// access to an Instance: Process, every control-surface method, and the
// deferred-work callbacks each take Mu themselves, so callers must not
// hold Mu when calling them.
type Instance struct {
	Mu sync.Mutex

	cfg   pipeline.Config
	state *pipeline.State

	registry binding.Registry
	keymapC  keymap.Controller
	settings store.Store
	logger   *zap.SugaredLogger
	obs      observer.Observer

	saveDebounce *schedule.Debouncer
	actHandle    *schedule.Handle
	deactHandle  *schedule.Handle
}

// Option configures an Instance at construction time.
type Option func(*Instance)

// WithRegistry sets the binding registry collaborator.
func WithRegistry(reg binding.Registry) Option {
	return func(inst *Instance) { inst.registry = reg }
}

// WithKeymap sets the keymap layer collaborator.
func WithKeymap(ctrl keymap.Controller) Option {
	return func(inst *Instance) { inst.keymapC = ctrl }
}

// WithStore sets the settings-store collaborator.
func WithStore(s store.Store) Option {
	return func(inst *Instance) { inst.settings = s }
}

// WithObserver sets the configuration-change observer.
func WithObserver(obs observer.Observer) Option {
	return func(inst *Instance) { inst.obs = obs }
}

// WithLogger sets the structured logger; the default is zap's no-op
// logger, matching a freshly-built test Instance emitting nothing.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(inst *Instance) { inst.logger = logger }
}

// New builds an Instance from cfg, loads any persisted settings over
// cfg.Initial, and arms its deferred-work handles on ex. A missing record
// is skipped silently; a load error or a rejected (size-mismatching)
// record is logged. In every one of these cases the instance keeps
// cfg.Initial.
func New(ctx context.Context, cfg pipeline.Config, ex *schedule.Executor, opts ...Option) *Instance {
	inst := &Instance{
		cfg:      pipeline.NewConfig(cfg),
		registry: binding.NewTableRegistry(),
		keymapC:  keymap.NewTableController(1),
		settings: nil,
		obs:      observer.Noop{},
		logger:   zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(inst)
	}

	inst.state = pipeline.NewState(inst.cfg)
	inst.loadPersisted()

	inst.saveDebounce = schedule.NewDebouncer(ex, "save:"+inst.cfg.Name, defaultSaveDebounce, inst.save)
	inst.actHandle = ex.NewHandle("act:"+inst.cfg.Name, inst.onActivate)
	inst.deactHandle = ex.NewHandle("deact:"+inst.cfg.Name, inst.onDeactivate)

	return inst
}

// Name returns the instance's stable identifier.
func (inst *Instance) Name() string {
	return inst.cfg.Name
}

func (inst *Instance) settingsKey() string {
	return "input_proc/" + inst.cfg.Name
}

// loadPersisted loads the instance's persisted blob, if any, over
// cfg.Initial.
func (inst *Instance) loadPersisted() {
	if inst.settings == nil {
		return
	}

	data, found, err := inst.settings.Load(inst.settingsKey())
	if err != nil {
		inst.logger.Warnw("settings load failed, keeping defaults", "instance", inst.cfg.Name, "error", err)

		return
	}

	if !found {
		return
	}

	var codec store.Codec

	tun, err := codec.Decode(data)
	if err != nil {
		inst.logger.Warnw("settings record rejected, keeping defaults", "instance", inst.cfg.Name, "error", err)

		return
	}

	inst.state.Current = tun
	inst.state.Persistent = tun
	inst.state.RecomputeRotation()
}

// save encodes and persists the instance's persistent tunables. It runs
// later, on the executor, after the save debounce elapses. Failures are
// logged only: they are not returned to the setter that scheduled the
// save, and the in-memory change is not rolled back.
func (inst *Instance) save() {
	if inst.settings == nil {
		return
	}

	inst.Mu.Lock()
	var codec store.Codec
	data, err := codec.Encode(inst.state.Persistent)
	inst.Mu.Unlock()

	if err != nil {
		inst.logger.Warnw("settings encode failed", "instance", inst.cfg.Name, "error", err)

		return
	}

	if err := inst.settings.Save(inst.settingsKey(), data); err != nil {
		inst.logger.Warnw("settings save failed", "instance", inst.cfg.Name, "error", err)
	}
}

// notify publishes the instance's current public config to the
// observer collaborator, per spec §6's observer event.
func (inst *Instance) notify() {
	inst.obs.Notify(inst.cfg.Name, inst.publicConfigLocked())
}

func (inst *Instance) publicConfigLocked() observer.PublicConfig {
	tun := inst.state.Current

	return observer.PublicConfig{
		ScaleMul:            tun.ScaleMul,
		ScaleDiv:            tun.ScaleDiv,
		RotationDeg:         tun.RotationDeg,
		TempLayerEnabled:    tun.TempLayer.Enabled,
		TempLayerLayer:      tun.TempLayer.Layer,
		TempLayerActMs:      tun.TempLayer.ActMs,
		TempLayerDeactMs:    tun.TempLayer.DeactMs,
		ActiveLayers:        tun.ActiveLayers,
		AxisSnapMode:        uint8(tun.AxisSnap.Mode),
		AxisSnapThreshold:   tun.AxisSnap.Threshold,
		AxisSnapTimeoutMs:   tun.AxisSnap.TimeoutMs,
		XYToScroll:          tun.XYToScroll,
		XYSwap:              tun.XYSwap,
		XInvert:             tun.XInvert,
		YInvert:             tun.YInvert,
		KeybindEnabled:      tun.KeybindEnabled,
		KeybindCount:        tun.KeybindCount,
		KeybindDegreeOffset: tun.KeybindDegreeOffset,
		KeybindTick:         tun.KeybindTick,
	}
}

// GetConfig implements spec §4.7's get_config(&name, &cfg): it returns
// the instance's name and a read-only view of its current tunables.
func (inst *Instance) GetConfig() (string, observer.PublicConfig) {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	return inst.cfg.Name, inst.publicConfigLocked()
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}

func invalidArg(op string, msg string) error {
	return inputproc.NewError(inputproc.InvalidArgument, op, fmt.Errorf("%s", msg))
}
