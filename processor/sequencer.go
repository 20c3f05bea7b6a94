package processor

import (
	"github.com/cormoran/zmk-module-runtime-input-processor/inputproc"
	"github.com/cormoran/zmk-module-runtime-input-processor/keymap"
	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
)

// Process runs ev through the full pipeline sequence of spec §4.1, with
// early-exit at the first matching rule. forward is false exactly when
// the keybind dispatcher consumed the event (§4.2); in that case out is
// the zero Event and must not be emitted downstream.
func (inst *Instance) Process(ev inputproc.Event) (out inputproc.Event, forward bool) {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	if ev.Type != inst.cfg.EventType {
		return ev, true
	}

	isX, isY := inst.cfg.Classify(ev.Code)
	if !isX && !isY {
		return ev, true
	}

	tun := inst.state.Current

	if !keymap.AnyLayerActive(inst.keymapC, tun.ActiveLayers) {
		return ev, true
	}

	if inst.dispatchKeybind(tun, isX, ev.Value) {
		return inputproc.Event{}, false
	}

	now := nowMs()
	code := pipeline.RemapCode(inst.cfg, tun, ev.Code, isX)

	inst.tickleTempLayer(tun, now, ev.Value)

	value := ev.Value
	if tun.RotationDeg != 0 {
		value = pipeline.Rotate(inst.state, isX, value)
	}

	value = pipeline.Invert(tun, isX, value)
	value = pipeline.Snap(inst.state, tun, now, isX, value)

	remainder := &inst.state.ScaleRemainderX
	if !isX {
		remainder = &inst.state.ScaleRemainderY
	}

	value = pipeline.Scale(tun, remainder, value)

	inst.rescheduleTempLayerDeactivation(tun, now)

	return inputproc.Event{Type: ev.Type, Code: code, Value: value}, true
}
