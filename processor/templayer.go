package processor

import (
	"time"

	"github.com/cormoran/zmk-module-runtime-input-processor/binding"
	"github.com/cormoran/zmk-module-runtime-input-processor/evcode"
	"github.com/cormoran/zmk-module-runtime-input-processor/keymap"
	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
)

// tickleTempLayer implements spec §4.3's Idle → PendingActivation
// transition: a non-zero-value pointer event, seen while idle and
// outside the "cool-down" window since the last foreign keypress,
// schedules an (effectively immediate) activation.
func (inst *Instance) tickleTempLayer(tun pipeline.Tunables, now int64, value int16) {
	if !tun.TempLayer.Enabled || value == 0 {
		return
	}

	inst.state.LastInputTs = now

	if inst.state.TempLayerActive {
		return
	}

	cooledDown := inst.state.LastKeypressTs == 0 || now-inst.state.LastKeypressTs >= int64(tun.TempLayer.ActMs)
	if !cooledDown {
		return
	}

	if err := inst.actHandle.Reschedule(0); err != nil {
		inst.logger.Warnw("temp-layer activation schedule failed", "instance", inst.cfg.Name, "error", err)
	}
}

// onActivate runs on the scheduler's callback, per the PendingActivation
// → Active transition. It re-checks invariants on entry so a foreign
// keypress that raced the scheduling window (and updated
// last_keypress_ts) cancels the effect.
func (inst *Instance) onActivate() {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	tun := inst.state.Current
	if !tun.TempLayer.Enabled || inst.state.TempLayerActive {
		return
	}

	now := nowMs()
	if inst.state.LastKeypressTs != 0 && now-inst.state.LastKeypressTs < int64(tun.TempLayer.ActMs) {
		return
	}

	if err := inst.keymapC.Activate(tun.TempLayer.Layer); err != nil {
		inst.logger.Warnw("temp-layer activation failed", "instance", inst.cfg.Name, "layer", tun.TempLayer.Layer, "error", err)

		return
	}

	inst.state.TempLayerActive = true

	if !inst.state.TempLayerKeepActive {
		if err := inst.deactHandle.Reschedule(time.Duration(tun.TempLayer.DeactMs) * time.Millisecond); err != nil {
			inst.logger.Warnw("temp-layer deactivation schedule failed", "instance", inst.cfg.Name, "error", err)
		}
	}
}

// rescheduleTempLayerDeactivation implements the Active state's "every
// qualifying pointer event reschedules deactivation" rule, run after
// every other pipeline stage (spec §4.1 step 11).
func (inst *Instance) rescheduleTempLayerDeactivation(tun pipeline.Tunables, _ int64) {
	if !tun.TempLayer.Enabled || !inst.state.TempLayerActive || inst.state.TempLayerKeepActive {
		return
	}

	if err := inst.deactHandle.Reschedule(time.Duration(tun.TempLayer.DeactMs) * time.Millisecond); err != nil {
		inst.logger.Warnw("temp-layer deactivation reschedule failed", "instance", inst.cfg.Name, "error", err)
	}
}

// onDeactivate runs on the scheduler's callback, per the
// (Pending)Deactivation → Idle transition. It re-checks invariants on
// entry, same as onActivate.
func (inst *Instance) onDeactivate() {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	if !inst.state.TempLayerActive || inst.state.TempLayerKeepActive {
		return
	}

	tun := inst.state.Current
	if err := inst.keymapC.Deactivate(tun.TempLayer.Layer); err != nil {
		inst.logger.Warnw("temp-layer deactivation failed", "instance", inst.cfg.Name, "layer", tun.TempLayer.Layer, "error", err)

		return
	}

	inst.state.TempLayerActive = false
}

// OnKeyPress implements the key-press tear-down policy of spec §4.3:
// called by the host's keycode/position listener whenever a physical
// key is pressed, for every instance, regardless of which instance (if
// any) currently has its temp layer active. The binding actually
// pressed is resolved from pos via the keymap collaborator, not passed
// in directly (see the key-press tear-down policy's steps 2-4).
func (inst *Instance) OnKeyPress(pos binding.Position) {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.state.LastKeypressTs = nowMs()

	tun := inst.state.Current
	if !tun.TempLayer.Enabled || !inst.state.TempLayerActive || inst.state.TempLayerKeepActive {
		return
	}

	if inst.keepsLayerLocked(tun, pos) {
		return
	}

	inst.deactHandle.Cancel()

	if err := inst.keymapC.Deactivate(tun.TempLayer.Layer); err != nil {
		inst.logger.Warnw("temp-layer teardown deactivation failed", "instance", inst.cfg.Name, "layer", tun.TempLayer.Layer, "error", err)
	}

	inst.state.TempLayerActive = false
}

// keepsLayerLocked implements steps 2-4 of the key-press tear-down
// policy: the layer is kept exactly when either the temp layer itself
// defines a non-transparent binding at pos, or the binding resolved by
// scanning downward from the highest active layer is the key-press
// behavior for a modifier (or explicitly keep-listed) usage.
func (inst *Instance) keepsLayerLocked(tun pipeline.Tunables, pos binding.Position) bool {
	if h, ok := inst.keymapC.BindingAt(tun.TempLayer.Layer, pos); ok && !inst.cfg.IsTransparent(h) {
		return true
	}

	resolved, found := keymap.ResolveFromHighest(inst.keymapC, inst.keymapC.HighestActive(), pos, inst.cfg.IsTransparent)
	if !found || !inst.cfg.IsKeyPress(resolved) {
		return false
	}

	usagePage, usageID := resolved.Param()

	// KeyboardUsagePage is 0, so this equality check doubles as spec
	// §4.3 step 4's "page 0 means keyboard" coercion. If that constant
	// ever stops being 0, this needs an explicit page-0 branch.
	if usagePage != evcode.KeyboardUsagePage {
		return false
	}

	if len(inst.cfg.TempLayerKeepKeycodes) > 0 {
		return inst.cfg.TempLayerKeepKeycodes[usageID]
	}

	return evcode.IsModifier(usagePage, usageID)
}
