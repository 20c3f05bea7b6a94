package processor

import (
	"fmt"

	"github.com/cormoran/zmk-module-runtime-input-processor/inputproc"
	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
)

// commit applies mutate to the current tunables, optionally mirrors the
// change to the persistent view, and — only on a persistent change —
// schedules a debounced save and raises the observer's state-changed
// event. This is every setter in spec §4.7's shared tail: "the current
// tunable always updates; if persistent, the matching persistent field
// updates and a debounced settings save is scheduled. Persistent
// changes also raise a state-changed observer event."
func (inst *Instance) commit(persistent bool, mutate func(tun *pipeline.Tunables)) {
	mutate(&inst.state.Current)

	if !persistent {
		return
	}

	mutate(&inst.state.Persistent)

	if err := inst.saveDebounce.Trigger(); err != nil {
		inst.logger.Warnw("settings save schedule failed", "instance", inst.cfg.Name, "error", err)
	}

	inst.notify()
}

// SetScaling implements set_scaling(mul, div).
func (inst *Instance) SetScaling(mul, div uint32, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	if mul == 0 {
		return invalidArg("SetScaling", "mul must be > 0")
	}

	if div == 0 {
		return invalidArg("SetScaling", "div must be > 0")
	}

	inst.commit(persistent, func(tun *pipeline.Tunables) {
		tun.ScaleMul = mul
		tun.ScaleDiv = div
	})

	return nil
}

// SetRotation implements set_rotation(deg).
func (inst *Instance) SetRotation(deg int32, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) {
		tun.RotationDeg = deg
	})
	inst.state.RecomputeRotation()

	return nil
}

// SetTempLayer implements set_temp_layer(enabled, layer, act, deact).
func (inst *Instance) SetTempLayer(enabled bool, layer uint8, actMs, deactMs uint16, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) {
		tun.TempLayer = pipeline.TempLayerConfig{Enabled: enabled, Layer: layer, ActMs: actMs, DeactMs: deactMs}
	})

	return nil
}

// SetTempLayerEnabled implements the enabled single-field variant.
func (inst *Instance) SetTempLayerEnabled(enabled bool, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.TempLayer.Enabled = enabled })

	return nil
}

// SetTempLayerLayer implements the layer single-field variant.
func (inst *Instance) SetTempLayerLayer(layer uint8, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.TempLayer.Layer = layer })

	return nil
}

// SetTempLayerActMs implements the act_ms single-field variant.
func (inst *Instance) SetTempLayerActMs(actMs uint16, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.TempLayer.ActMs = actMs })

	return nil
}

// SetTempLayerDeactMs implements the deact_ms single-field variant.
func (inst *Instance) SetTempLayerDeactMs(deactMs uint16, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.TempLayer.DeactMs = deactMs })

	return nil
}

// SetActiveLayers implements set_active_layers(mask).
func (inst *Instance) SetActiveLayers(mask uint32, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.ActiveLayers = mask })

	return nil
}

// SetAxisSnap implements set_axis_snap(mode, threshold, timeout). It
// resets the snap accumulator, per spec §3's "accumulators reset on
// relevant configuration changes (snap mode/threshold/timeout)".
func (inst *Instance) SetAxisSnap(mode inputproc.AxisSnapMode, threshold, timeoutMs uint16, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) {
		tun.AxisSnap = pipeline.AxisSnapConfig{Mode: mode, Threshold: threshold, TimeoutMs: timeoutMs}
	})
	inst.state.ResetSnap()

	return nil
}

// SetAxisSnapMode implements the mode single-field variant.
func (inst *Instance) SetAxisSnapMode(mode inputproc.AxisSnapMode, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.AxisSnap.Mode = mode })
	inst.state.ResetSnap()

	return nil
}

// SetAxisSnapThreshold implements the threshold single-field variant.
func (inst *Instance) SetAxisSnapThreshold(threshold uint16, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.AxisSnap.Threshold = threshold })
	inst.state.ResetSnap()

	return nil
}

// SetAxisSnapTimeoutMs implements the timeout single-field variant.
func (inst *Instance) SetAxisSnapTimeoutMs(timeoutMs uint16, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.AxisSnap.TimeoutMs = timeoutMs })
	inst.state.ResetSnap()

	return nil
}

// SetXYToScroll implements set_xy_to_scroll(bool).
func (inst *Instance) SetXYToScroll(enabled bool, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.XYToScroll = enabled })

	return nil
}

// SetXYSwap implements set_xy_swap(bool).
func (inst *Instance) SetXYSwap(enabled bool, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.XYSwap = enabled })

	return nil
}

// SetXInvert implements set_x_invert(bool).
func (inst *Instance) SetXInvert(enabled bool, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.XInvert = enabled })

	return nil
}

// SetYInvert implements set_y_invert(bool).
func (inst *Instance) SetYInvert(enabled bool, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.YInvert = enabled })

	return nil
}

// SetKeybindEnabled implements set_keybind_enabled(bool). It resets the
// keybind accumulator, per spec §3's "accumulators reset on ... keybind
// enable/count".
func (inst *Instance) SetKeybindEnabled(enabled bool, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.KeybindEnabled = enabled })
	inst.state.ResetKeybind()

	return nil
}

// SetKeybindCount implements set_keybind_count(1-8).
func (inst *Instance) SetKeybindCount(count uint8, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	if count < 1 || count > 8 {
		return invalidArg("SetKeybindCount", fmt.Sprintf("count %d out of range [1, 8]", count))
	}

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.KeybindCount = count })
	inst.state.ResetKeybind()

	return nil
}

// SetKeybindDegreeOffset implements set_keybind_degree_offset(0-359).
func (inst *Instance) SetKeybindDegreeOffset(degreeOffset uint16, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	if degreeOffset > 359 {
		return invalidArg("SetKeybindDegreeOffset", fmt.Sprintf("offset %d out of range [0, 359]", degreeOffset))
	}

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.KeybindDegreeOffset = degreeOffset })

	return nil
}

// SetKeybindTick implements set_keybind_tick(>0).
func (inst *Instance) SetKeybindTick(tick uint16, persistent bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	if tick == 0 {
		return invalidArg("SetKeybindTick", "tick must be > 0")
	}

	inst.commit(persistent, func(tun *pipeline.Tunables) { tun.KeybindTick = tick })

	return nil
}

// TempLayerKeepActive implements temp_layer_keep_active(bool). Clearing
// keep_active while the layer is still active schedules an immediate
// deactivation, per spec §4.3.
func (inst *Instance) TempLayerKeepActive(keep bool) error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	wasKept := inst.state.TempLayerKeepActive
	inst.state.TempLayerKeepActive = keep

	if wasKept && !keep && inst.state.TempLayerActive {
		if err := inst.deactHandle.Reschedule(0); err != nil {
			return inputproc.NewError(inputproc.IoFailure, "TempLayerKeepActive", err)
		}
	}

	return nil
}

// Reset implements reset(): restore all tunables to the Config's
// initial values and schedule a save.
func (inst *Instance) Reset() error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.commit(true, func(tun *pipeline.Tunables) { *tun = inst.cfg.Initial })
	inst.state.RecomputeRotation()
	inst.state.ResetSnap()
	inst.state.ResetKeybind()

	return nil
}

// RestorePersistent implements restore_persistent(): current ←
// persistent, and the snap and keybind accumulators are cleared.
func (inst *Instance) RestorePersistent() error {
	inst.Mu.Lock()
	defer inst.Mu.Unlock()

	inst.state.Current = inst.state.Persistent
	inst.state.RecomputeRotation()
	inst.state.ResetSnap()
	inst.state.ResetKeybind()

	return nil
}
