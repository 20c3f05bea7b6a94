package processor

import (
	"math"

	"github.com/cormoran/zmk-module-runtime-input-processor/binding"
	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
)

// dispatchKeybind implements spec §4.2. It returns true when the event
// is consumed by the keybind stage (fired or not — "whether fired or
// not, while enabled the event is consumed"); false means keybind is
// disabled for this instance and the caller should continue the
// pipeline.
func (inst *Instance) dispatchKeybind(tun pipeline.Tunables, isX bool, value int16) bool {
	count := inst.cfg.EffectiveKeybindCount(tun.KeybindCount)
	enabled := tun.KeybindEnabled && count > 0 && len(inst.cfg.KeybindBehaviors) > 0

	if !enabled {
		return false
	}

	if isX {
		inst.state.KeybindXAccum += int32(value)
	} else {
		inst.state.KeybindYAccum += int32(value)
	}

	x, y := int64(inst.state.KeybindXAccum), int64(inst.state.KeybindYAccum)
	tick := int64(tun.KeybindTick)

	if x*x+y*y >= tick*tick {
		inst.fireKeybind(count, tun.KeybindDegreeOffset, x, y)
	}

	return true
}

// fireKeybind resolves the direction index per §4.2 steps 1-3 and
// invokes the matching binding's press then release.
//
// degreeOffset rotates the whole segment frame, not the measured angle:
// it is subtracted from theta (not added) so that, e.g. with count=4
// and degreeOffset=45, the diagonal (10,10) (theta=45°) lands exactly
// on direction 0's center instead of spilling into direction 1 — the
// property spec §8 states for that offset. With degreeOffset=0 this
// reduces to the plain centered-segment scan §4.2 and scenario 3 (offset
// 0) both agree on.
func (inst *Instance) fireKeybind(count uint8, degreeOffset uint16, x, y int64) {
	idx := 0

	if count > 1 {
		theta := math.Atan2(float64(y), float64(x)) * 180 / math.Pi
		if theta < 0 {
			theta += 360
		}

		thetaPrime := math.Mod(theta-float64(degreeOffset)+360, 360)
		segment := 360.0 / float64(count)
		idx = int(math.Floor((thetaPrime+segment/2)/segment)) % int(count)
	}

	name := inst.cfg.KeybindBehaviors[idx]

	h, ok := inst.registry.Lookup(name)
	if !ok {
		inst.logger.Warnw("keybind direction has no bound behavior", "instance", inst.cfg.Name, "direction", idx, "behavior", name)
		inst.state.ResetKeybind()

		return
	}

	ctx := binding.InvokeContext{
		Layer:     inst.keymapC.HighestActive(),
		Position:  binding.SentinelPosition,
		Timestamp: nowMs(),
	}

	if err := inst.registry.Invoke(h, ctx, true); err != nil {
		inst.logger.Warnw("keybind press invocation failed", "instance", inst.cfg.Name, "behavior", name, "error", err)
	}

	if err := inst.registry.Invoke(h, ctx, false); err != nil {
		inst.logger.Warnw("keybind release invocation failed", "instance", inst.cfg.Name, "behavior", name, "error", err)
	}

	inst.state.ResetKeybind()
}
