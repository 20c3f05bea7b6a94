package processor_test

import (
	"context"
	"testing"
	"time"

	"github.com/cormoran/zmk-module-runtime-input-processor/binding"
	"github.com/cormoran/zmk-module-runtime-input-processor/evcode"
	"github.com/cormoran/zmk-module-runtime-input-processor/inputproc"
	"github.com/cormoran/zmk-module-runtime-input-processor/keymap"
	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
	"github.com/cormoran/zmk-module-runtime-input-processor/processor"
	"github.com/cormoran/zmk-module-runtime-input-processor/schedule"
	"github.com/cormoran/zmk-module-runtime-input-processor/store"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T) *schedule.Executor {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ex := schedule.NewExecutor(ctx)
	t.Cleanup(ex.Stop)

	return ex
}

func baseConfig(name string) pipeline.Config {
	return pipeline.Config{
		Name:      name,
		EventType: evcode.EVRel,
		XCodes:    []uint16{evcode.RelX},
		YCodes:    []uint16{evcode.RelY},
	}
}

func TestProcessScaleOnlyScenario(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("trackball")
	cfg.Initial.ScaleMul = 3
	cfg.Initial.ScaleDiv = 2

	inst := processor.New(context.Background(), cfg, newTestExecutor(t))

	out, forward := inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 3})
	require.True(t, forward)
	require.EqualValues(t, 4, out.Value)

	out, forward = inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 5})
	require.True(t, forward)
	require.EqualValues(t, 8, out.Value)
}

func TestProcessPassThroughUnknownCode(t *testing.T) {
	t.Parallel()

	inst := processor.New(context.Background(), baseConfig("trackball"), newTestExecutor(t))

	ev := inputproc.Event{Type: evcode.EVRel, Code: 0xFF, Value: 42}
	out, forward := inst.Process(ev)
	require.True(t, forward)
	require.Equal(t, ev, out)
}

func TestProcessPassThroughOtherType(t *testing.T) {
	t.Parallel()

	inst := processor.New(context.Background(), baseConfig("trackball"), newTestExecutor(t))

	ev := inputproc.Event{Type: evcode.EVKey, Code: evcode.RelX, Value: 1}
	out, forward := inst.Process(ev)
	require.True(t, forward)
	require.Equal(t, ev, out)
}

func TestProcessLayerGateBlocksInactiveLayers(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("trackball")
	cfg.Initial.ActiveLayers = 0b10 // bit 1 only

	ctrl := keymap.NewTableController(4)
	inst := processor.New(context.Background(), cfg, newTestExecutor(t), processor.WithKeymap(ctrl))

	ev := inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 7}
	out, forward := inst.Process(ev)
	require.True(t, forward)
	require.Equal(t, ev, out, "no active layer matches the mask, so the event passes through unmodified")

	require.NoError(t, ctrl.Activate(1))

	out, forward = inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 7})
	require.True(t, forward)
	require.EqualValues(t, 7, out.Value, "with an active matching layer the event reaches the (no-op) pipeline stages")
}

func TestProcessRotate90Scenario(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("trackball")
	cfg.Initial.RotationDeg = 90

	inst := processor.New(context.Background(), cfg, newTestExecutor(t))

	out, forward := inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 5})
	require.True(t, forward)
	require.EqualValues(t, 0, out.Value, "unpaired X emits 0 while awaiting its Y partner")

	out, forward = inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelY, Value: 7})
	require.True(t, forward)
	require.EqualValues(t, 5, out.Value)
}

func TestProcessKeybindFourWayScenario(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("trackball")
	cfg.KeybindBehaviors = []string{"up", "left", "down", "right"}
	cfg.Initial.KeybindEnabled = true
	cfg.Initial.KeybindCount = 4
	cfg.Initial.KeybindTick = 10

	reg := binding.NewTableRegistry()

	var fired []string

	for _, name := range cfg.KeybindBehaviors {
		name := name
		reg.Register(binding.NewHandler(name, func(ctx binding.InvokeContext, pressed bool) error {
			if pressed {
				fired = append(fired, name)
			}

			return nil
		}))
	}

	inst := processor.New(context.Background(), cfg, newTestExecutor(t), processor.WithRegistry(reg))

	_, forward := inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 6})
	require.False(t, forward, "keybind consumes the event even pre-threshold")

	_, forward = inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelY, Value: 8})
	require.False(t, forward)

	require.Equal(t, []string{"left"}, fired)
}

func TestProcessKeybindDegreeOffsetScenario(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("trackball")
	cfg.KeybindBehaviors = []string{"up", "left", "down", "right"}
	cfg.Initial.KeybindEnabled = true
	cfg.Initial.KeybindCount = 4
	cfg.Initial.KeybindDegreeOffset = 45
	cfg.Initial.KeybindTick = 14 // 14^2 = 196 < 200 = 10^2+10^2, but > 100 = 10^2+0^2

	reg := binding.NewTableRegistry()

	var fired []string

	for _, name := range cfg.KeybindBehaviors {
		name := name
		reg.Register(binding.NewHandler(name, func(ctx binding.InvokeContext, pressed bool) error {
			if pressed {
				fired = append(fired, name)
			}

			return nil
		}))
	}

	inst := processor.New(context.Background(), cfg, newTestExecutor(t), processor.WithRegistry(reg))

	_, forward := inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 10})
	require.False(t, forward)

	_, forward = inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelY, Value: 10})
	require.False(t, forward)

	require.Equal(t, []string{"up"}, fired, "(10,10) with a 45-degree offset must fire direction index 0")
}

func TestProcessAxisSnapReleaseScenario(t *testing.T) {
	t.Parallel()

	cfg := baseConfig("trackball")
	cfg.Initial.AxisSnap = pipeline.AxisSnapConfig{
		Mode:      inputproc.AxisSnapX,
		Threshold: 100,
		TimeoutMs: 1000,
	}

	inst := processor.New(context.Background(), cfg, newTestExecutor(t))

	for i := 0; i < 9; i++ {
		out, forward := inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelY, Value: 10})
		require.True(t, forward)
		require.EqualValuesf(t, 0, out.Value, "iteration %d should stay locked", i)
	}

	out, forward := inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelY, Value: 10})
	require.True(t, forward)
	require.EqualValues(t, 10, out.Value, "10th event reaches the threshold and unlocks")
}

func TestSetScalingValidation(t *testing.T) {
	t.Parallel()

	inst := processor.New(context.Background(), baseConfig("trackball"), newTestExecutor(t))

	require.Error(t, inst.SetScaling(0, 2, false))
	require.Error(t, inst.SetScaling(2, 0, false))
	require.NoError(t, inst.SetScaling(7, 4, false))

	_, view := inst.GetConfig()
	require.EqualValues(t, 7, view.ScaleMul)
	require.EqualValues(t, 4, view.ScaleDiv)
}

func TestSetKeybindCountValidation(t *testing.T) {
	t.Parallel()

	inst := processor.New(context.Background(), baseConfig("trackball"), newTestExecutor(t))

	require.Error(t, inst.SetKeybindCount(0, false))
	require.Error(t, inst.SetKeybindCount(9, false))
	require.NoError(t, inst.SetKeybindCount(4, false))
}

func TestSetKeybindDegreeOffsetValidation(t *testing.T) {
	t.Parallel()

	inst := processor.New(context.Background(), baseConfig("trackball"), newTestExecutor(t))

	require.Error(t, inst.SetKeybindDegreeOffset(360, false))
	require.NoError(t, inst.SetKeybindDegreeOffset(45, false))
}

func TestSetKeybindTickValidation(t *testing.T) {
	t.Parallel()

	inst := processor.New(context.Background(), baseConfig("trackball"), newTestExecutor(t))

	require.Error(t, inst.SetKeybindTick(0, false))
	require.NoError(t, inst.SetKeybindTick(10, false))
}

func TestRestorePersistentClearsAccumulatorsAndSyncsCurrent(t *testing.T) {
	t.Parallel()

	inst := processor.New(context.Background(), baseConfig("trackball"), newTestExecutor(t))

	require.NoError(t, inst.SetScaling(7, 4, true))
	require.NoError(t, inst.SetScaling(9, 5, false))

	_, before := inst.GetConfig()
	require.EqualValues(t, 9, before.ScaleMul)

	require.NoError(t, inst.RestorePersistent())

	_, after := inst.GetConfig()
	require.EqualValues(t, 7, after.ScaleMul)
	require.EqualValues(t, 4, after.ScaleDiv)
}

func TestPersistenceSurvivalScenario(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	fsStore := store.NewFSStore("inputproc-persistence-test")
	ex := newTestExecutor(t)

	inst := processor.New(context.Background(), baseConfig("trackball"), ex, processor.WithStore(fsStore))
	require.NoError(t, inst.SetScaling(7, 4, true))

	require.Eventually(t, func() bool {
		_, found, err := fsStore.Load("input_proc/trackball")

		return err == nil && found
	}, 2*time.Second, 10*time.Millisecond, "debounced save never landed")

	restarted := processor.New(context.Background(), baseConfig("trackball"), ex, processor.WithStore(fsStore))

	_, view := restarted.GetConfig()
	require.EqualValues(t, 7, view.ScaleMul)
	require.EqualValues(t, 4, view.ScaleDiv)
}
