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
	"github.com/stretchr/testify/require"
)

func tempLayerConfig() pipeline.Config {
	cfg := baseConfig("trackpoint")
	cfg.Initial.TempLayer = pipeline.TempLayerConfig{
		Enabled: true,
		Layer:   3,
		ActMs:   10,
		DeactMs: 60,
	}

	return cfg
}

func TestTempLayerAutoOffScenario(t *testing.T) {
	t.Parallel()

	ctrl := keymap.NewTableController(4)
	inst := processor.New(context.Background(), tempLayerConfig(), newTestExecutor(t), processor.WithKeymap(ctrl))

	_, forward := inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 5})
	require.True(t, forward)

	require.Eventually(t, func() bool {
		return ctrl.Active(3)
	}, time.Second, 2*time.Millisecond, "temp layer never activated")

	require.Eventually(t, func() bool {
		return !ctrl.Active(3)
	}, time.Second, 2*time.Millisecond, "temp layer never auto-deactivated after the quiet window")
}

func TestTempLayerKeepActiveSuppressesAutoOff(t *testing.T) {
	t.Parallel()

	ctrl := keymap.NewTableController(4)
	inst := processor.New(context.Background(), tempLayerConfig(), newTestExecutor(t), processor.WithKeymap(ctrl))

	_, _ = inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 5})

	require.Eventually(t, func() bool {
		return ctrl.Active(3)
	}, time.Second, 2*time.Millisecond, "temp layer never activated")

	require.NoError(t, inst.TempLayerKeepActive(true))

	time.Sleep(150 * time.Millisecond)
	require.True(t, ctrl.Active(3), "keep_active must suppress the deactivation timer")

	require.NoError(t, inst.TempLayerKeepActive(false))

	require.Eventually(t, func() bool {
		return !ctrl.Active(3)
	}, time.Second, 2*time.Millisecond, "clearing keep_active must deactivate immediately")
}

func TestOnKeyPressTearsDownUnkeptLayer(t *testing.T) {
	t.Parallel()

	ctrl := keymap.NewTableController(4)
	inst := processor.New(context.Background(), tempLayerConfig(), newTestExecutor(t), processor.WithKeymap(ctrl))

	_, _ = inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 5})

	require.Eventually(t, func() bool {
		return ctrl.Active(3)
	}, time.Second, 2*time.Millisecond, "temp layer never activated")

	inst.OnKeyPress(binding.Position{Row: 1, Col: 1})

	require.Eventually(t, func() bool {
		return !ctrl.Active(3)
	}, time.Second, 2*time.Millisecond, "an unbound, non-modifier key press must tear down the temp layer immediately")
}

func TestOnKeyPressKeepsLayerForBoundBinding(t *testing.T) {
	t.Parallel()

	ctrl := keymap.NewTableController(4)
	pos := binding.Position{Row: 2, Col: 2}
	ctrl.Bind(3, pos, binding.NewHandler("SOME_BEHAVIOR", func(binding.InvokeContext, bool) error { return nil }))

	inst := processor.New(context.Background(), tempLayerConfig(), newTestExecutor(t), processor.WithKeymap(ctrl))

	_, _ = inst.Process(inputproc.Event{Type: evcode.EVRel, Code: evcode.RelX, Value: 5})

	require.Eventually(t, func() bool {
		return ctrl.Active(3)
	}, time.Second, 2*time.Millisecond, "temp layer never activated")

	inst.OnKeyPress(pos)

	time.Sleep(100 * time.Millisecond)
	require.True(t, ctrl.Active(3), "a non-transparent binding at the temp layer itself keeps it locked")
}
