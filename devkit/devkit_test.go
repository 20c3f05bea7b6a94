package devkit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cormoran/zmk-module-runtime-input-processor/binding"
	"github.com/cormoran/zmk-module-runtime-input-processor/devkit"
	"github.com/cormoran/zmk-module-runtime-input-processor/evcode"
	"github.com/cormoran/zmk-module-runtime-input-processor/inputproc"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
instances:
  - name: trackball
    event_type: 2
    x_codes: [0]
    y_codes: [1]
    scale:
      mul: 3
      div: 2
    rotation_deg: 90
    temp_layer:
      enabled: true
      layer: 3
      act_ms: 100
      deact_ms: 500
    active_layers: 0
    axis_snap:
      mode: snap_x
      threshold: 100
      timeout_ms: 1000
    keybind:
      enabled: true
      count: 4
      degree_offset: 0
      tick: 10
    keybind_behaviors: [up, left, down, right]
    temp_layer_keep_keycodes: [29, 42]
`

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "instances.yaml")
	require.NoError(t, writeFile(path, fixtureYAML))

	configs, err := devkit.LoadFile(path, nil)
	require.NoError(t, err)
	require.Len(t, configs, 1)

	cfg := configs[0]
	require.Equal(t, "trackball", cfg.Name)
	require.EqualValues(t, evcode.EVRel, cfg.EventType)
	require.Equal(t, []uint16{evcode.RelX}, cfg.XCodes)
	require.EqualValues(t, 3, cfg.Initial.ScaleMul)
	require.EqualValues(t, 2, cfg.Initial.ScaleDiv)
	require.EqualValues(t, 90, cfg.Initial.RotationDeg)
	require.True(t, cfg.Initial.TempLayer.Enabled)
	require.EqualValues(t, 3, cfg.Initial.TempLayer.Layer)
	require.Equal(t, inputproc.AxisSnapX, cfg.Initial.AxisSnap.Mode)
	require.Equal(t, []string{"up", "left", "down", "right"}, cfg.KeybindBehaviors)
	require.True(t, cfg.TempLayerKeepKeycodes[29])
}

func TestLoadFileRejectsUnknownAxisSnapMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "instances.yaml")
	require.NoError(t, writeFile(path, "instances:\n  - name: x\n    axis_snap:\n      mode: bogus\n"))

	_, err := devkit.LoadFile(path, nil)
	require.Error(t, err)
}

func TestLoadFileResolvesBehaviorsFromRegistry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "instances.yaml")
	contents := "instances:\n  - name: trackpoint\n    transparent_behavior: TRANS\n    kp_behavior: KP_A\n"
	require.NoError(t, writeFile(path, contents))

	reg := binding.NewTableRegistry()
	trans := binding.NewHandler("TRANS", func(binding.InvokeContext, bool) error { return nil })
	kp := binding.NewKeyPressHandler("KP_A", 0, 30, func(binding.InvokeContext, bool) error { return nil })
	reg.Register(trans)
	reg.Register(kp)

	configs, err := devkit.LoadFile(path, reg)
	require.NoError(t, err)
	require.Len(t, configs, 1)

	cfg := configs[0]
	require.Equal(t, trans, cfg.TransparentBehavior)
	require.Equal(t, kp, cfg.KPBehavior)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
