package store_test

import (
	"testing"

	"github.com/cormoran/zmk-module-runtime-input-processor/inputproc"
	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
	"github.com/cormoran/zmk-module-runtime-input-processor/store"
	"github.com/stretchr/testify/require"
)

func sampleTunables() pipeline.Tunables {
	return pipeline.Tunables{
		ScaleMul:    7,
		ScaleDiv:    4,
		RotationDeg: -90,
		TempLayer: pipeline.TempLayerConfig{
			Enabled: true,
			Layer:   3,
			ActMs:   100,
			DeactMs: 500,
		},
		ActiveLayers: 0b1010,
		AxisSnap: pipeline.AxisSnapConfig{
			Mode:      inputproc.AxisSnapX,
			Threshold: 100,
			TimeoutMs: 1000,
		},
		XYToScroll:          false,
		XYSwap:              true,
		XInvert:             true,
		YInvert:             false,
		KeybindEnabled:      true,
		KeybindCount:        4,
		KeybindDegreeOffset: 45,
		KeybindTick:         10,
	}
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	var codec store.Codec

	want := sampleTunables()

	encoded, err := codec.Encode(want)
	require.NoError(t, err)

	got, err := codec.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCodecRejectsWrongSize(t *testing.T) {
	t.Parallel()

	var codec store.Codec

	_, err := codec.Decode([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestFSStoreSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	s := store.NewFSStore("inputproc-test")

	var codec store.Codec

	want := sampleTunables()

	encoded, err := codec.Encode(want)
	require.NoError(t, err)

	require.NoError(t, s.Save("input_proc/trackball", encoded))

	data, found, err := s.Load("input_proc/trackball")
	require.NoError(t, err)
	require.True(t, found)

	got, err := codec.Decode(data)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFSStoreLoadMissingKey(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	s := store.NewFSStore("inputproc-test")

	_, found, err := s.Load("input_proc/does-not-exist")
	require.NoError(t, err)
	require.False(t, found)
}
