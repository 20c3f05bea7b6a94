// Package store implements the persisted-blob codec and the external
// key/value settings backend collaborator (spec §6): a fixed-layout
// encode/decode pair plus a [Store] interface with a file-backed
// reference implementation for local simulation and the CLI.
package store

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cormoran/zmk-module-runtime-input-processor/inputproc"
	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
)

// blobSize is the exact on-disk size of an encoded [pipeline.Tunables]:
// the sum of every field's stated width in spec §6, in field order. A
// decoded record of any other size is rejected outright ("a
// size-mismatching record is rejected, kept defaults").
const blobSize = 4 + 4 + 4 + // scale_mul, scale_div, rotation_deg
	1 + 1 + 2 + 2 + // temp_layer_enabled, temp_layer_layer, act_ms, deact_ms
	4 + // active_layers
	1 + 2 + 2 + // axis_snap mode, threshold, timeout_ms
	1 + 1 + 1 + 1 + // xy_to_scroll, xy_swap, x_invert, y_invert
	1 + 1 + 2 + 2 // keybind_enabled, count, degree_offset, tick

// Codec encodes and decodes [pipeline.Tunables] against the fixed field
// layout spec §6 names, in order: scale_mul (u32), scale_div (u32),
// rotation_deg (i32), temp_layer_enabled (bool), temp_layer_layer (u8),
// temp_layer_act_ms (u16), temp_layer_deact_ms (u16), active_layers
// (u32), axis_snap_mode (u8), axis_snap_threshold (u16),
// axis_snap_timeout_ms (u16), xy_to_scroll (bool), xy_swap (bool),
// x_invert (bool), y_invert (bool), keybind_enabled (bool),
// keybind_count (u8), keybind_degree_offset (u16), keybind_tick (u16).
//
// The layout is a wire format with a kernel-style fixed byte order, not
// a general-purpose serialization need, so it is encoded field-by-field
// with encoding/binary rather than through a third-party serializer —
// the same choice the teacher library makes for struct input_event and
// its ioctl request structures.
type Codec struct{}

// Encode serializes tun into its exact on-disk blob.
func (Codec) Encode(tun pipeline.Tunables) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(blobSize)

	fields := []any{
		tun.ScaleMul,
		tun.ScaleDiv,
		tun.RotationDeg,
		tun.TempLayer.Enabled,
		tun.TempLayer.Layer,
		tun.TempLayer.ActMs,
		tun.TempLayer.DeactMs,
		tun.ActiveLayers,
		uint8(tun.AxisSnap.Mode),
		tun.AxisSnap.Threshold,
		tun.AxisSnap.TimeoutMs,
		tun.XYToScroll,
		tun.XYSwap,
		tun.XInvert,
		tun.YInvert,
		tun.KeybindEnabled,
		tun.KeybindCount,
		tun.KeybindDegreeOffset,
		tun.KeybindTick,
	}

	for _, f := range fields {
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return nil, fmt.Errorf("store: encode: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// Decode parses data into a Tunables. A size-mismatching record returns
// an error and the caller keeps its current defaults, per spec §6.
func (Codec) Decode(data []byte) (pipeline.Tunables, error) {
	var tun pipeline.Tunables

	if len(data) != blobSize {
		return tun, fmt.Errorf("store: decode: record is %d bytes, want %d", len(data), blobSize)
	}

	r := bytes.NewReader(data)

	var mode uint8

	fields := []any{
		&tun.ScaleMul,
		&tun.ScaleDiv,
		&tun.RotationDeg,
		&tun.TempLayer.Enabled,
		&tun.TempLayer.Layer,
		&tun.TempLayer.ActMs,
		&tun.TempLayer.DeactMs,
		&tun.ActiveLayers,
		&mode,
		&tun.AxisSnap.Threshold,
		&tun.AxisSnap.TimeoutMs,
		&tun.XYToScroll,
		&tun.XYSwap,
		&tun.XInvert,
		&tun.YInvert,
		&tun.KeybindEnabled,
		&tun.KeybindCount,
		&tun.KeybindDegreeOffset,
		&tun.KeybindTick,
	}

	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return pipeline.Tunables{}, fmt.Errorf("store: decode: %w", err)
		}
	}

	tun.AxisSnap.Mode = inputproc.AxisSnapMode(mode)

	return tun, nil
}
