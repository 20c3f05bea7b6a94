// Package devkit loads instance configurations from a YAML fixture: the
// role the device-tree / configuration loader external collaborator
// (spec §1's "out of scope" list) plays in real firmware, reproduced
// here for local simulation and for cmd/inputprocctl.
package devkit

import (
	"fmt"
	"os"

	"github.com/cormoran/zmk-module-runtime-input-processor/binding"
	"github.com/cormoran/zmk-module-runtime-input-processor/inputproc"
	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
	"gopkg.in/yaml.v3"
)

// File is the top-level shape of an instance-config YAML fixture.
type File struct {
	Instances []InstanceSpec `yaml:"instances"`
}

// InstanceSpec is one instance's YAML-declared configuration, mirroring
// spec §3's Instance Config table field-for-field.
type InstanceSpec struct {
	Name    string   `yaml:"name"`
	Type    uint16   `yaml:"event_type"`
	XCodes  []uint16 `yaml:"x_codes"`
	YCodes  []uint16 `yaml:"y_codes"`

	Scale struct {
		Mul uint32 `yaml:"mul"`
		Div uint32 `yaml:"div"`
	} `yaml:"scale"`

	RotationDeg int32 `yaml:"rotation_deg"`

	TempLayer struct {
		Enabled bool   `yaml:"enabled"`
		Layer   uint8  `yaml:"layer"`
		ActMs   uint16 `yaml:"act_ms"`
		DeactMs uint16 `yaml:"deact_ms"`
	} `yaml:"temp_layer"`

	ActiveLayers uint32 `yaml:"active_layers"`

	AxisSnap struct {
		Mode      string `yaml:"mode"`
		Threshold uint16 `yaml:"threshold"`
		TimeoutMs uint16 `yaml:"timeout_ms"`
	} `yaml:"axis_snap"`

	XYToScroll bool `yaml:"xy_to_scroll"`
	XYSwap     bool `yaml:"xy_swap"`
	XInvert    bool `yaml:"x_invert"`
	YInvert    bool `yaml:"y_invert"`

	Keybind struct {
		Enabled      bool   `yaml:"enabled"`
		Count        uint8  `yaml:"count"`
		DegreeOffset uint16 `yaml:"degree_offset"`
		Tick         uint16 `yaml:"tick"`
	} `yaml:"keybind"`

	KeybindBehaviors      []string `yaml:"keybind_behaviors"`
	TransparentBehavior   string   `yaml:"transparent_behavior"`
	KPBehavior            string   `yaml:"kp_behavior"`
	TempLayerKeepKeycodes []uint16 `yaml:"temp_layer_keep_keycodes"`
}

// LoadFile parses path and returns one [pipeline.Config] per declared
// instance, in file order. reg resolves each instance's
// transparent_behavior/kp_behavior name to a concrete, comparable
// [binding.Handler] (spec §9's "behavior identity" design note); pass
// nil to skip resolution and fall back to IsTransparent/IsKeyPress's
// name-based match.
func LoadFile(path string, reg binding.Registry) ([]pipeline.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("devkit: read %q: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("devkit: parse %q: %w", path, err)
	}

	configs := make([]pipeline.Config, 0, len(file.Instances))

	for _, spec := range file.Instances {
		cfg, err := spec.toConfig(reg)
		if err != nil {
			return nil, fmt.Errorf("devkit: instance %q: %w", spec.Name, err)
		}

		configs = append(configs, cfg)
	}

	return configs, nil
}

func (spec InstanceSpec) toConfig(reg binding.Registry) (pipeline.Config, error) {
	mode, err := parseAxisSnapMode(spec.AxisSnap.Mode)
	if err != nil {
		return pipeline.Config{}, err
	}

	cfg := pipeline.Config{
		Name:      spec.Name,
		EventType: spec.Type,
		XCodes:    spec.XCodes,
		YCodes:    spec.YCodes,
		Initial: pipeline.Tunables{
			ScaleMul:    spec.Scale.Mul,
			ScaleDiv:    spec.Scale.Div,
			RotationDeg: spec.RotationDeg,
			TempLayer: pipeline.TempLayerConfig{
				Enabled: spec.TempLayer.Enabled,
				Layer:   spec.TempLayer.Layer,
				ActMs:   spec.TempLayer.ActMs,
				DeactMs: spec.TempLayer.DeactMs,
			},
			ActiveLayers: spec.ActiveLayers,
			AxisSnap: pipeline.AxisSnapConfig{
				Mode:      mode,
				Threshold: spec.AxisSnap.Threshold,
				TimeoutMs: spec.AxisSnap.TimeoutMs,
			},
			XYToScroll:          spec.XYToScroll,
			XYSwap:              spec.XYSwap,
			XInvert:             spec.XInvert,
			YInvert:             spec.YInvert,
			KeybindEnabled:      spec.Keybind.Enabled,
			KeybindCount:        spec.Keybind.Count,
			KeybindDegreeOffset: spec.Keybind.DegreeOffset,
			KeybindTick:         spec.Keybind.Tick,
		},
		KeybindBehaviors:      spec.KeybindBehaviors,
		TempLayerKeepKeycodes: toKeycodeSet(spec.TempLayerKeepKeycodes),
	}

	if reg != nil {
		if h, ok := reg.Lookup(spec.TransparentBehavior); ok {
			cfg.TransparentBehavior = h
		}

		if h, ok := reg.Lookup(spec.KPBehavior); ok {
			cfg.KPBehavior = h
		}
	}

	return cfg, nil
}

func toKeycodeSet(codes []uint16) map[uint16]bool {
	if len(codes) == 0 {
		return nil
	}

	set := make(map[uint16]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}

	return set
}

// ParseAxisSnapMode parses the same axis_snap.mode strings the YAML
// loader accepts ("", "none", "snap_x", "snap_y"); it is exported so
// cmd/inputprocctl can accept the same vocabulary on the command line.
func ParseAxisSnapMode(s string) (inputproc.AxisSnapMode, error) {
	return parseAxisSnapMode(s)
}

func parseAxisSnapMode(s string) (inputproc.AxisSnapMode, error) {
	switch s {
	case "", "none":
		return inputproc.AxisSnapNone, nil
	case "snap_x":
		return inputproc.AxisSnapX, nil
	case "snap_y":
		return inputproc.AxisSnapY, nil
	default:
		return 0, fmt.Errorf("devkit: unknown axis_snap mode %q", s)
	}
}
