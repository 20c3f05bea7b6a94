// Package keymap models the keymap layer external collaborator: which
// layers are active, activating/deactivating a layer, and resolving the
// binding at a (layer, position) pair. [TableController] is a reference,
// in-process implementation for the CLI and for tests; production
// firmware supplies its own, backed by the real keymap driver.
package keymap

import (
	"fmt"

	"github.com/cormoran/zmk-module-runtime-input-processor/binding"
	"github.com/cormoran/zmk-module-runtime-input-processor/evcode"
)

// Controller is the layer-activation and binding-resolution surface the
// pipeline's layer gate (is any selected layer active) and the
// temp-layer controller (activate/deactivate, key-press tear-down) call
// into.
type Controller interface {
	// Activate turns layer i on. Returns an error if the layer could
	// not be activated; the temp-layer controller reverts its
	// layer_active flag on failure.
	Activate(i uint8) error

	// Deactivate turns layer i off.
	Deactivate(i uint8) error

	// Active reports whether layer i is currently active. An
	// out-of-range i reports false rather than erroring, matching the
	// layer gate's "invalid indices are skipped" rule.
	Active(i uint8) bool

	// HighestActive returns the index of the highest active layer
	// (used as the keybind invocation's layer parameter).
	HighestActive() uint8

	// BindingAt resolves the binding at (layer, pos), scanning is the
	// caller's responsibility; BindingAt itself only looks at the one
	// named layer. ok is false when that layer defines no binding at
	// pos.
	BindingAt(layer uint8, pos binding.Position) (h binding.Handler, ok bool)
}

// AnyLayerActive implements the pipeline's layer gate: it reports true
// when mask is zero ("0 ≡ all layers", always gated-in) or when at least
// one bit set in mask corresponds to a currently active layer. Bit i
// corresponds to the i-th layer; bits beyond ctrl's layer count are
// simply never active, matching "invalid indices are skipped".
func AnyLayerActive(ctrl Controller, mask uint32) bool {
	if mask == 0 {
		return true
	}

	for i := 0; i < 32; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}

		if ctrl.Active(uint8(i)) {
			return true
		}
	}

	return false
}

// ResolveFromHighest scans active layers from highest index downward
// (per the key-press tear-down policy's step 3) and returns the first
// binding found that is not the transparent sentinel. maxLayer bounds
// the scan (inclusive).
func ResolveFromHighest(ctrl Controller, maxLayer uint8, pos binding.Position, isTransparent func(binding.Handler) bool) (binding.Handler, bool) {
	for layer := int(maxLayer); layer >= 0; layer-- {
		if !ctrl.Active(uint8(layer)) {
			continue
		}

		h, ok := ctrl.BindingAt(uint8(layer), pos)
		if !ok || isTransparent(h) {
			continue
		}

		return h, true
	}

	return binding.Handler{}, false
}

// TableController is a reference [Controller] backed by a fixed-size
// per-layer binding table.
type TableController struct {
	active   []bool
	bindings []map[binding.Position]binding.Handler
}

// NewTableController builds a TableController with layerCount layers, all
// initially inactive.
func NewTableController(layerCount uint8) *TableController {
	ctrl := &TableController{
		active:   make([]bool, layerCount),
		bindings: make([]map[binding.Position]binding.Handler, layerCount),
	}

	for i := range ctrl.bindings {
		ctrl.bindings[i] = make(map[binding.Position]binding.Handler)
	}

	return ctrl
}

// Bind registers h at (layer, pos).
func (ctrl *TableController) Bind(layer uint8, pos binding.Position, h binding.Handler) {
	ctrl.bindings[layer][pos] = h
}

// Activate implements [Controller].
func (ctrl *TableController) Activate(i uint8) error {
	if int(i) >= len(ctrl.active) {
		return fmt.Errorf("keymap: layer %d out of range", i)
	}

	ctrl.active[i] = true

	return nil
}

// Deactivate implements [Controller].
func (ctrl *TableController) Deactivate(i uint8) error {
	if int(i) >= len(ctrl.active) {
		return fmt.Errorf("keymap: layer %d out of range", i)
	}

	ctrl.active[i] = false

	return nil
}

// Active implements [Controller].
func (ctrl *TableController) Active(i uint8) bool {
	if int(i) >= len(ctrl.active) {
		return false
	}

	return ctrl.active[i]
}

// HighestActive implements [Controller].
func (ctrl *TableController) HighestActive() uint8 {
	for i := len(ctrl.active) - 1; i >= 0; i-- {
		if ctrl.active[i] {
			return uint8(i)
		}
	}

	return 0
}

// BindingAt implements [Controller].
func (ctrl *TableController) BindingAt(layer uint8, pos binding.Position) (binding.Handler, bool) {
	if int(layer) >= len(ctrl.bindings) {
		return binding.Handler{}, false
	}

	h, ok := ctrl.bindings[layer][pos]

	return h, ok
}

// IsModifier delegates to [evcode.IsModifier], the modifier check the
// temp-layer teardown policy falls back to when an instance configures
// no explicit temp_layer_keep_keycodes set.
func IsModifier(page, id uint16) bool {
	return evcode.IsModifier(page, id)
}
