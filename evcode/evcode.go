// Package evcode carries the event-type, axis-code, and keycode constants
// the pipeline matches events against, plus the modifier-key predicate the
// temp-layer teardown policy consults. The numbering is adapted directly
// from the Linux evdev constants the input-device layer of the original
// library decoded (linux/input/eventCodes.go): EV_REL events on REL_X/REL_Y
// are exactly what a trackpad/trackball/pointing-stick driver reports, and
// KEY_* is the nearest retrievable analog for the "keycode" space the
// temp-layer keep-keycode set and key-press tear-down policy operate on.
package evcode

// Event-type tags (struct input_event.type).
const (
	// EVSyn is the synchronization event type, marking report boundaries.
	EVSyn uint16 = 0x00

	// EVKey is the event type for key and button press/release.
	EVKey uint16 = 0x01

	// EVRel is the event type for relative axis movement: the only type
	// the pipeline acts on.
	EVRel uint16 = 0x02

	// EVAbs is the event type for absolute axis position. Out of scope
	// for this pipeline (see spec Non-goals: absolute-position devices).
	EVAbs uint16 = 0x03
)

// Relative-axis codes (struct input_event.code when Type == EVRel).
const (
	// RelX is relative movement along the X axis.
	RelX uint16 = 0x00

	// RelY is relative movement along the Y axis.
	RelY uint16 = 0x01

	// RelHWheel is relative horizontal wheel movement: the code-remap
	// stage's xy_to_scroll target for X.
	RelHWheel uint16 = 0x06

	// RelWheel is relative vertical wheel movement: the code-remap
	// stage's xy_to_scroll target for Y.
	RelWheel uint16 = 0x08
)

// A representative subset of KEY_* codes: the alphanumeric block plus the
// modifier keys the temp-layer teardown policy's keep-keycode set and
// IsModifier predicate reason about. Values match Linux's evdev numbering
// exactly so a device-tree loader populating x_codes/y_codes/keep_keycodes
// with evdev constants needs no translation layer.
const (
	KeyReserved uint16 = 0
	KeyEsc      uint16 = 1

	KeyLeftCtrl  uint16 = 29
	KeyLeftShift uint16 = 42

	KeyRightShift uint16 = 54
	KeyLeftAlt    uint16 = 56
	KeySpace      uint16 = 57
	KeyCapsLock   uint16 = 58

	KeyRightCtrl uint16 = 97
	KeyRightAlt  uint16 = 100

	KeyLeftMeta  uint16 = 125
	KeyRightMeta uint16 = 126
)

// KeyboardUsagePage is the usage page identifier the temp-layer key-press
// tear-down policy assumes when a resolved binding's encoded usage carries page 0
// ("if page = 0, assume the keyboard usage page").
const KeyboardUsagePage uint16 = 0

// modifierIDs is the keyboard-usage-page set of modifier key codes
// consulted by IsModifier when an instance configures no explicit
// temp_layer_keep_keycodes.
var modifierIDs = map[uint16]bool{
	KeyLeftCtrl:   true,
	KeyLeftShift:  true,
	KeyLeftAlt:    true,
	KeyLeftMeta:   true,
	KeyRightCtrl:  true,
	KeyRightShift: true,
	KeyRightAlt:   true,
	KeyRightMeta:  true,
}

// IsModifier reports whether (page, id) identifies a modifier key on the
// keyboard usage page. Pages other than KeyboardUsagePage never match: the
// temp-layer teardown policy only ever treats keyboard-usage-page ids as
// candidate modifiers.
func IsModifier(page, id uint16) bool {
	if page != KeyboardUsagePage {
		return false
	}

	return modifierIDs[id]
}
