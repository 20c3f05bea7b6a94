package pipeline

import "github.com/cormoran/zmk-module-runtime-input-processor/binding"

// Config is an instance's compile-time configuration: immutable after
// init, and safe to share by reference across goroutines since nothing
// ever mutates it (see the Config vs State separation design note).
type Config struct {
	// Name is the stable identifier used for registry lookup and as the
	// persistence key suffix ("input_proc/<name>").
	Name string

	// EventType is the event-kind tag this instance acts on (normally
	// evcode.EVRel); events of any other type pass through unchanged.
	EventType uint16

	// XCodes and YCodes are the ordered code lists classifying an event
	// as X or Y motion. The first list that contains a given code wins.
	XCodes []uint16
	YCodes []uint16

	// Initial is the Tunables state new instances (and reset()) start
	// from, before any persisted settings are loaded over it.
	Initial Tunables

	// KeybindBehaviors names up to eight bindings, one per keybind
	// direction, in direction-index order.
	KeybindBehaviors []string

	// TransparentBehavior and KPBehavior are identity tokens: a layer
	// binding is transparent (or is the key-press behavior) when it
	// compares equal to these, with a name-based fallback when unset
	// (see IsTransparent / IsKeyPress).
	TransparentBehavior binding.Handler
	KPBehavior          binding.Handler

	// TempLayerKeepKeycodes is the set of usage ids that do NOT trigger
	// temp-layer teardown on keypress. An empty set falls back to
	// evcode.IsModifier.
	TempLayerKeepKeycodes map[uint16]bool

	xCodeSet map[uint16]bool
	yCodeSet map[uint16]bool
}

// NewConfig builds a Config from cfg, precomputing the X/Y code lookup
// sets used by Classify. Callers should treat the returned Config as
// immutable.
func NewConfig(cfg Config) Config {
	cfg.xCodeSet = toSet(cfg.XCodes)
	cfg.yCodeSet = toSet(cfg.YCodes)

	return cfg
}

func toSet(codes []uint16) map[uint16]bool {
	set := make(map[uint16]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}

	return set
}

// Classify determines whether code is configured as an X axis, a Y
// axis, or neither, per §4.1 step 2. The X-code list is consulted
// first: a code listed in both would classify as X.
func (cfg Config) Classify(code uint16) (isX, isY bool) {
	if cfg.xCodeSet[code] {
		return true, false
	}

	if cfg.yCodeSet[code] {
		return false, true
	}

	return false, false
}

// EffectiveKeybindCount returns k = min(count, len(behaviors), 8).
func (cfg Config) EffectiveKeybindCount(count uint8) uint8 {
	k := int(count)
	if n := len(cfg.KeybindBehaviors); n < k {
		k = n
	}

	if k > 8 {
		k = 8
	}

	return uint8(k)
}

// IsTransparent reports whether h is the configured transparent binding,
// falling back to a case-insensitive "trans" name match when no
// transparent token is configured.
func (cfg Config) IsTransparent(h binding.Handler) bool {
	if !cfg.TransparentBehavior.IsZero() {
		return h == cfg.TransparentBehavior
	}

	return foldEquals(h.Name, "trans")
}

// IsKeyPress reports whether h is the configured key-press behavior,
// falling back to a case-insensitive "kp" name match when no key-press
// token is configured.
func (cfg Config) IsKeyPress(h binding.Handler) bool {
	if !cfg.KPBehavior.IsZero() {
		return h == cfg.KPBehavior
	}

	return foldEquals(h.Name, "kp")
}

func foldEquals(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}

		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}

		if ca != cb {
			return false
		}
	}

	return true
}
