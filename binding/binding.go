// Package binding models the keymap/behavior registry external
// collaborator: resolving a named binding to an invocable press/release
// handler, and invoking it. Production firmware supplies its own
// registry (backed by the real behavior driver table); [TableRegistry]
// is a reference, in-process implementation for the CLI and for tests.
package binding

import "fmt"

// Handler is an opaque, resolved binding. Two Handlers compare equal
// (==) exactly when they were resolved from the same underlying
// registration: Handler's invocation function is boxed behind a pointer
// so Handler itself stays a comparable value, letting a Config's
// transparent/kp identity tokens be compared against whatever a
// Registry.Lookup returns with plain ==, per the design note on
// behavior identity.
type Handler struct {
	// Name is the stable identifier this handler was resolved from.
	Name string

	// Params holds the first two encoded parameters of the binding.
	// Only meaningful for a "key-press" behavior, where Params[0] is
	// the HID usage page and Params[1] is the usage id the temp-layer
	// teardown policy inspects.
	Params [2]uint16

	impl *handlerImpl
}

type handlerImpl struct {
	invoke func(ctx InvokeContext, pressed bool) error
}

// IsZero reports whether h is the zero Handler (no binding resolved).
func (h Handler) IsZero() bool {
	return h.Name == "" && h.impl == nil
}

// Param returns the (page, id) pair a key-press behavior encodes in its
// first parameter.
func (h Handler) Param() (page, id uint16) {
	return h.Params[0], h.Params[1]
}

// InvokeContext carries the call-time parameters a binding invocation
// needs: the layer it was invoked from and the position it was invoked
// at, per the control-surface's "press, then release, ... with layer =
// highest active layer, position = a sentinel" rule.
type InvokeContext struct {
	Layer     uint8
	Position  Position
	Timestamp int64
}

// Position identifies a physical key location. Keybind dispatch invokes
// bindings at [SentinelPosition], since no physical key was pressed.
type Position struct {
	Row uint8
	Col uint8
}

// SentinelPosition is the position used when a binding is invoked by a
// synthetic gesture (keybind dispatch) rather than a real keypress.
var SentinelPosition = Position{Row: 0xFF, Col: 0xFF}

// Registry resolves binding names to [Handler]s and invokes them.
type Registry interface {
	// Lookup resolves name to a Handler. ok is false when name is
	// unknown.
	Lookup(name string) (h Handler, ok bool)

	// Invoke calls h's press (pressed == true) or release
	// (pressed == false) action.
	Invoke(h Handler, ctx InvokeContext, pressed bool) error
}

// NewHandler builds a Handler named name whose press/release invocations
// run fn.
func NewHandler(name string, fn func(ctx InvokeContext, pressed bool) error) Handler {
	return Handler{Name: name, impl: &handlerImpl{invoke: fn}}
}

// NewKeyPressHandler builds a Handler named name representing a
// "key-press" behavior that sends the HID usage (page, id) on press, with
// Params populated for the temp-layer teardown policy to inspect.
func NewKeyPressHandler(name string, page, id uint16, fn func(ctx InvokeContext, pressed bool) error) Handler {
	return Handler{Name: name, Params: [2]uint16{page, id}, impl: &handlerImpl{invoke: fn}}
}

// TableRegistry is a reference [Registry] backed by a name -> Handler
// map, loadable from a TOML behavior-table fixture via [LoadTOML]. It
// exists so the module is runnable and testable without a real firmware
// behavior driver wired in.
type TableRegistry struct {
	handlers map[string]Handler
}

// NewTableRegistry builds an empty TableRegistry.
func NewTableRegistry() *TableRegistry {
	return &TableRegistry{handlers: make(map[string]Handler)}
}

// Register adds or replaces the handler bound to name.
func (reg *TableRegistry) Register(h Handler) {
	reg.handlers[h.Name] = h
}

// Lookup implements [Registry].
func (reg *TableRegistry) Lookup(name string) (Handler, bool) {
	h, ok := reg.handlers[name]

	return h, ok
}

// Invoke implements [Registry]. It returns an error when h has no
// invocation function; otherwise it calls h's function and returns
// whatever that returns. ctx is passed through unchanged for a handler
// that wants to record it.
func (reg *TableRegistry) Invoke(h Handler, ctx InvokeContext, pressed bool) error {
	if h.impl == nil || h.impl.invoke == nil {
		return fmt.Errorf("binding: %q has no invocation function", h.Name)
	}

	return h.impl.invoke(ctx, pressed)
}
