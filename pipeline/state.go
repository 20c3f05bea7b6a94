package pipeline

// State is an instance's mutable runtime state: the current/persistent
// tunable views plus every stage's accumulators. State is owned
// exclusively by its Instance; nothing outside that Instance mutates it (see
// the Config vs State separation design note). State is not safe for
// concurrent use.
type State struct {
	// Current is the tunables view that actually drives pipeline
	// behavior.
	Current Tunables

	// Persistent is the tunables view written to (and restored from)
	// the settings store.
	Persistent Tunables

	// Rotation carry: the most recently seen X/Y value, pending a
	// pairing partner, plus the precomputed fixed-point cos/sin for
	// Current.RotationDeg (scaled by 1000).
	LastX, LastY int32
	HasX, HasY   bool
	CosQ, SinQ   int32

	// Axis-snap accumulator and its last-decay timestamp (unix
	// milliseconds; zero means "never decayed").
	CrossAxisAccum int32
	LastDecayTs    int64

	// Scale remainder carry, one per axis, since X and Y deltas scale
	// independently.
	ScaleRemainderX int32
	ScaleRemainderY int32

	// Keybind accumulator.
	KeybindXAccum int32
	KeybindYAccum int32

	// Temp-layer controller flags and timestamps (unix milliseconds).
	TempLayerActive     bool
	TempLayerKeepActive bool
	LastInputTs         int64
	LastKeypressTs      int64
}

// NewState builds the initial State for a freshly created instance: both
// tunable views start at cfg.Initial, and the rotation fixed-point
// coefficients are precomputed for the initial rotation angle.
func NewState(cfg Config) *State {
	state := &State{
		Current:    cfg.Initial,
		Persistent: cfg.Initial,
	}
	state.RecomputeRotation()

	return state
}

// RecomputeRotation precomputes CosQ/SinQ for Current.RotationDeg.
// Callers (package processor's control surface and settings loader)
// call this whenever RotationDeg changes, never per event (see the
// fixed-point trig design note).
func (state *State) RecomputeRotation() {
	state.CosQ, state.SinQ = cosSinQ1000(state.Current.RotationDeg)
}

// ResetSnap clears the axis-snap cross-axis accumulator and its decay
// timestamp. Called when snap mode/threshold/timeout changes, and by
// restore_persistent.
func (state *State) ResetSnap() {
	state.CrossAxisAccum = 0
	state.LastDecayTs = 0
}

// ResetKeybind clears the keybind XY accumulator. Called when keybind
// enable/count changes, and by restore_persistent.
func (state *State) ResetKeybind() {
	state.KeybindXAccum = 0
	state.KeybindYAccum = 0
}
