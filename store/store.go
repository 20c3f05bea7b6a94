package store

// Store is the external, non-volatile key/value settings backend (spec
// §6). Save writes a whole record under a key; Load returns a whole
// record for a key on request. There is no load callback, and Store does
// no debouncing itself: package processor debounces its calls to Save.
// Save is expected to be
// durable by the time it returns; Load reports found == false for an
// absent key rather than an error, matching NotFound being a distinct
// [inputproc.ErrorKind] from IoFailure at the call site.
type Store interface {
	// Save persists data under key, overwriting any existing record.
	Save(key string, data []byte) error

	// Load retrieves the record stored under key. found is false when
	// no record exists for key; err is non-nil only for a genuine I/O
	// failure.
	Load(key string) (data []byte, found bool, err error)
}
