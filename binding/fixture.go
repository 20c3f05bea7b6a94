package binding

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// fixtureFile is the on-disk shape of a TOML behavior-table fixture, used
// to stand up a [TableRegistry] for the CLI and for tests without a real
// firmware behavior driver.
type fixtureFile struct {
	Behavior []fixtureBehavior `toml:"behavior"`
}

type fixtureBehavior struct {
	// Name is the behavior's stable identifier, as referenced by an
	// instance Config's keybind_behaviors list or by a layer binding.
	Name string `toml:"name"`

	// Kind is one of "transparent", "key_press", or "action". A
	// "key_press" behavior's Page/ID populate Handler.Params.
	Kind string `toml:"kind"`

	Page uint16 `toml:"page"`
	ID   uint16 `toml:"id"`
}

// LoadTOML reads a behavior-table fixture from path and returns a
// populated [TableRegistry]. Each fixture entry's invocation is a no-op
// that always succeeds; callers that need to observe invocations should
// build Handlers directly with [NewHandler] / [NewKeyPressHandler]
// instead.
func LoadTOML(path string) (*TableRegistry, error) {
	var file fixtureFile

	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("binding.LoadTOML: %w", err)
	}

	reg := NewTableRegistry()

	for _, b := range file.Behavior {
		switch b.Kind {
		case "key_press":
			reg.Register(NewKeyPressHandler(b.Name, b.Page, b.ID, noopInvoke))
		default:
			reg.Register(NewHandler(b.Name, noopInvoke))
		}
	}

	return reg, nil
}

func noopInvoke(InvokeContext, bool) error {
	return nil
}
