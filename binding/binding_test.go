package binding_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cormoran/zmk-module-runtime-input-processor/binding"
	"github.com/stretchr/testify/require"
)

func TestTableRegistryLookupAndInvoke(t *testing.T) {
	t.Parallel()

	var invoked []bool

	reg := binding.NewTableRegistry()
	reg.Register(binding.NewHandler("UP", func(_ binding.InvokeContext, pressed bool) error {
		invoked = append(invoked, pressed)

		return nil
	}))

	h, ok := reg.Lookup("UP")
	require.True(t, ok)

	require.NoError(t, reg.Invoke(h, binding.InvokeContext{}, true))
	require.NoError(t, reg.Invoke(h, binding.InvokeContext{}, false))
	require.Equal(t, []bool{true, false}, invoked)

	_, ok = reg.Lookup("MISSING")
	require.False(t, ok)
}

func TestTableRegistryInvokeFailure(t *testing.T) {
	t.Parallel()

	reg := binding.NewTableRegistry()
	wantErr := errors.New("boom")
	reg.Register(binding.NewHandler("BAD", func(binding.InvokeContext, bool) error {
		return wantErr
	}))

	h, _ := reg.Lookup("BAD")
	require.ErrorIs(t, reg.Invoke(h, binding.InvokeContext{}, true), wantErr)
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "behaviors.toml")
	contents := `
[[behavior]]
name = "TRANS"
kind = "transparent"

[[behavior]]
name = "KP_A"
kind = "key_press"
page = 0
id = 30
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	reg, err := binding.LoadTOML(path)
	require.NoError(t, err)

	kp, ok := reg.Lookup("KP_A")
	require.True(t, ok)

	page, id := kp.Param()
	require.Equal(t, uint16(0), page)
	require.Equal(t, uint16(30), id)

	trans, ok := reg.Lookup("TRANS")
	require.True(t, ok)
	require.False(t, trans.IsZero())
}
