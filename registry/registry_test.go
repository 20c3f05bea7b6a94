package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cormoran/zmk-module-runtime-input-processor/pipeline"
	"github.com/cormoran/zmk-module-runtime-input-processor/processor"
	"github.com/cormoran/zmk-module-runtime-input-processor/registry"
	"github.com/cormoran/zmk-module-runtime-input-processor/schedule"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T) *schedule.Executor {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ex := schedule.NewExecutor(ctx)
	t.Cleanup(ex.Stop)

	return ex
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	ex := newTestExecutor(t)

	left := processor.New(context.Background(), pipeline.Config{Name: "left"}, ex)
	right := processor.New(context.Background(), pipeline.Config{Name: "right"}, ex)

	idLeft := reg.Add(left)
	idRight := reg.Add(right)

	require.Equal(t, 0, idLeft)
	require.Equal(t, 1, idRight)
	require.Equal(t, 2, reg.Len())

	got, ok := reg.ByName("right")
	require.True(t, ok)
	require.Same(t, right, got)

	_, ok = reg.ByName("missing")
	require.False(t, ok)

	got, ok = reg.ByID(0)
	require.True(t, ok)
	require.Same(t, left, got)

	_, ok = reg.ByID(99)
	require.False(t, ok)
}

func TestRegistryForEachShortCircuits(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	ex := newTestExecutor(t)

	reg.Add(processor.New(context.Background(), pipeline.Config{Name: "a"}, ex))
	reg.Add(processor.New(context.Background(), pipeline.Config{Name: "b"}, ex))
	reg.Add(processor.New(context.Background(), pipeline.Config{Name: "c"}, ex))

	var visited []string

	errStop := errors.New("stop")
	err := reg.ForEach(func(id int, inst *processor.Instance) error {
		visited = append(visited, inst.Name())
		if inst.Name() == "b" {
			return errStop
		}

		return nil
	})

	require.Error(t, err)
	require.ErrorIs(t, err, errStop)
	require.Equal(t, []string{"a", "b"}, visited)
}
