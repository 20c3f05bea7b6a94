package observer_test

import (
	"testing"

	"github.com/cormoran/zmk-module-runtime-input-processor/observer"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNoopDoesNotPanic(t *testing.T) {
	t.Parallel()

	var obs observer.Noop
	require.NotPanics(t, func() {
		obs.Notify("trackball", observer.PublicConfig{ScaleMul: 1, ScaleDiv: 1})
	})
}

func TestLoggingNotify(t *testing.T) {
	t.Parallel()

	logger := zaptest.NewLogger(t).Sugar()
	obs := observer.NewLogging(logger)

	require.NotPanics(t, func() {
		obs.Notify("trackball", observer.PublicConfig{ScaleMul: 7, ScaleDiv: 4})
	})
}
