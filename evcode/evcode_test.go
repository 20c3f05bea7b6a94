package evcode_test

import (
	"testing"

	"github.com/cormoran/zmk-module-runtime-input-processor/evcode"
	"github.com/stretchr/testify/assert"
)

func TestIsModifier(t *testing.T) {
	t.Parallel()

	assert.True(t, evcode.IsModifier(evcode.KeyboardUsagePage, evcode.KeyLeftCtrl))
	assert.True(t, evcode.IsModifier(evcode.KeyboardUsagePage, evcode.KeyRightMeta))
	assert.False(t, evcode.IsModifier(evcode.KeyboardUsagePage, evcode.KeySpace))
	assert.False(t, evcode.IsModifier(1, evcode.KeyLeftCtrl))
}
