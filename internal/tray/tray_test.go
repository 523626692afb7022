package tray

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/gopher-piano/internal/keyboard"
)

func TestMenu_Actions(t *testing.T) {
	test.NewTempApp(t)

	kb := keyboard.New(keyboard.DefaultConfig())
	kb.Resize(610, 200)

	quit := false
	menu := Menu(kb, Callbacks{OnQuit: func() { quit = true }})
	require.Len(t, menu.Items, 8)

	labels, rng, up, down := menu.Items[2], menu.Items[3], menu.Items[4], menu.Items[5]
	assert.True(t, labels.Checked)
	assert.Equal(t, "Notes 60-83", rng.Label)

	labels.Action()
	assert.False(t, labels.Checked)
	assert.False(t, kb.Config().ShowLabels)

	up.Action()
	assert.Equal(t, "Notes 72-95", rng.Label)
	down.Action()
	down.Action()
	assert.Equal(t, 48, kb.Keys()[0].Note)
	assert.Equal(t, "Notes 48-71", rng.Label)

	menu.Items[0].Action() // no OnOpen set
	menu.Items[7].Action()
	assert.True(t, quit)
}
