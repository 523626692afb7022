package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) KeyDown(index uint8) {
	r.events = append(r.events, Event{Type: KeyDown, Index: int(index)})
}

func (r *recorder) KeyUp(index uint8) {
	r.events = append(r.events, Event{Type: KeyUp, Index: int(index)})
}

func newTestKeyboard(t *testing.T) (*Keyboard, *recorder, *int) {
	t.Helper()
	kb := New(DefaultConfig())
	rec := &recorder{}
	redraws := 0
	kb.SetListener(rec)
	kb.SetRedrawFunc(func() { redraws++ })
	kb.Resize(610, 200)
	require.Len(t, kb.Keys(), DefaultKeyCount)
	redraws = 0
	return kb, rec, &redraws
}

func keyCentre(kb *Keyboard, index int) Point {
	return centre(kb.Keys()[index].Bounds)
}

func TestKeyboard_PressAndRelease(t *testing.T) {
	kb, rec, redraws := newTestKeyboard(t)

	p := Pointer{ID: "finger", Pos: keyCentre(kb, 0)}
	kb.PointerBegin(p)
	kb.PointerMove(p)
	kb.PointerMove(p)
	assert.Equal(t, []Event{{Type: KeyDown, Index: 0}}, rec.events)
	assert.True(t, kb.AnyKeyDown())
	assert.True(t, kb.Keys()[0].Down)

	kb.PointerEnd(p)
	assert.Equal(t, []Event{{Type: KeyDown, Index: 0}, {Type: KeyUp, Index: 0}}, rec.events)
	assert.False(t, kb.AnyKeyDown())
	assert.Equal(t, 4, *redraws)
	assert.Zero(t, kb.ActivePointers())
}

func TestKeyboard_SlideAcrossKeys(t *testing.T) {
	kb, rec, _ := newTestKeyboard(t)

	kb.PointerBegin(Pointer{ID: "f", Pos: Point{X: 10, Y: 180}})
	kb.PointerMove(Pointer{ID: "f", Pos: Point{X: 60, Y: 180}})
	kb.PointerCancel(Pointer{ID: "f"})

	assert.Equal(t, []Event{
		{Type: KeyDown, Index: 0},
		{Type: KeyUp, Index: 0},
		{Type: KeyDown, Index: 2},
		{Type: KeyUp, Index: 2},
	}, rec.events)
}

func TestKeyboard_MultiTouchSingleRedraw(t *testing.T) {
	kb, rec, redraws := newTestKeyboard(t)

	kb.PointerBegin(
		Pointer{ID: "a", Pos: keyCentre(kb, 4)},
		Pointer{ID: "b", Pos: Point{X: kb.Keys()[3].Bounds.X + 2, Y: 5}},
	)
	assert.Equal(t, []Event{{Type: KeyDown, Index: 3}, {Type: KeyDown, Index: 4}}, rec.events)
	assert.Equal(t, 1, *redraws)
	assert.True(t, kb.AnyKeyDown())
}

func TestKeyboard_NoListener(t *testing.T) {
	kb := New(DefaultConfig())
	kb.Resize(610, 200)
	assert.NotPanics(t, func() {
		kb.PointerBegin(Pointer{ID: "a", Pos: Point{X: 5, Y: 150}})
		kb.PointerEnd(Pointer{ID: "a"})
	})
}

func TestKeyboard_ListenerFuncs(t *testing.T) {
	kb := New(DefaultConfig())
	kb.Resize(610, 200)

	var downs []uint8
	kb.SetListener(ListenerFuncs{OnKeyDown: func(i uint8) { downs = append(downs, i) }})
	kb.PointerBegin(Pointer{ID: "a", Pos: Point{X: 5, Y: 150}})
	kb.PointerEnd(Pointer{ID: "a"})
	assert.Equal(t, []uint8{0}, downs)
}

func TestKeyboard_SetKeyStateSkipsListener(t *testing.T) {
	kb, rec, redraws := newTestKeyboard(t)

	kb.SetKeyState(64, true)
	assert.Empty(t, rec.events)
	assert.True(t, kb.Keys()[4].Down)
	assert.True(t, kb.AnyKeyDown())
	assert.Equal(t, 1, *redraws)

	kb.SetKeyState(64, false)
	assert.False(t, kb.AnyKeyDown())

	// Notes outside the keyboard are ignored
	kb.SetKeyState(10, true)
	assert.False(t, kb.AnyKeyDown())
	assert.Equal(t, 2, *redraws)
	assert.Empty(t, rec.events)
}

func TestKeyboard_RelayoutResetsState(t *testing.T) {
	kb, _, _ := newTestKeyboard(t)

	kb.PointerBegin(Pointer{ID: "a", Pos: keyCentre(kb, 0)})
	require.True(t, kb.AnyKeyDown())

	kb.SetBaseNote(48)
	assert.False(t, kb.AnyKeyDown())
	assert.Zero(t, kb.ActivePointers())
	assert.Equal(t, 48, kb.Keys()[0].Note)
}

type resettingRecorder struct {
	recorder
	kb          *Keyboard
	downAtReset []bool
}

func (r *resettingRecorder) Reset() {
	r.downAtReset = append(r.downAtReset, r.kb.AnyKeyDown())
}

func TestKeyboard_RelayoutResetsListener(t *testing.T) {
	kb := New(DefaultConfig())
	kb.Resize(610, 200)
	rec := &resettingRecorder{kb: kb}
	kb.SetListener(rec)

	kb.PointerBegin(Pointer{ID: "a", Pos: keyCentre(kb, 0)})
	kb.ToggleLabels()
	kb.Resize(800, 200)

	// Reset runs before the held key is dropped, and no KeyUp follows
	assert.Equal(t, []bool{true, false}, rec.downAtReset)
	assert.Equal(t, []Event{{Type: KeyDown, Index: 0}}, rec.events)
}

func TestKeyboard_ConfigSetters(t *testing.T) {
	kb, _, redraws := newTestKeyboard(t)

	kb.SetKeyCount(99)
	assert.Len(t, kb.Keys(), MaxKeys)
	assert.Equal(t, 36, kb.WhiteKeyCount())

	kb.SetKeyCount(1)
	assert.Len(t, kb.Keys(), MinKeys)

	before := kb.Keys()[1].Bounds
	kb.SetBlackKeyWidth(0)
	assert.InDelta(t, 0.5, kb.Config().BlackKeyWidth, 1e-6)
	assert.Equal(t, before, kb.Keys()[1].Bounds, "width ratio applies on the next relayout")
	kb.Relayout()
	assert.Less(t, kb.Keys()[1].Bounds.W, before.W)

	kb.SetBlackKeyHeight(10)
	assert.InDelta(t, 150, kb.Keys()[1].Bounds.H, 1e-3)

	labels := kb.Config().ShowLabels
	kb.ToggleLabels()
	assert.Equal(t, !labels, kb.Config().ShowLabels)

	assert.Equal(t, 5, *redraws)
}

func TestKeyboard_ShiftOctave(t *testing.T) {
	kb, _, _ := newTestKeyboard(t)

	assert.True(t, kb.ShiftOctave(-1))
	assert.Equal(t, uint8(48), kb.Config().BaseNote)
	assert.Equal(t, 48, kb.Keys()[0].Note)

	assert.False(t, kb.ShiftOctave(-5))
	assert.Equal(t, uint8(48), kb.Config().BaseNote)

	assert.True(t, kb.ShiftOctave(17))
	assert.Equal(t, uint8(252), kb.Config().BaseNote)
	assert.False(t, kb.ShiftOctave(1))
}

func TestKeyboard_NoKeysBeforeResize(t *testing.T) {
	kb := New(DefaultConfig())
	assert.Empty(t, kb.Keys())
	assert.False(t, kb.AnyKeyDown())
	kb.PointerBegin(Pointer{ID: "a", Pos: Point{X: 1, Y: 1}})
	kb.SetKeyState(60, true)
	assert.False(t, kb.AnyKeyDown())
}
