package payloadlist

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dbug/internal/clock"
	"github.com/zjrosen/dbug/internal/payload"
	"github.com/zjrosen/dbug/internal/ui/jsonblock"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newPayload(id, path, body string, age time.Duration) *payload.Payload {
	return &payload.Payload{ID: id, Path: path, Body: json.RawMessage(body), ReceivedAt: now.Add(-age)}
}

// p1 pretty-prints to ten lines; blocks open on lines 1 and 3.
func fixtures() []*payload.Payload {
	return []*payload.Payload{
		newPayload("p1", "/hook", `{"user":{"id":1,"tags":["a","b"]},"ok":true}`, 5*time.Minute),
		newPayload("p2", "/", `[1,2]`, 2*time.Hour),
	}
}

func newModel(opts Options) Model {
	opts.Clock = clock.NewManual(now)
	return New(opts).SetSize(60, 30).SetPayloads(fixtures())
}

func TestView_Empty(t *testing.T) {
	m := New(Options{}).SetSize(40, 5)
	assert.Contains(t, ansi.Strip(m.View()), "Waiting for payloads")
	_, ok := m.Selected()
	assert.False(t, ok)
}

func TestSetPayloads(t *testing.T) {
	m := newModel(Options{})

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2, m.Rows())
	p, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)
	_, ok = m.Expanded()
	assert.False(t, ok)
}

func TestExpandAndClose(t *testing.T) {
	m := newModel(Options{}).Expand("p1")

	p, ok := m.Expanded()
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 12, m.Rows())
	assert.Equal(t, 0, m.Cursor())
	assert.Empty(t, m.Collapsed())

	m = m.Activate()
	_, ok = m.Expanded()
	assert.False(t, ok)
	assert.Equal(t, 2, m.Rows())
}

func TestExpand_OnlyOneOpen(t *testing.T) {
	m := newModel(Options{}).Expand("p1").Expand("p2")

	p, ok := m.Expanded()
	require.True(t, ok)
	assert.Equal(t, "p2", p.ID)
	assert.Equal(t, 2+4, m.Rows())
	assert.Equal(t, 1, m.Cursor())
}

func TestExpand_UnknownID(t *testing.T) {
	m := newModel(Options{}).Expand("missing")
	_, ok := m.Expanded()
	assert.False(t, ok)
}

func TestActivate_TogglesFoldOnOutlineLine(t *testing.T) {
	m := newModel(Options{}).Expand("p1").MoveDown(2)

	m = m.Activate()
	assert.Equal(t, []int{1}, m.Collapsed())
	// header + lines 0, 1, 7, 8, 9 + second header
	assert.Equal(t, 7, m.Rows())
	assert.Equal(t, 2, m.Cursor())

	m = m.Activate()
	assert.Empty(t, m.Collapsed())
	assert.Equal(t, 12, m.Rows())
}

func TestToggleFold_IgnoresLinesThatCannotFold(t *testing.T) {
	m := newModel(Options{}).Expand("p1")

	for _, idx := range []int{0, 2, 8, 99} {
		_, ok := m.ToggleFold(idx)
		assert.False(t, ok, "line %d", idx)
	}

	_, ok := newModel(Options{}).ToggleFold(1)
	assert.False(t, ok, "nothing expanded")
}

func TestToggleFold_HiddenLineCannotToggle(t *testing.T) {
	m, ok := newModel(Options{}).Expand("p1").ToggleFold(1)
	require.True(t, ok)

	_, ok = m.ToggleFold(3)
	assert.False(t, ok)
}

func TestToggleFold_DoesNotMutateEarlierModel(t *testing.T) {
	before := newModel(Options{}).Expand("p1")
	after, ok := before.ToggleFold(3)
	require.True(t, ok)

	assert.Empty(t, before.Collapsed())
	assert.Equal(t, []int{3}, after.Collapsed())
}

func TestToggleFoldAtCursor(t *testing.T) {
	m := newModel(Options{}).Expand("p1")

	_, ok := m.ToggleFoldAtCursor()
	assert.False(t, ok, "cursor on header")

	m, ok = m.MoveDown(4).ToggleFoldAtCursor()
	require.True(t, ok)
	assert.Equal(t, []int{3}, m.Collapsed())
}

func TestFoldAllUnfoldAll(t *testing.T) {
	m := newModel(Options{}).Expand("p1").MoveDown(5)

	m = m.FoldAll()
	assert.Equal(t, []int{1, 3}, m.Collapsed())
	assert.Equal(t, 0, m.Cursor())

	m = m.UnfoldAll()
	assert.Empty(t, m.Collapsed())
	assert.Equal(t, 12, m.Rows())
}

func TestClose_DiscardsFolds(t *testing.T) {
	m, _ := newModel(Options{}).Expand("p1").ToggleFold(1)
	m = m.Close().Expand("p1")

	assert.Empty(t, m.Collapsed())
}

func TestSetPayloads_KeepsExpandedAndCursor(t *testing.T) {
	m, _ := newModel(Options{}).Expand("p1").ToggleFold(1)

	incoming := append([]*payload.Payload{newPayload("p0", "/new", `{"n":1}`, 0)}, fixtures()...)
	m = m.SetPayloads(incoming)

	p, ok := m.Expanded()
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, []int{1}, m.Collapsed())

	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "p1", sel.ID)
	assert.Equal(t, 1, m.Cursor())
}

func TestSetPayloads_ClosesRemovedPayload(t *testing.T) {
	m := newModel(Options{}).Expand("p1")
	m = m.SetPayloads(fixtures()[1:])

	_, ok := m.Expanded()
	assert.False(t, ok)
	assert.Empty(t, m.Collapsed())
	assert.Equal(t, 1, m.Rows())
	assert.Equal(t, 0, m.Cursor())
}

func TestNavigation(t *testing.T) {
	m := newModel(Options{}).Expand("p1")

	m = m.Bottom()
	assert.Equal(t, 11, m.Cursor())
	m = m.MoveDown(5)
	assert.Equal(t, 11, m.Cursor())
	m = m.MoveUp(3)
	assert.Equal(t, 8, m.Cursor())
	m = m.Top()
	assert.Equal(t, 0, m.Cursor())
	m = m.MoveUp(1)
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, 15, m.PageSize())
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	m := newModel(Options{}).SetSize(60, 3).Expand("p1")

	m = m.Bottom()
	assert.Equal(t, 9, m.Offset())
	m = m.MoveUp(1)
	assert.Equal(t, 9, m.Offset())
	m = m.Top()
	assert.Equal(t, 0, m.Offset())

	view := strings.Split(m.View(), "\n")
	assert.Len(t, view, 3)
}

func TestView_Headers(t *testing.T) {
	m := newModel(Options{})
	lines := strings.Split(ansi.Strip(m.View()), "\n")

	assert.True(t, strings.HasPrefix(lines[0], cursorMark+jsonblock.CaretCollapsed+`{"user"`), lines[0])
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[0], " "), "/hook  5m ago"), lines[0])
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[1], " "), "/  2h ago"), lines[1])
	for _, l := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), 60)
	}
}

func TestView_NarrowHeaderTruncatesPreview(t *testing.T) {
	m := newModel(Options{}).SetSize(24, 5)
	first := strings.Split(ansi.Strip(m.View()), "\n")[0]

	assert.Contains(t, first, "…")
	assert.Contains(t, first, "5m ago")
	assert.LessOrEqual(t, ansi.StringWidth(first), 24)
}

func TestView_ExpandedOutline(t *testing.T) {
	m, _ := newModel(Options{IndentSize: 2, LineNumbers: true}).Expand("p1").ToggleFold(3)
	view := ansi.Strip(m.View())

	assert.Contains(t, view, jsonblock.CaretExpanded+`{"user"`)
	assert.Contains(t, view, `"tags": [ ⋯ 2 lines ]`)
	assert.Contains(t, view, `"ok": true`)
}

func TestHandleMouse_Wheel(t *testing.T) {
	m := newModel(Options{}).Expand("p1")

	m, ok := m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.True(t, ok)
	assert.Equal(t, 3, m.Cursor())

	m, ok = m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	require.True(t, ok)
	assert.Equal(t, 0, m.Cursor())
}

func TestHandleMouse_ClickWithoutZones(t *testing.T) {
	m := newModel(Options{})
	_, ok := m.HandleMouse(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.False(t, ok)
}

func waitForZone(t *testing.T, render func() string, id string) *zone.ZoneInfo {
	t.Helper()
	var z *zone.ZoneInfo
	for range 20 {
		zone.Scan(render())
		z = zone.Get(id)
		if z != nil && !z.IsZero() {
			return z
		}
		time.Sleep(time.Millisecond)
	}
	require.FailNow(t, "zone never registered", id)
	return nil
}

func TestHandleMouse_ClickHeaderAndCaret(t *testing.T) {
	zone.NewGlobal()

	m := newModel(Options{ZonePrefix: "test"})
	z := waitForZone(t, m.View, "test:payload:p2")

	m, ok := m.HandleMouse(tea.MouseMsg{X: z.StartX + 2, Y: z.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.True(t, ok)
	p, _ := m.Expanded()
	require.NotNil(t, p)
	assert.Equal(t, "p2", p.ID)

	m = m.Expand("p1")
	caret := waitForZone(t, m.View, jsonblock.FoldZoneID("test:p1", 1))
	m, ok = m.HandleMouse(tea.MouseMsg{X: caret.StartX, Y: caret.StartY, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.True(t, ok)
	assert.Equal(t, []int{1}, m.Collapsed())
}
