// Package payloadlist shows the received payloads newest first, with at
// most one of them expanded into a foldable JSON outline.
package payloadlist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/dbug/internal/clock"
	"github.com/zjrosen/dbug/internal/jsonview"
	"github.com/zjrosen/dbug/internal/payload"
	"github.com/zjrosen/dbug/internal/ui/jsonblock"
	"github.com/zjrosen/dbug/internal/ui/styles"
)

const (
	cursorMark  = "›"
	bodyIndent  = "  "
	wheelStep   = 3
	headerGap   = 2
	emptyNotice = "Waiting for payloads..."
)

// Options configures a Model.
type Options struct {
	IndentSize  int
	LineNumbers bool
	// ZonePrefix enables mouse support. bubblezone's global manager must
	// be running when it is set.
	ZonePrefix string
	// Renderer memoizes line colorization. Nil renders without a cache.
	Renderer *jsonview.Renderer
	Clock    clock.Clock
	Theme    jsonview.Theme
}

type rowKind int

const (
	rowHeader rowKind = iota
	rowLine
)

// row is one visible line of the list: a payload header or a line of the
// expanded payload's outline.
type row struct {
	kind    rowKind
	payload int
	line    jsonview.RenderLine
}

// Model is the list state. Methods return updated copies; the collapsed
// set is copied before every change so earlier values stay intact.
type Model struct {
	opts     Options
	payloads []*payload.Payload

	expanded  string
	doc       jsonview.Document
	collapsed *jsonview.CollapsedSet
	rows      []row

	cursor   int
	offset   int
	viewport viewport.Model
	width    int
	height   int
}

// New creates an empty list.
func New(opts Options) Model {
	if opts.IndentSize <= 0 {
		opts.IndentSize = 2
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Theme == nil {
		opts.Theme = styles.CurrentPalette()
	}
	return Model{opts: opts, viewport: viewport.New(0, 0)}
}

// SetSize updates the list dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	return m.clampCursor()
}

// SetTheme recolors the outline.
func (m Model) SetTheme(theme jsonview.Theme) Model {
	m.opts.Theme = theme
	return m.rebuild()
}

// SetPayloads replaces the listed payloads. The expanded payload stays
// open, with its folds, when it is still present; otherwise it closes.
// The cursor stays on the payload it was on when possible.
func (m Model) SetPayloads(ps []*payload.Payload) Model {
	selected := m.selectedID()

	m.payloads = ps
	if m.expanded != "" && m.indexOf(m.expanded) < 0 {
		m.expanded = ""
		m.doc = nil
		m.collapsed = nil
	}
	m = m.rebuild()
	if selected != "" {
		if i := m.headerRow(selected); i >= 0 {
			m.cursor = i
		}
	}
	return m.clampCursor()
}

// Expand opens the payload with id, closing any other, with every block
// unfolded. The cursor moves to its header.
func (m Model) Expand(id string) Model {
	i := m.indexOf(id)
	if i < 0 {
		return m
	}
	m.expanded = id
	m.doc = jsonview.NewDocument(m.payloads[i].Pretty())
	m.collapsed = jsonview.NewCollapsedSet()
	m = m.rebuild()
	m.cursor = m.headerRow(id)
	return m.clampCursor()
}

// Close collapses the expanded payload and discards its folds.
func (m Model) Close() Model {
	id := m.expanded
	if id == "" {
		return m
	}
	m.expanded = ""
	m.doc = nil
	m.collapsed = nil
	m = m.rebuild()
	if i := m.headerRow(id); i >= 0 {
		m.cursor = i
	}
	return m.clampCursor()
}

// Activate acts on the cursor row: a header opens or closes its payload,
// a foldable outline line toggles its fold.
func (m Model) Activate() Model {
	if m.cursor >= len(m.rows) {
		return m
	}
	r := m.rows[m.cursor]
	if r.kind == rowLine {
		m, _ = m.ToggleFold(r.line.Index)
		return m
	}
	id := m.payloads[r.payload].ID
	if id == m.expanded {
		return m.Close()
	}
	return m.Expand(id)
}

// ToggleFold flips the fold on source line index of the expanded payload.
// Lines that cannot fold are ignored and reported as not toggled.
func (m Model) ToggleFold(index int) (Model, bool) {
	if m.expanded == "" || !m.foldable(index) {
		return m, false
	}
	m.collapsed = jsonview.NewCollapsedSet(m.collapsed.Lines()...)
	m.collapsed.Toggle(index)
	m = m.rebuild()
	if i := m.lineRow(index); i >= 0 {
		m.cursor = i
	}
	return m.clampCursor(), true
}

// ToggleFoldAtCursor toggles the fold of the cursor line.
func (m Model) ToggleFoldAtCursor() (Model, bool) {
	if m.cursor >= len(m.rows) || m.rows[m.cursor].kind != rowLine {
		return m, false
	}
	return m.ToggleFold(m.rows[m.cursor].line.Index)
}

// FoldAll folds every matched block of the expanded payload.
func (m Model) FoldAll() Model {
	if m.expanded == "" {
		return m
	}
	m.collapsed = jsonview.NewCollapsedSet(jsonview.Foldable(m.doc)...)
	m = m.rebuild()
	m.cursor = m.headerRow(m.expanded)
	return m.clampCursor()
}

// UnfoldAll clears every fold of the expanded payload.
func (m Model) UnfoldAll() Model {
	if m.expanded == "" {
		return m
	}
	m.collapsed = jsonview.NewCollapsedSet()
	return m.rebuild().clampCursor()
}

// MoveUp moves the cursor up n rows.
func (m Model) MoveUp(n int) Model {
	m.cursor -= n
	return m.clampCursor()
}

// MoveDown moves the cursor down n rows.
func (m Model) MoveDown(n int) Model {
	m.cursor += n
	return m.clampCursor()
}

// Top moves the cursor to the first row.
func (m Model) Top() Model {
	m.cursor = 0
	return m.clampCursor()
}

// Bottom moves the cursor to the last row.
func (m Model) Bottom() Model {
	m.cursor = len(m.rows) - 1
	return m.clampCursor()
}

// PageSize is the number of rows a page key moves.
func (m Model) PageSize() int {
	return max(m.height/2, 1)
}

// Selected returns the payload that owns the cursor row.
func (m Model) Selected() (*payload.Payload, bool) {
	if m.cursor >= len(m.rows) {
		return nil, false
	}
	return m.payloads[m.rows[m.cursor].payload], true
}

// Expanded returns the open payload.
func (m Model) Expanded() (*payload.Payload, bool) {
	i := m.indexOf(m.expanded)
	if i < 0 {
		return nil, false
	}
	return m.payloads[i], true
}

// Collapsed returns the folded source lines of the expanded payload.
func (m Model) Collapsed() []int {
	return m.collapsed.Lines()
}

// Offset returns the first visible row.
func (m Model) Offset() int {
	return m.offset
}

// Cursor returns the cursor row.
func (m Model) Cursor() int {
	return m.cursor
}

// Rows returns the number of visible rows.
func (m Model) Rows() int {
	return len(m.rows)
}

// Len returns the number of payloads.
func (m Model) Len() int {
	return len(m.payloads)
}

// HandleMouse handles wheel scrolling and clicks on payload headers and
// fold carets. It reports whether the message was consumed.
func (m Model) HandleMouse(msg tea.MouseMsg) (Model, bool) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.MoveUp(wheelStep), true
	case tea.MouseButtonWheelDown:
		return m.MoveDown(wheelStep), true
	}
	if m.opts.ZonePrefix == "" || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, false
	}

	for i, r := range m.rows {
		id := m.payloads[r.payload].ID
		switch r.kind {
		case rowHeader:
			if z := zone.Get(m.headerZoneID(id)); z != nil && z.InBounds(msg) {
				m.cursor = i
				return m.Activate(), true
			}
		case rowLine:
			if !r.line.Collapsible {
				continue
			}
			if z := zone.Get(jsonblock.FoldZoneID(m.foldZonePrefix(id), r.line.Index)); z != nil && z.InBounds(msg) {
				return m.ToggleFold(r.line.Index)
			}
		}
	}
	return m, false
}

// View renders the visible window of rows.
func (m Model) View() string {
	if len(m.payloads) == 0 {
		return styles.EmptyStateStyle.Render(emptyNotice)
	}

	lines := make([]string, len(m.rows))
	var outline []string
	if m.expanded != "" {
		outline = m.renderOutline()
	}
	o := 0
	for i, r := range m.rows {
		mark := " "
		if i == m.cursor {
			mark = styles.SelectionIndicatorStyle.Render(cursorMark)
		}
		switch r.kind {
		case rowHeader:
			lines[i] = mark + m.renderHeader(m.payloads[r.payload])
		case rowLine:
			lines[i] = mark + bodyIndent + outline[o]
			o++
		}
	}

	vp := m.viewport
	vp.SetContent(strings.Join(lines, "\n"))
	vp.SetYOffset(m.offset)
	return vp.View()
}

// scrollOffset keeps the cursor inside the window, moving it as little as
// possible from the previous offset.
func (m Model) scrollOffset(prev int) int {
	h := max(m.height, 1)
	off := prev
	switch {
	case m.cursor < prev:
		off = m.cursor
	case m.cursor >= prev+h:
		off = m.cursor - h + 1
	}
	return min(off, max(len(m.rows)-h, 0))
}

func (m Model) renderOutline() []string {
	var plan []jsonview.RenderLine
	for _, r := range m.rows {
		if r.kind == rowLine {
			plan = append(plan, r.line)
		}
	}
	opts := jsonblock.Options{
		IndentSize:  m.opts.IndentSize,
		LineNumbers: m.opts.LineNumbers,
		Width:       max(m.width-1-len(bodyIndent), 0),
		Theme:       m.opts.Theme,
	}
	if m.opts.ZonePrefix != "" {
		opts.ZonePrefix = m.foldZonePrefix(m.expanded)
	}
	return jsonblock.Render(plan, opts)
}

// renderHeader draws "▸ <preview>   <path>  <age>" filling the width.
func (m Model) renderHeader(p *payload.Payload) string {
	caret := jsonblock.CaretCollapsed
	if p.ID == m.expanded {
		caret = jsonblock.CaretExpanded
	}

	age := clock.Relative(p.ReceivedAt, m.opts.Clock.Now())
	path := p.Path
	inner := max(m.width-1-runewidth.StringWidth(caret), 0)

	rightWidth := runewidth.StringWidth(path) + headerGap + runewidth.StringWidth(age)
	if rightWidth+headerGap > inner {
		path = ""
		rightWidth = runewidth.StringWidth(age)
	}
	previewWidth := max(inner-rightWidth-headerGap, 0)

	preview := p.Preview()
	if runewidth.StringWidth(preview) > previewWidth {
		preview = truncate.StringWithTail(preview, uint(previewWidth), "…")
	}
	pad := max(inner-runewidth.StringWidth(preview)-rightWidth, 0)

	var b strings.Builder
	b.WriteString(styles.CaretStyle.Render(caret))
	b.WriteString(styles.PreviewStyle.Render(preview))
	b.WriteString(strings.Repeat(" ", pad))
	if path != "" {
		b.WriteString(styles.PathStyle.Render(path))
		b.WriteString(strings.Repeat(" ", headerGap))
	}
	b.WriteString(styles.TimestampStyle.Render(age))

	line := b.String()
	if m.opts.ZonePrefix != "" {
		line = zone.Mark(m.headerZoneID(p.ID), line)
	}
	return line
}

func (m Model) headerZoneID(id string) string {
	return fmt.Sprintf("%s:payload:%s", m.opts.ZonePrefix, id)
}

func (m Model) foldZonePrefix(id string) string {
	return m.opts.ZonePrefix + ":" + id
}

// rebuild recomputes the render plan and the row list.
func (m Model) rebuild() Model {
	var plan []jsonview.RenderLine
	if m.expanded != "" {
		if m.opts.Renderer != nil {
			plan = m.opts.Renderer.Render(m.doc, m.collapsed, m.opts.Theme)
		} else {
			plan = jsonview.Render(m.doc, m.collapsed, m.opts.Theme)
		}
	}

	rows := make([]row, 0, len(m.payloads)+len(plan))
	for i, p := range m.payloads {
		rows = append(rows, row{kind: rowHeader, payload: i})
		if p.ID == m.expanded {
			for _, l := range plan {
				rows = append(rows, row{kind: rowLine, payload: i, line: l})
			}
		}
	}
	m.rows = rows
	return m
}

func (m Model) clampCursor() Model {
	m.cursor = min(max(m.cursor, 0), max(len(m.rows)-1, 0))
	m.offset = m.scrollOffset(m.offset)
	return m
}

func (m Model) foldable(index int) bool {
	i := slices.IndexFunc(m.rows, func(r row) bool {
		return r.kind == rowLine && r.line.Index == index
	})
	return i >= 0 && m.rows[i].line.Collapsible
}

func (m Model) indexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(m.payloads, func(p *payload.Payload) bool { return p.ID == id })
}

func (m Model) headerRow(id string) int {
	return slices.IndexFunc(m.rows, func(r row) bool {
		return r.kind == rowHeader && m.payloads[r.payload].ID == id
	})
}

func (m Model) lineRow(index int) int {
	return slices.IndexFunc(m.rows, func(r row) bool {
		return r.kind == rowLine && r.line.Index == index
	})
}

func (m Model) selectedID() string {
	if p, ok := m.Selected(); ok {
		return p.ID
	}
	return ""
}
