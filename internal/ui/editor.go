package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillhq/quill/internal/document"
	"github.com/quillhq/quill/internal/focus"
	"github.com/quillhq/quill/internal/identity"
	"github.com/quillhq/quill/internal/outline"
)

// --- Focus slots ---

type slotKind int

const (
	slotTitle slotKind = iota
	slotMethod
	slotURL
	slotField
)

// slot names one focusable input: the document title, an endpoint's method
// or url, or one field line.
type slot struct {
	kind slotKind
	row  int // endpoint index; unused for slotTitle
	idx  int // field index; slotField only
}

// cursorState is shared between the model and the dispatcher callbacks, so
// a focus transfer lands no matter which copy of the model registered it.
type cursorState struct {
	cur     slot
	focused bool
}

// --- Editor Model ---

// EditorModel is the document editor: a flowing outline of the title, one
// row per endpoint, and that endpoint's field lines.
type EditorModel struct {
	doc        document.Document
	dispatcher *focus.Dispatcher[slot]
	cursor     *cursorState
	registered []slot
	onChange   func(document.Document)
	width      int
	height     int
}

// NewEditorModel builds an editor over doc. onChange fires after every
// local mutation with the new state; the app routes it into the sync
// engine.
func NewEditorModel(doc document.Document, onChange func(document.Document)) EditorModel {
	m := EditorModel{
		doc:        doc,
		dispatcher: focus.NewDispatcher[slot](),
		cursor:     &cursorState{cur: slot{kind: slotTitle}, focused: true},
		onChange:   onChange,
	}
	m.mountSlots()
	return m
}

// Document returns the current local state.
func (m EditorModel) Document() document.Document { return m.doc }

// RefreshIDs fills in real ids the registry has learned since the last
// render, typically after a sync event. The slices are rebuilt rather than
// written in place: the engine holds snapshots sharing the same backing
// arrays, and may be reading them from its write goroutine.
func (m *EditorModel) RefreshIDs(ids *identity.Registry) {
	if !m.doc.RealID.Known() {
		m.doc.RealID = ids.Resolve(m.doc.LocalID)
	}
	endpoints := make([]document.Endpoint, len(m.doc.Endpoints))
	for i, ep := range m.doc.Endpoints {
		if !ep.RealID.Known() {
			ep.RealID = ids.Resolve(ep.LocalID)
		}
		fields := make([]document.Field, len(ep.Fields))
		for j, f := range ep.Fields {
			if !f.RealID.Known() {
				f.RealID = ids.Resolve(f.LocalID)
			}
			fields[j] = f
		}
		ep.Fields = fields
		endpoints[i] = ep
	}
	m.doc.Endpoints = endpoints
}

func (m *EditorModel) changed() {
	if m.onChange != nil {
		m.onChange(m.doc)
	}
}

// --- Slot bookkeeping ---

// slots lists every focusable input in tab order.
func (m EditorModel) slots() []slot {
	out := []slot{{kind: slotTitle}}
	for i, ep := range m.doc.Endpoints {
		out = append(out, slot{kind: slotMethod, row: i}, slot{kind: slotURL, row: i})
		for j := range ep.Fields {
			out = append(out, slot{kind: slotField, row: i, idx: j})
		}
	}
	return out
}

// fieldSlots lists every field input in document order.
func (m EditorModel) fieldSlots() []slot {
	var out []slot
	for i, ep := range m.doc.Endpoints {
		for j := range ep.Fields {
			out = append(out, slot{kind: slotField, row: i, idx: j})
		}
	}
	return out
}

// lines lists one focus target per rendered line, for vertical movement.
func (m EditorModel) lines() []slot {
	out := []slot{{kind: slotTitle}}
	for i, ep := range m.doc.Endpoints {
		out = append(out, slot{kind: slotURL, row: i})
		for j := range ep.Fields {
			out = append(out, slot{kind: slotField, row: i, idx: j})
		}
	}
	return out
}

// mountSlots (re)registers every current slot on the dispatcher and forgets
// slots that no longer exist, so a structural edit never leaves a stale
// focus callback behind.
func (m *EditorModel) mountSlots() {
	current := m.slots()
	mounted := make(map[slot]bool, len(current))
	cursor := m.cursor
	for _, s := range current {
		s := s
		mounted[s] = true
		m.dispatcher.Listen(s, func() {
			cursor.cur = s
			cursor.focused = true
		})
	}
	for _, s := range m.registered {
		if !mounted[s] {
			m.dispatcher.Forget(s)
		}
	}
	m.registered = current
}

// --- Slot text access ---

func (m EditorModel) slotText(s slot) string {
	switch s.kind {
	case slotTitle:
		return m.doc.Title
	case slotMethod:
		return string(m.doc.Endpoints[s.row].Method)
	case slotURL:
		return m.doc.Endpoints[s.row].Title
	case slotField:
		return m.doc.Endpoints[s.row].Fields[s.idx].Value
	}
	return ""
}

// setSlotText routes a text edit through the raw tree for title-level
// content, so the repair pass runs after it, and directly into the model
// for field lines, which live below the tree.
func (m *EditorModel) setSlotText(s slot, text string) {
	switch s.kind {
	case slotTitle, slotURL:
		tree := outline.FromDocument(m.doc)
		pos := 0
		if s.kind == slotURL {
			pos = s.row + 1
		}
		tree[pos].Text = text
		m.doc = outline.ToDocument(outline.Normalize(tree), m.doc)
	case slotField:
		ep := m.doc.Endpoints[s.row]
		f := ep.Fields[s.idx]
		f.Value = text
		f.Updated = time.Now()
		ep.Fields = document.ReplaceAt(ep.Fields, f, s.idx)
		m.doc.Endpoints = document.ReplaceAt(m.doc.Endpoints, ep, s.row)
	}
	m.changed()
}

// repair reruns the normalizer over the current model, restoring the
// one-title-plus-bodies shape after a structural edit.
func (m *EditorModel) repair() {
	m.doc = outline.ToDocument(outline.FromDocument(m.doc), m.doc)
	m.mountSlots()
}

// --- Structural edits ---

func (m *EditorModel) insertEndpointAfter(row int) {
	ep := document.NewEndpoint("", document.MethodGet)
	m.doc.Endpoints = document.InsertAt(m.doc.Endpoints, ep, row+1)
	m.repair()
	m.changed()
	m.dispatcher.Focus(slot{kind: slotURL, row: row + 1})
}

func (m *EditorModel) removeEndpoint(row int) {
	m.doc.Endpoints = document.RemoveAt(m.doc.Endpoints, row)
	m.repair()
	m.changed()
	lines := m.lines()
	target := lines[0]
	for _, s := range lines {
		if s.kind == slotURL && s.row == row-1 {
			target = s
		}
	}
	m.dispatcher.Focus(target)
}

func (m *EditorModel) insertFieldAfter(row, idx int) {
	ep := m.doc.Endpoints[row]
	indent := 0
	if idx >= 0 && idx < len(ep.Fields) {
		indent = ep.Fields[idx].Indent
	}
	ep.Fields = document.InsertAt(ep.Fields, document.NewField("", indent), idx+1)
	m.doc.Endpoints = document.ReplaceAt(m.doc.Endpoints, ep, row)
	m.mountSlots()
	m.changed()
	m.dispatcher.Focus(slot{kind: slotField, row: row, idx: idx + 1})
}

// removeField removes an empty field and moves focus to the previous field
// in document order. The first field of the document is never removed this
// way: an editor-level guard, separate from the normalizer's node-count
// repair.
func (m *EditorModel) removeField(row, idx int) {
	fields := m.fieldSlots()
	pos := -1
	for i, s := range fields {
		if s.row == row && s.idx == idx {
			pos = i
		}
	}
	if pos <= 0 {
		return
	}
	prev := fields[pos-1]

	ep := m.doc.Endpoints[row]
	ep.Fields = document.RemoveAt(ep.Fields, idx)
	m.doc.Endpoints = document.ReplaceAt(m.doc.Endpoints, ep, row)
	m.mountSlots()
	m.changed()
	m.dispatcher.Focus(prev)
}

func (m *EditorModel) setIndent(row, idx, delta int) {
	ep := m.doc.Endpoints[row]
	f := ep.Fields[idx]
	f.Indent += delta
	if f.Indent < 0 {
		f.Indent = 0
	}
	f.Updated = time.Now()
	ep.Fields = document.ReplaceAt(ep.Fields, f, idx)
	m.doc.Endpoints = document.ReplaceAt(m.doc.Endpoints, ep, row)
	m.changed()
}

func (m *EditorModel) cycleMethod(row int) {
	ep := m.doc.Endpoints[row]
	ep.Method = document.NextMethod(ep.Method)
	ep.Updated = time.Now()
	m.doc.Endpoints = document.ReplaceAt(m.doc.Endpoints, ep, row)
	m.changed()
}

// --- Navigation ---

func (m *EditorModel) focusStep(delta int) {
	order := m.slots()
	pos := 0
	for i, s := range order {
		if s == m.cursor.cur {
			pos = i
		}
	}
	next := pos + delta
	if next < 0 || next >= len(order) {
		return
	}
	m.dispatcher.Focus(order[next])
}

// focusLine moves focus up or down one rendered line, clamped at the ends.
func (m *EditorModel) focusLine(delta int) {
	order := m.lines()
	pos := 0
	for i, s := range order {
		if s == m.cursor.cur {
			pos = i
		}
		// method and url share a line
		if m.cursor.cur.kind == slotMethod && s.kind == slotURL && s.row == m.cursor.cur.row {
			pos = i
		}
	}
	next := pos + delta
	if next < 0 || next >= len(order) {
		return
	}
	m.dispatcher.Focus(order[next])
}

// lastSlotOfRow reports whether s is the final input of its endpoint row.
func (m EditorModel) lastSlotOfRow(s slot) bool {
	if s.kind == slotURL {
		return len(m.doc.Endpoints[s.row].Fields) == 0
	}
	if s.kind == slotField {
		return s.idx == len(m.doc.Endpoints[s.row].Fields)-1
	}
	return false
}

// --- Update ---

func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if !m.cursor.focused {
		if isEnter(key) || isTab(key) {
			m.cursor.focused = true
		}
		return m, nil
	}

	cur := m.cursor.cur
	switch {
	case isTab(key):
		m.focusStep(1)
	case isShiftTab(key):
		m.focusStep(-1)
	case isUp(key):
		m.focusLine(-1)
	case isDown(key):
		m.focusLine(1)
	case isIndent(key):
		if cur.kind == slotField {
			m.setIndent(cur.row, cur.idx, 1)
		}
	case isOutdent(key):
		if cur.kind == slotField {
			m.setIndent(cur.row, cur.idx, -1)
		}
	case isKey(key, "ctrl+n"):
		row := len(m.doc.Endpoints) - 1
		if cur.kind != slotTitle {
			row = cur.row
		}
		m.insertEndpointAfter(row)
	case isEnter(key):
		switch cur.kind {
		case slotField:
			m.insertFieldAfter(cur.row, cur.idx)
		default:
			if m.lastSlotOfRow(cur) {
				m.cursor.focused = false
			}
		}
	case isBackspace(key):
		text := m.slotText(cur)
		if text != "" {
			m.setSlotText(cur, dropLastRune(text))
			return m, nil
		}
		switch cur.kind {
		case slotField:
			m.removeField(cur.row, cur.idx)
		case slotURL:
			if len(m.doc.Endpoints[cur.row].Fields) == 0 {
				m.removeEndpoint(cur.row)
			}
		}
	case isKey(key, " "):
		if cur.kind == slotMethod {
			m.cycleMethod(cur.row)
			return m, nil
		}
		m.setSlotText(cur, m.slotText(cur)+" ")
	case isKey(key, "left", "right"):
		if cur.kind == slotMethod {
			m.cycleMethod(cur.row)
		}
	default:
		ch := key.String()
		if len([]rune(ch)) == 1 {
			if cur.kind == slotMethod {
				return m, nil
			}
			m.setSlotText(cur, m.slotText(cur)+ch)
		}
	}
	return m, nil
}

func dropLastRune(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}

// --- View ---

func (m EditorModel) View() string {
	var b strings.Builder
	cursorMark := CursorStyle.Render("█")

	renderText := func(s slot, style lipgloss.Style, placeholder string) string {
		text := m.slotText(s)
		out := style.Render(text)
		if text == "" {
			out = MutedStyle.Render(placeholder)
		}
		if m.cursor.focused && m.cursor.cur == s {
			out = style.Render(text) + cursorMark
		}
		return out
	}

	b.WriteString(renderText(slot{kind: slotTitle}, TitleStyle, "Enter a title…"))
	b.WriteString("\n\n")

	for i, ep := range m.doc.Endpoints {
		method := MethodStyle(ep.Method).Render(string(ep.Method))
		if m.cursor.focused && m.cursor.cur == (slot{kind: slotMethod, row: i}) {
			method = SelectedStyle.Render("[") + method + SelectedStyle.Render("]")
		}
		b.WriteString("  " + method + " ")
		b.WriteString(renderText(slot{kind: slotURL, row: i}, NormalStyle, "path…"))
		b.WriteString("\n")
		for j, f := range ep.Fields {
			b.WriteString("    " + strings.Repeat("  ", f.Indent))
			b.WriteString(renderText(slot{kind: slotField, row: i, idx: j}, NormalStyle, "describe this endpoint…"))
			b.WriteString("\n")
		}
	}
	return b.String()
}
