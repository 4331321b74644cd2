// Package gesture translates raw pointer events on the slot grid into
// task mutations. It is a small state machine: a press arms a potential
// click, movement past a threshold promotes it to a drag, and release
// commits exactly one outcome (or none) against the store. Between
// press and release the machine only projects a preview; the store is
// never touched until release.
package gesture

import (
	"math"

	"dayplan/internal/grid"
	"dayplan/internal/slot"
	"dayplan/internal/store"
	"dayplan/internal/task"
)

// PromotionRadius is the pointer travel, in pixels, past which a press
// stops being a click and becomes a drag.
const PromotionRadius = 5.0

// Op is the current interaction phase.
type Op int

const (
	OpNone Op = iota
	OpClick
	OpDrag
)

// Edge names which end of a task a resize drags.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// ResultKind classifies what a release did.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultCreated
	ResultSelected
	ResultResized
	ResultMoved
	ResultRejected
)

// Result reports the outcome of a release. Task is set for every kind
// except ResultNone, including ResultRejected, where it names the task
// whose mutation was refused.
type Result struct {
	Kind ResultKind
	Task *task.Task
}

// Preview is the projected shape of the gesture in flight. It is purely
// presentational: rendering it never commits anything.
type Preview struct {
	Active    bool
	Kind      ResultKind
	TaskID    int64
	StartSlot int
	EndSlot   int
}

// Geometry maps grid pixels to slots. GridLeft and GridWidth bound the
// grid columns; a zero GridWidth leaves the right edge unbounded.
type Geometry struct {
	GridTop    int
	SlotHeight int
	GridLeft   int
	GridWidth  int
}

func (g Geometry) containsX(x int) bool {
	if x < g.GridLeft {
		return false
	}
	return g.GridWidth <= 0 || x < g.GridLeft+g.GridWidth
}

func (g Geometry) slotAt(y int) int {
	return slot.FromPixel(y, g.GridTop, g.SlotHeight)
}

func (g Geometry) taskMidline(t *task.Task) int {
	top := g.GridTop + t.StartSlot*g.SlotHeight
	bottom := g.GridTop + t.EndSlot*g.SlotHeight
	return (top + bottom) / 2
}

// Machine drives the press/move/release cycle for one day grid. It is
// not safe for concurrent use; the host event loop owns it.
type Machine struct {
	store *store.Store
	geom  Geometry
	date  string

	op       Op
	downX    int
	downY    int
	downSlot int
	curSlot  int
	altHeld  bool

	target *task.Task
	edge   Edge
}

// New creates a machine bound to a store, a pixel geometry and a day.
func New(st *store.Store, geom Geometry, date string) *Machine {
	return &Machine{store: st, geom: geom, date: date}
}

// SetDate retargets the machine to another day, abandoning any gesture
// in flight.
func (m *Machine) SetDate(date string) {
	m.date = date
	m.reset()
}

// SetGeometry adjusts the pixel mapping, abandoning any gesture in
// flight. The TUI calls this when the window is resized.
func (m *Machine) SetGeometry(geom Geometry) {
	m.geom = geom
	m.reset()
}

// Date returns the day the machine currently operates on.
func (m *Machine) Date() string { return m.date }

// Op exposes the current phase, mainly for rendering decisions.
func (m *Machine) Op() Op { return m.op }

// PointerDown arms a gesture. A press outside the grid columns, in the
// time gutter or the sidebar, arms nothing. When the press lands on a
// task, that task becomes the resize target and the grabbed edge is
// chosen by which half of the task the pointer hit.
func (m *Machine) PointerDown(x, y int) {
	m.reset()
	if !m.geom.containsX(x) {
		return
	}
	m.op = OpClick
	m.downX, m.downY = x, y
	m.downSlot = m.geom.slotAt(y)
	m.curSlot = m.downSlot

	for _, t := range m.store.TasksOn(m.date) {
		if t.Contains(m.downSlot) {
			m.target = t
			if y < m.geom.taskMidline(t) {
				m.edge = EdgeStart
			} else {
				m.edge = EdgeEnd
			}
			break
		}
	}
}

// PointerMove tracks the pointer. Travel beyond PromotionRadius turns
// the click into a drag; a drag never demotes back.
func (m *Machine) PointerMove(x, y int, alt bool) {
	if m.op == OpNone {
		return
	}
	m.altHeld = alt
	m.curSlot = m.geom.slotAt(y)
	if m.op == OpClick {
		dx := float64(x - m.downX)
		dy := float64(y - m.downY)
		if math.Hypot(dx, dy) > PromotionRadius {
			m.op = OpDrag
		}
	}
}

// PointerUp commits the gesture and resets the machine. The commit
// matrix:
//
//	click on task            select it
//	click on free slot       create a one-slot task
//	click on occupied slot   nothing (the press selected via the task hit)
//	drag on free space       create a task spanning the dragged range
//	drag on task             resize the grabbed edge
//	modifier drag on task    move the task, duration preserved
//
// Mutations that would overlap an existing task are refused whole; the
// result then carries ResultRejected and the untouched task.
func (m *Machine) PointerUp() Result {
	defer m.reset()

	switch m.op {
	case OpClick:
		return m.commitClick()
	case OpDrag:
		return m.commitDrag()
	default:
		return Result{Kind: ResultNone}
	}
}

func (m *Machine) commitClick() Result {
	if m.target != nil {
		m.store.Select(m.target.ID)
		return Result{Kind: ResultSelected, Task: m.target}
	}
	s := m.downSlot
	if s < 0 || s >= slot.Count {
		return Result{Kind: ResultNone}
	}
	if grid.Occupied(m.store.All(), m.date, s, 0) {
		return Result{Kind: ResultNone}
	}
	return m.create(s, s+1)
}

func (m *Machine) commitDrag() Result {
	if m.target != nil {
		if m.altHeld {
			return m.commitMove()
		}
		return m.commitResize()
	}

	lo, hi := orderedRange(m.downSlot, m.curSlot)
	lo = slot.Clamp(lo)
	hi = min(hi, slot.Count)
	if hi <= lo {
		hi = lo + 1
	}
	if grid.HasOverlap(m.store.All(), m.date, lo, hi, 0) {
		return Result{Kind: ResultRejected}
	}
	return m.create(lo, hi)
}

func (m *Machine) commitResize() Result {
	t := m.target
	all := m.store.All()

	var start, end int
	switch m.edge {
	case EdgeStart:
		start = grid.AdjustStart(all, m.date, m.curSlot, t.EndSlot, t.ID)
		end = t.EndSlot
	case EdgeEnd:
		start = t.StartSlot
		end = grid.AdjustEnd(all, m.date, t.StartSlot, m.curSlot+1, t.ID)
	}

	if grid.HasOverlap(all, m.date, start, end, t.ID) {
		return Result{Kind: ResultRejected, Task: t}
	}
	if _, ok := m.store.SetSlots(t.ID, start, end); !ok {
		return Result{Kind: ResultRejected, Task: t}
	}
	m.store.Select(t.ID)
	return Result{Kind: ResultResized, Task: t}
}

func (m *Machine) commitMove() Result {
	t := m.target
	start, end, ok := m.projectMove(t)
	if !ok {
		return Result{Kind: ResultRejected, Task: t}
	}
	if _, ok := m.store.SetSlots(t.ID, start, end); !ok {
		return Result{Kind: ResultRejected, Task: t}
	}
	m.store.Select(t.ID)
	return Result{Kind: ResultMoved, Task: t}
}

// projectMove shifts the whole task by the dragged slot delta, clamping
// the shift so the duration survives. It reports ok=false when the
// landing range touches another task; a move is never shortened or
// nudged to fit.
func (m *Machine) projectMove(t *task.Task) (start, end int, ok bool) {
	delta := m.curSlot - m.downSlot
	dur := t.EndSlot - t.StartSlot

	start = t.StartSlot + delta
	if start < 0 {
		start = 0
	}
	if start+dur > slot.Count {
		start = slot.Count - dur
	}
	end = start + dur

	if grid.HasOverlap(m.store.All(), m.date, start, end, t.ID) {
		return t.StartSlot, t.EndSlot, false
	}
	return start, end, true
}

// Preview projects what PointerUp would shape, without committing. The
// host renders it as the live drag feedback.
func (m *Machine) Preview() Preview {
	if m.op != OpDrag {
		return Preview{}
	}

	if m.target != nil {
		if m.altHeld {
			start, end, _ := m.projectMove(m.target)
			return Preview{Active: true, Kind: ResultMoved, TaskID: m.target.ID, StartSlot: start, EndSlot: end}
		}
		start, end := m.target.StartSlot, m.target.EndSlot
		switch m.edge {
		case EdgeStart:
			start = grid.AdjustStart(m.store.All(), m.date, m.curSlot, end, m.target.ID)
		case EdgeEnd:
			end = grid.AdjustEnd(m.store.All(), m.date, start, m.curSlot+1, m.target.ID)
		}
		return Preview{Active: true, Kind: ResultResized, TaskID: m.target.ID, StartSlot: start, EndSlot: end}
	}

	lo, hi := orderedRange(m.downSlot, m.curSlot)
	lo = slot.Clamp(lo)
	hi = min(hi, slot.Count)
	if hi <= lo {
		hi = lo + 1
	}
	return Preview{Active: true, Kind: ResultCreated, StartSlot: lo, EndSlot: hi}
}

func (m *Machine) create(start, end int) Result {
	t, err := task.New(m.date, start, end, "", "", m.store.NextColor(m.date))
	if err != nil {
		return Result{Kind: ResultRejected}
	}
	m.store.Create(t)
	m.store.Select(t.ID)
	return Result{Kind: ResultCreated, Task: t}
}

func (m *Machine) reset() {
	m.op = OpNone
	m.target = nil
	m.edge = EdgeStart
	m.altHeld = false
	m.downSlot = 0
	m.curSlot = 0
	m.downX = 0
	m.downY = 0
}

func orderedRange(a, b int) (lo, hi int) {
	if a <= b {
		return a, b + 1
	}
	return b, a + 1
}
