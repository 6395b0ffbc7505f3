// Package editor implements the level authoring tool: grid-snapped drag
// gestures accumulate walls, hazards, spawn points, and a goal, and the
// result is emitted as the same schema the runtime loads.
package editor

import (
	"github.com/maxnichols/gravwell/common"
	"github.com/maxnichols/gravwell/config"
	"github.com/maxnichols/gravwell/levels"
)

type Tool int

const (
	ToolWall Tool = iota
	ToolHazard
	ToolStart
	ToolGoal
)

func (t Tool) String() string {
	switch t {
	case ToolWall:
		return "Wall"
	case ToolHazard:
		return "Hazard"
	case ToolStart:
		return "Start"
	case ToolGoal:
		return "Goal"
	default:
		return "Unknown"
	}
}

// CustomLevelID marks the editor's output; the runtime reports custom
// completions differently from catalog ones.
const CustomLevelID = 999

// Editor accumulates level geometry. Its state is disjoint from any play
// session.
type Editor struct {
	walls   []levels.RectDef
	hazards []levels.RectDef
	goal    levels.RectDef
	starts  []levels.Point

	tool       Tool
	dragAnchor *levels.Point
}

func New() *Editor {
	e := &Editor{}
	e.Clear()
	return e
}

// Clear resets the accumulators to a fresh level: one default spawn, an
// empty wall and hazard set, and a default goal.
func (e *Editor) Clear() {
	e.walls = nil
	e.hazards = nil
	e.starts = []levels.Point{{X: 100, Y: 100}}
	e.goal = levels.RectDef{X: 600, Y: 400, W: 80, H: 80}
	e.dragAnchor = nil
}

// SelectTool changes the active tool. It has no effect on the
// accumulators.
func (e *Editor) SelectTool(t Tool) {
	e.tool = t
	e.dragAnchor = nil
}

func (e *Editor) Tool() Tool { return e.tool }

func (e *Editor) snap(x, y float64) levels.Point {
	g := config.C.Editor.GridSize
	return levels.Point{X: common.Snap(x, g), Y: common.Snap(y, g)}
}

// PointerDown starts a drag for the rectangle tools, or immediately
// appends a spawn point for the start tool. Coordinates are raw cursor
// positions; snapping happens here.
func (e *Editor) PointerDown(x, y float64) {
	p := e.snap(x, y)
	switch e.tool {
	case ToolStart:
		e.starts = append(e.starts, p)
	default:
		e.dragAnchor = &p
	}
}

// PointerUp completes an active drag. The committed rectangle spans the
// anchor and the snapped release point; zero-extent drags are discarded.
func (e *Editor) PointerUp(x, y float64) {
	if e.dragAnchor == nil {
		return
	}
	anchor := *e.dragAnchor
	e.dragAnchor = nil

	rect, ok := spanRect(anchor, e.snap(x, y))
	if !ok {
		return
	}
	switch e.tool {
	case ToolWall:
		e.walls = append(e.walls, rect)
	case ToolHazard:
		e.hazards = append(e.hazards, rect)
	case ToolGoal:
		e.goal = rect
	}
}

// spanRect derives the min-corner rectangle between two snapped points.
// Both extents must be strictly positive for the rectangle to commit.
func spanRect(a, b levels.Point) (levels.RectDef, bool) {
	x := a.X
	if b.X < x {
		x = b.X
	}
	y := a.Y
	if b.Y < y {
		y = b.Y
	}
	w := a.X - b.X
	if w < 0 {
		w = -w
	}
	h := a.Y - b.Y
	if h < 0 {
		h = -h
	}
	if w <= 0 || h <= 0 {
		return levels.RectDef{}, false
	}
	return levels.RectDef{X: x, Y: y, W: w, H: h}, true
}

// DragAnchor reports the active drag origin, if any.
func (e *Editor) DragAnchor() (levels.Point, bool) {
	if e.dragAnchor == nil {
		return levels.Point{}, false
	}
	return *e.dragAnchor, true
}

// DragRect previews the rectangle a release at (x, y) would commit.
func (e *Editor) DragRect(x, y float64) (levels.RectDef, bool) {
	if e.dragAnchor == nil {
		return levels.RectDef{}, false
	}
	return spanRect(*e.dragAnchor, e.snap(x, y))
}

func (e *Editor) Walls() []levels.RectDef { return e.walls }

func (e *Editor) Hazards() []levels.RectDef { return e.hazards }

func (e *Editor) Goal() levels.RectDef { return e.goal }

func (e *Editor) Starts() []levels.Point { return e.starts }

// RemoveLastStart drops the most recently placed spawn point, keeping at
// least one.
func (e *Editor) RemoveLastStart() {
	if len(e.starts) > 1 {
		e.starts = e.starts[:len(e.starts)-1]
	}
}

// Schema emits the accumulated geometry as a custom-slot level with fixed
// defaults for everything the editor does not author.
func (e *Editor) Schema() *levels.Schema {
	starts := make([]levels.Point, len(e.starts))
	copy(starts, e.starts)
	walls := make([]levels.RectDef, len(e.walls))
	copy(walls, e.walls)
	hazards := make([]levels.RectDef, len(e.hazards))
	copy(hazards, e.hazards)

	return &levels.Schema{
		LevelID:        CustomLevelID,
		Name:           "Custom Level",
		Difficulty:     levels.DifficultyCustom,
		Lives:          3,
		StartPositions: starts,
		GravityStart:   levels.Vec{X: 0, Y: config.C.GravityForce},
		DampingStart:   config.C.Damping.Max,
		GoalRect:       e.goal,
		Walls:          walls,
		Hazards:        hazards,
	}
}

// Save writes the current geometry to the custom-level slot.
func (e *Editor) Save(st Store) error {
	return st.SaveCustom(e.Schema())
}

// LoadCustom reads the custom slot back into the accumulators and returns
// the schema for an immediate playtest.
func (e *Editor) LoadCustom(st Store) (*levels.Schema, error) {
	s, err := st.LoadCustom()
	if err != nil {
		return nil, err
	}
	e.adopt(s)
	return s, nil
}

func (e *Editor) adopt(s *levels.Schema) {
	e.walls = append(e.walls[:0], s.Walls...)
	e.hazards = append(e.hazards[:0], s.Hazards...)
	e.goal = s.GoalRect
	e.starts = append(e.starts[:0], s.StartPositions...)
	if len(e.starts) == 0 {
		e.starts = []levels.Point{{X: 100, Y: 100}}
	}
	e.dragAnchor = nil
}
