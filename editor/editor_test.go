package editor

import (
	"errors"
	"testing"

	"github.com/maxnichols/gravwell/levels"
)

func TestDragSnapsToGrid(t *testing.T) {
	cases := []struct {
		name           string
		downX, downY   float64
		upX, upY       float64
		want           levels.RectDef
	}{
		{"forward_drag", 17, 23, 84, 56, levels.RectDef{X: 20, Y: 20, W: 60, H: 40}},
		{"reverse_drag", 84, 56, 17, 23, levels.RectDef{X: 20, Y: 20, W: 60, H: 40}},
		{"exact_grid", 100, 100, 200, 150, levels.RectDef{X: 100, Y: 100, W: 100, H: 50}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := New()
			e.SelectTool(ToolWall)
			e.PointerDown(c.downX, c.downY)
			e.PointerUp(c.upX, c.upY)

			walls := e.Walls()
			if len(walls) != 1 {
				t.Fatalf("expected 1 wall, got %d", len(walls))
			}
			if walls[0] != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, walls[0])
			}
		})
	}
}

func TestZeroExtentDragDiscarded(t *testing.T) {
	e := New()
	e.SelectTool(ToolHazard)

	// Both points snap to the same cell.
	e.PointerDown(12, 12)
	e.PointerUp(13, 11)
	if len(e.Hazards()) != 0 {
		t.Fatalf("zero-extent drag should not commit, got %d hazards", len(e.Hazards()))
	}

	// Zero width, positive height.
	e.PointerDown(10, 10)
	e.PointerUp(12, 50)
	if len(e.Hazards()) != 0 {
		t.Fatalf("zero-width drag should not commit")
	}
}

func TestReleaseWithoutDragIsNoop(t *testing.T) {
	e := New()
	e.SelectTool(ToolWall)
	e.PointerUp(50, 50)
	if len(e.Walls()) != 0 {
		t.Fatalf("release without an active drag committed a wall")
	}
}

func TestSwitchingToolCancelsDrag(t *testing.T) {
	e := New()
	e.SelectTool(ToolWall)
	e.PointerDown(10, 10)
	e.SelectTool(ToolHazard)
	e.PointerUp(100, 100)
	if len(e.Walls()) != 0 || len(e.Hazards()) != 0 {
		t.Fatalf("tool switch should cancel the active drag")
	}
}

func TestGoalToolReplaces(t *testing.T) {
	e := New()
	e.SelectTool(ToolGoal)
	e.PointerDown(100, 100)
	e.PointerUp(200, 200)
	e.PointerDown(300, 300)
	e.PointerUp(400, 350)

	want := levels.RectDef{X: 300, Y: 300, W: 100, H: 50}
	if e.Goal() != want {
		t.Fatalf("expected latest goal %+v, got %+v", want, e.Goal())
	}
}

func TestStartToolAppendsAndUndo(t *testing.T) {
	e := New()
	e.SelectTool(ToolStart)
	e.PointerDown(207, 113)
	e.PointerDown(300, 300)

	starts := e.Starts()
	if len(starts) != 3 {
		t.Fatalf("expected default plus 2 placed starts, got %d", len(starts))
	}
	if starts[1] != (levels.Point{X: 210, Y: 110}) {
		t.Fatalf("start not snapped: %+v", starts[1])
	}

	e.RemoveLastStart()
	e.RemoveLastStart()
	e.RemoveLastStart()
	e.RemoveLastStart()
	if len(e.Starts()) != 1 {
		t.Fatalf("undo must keep at least one start, got %d", len(e.Starts()))
	}
}

func TestClearRestoresDefaults(t *testing.T) {
	e := New()
	e.SelectTool(ToolWall)
	e.PointerDown(10, 10)
	e.PointerUp(100, 100)
	e.SelectTool(ToolStart)
	e.PointerDown(300, 300)

	e.Clear()
	if len(e.Walls()) != 0 || len(e.Hazards()) != 0 {
		t.Fatalf("clear should drop all placed geometry")
	}
	if len(e.Starts()) != 1 {
		t.Fatalf("clear should leave the default start, got %d", len(e.Starts()))
	}
	if e.Goal() != (levels.RectDef{X: 600, Y: 400, W: 80, H: 80}) {
		t.Fatalf("clear should restore the default goal, got %+v", e.Goal())
	}
}

func TestSchemaMarksCustom(t *testing.T) {
	e := New()
	s := e.Schema()
	if s.LevelID != CustomLevelID {
		t.Fatalf("expected level id %d, got %d", CustomLevelID, s.LevelID)
	}
	if !s.IsCustom() {
		t.Fatalf("editor output should be marked custom")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("editor output should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e := New()
	e.SelectTool(ToolWall)
	e.PointerDown(100, 100)
	e.PointerUp(300, 120)
	e.SelectTool(ToolHazard)
	e.PointerDown(400, 300)
	e.PointerUp(450, 350)
	e.SelectTool(ToolGoal)
	e.PointerDown(600, 400)
	e.PointerUp(700, 500)

	st := &MemoryStore{}
	if err := e.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := New()
	s, err := loaded.LoadCustom(st)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := e.Schema()
	if len(s.Walls) != len(want.Walls) || s.Walls[0] != want.Walls[0] {
		t.Fatalf("walls did not round-trip: %+v vs %+v", s.Walls, want.Walls)
	}
	if len(s.Hazards) != len(want.Hazards) || s.Hazards[0] != want.Hazards[0] {
		t.Fatalf("hazards did not round-trip: %+v vs %+v", s.Hazards, want.Hazards)
	}
	if s.GoalRect != want.GoalRect {
		t.Fatalf("goal did not round-trip: %+v vs %+v", s.GoalRect, want.GoalRect)
	}
	if len(loaded.Starts()) != len(want.StartPositions) {
		t.Fatalf("starts did not adopt: %d vs %d", len(loaded.Starts()), len(want.StartPositions))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	st := FileStore{Dir: t.TempDir()}

	if _, err := st.LoadCustom(); !errors.Is(err, ErrNoCustomLevel) {
		t.Fatalf("expected ErrNoCustomLevel on empty slot, got %v", err)
	}

	e := New()
	e.SelectTool(ToolHazard)
	e.PointerDown(200, 200)
	e.PointerUp(260, 260)
	if err := e.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	s, err := st.LoadCustom()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Hazards) != 1 || s.Hazards[0] != (levels.RectDef{X: 200, Y: 200, W: 60, H: 60}) {
		t.Fatalf("hazard did not survive the file round trip: %+v", s.Hazards)
	}
}
