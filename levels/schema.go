// Package levels defines the level schema shared by the game runtime and
// the level editor, plus the embedded catalog the game ships with.
package levels

import (
	"encoding/json"
	"fmt"

	"github.com/maxnichols/gravwell/common"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyInsane Difficulty = "insane"
	DifficultyCustom Difficulty = "custom"
)

func (d Difficulty) valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyInsane, DifficultyCustom:
		return true
	}
	return false
}

// Point is serialized as a two-element JSON array [x, y].
type Point struct {
	X, Y float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 2 {
		return fmt.Errorf("point: expected [x, y], got %d elements", len(arr))
	}
	p.X, p.Y = arr[0], arr[1]
	return nil
}

// Vec is a 2D vector, serialized like Point.
type Vec struct {
	X, Y float64
}

func (v Vec) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{v.X, v.Y})
}

func (v *Vec) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 2 {
		return fmt.Errorf("vec: expected [x, y], got %d elements", len(arr))
	}
	v.X, v.Y = arr[0], arr[1]
	return nil
}

// RectDef is an axis-aligned rectangle serialized as [x, y, w, h].
type RectDef struct {
	X, Y, W, H float64
}

func (r RectDef) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{r.X, r.Y, r.W, r.H})
}

func (r *RectDef) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 4 {
		return fmt.Errorf("rect: expected [x, y, w, h], got %d elements", len(arr))
	}
	r.X, r.Y, r.W, r.H = arr[0], arr[1], arr[2], arr[3]
	return nil
}

func (r RectDef) Rect() common.Rect {
	return common.Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// SchemaError reports a structurally invalid level schema. A load that
// fails with SchemaError leaves any prior session untouched.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("level schema: field %q: %s", e.Field, e.Reason)
}

// Schema is the level data format. It is immutable once loaded; the
// runtime and the editor both consume exactly this shape.
type Schema struct {
	LevelID    int        `json:"level_id"`
	Name       string     `json:"name"`
	Difficulty Difficulty `json:"difficulty"`
	// Lives defaults to 3 when absent from the JSON.
	Lives          int     `json:"lives,omitempty"`
	StartPositions []Point `json:"start_positions,omitempty"`
	// StartPos is the legacy single-ball spawn field; Normalize folds it
	// into StartPositions.
	StartPos     *Point    `json:"start_pos,omitempty"`
	GravityStart Vec       `json:"gravity_start"`
	DampingStart float64   `json:"damping_start"`
	GoalRect     RectDef   `json:"goal_rect"`
	Walls        []RectDef `json:"walls"`
	Hazards      []RectDef `json:"hazards,omitempty"`
}

// Normalize fills defaults: absent lives become 3 and a legacy start_pos
// becomes the sole entry of StartPositions.
func (s *Schema) Normalize() {
	if s.Lives == 0 {
		s.Lives = 3
	}
	if len(s.StartPositions) == 0 && s.StartPos != nil {
		s.StartPositions = []Point{*s.StartPos}
		s.StartPos = nil
	}
}

// Validate checks the schema for structural errors. Call Normalize first.
func (s *Schema) Validate() error {
	if s == nil {
		return &SchemaError{Field: "schema", Reason: "missing"}
	}
	if !s.Difficulty.valid() {
		return &SchemaError{Field: "difficulty", Reason: fmt.Sprintf("unknown value %q", string(s.Difficulty))}
	}
	if s.Lives < 1 {
		return &SchemaError{Field: "lives", Reason: "must be at least 1"}
	}
	if len(s.StartPositions) == 0 {
		return &SchemaError{Field: "start_positions", Reason: "at least one spawn point required"}
	}
	if s.DampingStart <= 0 || s.DampingStart > 1 {
		return &SchemaError{Field: "damping_start", Reason: "must be in (0, 1]"}
	}
	if s.GoalRect.W <= 0 || s.GoalRect.H <= 0 {
		return &SchemaError{Field: "goal_rect", Reason: "missing or zero-extent"}
	}
	for i, w := range s.Walls {
		if w.W < 0 || w.H < 0 {
			return &SchemaError{Field: fmt.Sprintf("walls[%d]", i), Reason: "negative extent"}
		}
	}
	for i, h := range s.Hazards {
		if h.W < 0 || h.H < 0 {
			return &SchemaError{Field: fmt.Sprintf("hazards[%d]", i), Reason: "negative extent"}
		}
	}
	return nil
}

// IsCustom reports whether the level came from the editor's custom slot
// rather than the built-in catalog.
func (s *Schema) IsCustom() bool {
	return s.Difficulty == DifficultyCustom
}

// Parse decodes, normalizes, and validates a single schema document.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &SchemaError{Field: "json", Reason: err.Error()}
	}
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
