// Package scenes holds the game's screens and the director contract that
// routes between them: menu, level select, play, editor, and statistics.
package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/maxnichols/gravwell/editor"
	"github.com/maxnichols/gravwell/levels"
	"github.com/maxnichols/gravwell/progress"
)

// Scene is one screen. Update runs once per tick, Draw once per frame;
// Draw never mutates game state.
type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

// Director is the top-level router the scenes call back into.
type Director interface {
	ChangeScene(s Scene)
	Catalog() []*levels.Schema
	Progress() *progress.Tracker
	// CustomStore is the editor's custom-level slot.
	CustomStore() editor.Store
	// CustomSlotPath is the slot's on-disk location, or "" when the slot
	// is not file-backed (no hot reload then).
	CustomSlotPath() string
}
