package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/maxnichols/gravwell/config"
	"github.com/maxnichols/gravwell/editor"
	"github.com/maxnichols/gravwell/levels"
	"github.com/maxnichols/gravwell/progress"
	"github.com/maxnichols/gravwell/scenes"
)

// Game routes ebiten's loop to the active scene and owns everything that
// outlives a scene change: the level catalog, progress tracking, and the
// custom-level slot.
type Game struct {
	scene   scenes.Scene
	catalog []*levels.Schema
	tracker *progress.Tracker
	store   editor.FileStore

	debug bool
}

func NewGame(startLevel int, catalogPath, customDir string, debug bool) *Game {
	var catalog []*levels.Schema
	var err error
	if catalogPath != "" {
		catalog, err = levels.LoadCatalogFile(catalogPath)
	} else {
		catalog, err = levels.LoadCatalog()
	}
	if err != nil {
		log.Fatalf("load level catalog: %v", err)
	}

	saveStore, err := progress.OpenStore("gravwell")
	if err != nil {
		log.Printf("save data unavailable, progress will not persist: %v", err)
	}

	g := &Game{
		catalog: catalog,
		tracker: progress.NewTracker(saveStore),
		store:   editor.FileStore{Dir: customDir},
		debug:   debug,
	}
	if startLevel >= 0 && startLevel < len(catalog) {
		g.scene = scenes.NewPlayScene(g, startLevel)
	} else {
		g.scene = scenes.NewMenuScene(g)
	}
	return g
}

func (g *Game) ChangeScene(s scenes.Scene) { g.scene = s }

func (g *Game) Catalog() []*levels.Schema { return g.catalog }

func (g *Game) Progress() *progress.Tracker { return g.tracker }

func (g *Game) CustomStore() editor.Store { return g.store }

func (g *Game) CustomSlotPath() string { return g.store.Path() }

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.2f    FPS: %.2f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.C.Width, config.C.Height
}
