package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/maxnichols/gravwell/config"
)

func main() {
	startLevel := flag.Int("level", -1, "jump straight into this catalog level index")
	catalogPath := flag.String("catalog", "", "play an external catalog file instead of the built-in one")
	customDir := flag.String("customdir", ".", "directory holding the custom level slot")
	debug := flag.Bool("debug", false, "enable debug overlay")
	flag.Parse()

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("Gravity Well")

	game := NewGame(*startLevel, *catalogPath, *customDir, *debug)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
