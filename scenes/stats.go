package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/maxnichols/gravwell/config"
)

// StatsScene shows the persisted progress record.
type StatsScene struct {
	d Director
}

func NewStatsScene(d Director) *StatsScene {
	return &StatsScene{d: d}
}

func (s *StatsScene) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.d.ChangeScene(NewMenuScene(s.d))
	}
}

func (s *StatsScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 20, B: 30, A: 255})
	cx := float64(config.C.Width) / 2
	drawTextCentered(screen, "STATISTICS", titleFace, cx, 30, color.White)

	rec := s.d.Progress().Record()
	total := len(s.d.Catalog())
	unlocked := rec.UnlockedLevels
	if unlocked > total {
		unlocked = total
	}
	lines := []string{
		fmt.Sprintf("Levels Unlocked: %d / %d", unlocked, total),
		fmt.Sprintf("Total Time Played: %ds", int(rec.TotalTime)),
		fmt.Sprintf("Total Deaths: %d", rec.TotalDeaths),
		fmt.Sprintf("Levels Completed: %d", len(rec.LevelScores)),
	}
	y := 150.0
	for _, line := range lines {
		drawText(screen, line, hudFace, cx-150, y, color.White)
		y += 40
	}

	drawTextCentered(screen, "Press ESC to go back", hudFace, cx, float64(config.C.Height)-50, color.RGBA{R: 150, G: 150, B: 150, A: 255})
}
