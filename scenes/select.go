package scenes

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/maxnichols/gravwell/config"
	"github.com/maxnichols/gravwell/levels"
)

// SelectScene is the level picker. Locked levels are greyed out.
type SelectScene struct {
	d  Director
	ui *ebitenui.UI
}

func NewSelectScene(d Director) *SelectScene {
	s := &SelectScene{d: d}
	s.ui = s.buildUI()
	return s
}

func difficultyColor(d levels.Difficulty) color.NRGBA {
	switch d {
	case levels.DifficultyEasy:
		return color.NRGBA{R: 50, G: 200, B: 50, A: 255}
	case levels.DifficultyMedium:
		return color.NRGBA{R: 200, G: 150, B: 50, A: 255}
	case levels.DifficultyHard:
		return color.NRGBA{R: 200, G: 50, B: 50, A: 255}
	case levels.DifficultyInsane:
		return color.NRGBA{R: 150, G: 0, B: 150, A: 255}
	default:
		return color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	}
}

func (s *SelectScene) buildUI() *ebitenui.UI {
	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(4),
			widget.GridLayoutOpts.Spacing(30, 20),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	catalog := s.d.Catalog()
	unlocked := s.d.Progress().Unlocked()
	for i, lvl := range catalog {
		index := i
		label := fmt.Sprintf("Level %d", lvl.LevelID)
		fill := difficultyColor(lvl.Difficulty)
		if best, ok := s.d.Progress().BestScore(lvl.LevelID); ok {
			label = fmt.Sprintf("Level %d\n%d", lvl.LevelID, best)
		}
		locked := i >= unlocked
		if locked {
			label = "LOCKED"
			fill = color.NRGBA{R: 50, G: 50, B: 50, A: 255}
		}
		btn := menuButton(label, fill, func() {
			s.d.ChangeScene(NewPlayScene(s.d, index))
		})
		btn.GetWidget().Disabled = locked
		grid.AddChild(btn)
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(grid)
	return &ebitenui.UI{Container: root}
}

func (s *SelectScene) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.d.ChangeScene(NewMenuScene(s.d))
		return
	}
	s.ui.Update()
}

func (s *SelectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 20, B: 30, A: 255})
	cx := float64(config.C.Width) / 2
	drawTextCentered(screen, "SELECT LEVEL", titleFace, cx, 30, color.White)
	drawText(screen, "Press ESC to go back", hudFace, 20, 100, color.RGBA{R: 150, G: 150, B: 150, A: 255})
	s.ui.Draw(screen)
}
