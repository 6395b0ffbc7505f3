package scenes

import (
	"image/color"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/maxnichols/gravwell/config"
)

// MenuScene is the title screen.
type MenuScene struct {
	d  Director
	ui *ebitenui.UI
}

func NewMenuScene(d Director) *MenuScene {
	m := &MenuScene{d: d}
	m.ui = m.buildUI()
	return m
}

func (m *MenuScene) buildUI() *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(20),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 180}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	panel.AddChild(menuButton("Play", color.NRGBA{R: 50, G: 100, B: 200, A: 255}, func() {
		m.d.ChangeScene(NewPlayScene(m.d, 0))
	}))
	panel.AddChild(menuButton("Level Select", color.NRGBA{R: 50, G: 150, B: 100, A: 255}, func() {
		m.d.ChangeScene(NewSelectScene(m.d))
	}))
	panel.AddChild(menuButton("Level Editor", color.NRGBA{R: 200, G: 150, B: 50, A: 255}, func() {
		m.d.ChangeScene(NewEditScene(m.d))
	}))
	panel.AddChild(menuButton("Statistics", color.NRGBA{R: 150, G: 50, B: 150, A: 255}, func() {
		m.d.ChangeScene(NewStatsScene(m.d))
	}))
	panel.AddChild(menuButton("Quit", color.NRGBA{R: 200, G: 50, B: 50, A: 255}, func() {
		os.Exit(0)
	}))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func (m *MenuScene) Update() {
	m.ui.Update()
}

func (m *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 20, B: 30, A: 255})
	cx := float64(config.C.Width) / 2
	drawTextCentered(screen, "GRAVITY WELL", titleFace, cx, 70, color.RGBA{R: 100, G: 200, B: 255, A: 255})
	drawTextCentered(screen, "Control the Laws of Physics", hudFace, cx, 130, color.RGBA{R: 150, G: 150, B: 150, A: 255})
	m.ui.Draw(screen)
}
