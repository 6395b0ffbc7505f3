package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/maxnichols/gravwell/config"
	"github.com/maxnichols/gravwell/input"
	"github.com/maxnichols/gravwell/levels"
	"github.com/maxnichols/gravwell/physics"
	"github.com/maxnichols/gravwell/session"
)

type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingNextLevel
	pendingMenu
)

// PlayScene drives one level session: input intents in, one runtime tick
// per frame, and a read-only render pass over the session state.
type PlayScene struct {
	d       Director
	rt      *session.Runtime
	schema  *levels.Schema
	index   int // catalog index, -1 for a custom level
	pending pendingAction
	loadErr error

	pauseUI *ebitenui.UI

	hazardPulse *gween.Sequence
	goalPulse   *gween.Sequence
	hazardT     float32
	goalT       float32
}

// NewPlayScene starts the catalog level at index.
func NewPlayScene(d Director, index int) *PlayScene {
	catalog := d.Catalog()
	if index < 0 || index >= len(catalog) {
		return &PlayScene{d: d, loadErr: fmt.Errorf("no catalog level at index %d", index)}
	}
	return newPlayScene(d, catalog[index], index)
}

// NewCustomPlayScene playtests an editor-authored schema.
func NewCustomPlayScene(d Director, schema *levels.Schema) *PlayScene {
	return newPlayScene(d, schema, -1)
}

func newPlayScene(d Director, schema *levels.Schema, index int) *PlayScene {
	p := &PlayScene{d: d, schema: schema, index: index}

	factory := func(g physics.Vec, damping float64) physics.World {
		return physics.NewChipmunkWorld(g, damping, physics.Material{
			Elasticity: config.C.Ball.Elasticity,
			Friction:   config.C.Ball.Friction,
		})
	}
	p.rt = session.New(factory, p)
	if err := p.rt.Load(schema); err != nil {
		p.loadErr = err
		return p
	}
	log.Printf("play: loaded level %d - %s (%s)", schema.LevelID, schema.Name, schema.Difficulty)

	p.pauseUI = p.buildPauseUI()
	p.hazardPulse = gween.NewSequence(
		gween.New(0, 1, 0.4, ease.InOutQuad),
		gween.New(1, 0, 0.4, ease.InOutQuad),
	)
	p.goalPulse = gween.NewSequence(
		gween.New(0, 1, 0.6, ease.InOutQuad),
		gween.New(1, 0, 0.6, ease.InOutQuad),
	)
	return p
}

// Reporter implementation. These run inside rt.Tick, so they only record
// state and set a pending action handled after the tick returns.

func (p *PlayScene) LevelComplete(levelID, score int) {
	p.d.Progress().RecordCompletion(levelID, score, p.index, p.rt.ElapsedSeconds())
	log.Printf("play: level %d complete, score %d", levelID, score)
	p.pending = pendingNextLevel
}

func (p *PlayScene) CustomLevelComplete() {
	log.Printf("play: custom level complete")
	p.pending = pendingMenu
}

func (p *PlayScene) GameOver() {
	log.Printf("play: game over")
	p.pending = pendingMenu
}

func (p *PlayScene) BallDestroyed() {
	p.d.Progress().RecordDeath()
}

func (p *PlayScene) Update() {
	if p.loadErr != nil {
		log.Printf("play: cannot start level: %v", p.loadErr)
		p.d.ChangeScene(NewMenuScene(p.d))
		return
	}

	if input.PausePressed() {
		p.rt.TogglePause()
	}
	if input.RestartPressed() {
		p.restart()
	}

	if p.rt.Paused() {
		p.pauseUI.Update()
		return
	}

	p.rt.Apply(input.Poll())
	p.rt.Tick()

	switch p.pending {
	case pendingNextLevel:
		p.pending = pendingNone
		p.advance()
	case pendingMenu:
		p.pending = pendingNone
		p.d.ChangeScene(NewMenuScene(p.d))
		return
	}

	p.hazardT = stepPulse(p.hazardPulse)
	p.goalT = stepPulse(p.goalPulse)
}

// stepPulse advances a pulse sequence by one tick and restarts it once
// the whole sequence has played through.
func stepPulse(seq *gween.Sequence) float32 {
	v, _, seqDone := seq.Update(float32(config.Timestep))
	if seqDone {
		seq.Reset()
	}
	return v
}

func (p *PlayScene) restart() {
	if err := p.rt.Load(p.schema); err != nil {
		log.Printf("play: restart failed: %v", err)
		p.d.ChangeScene(NewMenuScene(p.d))
	}
}

func (p *PlayScene) advance() {
	catalog := p.d.Catalog()
	next := p.index + 1
	if next >= len(catalog) {
		p.d.ChangeScene(NewStatsScene(p.d))
		return
	}
	p.index = next
	p.schema = catalog[next]
	if err := p.rt.Load(p.schema); err != nil {
		log.Printf("play: cannot load level %d: %v", next, err)
		p.d.ChangeScene(NewMenuScene(p.d))
		return
	}
	log.Printf("play: loaded level %d - %s (%s)", p.schema.LevelID, p.schema.Name, p.schema.Difficulty)
}

func (p *PlayScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 20, G: 20, B: 30, A: 255})
	if p.loadErr != nil {
		return
	}

	p.drawField(screen)
	p.drawParticles(screen)
	p.drawBalls(screen)
	p.drawHUD(screen)

	if p.rt.State() == session.Exploding || p.rt.State() == session.GameOver {
		p.drawDeathBanner(screen)
	}
	if p.rt.Paused() {
		p.pauseUI.Draw(screen)
	}
}

func (p *PlayScene) drawField(screen *ebiten.Image) {
	w := float32(config.C.Width)
	h := float32(config.C.Height)
	t := float32(config.C.BoundaryThickness)
	wallColor := color.RGBA{R: 150, G: 150, B: 150, A: 255}

	vector.FillRect(screen, 0, 0, w, t, wallColor, false)
	vector.FillRect(screen, 0, h-t, w, t, wallColor, false)
	vector.FillRect(screen, 0, 0, t, h, wallColor, false)
	vector.FillRect(screen, w-t, 0, t, h, wallColor, false)
	for _, wall := range p.schema.Walls {
		vector.FillRect(screen, float32(wall.X), float32(wall.Y), float32(wall.W), float32(wall.H), wallColor, false)
	}

	hazardColor := color.RGBA{R: uint8(150 + 105*p.hazardT), G: 0, B: 0, A: 255}
	for _, hz := range p.schema.Hazards {
		vector.FillRect(screen, float32(hz.X), float32(hz.Y), float32(hz.W), float32(hz.H), hazardColor, false)
		vector.StrokeRect(screen, float32(hz.X), float32(hz.Y), float32(hz.W), float32(hz.H), 2, color.RGBA{R: 100, A: 255}, false)
	}

	goal := p.schema.GoalRect
	goalColor := color.RGBA{G: uint8(150 + 105*p.goalT), A: 255}
	vector.FillRect(screen, float32(goal.X), float32(goal.Y), float32(goal.W), float32(goal.H), goalColor, false)
}

func (p *PlayScene) drawParticles(screen *ebiten.Image) {
	for _, pt := range p.rt.Effects().Particles() {
		f := pt.Fade()
		clr := color.RGBA{
			R: uint8(float64(pt.Color.R) * f),
			G: uint8(float64(pt.Color.G) * f),
			B: uint8(float64(pt.Color.B) * f),
			A: 255,
		}
		vector.FillCircle(screen, float32(pt.X), float32(pt.Y), float32(pt.Size), clr, false)
	}
}

func (p *PlayScene) drawBalls(screen *ebiten.Image) {
	r := float32(config.C.Ball.Radius)
	for _, pos := range p.rt.BallPositions() {
		vector.FillCircle(screen, float32(pos.X), float32(pos.Y), r, color.RGBA{R: 255, G: 50, B: 50, A: 255}, false)
		vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), r, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255}, false)
	}
}

func (p *PlayScene) drawHUD(screen *ebiten.Image) {
	hud := fmt.Sprintf("Level %d: %s | Time: %ds | Lives: %d | Drag: %.2f",
		p.schema.LevelID, p.schema.Name, int(p.rt.ElapsedSeconds()), p.rt.Lives(), p.rt.Damping())
	drawText(screen, hud, hudFace, 20, 20, color.White)
	drawText(screen, "Arrows: Gravity | W/S: Drag | R: Restart | ESC: Pause", hudFace, 20, 40, color.RGBA{R: 200, G: 200, B: 200, A: 255})
}

func (p *PlayScene) drawDeathBanner(screen *ebiten.Image) {
	cx := float64(config.C.Width) / 2
	cy := float64(config.C.Height)/2 - 20
	if p.rt.Lives() <= 0 {
		drawTextCentered(screen, "GAME OVER!", titleFace, cx, cy, color.RGBA{R: 255, G: 50, B: 50, A: 255})
		return
	}
	msg := fmt.Sprintf("RESPAWNING... (%d lives left)", p.rt.Lives())
	drawTextCentered(screen, msg, titleFace, cx, cy, color.RGBA{R: 255, G: 150, B: 50, A: 255})
}

func (p *PlayScene) buildPauseUI() *ebitenui.UI {
	panelImg := solidNineSlice(color.NRGBA{A: 200})

	title := widget.NewText(
		widget.TextOpts.Text("PAUSED", &titleFace, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(config.C.Width/2, config.C.Height/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(menuButton("Resume", color.NRGBA{R: 50, G: 200, B: 50, A: 255}, func() {
		p.rt.TogglePause()
	}))
	panel.AddChild(menuButton("Restart", color.NRGBA{R: 200, G: 150, B: 50, A: 255}, func() {
		p.restart()
	}))
	panel.AddChild(menuButton("Main Menu", color.NRGBA{R: 100, G: 100, B: 200, A: 255}, func() {
		p.d.ChangeScene(NewMenuScene(p.d))
	}))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
