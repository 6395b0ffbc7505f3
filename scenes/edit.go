package scenes

import (
	"errors"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/maxnichols/gravwell/config"
	"github.com/maxnichols/gravwell/editor"
	"github.com/maxnichols/gravwell/input"
)

// EditScene hosts the level editor: a toolbar on top, the canvas below.
// Entering the editor discards any in-progress play session; the two
// never run concurrently.
type EditScene struct {
	d  Director
	ed *editor.Editor
	ui *ebitenui.UI

	watcher *editor.Watcher

	status      string
	statusTicks int
}

func NewEditScene(d Director) *EditScene {
	e := &EditScene{d: d, ed: editor.New()}
	e.ui = e.buildUI()

	// Pick up a previously saved slot so editing resumes where it left
	// off. A missing slot is not an error.
	if _, err := e.ed.LoadCustom(d.CustomStore()); err != nil && !errors.Is(err, editor.ErrNoCustomLevel) {
		log.Printf("editor: warning: %v", err)
	}

	if path := d.CustomSlotPath(); path != "" {
		w, err := editor.NewWatcher(path)
		if err != nil {
			log.Printf("editor: warning: slot watch unavailable: %v", err)
		} else {
			e.watcher = w
		}
	}
	return e
}

func (e *EditScene) buildUI() *ebitenui.UI {
	toolbar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.NRGBA{R: 40, G: 40, B: 55, A: 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(config.C.Width, config.C.Editor.ToolbarHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	tools := []editor.Tool{editor.ToolWall, editor.ToolHazard, editor.ToolStart, editor.ToolGoal}
	var toolButtons []*widget.Button
	for _, t := range tools {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{
				Idle:    solidNineSlice(color.NRGBA{R: 60, G: 60, B: 80, A: 255}),
				Hover:   solidNineSlice(color.NRGBA{R: 80, G: 80, B: 100, A: 255}),
				Pressed: solidNineSlice(color.NRGBA{R: 100, G: 100, B: 160, A: 255}),
			}),
			widget.ButtonOpts.Text(t.String(), &hudFace, &widget.ButtonTextColor{
				Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			}),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(64, 36)),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}
	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for i, b := range toolButtons {
				if args.Active == b {
					e.ed.SelectTool(tools[i])
					return
				}
			}
		}),
	)
	group.SetActive(toolButtons[0])

	toolbar.AddChild(e.actionButton("Save", func() {
		if err := e.ed.Save(e.d.CustomStore()); err != nil {
			log.Printf("editor: %v", err)
			e.setStatus("save failed")
			return
		}
		e.setStatus("saved")
	}))
	toolbar.AddChild(e.actionButton("Play", func() {
		if err := e.ed.Save(e.d.CustomStore()); err != nil {
			log.Printf("editor: %v", err)
			e.setStatus("save failed")
			return
		}
		schema, err := e.ed.LoadCustom(e.d.CustomStore())
		if err != nil {
			log.Printf("editor: %v", err)
			e.setStatus("playtest failed")
			return
		}
		e.teardown()
		e.d.ChangeScene(NewCustomPlayScene(e.d, schema))
	}))
	toolbar.AddChild(e.actionButton("Load", func() {
		if _, err := e.ed.LoadCustom(e.d.CustomStore()); err != nil {
			log.Printf("editor: %v", err)
			e.setStatus("nothing to load")
			return
		}
		e.setStatus("loaded")
	}))
	toolbar.AddChild(e.actionButton("Clear", func() {
		e.ed.Clear()
		e.setStatus("cleared")
	}))
	toolbar.AddChild(e.actionButton("Menu", func() {
		e.teardown()
		e.d.ChangeScene(NewMenuScene(e.d))
	}))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(toolbar)
	return &ebitenui.UI{Container: root}
}

func (e *EditScene) actionButton(label string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    solidNineSlice(color.NRGBA{R: 50, G: 90, B: 50, A: 255}),
			Hover:   solidNineSlice(color.NRGBA{R: 70, G: 110, B: 70, A: 255}),
			Pressed: solidNineSlice(color.NRGBA{R: 90, G: 130, B: 90, A: 255}),
		}),
		widget.ButtonOpts.Text(label, &hudFace, &widget.ButtonTextColor{
			Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(64, 36)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (e *EditScene) setStatus(s string) {
	e.status = s
	e.statusTicks = 120
}

func (e *EditScene) teardown() {
	if e.watcher != nil {
		_ = e.watcher.Close()
		e.watcher = nil
	}
}

func (e *EditScene) Update() {
	e.ui.Update()

	if input.PausePressed() {
		e.teardown()
		e.d.ChangeScene(NewMenuScene(e.d))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		e.ed.RemoveLastStart()
	}

	e.drainWatcher()

	mx, my := ebiten.CursorPosition()
	onCanvas := my > config.C.Editor.ToolbarHeight
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && onCanvas {
		e.ed.PointerDown(float64(mx), float64(my))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		e.ed.PointerUp(float64(mx), float64(my))
	}

	if e.statusTicks > 0 {
		e.statusTicks--
	}
}

func (e *EditScene) drainWatcher() {
	if e.watcher == nil {
		return
	}
	select {
	case _, ok := <-e.watcher.Events:
		if !ok {
			e.watcher = nil
			return
		}
		if _, err := e.ed.LoadCustom(e.d.CustomStore()); err != nil {
			log.Printf("editor: slot changed on disk but reload failed: %v", err)
			return
		}
		e.setStatus("reloaded from disk")
		log.Printf("editor: reloaded custom slot from disk")
	case err, ok := <-e.watcher.Errors:
		if ok && err != nil {
			log.Printf("editor: watch error: %v", err)
		}
	default:
	}
}

func (e *EditScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 15, G: 15, B: 25, A: 255})
	e.drawGrid(screen)
	e.drawGeometry(screen)
	e.ui.Draw(screen)

	hint := "Drag to place | Start tool: click | Z: undo start | ESC: menu"
	drawText(screen, hint, hudFace, 20, float64(config.C.Height)-24, color.RGBA{R: 150, G: 150, B: 150, A: 255})
	if e.statusTicks > 0 {
		drawText(screen, e.status, hudFace, 20, float64(config.C.Editor.ToolbarHeight)+10, color.RGBA{R: 255, G: 255, B: 100, A: 255})
	}
}

func (e *EditScene) drawGrid(screen *ebiten.Image) {
	grid := color.RGBA{R: 35, G: 35, B: 50, A: 255}
	step := float32(config.C.Editor.GridSize * 5)
	w := float32(config.C.Width)
	h := float32(config.C.Height)
	top := float32(config.C.Editor.ToolbarHeight)
	for x := step; x < w; x += step {
		vector.StrokeLine(screen, x, top, x, h, 1, grid, false)
	}
	for y := top + step; y < h; y += step {
		vector.StrokeLine(screen, 0, y, w, y, 1, grid, false)
	}
}

func (e *EditScene) drawGeometry(screen *ebiten.Image) {
	for _, wall := range e.ed.Walls() {
		vector.FillRect(screen, float32(wall.X), float32(wall.Y), float32(wall.W), float32(wall.H), color.RGBA{R: 150, G: 150, B: 150, A: 255}, false)
	}
	for _, hz := range e.ed.Hazards() {
		vector.FillRect(screen, float32(hz.X), float32(hz.Y), float32(hz.W), float32(hz.H), color.RGBA{R: 200, A: 255}, false)
	}
	goal := e.ed.Goal()
	vector.FillRect(screen, float32(goal.X), float32(goal.Y), float32(goal.W), float32(goal.H), color.RGBA{G: 180, A: 255}, false)

	for _, s := range e.ed.Starts() {
		vector.StrokeCircle(screen, float32(s.X), float32(s.Y), float32(config.C.Ball.Radius), 2, color.RGBA{R: 255, G: 255, B: 255, A: 255}, false)
	}

	mx, my := ebiten.CursorPosition()
	if rect, ok := e.ed.DragRect(float64(mx), float64(my)); ok {
		vector.StrokeRect(screen, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), 1, color.RGBA{R: 255, G: 255, B: 255, A: 200}, false)
	}
}
