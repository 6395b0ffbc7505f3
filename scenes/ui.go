package scenes

import (
	"bytes"
	"image/color"
	"log"

	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// hudFace is the small fixed face used for HUD text and button labels.
var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// titleFace is the larger face for screen titles.
var titleFace ebtext.Face = loadTitleFace()

func loadTitleFace() ebtext.Face {
	src, err := ebtext.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("scenes: warning: title font unavailable, falling back: %v", err)
		return hudFace
	}
	return &ebtext.GoTextFace{Source: src, Size: 32}
}

func drawText(screen *ebiten.Image, s string, face ebtext.Face, x, y float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, face, op)
}

func drawTextCentered(screen *ebiten.Image, s string, face ebtext.Face, cx, y float64, clr color.Color) {
	w, _ := ebtext.Measure(s, face, 0)
	drawText(screen, s, face, cx-w/2, y, clr)
}

func solidNineSlice(c color.Color) *imageui.NineSlice {
	return imageui.NewNineSliceColor(c)
}

// menuButton builds a labeled button in the game's plain style.
func menuButton(label string, fill color.NRGBA, onClick func()) *widget.Button {
	img := solidNineSlice(fill)
	hover := solidNineSlice(color.NRGBA{
		R: lighten(fill.R), G: lighten(fill.G), B: lighten(fill.B), A: fill.A,
	})
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Hover: hover, Pressed: hover}),
		widget.ButtonOpts.Text(label, &hudFace, &widget.ButtonTextColor{
			Idle:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			Disabled: color.NRGBA{R: 0x64, G: 0x64, B: 0x64, A: 0xff},
		}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(200, 50),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

func lighten(c uint8) uint8 {
	if c > 235 {
		return 255
	}
	return c + 20
}
