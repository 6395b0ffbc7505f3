// Package input polls the devices and reduces them to the boolean intent
// signals the session runtime consumes. The runtime never sees a device.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/maxnichols/gravwell/session"
)

// Poll gathers this tick's held signals from keyboard and, when present,
// the first gamepad. Arrows steer gravity; W/S (or the shoulder buttons)
// thicken and thin the drag.
func Poll() session.Intents {
	in := session.Intents{
		Up:           ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:         ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:         ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:        ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		RaiseDamping: ebiten.IsKeyPressed(ebiten.KeyW),
		LowerDamping: ebiten.IsKeyPressed(ebiten.KeyS),
	}

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		id := ids[0]
		in.Up = in.Up || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop)
		in.Down = in.Down || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom)
		in.Left = in.Left || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft)
		in.Right = in.Right || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
		in.RaiseDamping = in.RaiseDamping || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		in.LowerDamping = in.LowerDamping || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopLeft)
	}

	return in
}

// PausePressed is the single-frame pause toggle signal.
func PausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return true
	}
	for _, id := range ebiten.GamepadIDs() {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

// RestartPressed is the single-frame level restart signal.
func RestartPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}
