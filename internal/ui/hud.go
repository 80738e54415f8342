//go:build ebiten

package ui

import (
	"fmt"

	"riverflow/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUD cycles through the scene's adjustable parameters and applies +/-
// tweaks through the setter interfaces.
type HUD struct {
	controls []core.ParameterControl
	idx      int

	setFloat core.FloatParameterSetter
	setInt   core.IntParameterSetter
	value    func(key string) float64
}

// NewHUD builds a HUD over the given provider. value reports the current
// value for a control key so adjustments are relative.
func NewHUD(p core.ParameterControlsProvider, sf core.FloatParameterSetter, si core.IntParameterSetter, value func(string) float64) *HUD {
	return &HUD{
		controls: p.ParameterControls(),
		setFloat: sf,
		setInt:   si,
		value:    value,
	}
}

// Update processes parameter cycling and adjustment input.
func (h *HUD) Update() {
	if len(h.controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.idx = (h.idx + 1) % len(h.controls)
	}

	dir := 0.0
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		dir = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		dir = -1
	}
	if dir == 0 {
		return
	}

	c := h.controls[h.idx]
	next := h.value(c.Key) + dir*c.Step
	if c.HasMin && next < c.Min {
		next = c.Min
	}
	if c.HasMax && next > c.Max {
		next = c.Max
	}
	switch c.Type {
	case core.ParamTypeInt:
		h.setInt.SetIntParameter(c.Key, int(next+0.5))
	default:
		h.setFloat.SetFloatParameter(c.Key, next)
	}
}

// Draw renders the selected parameter in the lower-left corner.
func (h *HUD) Draw(screen *ebiten.Image) {
	if len(h.controls) == 0 {
		return
	}
	c := h.controls[h.idx]
	line := fmt.Sprintf("[tab] %s: %.2f  (-/= to adjust)", c.Label, h.value(c.Key))
	ebitenutil.DebugPrintAt(screen, line, 4, screen.Bounds().Dy()-16)
}
