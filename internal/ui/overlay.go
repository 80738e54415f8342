//go:build ebiten

package ui

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay renders the status and help text block. Toggled with F1.
type Overlay struct {
	visible  bool
	showHelp bool
}

// NewOverlay returns an overlay that starts visible.
func NewOverlay() *Overlay {
	return &Overlay{visible: true}
}

// Update processes overlay toggle input.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		o.visible = !o.visible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		o.showHelp = !o.showHelp
	}
}

var helpLines = []string{
	"left click: place node / pick node (second pick connects)",
	"drag node: move it, rebuilding its channels",
	"right click: delete node",
	"space: pause   n: single tick   r: reset   s: reseed",
	"tab: next parameter   -/=: adjust   f1: status   f2: help",
}

// Draw renders the status lines and, when toggled, the help block.
func (o *Overlay) Draw(screen *ebiten.Image, status []string) {
	if !o.visible {
		return
	}
	ebitenutil.DebugPrint(screen, strings.Join(status, "\n"))
	if o.showHelp {
		h := screen.Bounds().Dy()
		ebitenutil.DebugPrintAt(screen, strings.Join(helpLines, "\n"), 4, h-16*len(helpLines)-20)
	}
}
