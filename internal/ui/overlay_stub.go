//go:build !ebiten

package ui

// Overlay is a placeholder for headless builds.
type Overlay struct{}

// NewOverlay returns an inert overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op in headless builds.
func (o *Overlay) Draw(any, []string) {}
