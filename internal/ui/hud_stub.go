//go:build !ebiten

package ui

import "riverflow/internal/core"

// HUD is a placeholder for headless builds.
type HUD struct{}

// NewHUD returns an inert HUD.
func NewHUD(core.ParameterControlsProvider, core.FloatParameterSetter, core.IntParameterSetter, func(string) float64) *HUD {
	return &HUD{}
}

// Update is a no-op in headless builds.
func (h *HUD) Update() {}

// Draw is a no-op in headless builds.
func (h *HUD) Draw(any) {}
