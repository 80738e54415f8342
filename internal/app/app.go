//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"riverflow/internal/core"
	"riverflow/internal/render"
	"riverflow/internal/rivers"
	"riverflow/internal/terrain"
	"riverflow/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// pickRadius is the node selection distance in world units.
const pickRadius = 0.8

var (
	validEdgeColor   = color.RGBA{R: 62, G: 130, B: 220, A: 255}
	invalidEdgeColor = color.RGBA{R: 205, G: 70, B: 55, A: 255}
	nodeColor        = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	pendingColor     = color.RGBA{R: 240, G: 205, B: 70, A: 255}
	trailColor       = color.RGBA{R: 225, G: 240, B: 255, A: 160}
)

// Game adapts a river scene to the ebiten.Game interface. All graph edits
// raised by the editor are queued on the scene and applied between frames.
type Game struct {
	scene   *rivers.Scene
	field   *terrain.Field
	painter *render.TerrainPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	timer   *core.FixedStep

	scale int
	seed  int64

	paused   bool
	tickOnce bool

	pendingFrom rivers.NodeID
	dragging    rivers.NodeID
	lastCursorX int
	lastCursorY int

	lastEditErr string
	trailBuf    []core.Vec3
}

// New constructs a Game over the provided scene and terrain.
func New(scene *rivers.Scene, field *terrain.Field, scale, tps int, seed int64) *Game {
	_, gridW := field.Heights()
	g := &Game{
		scene:    scene,
		field:    field,
		painter:  render.NewTerrainPainter(gridW, gridW),
		overlay:  ui.NewOverlay(),
		timer:    core.NewFixedStep(tps),
		scale:    scale,
		seed:     seed,
		trailBuf: make([]core.Vec3, scene.Simulation().TrailLength()),
	}
	g.hud = ui.NewHUD(scene, scene, scene, g.paramValue)
	scene.OnEditError(func(err error) { g.lastEditErr = err.Error() })
	return g
}

// paramValue reports the live value behind a HUD control key.
func (g *Game) paramValue(key string) float64 {
	p := g.scene.Config().Params
	switch key {
	case "give":
		return p.Give
	case "lateral_gravity":
		return p.LateralGravity
	case "path_smoothing":
		return p.PathSmoothing
	case "relax_iterations":
		return float64(p.RelaxIterations)
	case "smoothing_passes":
		return float64(p.SmoothingPasses)
	case "mid_width":
		return p.MidWidth
	case "wobble_amount":
		return p.WobbleAmount
	case "flow_rate":
		return p.FlowRate
	}
	return 0
}

// Reset restarts the particle population with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.scene.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.handleEditing()
	g.overlay.Update()
	g.hud.Update()

	if (!g.paused || g.tickOnce) && g.timer.ShouldStep() {
		g.scene.Step(g.timer.Delta())
		g.tickOnce = false
	}
	return nil
}

// handleEditing translates mouse input into queued graph edits.
func (g *Game) handleEditing() {
	mx, my := ebiten.CursorPosition()
	wx, wz := g.screenToWorld(mx, my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if id, ok := g.pickNode(wx, wz); ok {
			g.dragging = id
			if g.pendingFrom != 0 && g.pendingFrom != id {
				from := g.pendingFrom
				g.scene.Edit(func(gr *rivers.Graph) error {
					_, err := gr.AddEdge(from, id)
					return err
				})
				g.pendingFrom = 0
			} else {
				g.pendingFrom = id
			}
		} else {
			g.scene.Edit(func(gr *rivers.Graph) error {
				gr.AddNode(wx, wz)
				return nil
			})
			g.pendingFrom = 0
		}
		g.lastCursorX, g.lastCursorY = mx, my
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && g.dragging != 0 {
		if mx != g.lastCursorX || my != g.lastCursorY {
			id := g.dragging
			g.scene.Edit(func(gr *rivers.Graph) error {
				return gr.MoveNode(id, wx, wz)
			})
			g.lastCursorX, g.lastCursorY = mx, my
		}
	} else {
		g.dragging = 0
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		if id, ok := g.pickNode(wx, wz); ok {
			g.scene.Edit(func(gr *rivers.Graph) error {
				gr.RemoveNode(id)
				return nil
			})
			if g.pendingFrom == id {
				g.pendingFrom = 0
			}
			g.dragging = 0
		}
	}
}

// pickNode returns the nearest node within pickRadius of (wx, wz).
func (g *Game) pickNode(wx, wz float64) (rivers.NodeID, bool) {
	var best rivers.NodeID
	bestDist := pickRadius
	found := false
	g.scene.Graph().Nodes(func(n *rivers.Node) {
		d := core.Vec2{X: n.X - wx, Z: n.Z - wz}.Len()
		if d <= bestDist {
			best = n.ID
			bestDist = d
			found = true
		}
	})
	return best, found
}

func (g *Game) pixelsPerUnit() float64 {
	cfg := g.field.Config()
	return float64(cfg.Resolution*g.scale) / cfg.Size
}

func (g *Game) worldToScreen(x, z float64) (float32, float32) {
	ppu := g.pixelsPerUnit()
	return float32(x * ppu), float32(z * ppu)
}

func (g *Game) screenToWorld(px, py int) (float64, float64) {
	ppu := g.pixelsPerUnit()
	return float64(px) / ppu, float64(py) / ppu
}

// Draw renders terrain, channels, particles, and the overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	heights, _ := g.field.Heights()
	g.painter.Blit(screen, heights, 0, g.field.Config().HeightScale, float64(g.scale))

	g.scene.Graph().Edges(func(e *rivers.Edge) {
		col := validEdgeColor
		width := float32(2)
		if !e.Valid() {
			col = invalidEdgeColor
			width = 1
		}
		pts := e.Points()
		for i := 1; i < len(pts); i++ {
			x0, y0 := g.worldToScreen(pts[i-1].X, pts[i-1].Z)
			x1, y1 := g.worldToScreen(pts[i].X, pts[i].Z)
			vector.StrokeLine(screen, x0, y0, x1, y1, width, col, true)
		}
	})

	g.scene.Graph().Nodes(func(n *rivers.Node) {
		col := nodeColor
		if n.ID == g.pendingFrom {
			col = pendingColor
		}
		x, y := g.worldToScreen(n.X, n.Z)
		vector.DrawFilledCircle(screen, x, y, 4, col, true)
	})

	sim := g.scene.Simulation()
	for i := 0; i < sim.Count(); i++ {
		n := sim.TrailInto(i, g.trailBuf)
		for k := 1; k < n; k++ {
			x0, y0 := g.worldToScreen(g.trailBuf[k-1].X, g.trailBuf[k-1].Z)
			x1, y1 := g.worldToScreen(g.trailBuf[k].X, g.trailBuf[k].Z)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, trailColor, false)
		}
	}

	status := []string{
		fmt.Sprintf("tps %.0f  nodes %d  edges %d (valid %d)  particles %d",
			ebiten.ActualTPS(),
			g.scene.Graph().NodeCount(),
			g.scene.Graph().EdgeCount(),
			len(g.scene.Graph().ValidEdges()),
			sim.Count()),
	}
	if g.paused {
		status = append(status, "paused")
	}
	if g.lastEditErr != "" {
		status = append(status, "edit rejected: "+g.lastEditErr)
	}
	g.overlay.Draw(screen, status)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	_, gridW := g.field.Heights()
	return gridW * g.scale, gridW * g.scale
}
