//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// TerrainPainter updates a single RGBA image from terrain height samples.
type TerrainPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewTerrainPainter allocates a painter for a height grid of size w*h.
func NewTerrainPainter(w, h int) *TerrainPainter {
	tp := &TerrainPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	tp.img = ebiten.NewImage(w, h)
	return tp
}

// Blit shades the heights into the painter image and draws it scaled onto
// dst.
func (tp *TerrainPainter) Blit(dst *ebiten.Image, heights []float64, hmin, hmax float64, scale float64) {
	if len(heights) != tp.w*tp.h {
		return
	}
	fillTerrainRGBA(tp.buf, heights, hmin, hmax)
	tp.img.WritePixels(tp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	dst.DrawImage(tp.img, op)
}

// Size returns the dimensions of the underlying image.
func (tp *TerrainPainter) Size() (int, int) { return tp.w, tp.h }
