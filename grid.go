package main

import (
	"math"

	"lightbox/viewer"
)

const gridGap = 8

// gridLayout places thumbnails in rows inside a window
type gridLayout struct {
	width, height int
	thumb         int
	cols          int
}

func newGridLayout(width, height, thumb int) gridLayout {
	return gridLayout{
		width:  width,
		height: height,
		thumb:  thumb,
		cols:   max(1, (width-gridGap)/(thumb+gridGap)),
	}
}

func (l gridLayout) pitch() float64 {
	return float64(l.thumb + gridGap)
}

// cell returns the top-left corner of cell idx in content coordinates
func (l gridLayout) cell(idx int) (x, y float64) {
	col, row := idx%l.cols, idx/l.cols
	return gridGap + float64(col)*l.pitch(), gridGap + float64(row)*l.pitch()
}

func (l gridLayout) rows(count int) int {
	return (count + l.cols - 1) / l.cols
}

func (l gridLayout) maxScroll(count int) float64 {
	content := gridGap + float64(l.rows(count))*l.pitch()
	return math.Max(0, content-float64(l.height))
}

// hit returns the cell under the screen point, or -1 when the point is on a gap or past the end
func (l gridLayout) hit(x, y, scroll float64, count int) int {
	y += scroll
	if x < gridGap || y < gridGap {
		return -1
	}
	col := int((x - gridGap) / l.pitch())
	row := int((y - gridGap) / l.pitch())
	if col >= l.cols {
		return -1
	}
	cx, cy := l.cell(row*l.cols + col)
	if x-cx > float64(l.thumb) || y-cy > float64(l.thumb) {
		return -1
	}
	idx := row*l.cols + col
	if idx >= count {
		return -1
	}
	return idx
}

// reveal returns the scroll offset closest to scroll that shows cell idx entirely
func (l gridLayout) reveal(idx int, scroll float64, count int) float64 {
	_, y := l.cell(idx)
	top := y - gridGap
	bottom := y + float64(l.thumb) + gridGap - float64(l.height)
	switch {
	case top < scroll:
		scroll = top
	case bottom > scroll:
		scroll = bottom
	}
	return viewer.Clamp(scroll, 0, l.maxScroll(count))
}

// Grid is the thumbnail overview shown while the viewer is closed.
// It accepts pointer samples: a drag scrolls, a tap opens the tapped media.
type Grid struct {
	count     int
	layout    gridLayout
	selection int
	scroll    float64
	tapSlop   float64
	onOpen    func(idx int)

	pressed      bool
	origin       viewer.Sample
	travel       float64
	scrollOrigin float64
}

// NewGrid creates a grid over count media
func NewGrid(count, thumb int, tapSlop float64, onOpen func(idx int)) *Grid {
	return &Grid{
		count:   count,
		layout:  newGridLayout(defaultWidth, defaultHeight, thumb),
		tapSlop: tapSlop,
		onOpen:  onOpen,
	}
}

// Resize relayouts the grid for a new window size
func (g *Grid) Resize(width, height int) {
	if width == g.layout.width && height == g.layout.height {
		return
	}
	g.layout = newGridLayout(width, height, g.layout.thumb)
	g.scroll = g.layout.reveal(g.selection, g.scroll, g.count)
}

func (g *Grid) Selection() int { return g.selection }

func (g *Grid) Scroll() float64 { return g.scroll }

func (g *Grid) Layout() gridLayout { return g.layout }

// Select moves the selection to idx and scrolls it into view
func (g *Grid) Select(idx int) {
	if g.count == 0 {
		return
	}
	g.selection = viewer.Wrap(idx, g.count)
	g.scroll = g.layout.reveal(g.selection, g.scroll, g.count)
}

// MoveSelection moves the selection by dx cells and dy rows, stopping at the ends
func (g *Grid) MoveSelection(dx, dy int) {
	if g.count == 0 {
		return
	}
	next := g.selection + dx + dy*g.layout.cols
	next = max(0, min(g.count-1, next))
	g.Select(next)
}

func (g *Grid) Start(s viewer.Sample) viewer.Effect {
	g.pressed = true
	g.origin = s
	g.travel = 0
	g.scrollOrigin = g.scroll
	return viewer.EffectNone
}

func (g *Grid) Move(s viewer.Sample) viewer.Effect {
	if !g.pressed {
		return viewer.EffectNone
	}
	d := s.Pos().Sub(g.origin.Pos())
	g.travel = math.Max(g.travel, d.Manhattan())
	if g.travel >= g.tapSlop {
		g.scroll = viewer.Clamp(g.scrollOrigin-d.Y, 0, g.layout.maxScroll(g.count))
	}
	return viewer.EffectNone
}

func (g *Grid) End() viewer.Effect {
	if !g.pressed {
		return viewer.EffectNone
	}
	g.pressed = false
	if g.travel >= g.tapSlop {
		return viewer.EffectNone
	}
	idx := g.layout.hit(g.origin.X, g.origin.Y, g.scroll, g.count)
	if idx < 0 {
		return viewer.EffectNone
	}
	g.selection = idx
	if g.onOpen != nil {
		g.onOpen(idx)
	}
	return viewer.EffectNone
}

func (g *Grid) Cancel() viewer.Effect {
	g.pressed = false
	return viewer.EffectNone
}
