package displaylist

import (
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/style"
)

// ScrollbarStyle is the look of scrollbars drawn for overflowing text.
type ScrollbarStyle struct {
	// Width is the thickness of the scrollbar track.
	Width float32
	// Padding separates the bar and the arrows from the track edges.
	Padding    float32
	Background style.Color
	Triangle   style.Color
	Bar        style.Color
}

// DefaultScrollbarStyle returns a light gray scrollbar, 17px wide.
func DefaultScrollbarStyle() ScrollbarStyle {
	return ScrollbarStyle{
		Width:      17,
		Padding:    2,
		Background: style.RGB(241, 241, 241),
		Triangle:   style.RGB(163, 163, 163),
		Bar:        style.RGB(193, 193, 193),
	}
}

type arrow uint8

const (
	arrowUp arrow = iota
	arrowDown
	arrowLeft
	arrowRight
)

// scrollArea is the box scrollbars are laid out in. The border sits inside
// the box, so the left and bottom widths are taken off.
func scrollArea(bounds geom.Rect, border *style.Border) geom.Rect {
	if border != nil {
		bounds.Size.Width -= border.Widths.Left
		bounds.Size.Height -= border.Widths.Bottom
	}
	return bounds
}

// verticalScrollbar draws a track along the right edge with an arrow at
// each end and the bar in between.
func (c *buildContext) verticalScrollbar(info Info, border *style.Border) {
	s := c.scrollbar
	b := scrollArea(info.Bounds, border)
	item := Info{Clip: b, Tag: info.Tag}
	x := b.MaxX() - s.Width

	item.Bounds = geom.R(x, b.MinY(), s.Width, b.Size.Height)
	c.push(Rect{Info: item, Color: s.Background})

	item.Bounds = geom.R(x+s.Padding, b.MinY()+s.Width, s.Width-2*s.Padding, b.Size.Height-2*s.Width)
	c.push(Rect{Info: item, Color: s.Bar})

	tri := arrowRect(geom.Pt(x+s.Padding, b.MinY()+s.Padding), s)
	c.triangle(item, tri, arrowUp)
	tri.Origin.Y += b.Size.Height - s.Width + s.Padding
	c.triangle(item, tri, arrowDown)
}

// horizontalScrollbar is verticalScrollbar turned on its side, along the
// bottom edge.
func (c *buildContext) horizontalScrollbar(info Info, border *style.Border) {
	s := c.scrollbar
	b := scrollArea(info.Bounds, border)
	item := Info{Clip: b, Tag: info.Tag}
	y := b.MaxY() - s.Width

	item.Bounds = geom.R(b.MinX(), y, b.Size.Width, s.Width)
	c.push(Rect{Info: item, Color: s.Background})

	item.Bounds = geom.R(b.MinX()+s.Width, y+s.Padding, b.Size.Width-2*s.Width, s.Width-2*s.Padding)
	c.push(Rect{Info: item, Color: s.Bar})

	tri := arrowRect(geom.Pt(b.MinX()+s.Padding, y+s.Padding), s)
	c.triangle(item, tri, arrowLeft)
	tri.Origin.X += b.Size.Width - s.Width + s.Padding
	c.triangle(item, tri, arrowRight)
}

// arrowRect returns the square an arrow is drawn in: the padded track
// square at origin, halved and centered.
func arrowRect(origin geom.Point, s ScrollbarStyle) geom.Rect {
	side := s.Width - 2*s.Padding
	return geom.R(origin.X+side/4, origin.Y+side/4, side/2, side/2)
}

// triangle draws an arrow as a border whose widths meet in the middle of
// the box, with only the side opposite the tip colored. The clip and tag
// come from info.
func (c *buildContext) triangle(info Info, bounds geom.Rect, dir arrow) {
	hidden := style.BorderSide{Color: style.Transparent, Style: style.BorderHidden}
	solid := style.BorderSide{Color: c.scrollbar.Triangle, Style: style.BorderSolid}
	it := Border{
		Info: Info{Bounds: bounds, Clip: info.Clip, Tag: info.Tag},
		Widths: geom.SideOffsets{
			Top:    bounds.Size.Height / 2,
			Bottom: bounds.Size.Height / 2,
			Left:   bounds.Size.Width / 2,
			Right:  bounds.Size.Width / 2,
		},
		Top: hidden, Right: hidden, Bottom: hidden, Left: hidden,
	}
	switch dir {
	case arrowUp:
		it.Bottom = solid
	case arrowDown:
		it.Top = solid
	case arrowLeft:
		it.Right = solid
	case arrowRight:
		it.Left = solid
	}
	c.push(it)
}
