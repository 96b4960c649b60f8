package style

import "github.com/gogpu/ggdom/geom"

// Background is the background property. Its variants are
// LinearGradient, RadialGradient, ImageBackground and NoBackground; all
// of them share KindBackground, so an override may switch variants.
type Background interface {
	Property
	isBackground()
}

// ExtendMode says how a gradient continues past its last stop.
type ExtendMode uint8

const (
	ExtendClamp ExtendMode = iota
	ExtendRepeat
)

// GradientStop is one color stop. A negative Offset is placed
// automatically, evenly between its explicit neighbors.
type GradientStop struct {
	Offset float32
	Color  Color
}

// GradientDirection is the direction of a linear gradient.
type GradientDirection uint8

const (
	ToBottom GradientDirection = iota
	ToTop
	ToRight
	ToLeft
	ToBottomRight
	ToBottomLeft
	ToTopRight
	ToTopLeft
)

// Points returns the start and end point of the gradient line in bounds.
func (d GradientDirection) Points(bounds geom.Rect) (start, end geom.Point) {
	x0, y0, x1, y1 := bounds.MinX(), bounds.MinY(), bounds.MaxX(), bounds.MaxY()
	cx, cy := bounds.Center().X, bounds.Center().Y
	switch d {
	case ToTop:
		return geom.Pt(cx, y1), geom.Pt(cx, y0)
	case ToRight:
		return geom.Pt(x0, cy), geom.Pt(x1, cy)
	case ToLeft:
		return geom.Pt(x1, cy), geom.Pt(x0, cy)
	case ToBottomRight:
		return geom.Pt(x0, y0), geom.Pt(x1, y1)
	case ToBottomLeft:
		return geom.Pt(x1, y0), geom.Pt(x0, y1)
	case ToTopRight:
		return geom.Pt(x0, y1), geom.Pt(x1, y0)
	case ToTopLeft:
		return geom.Pt(x1, y1), geom.Pt(x0, y0)
	default:
		return geom.Pt(cx, y0), geom.Pt(cx, y1)
	}
}

// LinearGradient paints a gradient along a direction.
type LinearGradient struct {
	Direction GradientDirection
	Stops     []GradientStop
	Extend    ExtendMode
}

// RadialGradient paints a gradient outward from the box center.
type RadialGradient struct {
	Stops  []GradientStop
	Extend ExtendMode
}

// ImageBackground paints an image registered under a CSS image id.
type ImageBackground struct {
	CSSID string
}

// NoBackground clears an earlier background declaration.
type NoBackground struct{}

func (LinearGradient) Kind() Kind  { return KindBackground }
func (RadialGradient) Kind() Kind  { return KindBackground }
func (ImageBackground) Kind() Kind { return KindBackground }
func (NoBackground) Kind() Kind    { return KindBackground }

func (LinearGradient) isBackground()  {}
func (RadialGradient) isBackground()  {}
func (ImageBackground) isBackground() {}
func (NoBackground) isBackground()    {}

// ResolveStops returns a copy of stops with every automatic offset filled
// in. The first and last stops default to 0 and 1.
func ResolveStops(stops []GradientStop) []GradientStop {
	out := make([]GradientStop, len(stops))
	copy(out, stops)
	n := len(out)
	if n == 0 {
		return out
	}
	if out[0].Offset < 0 {
		out[0].Offset = 0
	}
	if n > 1 && out[n-1].Offset < 0 {
		out[n-1].Offset = 1
	}
	for i := 1; i < n; {
		if out[i].Offset >= 0 {
			i++
			continue
		}
		j := i
		for out[j].Offset < 0 {
			j++
		}
		lo, hi := out[i-1].Offset, out[j].Offset
		step := (hi - lo) / float32(j-i+1)
		for k := i; k < j; k++ {
			out[k].Offset = lo + step*float32(k-i+1)
		}
		i = j
	}
	return out
}
