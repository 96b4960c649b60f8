package layout

import (
	"slices"

	"github.com/gogpu/ggdom/arena"
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/style"
)

// Sizer reports the solved size of a node.
type Sizer interface {
	Size(id arena.NodeID) geom.Size
}

// Arrange computes the bounds of every node, indexed by node id.
//
// Children are placed along their parent's flex direction. A child with a
// declared main-axis size takes its solved size; the others share the
// remaining space equally, within their min and max bounds and never
// beyond their solved size, which for an undeclared axis is the
// MaxExtent preference. Space left over is distributed by the parent's
// justify-content. On the cross axis a child takes its declared size or
// stretches to the parent up to its solved size, and is positioned by the
// parent's align-items. The top-level sibling chain is
// stacked vertically inside the viewport.
func Arrange(styled *arena.Arena[style.Styled], sizer Sizer, viewport geom.Size) []geom.Rect {
	bounds := make([]geom.Rect, styled.Len())
	if styled.Len() == 0 {
		return bounds
	}
	a := arranger{styled: styled, sizer: sizer, bounds: bounds}
	var top []arena.NodeID
	for id := arena.NodeID(0); !id.IsNone(); id = styled.NextSibling(id) {
		top = append(top, id)
	}
	a.place(top, geom.FromSize(viewport), style.DefaultLayout())
	return bounds
}

type arranger struct {
	styled *arena.Arena[style.Styled]
	sizer  Sizer
	bounds []geom.Rect
}

type axisSpan struct {
	size, min, max *float32
}

func spans(l *style.Layout, horizontal bool) (main, cross axisSpan) {
	w := axisSpan{l.Width, l.MinWidth, l.MaxWidth}
	h := axisSpan{l.Height, l.MinHeight, l.MaxHeight}
	if horizontal {
		return w, h
	}
	return h, w
}

func (s axisSpan) clamp(v float32) float32 {
	if s.max != nil {
		v = min(v, *s.max)
	}
	if s.min != nil {
		v = max(v, *s.min)
	}
	return max(v, 0)
}

func (a *arranger) place(children []arena.NodeID, container geom.Rect, parent style.Layout) {
	if len(children) == 0 {
		return
	}
	horizontal := parent.Direction == style.Horizontal
	mainLen, crossLen := container.Size.Height, container.Size.Width
	if horizontal {
		mainLen, crossLen = crossLen, mainLen
	}

	mains := make([]float32, len(children))
	crosses := make([]float32, len(children))
	caps := make([]float32, len(children))
	var fixed float32
	flexible := 0
	for i, c := range children {
		l := &a.styled.Data(c).Layout
		m, x := spans(l, horizontal)
		solved := a.sizer.Size(c)
		solvedMain, solvedCross := solved.Height, solved.Width
		if horizontal {
			solvedMain, solvedCross = solvedCross, solvedMain
		}
		if m.size != nil {
			mains[i] = solvedMain
			fixed += solvedMain
		} else {
			mains[i] = -1
			caps[i] = solvedMain
			flexible++
		}
		if x.size != nil {
			crosses[i] = solvedCross
		} else {
			crosses[i] = min(x.clamp(crossLen), solvedCross)
		}
	}

	if flexible > 0 {
		share := max(mainLen-fixed, 0) / float32(flexible)
		for i, c := range children {
			if mains[i] < 0 {
				m, _ := spans(&a.styled.Data(c).Layout, horizontal)
				mains[i] = min(m.clamp(share), caps[i])
			}
		}
	}

	var used float32
	for _, m := range mains {
		used += m
	}
	leftover := max(mainLen-used, 0)
	n := float32(len(children))
	var pos, gap float32
	switch parent.Justify {
	case style.JustifyEnd:
		pos = leftover
	case style.JustifyCenter:
		pos = leftover / 2
	case style.JustifySpaceBetween:
		if len(children) > 1 {
			gap = leftover / (n - 1)
		}
	case style.JustifySpaceAround:
		gap = leftover / n
		pos = gap / 2
	}

	for i, c := range children {
		var off float32
		switch parent.AlignItems {
		case style.AlignCenter:
			off = (crossLen - crosses[i]) / 2
		case style.AlignEnd:
			off = crossLen - crosses[i]
		}
		var r geom.Rect
		if horizontal {
			r = geom.R(container.MinX()+pos, container.MinY()+off, mains[i], crosses[i])
		} else {
			r = geom.R(container.MinX()+off, container.MinY()+pos, crosses[i], mains[i])
		}
		a.bounds[c.Index()] = r
		pos += mains[i] + gap
	}

	for _, c := range children {
		a.place(slices.Collect(a.styled.Children(c)), a.bounds[c.Index()], a.styled.Data(c).Layout)
	}
}
