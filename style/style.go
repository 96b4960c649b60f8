// Package style resolves cascaded style declarations into flattened
// per-node paint and layout records.
//
// Declarations are either static or dynamic. A dynamic declaration names an
// override key; when the frame's Overrides holds a value for that key it
// replaces the declared default. Later declarations of the same property win,
// except overflow, which accumulates.
package style

// DefaultFontSize is the font size used when no font-size is declared.
const DefaultFontSize FontSize = 16

// DefaultLineHeight is the line height multiplier used when none is declared.
const DefaultLineHeight LineHeight = 1

// Rect is the resolved paint style of one node. Nil pointer fields mean the
// property was never set and nothing is drawn for it.
type Rect struct {
	BorderRadius    *BorderRadius
	BackgroundColor *Color
	Background      Background
	Border          *Border
	BoxShadow       *Shadow
	Overflow        *Overflow
	TextAlign       *TextAlignHorz

	TextColor  Color
	FontSize   FontSize
	FontFamily FontFamily
	LineHeight LineHeight
}

// DefaultRect returns the paint style of a node with no declarations.
func DefaultRect() Rect {
	return Rect{
		TextColor:  Black,
		FontSize:   DefaultFontSize,
		FontFamily: FontFamily{Fonts: []FontID{SansSerif}},
		LineHeight: DefaultLineHeight,
	}
}

// Layout is the resolved layout style of one node. Nil size fields are
// left to the solver.
type Layout struct {
	Width     *float32
	Height    *float32
	MinWidth  *float32
	MinHeight *float32
	MaxWidth  *float32
	MaxHeight *float32

	Wrap         Wrap
	Direction    Direction
	Justify      Justify
	AlignItems   Align
	AlignContent Align
}

// DefaultLayout returns the layout style of a node with no declarations.
func DefaultLayout() Layout {
	return Layout{Direction: Vertical, Justify: JustifyStart, AlignItems: AlignStretch}
}

// Styled pairs a node's resolved paint and layout records.
type Styled struct {
	Rect   Rect
	Layout Layout
}

// HasOverflowScrollbar reports whether the node's overflow style can
// ever draw a scrollbar on either axis.
func (r *Rect) HasOverflowScrollbar() bool {
	if r.Overflow == nil {
		return false
	}
	o := *r.Overflow
	return o.Horizontal&(OverflowScroll|OverflowAuto) != 0 ||
		o.Vertical&(OverflowScroll|OverflowAuto) != 0
}

func ptr[T any](v T) *T { return &v }
