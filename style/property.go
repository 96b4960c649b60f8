package style

import (
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/resources"
)

// Kind identifies which style property a value sets. A dynamic override
// must have the same Kind as the default it replaces.
type Kind uint8

const (
	KindBorderRadius Kind = iota
	KindBackgroundColor
	KindTextColor
	KindBorder
	KindBackground
	KindFontSize
	KindFontFamily
	KindOverflow
	KindTextAlign
	KindBoxShadow
	KindLineHeight

	KindWidth
	KindHeight
	KindMinWidth
	KindMinHeight
	KindMaxWidth
	KindMaxHeight
	KindFlexWrap
	KindFlexDirection
	KindJustifyContent
	KindAlignItems
	KindAlignContent
)

var kindNames = [...]string{
	KindBorderRadius:    "border-radius",
	KindBackgroundColor: "background-color",
	KindTextColor:       "color",
	KindBorder:          "border",
	KindBackground:      "background",
	KindFontSize:        "font-size",
	KindFontFamily:      "font-family",
	KindOverflow:        "overflow",
	KindTextAlign:       "text-align",
	KindBoxShadow:       "box-shadow",
	KindLineHeight:      "line-height",
	KindWidth:           "width",
	KindHeight:          "height",
	KindMinWidth:        "min-width",
	KindMinHeight:       "min-height",
	KindMaxWidth:        "max-width",
	KindMaxHeight:       "max-height",
	KindFlexWrap:        "flex-wrap",
	KindFlexDirection:   "flex-direction",
	KindJustifyContent:  "justify-content",
	KindAlignItems:      "align-items",
	KindAlignContent:    "align-content",
}

// String returns the CSS property name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Property is one parsed style value. The concrete types in this file are
// the complete set.
type Property interface {
	Kind() Kind
}

// BorderRadius sets the corner radii of the box.
type BorderRadius struct {
	TopLeft, TopRight, BottomLeft, BottomRight geom.Size
}

// UniformRadius returns a radius of r on every corner.
func UniformRadius(r float32) BorderRadius {
	s := geom.Sz(r, r)
	return BorderRadius{TopLeft: s, TopRight: s, BottomLeft: s, BottomRight: s}
}

// BackgroundColor fills the box.
type BackgroundColor Color

// TextColor sets the glyph color.
type TextColor Color

// BorderStyle is the line style of one border side.
type BorderStyle uint8

const (
	BorderNone BorderStyle = iota
	BorderSolid
	BorderDashed
	BorderDotted
	BorderDouble
	BorderHidden
)

// BorderSide is the color and style of one edge.
type BorderSide struct {
	Color Color
	Style BorderStyle
}

// Border sets border widths and per-side appearance.
type Border struct {
	Widths                   geom.SideOffsets
	Top, Right, Bottom, Left BorderSide
	// Radius is filled in from the border-radius property when the
	// border is drawn.
	Radius BorderRadius
}

// SolidBorder returns a border of width w in color c on every side.
func SolidBorder(w float32, c Color) Border {
	side := BorderSide{Color: c, Style: BorderSolid}
	return Border{Widths: geom.Uniform(w), Top: side, Right: side, Bottom: side, Left: side}
}

// FontSize is the font size in layout pixels.
type FontSize float32

// FontID names a font: either one built into the toolkit or one the
// application registered with resources.Resources.AddFont.
type FontID = resources.FontID

// BuiltinFont returns the id of a built-in font.
func BuiltinFont(name string) FontID { return FontID{Name: name, Builtin: true} }

// ExternalFont returns the id of an application-provided font.
func ExternalFont(name string) FontID { return FontID{Name: name} }

// SansSerif is the default font family.
var SansSerif = BuiltinFont("sans-serif")

// FontFamily is an ordered fallback list of fonts.
type FontFamily struct {
	Fonts []FontID
}

// Primary returns the first font of the family, or SansSerif.
func (f FontFamily) Primary() FontID {
	if len(f.Fonts) == 0 {
		return SansSerif
	}
	return f.Fonts[0]
}

// OverflowBehavior is a set of overflow flags for one axis.
type OverflowBehavior uint8

const (
	// OverflowScroll always shows a scrollbar.
	OverflowScroll OverflowBehavior = 1 << iota
	// OverflowAuto shows a scrollbar only when content overflows.
	OverflowAuto
	// OverflowHidden clips content without a scrollbar.
	OverflowHidden
)

// Has reports whether every flag in f is set.
func (o OverflowBehavior) Has(f OverflowBehavior) bool { return o&f == f }

// ShowsScrollbar reports whether a scrollbar is drawn given whether the
// content overflows on this axis.
func (o OverflowBehavior) ShowsScrollbar(overflowing bool) bool {
	return o.Has(OverflowScroll) || (o.Has(OverflowAuto) && overflowing)
}

// Overflow sets per-axis overflow behavior. Successive overflow
// declarations are merged, not replaced.
type Overflow struct {
	Horizontal OverflowBehavior
	Vertical   OverflowBehavior
}

// Merge returns the union of o and other on both axes.
func (o Overflow) Merge(other Overflow) Overflow {
	return Overflow{
		Horizontal: o.Horizontal | other.Horizontal,
		Vertical:   o.Vertical | other.Vertical,
	}
}

// TextAlignHorz is horizontal text alignment.
type TextAlignHorz uint8

const (
	TextLeft TextAlignHorz = iota
	TextCenter
	TextRight
)

// TextAlignVert is vertical text alignment.
type TextAlignVert uint8

const (
	TextTop TextAlignVert = iota
	TextMiddle
	TextBottom
)

// TextAlign sets the horizontal text alignment.
type TextAlign TextAlignHorz

// ShadowClip selects whether a shadow is drawn outside or inside the box.
type ShadowClip uint8

const (
	ShadowOutset ShadowClip = iota
	ShadowInset
)

// Shadow describes a single box shadow.
type Shadow struct {
	Offset geom.Point
	Color  Color
	Blur   float32
	Spread float32
	Clip   ShadowClip
}

// BoxShadow sets the shadow of the box. A nil Shadow removes it.
type BoxShadow struct {
	Shadow *Shadow
}

// LineHeight is a multiplier on the font's natural line height.
type LineHeight float32

// Box sizing properties, in layout pixels.
type (
	Width     float32
	Height    float32
	MinWidth  float32
	MinHeight float32
	MaxWidth  float32
	MaxHeight float32
)

// Wrap controls flex line wrapping.
type Wrap uint8

const (
	NoWrap Wrap = iota
	WrapLines
)

// Direction is the main axis of a flex container.
type Direction uint8

const (
	// Vertical stacks children top to bottom.
	Vertical Direction = iota
	// Horizontal places children left to right.
	Horizontal
)

// Justify distributes free space along the main axis.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
)

// Align positions children along the cross axis.
type Align uint8

const (
	AlignStretch Align = iota
	AlignStart
	AlignEnd
	AlignCenter
)

// Flex properties.
type (
	FlexWrap       Wrap
	FlexDirection  Direction
	JustifyContent Justify
	AlignItems     Align
	AlignContent   Align
)

func (BorderRadius) Kind() Kind    { return KindBorderRadius }
func (BackgroundColor) Kind() Kind { return KindBackgroundColor }
func (TextColor) Kind() Kind       { return KindTextColor }
func (Border) Kind() Kind          { return KindBorder }
func (FontSize) Kind() Kind        { return KindFontSize }
func (FontFamily) Kind() Kind      { return KindFontFamily }
func (Overflow) Kind() Kind        { return KindOverflow }
func (TextAlign) Kind() Kind       { return KindTextAlign }
func (BoxShadow) Kind() Kind       { return KindBoxShadow }
func (LineHeight) Kind() Kind      { return KindLineHeight }
func (Width) Kind() Kind           { return KindWidth }
func (Height) Kind() Kind          { return KindHeight }
func (MinWidth) Kind() Kind        { return KindMinWidth }
func (MinHeight) Kind() Kind       { return KindMinHeight }
func (MaxWidth) Kind() Kind        { return KindMaxWidth }
func (MaxHeight) Kind() Kind       { return KindMaxHeight }
func (FlexWrap) Kind() Kind        { return KindFlexWrap }
func (FlexDirection) Kind() Kind   { return KindFlexDirection }
func (JustifyContent) Kind() Kind  { return KindJustifyContent }
func (AlignItems) Kind() Kind      { return KindAlignItems }
func (AlignContent) Kind() Kind    { return KindAlignContent }
