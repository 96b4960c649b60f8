// Package displaylist turns a styled, laid-out tree into the ordered
// drawing primitives consumed by a renderer.
//
// Items are typed structs, one per primitive kind, so a renderer can
// switch on the concrete type. Every item carries its device-space
// bounds, a clip rectangle and the hit-test tag of the node it was built
// for.
//
// Per node the builder emits, in order: outset box shadow, clip push (when
// the node has a border radius), background color, background gradient or
// image, inset box shadow, border, content, clip pop.
package displaylist

import (
	"github.com/gogpu/ggdom/compositor"
	"github.com/gogpu/ggdom/dom"
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/resources"
	"github.com/gogpu/ggdom/style"
	"github.com/gogpu/ggdom/text"
)

// ItemType identifies a display item.
type ItemType uint8

const (
	ItemRect ItemType = iota
	ItemImage
	ItemLinearGradient
	ItemRadialGradient
	ItemBorder
	ItemBoxShadow
	ItemText
	ItemPushClip
	ItemPopClip
)

var itemTypeNames = [...]string{
	ItemRect:           "Rect",
	ItemImage:          "Image",
	ItemLinearGradient: "LinearGradient",
	ItemRadialGradient: "RadialGradient",
	ItemBorder:         "Border",
	ItemBoxShadow:      "BoxShadow",
	ItemText:           "Text",
	ItemPushClip:       "PushClip",
	ItemPopClip:        "PopClip",
}

func (t ItemType) String() string {
	if int(t) < len(itemTypeNames) {
		return itemTypeNames[t]
	}
	return "Unknown"
}

// Info is common to every item.
type Info struct {
	Bounds geom.Rect
	Clip   geom.Rect
	// Tag is the hit-test tag of the originating node, 0 for none.
	Tag dom.Tag
}

// Common returns the shared item fields.
func (i Info) Common() Info { return i }

// Item is one drawing primitive.
type Item interface {
	Type() ItemType
	Common() Info
}

// Rect fills Bounds with a solid color.
type Rect struct {
	Info
	Color style.Color
}

// Image draws an uploaded image, or an external texture, stretched to
// Bounds.
type Image struct {
	Info
	Key resources.ImageKey
}

// LinearGradient fills Bounds with a gradient from Start to End.
type LinearGradient struct {
	Info
	Start, End geom.Point
	Stops      []style.GradientStop
	Extend     style.ExtendMode
}

// RadialGradient fills Bounds with an elliptical gradient.
type RadialGradient struct {
	Info
	Center geom.Point
	Radius geom.Size
	Stops  []style.GradientStop
	Extend style.ExtendMode
}

// Border strokes the inside edges of Bounds.
type Border struct {
	Info
	Widths                   geom.SideOffsets
	Top, Right, Bottom, Left style.BorderSide
	Radius                   style.BorderRadius
}

// BoxShadow draws a shadow of Box. Bounds is the area the shadow may
// touch.
type BoxShadow struct {
	Info
	Box    geom.Rect
	Offset geom.Point
	Color  style.Color
	Blur   float32
	Spread float32
	Radius   style.BorderRadius
	ClipMode style.ShadowClip
}

// Text draws positioned glyphs with a font instance.
type Text struct {
	Info
	Font     resources.FontKey
	Instance resources.FontInstanceKey
	Color    style.Color
	Glyphs   []text.PositionedGlyph
}

// PushClip starts a rounded clip scope over Bounds.
type PushClip struct {
	Info
	Radius style.BorderRadius
}

// PopClip ends the innermost clip scope.
type PopClip struct {
	Info
}

func (Rect) Type() ItemType           { return ItemRect }
func (Image) Type() ItemType          { return ItemImage }
func (LinearGradient) Type() ItemType { return ItemLinearGradient }
func (RadialGradient) Type() ItemType { return ItemRadialGradient }
func (Border) Type() ItemType         { return ItemBorder }
func (BoxShadow) Type() ItemType      { return ItemBoxShadow }
func (Text) Type() ItemType           { return ItemText }
func (PushClip) Type() ItemType       { return ItemPushClip }
func (PopClip) Type() ItemType        { return ItemPopClip }

// PipelineID names the renderer pipeline a list belongs to.
type PipelineID uint32

// DisplayList is the output of one frame.
type DisplayList struct {
	Pipeline PipelineID
	Epoch    compositor.Epoch
	Viewport geom.Size
	Items    []Item
}

// Count returns the number of items of type t.
func (l *DisplayList) Count(t ItemType) int {
	n := 0
	for _, it := range l.Items {
		if it.Type() == t {
			n++
		}
	}
	return n
}

// Types returns the item types in order.
func (l *DisplayList) Types() []ItemType {
	out := make([]ItemType, len(l.Items))
	for i, it := range l.Items {
		out[i] = it.Type()
	}
	return out
}
