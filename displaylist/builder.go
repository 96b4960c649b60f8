package displaylist

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggdom/arena"
	"github.com/gogpu/ggdom/compositor"
	"github.com/gogpu/ggdom/dom"
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/internal/logging"
	"github.com/gogpu/ggdom/resources"
	"github.com/gogpu/ggdom/style"
	"github.com/gogpu/ggdom/text"
)

// Frame is the per-frame input of Build. Dom, Styled and Bounds share one
// topology.
type Frame struct {
	Dom      *dom.Dom
	Styled   *arena.Arena[style.Styled]
	Bounds   []geom.Rect
	Epoch    compositor.Epoch
	Viewport geom.Size
	Pipeline PipelineID
}

// Builder produces display lists. It resolves images and fonts through
// Resources, allocating font instances and external image keys on demand,
// and registers external textures with the compositor registry. A Builder
// is not safe for concurrent use.
type Builder struct {
	res       *resources.Resources
	keys      resources.KeyGenerator
	layouter  *text.Layouter
	registry  *compositor.Registry
	scrollbar ScrollbarStyle
	fonts     map[resources.FontID]*text.FontSource
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithScrollbarStyle replaces DefaultScrollbarStyle.
func WithScrollbarStyle(s ScrollbarStyle) BuilderOption {
	return func(b *Builder) { b.scrollbar = s }
}

// WithRegistry sets the registry external textures are published to.
func WithRegistry(r *compositor.Registry) BuilderOption {
	return func(b *Builder) { b.registry = r }
}

// NewBuilder returns a builder. A nil layouter selects one backed by
// text.BuiltinShaper.
func NewBuilder(res *resources.Resources, keys resources.KeyGenerator, layouter *text.Layouter, opts ...BuilderOption) *Builder {
	if layouter == nil {
		layouter = text.NewLayouter(nil, 0)
	}
	b := &Builder{
		res:       res,
		keys:      keys,
		layouter:  layouter,
		registry:  compositor.NewRegistry(),
		scrollbar: DefaultScrollbarStyle(),
		fonts:     make(map[resources.FontID]*text.FontSource),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Registry returns the registry external textures are published to.
func (b *Builder) Registry() *compositor.Registry { return b.registry }

// SetFontSource makes src the outlines used to lay out text in font id.
func (b *Builder) SetFontSource(id resources.FontID, src *text.FontSource) {
	b.fonts[id] = src
}

// ForgetFontSource drops the outlines of font id.
func (b *Builder) ForgetFontSource(id resources.FontID) {
	delete(b.fonts, id)
}

func (b *Builder) fontSource(id resources.FontID) (*text.FontSource, bool) {
	if src, ok := b.fonts[id]; ok {
		return src, true
	}
	if !id.Builtin {
		return nil, false
	}
	src, err := text.Builtin(id.Name)
	if err != nil {
		return nil, false
	}
	b.fonts[id] = src
	return src, true
}

// Build walks the frame in document order and returns its display list.
// A primitive whose resource is missing is left out; the rest of the node
// is still drawn.
func (b *Builder) Build(f Frame) *DisplayList {
	l := &DisplayList{Pipeline: f.Pipeline, Epoch: f.Epoch, Viewport: f.Viewport}
	if f.Dom == nil || f.Dom.IsEmpty() {
		return l
	}
	nodes := f.Dom.Arena()
	if nodes.Len() != f.Styled.Len() || nodes.Len() != len(f.Bounds) {
		logging.Logger().Error("displaylist: frame topology mismatch",
			"nodes", nodes.Len(), "styled", f.Styled.Len(), "bounds", len(f.Bounds))
		return l
	}
	ctx := &buildContext{Builder: b, frame: f, list: l, viewport: geom.FromSize(f.Viewport)}
	for id := range nodes.Document(f.Dom.Root()) {
		ctx.node(id)
	}
	logging.Logger().Debug("displaylist: built", "epoch", uint64(f.Epoch), "items", len(l.Items))
	return l
}

type buildContext struct {
	*Builder
	frame    Frame
	list     *DisplayList
	viewport geom.Rect
}

func (c *buildContext) push(it Item) { c.list.Items = append(c.list.Items, it) }

func (c *buildContext) node(id arena.NodeID) {
	data := c.frame.Dom.Node(id)
	st := c.frame.Styled.Data(id)
	rect := &st.Rect
	bounds := c.frame.Bounds[id.Index()]
	info := Info{Bounds: bounds, Clip: bounds, Tag: data.Tag}

	if sh := rect.BoxShadow; sh != nil && sh.Clip == style.ShadowOutset {
		c.boxShadow(info, sh, rect.BorderRadius)
	}
	if rect.BorderRadius != nil {
		c.push(PushClip{Info: info, Radius: *rect.BorderRadius})
	}
	if rect.BackgroundColor != nil {
		c.push(Rect{Info: info, Color: *rect.BackgroundColor})
	}
	if rect.Background != nil {
		c.background(info, rect.Background)
	}
	if sh := rect.BoxShadow; sh != nil && sh.Clip == style.ShadowInset {
		c.boxShadow(info, sh, rect.BorderRadius)
	}
	if rect.Border != nil {
		border := *rect.Border
		if rect.BorderRadius != nil {
			border.Radius = *rect.BorderRadius
		}
		c.push(Border{
			Info: info, Widths: border.Widths,
			Top: border.Top, Right: border.Right, Bottom: border.Bottom, Left: border.Left,
			Radius: border.Radius,
		})
	}

	switch t := data.Type.(type) {
	case dom.Label:
		c.text(id, info, rect, t.Text)
	case dom.Text:
		s, ok := c.res.Texts().Get(t.ID)
		if !ok {
			logging.Logger().Warn("displaylist: missing text", "id", t.ID.String())
			break
		}
		c.text(id, info, rect, s)
	case dom.Image:
		key, _, ok := c.res.Image(t.ID)
		if !ok {
			logging.Logger().Debug("displaylist: image not uploaded", "id", t.ID.String())
			break
		}
		c.push(Image{Info: info, Key: key})
	case dom.Texture:
		c.texture(info, t)
	}

	if rect.BorderRadius != nil {
		c.push(PopClip{Info: info})
	}
}

// boxShadow draws sh around bounds. Outset shadows cover the box grown by
// spread and blur, shifted by the offset, and clipped to the viewport; a
// shadow entirely off screen is not drawn.
func (c *buildContext) boxShadow(info Info, sh *style.Shadow, radius *style.BorderRadius) {
	item := BoxShadow{
		Info:     info,
		Box:      info.Bounds,
		Offset:   sh.Offset,
		Color:    sh.Color,
		Blur:     sh.Blur,
		Spread:   sh.Spread,
		ClipMode: sh.Clip,
	}
	if radius != nil {
		item.Radius = *radius
	}
	if sh.Clip == style.ShadowOutset {
		extent, ok := shadowExtent(info.Bounds, sh).Intersect(c.viewport)
		if !ok {
			return
		}
		item.Bounds, item.Clip = extent, extent
	}
	c.push(item)
}

func shadowExtent(bounds geom.Rect, sh *style.Shadow) geom.Rect {
	grow := sh.Spread + sh.Blur
	return geom.Rect{
		Origin: geom.Pt(
			bounds.Origin.X+sh.Offset.X-(sh.Spread-sh.Blur),
			bounds.Origin.Y+sh.Offset.Y-(sh.Spread-sh.Blur),
		),
		Size: geom.Sz(bounds.Size.Width+2*grow, bounds.Size.Height+2*grow),
	}
}

func (c *buildContext) background(info Info, bg style.Background) {
	switch bg := bg.(type) {
	case style.LinearGradient:
		start, end := bg.Direction.Points(info.Bounds)
		c.push(LinearGradient{
			Info: info, Start: start, End: end,
			Stops: style.ResolveStops(bg.Stops), Extend: bg.Extend,
		})
	case style.RadialGradient:
		c.push(RadialGradient{
			Info:   info,
			Center: info.Bounds.Center(),
			Radius: geom.Sz(info.Bounds.Size.Width/2, info.Bounds.Size.Height/2),
			Stops:  style.ResolveStops(bg.Stops),
			Extend: bg.Extend,
		})
	case style.ImageBackground:
		id, ok := c.res.CSSImage(bg.CSSID)
		if !ok {
			logging.Logger().Warn("displaylist: unknown css image", "css_id", bg.CSSID)
			return
		}
		key, _, ok := c.res.Image(id)
		if !ok {
			return
		}
		c.push(Image{Info: info, Key: key})
	}
}

func (c *buildContext) texture(info Info, t dom.Texture) {
	ext := resources.ExternalImageID(t.ID)
	key := c.res.ExternalImage(c.keys, ext, resources.ImageDescriptor{
		Width:  t.Width,
		Height: t.Height,
		Stride: t.Width * 4,
		Format: gputypes.TextureFormatBGRA8Unorm,
	})
	c.registry.Register(c.frame.Epoch, ext, compositor.ActiveTexture{
		Texture: t.Handle,
		Width:   t.Width,
		Height:  t.Height,
	})
	c.push(Image{Info: info, Key: key})
}

func (c *buildContext) text(id arena.NodeID, info Info, rect *style.Rect, s string) {
	fontID := rect.FontFamily.Primary()
	src, ok := c.fontSource(fontID)
	if !ok {
		logging.Logger().Warn("displaylist: no outlines for font", "font", fontID.String())
		return
	}
	size := float32(rect.FontSize)
	fontKey, instance, err := c.res.FontInstance(c.keys, fontID, size)
	if err != nil {
		logging.Logger().Warn("displaylist: text skipped", "font", fontID.String(), "err", err)
		return
	}

	box := info.Bounds
	if rect.Border != nil {
		box = inset(box, rect.Border.Widths)
	}
	var overflow style.Overflow
	if rect.Overflow != nil {
		overflow = *rect.Overflow
	}
	h, v := c.alignment(id)
	if rect.TextAlign != nil {
		h = *rect.TextAlign
	}
	res := c.layouter.Layout(s, src, box, text.Options{
		Size:       size,
		LineHeight: float32(rect.LineHeight),
		Wrap:       !overflow.Horizontal.Has(style.OverflowScroll),
		HAlign:     h,
		VAlign:     v,
	})
	if len(res.Glyphs) > 0 {
		c.push(Text{Info: info, Font: fontKey, Instance: instance, Color: rect.TextColor, Glyphs: res.Glyphs})
	}

	if overflow.Vertical.ShowsScrollbar(res.Overflow.Vertical) {
		c.verticalScrollbar(info, rect.Border)
	}
	if overflow.Horizontal.ShowsScrollbar(res.Overflow.Horizontal) {
		c.horizontalScrollbar(info, rect.Border)
	}
}

// alignment derives the default text alignment of a node from its
// parent's flex layout: the parent's justify decides the main axis and the
// cross axis starts at the edge.
func (c *buildContext) alignment(id arena.NodeID) (style.TextAlignHorz, style.TextAlignVert) {
	parent := c.frame.Styled.Parent(id)
	if parent.IsNone() {
		return style.TextLeft, style.TextTop
	}
	lay := c.frame.Styled.Data(parent).Layout
	if lay.Direction == style.Horizontal {
		switch lay.Justify {
		case style.JustifyStart:
			return style.TextLeft, style.TextTop
		case style.JustifyEnd:
			return style.TextRight, style.TextTop
		default:
			return style.TextCenter, style.TextTop
		}
	}
	switch lay.Justify {
	case style.JustifyStart:
		return style.TextLeft, style.TextTop
	case style.JustifyEnd:
		return style.TextLeft, style.TextBottom
	default:
		return style.TextLeft, style.TextMiddle
	}
}

func inset(r geom.Rect, s geom.SideOffsets) geom.Rect {
	w := max(0, r.Size.Width-s.Left-s.Right)
	h := max(0, r.Size.Height-s.Top-s.Bottom)
	return geom.R(r.Origin.X+s.Left, r.Origin.Y+s.Top, w, h)
}
