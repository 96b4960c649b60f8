package displaylist

import (
	"bytes"
	"image"
	"image/png"
	"slices"
	"testing"

	"github.com/gogpu/ggdom/arena"
	"github.com/gogpu/ggdom/dom"
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/layout"
	"github.com/gogpu/ggdom/resources"
	"github.com/gogpu/ggdom/style"
	"github.com/gogpu/ggdom/text"
)

type fixture struct {
	res *resources.Resources
	api *resources.MemoryAPI
	b   *Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	res := resources.New(resources.WithBuiltinFonts(text.BuiltinData))
	if err := res.RequireFont(style.SansSerif); err != nil {
		t.Fatal(err)
	}
	api := &resources.MemoryAPI{}
	res.Reconcile(api)
	res.Flush(api)
	return &fixture{res: res, api: api, b: NewBuilder(res, api, nil)}
}

// frame styles and lays out d the way a window does.
func (f *fixture) frame(t *testing.T, d *dom.Dom, sheet *style.Sheet, viewport geom.Size) Frame {
	t.Helper()
	hashes := d.Hashes()
	styled := style.NewCache(0).Tree(d, hashes, sheet, nil)
	ui := layout.NewUiSolver(nil)
	if _, err := ui.Update(hashes, styled, viewport, false); err != nil {
		t.Fatal(err)
	}
	return Frame{
		Dom:      d,
		Styled:   styled,
		Bounds:   layout.Arrange(styled, ui, viewport),
		Epoch:    1,
		Viewport: viewport,
	}
}

// fixed builds a frame with explicit bounds and default layout.
func (f *fixture) fixed(d *dom.Dom, sheet *style.Sheet, viewport geom.Size, bounds ...geom.Rect) Frame {
	styled := style.NewCache(0).Tree(d, d.Hashes(), sheet, nil)
	return Frame{Dom: d, Styled: styled, Bounds: bounds, Epoch: 1, Viewport: viewport}
}

func TestBuildTwoLabels(t *testing.T) {
	f := newFixture(t)
	d := dom.Container(
		dom.New(dom.Label{Text: "Hello"}),
		dom.New(dom.Label{Text: "World"}),
	)
	l := f.b.Build(f.frame(t, d, style.NewSheet(), geom.Sz(200, 200)))

	if n := l.Count(ItemText); n != 2 {
		t.Fatalf("text items = %d, want 2 (%v)", n, l.Types())
	}
	if l.Count(ItemBoxShadow) != 0 || l.Count(ItemBorder) != 0 {
		t.Errorf("unexpected decoration items: %v", l.Types())
	}
	var texts []Text
	for _, it := range l.Items {
		if tx, ok := it.(Text); ok {
			texts = append(texts, tx)
		}
	}
	if texts[0].Bounds.MinY() >= texts[1].Bounds.MinY() {
		t.Error("text items should follow child order")
	}
	if texts[0].Instance != texts[1].Instance {
		t.Error("labels of the same size should share a font instance")
	}
	if len(texts[0].Glyphs) != len("Hello") {
		t.Errorf("glyphs = %d, want 5", len(texts[0].Glyphs))
	}
	if b := f.res.Flush(f.api); len(b) != 1 || b[0].Type() != resources.UpdAddFontInstance {
		t.Errorf("pending after build = %v", b)
	}
}

func TestBuildEmptyDom(t *testing.T) {
	f := newFixture(t)
	l := f.b.Build(Frame{Dom: dom.Empty(), Styled: arena.New[style.Styled](), Viewport: geom.Sz(10, 10), Epoch: 4})
	if len(l.Items) != 0 || l.Epoch != 4 {
		t.Errorf("list = %+v", l)
	}
}

func TestPrimitiveOrder(t *testing.T) {
	f := newFixture(t)
	shadow := func(clip style.ShadowClip) style.BoxShadow {
		return style.BoxShadow{Shadow: &style.Shadow{Color: style.Black, Blur: 1, Clip: clip}}
	}
	sheet := style.NewSheet().MustAdd("div",
		style.Static(shadow(style.ShadowOutset)),
		style.Static(style.UniformRadius(4)),
		style.Static(style.BackgroundColor(style.White)),
		style.Static(style.LinearGradient{Stops: []style.GradientStop{{Offset: -1, Color: style.White}, {Offset: -1, Color: style.Black}}}),
		style.Static(style.SolidBorder(1, style.Black)),
	)
	d := dom.New(dom.Div{})
	l := f.b.Build(f.fixed(d, sheet, geom.Sz(100, 100), geom.R(0, 0, 50, 50)))

	want := []ItemType{ItemBoxShadow, ItemPushClip, ItemRect, ItemLinearGradient, ItemBorder, ItemPopClip}
	if got := l.Types(); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if r := l.Items[4].(Border).Radius; r != style.UniformRadius(4) {
		t.Errorf("border radius = %+v", r)
	}
	g := l.Items[3].(LinearGradient)
	if g.Stops[0].Offset != 0 || g.Stops[1].Offset != 1 {
		t.Errorf("stops = %+v", g.Stops)
	}

	sheet = style.NewSheet().MustAdd("div", style.Static(shadow(style.ShadowInset)), style.Static(style.BackgroundColor(style.White)))
	l = f.b.Build(f.fixed(dom.New(dom.Div{}), sheet, geom.Sz(100, 100), geom.R(0, 0, 50, 50)))
	if got := l.Types(); !slices.Equal(got, []ItemType{ItemRect, ItemBoxShadow}) {
		t.Errorf("inset order = %v", got)
	}
}

func TestShadowExtent(t *testing.T) {
	f := newFixture(t)
	sheet := style.NewSheet().MustAdd("div", style.Static(style.BoxShadow{Shadow: &style.Shadow{
		Offset: geom.Pt(5, 5), Color: style.Black, Blur: 2, Spread: 3,
	}}))

	tests := []struct {
		name   string
		bounds geom.Rect
		want   geom.Rect
	}{
		{"inside", geom.R(10, 10, 50, 50), geom.R(14, 14, 60, 60)},
		{"clipped", geom.R(80, 80, 50, 50), geom.R(84, 84, 16, 16)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := f.b.Build(f.fixed(dom.New(dom.Div{}), sheet, geom.Sz(100, 100), tt.bounds))
			sh, ok := l.Items[0].(BoxShadow)
			if !ok {
				t.Fatalf("first item = %v", l.Items[0].Type())
			}
			if sh.Bounds != tt.want || sh.Clip != tt.want {
				t.Errorf("extent = %+v clip = %+v, want %+v", sh.Bounds, sh.Clip, tt.want)
			}
			if sh.ClipMode != style.ShadowOutset {
				t.Errorf("clip mode = %v", sh.ClipMode)
			}
			if sh.Box != tt.bounds {
				t.Errorf("box = %+v, want node bounds", sh.Box)
			}
		})
	}
}

func TestOffscreenShadowOmitted(t *testing.T) {
	f := newFixture(t)
	sheet := style.NewSheet().MustAdd("div",
		style.Static(style.BoxShadow{Shadow: &style.Shadow{Color: style.Black, Blur: 2, Spread: 3}}),
		style.Static(style.BackgroundColor(style.White)),
	)
	l := f.b.Build(f.fixed(dom.New(dom.Div{}), sheet, geom.Sz(100, 100), geom.R(200, 200, 10, 10)))
	if got := l.Types(); !slices.Equal(got, []ItemType{ItemRect}) {
		t.Errorf("items = %v, want the background only", got)
	}
}

func TestTextAlignmentFromParent(t *testing.T) {
	tests := []struct {
		dir     style.Direction
		justify style.Justify
		h       style.TextAlignHorz
		v       style.TextAlignVert
	}{
		{style.Horizontal, style.JustifyStart, style.TextLeft, style.TextTop},
		{style.Horizontal, style.JustifyEnd, style.TextRight, style.TextTop},
		{style.Horizontal, style.JustifySpaceAround, style.TextCenter, style.TextTop},
		{style.Vertical, style.JustifyStart, style.TextLeft, style.TextTop},
		{style.Vertical, style.JustifyEnd, style.TextLeft, style.TextBottom},
		{style.Vertical, style.JustifyCenter, style.TextLeft, style.TextMiddle},
	}
	for _, tt := range tests {
		sheet := style.NewSheet().MustAdd("div",
			style.Static(style.FlexDirection(tt.dir)),
			style.Static(style.JustifyContent(tt.justify)),
		)
		d := dom.Container(dom.New(dom.Label{Text: "x"}))
		styled := style.NewCache(0).Tree(d, d.Hashes(), sheet, nil)
		c := &buildContext{frame: Frame{Dom: d, Styled: styled}}
		h, v := c.alignment(1)
		if h != tt.h || v != tt.v {
			t.Errorf("%v/%v: got %v/%v, want %v/%v", tt.dir, tt.justify, h, v, tt.h, tt.v)
		}
		if h, v := c.alignment(0); h != style.TextLeft || v != style.TextTop {
			t.Errorf("root alignment = %v/%v", h, v)
		}
	}
}

func TestExplicitTextAlign(t *testing.T) {
	f := newFixture(t)
	sheet := style.NewSheet().MustAdd("p", style.Static(style.TextAlign(style.TextRight)))
	d := dom.New(dom.Label{Text: "x"})
	l := f.b.Build(f.fixed(d, sheet, geom.Sz(200, 50), geom.R(0, 0, 200, 50)))
	tx := l.Items[0].(Text)
	if x := tx.Glyphs[0].Origin.X; x < 150 {
		t.Errorf("right-aligned glyph at x = %v", x)
	}
}

func TestMissingResourcesSkipOnlyThatPrimitive(t *testing.T) {
	f := newFixture(t)
	imgID := f.res.AddRawImage(resources.ImageDescriptor{Width: 1, Height: 1, Stride: 4}, make([]byte, 4))
	sheet := style.NewSheet().
		MustAdd("image", style.Static(style.BackgroundColor(style.White))).
		MustAdd("#bg", style.Static(style.ImageBackground{CSSID: "nope"})).
		MustAdd("#tiny", style.Static(style.FontSize(0.5)), style.Static(style.BackgroundColor(style.Black)))

	d := dom.Container(
		dom.New(dom.Image{ID: imgID}),
		dom.New(dom.Div{}).WithID("bg"),
		dom.New(dom.Label{Text: "tiny"}).WithID("tiny"),
	)
	fr := f.fixed(d, sheet, geom.Sz(100, 100),
		geom.R(0, 0, 100, 100), geom.R(0, 0, 10, 10), geom.R(0, 10, 10, 10), geom.R(0, 20, 10, 10))

	l := f.b.Build(fr)
	if got := l.Types(); !slices.Equal(got, []ItemType{ItemRect, ItemRect}) {
		t.Fatalf("pending image build = %v", got)
	}

	f.res.Reconcile(f.api)
	f.res.Flush(f.api)
	l = f.b.Build(fr)
	if got := l.Types(); !slices.Equal(got, []ItemType{ItemRect, ItemImage, ItemRect}) {
		t.Errorf("uploaded image build = %v", got)
	}
}

func TestImageBackground(t *testing.T) {
	f := newFixture(t)
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	id, err := f.res.AddCSSImage("logo", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	f.res.Reconcile(f.api)
	f.res.Flush(f.api)
	key, _, _ := f.res.Image(id)

	sheet := style.NewSheet().MustAdd("div", style.Static(style.ImageBackground{CSSID: "logo"}))
	l := f.b.Build(f.fixed(dom.New(dom.Div{}), sheet, geom.Sz(100, 100), geom.R(0, 0, 10, 10)))
	if got, ok := l.Items[0].(Image); !ok || got.Key != key {
		t.Errorf("items = %v", l.Types())
	}
}

func TestRadialGradientGeometry(t *testing.T) {
	f := newFixture(t)
	sheet := style.NewSheet().MustAdd("div", style.Static(style.RadialGradient{
		Stops: []style.GradientStop{{Offset: 0, Color: style.White}, {Offset: 1, Color: style.Black}},
	}))
	l := f.b.Build(f.fixed(dom.New(dom.Div{}), sheet, geom.Sz(100, 100), geom.R(10, 10, 40, 20)))
	g, ok := l.Items[0].(RadialGradient)
	if !ok {
		t.Fatalf("item = %v", l.Items[0].Type())
	}
	if g.Center != geom.Pt(30, 20) || g.Radius != geom.Sz(20, 10) {
		t.Errorf("center = %+v, radius = %+v", g.Center, g.Radius)
	}
}

func TestTextureRegistered(t *testing.T) {
	f := newFixture(t)
	d := dom.New(dom.Texture{ID: 9, Width: 32, Height: 16})
	fr := f.fixed(d, style.NewSheet(), geom.Sz(100, 100), geom.R(0, 0, 32, 16))
	fr.Epoch = 3

	l := f.b.Build(fr)
	img, ok := l.Items[0].(Image)
	if !ok {
		t.Fatalf("item = %v", l.Items[0].Type())
	}
	tex, ok := f.b.Registry().Get(3, 9)
	if !ok || tex.Width != 32 || tex.Height != 16 {
		t.Errorf("registry = %+v, %v", tex, ok)
	}
	batch := f.res.Flush(f.api)
	if len(batch) != 1 || batch[0].(resources.AddExternalImage).Key != img.Key {
		t.Errorf("batch = %v", batch)
	}

	// The next frame gets a fresh key and the old one is deleted.
	f.res.Reconcile(f.api)
	fr.Epoch = 4
	l = f.b.Build(fr)
	batch = f.res.Flush(f.api)
	if len(batch) != 2 || batch[0].(resources.DeleteImage).Key != img.Key {
		t.Errorf("second frame batch = %v", batch)
	}
	if l.Items[0].(Image).Key == img.Key {
		t.Error("texture key reused across frames")
	}
}

func TestScrollbar(t *testing.T) {
	f := newFixture(t)
	sheet := style.NewSheet().MustAdd("p",
		style.Static(style.Overflow{Vertical: style.OverflowScroll}),
		style.Static(style.SolidBorder(3, style.Black)),
	)
	d := dom.New(dom.Label{Text: "short"})
	l := f.b.Build(f.fixed(d, sheet, geom.Sz(200, 200), geom.R(0, 0, 100, 100)))

	want := []ItemType{ItemBorder, ItemText, ItemRect, ItemRect, ItemBorder, ItemBorder}
	if got := l.Types(); !slices.Equal(got, want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	track := l.Items[2].(Rect)
	if track.Bounds != geom.R(80, 0, 17, 97) || track.Color != style.RGB(241, 241, 241) {
		t.Errorf("track = %+v", track)
	}
	bar := l.Items[3].(Rect)
	if bar.Bounds != geom.R(82, 17, 13, 63) {
		t.Errorf("bar = %+v", bar.Bounds)
	}
	up := l.Items[4].(Border)
	if up.Bounds != geom.R(85.25, 5.25, 6.5, 6.5) {
		t.Errorf("up arrow = %+v", up.Bounds)
	}
	if up.Bottom.Style != style.BorderSolid || up.Top.Style != style.BorderHidden {
		t.Error("up arrow should color its bottom side only")
	}
	down := l.Items[5].(Border)
	if down.Top.Style != style.BorderSolid || down.Bounds.MinY() != 5.25+97-17+2 {
		t.Errorf("down arrow = %+v", down)
	}
}

func TestAutoScrollbarOnlyWhenOverflowing(t *testing.T) {
	f := newFixture(t)
	sheet := style.NewSheet().MustAdd("p", style.Static(style.Overflow{Vertical: style.OverflowAuto}))

	fits := f.b.Build(f.fixed(dom.New(dom.Label{Text: "a"}), sheet, geom.Sz(200, 200), geom.R(0, 0, 100, 100)))
	if fits.Count(ItemRect) != 0 {
		t.Errorf("fitting text drew a scrollbar: %v", fits.Types())
	}
	long := dom.New(dom.Label{Text: "a\nb\nc\nd\ne\nf"})
	over := f.b.Build(f.fixed(long, sheet, geom.Sz(200, 200), geom.R(0, 0, 100, 20)))
	if over.Count(ItemRect) != 2 {
		t.Errorf("overflowing text items = %v", over.Types())
	}
}

func TestEveryItemCarriesNodeTag(t *testing.T) {
	f := newFixture(t)
	s := dom.NewSession()
	noop := func(*dom.Event) dom.UpdateScreen { return dom.DontRedraw }
	sheet := style.NewSheet().
		MustAdd("p",
			style.Static(style.BoxShadow{Shadow: &style.Shadow{Color: style.Black, Blur: 1}}),
			style.Static(style.UniformRadius(4)),
			style.Static(style.BackgroundColor(style.White)),
			style.Static(style.LinearGradient{Stops: []style.GradientStop{{Offset: 0, Color: style.White}, {Offset: 1, Color: style.Black}}}),
			style.Static(style.SolidBorder(1, style.Black)),
			style.Static(style.Overflow{Vertical: style.OverflowScroll, Horizontal: style.OverflowScroll}),
		).
		MustAdd("#radial", style.Static(style.RadialGradient{
			Stops: []style.GradientStop{{Offset: 0, Color: style.White}, {Offset: 1, Color: style.Black}},
		}))
	d := dom.Container(
		dom.New(dom.Label{Text: "short"}).WithCallback(s, dom.LeftMouseUp, noop),
		dom.New(dom.Div{}).WithID("radial").WithCallback(s, dom.MouseOver, noop),
		dom.New(dom.Texture{ID: 1, Width: 8, Height: 8}).WithCallback(s, dom.MouseUp, noop),
	)
	l := f.b.Build(f.fixed(d, sheet, geom.Sz(200, 200),
		geom.R(0, 0, 200, 200), geom.R(0, 0, 100, 100), geom.R(100, 0, 50, 50), geom.R(0, 100, 8, 8)))

	seen := make(map[ItemType]bool)
	for i, it := range l.Items {
		seen[it.Type()] = true
		if it.Common().Tag == 0 {
			t.Errorf("item %d %v has no tag", i, it.Type())
		}
	}
	for typ := ItemRect; typ <= ItemPopClip; typ++ {
		if !seen[typ] {
			t.Errorf("no %v item built (%v)", typ, l.Types())
		}
	}
	for i, it := range l.Items[:15] {
		if it.Common().Tag != d.Node(1).Tag {
			t.Errorf("label item %d %v tag = %d, want %d", i, it.Type(), it.Common().Tag, d.Node(1).Tag)
		}
	}
}
