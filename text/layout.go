package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/internal/cache"
	"github.com/gogpu/ggdom/style"
)

// Options control one Layout call.
type Options struct {
	// Size is the font size in pixels.
	Size float32
	// LineHeight multiplies the font's natural line height. Zero means 1.
	LineHeight float32
	// Wrap breaks lines at word boundaries to fit the box width.
	Wrap   bool
	HAlign style.TextAlignHorz
	VAlign style.TextAlignVert
}

// PositionedGlyph is a glyph placed in layout coordinates. Origin is on
// the baseline.
type PositionedGlyph struct {
	ID     uint16
	Origin geom.Point
}

// Overflow reports per axis whether laid-out text exceeds its box.
type Overflow struct {
	Horizontal bool
	Vertical   bool
}

// Any reports whether text overflows on either axis.
func (o Overflow) Any() bool { return o.Horizontal || o.Vertical }

// Result is laid-out text.
type Result struct {
	Glyphs []PositionedGlyph
	// Content is the size of the text block.
	Content  geom.Size
	Lines    int
	Overflow Overflow
}

type wordKey struct {
	src  *FontSource
	size float32
	word string
}

// Layouter positions text inside boxes. It caches shaped words, so it is
// meant to live across frames. A Layouter is not safe for concurrent use.
type Layouter struct {
	shaper Shaper
	words  *cache.LRU[wordKey, []Glyph]
}

// NewLayouter returns a layouter using shaper, caching up to capacity
// shaped words. A nil shaper selects BuiltinShaper.
func NewLayouter(shaper Shaper, capacity int) *Layouter {
	if shaper == nil {
		shaper = BuiltinShaper{}
	}
	return &Layouter{shaper: shaper, words: cache.NewLRU[wordKey, []Glyph](capacity)}
}

// Shaper returns the shaper in use.
func (l *Layouter) Shaper() Shaper { return l.shaper }

// CacheStats returns statistics of the shaped word cache.
func (l *Layouter) CacheStats() cache.Stats { return l.words.Stats() }

type line struct {
	glyphs []PositionedGlyph
	width  float32
}

// Layout shapes s with src and places it in bounds. Text is normalized to
// NFC first. Explicit newlines always break; with Wrap set, words that do
// not fit the width move to the next line.
func (l *Layouter) Layout(s string, src *FontSource, bounds geom.Rect, opts Options) Result {
	if s == "" || src == nil || opts.Size <= 0 {
		return Result{}
	}
	s = norm.NFC.String(s)

	m := src.Metrics(opts.Size)
	lineHeight := m.Height
	if opts.LineHeight > 0 {
		lineHeight *= opts.LineHeight
	}
	space := l.width(l.shape(" ", src, opts.Size))

	var lines []line
	for _, para := range strings.Split(s, "\n") {
		cur := line{}
		for i, w := range strings.Fields(para) {
			glyphs := l.shape(w, src, opts.Size)
			ww := l.width(glyphs)
			x := cur.width
			if i > 0 {
				x += space
			}
			if opts.Wrap && len(cur.glyphs) > 0 && x+ww > bounds.Size.Width {
				lines = append(lines, cur)
				cur, x = line{}, 0
			}
			for _, g := range glyphs {
				cur.glyphs = append(cur.glyphs, PositionedGlyph{
					ID:     g.ID,
					Origin: geom.Pt(x+g.X, g.Y),
				})
			}
			cur.width = x + ww
		}
		lines = append(lines, cur)
	}

	var res Result
	res.Lines = len(lines)
	for _, ln := range lines {
		res.Content.Width = max(res.Content.Width, ln.width)
	}
	res.Content.Height = lineHeight * float32(len(lines))
	res.Overflow = Overflow{
		Horizontal: res.Content.Width > bounds.Size.Width,
		Vertical:   res.Content.Height > bounds.Size.Height,
	}

	top := bounds.MinY()
	switch opts.VAlign {
	case style.TextMiddle:
		top += (bounds.Size.Height - res.Content.Height) / 2
	case style.TextBottom:
		top += bounds.Size.Height - res.Content.Height
	}
	for i, ln := range lines {
		left := bounds.MinX()
		switch opts.HAlign {
		case style.TextCenter:
			left += (bounds.Size.Width - ln.width) / 2
		case style.TextRight:
			left += bounds.Size.Width - ln.width
		}
		baseline := top + float32(i)*lineHeight + m.Ascent
		for _, g := range ln.glyphs {
			res.Glyphs = append(res.Glyphs, PositionedGlyph{
				ID:     g.ID,
				Origin: geom.Pt(left+g.Origin.X, baseline+g.Origin.Y),
			})
		}
	}
	return res
}

func (l *Layouter) shape(word string, src *FontSource, size float32) []Glyph {
	return l.words.GetOrCreate(wordKey{src: src, size: size, word: word}, func() []Glyph {
		return l.shaper.Shape(word, src, size)
	})
}

func (l *Layouter) width(glyphs []Glyph) float32 {
	var w float32
	for _, g := range glyphs {
		w += g.Advance
	}
	return w
}
