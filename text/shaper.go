package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// Glyph is one shaped glyph. X and Y are relative to the start of the
// shaped run, on the baseline.
type Glyph struct {
	ID      uint16
	Cluster int
	X, Y    float32
	Advance float32
}

// Shaper converts a run of text into positioned glyphs.
// Implementations must be safe for concurrent use.
type Shaper interface {
	Shape(text string, src *FontSource, size float32) []Glyph
}

// BuiltinShaper places one glyph per rune using the font's advances. It
// does no kerning, ligatures or reordering.
type BuiltinShaper struct{}

// Shape implements Shaper.
func (BuiltinShaper) Shape(text string, src *FontSource, size float32) []Glyph {
	if text == "" || src == nil {
		return nil
	}
	out := make([]Glyph, 0, len(text))
	var x float32
	cluster := 0
	for _, r := range text {
		gid := src.GlyphIndex(r)
		adv := src.Advance(gid, size)
		out = append(out, Glyph{ID: gid, Cluster: cluster, X: x, Advance: adv})
		x += adv
		cluster++
	}
	return out
}

// GoTextShaper shapes text with the HarfBuzz port of go-text/typesetting.
// Parsed fonts are cached per FontSource; HarfBuzz shapers are pooled
// since they are not safe for concurrent use.
type GoTextShaper struct {
	pool sync.Pool

	mu    sync.RWMutex
	fonts map[*FontSource]*font.Font
}

// NewGoTextShaper returns a shaper backed by go-text/typesetting.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		pool:  sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		fonts: make(map[*FontSource]*font.Font),
	}
}

// Shape implements Shaper. Text with a right-to-left paragraph direction
// is shaped right to left.
func (s *GoTextShaper) Shape(text string, src *FontSource, size float32) []Glyph {
	if text == "" || src == nil {
		return nil
	}
	f, err := s.font(src)
	if err != nil {
		return nil
	}
	runes := []rune(text)
	dir := di.DirectionLTR
	if isRTL(text) {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(f),
		Size:      fixed.Int26_6(size * 64),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	out := make([]Glyph, len(output.Glyphs))
	var x float32
	for i, g := range output.Glyphs {
		adv := fromFixed(g.Advance)
		out[i] = Glyph{
			ID:      uint16(g.GlyphID), //nolint:gosec // sfnt glyph ids fit in 16 bits
			Cluster: g.TextIndex(),
			X:       x + fromFixed(g.XOffset),
			Y:       fromFixed(g.YOffset),
			Advance: adv,
		}
		x += adv
	}
	return out
}

func (s *GoTextShaper) font(src *FontSource) (*font.Font, error) {
	s.mu.RLock()
	f, ok := s.fonts[src]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fonts[src]; ok {
		return f, nil
	}
	face, err := font.ParseTTF(bytes.NewReader(src.Data()))
	if err != nil {
		return nil, err
	}
	s.fonts[src] = face.Font
	return face.Font, nil
}

// Forget drops the parsed copy of src.
func (s *GoTextShaper) Forget(src *FontSource) {
	s.mu.Lock()
	delete(s.fonts, src)
	s.mu.Unlock()
}

func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// isRTL reports whether the paragraph direction of s is right to left.
func isRTL(s string) bool {
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return false
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return false
	}
	first := ordering.Run(0)
	return first.Direction() == bidi.RightToLeft
}
