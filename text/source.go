// Package text measures and positions label text.
//
// Shaping is pluggable through the Shaper interface. BuiltinShaper maps
// runes to glyphs one by one using golang.org/x/image; GoTextShaper runs
// HarfBuzz shaping from go-text/typesetting for kerning, ligatures and
// complex scripts. Layout wraps shaped words into lines inside a box and
// reports whether the text overflows it.
package text

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownBuiltin is returned for a built-in font name that does
	// not exist.
	ErrUnknownBuiltin = errors.New("text: unknown builtin font")
)

// Metrics are vertical font metrics at one size, in pixels.
type Metrics struct {
	Ascent  float32
	Descent float32
	// Height is the recommended distance between baselines.
	Height float32
}

// FontSource is a parsed font file. It is safe for concurrent use and
// should be shared.
type FontSource struct {
	data []byte
	font *opentype.Font
	name string

	pool sync.Pool
}

// NewFontSource parses TrueType or OpenType data. The data is copied.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	s := &FontSource{
		data: append([]byte(nil), data...),
		font: f,
	}
	s.pool.New = func() any { return new(sfnt.Buffer) }
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// Name returns the font family name, or "" if the font has none.
func (s *FontSource) Name() string { return s.name }

// Data returns the raw font bytes. The caller must not modify them.
func (s *FontSource) Data() []byte { return s.data }

// GlyphIndex returns the glyph for r, or 0 (.notdef) when the font has
// none.
func (s *FontSource) GlyphIndex(r rune) uint16 {
	buf := s.buffer()
	defer s.pool.Put(buf)
	idx, err := s.font.GlyphIndex(buf, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

// Advance returns the horizontal advance of glyph at size pixels.
func (s *FontSource) Advance(glyph uint16, size float32) float32 {
	buf := s.buffer()
	defer s.pool.Put(buf)
	adv, err := s.font.GlyphAdvance(buf, sfnt.GlyphIndex(glyph), toFixed(size), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(adv)
}

// Metrics returns the vertical metrics at size pixels.
func (s *FontSource) Metrics(size float32) Metrics {
	buf := s.buffer()
	defer s.pool.Put(buf)
	m, err := s.font.Metrics(buf, toFixed(size), font.HintingNone)
	if err != nil {
		return Metrics{Ascent: size, Height: size}
	}
	return Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		Height:  fromFixed(m.Height),
	}
}

func (s *FontSource) buffer() *sfnt.Buffer {
	return s.pool.Get().(*sfnt.Buffer)
}

var (
	sansOnce sync.Once
	sans     *FontSource
	sansErr  error
)

// Builtin returns a font compiled into the toolkit. The only built-in
// font is "sans-serif", backed by Go Regular.
func Builtin(name string) (*FontSource, error) {
	if name != "sans-serif" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, name)
	}
	sansOnce.Do(func() {
		sans, sansErr = NewFontSource(goregular.TTF)
	})
	return sans, sansErr
}

// BuiltinData returns the raw bytes of a built-in font.
func BuiltinData(name string) ([]byte, error) {
	src, err := Builtin(name)
	if err != nil {
		return nil, err
	}
	return src.Data(), nil
}

func toFixed(v float32) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float32 { return float32(v) / 64 }
