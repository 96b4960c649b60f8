package ggdom

import (
	"github.com/gogpu/ggdom/compositor"
	"github.com/gogpu/ggdom/displaylist"
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/layout"
	"github.com/gogpu/ggdom/resources"
	"github.com/gogpu/ggdom/text"
)

// WindowOption configures a Window during creation.
//
// Example:
//
//	w := ggdom.NewWindow(api, sheet,
//		ggdom.WithViewport(800, 600),
//		ggdom.WithShaper(text.NewGoTextShaper()),
//	)
type WindowOption func(*windowOptions)

// windowOptions holds optional configuration for Window creation.
type windowOptions struct {
	viewport      geom.Size
	pipeline      displaylist.PipelineID
	shaper        text.Shaper
	solver        layout.Solver
	registry      *compositor.Registry
	minFontPx     float32
	maxFontPx     float32
	scrollbar     displaylist.ScrollbarStyle
	cacheCapacity int
}

// defaultOptions returns the default window options.
func defaultOptions() windowOptions {
	return windowOptions{
		viewport:      geom.Sz(800, 600),
		minFontPx:     1,
		maxFontPx:     resources.MaxAu.Px(),
		scrollbar:     displaylist.DefaultScrollbarStyle(),
		cacheCapacity: 1024,
	}
}

// WithViewport sets the initial window size in layout pixels.
func WithViewport(width, height float32) WindowOption {
	return func(o *windowOptions) {
		o.viewport = geom.Sz(width, height)
	}
}

// WithPipeline sets the pipeline id stamped on every display list.
func WithPipeline(id displaylist.PipelineID) WindowOption {
	return func(o *windowOptions) {
		o.pipeline = id
	}
}

// WithShaper selects the text shaper. The default is text.BuiltinShaper;
// text.NewGoTextShaper adds complex-script shaping.
func WithShaper(s text.Shaper) WindowOption {
	return func(o *windowOptions) {
		o.shaper = s
	}
}

// WithSolver replaces the constraint solver. The default is
// layout.NewSimplexSolver.
func WithSolver(s layout.Solver) WindowOption {
	return func(o *windowOptions) {
		o.solver = s
	}
}

// WithRegistry shares a compositor registry with the render thread.
func WithRegistry(r *compositor.Registry) WindowOption {
	return func(o *windowOptions) {
		o.registry = r
	}
}

// WithFontSizeRange limits the font sizes, in pixels, that get a font
// instance. Text outside the range is not drawn.
func WithFontSizeRange(minPx, maxPx float32) WindowOption {
	return func(o *windowOptions) {
		o.minFontPx, o.maxFontPx = minPx, maxPx
	}
}

// WithScrollbarStyle overrides the look of overflow scrollbars.
func WithScrollbarStyle(s displaylist.ScrollbarStyle) WindowOption {
	return func(o *windowOptions) {
		o.scrollbar = s
	}
}

// WithCacheCapacity sets the entry limit of the style and shaped-word
// caches.
func WithCacheCapacity(n int) WindowOption {
	return func(o *windowOptions) {
		o.cacheCapacity = n
	}
}
