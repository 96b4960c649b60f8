package ggdom

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggdom/arena"
	"github.com/gogpu/ggdom/compositor"
	"github.com/gogpu/ggdom/displaylist"
	"github.com/gogpu/ggdom/dom"
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/internal/cache"
	"github.com/gogpu/ggdom/layout"
	"github.com/gogpu/ggdom/resources"
	"github.com/gogpu/ggdom/style"
	"github.com/gogpu/ggdom/text"
)

// ErrNilSheet is returned by SetStyleSheet for a nil sheet.
var ErrNilSheet = errors.New("ggdom: nil style sheet")

// FrameResult is the output of one Window.Frame call.
type FrameResult struct {
	List *displaylist.DisplayList
	// Updates is the resource batch submitted to the RenderAPI for this
	// frame, nil when nothing changed.
	Updates []resources.Update
	Changes layout.ChangeSet
	Layout  layout.Stats
	Bounds  []geom.Rect
	Epoch   compositor.Epoch
}

// Window runs the frame pipeline for one top-level surface. It keeps the
// state that makes frames incremental: the resource tables, the style
// cache, the constraint solver and its tree cache. A Window is driven from
// a single goroutine; only its Registry is shared with the render thread.
type Window struct {
	opts     windowOptions
	api      resources.RenderAPI
	session  *dom.Session
	res      *resources.Resources
	styles   *style.Cache
	solver   *layout.UiSolver
	layouter *text.Layouter
	builder  *displaylist.Builder
	sheet    *style.Sheet
	viewport geom.Size
	epoch    compositor.Epoch

	// style inputs of the previous frame
	lastSheet        *style.Sheet
	lastSheetVersion uint64
	lastOverrides    *style.Overrides
	lastOvVersion    uint64

	callbacks *dom.CallbackTable
}

// NewWindow creates a window submitting resources to api. A nil api keeps
// updates in memory (resources.MemoryAPI); a nil sheet styles nothing.
func NewWindow(api resources.RenderAPI, sheet *style.Sheet, opts ...WindowOption) *Window {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if api == nil {
		api = &resources.MemoryAPI{}
	}
	if sheet == nil {
		sheet = style.NewSheet()
	}
	if o.registry == nil {
		o.registry = compositor.NewRegistry()
	}

	res := resources.New(
		resources.WithFontSizeRange(o.minFontPx, o.maxFontPx),
		resources.WithBuiltinFonts(text.BuiltinData),
	)
	layouter := text.NewLayouter(o.shaper, o.cacheCapacity)
	w := &Window{
		opts:     o,
		api:      api,
		session:  dom.NewSession(),
		res:      res,
		styles:   style.NewCache(o.cacheCapacity),
		solver:   layout.NewUiSolver(o.solver),
		layouter: layouter,
		builder: displaylist.NewBuilder(res, api, layouter,
			displaylist.WithRegistry(o.registry),
			displaylist.WithScrollbarStyle(o.scrollbar),
		),
		sheet:     sheet,
		viewport:  o.viewport,
		callbacks: &dom.CallbackTable{},
	}
	Logger().Info("ggdom: window created",
		"width", o.viewport.Width, "height", o.viewport.Height, "pipeline", uint32(o.pipeline))
	return w
}

// Session returns the id source for trees built for this window.
func (w *Window) Session() *dom.Session { return w.session }

// Resources returns the window's resource tables.
func (w *Window) Resources() *resources.Resources { return w.res }

// Registry returns the external texture registry shared with the
// renderer.
func (w *Window) Registry() *compositor.Registry { return w.builder.Registry() }

// Solver returns the window's constraint solver.
func (w *Window) Solver() *layout.UiSolver { return w.solver }

// ShapingStats reports the shaped-word cache counters.
func (w *Window) ShapingStats() cache.Stats { return w.layouter.CacheStats() }

// StyleStats reports the resolved-style cache counters.
func (w *Window) StyleStats() cache.Stats { return w.styles.Stats() }

// Epoch returns the epoch the next frame will carry.
func (w *Window) Epoch() compositor.Epoch { return w.epoch }

// Viewport returns the current window size.
func (w *Window) Viewport() geom.Size { return w.viewport }

// Resize changes the window size. The next frame recreates every layout
// constraint.
func (w *Window) Resize(width, height float32) {
	w.viewport = geom.Sz(width, height)
}

// StyleSheet returns the active sheet.
func (w *Window) StyleSheet() *style.Sheet { return w.sheet }

// SetStyleSheet replaces the active sheet.
func (w *Window) SetStyleSheet(s *style.Sheet) error {
	if s == nil {
		return ErrNilSheet
	}
	w.sheet = s
	return nil
}

// AddFont registers application font data under id. The data is parsed
// once for text layout and queued for upload to the renderer.
func (w *Window) AddFont(id style.FontID, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("ggdom: add font %v: %w", id, err)
	}
	if err := w.res.AddFont(id, data); err != nil {
		return err
	}
	w.builder.SetFontSource(id, src)
	Logger().Info("ggdom: font added", "font", id.String(), "name", src.Name())
	return nil
}

// DeleteFont removes a font and its instances at the next frame.
func (w *Window) DeleteFont(id style.FontID) error {
	if err := w.res.DeleteFont(id); err != nil {
		return err
	}
	w.builder.ForgetFontSource(id)
	return nil
}

// Frame runs one frame over tree: hashing, style resolution, incremental
// layout, resource reconciliation and display list construction. The
// resource batch is submitted to the RenderAPI exactly once, and the
// epoch advances by one.
//
// tree is consumed: callers build a new tree for every frame.
func (w *Window) Frame(tree *dom.Dom, overrides *style.Overrides) (*FrameResult, error) {
	if tree == nil {
		tree = dom.Empty()
	}
	hashes := tree.Hashes()
	styled := w.styles.Tree(tree, hashes, w.sheet, overrides)
	w.requireFonts(tree, styled)

	relayout := w.styleChanged(overrides)
	changes, err := w.solver.Update(hashes, styled, w.viewport, relayout)
	if err != nil {
		return nil, fmt.Errorf("ggdom: frame %d: %w", uint64(w.epoch), err)
	}
	bounds := layout.Arrange(styled, w.solver, w.viewport)

	// Reconcile before building so fonts required this frame are
	// uploaded in time for their instances.
	w.res.Reconcile(w.api)
	list := w.builder.Build(displaylist.Frame{
		Dom:      tree,
		Styled:   styled,
		Bounds:   bounds,
		Epoch:    w.epoch,
		Viewport: w.viewport,
		Pipeline: w.opts.pipeline,
	})
	updates := w.res.Flush(w.api)
	w.callbacks = tree.CollectCallbacks(w.session)

	result := &FrameResult{
		List:    list,
		Updates: updates,
		Changes: changes,
		Layout:  w.solver.Stats(),
		Bounds:  bounds,
		Epoch:   w.epoch,
	}
	Logger().Debug("ggdom: frame done",
		"epoch", uint64(w.epoch),
		"nodes", tree.Len(),
		"items", len(list.Items),
		"updates", len(updates),
		"constraints", result.Layout.Created)
	w.epoch++
	return result, nil
}

// Dispatch runs the callback bound to on for the node tagged tag in the
// last frame. app is handed to the callback as Event.App.
func (w *Window) Dispatch(tag dom.Tag, on dom.On, app any) dom.UpdateScreen {
	return w.callbacks.Dispatch(tag, on, app)
}

// requireFonts loads the built-in fonts used by text nodes. Fonts the
// application never added are reported once per frame and their text is
// skipped by the builder.
func (w *Window) requireFonts(tree *dom.Dom, styled *arena.Arena[style.Styled]) {
	for id := range tree.Nodes() {
		switch tree.Node(id).Type.(type) {
		case dom.Label, dom.Text:
		default:
			continue
		}
		font := styled.Data(id).Rect.FontFamily.Primary()
		if err := w.res.RequireFont(font); err != nil {
			Logger().Warn("ggdom: font unavailable", "font", font.String(), "err", err)
		}
	}
}

// styleChanged reports whether the sheet or the overrides differ from the
// previous frame. Style is not part of the node hash, so any change forces
// a relayout.
func (w *Window) styleChanged(overrides *style.Overrides) bool {
	changed := w.sheet != w.lastSheet || w.sheet.Version() != w.lastSheetVersion ||
		overrides != w.lastOverrides || overrides.Version() != w.lastOvVersion
	w.lastSheet, w.lastSheetVersion = w.sheet, w.sheet.Version()
	w.lastOverrides, w.lastOvVersion = overrides, overrides.Version()
	return changed
}
