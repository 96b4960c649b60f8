// Package ggdom prepares retained-mode user interfaces for GPU rendering.
//
// # Overview
//
// An application describes its UI as a fresh tree of nodes on every frame.
// ggdom compares the tree with the previous frame, resolves style sheets,
// lays the tree out with a constraint solver, keeps renderer-side images
// and fonts in sync, and emits an ordered display list for a renderer to
// draw. Work is incremental: nodes whose content did not change keep their
// resolved style and their layout constraints.
//
// # Quick Start
//
//	import "github.com/gogpu/ggdom"
//
//	sheet := style.NewSheet().
//		MustAdd("p", style.Static(style.FontSize(20)))
//	w := ggdom.NewWindow(api, sheet, ggdom.WithViewport(800, 600))
//
//	tree := dom.Container(
//		dom.New(dom.Label{Text: "Hello"}),
//		dom.New(dom.Label{Text: "World"}),
//	)
//	res, err := w.Frame(tree, nil)
//	// res.List holds the primitives, res.Updates the resource batch.
//
// # Architecture
//
// The library is organized into:
//   - arena, dom: the node arena and the tree builder with its merge engine
//     and content hasher
//   - style: declarations, sheets, dynamic overrides and the style cache
//   - layout: the constraint solver boundary, the change-set and the
//     arrange pass
//   - text: font sources, shaping and text layout
//   - resources: image and font lifecycle, and the renderer update batch
//   - displaylist: display items and the builder
//   - compositor: the epoch-indexed texture registry shared with the
//     render thread
//
// # Frame Pipeline
//
// Window.Frame runs, in order: hashing, style resolution, built-in font
// loading, constraint update, arrange, resource reconciliation, display
// list construction and a single resource submission. The epoch advances
// by one per frame.
//
// # Coordinate System
//
// Layout pixels with the origin at the top-left, X increasing right and
// Y increasing down.
package ggdom
