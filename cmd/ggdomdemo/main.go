// Command ggdomdemo builds a small UI tree, runs two frames through a
// window and prints the display list and the resource updates.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ggdom"
	"github.com/gogpu/ggdom/displaylist"
	"github.com/gogpu/ggdom/dom"
	"github.com/gogpu/ggdom/geom"
	"github.com/gogpu/ggdom/resources"
	"github.com/gogpu/ggdom/style"
	"github.com/gogpu/ggdom/text"
)

func main() {
	var (
		width   = flag.Float64("width", 400, "viewport width")
		height  = flag.Float64("height", 300, "viewport height")
		shaping = flag.Bool("shape", false, "shape text with HarfBuzz")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		ggdom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	opts := []ggdom.WindowOption{ggdom.WithViewport(float32(*width), float32(*height))}
	if *shaping {
		opts = append(opts, ggdom.WithShaper(text.NewGoTextShaper()))
	}
	api := &resources.MemoryAPI{}
	w := ggdom.NewWindow(api, demoSheet(), opts...)
	clicks := 0

	for frame := range 2 {
		res, err := w.Frame(demoTree(w.Session(), &clicks), nil)
		if err != nil {
			log.Fatalf("frame %d: %v", frame, err)
		}
		fmt.Printf("frame %d (epoch %d): %d items, %d updates, %d constraints created\n",
			frame, res.Epoch, len(res.List.Items), len(res.Updates), res.Layout.Created)
		for _, u := range res.Updates {
			fmt.Printf("  update %v\n", u.Type())
		}
		for _, it := range res.List.Items {
			fmt.Printf("  %-14v %v\n", it.Type(), describe(it))
		}
	}
}

func demoSheet() *style.Sheet {
	return style.NewSheet().
		MustAdd("div",
			style.Static(style.BackgroundColor(style.MustParseColor("#f4f4f4"))),
			style.Static(style.JustifyContent(style.JustifyCenter)),
		).
		MustAdd(".card",
			style.Static(style.UniformRadius(6)),
			style.Static(style.SolidBorder(1, style.MustParseColor("#c8c8c8"))),
			style.Static(style.BoxShadow{Shadow: &style.Shadow{
				Offset: geom.Pt(0, 2), Color: style.RGBA(0, 0, 0, 64), Blur: 4,
			}}),
			style.Static(style.LinearGradient{
				Direction: style.ToBottom,
				Stops: []style.GradientStop{
					{Offset: -1, Color: style.White},
					{Offset: -1, Color: style.MustParseColor("#e8eef8")},
				},
			}),
		).
		MustAdd("p", style.Static(style.FontSize(18)), style.Static(style.Height(40)))
}

func demoTree(s *dom.Session, clicks *int) *dom.Dom {
	return dom.Container(
		dom.New(dom.Div{}).WithClass("card").
			WithChild(dom.New(dom.Label{Text: "Hello"})).
			WithChild(dom.New(dom.Label{Text: "World"}).
				WithCallback(s, dom.LeftMouseUp, func(*dom.Event) dom.UpdateScreen {
					*clicks++
					return dom.Redraw
				})),
	)
}

func describe(it displaylist.Item) string {
	b := it.Common().Bounds
	switch it := it.(type) {
	case displaylist.Text:
		return fmt.Sprintf("at %.0f,%.0f glyphs=%d font=%d", b.MinX(), b.MinY(), len(it.Glyphs), it.Instance)
	case displaylist.Rect:
		return fmt.Sprintf("%.0fx%.0f at %.0f,%.0f %v", b.Size.Width, b.Size.Height, b.MinX(), b.MinY(), it.Color)
	default:
		return fmt.Sprintf("%.0fx%.0f at %.0f,%.0f", b.Size.Width, b.Size.Height, b.MinX(), b.MinY())
	}
}
