package dom

import (
	"slices"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggdom/resources"
)

// NodeType is the closed set of node content kinds: Div, Label, Text,
// Image and Texture. Code that needs type-specific behavior switches on
// the concrete type.
type NodeType interface {
	// CSSName returns the element name used for type selectors.
	CSSName() string

	isNodeType()
}

// Div is a plain container with no content of its own.
type Div struct{}

// Label is a short string laid out on every frame.
type Label struct {
	Text string
}

// Text is a longer string stored in the resources text cache.
type Text struct {
	ID resources.TextID
}

// Image is an image registered with resources.Resources.AddImage.
type Image struct {
	ID resources.ImageID
}

// Texture is a GPU texture rendered outside the toolkit.
// Only ID takes part in equality and hashing; the texture contents are
// never compared.
type Texture struct {
	ID     uint64
	Width  uint32
	Height uint32
	Handle gpucontext.Texture
}

func (Div) CSSName() string     { return "div" }
func (Label) CSSName() string   { return "p" }
func (Text) CSSName() string    { return "p" }
func (Image) CSSName() string   { return "image" }
func (Texture) CSSName() string { return "texture" }

func (Div) isNodeType()     {}
func (Label) isNodeType()   {}
func (Text) isNodeType()    {}
func (Image) isNodeType()   {}
func (Texture) isNodeType() {}

// On is the kind of event a callback listens for.
type On uint8

const (
	MouseOver On = iota
	MouseDown
	LeftMouseDown
	MiddleMouseDown
	RightMouseDown
	MouseUp
	LeftMouseUp
	MiddleMouseUp
	RightMouseUp
	MouseEnter
	MouseLeave
	Scroll
)

var onNames = [...]string{
	MouseOver:       "MouseOver",
	MouseDown:       "MouseDown",
	LeftMouseDown:   "LeftMouseDown",
	MiddleMouseDown: "MiddleMouseDown",
	RightMouseDown:  "RightMouseDown",
	MouseUp:         "MouseUp",
	LeftMouseUp:     "LeftMouseUp",
	MiddleMouseUp:   "MiddleMouseUp",
	RightMouseUp:    "RightMouseUp",
	MouseEnter:      "MouseEnter",
	MouseLeave:      "MouseLeave",
	Scroll:          "Scroll",
}

// String returns the event name.
func (o On) String() string {
	if int(o) < len(onNames) {
		return onNames[o]
	}
	return "Unknown"
}

// UpdateScreen tells the window whether a callback requires a redraw.
type UpdateScreen bool

const (
	Redraw     UpdateScreen = true
	DontRedraw UpdateScreen = false
)

// Event is passed to a callback when its node is hit.
type Event struct {
	On  On
	Tag Tag
	// App is the application state handed to Window.Dispatch.
	App any
}

// Callback handles an event on a node.
//
// Two callbacks are the same binding when they share a code address, so
// a node bound to a different function hashes differently even when the
// rest of the node is unchanged.
type Callback func(ev *Event) UpdateScreen

// Binding pairs an event kind with its callback.
type Binding struct {
	On       On
	Callback Callback
}

// Tag identifies a hit-testable node across the display list. The zero
// Tag means the node has no hit-test behavior.
type Tag uint64

// NodeData is the payload of one DOM node.
type NodeData struct {
	Type NodeType
	// ID is the #id of the node; empty means none.
	ID      string
	Classes []string
	// Events is ordered by On and holds at most one binding per kind.
	Events []Binding
	Tag    Tag
}

// NewNodeData returns node data of the given type.
func NewNodeData(t NodeType) NodeData {
	if t == nil {
		t = Div{}
	}
	return NodeData{Type: t}
}

// HasClass reports whether class is set on the node.
func (n *NodeData) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// Callback returns the callback bound to on.
func (n *NodeData) Callback(on On) (Callback, bool) {
	i, ok := n.findBinding(on)
	if !ok {
		return nil, false
	}
	return n.Events[i].Callback, true
}

// bind inserts or replaces the binding for on, keeping Events ordered.
func (n *NodeData) bind(on On, cb Callback) {
	i, ok := n.findBinding(on)
	if ok {
		n.Events[i].Callback = cb
		return
	}
	n.Events = slices.Insert(n.Events, i, Binding{On: on, Callback: cb})
}

func (n *NodeData) findBinding(on On) (int, bool) {
	return slices.BinarySearchFunc(n.Events, on, func(b Binding, on On) int {
		return int(b.On) - int(on)
	})
}

// clone returns a copy that does not share slices with n.
func (n *NodeData) clone() NodeData {
	c := *n
	c.Classes = slices.Clone(n.Classes)
	c.Events = slices.Clone(n.Events)
	return c
}
