package resources

import "fmt"

// ImageID identifies an image registered with Resources.
type ImageID uint64

// TextID identifies a string stored in the text cache.
type TextID uint64

func (id ImageID) String() string { return fmt.Sprintf("image#%d", uint64(id)) }
func (id TextID) String() string  { return fmt.Sprintf("text#%d", uint64(id)) }

// ImageKey, FontKey and FontInstanceKey are opaque renderer-side handles
// produced by a RenderAPI.
type (
	ImageKey        uint64
	FontKey         uint64
	FontInstanceKey uint64
)

// ExternalImageID names a texture rendered outside the toolkit.
type ExternalImageID uint64

// FontID names a font: a built-in font, or one registered with
// Resources.AddFont.
type FontID struct {
	Name    string
	Builtin bool
}

func (id FontID) String() string {
	if id.Builtin {
		return "builtin:" + id.Name
	}
	return id.Name
}
