package resources

import "github.com/gogpu/gputypes"

// UpdateType identifies a resource update command.
type UpdateType uint8

const (
	UpdAddImage UpdateType = iota
	UpdAddExternalImage
	UpdDeleteImage
	UpdAddFont
	UpdDeleteFont
	UpdAddFontInstance
	UpdDeleteFontInstance
)

var updateTypeNames = [...]string{
	UpdAddImage:           "AddImage",
	UpdAddExternalImage:   "AddExternalImage",
	UpdDeleteImage:        "DeleteImage",
	UpdAddFont:            "AddFont",
	UpdDeleteFont:         "DeleteFont",
	UpdAddFontInstance:    "AddFontInstance",
	UpdDeleteFontInstance: "DeleteFontInstance",
}

func (t UpdateType) String() string {
	if int(t) < len(updateTypeNames) {
		return updateTypeNames[t]
	}
	return "Unknown"
}

// Update is one command in a resource update batch.
type Update interface {
	Type() UpdateType
}

// ImageDescriptor describes the pixel layout of an uploaded image.
type ImageDescriptor struct {
	Width  uint32
	Height uint32
	// Stride is the number of bytes per row.
	Stride uint32
	Format gputypes.TextureFormat
	// Opaque is set when every pixel has full alpha.
	Opaque bool
}

// AddImage uploads pixel data under Key.
type AddImage struct {
	Key        ImageKey
	Descriptor ImageDescriptor
	Data       []byte
}

// AddExternalImage binds Key to a texture rendered outside the toolkit.
// The renderer resolves External through the compositor registry.
type AddExternalImage struct {
	Key        ImageKey
	Descriptor ImageDescriptor
	External   ExternalImageID
}

// DeleteImage frees an image key.
type DeleteImage struct {
	Key ImageKey
}

// AddFont uploads font file bytes under Key.
type AddFont struct {
	Key  FontKey
	Data []byte
}

// DeleteFont frees a font key. Every instance of the font is deleted
// before it in the same batch.
type DeleteFont struct {
	Key FontKey
}

// AddFontInstance creates a sized instance of Font.
type AddFontInstance struct {
	Key  FontInstanceKey
	Font FontKey
	Size Au
}

// DeleteFontInstance frees a font instance key.
type DeleteFontInstance struct {
	Key FontInstanceKey
}

func (AddImage) Type() UpdateType           { return UpdAddImage }
func (AddExternalImage) Type() UpdateType   { return UpdAddExternalImage }
func (DeleteImage) Type() UpdateType        { return UpdDeleteImage }
func (AddFont) Type() UpdateType            { return UpdAddFont }
func (DeleteFont) Type() UpdateType         { return UpdDeleteFont }
func (AddFontInstance) Type() UpdateType    { return UpdAddFontInstance }
func (DeleteFontInstance) Type() UpdateType { return UpdDeleteFontInstance }

// KeyGenerator hands out fresh renderer keys.
type KeyGenerator interface {
	GenerateImageKey() ImageKey
	GenerateFontKey() FontKey
	GenerateFontInstanceKey() FontInstanceKey
}

// RenderAPI is the resource side of the renderer. UpdateResources is
// called at most once per frame with the whole batch.
type RenderAPI interface {
	KeyGenerator
	UpdateResources(updates []Update)
}

// MemoryAPI is a RenderAPI that hands out sequential keys and keeps every
// submitted batch. It backs headless runs and tests.
type MemoryAPI struct {
	next    uint64
	Batches [][]Update
}

// GenerateImageKey implements KeyGenerator.
func (m *MemoryAPI) GenerateImageKey() ImageKey { m.next++; return ImageKey(m.next) }

// GenerateFontKey implements KeyGenerator.
func (m *MemoryAPI) GenerateFontKey() FontKey { m.next++; return FontKey(m.next) }

// GenerateFontInstanceKey implements KeyGenerator.
func (m *MemoryAPI) GenerateFontInstanceKey() FontInstanceKey {
	m.next++
	return FontInstanceKey(m.next)
}

// UpdateResources implements RenderAPI.
func (m *MemoryAPI) UpdateResources(updates []Update) {
	m.Batches = append(m.Batches, updates)
}

// Last returns the most recent batch, or nil.
func (m *MemoryAPI) Last() []Update {
	if len(m.Batches) == 0 {
		return nil
	}
	return m.Batches[len(m.Batches)-1]
}
