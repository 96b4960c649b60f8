// Package resources tracks images and fonts through their renderer
// lifecycle.
//
// Every image and font record moves through PendingUpload, Uploaded and
// PendingDelete, then leaves the table. Reconcile turns pending records
// into update commands, deletions first. Deleting a font also deletes each
// of its sized instances, always before the font itself. Commands
// accumulate in one batch that Flush submits once per frame.
package resources

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/gogpu/ggdom/internal/logging"
)

// State is the lifecycle position of a resource record.
type State uint8

const (
	PendingUpload State = iota
	Uploaded
	PendingDelete
)

func (s State) String() string {
	switch s {
	case PendingUpload:
		return "PendingUpload"
	case Uploaded:
		return "Uploaded"
	case PendingDelete:
		return "PendingDelete"
	default:
		return "Unknown"
	}
}

// Au is a font size in app units, 1/60 of a layout pixel.
type Au int32

// AuPerPx is the number of app units in one pixel.
const AuPerPx = 60

// MaxAu is the largest representable app unit value.
const MaxAu Au = 1<<30 - 1

// PxToAu converts pixels to app units, rounding to nearest.
func PxToAu(px float32) Au {
	v := math.Round(float64(px) * AuPerPx)
	if v > float64(MaxAu) {
		return MaxAu
	}
	if v < -float64(MaxAu) {
		return -MaxAu
	}
	return Au(v)
}

// Px returns the size in pixels.
func (a Au) Px() float32 { return float32(a) / AuPerPx }

var (
	// ErrFontSizeOutOfRange is returned for font sizes outside the
	// configured bounds.
	ErrFontSizeOutOfRange = errors.New("resources: font size out of range")

	// ErrNotUploaded is returned when a resource exists but has no
	// renderer key yet.
	ErrNotUploaded = errors.New("resources: resource not uploaded")

	// ErrExists is returned when adding a resource under an id in use.
	ErrExists = errors.New("resources: resource already exists")
)

// UnknownResourceError is returned for ids missing from the tables.
type UnknownResourceError struct {
	Kind string
	ID   string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("resources: unknown %s %s", e.Kind, e.ID)
}

// BuiltinLoader returns the file bytes of a built-in font.
type BuiltinLoader func(name string) ([]byte, error)

type imageRecord struct {
	state State
	key   ImageKey
	desc  ImageDescriptor
	data  []byte
}

type fontRecord struct {
	state     State
	key       FontKey
	data      []byte
	instances map[Au]FontInstanceKey
}

// Resources holds the image, font and text tables of one window. It is
// owned by the frame loop and is not safe for concurrent use.
type Resources struct {
	images    map[ImageID]*imageRecord
	fonts     map[FontID]*fontRecord
	cssImages map[string]ImageID
	texts     *TextCache

	nextImage ImageID
	minSize   Au
	maxSize   Au
	builtin   BuiltinLoader

	external []ImageKey
	retired  []ImageKey
	pending  []Update
}

// Option configures Resources.
type Option func(*Resources)

// WithFontSizeRange bounds the font sizes FontInstance accepts.
func WithFontSizeRange(minPx, maxPx float32) Option {
	return func(r *Resources) {
		r.minSize, r.maxSize = PxToAu(minPx), PxToAu(maxPx)
	}
}

// WithBuiltinFonts sets the loader for built-in fonts. Without it only
// fonts added with AddFont are available.
func WithBuiltinFonts(load BuiltinLoader) Option {
	return func(r *Resources) { r.builtin = load }
}

// New returns empty resource tables.
func New(opts ...Option) *Resources {
	r := &Resources{
		images:    make(map[ImageID]*imageRecord),
		fonts:     make(map[FontID]*fontRecord),
		cssImages: make(map[string]ImageID),
		texts:     NewTextCache(),
		minSize:   AuPerPx,
		maxSize:   MaxAu,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Texts returns the text cache.
func (r *Resources) Texts() *TextCache { return r.texts }

// AddImage decodes data and queues it for upload.
func (r *Resources) AddImage(data []byte) (ImageID, error) {
	desc, pixels, err := DecodeImage(data)
	if err != nil {
		return 0, err
	}
	return r.AddRawImage(desc, pixels), nil
}

// AddRawImage queues already decoded pixels for upload.
func (r *Resources) AddRawImage(desc ImageDescriptor, pixels []byte) ImageID {
	r.nextImage++
	id := r.nextImage
	r.images[id] = &imageRecord{state: PendingUpload, desc: desc, data: pixels}
	return id
}

// AddCSSImage decodes data, queues it for upload and makes it available
// to background image declarations under cssID.
func (r *Resources) AddCSSImage(cssID string, data []byte) (ImageID, error) {
	if _, ok := r.cssImages[cssID]; ok {
		return 0, fmt.Errorf("%w: css image %q", ErrExists, cssID)
	}
	id, err := r.AddImage(data)
	if err != nil {
		return 0, err
	}
	r.cssImages[cssID] = id
	return id, nil
}

// CSSImage returns the image registered under cssID.
func (r *Resources) CSSImage(cssID string) (ImageID, bool) {
	id, ok := r.cssImages[cssID]
	return id, ok
}

// DeleteCSSImage deletes the image registered under cssID.
func (r *Resources) DeleteCSSImage(cssID string) error {
	id, ok := r.cssImages[cssID]
	if !ok {
		return &UnknownResourceError{Kind: "css image", ID: cssID}
	}
	delete(r.cssImages, cssID)
	return r.DeleteImage(id)
}

// DeleteImage marks an image for deletion. An image that was never
// uploaded leaves the table at once.
func (r *Resources) DeleteImage(id ImageID) error {
	rec, ok := r.images[id]
	if !ok {
		return &UnknownResourceError{Kind: "image", ID: id.String()}
	}
	switch rec.state {
	case PendingUpload:
		delete(r.images, id)
	case Uploaded:
		rec.state = PendingDelete
		rec.data = nil
	}
	return nil
}

// ImageState reports the lifecycle state of an image.
func (r *Resources) ImageState(id ImageID) (State, bool) {
	rec, ok := r.images[id]
	if !ok {
		return 0, false
	}
	return rec.state, true
}

// Image returns the key and descriptor of an uploaded image.
func (r *Resources) Image(id ImageID) (ImageKey, ImageDescriptor, bool) {
	rec, ok := r.images[id]
	if !ok || rec.state != Uploaded {
		return 0, ImageDescriptor{}, false
	}
	return rec.key, rec.desc, true
}

// AddFont queues application font data for upload under id.
func (r *Resources) AddFont(id FontID, data []byte) error {
	if _, ok := r.fonts[id]; ok {
		return fmt.Errorf("%w: font %v", ErrExists, id)
	}
	r.fonts[id] = &fontRecord{state: PendingUpload, data: data}
	return nil
}

// RequireFont makes sure a font is in the table. Built-in fonts are
// loaded on first use; other fonts must have been added with AddFont.
func (r *Resources) RequireFont(id FontID) error {
	if rec, ok := r.fonts[id]; ok && rec.state != PendingDelete {
		return nil
	}
	if !id.Builtin || r.builtin == nil {
		return &UnknownResourceError{Kind: "font", ID: id.String()}
	}
	if _, ok := r.fonts[id]; ok {
		return fmt.Errorf("%w: font %v is being deleted", ErrNotUploaded, id)
	}
	data, err := r.builtin(id.Name)
	if err != nil {
		return fmt.Errorf("resources: load builtin font %q: %w", id.Name, err)
	}
	r.fonts[id] = &fontRecord{state: PendingUpload, data: data}
	return nil
}

// DeleteFont marks a font and all its instances for deletion.
func (r *Resources) DeleteFont(id FontID) error {
	rec, ok := r.fonts[id]
	if !ok {
		return &UnknownResourceError{Kind: "font", ID: id.String()}
	}
	switch rec.state {
	case PendingUpload:
		delete(r.fonts, id)
	case Uploaded:
		rec.state = PendingDelete
		rec.data = nil
	}
	return nil
}

// FontState reports the lifecycle state of a font.
func (r *Resources) FontState(id FontID) (State, bool) {
	rec, ok := r.fonts[id]
	if !ok {
		return 0, false
	}
	return rec.state, true
}

// FontInstance returns the instance of font at sizePx, creating it on
// first use. A new instance queues an AddFontInstance command. Sizes
// outside the configured range are rejected with ErrFontSizeOutOfRange
// and logged at warn level.
func (r *Resources) FontInstance(keys KeyGenerator, id FontID, sizePx float32) (FontKey, FontInstanceKey, error) {
	rec, ok := r.fonts[id]
	if !ok {
		return 0, 0, &UnknownResourceError{Kind: "font", ID: id.String()}
	}
	if rec.state != Uploaded {
		return 0, 0, fmt.Errorf("%w: font %v is %v", ErrNotUploaded, id, rec.state)
	}
	size := PxToAu(sizePx)
	if size < r.minSize || size > r.maxSize {
		logging.Logger().Warn("resources: font size out of range",
			"font", id.String(), "px", sizePx, "min", r.minSize.Px(), "max", r.maxSize.Px())
		return 0, 0, fmt.Errorf("%w: %vpx", ErrFontSizeOutOfRange, sizePx)
	}
	if key, ok := rec.instances[size]; ok {
		return rec.key, key, nil
	}
	key := keys.GenerateFontInstanceKey()
	if rec.instances == nil {
		rec.instances = make(map[Au]FontInstanceKey)
	}
	rec.instances[size] = key
	r.pending = append(r.pending, AddFontInstance{Key: key, Font: rec.key, Size: size})
	return rec.key, key, nil
}

// FontInstances returns the number of live instances of a font.
func (r *Resources) FontInstances(id FontID) int {
	if rec, ok := r.fonts[id]; ok {
		return len(rec.instances)
	}
	return 0
}

// ExternalImage allocates an image key for an externally rendered texture
// for the current frame. The key is deleted by the first Reconcile after
// the Flush that submits it.
func (r *Resources) ExternalImage(keys KeyGenerator, ext ExternalImageID, desc ImageDescriptor) ImageKey {
	key := keys.GenerateImageKey()
	r.external = append(r.external, key)
	r.pending = append(r.pending, AddExternalImage{Key: key, Descriptor: desc, External: ext})
	return key
}

// Reconcile queues the commands that bring the renderer in line with the
// tables. All deletions come before all uploads. A font's instances are
// deleted before the font. Records are visited in id order so the batch is
// deterministic. External image keys submitted by an earlier Flush are
// deleted first; keys allocated since the last Flush are left alone.
func (r *Resources) Reconcile(keys KeyGenerator) {
	before := len(r.pending)

	for _, key := range r.retired {
		r.pending = append(r.pending, DeleteImage{Key: key})
	}
	r.retired = r.retired[:0]

	imageIDs := slices.Sorted(maps.Keys(r.images))
	fontIDs := slices.SortedFunc(maps.Keys(r.fonts), compareFontIDs)

	for _, id := range imageIDs {
		if rec := r.images[id]; rec.state == PendingDelete {
			r.pending = append(r.pending, DeleteImage{Key: rec.key})
			delete(r.images, id)
		}
	}
	for _, id := range fontIDs {
		rec := r.fonts[id]
		if rec.state != PendingDelete {
			continue
		}
		for _, size := range slices.Sorted(maps.Keys(rec.instances)) {
			r.pending = append(r.pending, DeleteFontInstance{Key: rec.instances[size]})
		}
		r.pending = append(r.pending, DeleteFont{Key: rec.key})
		delete(r.fonts, id)
	}

	for _, id := range imageIDs {
		rec, ok := r.images[id]
		if !ok || rec.state != PendingUpload {
			continue
		}
		rec.key = keys.GenerateImageKey()
		r.pending = append(r.pending, AddImage{Key: rec.key, Descriptor: rec.desc, Data: rec.data})
		rec.state = Uploaded
		rec.data = nil
	}
	for _, id := range fontIDs {
		rec, ok := r.fonts[id]
		if !ok || rec.state != PendingUpload {
			continue
		}
		rec.key = keys.GenerateFontKey()
		r.pending = append(r.pending, AddFont{Key: rec.key, Data: rec.data})
		rec.state = Uploaded
		rec.data = nil
	}

	if n := len(r.pending) - before; n > 0 {
		logging.Logger().Debug("resources: reconciled", "updates", n)
	}
}

// Pending returns the commands queued since the last Flush.
func (r *Resources) Pending() []Update { return r.pending }

// Flush submits the queued commands to api in one batch. Nothing is
// submitted when the queue is empty. It returns the submitted batch.
// External image keys in the batch retire with it.
func (r *Resources) Flush(api RenderAPI) []Update {
	r.retired = append(r.retired, r.external...)
	r.external = r.external[:0]
	if len(r.pending) == 0 {
		return nil
	}
	batch := r.pending
	r.pending = nil
	api.UpdateResources(batch)
	return batch
}

func compareFontIDs(a, b FontID) int {
	if a.Builtin != b.Builtin {
		if a.Builtin {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.Name, b.Name)
}
