package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DecodeImage decodes an encoded image into upload-ready pixels.
// Grayscale images stay single-channel; everything else becomes
// straight-alpha RGBA8.
func DecodeImage(data []byte) (ImageDescriptor, []byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ImageDescriptor{}, nil, fmt.Errorf("resources: decode image: %w", err)
	}
	b := img.Bounds()
	desc := ImageDescriptor{
		Width:  uint32(b.Dx()), //nolint:gosec // image bounds are non-negative
		Height: uint32(b.Dy()), //nolint:gosec // image bounds are non-negative
	}

	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		desc.Format = gputypes.TextureFormatR8Unorm
		desc.Stride = desc.Width
		desc.Opaque = true
		return desc, packRows(g.Pix, g.Stride, b.Dx(), b.Dy()), nil
	}

	rgba, ok := img.(*image.NRGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	desc.Format = gputypes.TextureFormatRGBA8Unorm
	desc.Stride = desc.Width * 4
	desc.Opaque = rgba.Opaque()
	return desc, packRows(rgba.Pix, rgba.Stride, b.Dx()*4, b.Dy()), nil
}

// packRows copies h rows of rowBytes each out of pix, dropping stride
// padding.
func packRows(pix []byte, stride, rowBytes, h int) []byte {
	if stride == rowBytes {
		return append([]byte(nil), pix[:rowBytes*h]...)
	}
	out := make([]byte, 0, rowBytes*h)
	for y := range h {
		out = append(out, pix[y*stride:y*stride+rowBytes]...)
	}
	return out
}
