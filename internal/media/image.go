// Package media prepares brand images and hands them to object storage.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	xwebp "golang.org/x/image/webp"
)

const (
	// MaxWidth is the widest brand image kept; wider uploads are scaled down.
	MaxWidth = 512

	Quality = 80

	// MaxUploadBytes caps what Process reads from the caller.
	MaxUploadBytes = 5 << 20

	ContentType = "image/webp"
)

var ErrUnsupportedImage = fmt.Errorf("unsupported image format")

// Process decodes a png, jpeg or webp upload, scales it to at most MaxWidth
// keeping the aspect ratio and re-encodes it as webp.
func Process(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxUploadBytes {
		return nil, fmt.Errorf("image larger than %d bytes", MaxUploadBytes)
	}

	img, err := decode(raw)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, Resize(img, MaxWidth), &webp.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}

func decode(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return img, nil
	}
	if img, werr := xwebp.Decode(bytes.NewReader(raw)); werr == nil {
		return img, nil
	}
	return nil, ErrUnsupportedImage
}

// Resize scales img down to width. Narrower images are returned as is.
func Resize(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() <= width {
		return img
	}

	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
