package storage

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	AvatarMaxSide = 512
	AvatarQuality = 80
	MaxUploadSize = 5 << 20
)

var ErrUnsupportedImage = errors.New("storage: unsupported image")

// NormalizeAvatar decodifica jpeg, png ou webp, reduz o maior lado para
// AvatarMaxSide mantendo a proporção e reencoda em webp.
func NormalizeAvatar(raw []byte) ([]byte, error) {
	if len(raw) == 0 || len(raw) > MaxUploadSize {
		return nil, ErrUnsupportedImage
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	img := fit(src, AvatarMaxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: AvatarQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}

	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
