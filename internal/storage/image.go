package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

const jpegQuality = 85

// Optimize downscales JPEG and PNG images wider than maxWidth, keeping the
// aspect ratio and the original format. Other content and undecodable data
// are returned unchanged.
func Optimize(data []byte, contentType string, maxWidth int) []byte {
	if maxWidth <= 0 {
		return data
	}

	var (
		img image.Image
		err error
	)
	switch contentType {
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	default:
		return data
	}
	if err != nil || img.Bounds().Dx() <= maxWidth {
		return data
	}

	resized := resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if contentType == "image/png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return data
	}
	return buf.Bytes()
}
