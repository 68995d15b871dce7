package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// minScanWidth is the pixel width below which a scan is considered too
// small for reliable recognition and gets upscaled.
const minScanWidth = 1200

// scanScaleFactor is the upscale factor applied to narrow scans.
const scanScaleFactor = 2

// prepareImage decodes image data and upscales narrow scans with a
// Catmull-Rom kernel so small hymnal type stays legible to the OCR
// engine. Images already wide enough pass through untouched. The
// result is PNG-encoded.
func prepareImage(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() >= minScanWidth {
		return data, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scanScaleFactor, bounds.Dy()*scanScaleFactor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding upscaled image: %w", err)
	}
	return buf.Bytes(), nil
}
