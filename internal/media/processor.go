package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Processor resizes and re-encodes raw image bytes. Output is always JPEG at
// the configured quality, scaled to fit within maxDim on both axes without
// ever upscaling.
type Processor struct {
	maxDim  int
	quality int
}

// NewProcessor builds a processor with the given bounding dimension and JPEG
// quality. Non-positive values fall back to 1024 and 90.
func NewProcessor(maxDim, quality int) *Processor {
	if maxDim <= 0 {
		maxDim = 1024
	}
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	return &Processor{maxDim: maxDim, quality: quality}
}

// Process decodes JPEG or PNG bytes, downscales to fit the bounding box and
// re-encodes as JPEG.
func (p *Processor) Process(raw []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	dst := p.scale(src)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, dst, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}

func (p *Processor) scale(src image.Image) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= p.maxDim && h <= p.maxDim {
		return src
	}

	ratio := float64(p.maxDim) / float64(w)
	if h > w {
		ratio = float64(p.maxDim) / float64(h)
	}
	dw := int(float64(w) * ratio)
	dh := int(float64(h) * ratio)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
