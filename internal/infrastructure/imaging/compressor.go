// Package imaging shrinks uploaded images before they are sent to the backend.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
)

const (
	startQuality = 85
	qualityStep  = 10
)

// JPEGCompressor re-encodes JPEG and PNG images as JPEG at decreasing quality
// until they fit maxBytes or minQuality is reached. Other formats pass through.
type JPEGCompressor struct {
	maxBytes   int64
	minQuality int
}

func NewJPEGCompressor(maxBytes int64, minQuality int) *JPEGCompressor {
	if minQuality < 1 || minQuality > startQuality {
		minQuality = 40
	}
	return &JPEGCompressor{
		maxBytes:   maxBytes,
		minQuality: minQuality,
	}
}

// Compress returns the smaller of the original and the best re-encoding,
// together with its MIME type.
func (c *JPEGCompressor) Compress(data []byte, mimeType string) ([]byte, string, error) {
	if int64(len(data)) <= c.maxBytes {
		return data, mimeType, nil
	}
	if mimeType != "image/jpeg" && mimeType != "image/png" {
		return data, mimeType, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	flat := flatten(src)

	best := data
	bestType := mimeType
	for q := startQuality; q >= c.minQuality; q -= qualityStep {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: q}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg at quality %d: %w", q, err)
		}
		if buf.Len() < len(best) {
			best = buf.Bytes()
			bestType = "image/jpeg"
		}
		if int64(buf.Len()) <= c.maxBytes {
			break
		}
	}

	return best, bestType, nil
}

// flatten draws src over white so transparent PNG areas do not turn black.
func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}
