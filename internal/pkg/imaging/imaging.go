package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/capture"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"

	DefaultJPEGQuality = 80
)

var allowedMIME = []string{MIMEJPEG, MIMEPNG}

// Rasterize copies frame onto a fresh RGBA surface. A frame whose longer side exceeds
// maxDimension is scaled down to it, keeping the aspect ratio; 0 keeps the native size.
func Rasterize(frame image.Image, maxDimension int) (*image.RGBA, error) {
	if frame == nil {
		return nil, capture.ErrEmptyFrame
	}
	b := frame.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, capture.ErrEmptyFrame
	}

	w, h := FitWithin(b.Dx(), b.Dy(), maxDimension)
	surface := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(surface, surface.Bounds(), frame, b.Min, draw.Src)
		return surface, nil
	}
	draw.CatmullRom.Scale(surface, surface.Bounds(), frame, b, draw.Src, nil)
	return surface, nil
}

// FitWithin shrinks w×h until the longer side is at most limit.
func FitWithin(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

// EncodeJPEG encodes img at the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL renders data as a base64 data URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL turns a data URL back into bytes. The declared MIME prefix must be
// an allowed image type and the payload must sniff as that same type.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", nil, fmt.Errorf("%w: missing data URL header", capture.ErrInvalidImageData)
	}

	declared := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if !isAllowed(declared) {
		return "", nil, fmt.Errorf("%w: unexpected MIME type %q", capture.ErrInvalidImageData, declared)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", capture.ErrInvalidImageData, err)
	}

	if detected := mimetype.Detect(data); !detected.Is(declared) {
		return "", nil, fmt.Errorf("%w: declared %s but content is %s", capture.ErrInvalidImageData, declared, detected.String())
	}

	return declared, data, nil
}

// DecodeFrame reads an uploaded still (JPEG or PNG) into an image.
func DecodeFrame(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", capture.ErrInvalidImageData, err)
	}
	return img, nil
}

func isAllowed(mime string) bool {
	for _, m := range allowedMIME {
		if m == mime {
			return true
		}
	}
	return false
}
