package download

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// resizeJPEG decodes cover art, scales it down to fit within
// maxWidth x maxHeight preserving aspect ratio, and re-encodes as JPEG.
// Images already within bounds are re-encoded without scaling so the
// embedded artwork is always JPEG regardless of source format.
func resizeJPEG(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
		newWidth := int(float64(width) * ratio)
		newHeight := int(float64(height) * ratio)

		scaled := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
