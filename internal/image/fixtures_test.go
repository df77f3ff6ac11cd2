package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	xwebp "golang.org/x/image/webp"
)

func solid(c color.NRGBA) image.Image {
	return imaging.New(32, 24, c)
}

func pngBytes(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, solid(c)))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, solid(c), &jpeg.Options{Quality: 95}))
	return buf.Bytes()
}

func isWebP(b []byte) bool {
	return len(b) >= 12 && string(b[0:4]) == "RIFF" && string(b[8:12]) == "WEBP"
}

// centerColor decodes a WebP payload with x/image/webp, a decoder independent
// of the encoder, and returns its middle pixel.
func centerColor(t *testing.T, b []byte) color.NRGBA {
	t.Helper()
	img, err := xwebp.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	bounds := img.Bounds()
	mid := image.Pt((bounds.Min.X+bounds.Max.X)/2, (bounds.Min.Y+bounds.Max.Y)/2)
	return color.NRGBAModel.Convert(img.At(mid.X, mid.Y)).(color.NRGBA)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d > -16 && d < 16
}
