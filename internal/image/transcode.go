package imagepkg

import (
	"bytes"
	"context"
	"image/color"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/youruser/webpproxy/internal/proxyerr"
)

const (
	// ContentType is the only encoding the transcoder produces.
	ContentType = "image/webp"
	// Quality is the lossy WebP quality, 0-100.
	Quality = 80
)

// TranscodedImage is an encoded WebP image ready to be written out.
type TranscodedImage struct {
	Bytes       []byte
	ContentType string
}

// Transcoder decodes any registered image format and re-encodes it as WebP.
// It holds no per-request state and is safe for concurrent use.
type Transcoder struct {
	quality float32
}

// NewTranscoder returns a Transcoder encoding at Quality.
func NewTranscoder() *Transcoder {
	return &Transcoder{quality: Quality}
}

// Transcode decodes data and encodes it as WebP at the fixed quality.
func (t *Transcoder) Transcode(ctx context.Context, data []byte) (*TranscodedImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, proxyerr.Wrap(proxyerr.KindTranscode, "transcode", "request cancelled", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, proxyerr.Wrap(proxyerr.KindTranscode, "decode", "decoding image", err)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Quality: t.quality}); err != nil {
		return nil, proxyerr.Wrap(proxyerr.KindTranscode, "encode", "encoding webp", err)
	}

	return &TranscodedImage{Bytes: buf.Bytes(), ContentType: ContentType}, nil
}

// Warmup runs one encode so a broken codec fails the process at startup
// instead of on the first request.
func (t *Transcoder) Warmup() error {
	img := imaging.New(1, 1, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff})
	if err := webp.Encode(new(bytes.Buffer), img, &webp.Options{Quality: t.quality}); err != nil {
		return proxyerr.Wrap(proxyerr.KindTranscode, "warmup", "webp codec unavailable", err)
	}
	return nil
}
