// Package pipeline runs one transcode request: read the image parameter,
// fetch the remote image, re-encode it.
package pipeline

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	imagepkg "github.com/youruser/webpproxy/internal/image"
	"github.com/youruser/webpproxy/internal/proxyerr"
)

// ImageParam is the query parameter carrying the remote image URL.
const ImageParam = "image"

// Fetcher retrieves the remote image for a request.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*imagepkg.FetchedImage, error)
}

// Transcoder re-encodes fetched bytes.
type Transcoder interface {
	Transcode(ctx context.Context, data []byte) (*imagepkg.TranscodedImage, error)
}

// Observer receives per-stage measurements. Nil is allowed.
type Observer interface {
	Fetched(n int)
	Transcoded(d time.Duration)
}

// Pipeline runs fetch then transcode for one request at a time; it is safe
// for concurrent use as long as its collaborators are.
type Pipeline struct {
	fetcher    Fetcher
	transcoder Transcoder
	observer   Observer
	logger     *zap.Logger
}

// New builds a Pipeline. o and logger may be nil.
func New(f Fetcher, t Transcoder, o Observer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{fetcher: f, transcoder: t, observer: o, logger: logger}
}

// Params is the validated request input.
type Params struct {
	ImageURL string
}

// ParseParams extracts the image URL. Absent and empty are both rejected.
func ParseParams(query url.Values) (Params, error) {
	image := query.Get(ImageParam)
	if image == "" {
		return Params{}, proxyerr.New(proxyerr.KindValidation, "params", proxyerr.MsgMissingImage)
	}
	return Params{ImageURL: image}, nil
}

// Run executes the request. On failure the error is a *proxyerr.Error.
func (p *Pipeline) Run(ctx context.Context, query url.Values) (*imagepkg.TranscodedImage, error) {
	params, err := ParseParams(query)
	if err != nil {
		return nil, err
	}

	fetched, err := p.fetcher.Fetch(ctx, params.ImageURL)
	if err != nil {
		return nil, proxyerr.Wrap(proxyerr.KindFetch, "fetch", "fetching image", err)
	}
	if p.observer != nil {
		p.observer.Fetched(len(fetched.Bytes))
	}
	p.logger.Debug("fetched image",
		zap.String("url", params.ImageURL),
		zap.String("media_type", fetched.MediaType),
		zap.Int("bytes", len(fetched.Bytes)),
	)

	start := time.Now()
	out, err := p.transcoder.Transcode(ctx, fetched.Bytes)
	if err != nil {
		return nil, proxyerr.Wrap(proxyerr.KindTranscode, "transcode", "transcoding image", err)
	}
	if p.observer != nil {
		p.observer.Transcoded(time.Since(start))
	}
	return out, nil
}
