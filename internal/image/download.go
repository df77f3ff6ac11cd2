package imagepkg

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/youruser/webpproxy/internal/proxyerr"
	"github.com/youruser/webpproxy/internal/util"
)

// FetchedImage is the raw upstream payload and the media type it was
// served with.
type FetchedImage struct {
	Bytes     []byte
	MediaType string
}

// Fetcher downloads remote images. One GET per call, no retries.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewFetcher returns a Fetcher using client. maxBytes <= 0 means the body is
// read in full regardless of size.
func NewFetcher(client *http.Client, maxBytes int64) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, maxBytes: maxBytes}
}

// Fetch downloads url and checks that it was served as image/*.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*FetchedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, proxyerr.Wrap(proxyerr.KindFetch, "fetch", "building request", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, proxyerr.Wrap(proxyerr.KindFetch, "fetch", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, proxyerr.New(proxyerr.KindUpstream, "fetch", proxyerr.MsgUpstreamStatus)
	}

	mediaType, ok := imageMediaType(resp.Header.Get("Content-Type"))
	if !ok {
		return nil, proxyerr.New(proxyerr.KindMediaType, "fetch", proxyerr.MsgNotImage)
	}

	body, err := util.ReadAll(resp.Body, f.maxBytes)
	if errors.Is(err, util.ErrBodyTooLarge) {
		return nil, proxyerr.Wrap(proxyerr.KindUpstream, "fetch", proxyerr.MsgUpstreamStatus, err)
	}
	if err != nil {
		return nil, proxyerr.Wrap(proxyerr.KindFetch, "fetch", "reading body", err)
	}

	return &FetchedImage{Bytes: body, MediaType: mediaType}, nil
}

// imageMediaType parses a Content-Type header, dropping parameters, and
// reports whether its top-level type is image. A missing or unparsable
// header is not an image.
func imageMediaType(header string) (string, bool) {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil && !errors.Is(err, mime.ErrInvalidMediaParameter) {
		return "", false
	}
	top, _, _ := strings.Cut(mediaType, "/")
	return mediaType, top == "image"
}
