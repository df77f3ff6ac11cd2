package util

import (
	"errors"
	"io"
	"net/http"
	"time"
)

var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// NewClient returns an HTTP client. A zero timeout leaves the transport
// default in place, which never times out.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// ReadAll reads r to EOF. With a positive limit it fails with ErrBodyTooLarge
// once more than limit bytes arrive.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, ErrBodyTooLarge
	}
	return b, nil
}
