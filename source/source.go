// Package source fetches encoded pattern text from disk or over HTTP,
// transparently decompressing zstd payloads.
package source

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxBytes = 16 << 20

	zstdSuffix = ".zst"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ErrTooLarge is returned when a pattern exceeds the configured size limit.
var ErrTooLarge = errors.New("pattern exceeds size limit")

type options struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures Load.
type Option func(*options)

// WithHTTPClient sets the client used for remote locations.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

// WithTimeout bounds a remote fetch. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithMaxBytes limits the size of the decoded pattern text.
func WithMaxBytes(n int64) Option {
	return func(o *options) { o.maxBytes = n }
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load returns the pattern text stored at location, a file path or an
// http(s) URL.
func Load(ctx context.Context, location string, opts ...Option) ([]byte, error) {
	o := options{
		client:   http.DefaultClient,
		timeout:  defaultTimeout,
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		data []byte
		err  error
	)
	if IsRemote(location) {
		data, err = fetch(ctx, location, o)
	} else {
		data, err = readFile(location, o)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(location, zstdSuffix) || bytes.HasPrefix(data, zstdMagic) {
		if data, err = decompress(data, o.maxBytes); err != nil {
			return nil, errors.WithMessagef(err, "[Load] failed to decompress: %+v", location)
		}
	}
	return data, nil
}

func readFile(path string, o options) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to open file: %+v", path)
	}
	defer f.Close()

	data, err := readLimited(f, o.maxBytes)
	if err != nil {
		return nil, errors.WithMessagef(err, "[Load] failed to read file: %+v", path)
	}
	return data, nil
}

func fetch(ctx context.Context, url string, o options) ([]byte, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to build request: %+v", url)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "[Load] failed to fetch: %+v", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("[Load] unexpected status %d fetching: %+v", resp.StatusCode, url)
	}

	data, err := readLimited(resp.Body, o.maxBytes)
	if err != nil {
		return nil, errors.WithMessagef(err, "[Load] failed to read response: %+v", url)
	}
	return data, nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if int64(len(data)) > maxBytes {
		return nil, errors.WithStack(ErrTooLarge)
	}
	return data, nil
}

func decompress(data []byte, maxBytes int64) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(maxBytes)))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "zstd decode")
	}
	if int64(len(out)) > maxBytes {
		return nil, errors.WithStack(ErrTooLarge)
	}
	return out, nil
}
