package source

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/arloliu/zipflow/errs"
	"github.com/arloliu/zipflow/internal/options"
)

// URLDescriptor downloads the payload from an HTTP(S) endpoint.
type URLDescriptor struct {
	Target   string
	capacity int
	header   http.Header
	client   *http.Client
}

// URLOption configures a URL descriptor.
type URLOption = options.Option[*URLDescriptor]

// WithCapacity bounds the in-flight buffer for this source, in bytes.
// The default is DefaultBufferCapacity.
func WithCapacity(n int) URLOption {
	return options.NoError(func(d *URLDescriptor) {
		d.capacity = n
	})
}

// WithHeader adds a request header sent with the download.
func WithHeader(key, value string) URLOption {
	return options.NoError(func(d *URLDescriptor) {
		if d.header == nil {
			d.header = make(http.Header)
		}
		d.header.Add(key, value)
	})
}

// WithClient overrides the HTTP client used for the download.
func WithClient(client *http.Client) URLOption {
	return options.NoError(func(d *URLDescriptor) {
		d.client = client
	})
}

// URL creates a descriptor that streams the response body of target.
// Only http and https targets are accepted.
func URL(target string, opts ...URLOption) URLDescriptor {
	d := URLDescriptor{Target: target}
	_ = options.Apply(&d, opts...)

	return d
}

func (d URLDescriptor) Validate() error {
	u, err := url.Parse(d.Target)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrSourceInvalid, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", errs.ErrSchemeInvalid, u.Scheme)
	}

	return nil
}

func (d URLDescriptor) Build() (Source, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodGet, d.Target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, values := range d.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	client := d.client
	if client == nil {
		client = http.DefaultClient
	}

	reader := newURLReader(client, req, d.capacity)
	if err := reader.Connect(); err != nil {
		reader.Terminate()
		return nil, err
	}

	return &urlSource{reader: reader}, nil
}

// urlSource drains the reader's buffer one non-blocking read at a time.
type urlSource struct {
	reader *urlReader
	done   bool
}

func (s *urlSource) Read() ([]byte, error) {
	if s.done {
		return nil, errs.ErrSourceClosed
	}

	buf, err := s.reader.Buffer()
	if err != nil {
		s.terminate()
		return nil, err
	}

	chunk, err := buf.Read()
	if err == io.EOF {
		s.terminate()
		return nil, io.EOF
	}
	if err != nil {
		s.terminate()
		return nil, err
	}

	return chunk, nil
}

func (s *urlSource) terminate() {
	if !s.done {
		s.done = true
		s.reader.Terminate()
	}
}

func (s *urlSource) Close() error {
	s.terminate()
	return nil
}
