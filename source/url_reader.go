package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/zipflow/errs"
)

// StatusError reports a non-200 response from the payload server.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status %s", e.Status)
}

// urlReader owns the connection lifecycle of one URL payload. A worker
// goroutine issues the request and streams the body into the Buffer; the
// reader tracks three states: connecting (decided channel open), connected
// (closed, no error) and error (closed, error recorded). A mid-stream
// failure moves a connected reader to the error state without finishing the
// buffer, so the consumer observes an error instead of a clean EOF.
type urlReader struct {
	buf    *Buffer
	cancel context.CancelFunc
	group  *errgroup.Group

	decided chan struct{}

	// connectErr is the failure that decided the connection attempt; it is
	// written before decided closes and never changes afterwards.
	connectErr error

	mu  sync.Mutex
	err error
}

func newURLReader(client *http.Client, req *http.Request, capacity int) *urlReader {
	ctx, cancel := context.WithCancel(req.Context())

	r := &urlReader{
		buf:     NewBuffer(capacity),
		cancel:  cancel,
		decided: make(chan struct{}),
	}

	r.group, _ = errgroup.WithContext(ctx)
	r.group.Go(func() error {
		r.run(client, req.WithContext(ctx))
		return nil
	})

	return r
}

// run drives the HTTP exchange. It never returns an error to the group;
// failures are recorded on the reader state instead.
func (r *urlReader) run(client *http.Client, req *http.Request) {
	resp, err := client.Do(req)
	if err != nil {
		r.fail(fmt.Errorf("connect %s: %w", req.URL, err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.fail(&StatusError{StatusCode: resp.StatusCode, Status: resp.Status})
		return
	}
	r.connected()

	chunk := make([]byte, chunkSize)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			if pushErr := r.buf.Push(chunk[:n]); pushErr != nil {
				// Consumer went away; nothing left to report to.
				return
			}
		}
		if err == io.EOF {
			// Clean completion: the buffer finishes, the state stays
			// connected.
			_ = r.buf.Finish()
			return
		}
		if err != nil {
			r.fail(fmt.Errorf("%w: %w", errs.ErrStreamTruncated, err))
			return
		}
	}
}

func (r *urlReader) connected() {
	close(r.decided)
}

func (r *urlReader) fail(err error) {
	r.mu.Lock()
	alreadyDecided := r.err != nil
	r.err = err
	r.mu.Unlock()

	select {
	case <-r.decided:
		// Mid-stream failure of a connected reader.
	default:
		if !alreadyDecided {
			r.connectErr = err
			close(r.decided)
		}
	}
}

// Err returns the recorded failure, if any.
func (r *urlReader) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

// Connect blocks until the connection attempt is decided and returns its
// outcome. A failure after the connection succeeded is reported by Buffer,
// not by Connect.
func (r *urlReader) Connect() error {
	<-r.decided
	return r.connectErr
}

// Buffer blocks until connected and hands out the payload buffer; once the
// reader is in the error state it returns the failure instead.
func (r *urlReader) Buffer() (*Buffer, error) {
	<-r.decided
	if err := r.Err(); err != nil {
		return nil, err
	}

	return r.buf, nil
}

// Terminate cancels the request, terminates the buffer and waits for the
// worker to exit, releasing the connection and any in-flight memory.
func (r *urlReader) Terminate() {
	r.cancel()
	r.buf.Terminate()
	_ = r.group.Wait()
}
