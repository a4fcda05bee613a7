package source

import (
	"io"
	"sync"

	"github.com/arloliu/zipflow/errs"
)

// DefaultBufferCapacity bounds the bytes a URL source may hold in flight.
const DefaultBufferCapacity = 1024 * 1024 // 1MiB

// Buffer is the bounded hand-off between an HTTP worker pushing response
// bytes and the encoder draining them.
//
// The contract, which the worker and consumer sides rely on:
//
//   - Push blocks while the queued byte count is at or above capacity, and
//     resumes once a Read frees space.
//   - Read never blocks: it drains everything queued, returns an empty
//     chunk when nothing is queued, and io.EOF once finished.
//   - Finish blocks until the queue has drained to zero, so it is observed
//     strictly after every pending Push. Finishing an empty buffer is the
//     only path to the finished state.
//   - Terminate releases any blocked Push or Finish callers with
//     errs.ErrBufferTerminated.
type Buffer struct {
	mu   sync.Mutex
	cond *sync.Cond

	queue      []byte
	capacity   int
	finished   bool
	terminated bool
}

// NewBuffer creates a buffer bounded at capacity bytes; zero or negative
// capacity selects DefaultBufferCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}

	b := &Buffer{capacity: capacity}
	b.cond = sync.NewCond(&b.mu)

	return b
}

// Push enqueues a copy of chunk, blocking while the buffer is full.
func (b *Buffer) Push(chunk []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(b.queue) >= b.capacity && !b.terminated {
		b.cond.Wait()
	}
	if b.terminated {
		return errs.ErrBufferTerminated
	}

	b.queue = append(b.queue, chunk...)
	b.cond.Broadcast()

	return nil
}

// Read drains and returns everything queued. It never blocks: an empty
// chunk means nothing is queued yet, io.EOF means the stream finished.
func (b *Buffer) Read() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.terminated {
		return nil, errs.ErrBufferTerminated
	}

	if len(b.queue) > 0 {
		chunk := b.queue
		b.queue = nil
		b.cond.Broadcast()

		return chunk, nil
	}

	if b.finished {
		return nil, io.EOF
	}

	return []byte{}, nil
}

// Finish marks the clean end of the stream. It blocks until the queue has
// drained so every pushed byte is observed before io.EOF.
func (b *Buffer) Finish() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(b.queue) > 0 && !b.terminated {
		b.cond.Wait()
	}
	if b.terminated {
		return errs.ErrBufferTerminated
	}

	b.finished = true
	b.cond.Broadcast()

	return nil
}

// Terminate abandons the buffer, waking any blocked Push or Finish caller.
func (b *Buffer) Terminate() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.terminated = true
	b.queue = nil
	b.cond.Broadcast()
}
