// Package manifest assembles and validates the ordered list of entries an
// archive is produced from.
//
// A Manifest is built incrementally with Append and Prepend; every mutation
// validates the new entry and keeps a running validity verdict, so starting
// a stream from an invalid manifest fails before any byte is emitted. An
// empty manifest is invalid.
package manifest

import (
	"fmt"

	"github.com/arloliu/zipflow/errs"
)

// Manifest is the ordered, validated set of entries describing one archive.
// The zero value is not usable; create one with New.
type Manifest struct {
	entries  []Entry
	firstErr error
}

// New creates an empty manifest.
func New() *Manifest {
	return &Manifest{}
}

// Append validates e and adds it to the end of the manifest.
func (m *Manifest) Append(e Entry) *Manifest {
	m.record(e)
	m.entries = append(m.entries, e)

	return m
}

// Prepend validates e and adds it to the front of the manifest.
func (m *Manifest) Prepend(e Entry) *Manifest {
	m.record(e)
	m.entries = append([]Entry{e}, m.entries...)

	return m
}

func (m *Manifest) record(e Entry) {
	if m.firstErr != nil {
		return
	}
	if err := e.Validate(); err != nil {
		m.firstErr = fmt.Errorf("entry %q: %w", e.Path, err)
	}
}

// Valid reports whether every entry validated and the manifest is non-empty.
func (m *Manifest) Valid() bool {
	return m.firstErr == nil && len(m.entries) > 0
}

// Err returns why the manifest is invalid, or nil.
func (m *Manifest) Err() error {
	if m.firstErr != nil {
		return m.firstErr
	}
	if len(m.entries) == 0 {
		return errs.ErrEmptyManifest
	}

	return nil
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entries returns the entries in archive order. The returned slice is a
// copy; the manifest itself stays immutable under the encoder.
func (m *Manifest) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)

	return out
}
