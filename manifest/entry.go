package manifest

import (
	"fmt"
	"time"

	"github.com/arloliu/zipflow/compress"
	"github.com/arloliu/zipflow/errs"
	"github.com/arloliu/zipflow/format"
	"github.com/arloliu/zipflow/internal/options"
	"github.com/arloliu/zipflow/source"
)

// Attributes carries the unix metadata recorded for an entry.
//
// UID and GID travel together: either both are recorded (HasOwner) or the
// archive omits the owner field entirely.
type Attributes struct {
	// Mode is the permission bits, 0o000 through 0o777.
	Mode uint32

	UID      uint32
	GID      uint32
	HasOwner bool

	SetUID bool
	SetGID bool
	Sticky bool
}

// Entry describes one file in the archive: where its payload comes from,
// the path it is stored under, and how it is recorded. Entries are plain
// values; once validated into a Manifest they are never mutated.
type Entry struct {
	// Source names the payload. It is built into a live source when the
	// encoder starts the entry.
	Source source.Descriptor

	// Path is the UTF-8 relative path inside the archive. No normalization
	// is applied.
	Path string

	// Timestamp is the entry modification time and must be UTC. NewEntry
	// defaults it to the Unix epoch.
	Timestamp time.Time

	Attributes Attributes

	// Method selects the compression method; NewEntry defaults to deflate.
	Method format.Method

	// Options tunes the deflate codec and is ignored for store.
	Options compress.Options
}

// EntryOption configures an Entry created through NewEntry.
type EntryOption = options.Option[*Entry]

// WithTimestamp sets the entry modification time.
func WithTimestamp(t time.Time) EntryOption {
	return options.NoError(func(e *Entry) {
		e.Timestamp = t
	})
}

// WithMode sets the permission bits.
func WithMode(mode uint32) EntryOption {
	return options.NoError(func(e *Entry) {
		e.Attributes.Mode = mode
	})
}

// WithOwner records the entry owner. The archive writes UID and GID as a
// pair, so they are only settable together.
func WithOwner(uid, gid uint32) EntryOption {
	return options.NoError(func(e *Entry) {
		e.Attributes.UID = uid
		e.Attributes.GID = gid
		e.Attributes.HasOwner = true
	})
}

// WithSetUID sets the setuid bit.
func WithSetUID() EntryOption {
	return options.NoError(func(e *Entry) {
		e.Attributes.SetUID = true
	})
}

// WithSetGID sets the setgid bit.
func WithSetGID() EntryOption {
	return options.NoError(func(e *Entry) {
		e.Attributes.SetGID = true
	})
}

// WithSticky sets the sticky bit.
func WithSticky() EntryOption {
	return options.NoError(func(e *Entry) {
		e.Attributes.Sticky = true
	})
}

// WithMethod selects the compression method.
func WithMethod(m format.Method) EntryOption {
	return options.NoError(func(e *Entry) {
		e.Method = m
	})
}

// WithDeflateOptions selects deflate and tunes its level and strategy.
func WithDeflateOptions(opts compress.Options) EntryOption {
	return options.NoError(func(e *Entry) {
		e.Method = format.MethodDeflate
		e.Options = opts
	})
}

// NewEntry creates an entry for src stored at path, applying defaults:
// Unix epoch timestamp, mode 0o644, deflate at the default level.
func NewEntry(path string, src source.Descriptor, opts ...EntryOption) Entry {
	e := Entry{
		Source:    src,
		Path:      path,
		Timestamp: time.Unix(0, 0).UTC(),
		Attributes: Attributes{
			Mode: 0o644,
		},
		Method:  format.MethodDeflate,
		Options: compress.Options{Level: format.LevelDefault},
	}
	_ = options.Apply(&e, opts...)

	return e
}

// Validate checks the entry against the manifest rules. The returned error
// wraps the sentinel naming the failing field.
func (e Entry) Validate() error {
	if e.Source == nil {
		return errs.ErrSourceMissing
	}
	if err := e.Source.Validate(); err != nil {
		return err
	}
	if e.Path == "" {
		return errs.ErrPathMissing
	}
	if e.Timestamp.Location() != time.UTC {
		return fmt.Errorf("%w: got zone %s", errs.ErrTimestampInvalid, e.Timestamp.Location())
	}
	if e.Attributes.Mode > 0o777 {
		return fmt.Errorf("%w: mode %o out of range", errs.ErrAttributesInvalid, e.Attributes.Mode)
	}
	if !e.Method.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrMethodInvalid, e.Method)
	}
	if e.Method == format.MethodDeflate {
		if err := e.Options.Validate(); err != nil {
			return err
		}
	}

	return nil
}
