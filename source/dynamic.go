package source

import (
	"fmt"

	"github.com/arloliu/zipflow/errs"
)

// DynamicDescriptor defers source construction until the encoder reaches
// the entry. The callback returns another descriptor, which is validated
// and built in turn; a callback error or an invalid result surfaces as an
// entry start failure subject to the encoder's error policy.
type DynamicDescriptor struct {
	Resolve func() (Descriptor, error)
}

// Dynamic creates a descriptor that resolves through fn at encoding time.
func Dynamic(fn func() (Descriptor, error)) DynamicDescriptor {
	return DynamicDescriptor{Resolve: fn}
}

func (d DynamicDescriptor) Validate() error {
	if d.Resolve == nil {
		return fmt.Errorf("%w: nil dynamic callback", errs.ErrSourceInvalid)
	}

	return nil
}

func (d DynamicDescriptor) Build() (Source, error) {
	resolved, err := d.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolve dynamic source: %w", err)
	}
	if resolved == nil {
		return nil, fmt.Errorf("%w: dynamic callback returned no descriptor", errs.ErrSourceInvalid)
	}
	if err := resolved.Validate(); err != nil {
		return nil, fmt.Errorf("resolve dynamic source: %w", err)
	}

	return resolved.Build()
}
