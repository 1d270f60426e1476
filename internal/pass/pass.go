// Package pass defines pass descriptors and the registry that announces them.
package pass

import "context"

// Pass transforms one artifact into the next stage's input.
type Pass interface {
	Run(ctx context.Context, in []byte) ([]byte, error)
}

// Func adapts an ordinary function to the Pass interface.
type Func func(ctx context.Context, in []byte) ([]byte, error)

// Run calls f(ctx, in).
func (f Func) Run(ctx context.Context, in []byte) ([]byte, error) { return f(ctx, in) }

// Descriptor describes a registered pass. Descriptors are immutable once registered.
type Descriptor struct {
	Arg  string      // command-line token; empty means the pass is not selectable
	Name string      // human-readable name shown in help output
	New  func() Pass // constructor; nil means the pass cannot be instantiated
}

// Constructible reports whether the pass has a constructor.
func (d *Descriptor) Constructible() bool {
	return d != nil && d.New != nil
}

// String returns the display name, falling back to the argument.
func (d *Descriptor) String() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Arg
}
