// Package passopt exposes registered passes as the legal values of a
// command-line option.
//
// A Registrar subscribes to a pass registry when it is attached to an
// option. Subscribing replays every pass registered so far, and later
// registrations are forwarded as they happen, so the option sees the same
// set regardless of whether it was built before or after the passes
// registered.
package passopt

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/Skpow1234/passkit/internal/cliopt"
	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/util"
	"github.com/rs/zerolog"
)

// Notifier is the registry side of a Registrar: Subscribe must replay every
// known descriptor to l and then forward each new one exactly once.
type Notifier interface {
	Subscribe(l pass.Listener)
}

// Entry is one selectable value backed by a pass.
type Entry struct {
	Arg  string
	Desc *pass.Descriptor
	Name string
}

// DuplicateTokenError reports two passes claiming the same argument.
type DuplicateTokenError struct {
	Arg      string
	Existing string
	Incoming string
}

func (e *DuplicateTokenError) Error() string {
	return fmt.Sprintf("two passes with the same argument (--%s) attempted to be registered: %q and %q",
		e.Arg, e.Existing, e.Incoming)
}

func (e *DuplicateTokenError) Unwrap() error { return util.ErrDuplicatePass }

// Registrar maps pass arguments to descriptors for a single option.
type Registrar struct {
	filter Filter
	logger zerolog.Logger
	fatal  func(error)

	mu      sync.Mutex
	opt     *cliopt.Option[*pass.Descriptor]
	entries []Entry
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithFilter narrows the passes the registrar admits.
func WithFilter(f Filter) Option {
	return func(r *Registrar) { r.filter = f }
}

// WithLogger sets the logger used for admission decisions.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registrar) { r.logger = l }
}

// WithFatal replaces the handler invoked on a duplicate argument. The
// default logs the error and exits with util.ExitDuplicatePass.
func WithFatal(fn func(error)) Option {
	return func(r *Registrar) { r.fatal = fn }
}

// New returns an unattached Registrar.
func New(opts ...Option) *Registrar {
	r := &Registrar{
		filter: AcceptAll,
		logger: zerolog.Nop(),
	}
	for _, o := range opts {
		o(r)
	}
	if r.fatal == nil {
		r.fatal = exitOnConflict
	}
	return r
}

func exitOnConflict(err error) {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	l.Error().Err(err).Msg("pass registration conflict")
	os.Exit(util.ExitDuplicatePass)
}

// Attach binds the registrar to opt and subscribes it to n. Every pass n
// already knows is delivered before Attach returns.
func (r *Registrar) Attach(opt *cliopt.Option[*pass.Descriptor], n Notifier) {
	r.mu.Lock()
	r.opt = opt
	r.mu.Unlock()
	n.Subscribe(r)
}

// PassRegistered implements pass.Listener.
func (r *Registrar) PassRegistered(d *pass.Descriptor) {
	if !Admit(d, r.filter) {
		if d != nil {
			r.logger.Debug().Str("pass", d.Arg).Msg("pass not selectable")
		}
		return
	}

	r.mu.Lock()
	if r.opt == nil {
		r.mu.Unlock()
		return
	}
	for _, e := range r.entries {
		if e.Arg == d.Arg {
			r.mu.Unlock()
			r.fatal(&DuplicateTokenError{Arg: d.Arg, Existing: e.Desc.String(), Incoming: d.String()})
			return
		}
	}
	r.entries = append(r.entries, Entry{Arg: d.Arg, Desc: d, Name: d.Name})
	r.opt.AddLiteral(d.Arg, d, d.Name)
	r.mu.Unlock()

	r.logger.Debug().Str("pass", d.Arg).Msg("pass selectable")
}

// Entries returns the selectable values in registration order.
func (r *Registrar) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Sorted returns the selectable values ordered by argument.
func (r *Registrar) Sorted() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedLocked()
}

func (r *Registrar) sortedLocked() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Arg < out[j].Arg })
	return out
}

// RenderHelp writes the selectable values sorted by argument. Parsing and
// Entries keep registration order.
func (r *Registrar) RenderHelp(w io.Writer, width int) error {
	r.mu.Lock()
	sorted := r.sortedLocked()
	lits := make([]cliopt.Literal[*pass.Descriptor], len(sorted))
	for i, e := range sorted {
		lits[i] = cliopt.Literal[*pass.Descriptor]{Token: e.Arg, Value: e.Desc, Help: e.Name}
	}
	err := cliopt.WriteLiterals(w, lits, width)
	r.mu.Unlock()
	return err
}
