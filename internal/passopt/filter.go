package passopt

import (
	"strings"
	"unicode"

	"github.com/Skpow1234/passkit/internal/pass"
)

// Filter narrows which passes become selectable values. It only ever
// narrows: Admit applies the base rule before consulting it.
type Filter func(d *pass.Descriptor) bool

// AcceptAll is the default Filter.
func AcceptAll(*pass.Descriptor) bool { return true }

// Admit reports whether d may become a selectable value: it needs an
// argument, a constructor, and refine's approval.
func Admit(d *pass.Descriptor, refine Filter) bool {
	if d == nil || d.Arg == "" || !d.Constructible() {
		return false
	}
	if refine == nil {
		return true
	}
	return refine(d)
}

// AllowList returns a Filter admitting only passes whose argument is
// exactly one of args. The list is copied; later changes to args have no
// effect.
func AllowList(args ...string) Filter {
	allowed := make(map[string]struct{}, len(args))
	for _, a := range args {
		allowed[a] = struct{}{}
	}
	return func(d *pass.Descriptor) bool {
		_, ok := allowed[d.Arg]
		return ok
	}
}

// ParseAllowList splits a list such as "-anders_aa -dse" into arguments.
// Entries are separated by whitespace or commas, and a leading dash on
// each is dropped.
func ParseAllowList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimLeft(f, "-")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
