// Package cliopt provides pflag values whose legal inputs are a set of named
// literals added at runtime.
package cliopt

import (
	"fmt"
	"strings"

	"github.com/Skpow1234/passkit/internal/util"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value      = (*Option[struct{}])(nil)
	_ pflag.SliceValue = (*Option[struct{}])(nil)
)

// Literal is one legal value of an Option.
type Literal[T any] struct {
	Token string
	Value T
	Help  string
}

// Option is a pflag.Value restricted to its registered literals.
// A list option accepts the flag any number of times and keeps the
// selections in command-line order; a single option keeps the last one.
type Option[T any] struct {
	name     string
	typ      string
	multi    bool
	literals []Literal[T]
	index    map[string]int

	selected []string
}

// NewList returns a repeatable option named name.
func NewList[T any](name, typ string) *Option[T] {
	return &Option[T]{name: name, typ: typ, multi: true, index: map[string]int{}}
}

// NewSingle returns a single-valued option named name.
func NewSingle[T any](name, typ string) *Option[T] {
	return &Option[T]{name: name, typ: typ, index: map[string]int{}}
}

// Name returns the flag name.
func (o *Option[T]) Name() string { return o.name }

// AddLiteral makes token a legal value mapping to value. Callers are
// responsible for token uniqueness; a repeated token replaces nothing and
// is ignored by Set lookups.
func (o *Option[T]) AddLiteral(token string, value T, help string) {
	if _, ok := o.index[token]; !ok {
		o.index[token] = len(o.literals)
	}
	o.literals = append(o.literals, Literal[T]{Token: token, Value: value, Help: help})
}

// Literals returns the legal values in insertion order.
func (o *Option[T]) Literals() []Literal[T] {
	out := make([]Literal[T], len(o.literals))
	copy(out, o.literals)
	return out
}

// Has reports whether token is a legal value.
func (o *Option[T]) Has(token string) bool {
	_, ok := o.index[token]
	return ok
}

// Set implements pflag.Value.
func (o *Option[T]) Set(s string) error {
	if err := o.check(s); err != nil {
		return err
	}
	if o.multi {
		o.selected = append(o.selected, s)
	} else {
		o.selected = []string{s}
	}
	return nil
}

func (o *Option[T]) check(s string) error {
	if _, ok := o.index[s]; ok {
		return nil
	}
	return fmt.Errorf("%w %q for --%s (see --help for the available values)", util.ErrUnknownPass, s, o.name)
}

// String implements pflag.Value.
func (o *Option[T]) String() string {
	if len(o.selected) == 0 {
		return ""
	}
	if o.multi {
		return "[" + strings.Join(o.selected, ",") + "]"
	}
	return o.selected[0]
}

// Type implements pflag.Value.
func (o *Option[T]) Type() string { return o.typ }

// Append implements pflag.SliceValue.
func (o *Option[T]) Append(s string) error {
	if err := o.check(s); err != nil {
		return err
	}
	o.selected = append(o.selected, s)
	return nil
}

// Replace implements pflag.SliceValue.
func (o *Option[T]) Replace(ss []string) error {
	for _, s := range ss {
		if err := o.check(s); err != nil {
			return err
		}
	}
	o.selected = append([]string(nil), ss...)
	return nil
}

// GetSlice implements pflag.SliceValue.
func (o *Option[T]) GetSlice() []string {
	return append([]string(nil), o.selected...)
}

// Values returns the values of the selected literals in selection order.
func (o *Option[T]) Values() []T {
	out := make([]T, 0, len(o.selected))
	for _, tok := range o.selected {
		out = append(out, o.literals[o.index[tok]].Value)
	}
	return out
}

// Selected returns the selected tokens in selection order.
func (o *Option[T]) Selected() []string {
	return o.GetSlice()
}
