package cliopt

import (
	"fmt"
	"io"
)

// WriteLiterals writes one line per literal in the given order:
//
//	  <token>  - <help>
//
// Tokens are padded to width, or to the longest token when that is wider.
func WriteLiterals[T any](w io.Writer, lits []Literal[T], width int) error {
	for _, l := range lits {
		if len(l.Token) > width {
			width = len(l.Token)
		}
	}
	for _, l := range lits {
		if _, err := fmt.Fprintf(w, "  %-*s  - %s\n", width, l.Token, l.Help); err != nil {
			return err
		}
	}
	return nil
}

// PrintHelp writes the option's literals in insertion order.
func (o *Option[T]) PrintHelp(w io.Writer, width int) error {
	return WriteLiterals(w, o.literals, width)
}
