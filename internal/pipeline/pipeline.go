// Package pipeline runs a sequence of passes over one artifact.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/util"
	"github.com/rs/zerolog"
)

// Stage records the outcome of one pass.
type Stage struct {
	Pass     string        `json:"pass"`
	InSize   int           `json:"in_size"`
	OutSize  int           `json:"out_size"`
	Duration time.Duration `json:"duration_ns"`
}

// Pipeline is an ordered list of passes.
type Pipeline struct {
	passes []*pass.Descriptor
	logger zerolog.Logger
}

// New returns a pipeline running ds in order.
func New(ds []*pass.Descriptor, logger zerolog.Logger) *Pipeline {
	return &Pipeline{passes: append([]*pass.Descriptor(nil), ds...), logger: logger}
}

// Args returns the pass arguments in run order.
func (p *Pipeline) Args() []string {
	out := make([]string, len(p.passes))
	for i, d := range p.passes {
		out[i] = d.Arg
	}
	return out
}

// Run feeds in through every pass. It stops at the first failure; the
// stages completed so far are returned alongside the error.
func (p *Pipeline) Run(ctx context.Context, in []byte) ([]byte, []Stage, error) {
	stages := make([]Stage, 0, len(p.passes))
	data := in
	for _, d := range p.passes {
		if err := ctx.Err(); err != nil {
			return nil, stages, err
		}
		if !d.Constructible() {
			return nil, stages, fmt.Errorf("%w: %s", util.ErrNotConstructible, d.Arg)
		}
		start := time.Now()
		out, err := d.New().Run(ctx, data)
		if err != nil {
			return nil, stages, fmt.Errorf("%w: %s: %w", util.ErrPassFailed, d.Arg, err)
		}
		st := Stage{Pass: d.Arg, InSize: len(data), OutSize: len(out), Duration: time.Since(start)}
		stages = append(stages, st)
		p.logger.Debug().
			Str("pass", st.Pass).
			Int("in", st.InSize).
			Int("out", st.OutSize).
			Dur("took", st.Duration).
			Msg("pass done")
		data = out
	}
	return data, stages, nil
}
