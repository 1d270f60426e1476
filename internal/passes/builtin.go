// Package passes registers the passes compiled into passkit.
package passes

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Skpow1234/passkit/internal/codec"
	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/util"
)

// Builtins returns the built-in descriptors. Each call returns fresh values.
func Builtins() []*pass.Descriptor {
	ds := []*pass.Descriptor{
		{Arg: "gzip", Name: "Compress with gzip", New: compressor(codec.Gzip)},
		{Arg: "gunzip", Name: "Decompress gzip", New: decompressor(codec.Gzip)},
		{Arg: "zstd", Name: "Compress with zstd", New: compressor(codec.Zstd)},
		{Arg: "unzstd", Name: "Decompress zstd", New: decompressor(codec.Zstd)},
		{Arg: "base64", Name: "Encode as base64", New: simple(func(in []byte) ([]byte, error) {
			return []byte(util.B64Encode(in)), nil
		})},
		{Arg: "unbase64", Name: "Decode base64", New: simple(func(in []byte) ([]byte, error) {
			return util.B64Decode(string(in))
		})},
		{Arg: "hex", Name: "Encode as hex", New: simple(func(in []byte) ([]byte, error) {
			return []byte(util.HexEncode(in)), nil
		})},
		// Reporting only; it has no constructor so it is never selectable.
		{Arg: "size-report", Name: "Report stage sizes"},
	}
	for _, name := range codec.Digests {
		ds = append(ds, &pass.Descriptor{Arg: name, Name: codec.DigestTitle(name), New: digester(name)})
	}
	return ds
}

// DigestArgs returns the arguments of the digest passes.
func DigestArgs() []string {
	return append([]string(nil), codec.Digests...)
}

// Register adds every built-in descriptor to r.
func Register(r *pass.Registry) {
	for _, d := range Builtins() {
		r.Register(d)
	}
}

func simple(fn func([]byte) ([]byte, error)) func() pass.Pass {
	return func() pass.Pass {
		return pass.Func(func(ctx context.Context, in []byte) ([]byte, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return fn(in)
		})
	}
}

func compressor(format string) func() pass.Pass {
	return simple(func(in []byte) ([]byte, error) { return codec.Compress(in, format) })
}

func decompressor(format string) func() pass.Pass {
	return simple(func(in []byte) ([]byte, error) { return codec.Decompress(in, format) })
}

// digester outputs the hex digest followed by a newline.
func digester(name string) func() pass.Pass {
	return simple(func(in []byte) ([]byte, error) {
		sum, err := codec.Digest(bytes.NewReader(in), name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return []byte(util.HexEncode(sum) + "\n"), nil
	})
}
