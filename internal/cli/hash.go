package cli

import (
	"fmt"
	"strings"

	"github.com/Skpow1234/passkit/internal/audit"
	"github.com/Skpow1234/passkit/internal/cliopt"
	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/passes"
	"github.com/Skpow1234/passkit/internal/passopt"
	"github.com/Skpow1234/passkit/internal/pipeline"
	"github.com/spf13/cobra"
)

const defaultDigest = "sha256"

func (a *app) newHashCmd() *cobra.Command {
	var inFile string
	algo := cliopt.NewSingle[*pass.Descriptor]("algo", "digest")

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Compute a digest of a file",
		Long:  "Compute a digest of the input with one of the digest passes and print it as hex.",
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := NewPrinter(cmd.OutOrStdout(), flagJSON, flagQuiet)
			if inFile == "" {
				return fmt.Errorf("--in is required")
			}
			if len(algo.Selected()) == 0 {
				if err := algo.Set(defaultDigest); err != nil {
					return err
				}
			}
			name := algo.Selected()[0]
			entry := &audit.Entry{Operation: audit.OpHash, InputFile: inFile, Passes: []string{name}}

			data, err := readArtifact(cmd.Context(), inFile, cmd.InOrStdin())
			if err != nil {
				a.audit(entry, err)
				return err
			}
			entry.InSize = len(data)
			out, _, err := pipeline.New(algo.Values(), newLogger()).Run(cmd.Context(), data)
			a.audit(entry, err)
			if err != nil {
				return err
			}
			digest := strings.TrimSpace(string(out))

			switch printer.Mode {
			case OutputJSON:
				return printer.JSON(map[string]any{
					"file":   inFile,
					"algo":   name,
					"digest": digest,
					"size":   len(data),
				})
			default:
				printer.Human("File:   %s", inFile)
				printer.Human("Algo:   %s", name)
				printer.Human("Digest: %s", digest)
				printer.Human("Size:   %d bytes", len(data))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inFile, "in", "", "input file, '-' or az:// URI (required)")
	cmd.Flags().Var(algo, algo.Name(), "digest algorithm (default sha256; see list below)")

	r := a.passFlag(algo, passopt.AllowList(passes.DigestArgs()...))
	a.withPassHelp(cmd, "Digest algorithms:", r)
	return cmd
}
