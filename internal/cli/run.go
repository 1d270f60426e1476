package cli

import (
	"fmt"
	"path/filepath"

	"github.com/Skpow1234/passkit/internal/audit"
	"github.com/Skpow1234/passkit/internal/azure"
	"github.com/Skpow1234/passkit/internal/cliopt"
	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/pipeline"
	"github.com/Skpow1234/passkit/internal/util"
	"github.com/spf13/cobra"
)

func (a *app) newRunCmd() *cobra.Command {
	var (
		inFile  string
		outFile string
	)
	passOpt := cliopt.NewList[*pass.Descriptor]("pass", "pass")

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run passes over an input artifact",
		Long: "Run the selected passes, in the order given, over the input and write the result.\n" +
			"Input and output may be local paths, '-' for stdin/stdout, or az://container/blob.",
		Example: "  passkit run --in data.txt --out data.txt.zst.b64 --pass zstd --pass base64",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inFile == "" {
				return fmt.Errorf("--in is required")
			}
			if len(passOpt.Selected()) == 0 {
				return fmt.Errorf("%w: at least one --pass is required", util.ErrUnknownPass)
			}
			out := resolveOutput(outFile, a.settings.OutputDir)
			p := pipeline.New(passOpt.Values(), newLogger())
			return a.runPipeline(cmd, p, inFile, out)
		},
	}

	cmd.Flags().StringVar(&inFile, "in", "", "input file, '-' or az:// URI (required)")
	cmd.Flags().StringVar(&outFile, "out", "-", "output file, '-' or az:// URI")
	cmd.Flags().Var(passOpt, passOpt.Name(), "pass to run; repeat to chain (see list below)")

	r := a.passFlag(passOpt, a.runFilter())
	a.withPassHelp(cmd, "Available passes:", r)
	return cmd
}

func (a *app) runPipeline(cmd *cobra.Command, p *pipeline.Pipeline, inFile, outFile string) error {
	ctx := cmd.Context()
	printer := NewPrinter(cmd.OutOrStdout(), flagJSON, flagQuiet)
	entry := &audit.Entry{Operation: audit.OpRun, InputFile: inFile, OutputFile: outFile, Passes: p.Args()}

	data, err := readArtifact(ctx, inFile, cmd.InOrStdin())
	if err != nil {
		a.audit(entry, err)
		return err
	}
	entry.InSize = len(data)

	result, stages, err := p.Run(ctx, data)
	if err != nil {
		a.audit(entry, err)
		return err
	}
	entry.OutSize = len(result)

	if err := writeArtifact(ctx, outFile, result, cmd.OutOrStdout()); err != nil {
		a.audit(entry, err)
		return err
	}
	a.audit(entry, nil)

	// The artifact itself went to stdout; keep the summary off it.
	if outFile == "-" {
		return nil
	}
	switch printer.Mode {
	case OutputJSON:
		return printer.JSON(map[string]any{
			"in":     inFile,
			"out":    outFile,
			"stages": stages,
		})
	default:
		printer.Human("Input:  %s (%d bytes)", inFile, len(data))
		for _, st := range stages {
			printer.Human("  %-12s %8d -> %8d bytes", st.Pass, st.InSize, st.OutSize)
		}
		printer.Human("Output: %s (%d bytes)", outFile, len(result))
	}
	return nil
}

// resolveOutput places a relative local output path under dir.
func resolveOutput(out, dir string) string {
	if out == "-" || out == "" || azure.IsURI(out) || filepath.IsAbs(out) || dir == "" || dir == "." {
		return out
	}
	return filepath.Join(dir, out)
}
