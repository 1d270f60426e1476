package cli

import (
	"fmt"

	"github.com/Skpow1234/passkit/internal/cliopt"
	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/pipeline"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func (a *app) newMenuCmd() *cobra.Command {
	view := cliopt.NewList[*pass.Descriptor]("pass", "pass")
	r := a.passFlag(view, a.runFilter())

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive mode: pick passes and run them",
		Long:  "Launch an interactive form to choose an input, an output and the passes to run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				inFile  string
				outFile string
				chosen  []string
			)

			entries := r.Sorted()
			if len(entries) == 0 {
				return fmt.Errorf("no passes are registered")
			}
			options := make([]huh.Option[string], len(entries))
			for i, e := range entries {
				options[i] = huh.NewOption(fmt.Sprintf("%s - %s", e.Arg, e.Name), e.Arg)
			}

			err := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Input file").
						Placeholder("/path/to/file or az://container/blob").
						Value(&inFile),
					huh.NewInput().
						Title("Output path").
						Placeholder("/path/to/output").
						Value(&outFile),
					huh.NewMultiSelect[string]().
						Title("Passes").
						Description("Selected passes run in the order listed").
						Options(options...).
						Value(&chosen),
				),
			).Run()
			if err != nil {
				return err
			}

			if inFile == "" || outFile == "" {
				return fmt.Errorf("input and output are required")
			}
			for _, arg := range chosen {
				if err := view.Set(arg); err != nil {
					return err
				}
			}
			if len(view.Selected()) == 0 {
				return fmt.Errorf("no passes selected")
			}
			p := pipeline.New(view.Values(), newLogger())
			return a.runPipeline(cmd, p, inFile, resolveOutput(outFile, a.settings.OutputDir))
		},
	}
	return cmd
}
