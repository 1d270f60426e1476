package cli

import (
	"sort"

	"github.com/Skpow1234/passkit/internal/cliopt"
	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/passopt"
	"github.com/spf13/cobra"
)

type passInfo struct {
	Arg        string `json:"arg"`
	Name       string `json:"name"`
	Selectable bool   `json:"selectable"`
}

func (a *app) newListCmd() *cobra.Command {
	var all bool
	// A private option gives list the same view of the registry that run's
	// --pass has.
	view := cliopt.NewList[*pass.Descriptor]("pass", "pass")
	r := a.passFlag(view, a.runFilter())

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered passes",
		Long:  "List the passes selectable with 'run --pass', sorted by argument. With --all, list every registered pass.",
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := NewPrinter(cmd.OutOrStdout(), flagJSON, flagQuiet)
			infos := a.passInfos(r, all)

			switch printer.Mode {
			case OutputJSON:
				return printer.JSON(infos)
			default:
				if !all {
					return r.RenderHelp(printer.Writer, a.settings.HelpWidth)
				}
				for _, in := range infos {
					mark := " "
					if !in.Selectable {
						mark = "-"
					}
					arg := in.Arg
					if arg == "" {
						arg = "(none)"
					}
					printer.Human("%s %-*s  %s", mark, a.settings.HelpWidth, arg, in.Name)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include passes that cannot be selected")
	return cmd
}

func (a *app) passInfos(r *passopt.Registrar, all bool) []passInfo {
	selectable := map[*pass.Descriptor]bool{}
	var infos []passInfo
	for _, e := range r.Sorted() {
		selectable[e.Desc] = true
		infos = append(infos, passInfo{Arg: e.Arg, Name: e.Name, Selectable: true})
	}
	if !all {
		return infos
	}
	for _, d := range a.reg.All() {
		if !selectable[d] {
			infos = append(infos, passInfo{Arg: d.Arg, Name: d.Name})
		}
	}
	sort.SliceStable(infos, func(i, j int) bool { return infos[i].Arg < infos[j].Arg })
	return infos
}
