package cli

import (
	"fmt"

	"github.com/Skpow1234/passkit/internal/audit"
	"github.com/Skpow1234/passkit/internal/cliopt"
	"github.com/Skpow1234/passkit/internal/config"
	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/passopt"
	"github.com/spf13/cobra"
)

// app carries what the subcommands share: the pass registry, settings and
// the default help renderer.
type app struct {
	reg      *pass.Registry
	settings config.Settings
	help     func(*cobra.Command, []string)
}

func newApp(reg *pass.Registry, settings config.Settings, help func(*cobra.Command, []string)) *app {
	return &app{reg: reg, settings: settings, help: help}
}

// passFlag builds an option whose legal values are the passes admitted by
// filter, attached to the app's registry.
func (a *app) passFlag(opt *cliopt.Option[*pass.Descriptor], filter passopt.Filter) *passopt.Registrar {
	r := passopt.New(
		passopt.WithFilter(filter),
		passopt.WithLogger(newLogger().With().Str("option", opt.Name()).Logger()),
	)
	r.Attach(opt, a.reg)
	return r
}

// runFilter narrows --pass to allow_passes when configured.
func (a *app) runFilter() passopt.Filter {
	if len(a.settings.AllowPasses) == 0 {
		return passopt.AcceptAll
	}
	return passopt.AllowList(a.settings.AllowPasses...)
}

// withPassHelp appends the sorted table of r's passes to cmd's help.
func (a *app) withPassHelp(cmd *cobra.Command, title string, r *passopt.Registrar) {
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		a.help(c, args)
		w := c.OutOrStdout()
		fmt.Fprintf(w, "\n%s\n", title)
		if err := r.RenderHelp(w, a.settings.HelpWidth); err != nil {
			c.PrintErrln("render help:", err)
		}
	})
}

func (a *app) auditLogger() audit.Logger {
	path := flagAuditLog
	if path == "" {
		path = a.settings.AuditLog
	}
	l, err := audit.Open(path)
	if err != nil {
		logger := newLogger()
		logger.Warn().Err(err).Msg("audit log disabled")
		return audit.NopLogger{}
	}
	return l
}

func (a *app) audit(e *audit.Entry, err error) {
	e.Success = err == nil
	if err != nil {
		e.Error = err.Error()
	}
	if logErr := a.auditLogger().Log(e); logErr != nil {
		logger := newLogger()
		logger.Warn().Err(logErr).Msg("audit log write failed")
	}
}

