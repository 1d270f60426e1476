package cli

import (
	"strings"

	"github.com/Skpow1234/passkit/internal/config"
	"github.com/spf13/cobra"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long: "Show the effective configuration used by passkit.\n\n" +
			"Precedence (highest wins):\n" +
			"  1. CLI flags (e.g. --audit-log)\n" +
			"  2. Environment variables (PASSKIT_PLUGIN_DIR, PASSKIT_AUDIT_LOG)\n" +
			"  3. Profile overrides (--profile or PASSKIT_PROFILE)\n" +
			"  4. Config file (--config or PASSKIT_CONFIG, else ~/.passkit.yaml / ./.passkit.yaml)\n" +
			"  5. Built-in defaults\n\n" +
			"Config file keys: plugin_dir, audit_log, allow_passes, help_width, output_dir.\n" +
			"Profiles can override any of these under the 'profiles' key (e.g. profiles.prod.allow_passes).",
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := NewPrinter(cmd.OutOrStdout(), flagJSON, flagQuiet)
			s := a.settings
			if flagAuditLog != "" {
				s.AuditLog = flagAuditLog
			}

			switch printer.Mode {
			case OutputJSON:
				return printer.JSON(s)
			default:
				printer.Human("Effective configuration:")
				printer.Human("  plugin_dir:   %q", s.PluginDir)
				printer.Human("  audit_log:    %q", s.AuditLog)
				printer.Human("  allow_passes: %s", formatAllow(s))
				printer.Human("  help_width:   %d", s.HelpWidth)
				printer.Human("  output_dir:   %q", s.OutputDir)
			}
			return nil
		},
	}
	return cmd
}

func formatAllow(s config.Settings) string {
	if len(s.AllowPasses) == 0 {
		return "(all)"
	}
	return strings.Join(s.AllowPasses, " ")
}
