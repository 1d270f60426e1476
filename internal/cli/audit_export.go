package cli

import (
	"fmt"
	"time"

	"github.com/Skpow1234/passkit/internal/audit"
	"github.com/spf13/cobra"
)

func (a *app) newAuditExportCmd() *cobra.Command {
	var (
		logPath   string
		format    string
		since     string
		until     string
		operation string
		passArg   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export audit log to CSV or JSON",
		Long:  "Read the audit log and print the matching entries as CSV or JSON. --since and --until take RFC3339 or 2006-01-02.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if logPath == "" {
				logPath = flagAuditLog
			}
			if logPath == "" {
				logPath = a.settings.AuditLog
			}
			if logPath == "" {
				return fmt.Errorf("audit log path required: set --log, --audit-log, or PASSKIT_AUDIT_LOG")
			}

			filter := audit.Filter{Operation: operation, Pass: passArg}
			if since != "" {
				t, err := parseAuditTime(since)
				if err != nil {
					return fmt.Errorf("--since: %w", err)
				}
				filter.Since = &t
			}
			if until != "" {
				t, err := parseAuditTime(until)
				if err != nil {
					return fmt.Errorf("--until: %w", err)
				}
				filter.Until = &t
			}

			entries, err := audit.Read(logPath, &filter)
			if err != nil {
				return fmt.Errorf("read audit log: %w", err)
			}

			var out []byte
			switch format {
			case "csv":
				out, err = audit.ExportCSV(entries)
			case "json":
				out, err = audit.ExportJSON(entries)
				out = append(out, '\n')
			default:
				return fmt.Errorf("unsupported format %q; use csv or json", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&logPath, "log", "", "audit log file (default: --audit-log or PASSKIT_AUDIT_LOG)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: csv, json")
	cmd.Flags().StringVar(&since, "since", "", "include entries on or after this time")
	cmd.Flags().StringVar(&until, "until", "", "include entries before this time")
	cmd.Flags().StringVar(&operation, "operation", "", "filter by operation (run, hash)")
	cmd.Flags().StringVar(&passArg, "pass", "", "filter by pass argument")

	return cmd
}

func parseAuditTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use RFC3339 or 2006-01-02)", s)
}
