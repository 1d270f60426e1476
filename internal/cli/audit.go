package cli

import "github.com/spf13/cobra"

func (a *app) newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit trail and export",
		Long:  "Parent command for audit log export. Use 'passkit audit export --format csv' to export the audit log.",
	}
	cmd.AddCommand(a.newAuditExportCmd())
	return cmd
}
