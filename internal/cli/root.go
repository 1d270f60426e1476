package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/Skpow1234/passkit/internal/config"
	"github.com/Skpow1234/passkit/internal/pass"
	"github.com/Skpow1234/passkit/internal/passes"
	"github.com/Skpow1234/passkit/internal/plugin"
	"github.com/Skpow1234/passkit/internal/util"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Global flag values shared across all commands.
var (
	flagJSON     bool
	flagQuiet    bool
	flagVerbose  bool
	flagAuditLog string
	flagConfig   string
	flagProfile  string
)

// NewRootCmd creates the top-level command. Options that select passes are
// attached to reg while the command tree is built; passes registered on reg
// afterwards still become selectable.
func NewRootCmd(reg *pass.Registry, settings config.Settings) *cobra.Command {
	root := &cobra.Command{
		Use:     "passkit",
		Short:   "Run pluggable passes over data artifacts",
		Long:    "passkit runs a chain of registered passes (compression, encoding, digests, plugins) over an input artifact.",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if flagVerbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			if flagQuiet {
				zerolog.SetGlobalLevel(zerolog.ErrorLevel)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&flagJSON, "json", false, "output results as JSON")
	pf.BoolVar(&flagQuiet, "quiet", false, "minimal output (errors only)")
	pf.BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	pf.StringVar(&flagAuditLog, "audit-log", "", "append-only audit log file (or PASSKIT_AUDIT_LOG env)")
	pf.StringVar(&flagConfig, "config", "", "config file (or PASSKIT_CONFIG env)")
	pf.StringVar(&flagProfile, "profile", "", "config profile (or PASSKIT_PROFILE env)")

	pf.StringVar(&azureAccountName, "azure-account", "", "Azure storage account name (or AZURE_STORAGE_ACCOUNT env)")
	pf.StringVar(&azureConnectionString, "azure-connection-string", "", "Azure storage connection string (or AZURE_STORAGE_CONNECTION_STRING env)")

	a := newApp(reg, settings, root.HelpFunc())

	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newRunCmd())
	root.AddCommand(a.newHashCmd())
	root.AddCommand(a.newMenuCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(a.newAuditCmd())

	return root
}

// Execute loads configuration, registers built-in passes, builds the command
// tree, discovers plugin passes, and runs the command. It exits with the
// code matching the error.
func Execute() {
	settings, err := config.Load(configSelection(os.Args[1:]))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(util.ExitInvalidArgs)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := newLogger()

	reg := pass.NewRegistry()
	passes.Register(reg)
	cmd := NewRootCmd(reg, *settings)

	// Plugins register after the options have attached and reach them as
	// live registrations.
	if _, err := plugin.Discover(settings.PluginDir, reg, logger); err != nil {
		logger.Warn().Err(err).Msg("plugin discovery failed")
	}

	if err := cmd.Execute(); err != nil {
		logger.Error().Err(err).Msg(cmd.Name() + " failed")
		os.Exit(util.ExitCodeForError(err))
	}
}

// configSelection picks --config and --profile out of args. Settings shape
// the pass options, so they are loaded before cobra parses anything.
func configSelection(args []string) (path, profile string) {
	fs := pflag.NewFlagSet("passkit", pflag.ContinueOnError)
	fs.ParseErrorsAllowlist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.BoolP("help", "h", false, "")
	fs.StringVar(&path, "config", "", "")
	fs.StringVar(&profile, "profile", "", "")
	_ = fs.Parse(args)
	return path, profile
}
