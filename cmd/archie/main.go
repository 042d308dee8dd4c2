package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"archie-go/internal/app"
	"archie-go/internal/archie"
	"archie-go/internal/config"
	"archie-go/internal/runner"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var dryRun bool

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd.SetArgs(translateLegacyArgs(os.Args[1:]))
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var cmdErr *archie.CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
			os.Exit(cmdErr.ExitCode)
		}
		os.Exit(1)
	}
}

// newApp reads the config and creates an ArchieApp attached to cmd's streams.
// The caller must defer app.Close().
func newApp(cmd *cobra.Command) (*app.ArchieApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults["config_path"], defaults["base_dir"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewArchieApp(cfg, runner.IO{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:          "archie",
	Short:        "Build and run archive commands",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !stdinIsTerminal() {
			return cmd.Help()
		}
		return startMenu(cmd)
	},
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func startMenu(cmd *cobra.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	m := newMenu(a, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	m.dryRun = dryRun
	if stdinIsTerminal() {
		m.readSecret = newPassphraseReader(os.Stdin, cmd.OutOrStdout()).read
	}
	return m.run(cmd.Context())
}

// operationCmd builds a subcommand that synthesizes and runs op on its arguments.
func operationCmd(op archie.Operation, use, short string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			var path, files string
			switch {
			case op == archie.OpAppend:
				path, files = args[0], args[1]
			case len(args) > 0:
				path = args[0]
			default:
				path = "."
			}
			return runOperation(cmd.Context(), cmd.OutOrStdout(), a, op, path, files, dryRun)
		},
	}
}

var (
	extractCmd    = operationCmd(archie.OpExtract, "extract PATH", "Extract an archive, or every file a wildcard selects", cobra.ExactArgs(1))
	zipCmd        = operationCmd(archie.OpZip, "zip PATH", "Zip a file or directory", cobra.ExactArgs(1))
	zipEncryptCmd = operationCmd(archie.OpZipEncrypted, "zip-encrypt PATH", "Zip a file or directory and protect it with a password", cobra.ExactArgs(1))
	tarCmd        = operationCmd(archie.OpTar, "tar PATH", "Tar a file or directory", cobra.ExactArgs(1))
	appendCmd     = operationCmd(archie.OpAppend, "append ARCHIVE PATH", "Add files to an existing archive", cobra.ExactArgs(2))
	extractAllCmd = operationCmd(archie.OpExtractAll, "extract-all [DIR]", "Extract every archive in a directory", cobra.MaximumNArgs(1))
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Choose an operation interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startMenu(cmd)
	},
}

// seal commands
var sealCmd = &cobra.Command{
	Use:   "seal ARCHIVE",
	Short: "Encrypt an archive with a passphrase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := newPassphraseReader(cmd.InOrStdin(), cmd.ErrOrStderr()).readNew()
		if err != nil {
			return err
		}

		sealed, err := a.Seal(args[0], passphrase)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sealed archive: %s\n", sealed)
		return nil
	},
}

var unsealCmd = &cobra.Command{
	Use:   "unseal ARCHIVE.age",
	Short: "Decrypt a sealed archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := newPassphraseReader(cmd.InOrStdin(), cmd.ErrOrStderr()).read("Passphrase: ")
		if err != nil {
			return err
		}

		restored, err := a.Unseal(args[0], passphrase)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored archive: %s\n", restored)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt != nil {
				duration = op.FinishedAt.Sub(op.StartedAt).Truncate(time.Millisecond).String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d  %-12s  %s  %-8s  %-8s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Command,
			)
		}
		return nil
	},
}

// doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check for archiving tools and the history store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Doctor()
		w := cmd.OutOrStdout()
		for _, t := range report.Tools {
			state := "missing"
			if t.Found() {
				state = t.Path
			}
			kind := "required"
			if !t.Required {
				kind = "optional (" + t.Format + ")"
			}
			fmt.Fprintf(w, "%-6s  %-18s  %s\n", t.Name, kind, state)
		}
		fmt.Fprintf(w, "\nHistory:         %s (last operation #%d)\n", report.HistoryPath, report.LastOperation)
		fmt.Fprintf(w, "Ignore patterns: %d\n", report.IgnorePatterns)
		return err
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized at %s\n", defaults["config_path"])
		fmt.Fprintf(cmd.OutOrStdout(), "Base Dir:    %s\n", defaults["base_dir"])
		fmt.Fprintf(cmd.OutOrStdout(), "History:     %s\n", defaults["history_db"])
		fmt.Fprintf(cmd.OutOrStdout(), "Ignore file: %s\n", defaults["ignore_file"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.Load(defaults["config_path"], defaults["base_dir"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Configuration from %s:\n\n", defaults["config_path"])
		fmt.Fprintf(w, "Base Dir:      %s\n", cfg.BaseDir)
		fmt.Fprintf(w, "Log Dir:       %s\n", cfg.LogDir)
		fmt.Fprintf(w, "Log Level:     %s\n", cfg.LogLevel)
		fmt.Fprintf(w, "Naming:        %s (output dir %s)\n", cfg.Naming.Strategy, cfg.Naming.OutputDir)
		fmt.Fprintf(w, "Ignore:        %v\n", cfg.Discovery.Ignore)
		fmt.Fprintf(w, "History:       %s %s\n", cfg.History.Type, cfg.History.DataDir)
		fmt.Fprintf(w, "Runner:        %s\n", cfg.Runner.Type)
		fmt.Fprintf(w, "Work Factor:   %d\n", cfg.Encryption.WorkFactor)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the command instead of running it")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(zipCmd)
	rootCmd.AddCommand(zipEncryptCmd)
	rootCmd.AddCommand(tarCmd)
	rootCmd.AddCommand(appendCmd)
	rootCmd.AddCommand(extractAllCmd)
	rootCmd.AddCommand(sealCmd)
	rootCmd.AddCommand(unsealCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(configCmd)
}
