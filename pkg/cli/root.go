package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"sqltext/internal/config"
	"sqltext/pkg/sqltext"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	if err := config.LoadDotEnv(".env"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == config.OutputJSON {
			_ = printJSON(os.Stdout, map[string]interface{}{
				"error": err.Error(),
				"code":  errorCode(err),
			})
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// settings are the resolved global options shared by every subcommand.
type settings struct {
	mode        sqltext.Mode
	output      string
	logLevel    string
	concurrency int
	logger      *slog.Logger
}

func (s *settings) editor() *sqltext.Editor {
	return sqltext.NewEditor(sqltext.WithMode(s.mode), sqltext.WithLogger(s.logger))
}

func newRootCmd() *cobra.Command {
	s := &settings{
		output:      config.OutputText,
		logLevel:    "info",
		concurrency: 1,
		logger:      slog.New(slog.DiscardHandler),
	}
	var profile string

	rootCmd := &cobra.Command{
		Use:           "sqltext",
		Short:         "Format-preserving clause edits for SQL text",
		Long:          "Read, replace, append to, or remove from the clauses of hand-written SQL statements without a SQL parser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env, err := config.LoadFromEnv()
			if err != nil {
				return err
			}

			// Config file is optional
			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}
			p := cfg.ActiveProfile(profile)

			// Apply precedence: flag > env > profile > default
			if !cmd.Flags().Changed("mode") {
				if os.Getenv("SQLTEXT_MODE") != "" {
					s.mode = env.Mode
				} else if p.Mode != "" {
					mode, err := sqltext.ParseMode(p.Mode)
					if err != nil {
						return fmt.Errorf("profile %q: %w", cfg.CurrentProfile, err)
					}
					s.mode = mode
				}
			}
			if !cmd.Flags().Changed("output") {
				if os.Getenv("SQLTEXT_OUTPUT") != "" {
					s.output = env.Output
				} else if p.Output != "" {
					s.output = p.Output
				}
			}
			levelSource := "--log-level"
			if !cmd.Flags().Changed("log-level") {
				if os.Getenv("SQLTEXT_LOG_LEVEL") != "" {
					s.logLevel = env.LogLevel
					levelSource = "SQLTEXT_LOG_LEVEL"
				} else if p.LogLevel != "" {
					s.logLevel = p.LogLevel
					levelSource = "profile log-level"
				}
			}
			s.concurrency = env.Concurrency

			if err := config.ValidateOutput(s.output); err != nil {
				return err
			}

			warnings := env.Warnings
			if !config.ValidLevel(s.logLevel) {
				warnings = append(warnings, fmt.Sprintf("unknown %s %q, using info", levelSource, s.logLevel))
				s.logLevel = "info"
			}

			s.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: config.ParseLevel(s.logLevel),
			}))
			for _, w := range warnings {
				s.logger.Warn(w)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Var(&modeValue{mode: &s.mode}, "mode", "Clause target mode (strict, lenient)")
	rootCmd.PersistentFlags().StringVarP(&s.output, "output", "o", config.OutputText, "Output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")

	// Clause inspection
	rootCmd.AddCommand(newClausesCmd(s))
	rootCmd.AddCommand(newDictCmd(s))
	rootCmd.AddCommand(newBuildCmd(s))

	// Clause edits
	rootCmd.AddCommand(newSetCmd(s))
	rootCmd.AddCommand(newDeleteCmd(s))
	rootCmd.AddCommand(newAppendCmd(s))
	rootCmd.AddCommand(newRemoveCmd(s))
	rootCmd.AddCommand(newApplyCmd(s))

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}

// errorCode classifies err for JSON error output.
func errorCode(err error) string {
	switch {
	case errors.Is(err, sqltext.ErrParse):
		return "parse_error"
	case errors.Is(err, sqltext.ErrClauseNotFound):
		return "clause_not_found"
	case errors.Is(err, sqltext.ErrSubstringNotFound):
		return "substring_not_found"
	default:
		return "error"
	}
}
