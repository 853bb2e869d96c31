package main

import (
	"strings"
	"time"

	"github.com/kk-code-lab/try/internal/config"
	"github.com/kk-code-lab/try/internal/logging"
	"github.com/kk-code-lab/try/internal/shellsetup"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// environment is what the commands need from the process. Tests swap it.
type environment struct {
	now          func() time.Time
	detectParent shellsetup.ParentShellFunc
	executable   string
}

func defaultEnvironment() environment {
	return environment{
		now:          time.Now,
		detectParent: shellsetup.DetectParentShellName,
	}
}

type globalFlags struct {
	path       string
	configPath string
	noColors   bool
	logLevel   string
	logFile    string
	shell      string
}

type cli struct {
	env   environment
	flags globalFlags
}

func newRootCmd(env environment) *cobra.Command {
	c := &cli{env: env}

	var sel selectFlags
	rootCmd := &cobra.Command{
		Use:   "try [query...]",
		Short: "Pick, create and prune dated scratch directories",
		Long: `try keeps throwaway project directories under one root and lets you
fuzzy-find them by name and recency. On success it prints a shell command
that changes into the chosen directory; "try init" installs the wrapper
function that evaluates it.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSelect(cmd, args, sel)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.flags.path, "path", "", "tries directory (default ~/src/tries)")
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/try/config.yaml)")
	pf.BoolVar(&c.flags.noColors, "no-colors", false, "disable colours")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&c.flags.logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&c.flags.shell, "shell", "", "shell dialect for emitted commands (bash, zsh, fish, pwsh)")

	sel.register(rootCmd)

	rootCmd.AddCommand(
		c.newCdCmd(),
		c.newInitCmd(),
		c.newListCmd(),
		c.newCloneCmd(),
		c.newVersionCmd(),
	)
	return rootCmd
}

// setup resolves configuration and builds the logger. The logger is never
// nil, even on error.
func (c *cli) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(config.Overrides{
		ConfigPath: c.flags.configPath,
		Root:       c.flags.path,
		NoColors:   c.flags.noColors,
		LogLevel:   c.flags.logLevel,
		LogFile:    c.flags.logFile,
	})
	if err != nil {
		return nil, zap.NewNop(), err
	}
	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, logger, err
	}
	logger.Debug("configuration loaded",
		zap.String("root", cfg.Root),
		zap.String("source", cfg.Source),
		zap.Bool("colors", cfg.Colors))
	return cfg, logger, nil
}

func (c *cli) dialect() shellsetup.Dialect {
	return shellsetup.DialectFor(shellsetup.ResolveShell(c.flags.shell, c.env.detectParent))
}

// buildQuery joins query words, dropping a redundant leading "cd".
func buildQuery(args []string) string {
	if len(args) > 0 && args[0] == "cd" {
		args = args[1:]
	}
	return strings.TrimSpace(strings.Join(args, " "))
}
