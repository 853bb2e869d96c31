package main

import (
	"io"
	"path/filepath"

	fsutil "github.com/kk-code-lab/try/internal/fs"
	"github.com/kk-code-lab/try/internal/shellsetup"
	statepkg "github.com/kk-code-lab/try/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <git-uri> [name]",
		Short: "Print a command that clones a repository into a dated directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.setup()
			defer func() { _ = logger.Sync() }()
			if err != nil {
				return err
			}
			custom := ""
			if len(args) > 1 {
				custom = args[1]
			}
			if err := c.emitClone(cmd.OutOrStdout(), cfg.Root, args[0], custom, c.dialect()); err != nil {
				logger.Error("clone failed", zap.String("uri", args[0]), zap.Error(err))
				return err
			}
			return nil
		},
	}
}

// emitClone prints the clone script for uri into
// <root>/<today>-<user>-<repo>, or <root>/<custom> when given.
func (c *cli) emitClone(w io.Writer, root, uri, custom string, dialect shellsetup.Dialect) error {
	name, err := shellsetup.CloneDirName(uri, custom, c.env.now().Format(statepkg.DateLayout))
	if err != nil {
		return err
	}
	if err := fsutil.ValidateName(name); err != nil {
		return &fsutil.ValidationError{Op: "clone", Name: name, Err: err}
	}
	return emitLine(w, shellsetup.CloneScript(dialect, uri, filepath.Join(root, name)))
}
