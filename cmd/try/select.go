package main

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/try/internal/app"
	fsutil "github.com/kk-code-lab/try/internal/fs"
	"github.com/kk-code-lab/try/internal/search"
	"github.com/kk-code-lab/try/internal/shellsetup"
	statepkg "github.com/kk-code-lab/try/internal/state"
	inputui "github.com/kk-code-lab/try/internal/ui/input"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type selectFlags struct {
	interactive bool
	andKeys     string
}

func (f *selectFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "always open the selector, even when the query names nothing yet")
	cmd.Flags().StringVar(&f.andKeys, "and-keys", "", "drive the selector from a key script instead of the terminal")
	_ = cmd.Flags().MarkHidden("and-keys")
}

func (c *cli) newCdCmd() *cobra.Command {
	var sel selectFlags
	cmd := &cobra.Command{
		Use:   "cd [query...]",
		Short: "Open the selector and print a cd command for the choice",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSelect(cmd, args, sel)
		},
	}
	sel.register(cmd)
	return cmd
}

// runSelect is the main flow. A query that looks like a git URI becomes a
// clone. A query with no exact match (date prefix ignored) creates the
// directory straight away unless -i or a key script is given. Everything
// else goes through the selector.
func (c *cli) runSelect(cmd *cobra.Command, args []string, sel selectFlags) error {
	cfg, logger, err := c.setup()
	defer func() { _ = logger.Sync() }()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dialect := c.dialect()
	query := buildQuery(args)
	scripted := cmd.Flags().Changed("and-keys")

	if query != "" && shellsetup.IsGitURI(query) {
		return c.emitClone(out, cfg.Root, query, "", dialect)
	}

	store := fsutil.NewStore(cfg.Root,
		fsutil.WithLogger(logger),
		fsutil.WithClock(c.env.now),
		fsutil.WithUsageCache(fsutil.NewUsageCache()))

	if query != "" && !sel.interactive && !scripted {
		entry, created, err := c.fastCreate(store, query)
		if err != nil {
			logger.Error("fast create failed", zap.String("query", query), zap.Error(err))
			return err
		}
		if created {
			logger.Info("fast create", zap.String("path", entry.Path))
			return emitLine(out, shellsetup.CdScript(dialect, entry.Path))
		}
	}

	var script []*tcell.EventKey
	if scripted {
		if script, err = inputui.ParseScript(sel.andKeys); err != nil {
			return err
		}
	}

	outcome, err := apppkg.Select(apppkg.Options{
		Root:    cfg.Root,
		Query:   query,
		Colors:  cfg.Colors,
		Script:  script,
		Storage: store,
		Logger:  logger,
		Now:     c.env.now,
	})
	if err != nil {
		logger.Error("selector failed", zap.Error(err))
		return err
	}

	switch outcome.Kind {
	case statepkg.OutcomeOpen, statepkg.OutcomeCreate:
		return emitLine(out, shellsetup.CdScript(dialect, outcome.Entry.Path))
	}
	return nil
}

// fastCreate makes "<today>-<query>" when no existing name already equals
// the query. created is false when the selector should run instead.
func (c *cli) fastCreate(store *fsutil.Store, query string) (fsutil.Entry, bool, error) {
	catalog, err := store.Scan()
	if err != nil {
		return fsutil.Entry{}, false, err
	}
	names := make([]string, len(catalog))
	for i, entry := range catalog {
		names[i] = entry.Name
	}
	if search.HasExactName(query, names) {
		return fsutil.Entry{}, false, nil
	}
	name := c.env.now().Format(statepkg.DateLayout) + "-" + search.NormalizeQuery(query)
	entry, err := store.Create(name)
	if err != nil {
		return fsutil.Entry{}, false, err
	}
	return entry, true, nil
}

func emitLine(w io.Writer, line string) error {
	_, err := fmt.Fprintln(w, line)
	return err
}
