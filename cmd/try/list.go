package main

import (
	"fmt"
	"io"
	"strings"

	fsutil "github.com/kk-code-lab/try/internal/fs"
	"github.com/kk-code-lab/try/internal/search"
	"github.com/kk-code-lab/try/internal/textutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const (
	listNameWidth = 48
	listAgeWidth  = 9
)

func (c *cli) newListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list [query...]",
		Short: "List tries in ranked order without opening the selector",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.setup()
			defer func() { _ = logger.Sync() }()
			if err != nil {
				return err
			}
			catalog, err := fsutil.Scan(cfg.Root)
			if err != nil {
				logger.Error("scan failed", zap.String("root", cfg.Root), zap.Error(err))
				return err
			}
			query := buildQuery(args)
			items := search.NewRanker(search.NewFuzzyMatcher()).Rank(query, catalog, c.env.now())
			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}
			out := cmd.OutOrStdout()
			return c.writeList(out, newListStyles(out, cfg.Colors), items)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many entries")
	return cmd
}

func (c *cli) writeList(w io.Writer, styles listStyles, items []search.RankedItem) error {
	now := c.env.now()
	var b strings.Builder
	b.WriteString(styles.Header.Render(textutil.PadRight("NAME", listNameWidth)))
	b.WriteString("  ")
	b.WriteString(styles.Header.Render(fmt.Sprintf("%*s", listAgeWidth, "AGE")))
	b.WriteString("  ")
	b.WriteString(styles.Header.Render("SCORE"))
	b.WriteByte('\n')

	for _, item := range items {
		name := textutil.SanitizeTerminalText(norm.NFC.String(item.Entry.Name))
		b.WriteString(renderListName(styles, name, item.Positions))
		b.WriteString("  ")
		age := textutil.RelativeAge(item.Entry.LastTouched(), now)
		b.WriteString(styles.Age.Render(fmt.Sprintf("%*s", listAgeWidth, age)))
		b.WriteString("  ")
		b.WriteString(styles.Score.Render(fmt.Sprintf("%5.2f", item.Score)))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// renderListName pads the name to the column, dims the date prefix and
// highlights matched runes. Names too long for the column are truncated.
func renderListName(styles listStyles, name string, positions []int) string {
	display := textutil.TruncateToWidth(name, listNameWidth)
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}
	dateRunes := 0
	if date, _, ok := search.SplitDatePrefix(name); ok {
		dateRunes = len([]rune(date)) + 1
	}

	var b strings.Builder
	for i, r := range []rune(display) {
		style := styles.Name
		switch {
		case matched[i]:
			style = styles.Match
		case i < dateRunes:
			style = styles.Date
		}
		b.WriteString(style.Render(string(r)))
	}
	if pad := listNameWidth - textutil.DisplayWidth(display); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	return b.String()
}
