package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/dealer-scout/internal/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List recorded tool invocations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Journal.Driver == "" {
			return eris.New("journal: disabled (set journal.driver to sqlite or postgres)")
		}
		j, err := journal.Open(ctx, cfg.Journal.Driver, cfg.Journal.DSN)
		if err != nil {
			return err
		}
		defer j.Close() //nolint:errcheck

		tool, _ := cmd.Flags().GetString("tool")
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := j.List(ctx, journal.Filter{Tool: tool, Limit: limit})
		if err != nil {
			return eris.Wrap(err, "journal list")
		}
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "No journal entries found.")
			return nil
		}

		formatJournal(cmd.OutOrStdout(), entries)
		return nil
	},
}

func formatJournal(out io.Writer, entries []journal.Entry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTOOL\tCREATED\tDURATION\tRESULT")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t--------\t------")

	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncateID(e.ID),
			e.Tool,
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Duration.Round(time.Millisecond),
			truncate(e.Result, 60),
		)
	}
	_ = w.Flush()
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}

func init() {
	journalCmd.Flags().String("tool", "", "only entries for this tool")
	journalCmd.Flags().Int("limit", journal.DefaultLimit, "maximum entries to list")
	rootCmd.AddCommand(journalCmd)
}
