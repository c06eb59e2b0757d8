package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"faceoff/internal/ranking"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the ranking a session has produced so far",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := ctx.ensureProvider()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *ranking.Store) error {
				session, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s of %s %q, %s)\n", session.Title,
					session.ContentType, session.Source.Kind, session.Source.DisplayName,
					statusLabel(session))
				fmt.Fprintf(out, "Progress: %s\n\n", describeProgress(session))

				if len(session.RankedIDs) == 0 {
					fmt.Fprintln(out, "Nothing ranked yet.")
					return nil
				}

				items := ranking.Resolve(session, provider.Lookup)
				rows := make([][]string, 0, len(items))
				for i, item := range items {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						item.Title,
						item.Subtitle,
						strconv.FormatInt(item.PlayCount, 10),
						formatClock(item.Duration),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "TITLE", "DETAIL", "PLAYS", "LENGTH"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
				))

				stats := ranking.Fold(items)
				fmt.Fprintf(out, "%d ranked, %d total plays, %s of music\n",
					stats.Resolved, stats.TotalPlays, formatClock(stats.TotalDuration))
				if missing := len(session.RankedIDs) - stats.Resolved; missing > 0 {
					fmt.Fprintf(out, "%d ranked item(s) no longer resolve against the library export\n", missing)
				}
				return nil
			})
		},
	}
}
