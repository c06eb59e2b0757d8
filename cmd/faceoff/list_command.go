package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"faceoff/internal/ranking"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var filterFlag string
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ranking sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := ranking.ParseSortMode(sortFlag)
			if !ok {
				return fmt.Errorf("unknown sort mode %q (recency, name, source)", sortFlag)
			}

			return ctx.withStore(func(store *ranking.Store) error {
				sessions, err := store.List(cmd.Context())
				if err != nil {
					return err
				}

				sessions = ranking.FilterSessions(sessions, filterFlag)
				sessions = ranking.SortSessions(sessions, mode)

				out := cmd.OutOrStdout()
				if len(sessions) == 0 {
					fmt.Fprintln(out, "No sessions found.")
					return nil
				}

				rows := make([][]string, 0, len(sessions))
				for _, session := range sessions {
					rows = append(rows, []string{
						shortID(session.ID),
						session.Title,
						string(session.ContentType),
						session.Source.DisplayName,
						describeProgress(session),
						statusLabel(session),
						formatRelative(session.UpdatedAt),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "TITLE", "TYPE", "SOURCE", "PROGRESS", "STATUS", "UPDATED"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))

				complete, inProgress, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d complete, %d in progress\n", complete, inProgress)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filterFlag, "filter", "f", "", "Only sessions whose title or source contains this text")
	cmd.Flags().StringVarP(&sortFlag, "sort", "s", string(ranking.SortRecency), "Sort order: recency, name, or source")
	return cmd
}
