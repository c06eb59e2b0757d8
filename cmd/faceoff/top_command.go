package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"faceoff/internal/library"
)

func newTopCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "top [type]",
		Short: "Show the most-played songs, albums, artists, genres, or playlists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contentType := library.ContentSong
			if len(args) > 0 {
				parsed, ok := library.ParseContentType(args[0])
				if !ok {
					return fmt.Errorf("unknown content type %q (song, album, artist, genre, playlist)", args[0])
				}
				contentType = parsed
			}

			provider, err := ctx.ensureProvider()
			if err != nil {
				return err
			}

			items := provider.Top(contentType, limitFlag)
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(out, "No %ss in the library export.\n", contentType)
				return nil
			}

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
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 10, "Number of entries to show")
	return cmd
}
