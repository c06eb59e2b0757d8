package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"faceoff/internal/library"
)

func newSourcesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sources <kind>",
		Short: "List the albums, artists, genres, or playlists a session can rank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := library.ParseSourceKind(args[0])
			if !ok || kind == library.SourceLibrary {
				return fmt.Errorf("unknown source kind %q (album, artist, genre, playlist)", args[0])
			}

			provider, err := ctx.ensureProvider()
			if err != nil {
				return err
			}

			sources := provider.Sources(kind)
			out := cmd.OutOrStdout()
			if len(sources) == 0 {
				fmt.Fprintf(out, "No %ss in the library export.\n", kind)
				return nil
			}
			for _, src := range sources {
				fmt.Fprintln(out, src.DisplayName)
			}
			return nil
		},
	}
}
