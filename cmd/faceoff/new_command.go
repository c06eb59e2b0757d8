package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"faceoff/internal/library"
	"faceoff/internal/ranking"
)

func newNewCommand(ctx *commandContext) *cobra.Command {
	var typeFlag string
	var titleFlag string
	var playFlag bool

	cmd := &cobra.Command{
		Use:   "new <kind> [name]",
		Short: "Start a ranking session from an album, artist, genre, playlist, or the whole library",
		Example: `  faceoff new album "Abbey Road"
  faceoff new playlist "Road Trip" --title "Road trip bangers"
  faceoff new library --type album`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contentType, ok := library.ParseContentType(typeFlag)
			if !ok {
				return fmt.Errorf("unknown content type %q (song, album, artist, genre, playlist)", typeFlag)
			}

			provider, err := ctx.ensureProvider()
			if err != nil {
				return err
			}

			var name string
			if len(args) > 1 {
				name = args[1]
			}
			source, err := resolveSource(provider, args[0], name)
			if err != nil {
				return err
			}

			items, err := provider.Collection(source, contentType)
			if err != nil {
				return err
			}
			if len(items) < 2 {
				return fmt.Errorf("%s %q yields %d rankable %ss; need at least 2",
					source.Kind, source.DisplayName, len(items), contentType)
			}

			return ctx.withStore(func(store *ranking.Store) error {
				session, err := store.Create(cmd.Context(), strings.TrimSpace(titleFlag),
					contentType, source, items, loadArtwork(items))
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Created session %s: %s (%d candidates)\n",
					shortID(session.ID), session.Title, len(session.CandidateIDs))

				if !playFlag {
					fmt.Fprintf(out, "Run `faceoff play %s` to start dueling.\n", shortID(session.ID))
					return nil
				}
				return playSession(cmd.Context(), ctx, store, session)
			})
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", string(library.ContentSong), "What to rank: song, album, artist, genre, or playlist")
	cmd.Flags().StringVar(&titleFlag, "title", "", "Session title (defaults to the source name)")
	cmd.Flags().BoolVar(&playFlag, "play", false, "Start dueling immediately")
	return cmd
}

// loadArtwork snapshots the first available artwork so completed rankings keep
// a cover even after the library export moves on.
func loadArtwork(items []library.Item) []byte {
	for _, item := range items {
		if item.ArtworkRef == "" {
			continue
		}
		data, err := os.ReadFile(item.ArtworkRef)
		if err != nil {
			continue
		}
		return data
	}
	return nil
}
