package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"faceoff/internal/ranking"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var yesFlag bool

	cmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a ranking session and its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *ranking.Store) error {
				session, err := resolveSession(cmd.Context(), store, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if !yesFlag {
					fmt.Fprintf(out, "Delete %q (%s)? [y/N] ", session.Title, shortID(session.ID))
					reader := bufio.NewReader(cmd.InOrStdin())
					answer, _ := reader.ReadString('\n')
					if !strings.EqualFold(strings.TrimSpace(answer), "y") {
						fmt.Fprintln(out, "Aborted.")
						return nil
					}
				}

				removed, err := store.Delete(cmd.Context(), session.ID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("session %s disappeared before it could be deleted", shortID(session.ID))
				}
				fmt.Fprintf(out, "Deleted session %s\n", shortID(session.ID))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
