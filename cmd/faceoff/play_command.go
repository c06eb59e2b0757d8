package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"faceoff/internal/duelui"
	"faceoff/internal/logging"
	"faceoff/internal/ranking"
)

func newPlayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "play [session-id]",
		Short: "Resume a ranking session (most recent one when no id is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *ranking.Store) error {
				var session *ranking.Session
				var err error
				if len(args) > 0 {
					session, err = resolveSession(cmd.Context(), store, args[0])
				} else {
					session, err = mostRecentInProgress(cmd.Context(), store)
				}
				if err != nil {
					return err
				}
				return playSession(cmd.Context(), ctx, store, session)
			})
		},
	}
}

func playSession(cmdCtx context.Context, ctx *commandContext, store *ranking.Store, session *ranking.Session) error {
	provider, err := ctx.ensureProvider()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	controller := ranking.NewController(session, store, logging.WithComponent(logger, "duel"))
	if err := duelui.Run(cmdCtx, controller, provider.Lookup); err != nil {
		return err
	}
	return nil
}

func mostRecentInProgress(ctx context.Context, store *ranking.Store) (*ranking.Session, error) {
	sessions, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	sorted := ranking.SortSessions(sessions, ranking.SortRecency)
	for _, session := range sorted {
		if !session.IsComplete {
			return session, nil
		}
	}
	return nil, fmt.Errorf("no session in progress; start one with `faceoff new`")
}
