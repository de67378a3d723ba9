package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/btto/orgaccess/internal/relations"
	"github.com/btto/orgaccess/jobs"
)

func newRelationsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relations",
		Short: "Manage the cached management hierarchy",
	}
	cmd.AddCommand(newRelationsBumpCmd(opts))
	return cmd
}

func newRelationsBumpCmd(opts *rootOptions) *cobra.Command {
	var (
		reason  string
		enqueue bool
	)
	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Invalidate cached management answers after a hierarchy change",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer d.close()

			out := bumpOutput{Command: "relations bump", RequestID: opts.requestID}
			if enqueue {
				if d.enqueuer == nil {
					return errors.New("relations bump: --enqueue needs REDIS_ADDR")
				}
				info, err := d.enqueuer.EnqueueRelationsCacheBump(cmd.Context(), jobs.RelationsCacheBumpPayload{
					Reason:      reason,
					RequestedBy: opts.requestID,
				})
				if err != nil {
					return err
				}
				out.TaskID = info.ID
				return writeJSON(cmd.OutOrStdout(), out)
			}

			version, err := d.bumper.Bump(cmd.Context())
			if errors.Is(err, relations.ErrCacheDisabled) {
				return errors.New("relations bump: relation cache is disabled (check REDIS_ADDR and RELATION_CACHE_TTL); nothing was invalidated")
			}
			if err != nil {
				return err
			}
			d.logger.Info("relation cache bumped", slog.Int64("version", version), slog.String("reason", reason))
			out.Version = version
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Why the hierarchy changed")
	cmd.Flags().BoolVar(&enqueue, "enqueue", false, "Hand the bump to the worker instead of running it inline")
	return cmd
}
