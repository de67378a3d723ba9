package main

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/btto/orgaccess/internal/access"
	"github.com/btto/orgaccess/jobs"
)

// deps is everything a subcommand needs once connected.
type deps struct {
	engine   *access.Engine
	users    access.UserDirectory
	bumper   jobs.VersionBumper
	enqueuer jobs.Enqueuer
	logger   *slog.Logger
	close    func()
}

type connectFunc func(ctx context.Context, requestID string) (*deps, error)

type rootOptions struct {
	requestID string
	connect   connectFunc
}

func (o *rootOptions) open(cmd *cobra.Command) (*deps, error) {
	if o.requestID == "" {
		o.requestID = uuid.NewString()
	}
	return o.connect(cmd.Context(), o.requestID)
}

func newRootCmd(connect connectFunc) *cobra.Command {
	opts := &rootOptions{connect: connect}
	cmd := &cobra.Command{
		Use:          "orgaccess",
		Short:        "Evaluate organization access decisions against live data",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.requestID, "request-id", "", "Request id attached to logs (default: random UUID)")
	cmd.AddCommand(newCheckCmd(opts), newEligibleCmd(opts), newRelationsCmd(opts))
	return cmd
}
