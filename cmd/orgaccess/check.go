package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/btto/orgaccess/internal/access"
)

type decideFunc func(ctx context.Context, d *deps, actor access.User) (bool, error)

// runDecision resolves the actor, evaluates decide and prints the outcome.
func runDecision(cmd *cobra.Command, opts *rootOptions, command string, actorID int64, right string, target *int64, decide decideFunc) error {
	d, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	start := time.Now()
	actor, err := d.users.FindUser(cmd.Context(), actorID)
	if err != nil {
		return err
	}
	allowed, err := decide(cmd.Context(), d, actor)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), decisionOutput{
		Command:    command,
		RequestID:  opts.requestID,
		ActorID:    actorID,
		Right:      right,
		TargetID:   target,
		Allowed:    allowed,
		DurationMS: time.Since(start).Milliseconds(),
	})
}

// optionalID returns nil unless the flag was set explicitly.
func optionalID(cmd *cobra.Command, name string, value int64) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a single right for an actor",
	}
	cmd.AddCommand(
		newCheckCompanyCmd(opts),
		newCheckUserCmd(opts),
		newCheckDepartmentCmd(opts),
		newCheckWorkDayCmd(opts),
	)
	return cmd
}

func newCheckCompanyCmd(opts *rootOptions) *cobra.Command {
	var (
		actorID   int64
		companyID int64
		rightRaw  string
	)
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Check a company right",
		RunE: func(cmd *cobra.Command, args []string) error {
			right, err := access.ParseCompanyRight(rightRaw)
			if err != nil {
				return err
			}
			target := optionalID(cmd, "company", companyID)
			return runDecision(cmd, opts, "check company", actorID, right.String(), target,
				func(ctx context.Context, d *deps, actor access.User) (bool, error) {
					return d.engine.HasCompanyRight(ctx, actor, target, right)
				})
		},
	}
	cmd.Flags().Int64Var(&actorID, "actor", 0, "Acting user id (required)")
	cmd.Flags().Int64Var(&companyID, "company", 0, "Target company id (omit for CREATE)")
	cmd.Flags().StringVar(&rightRaw, "right", "", "VIEW, EDIT, REMOVE or CREATE (required)")
	_ = cmd.MarkFlagRequired("actor")
	_ = cmd.MarkFlagRequired("right")
	return cmd
}

func newCheckUserCmd(opts *rootOptions) *cobra.Command {
	var (
		actorID  int64
		userID   int64
		rightRaw string
	)
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Check a user right",
		RunE: func(cmd *cobra.Command, args []string) error {
			right, err := access.ParseUserRight(rightRaw)
			if err != nil {
				return err
			}
			target := optionalID(cmd, "user", userID)
			return runDecision(cmd, opts, "check user", actorID, right.String(), target,
				func(ctx context.Context, d *deps, actor access.User) (bool, error) {
					return d.engine.HasUserRight(ctx, actor, target, right)
				})
		},
	}
	cmd.Flags().Int64Var(&actorID, "actor", 0, "Acting user id (required)")
	cmd.Flags().Int64Var(&userID, "user", 0, "Target user id (omit for CREATE)")
	cmd.Flags().StringVar(&rightRaw, "right", "", "VIEW, GET_STATUS, EDIT, REMOVE, CREATE or SET_STATUS (required)")
	_ = cmd.MarkFlagRequired("actor")
	_ = cmd.MarkFlagRequired("right")
	return cmd
}

func newCheckDepartmentCmd(opts *rootOptions) *cobra.Command {
	var (
		actorID      int64
		departmentID int64
		rightRaw     string
	)
	cmd := &cobra.Command{
		Use:   "department",
		Short: "Check a department right",
		RunE: func(cmd *cobra.Command, args []string) error {
			right, err := access.ParseDepartmentRight(rightRaw)
			if err != nil {
				return err
			}
			target := optionalID(cmd, "department", departmentID)
			return runDecision(cmd, opts, "check department", actorID, right.String(), target,
				func(ctx context.Context, d *deps, actor access.User) (bool, error) {
					return d.engine.HasDepartmentRight(ctx, actor, target, right)
				})
		},
	}
	cmd.Flags().Int64Var(&actorID, "actor", 0, "Acting user id (required)")
	cmd.Flags().Int64Var(&departmentID, "department", 0, "Target department id (omit for CREATE)")
	cmd.Flags().StringVar(&rightRaw, "right", "", "VIEW, EDIT, REMOVE, CREATE, ASSIGN or ADD_PARTICIPANT (required)")
	_ = cmd.MarkFlagRequired("actor")
	_ = cmd.MarkFlagRequired("right")
	return cmd
}

func newCheckWorkDayCmd(opts *rootOptions) *cobra.Command {
	var (
		actorID  int64
		ownerID  int64
		rightRaw string
	)
	cmd := &cobra.Command{
		Use:   "workday",
		Short: "Check a work-day right on another user's time records",
		RunE: func(cmd *cobra.Command, args []string) error {
			right, err := access.ParseWorkDayRight(rightRaw)
			if err != nil {
				return err
			}
			owner := ownerID
			return runDecision(cmd, opts, "check workday", actorID, right.String(), &owner,
				func(ctx context.Context, d *deps, actor access.User) (bool, error) {
					return d.engine.HasWorkDayRight(ctx, actor, owner, right)
				})
		},
	}
	cmd.Flags().Int64Var(&actorID, "actor", 0, "Acting user id (required)")
	cmd.Flags().Int64Var(&ownerID, "owner", 0, "Work-day owner id (required)")
	cmd.Flags().StringVar(&rightRaw, "right", "", "VIEW, ADD_TIME or SUBTRACT_TIME (required)")
	_ = cmd.MarkFlagRequired("actor")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("right")
	return cmd
}
