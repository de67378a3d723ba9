package main

import (
	"time"

	"github.com/spf13/cobra"
)

type eligibilityOutput struct {
	Command      string `json:"command"`
	RequestID    string `json:"request_id"`
	UserID       int64  `json:"user_id"`
	DepartmentID int64  `json:"department_id"`
	Eligible     bool   `json:"eligible"`
	DurationMS   int64  `json:"duration_ms"`
}

func newEligibleCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "Check whether a user can join or leave a department",
	}
	cmd.AddCommand(newEligibleAddCmd(opts), newEligibleRemoveCmd(opts))
	return cmd
}

func newEligibleAddCmd(opts *rootOptions) *cobra.Command {
	var userID, departmentID int64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Can the user be added to the department",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEligibility(cmd, opts, "eligible add", userID, departmentID, false)
		},
	}
	bindEligibilityFlags(cmd, &userID, &departmentID)
	return cmd
}

func newEligibleRemoveCmd(opts *rootOptions) *cobra.Command {
	var userID, departmentID int64
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Can the user be removed from the department",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEligibility(cmd, opts, "eligible remove", userID, departmentID, true)
		},
	}
	bindEligibilityFlags(cmd, &userID, &departmentID)
	return cmd
}

func bindEligibilityFlags(cmd *cobra.Command, userID, departmentID *int64) {
	cmd.Flags().Int64Var(userID, "user", 0, "User id (required)")
	cmd.Flags().Int64Var(departmentID, "department", 0, "Department id (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("department")
}

func runEligibility(cmd *cobra.Command, opts *rootOptions, command string, userID, departmentID int64, remove bool) error {
	d, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer d.close()

	start := time.Now()
	var eligible bool
	if remove {
		eligible, err = d.engine.CanRemoveFromDepartment(cmd.Context(), userID, departmentID)
	} else {
		eligible, err = d.engine.CanAddToDepartment(cmd.Context(), userID, departmentID)
	}
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), eligibilityOutput{
		Command:      command,
		RequestID:    opts.requestID,
		UserID:       userID,
		DepartmentID: departmentID,
		Eligible:     eligible,
		DurationMS:   time.Since(start).Milliseconds(),
	})
}
