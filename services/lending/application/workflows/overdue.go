// Package workflows holds the Temporal workflows for the lending context.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	appsvcs "github.com/ghuser/circulation/services/lending/application/services"
)

const (
	// TaskQueue is the Temporal task queue the lending worker polls.
	TaskQueue = "circulation-lending"

	// OverdueSweepWorkflowID is the fixed workflow ID for the cron sweep, so
	// redeploys attach to the running schedule instead of starting a second one.
	OverdueSweepWorkflowID = "overdue-sweep"

	// OverdueSweepCron runs the sweep daily at 02:00 UTC.
	OverdueSweepCron = "0 2 * * *"
)

// OverdueSweepResult reports one sweep run.
type OverdueSweepResult struct {
	Transitioned int `json:"transitioned"`
}

// OverdueSweepWorkflow runs the overdue sweep as a single activity. The
// sweep itself is idempotent, so retrying the activity after a partial
// failure is safe.
func OverdueSweepWorkflow(ctx workflow.Context) (OverdueSweepResult, error) {
	opts := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Minute,
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, opts)

	var result OverdueSweepResult
	if err := workflow.ExecuteActivity(ctx, "SweepOverdueLoans").Get(ctx, &result); err != nil {
		return OverdueSweepResult{}, err
	}
	return result, nil
}

// OverdueActivities holds the activity implementations behind the sweep
// workflow.
type OverdueActivities struct {
	svc *appsvcs.Services
}

// NewOverdueActivities returns the sweep activities backed by the given services.
func NewOverdueActivities(svc *appsvcs.Services) *OverdueActivities {
	return &OverdueActivities{svc: svc}
}

// SweepOverdueLoans marks expired active loans overdue.
func (a *OverdueActivities) SweepOverdueLoans(ctx context.Context) (OverdueSweepResult, error) {
	n, err := a.svc.Engine.RunOverdueSweep(ctx)
	if err != nil {
		return OverdueSweepResult{}, err
	}
	return OverdueSweepResult{Transitioned: n}, nil
}
