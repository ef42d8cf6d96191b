package jobs

import (
	"context"
	"time"

	"sitework-backend/internal/logger"
)

// MarkOverdueAssignments flags open assignments whose expected return date
// has passed
func (jr *JobRunner) MarkOverdueAssignments() {
	jr.runWithRecovery("MarkOverdueAssignments", func() {
		ctx := context.Background()

		today := time.Now().UTC().Format("2006-01-02")
		count, err := jr.store.MarkOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to mark overdue assignments", "error", err)
			return
		}

		logger.Info("Marked assignments as overdue", "count", count, "as_of", today)
	})
}

// SendOverdueReminders emails the inventory manager a summary of every open
// assignment that is past its expected return date
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.store.ListOverdue(ctx)
		if err != nil {
			logger.Error("Failed to list overdue assignments", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue assignments, skipping reminder")
			return
		}

		if err := jr.services.Email.SendOverdueSummary(ctx, overdue); err != nil {
			logger.Error("Failed to send overdue summary", "error", err, "count", len(overdue))
			return
		}

		logger.Info("Sent overdue summary", "count", len(overdue))
	})
}
