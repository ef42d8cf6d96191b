package jobs

import (
	"context"

	"sitework-backend/internal/logger"
)

// SendMaintenanceReminders emails the inventory manager the tool types whose
// maintenance interval has lapsed or that have units parked under maintenance
func (jr *JobRunner) SendMaintenanceReminders() {
	jr.runWithRecovery("SendMaintenanceReminders", func() {
		ctx := context.Background()

		due, err := jr.services.Report.MaintenanceDue(ctx)
		if err != nil {
			logger.Error("Failed to compute maintenance due list", "error", err)
			return
		}
		if len(due) == 0 {
			logger.Info("No tool types due for maintenance, skipping reminder")
			return
		}

		if err := jr.services.Email.SendMaintenanceReminder(ctx, due); err != nil {
			logger.Error("Failed to send maintenance reminder", "error", err, "count", len(due))
			return
		}

		logger.Info("Sent maintenance reminder", "count", len(due))
	})
}
