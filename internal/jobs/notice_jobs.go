package jobs

import (
	"context"
	"time"

	"rentfolio-backend/internal/logger"
)

// SendDueReminders dispatches every scheduled reminder whose time has come.
func (jr *JobRunner) SendDueReminders() {
	jr.runWithRecovery("SendDueReminders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		sent, err := jr.services.Reminders.SendDue(ctx)
		if err != nil {
			logger.Error("Failed to send due reminders", "error", err)
			return
		}
		if sent > 0 {
			logger.Info("Due reminders sent", "count", sent)
		}
	})
}

// SendPendingReceipts retries receipt delivery for rows still marked PENDING,
// picking up anything the post-payment delivery missed.
func (jr *JobRunner) SendPendingReceipts() {
	jr.runWithRecovery("SendPendingReceipts", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		sent, err := jr.services.Receipts.SendPending(ctx)
		if err != nil {
			logger.Error("Failed to send pending receipts", "error", err)
			return
		}
		if sent > 0 {
			logger.Info("Pending receipts sent", "count", sent)
		}
	})
}
