package jobs

import (
	"context"
	"time"

	"rentfolio-backend/internal/logger"
)

// GenerateMonthlyRents creates the current month's rent obligation for every
// active lease. Re-runs are harmless: existing obligations are skipped.
func (jr *JobRunner) GenerateMonthlyRents() {
	jr.runWithRecovery("GenerateMonthlyRents", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		count, err := jr.services.Rents.GenerateCurrentMonthForAllActive(ctx)
		if err != nil {
			logger.Error("Failed to generate monthly rents", "error", err)
			return
		}
		logger.Info("Monthly rents generated", "count", count)
	})
}

// MarkLateRents flips unpaid obligations past their due date to LATE.
// Partially paid rents keep their PARTIAL status.
func (jr *JobRunner) MarkLateRents() {
	jr.runWithRecovery("MarkLateRents", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		count, err := jr.store.RentRepository.MarkLate(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to mark late rents", "error", err)
			return
		}
		if count > 0 {
			logger.Info("Rents marked late", "count", count)
		}
	})
}
