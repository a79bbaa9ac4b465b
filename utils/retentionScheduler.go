package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/config"
	"lms/database"
	"lms/models"
)

// InitializeRetentionScheduler sets up the processed-events retention sweep
func InitializeRetentionScheduler() *cron.Cron {
	log.Println("[RETENTION-SCHEDULER] Initializing retention scheduler...")

	c := cron.New()

	// Run daily at 4 AM
	c.AddFunc("0 4 * * *", func() {
		log.Println("[RETENTION-SCHEDULER] Running daily retention sweep...")
		PurgeExpiredProcessedEvents()
		ReportPendingRejections()
	})

	c.Start()
	log.Println("[RETENTION-SCHEDULER] Retention scheduler started - runs daily at 4 AM")
	return c
}

// PurgeExpiredProcessedEvents hard-deletes idempotency ledger rows older than
// the configured retention window. The window must stay longer than the
// provider's maximum redelivery window: a purged transaction id would be
// processed again if the provider ever redelivered it.
func PurgeExpiredProcessedEvents() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.EventRetentionDays)

	result := db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.ProcessedEvent{})
	if result.Error != nil {
		log.Printf("[RETENTION-SCHEDULER] Error purging processed events: %v", result.Error)
		return
	}

	log.Printf("[RETENTION-SCHEDULER] Purged %d processed events older than %d days", result.RowsAffected, config.AppConfig.EventRetentionDays)
}

// ReportPendingRejections logs how many rejected events are still retained.
// There is no reviewed flag on the ledger, so the number only shrinks as the
// retention sweep ages rows out; reconciliation happens off this table.
func ReportPendingRejections() {
	db := database.Database.Db

	var count int64
	if err := db.Model(&models.ProcessedEvent{}).
		Where("outcome = ?", models.EventOutcomeRejected).
		Count(&count).Error; err != nil {
		log.Printf("[RETENTION-SCHEDULER] Error counting rejected events: %v", err)
		return
	}

	if count > 0 {
		log.Printf("[RETENTION-SCHEDULER] %d rejected events retained for review", count)
	}
}
