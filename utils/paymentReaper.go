package utils

import (
	"coursebay/config"
	"coursebay/database"
	"coursebay/services"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializePaymentReaper sets up the stale pending-payment reaper
func InitializePaymentReaper() {
	log.Println("[PAYMENT-REAPER] Initializing pending payment reaper...")

	c := cron.New()

	// Run hourly to cancel pending enrollments whose checkout was abandoned
	c.AddFunc("0 * * * *", func() {
		ReapStalePendingPayments()
	})

	c.Start()
	log.Println("[PAYMENT-REAPER] Payment reaper started - runs hourly")
}

// ReapStalePendingPayments cancels pending enrollments older than the configured TTL
func ReapStalePendingPayments() {
	ttl := time.Duration(config.AppConfig.PendingPaymentTTLHours) * time.Hour
	cutoff := time.Now().Add(-ttl)

	cancelled, err := services.CancelStalePending(database.Database.Db, cutoff)
	if err != nil {
		log.Printf("[PAYMENT-REAPER] Error cancelling stale pending enrollments: %v", err)
		return
	}

	if cancelled > 0 {
		log.Printf("[PAYMENT-REAPER] Cancelled %d stale pending enrollments", cancelled)
	}
}
