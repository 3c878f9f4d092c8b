// Package cron drives the reminder batch job. It sits outside the core
// engine: it only reads the ledger and hands bookings to the notifier.
package cron

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/slotworks/booking-app/models"
	"github.com/slotworks/booking-app/notify"
)

// RemindersSource yields confirmed bookings starting inside a window.
// Satisfied by *store.BookingStore.
type RemindersSource interface {
	RemindersDue(ctx context.Context, from, to time.Time) ([]models.Booking, error)
}

// StartReminderJobs schedules the every-minute sweep for bookings starting in
// roughly one hour. The returned cron can be stopped on shutdown.
func StartReminderJobs(ledger RemindersSource, notifier notify.Notifier) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc("* * * * *", func() {
		sendReminders(ledger, notifier)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Println("reminder job scheduled")
	return c, nil
}

func sendReminders(ledger RemindersSource, notifier notify.Notifier) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	// The sweep runs every minute; a 55-65 minute window catches each booking
	// exactly once without depending on tick alignment.
	bookings, err := ledger.RemindersDue(ctx, now.Add(55*time.Minute), now.Add(65*time.Minute))
	if err != nil {
		log.Printf("reminder sweep failed: %v", err)
		return
	}

	for i := range bookings {
		booking := &bookings[i]
		if err := notifier.BookingReminder(booking); err != nil {
			log.Printf("failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("sent reminder for booking %d to %s", booking.ID, booking.Client.Email)
	}
}
