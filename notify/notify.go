// Package notify is the boundary to the notification collaborator. The core
// engine never talks SMTP directly; it hands bookings to a Notifier.
package notify

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/slotworks/booking-app/models"
)

// Notifier delivers booking-related messages to the client.
type Notifier interface {
	BookingReminder(booking *models.Booking) error
}

// SMTPConfig carries the mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// EmailNotifier sends reminder mail through the configured relay.
type EmailNotifier struct {
	cfg SMTPConfig
}

func NewEmailNotifier(cfg SMTPConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) BookingReminder(booking *models.Booking) error {
	subject := "Reminder: upcoming appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment scheduled in one hour.</p>
		<ul>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Start:</strong> %s</li>
			<li><strong>End:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so as soon as possible.</p>
	`, booking.Client.Name, booking.Provider.Name,
		booking.StartAt.Format("2006-01-02 15:04"),
		booking.EndAt.Format("2006-01-02 15:04"))

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.User)
	m.SetHeader("To", booking.Client.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	return d.DialAndSend(m)
}

// NoopNotifier is used when no relay is configured, e.g. in development.
type NoopNotifier struct{}

func (NoopNotifier) BookingReminder(booking *models.Booking) error {
	log.Printf("reminder suppressed (no SMTP configured) for booking %d", booking.ID)
	return nil
}
