package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/slotworks/booking-app/config"
	"github.com/slotworks/booking-app/controllers"
	"github.com/slotworks/booking-app/cron"
	"github.com/slotworks/booking-app/db"
	"github.com/slotworks/booking-app/events"
	"github.com/slotworks/booking-app/lock"
	"github.com/slotworks/booking-app/notify"
	"github.com/slotworks/booking-app/redis"
	"github.com/slotworks/booking-app/routes"
	"github.com/slotworks/booking-app/scheduler"
	"github.com/slotworks/booking-app/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	redisClient, err := redis.New(cfg.RedisAddr)
	if err != nil {
		log.Fatal(err)
	}

	users := store.NewUserStore(gdb)
	rules := store.NewAvailabilityStore(gdb)
	exceptions := store.NewExceptionStore(gdb)
	bookings := store.NewBookingStore(gdb)

	locks := lock.NewProviderLock(redisClient)
	publisher := events.NewRedisPublisher(redisClient, cfg.EventChannel)

	generator := scheduler.NewGenerator(rules, exceptions, bookings)
	booker := scheduler.NewBooker(bookings, exceptions, locks, publisher)

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.MailConfigured() {
		notifier = notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.EmailUser,
			Password: cfg.EmailPass,
		})
	}
	reminders, err := cron.StartReminderJobs(bookings, notifier)
	if err != nil {
		log.Fatal("failed to schedule reminder job: ", err)
	}
	defer reminders.Stop()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupSlotRoutes(app, controllers.NewSlotController(users, generator))
	routes.SetupBookingRoutes(app, controllers.NewBookingController(users, booker, bookings), cfg.JWTSecret)
	routes.SetupAvailabilityRoutes(app, controllers.NewAvailabilityController(rules), cfg.JWTSecret)
	routes.SetupExceptionRoutes(app, controllers.NewExceptionController(exceptions), cfg.JWTSecret)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
