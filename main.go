package main

import (
	"context"
	"log"

	"github.com/glowslot/booking-platform/config"
	"github.com/glowslot/booking-platform/internal/consumer"
	"github.com/glowslot/booking-platform/internal/handler"
	"github.com/glowslot/booking-platform/internal/middleware"
	"github.com/glowslot/booking-platform/internal/repository"
	"github.com/glowslot/booking-platform/internal/scheduler"
	"github.com/glowslot/booking-platform/internal/service"
	"github.com/glowslot/booking-platform/pkg/database"
	"github.com/glowslot/booking-platform/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Repositories
	vendorRepo := repository.NewVendorRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	dealRepo := repository.NewFlashDealRepository(db)
	dealBookingRepo := repository.NewFlashDealBookingRepository(db)

	// Services
	availabilitySvc := service.NewAvailabilityService(vendorRepo, bookingRepo)
	promoSvc := service.NewPromoService(promoRepo, customerRepo)
	loyaltySvc := service.NewLoyaltyService(loyaltyRepo, customerRepo)
	pricingSvc := service.NewPricingService(promoSvc, loyaltySvc)
	settlementSvc := service.NewSettlementService(vendorRepo, txnRepo, bookingRepo, publisher)
	dealSvc := service.NewFlashDealService(dealRepo, dealBookingRepo, vendorRepo)
	bookingSvc := service.NewBookingService(bookingRepo, vendorRepo, customerRepo,
		pricingSvc, promoSvc, loyaltySvc, settlementSvc, publisher)

	// RabbitMQ consumer: sync customer profiles from the identity service
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}
	consumer.NewProfileConsumer(customerRepo).Start(msgs)

	// Recurring sweeps: loyalty point expiry, flash deal cleanup
	sweeper, err := scheduler.StartSweeper(cfg.SweepSchedule, loyaltySvc, dealSvc)
	if err != nil {
		log.Fatalf("failed to start sweeper: %v", err)
	}
	defer sweeper.Stop()

	// Seed the standing first-time-user offer; a duplicate code means it
	// already exists from a previous boot.
	if _, err := promoSvc.CreateFirstTimeUserDiscount(context.Background()); err != nil {
		log.Printf("welcome promo already seeded: %v", err)
	}

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-platform"})
	})

	handler.NewBookingHandler(bookingSvc, availabilitySvc).RegisterRoutes(e)
	handler.NewPromoHandler(promoSvc).RegisterRoutes(e)
	handler.NewLoyaltyHandler(loyaltySvc).RegisterRoutes(e)
	handler.NewFlashDealHandler(dealSvc).RegisterRoutes(e)
	handler.NewSettlementHandler(settlementSvc).RegisterRoutes(e)

	log.Printf("Booking platform starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
