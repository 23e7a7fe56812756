package main

import (
	adminhandler "squadly/internal/admin/handler"
	adminservice "squadly/internal/admin/service"
	announcementhandler "squadly/internal/announcements/handler"
	announcementrepo "squadly/internal/announcements/repository"
	announcementservice "squadly/internal/announcements/service"
	bookinghandler "squadly/internal/bookings/handler"
	bookingrepo "squadly/internal/bookings/repository"
	bookingservice "squadly/internal/bookings/service"
	bookingvalidator "squadly/internal/bookings/validator"
	couponhandler "squadly/internal/coupons/handler"
	couponrepo "squadly/internal/coupons/repository"
	couponservice "squadly/internal/coupons/service"
	courthandler "squadly/internal/courts/handler"
	courtrepo "squadly/internal/courts/repository"
	courtservice "squadly/internal/courts/service"
	"squadly/internal/events"
	memberhandler "squadly/internal/members/handler"
	memberservice "squadly/internal/members/service"
	paymenthandler "squadly/internal/payments/handler"
	paymentrepo "squadly/internal/payments/repository"
	paymentservice "squadly/internal/payments/service"
	paymentvalidator "squadly/internal/payments/validator"
	systemhandler "squadly/internal/system/handler"
	userhandler "squadly/internal/users/handler"
	userrepo "squadly/internal/users/repository"
	userservice "squadly/internal/users/service"
	"squadly/pkg/app"
	"squadly/pkg/config"
	"squadly/pkg/contracts"
	"squadly/pkg/kafka"
)

const ServiceName = "squadly-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Squadly API")

	publisher, producer := initPublisher(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}()
	}
	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

// initPublisher wires the lifecycle event producer. With no brokers
// configured the API runs standalone and events are dropped. The returned
// producer is nil in that case; otherwise the caller owns closing it.
func initPublisher(cfg *config.Config) (events.Publisher, *kafka.Producer) {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, lifecycle events disabled")
		return events.NewNoopPublisher(), nil
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaEventsTopic,
		WriteTimeout: cfg.KafkaWriteTimeout,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.KafkaEventsTopic,
	)
	return events.NewKafkaPublisher(producer, cfg.Log), producer
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	paymentRepo := paymentrepo.NewMongoPaymentRepository(cfg)
	couponRepo := couponrepo.NewMongoCouponRepository(cfg)
	userRepo := userrepo.NewMongoUserRepository(cfg)
	courtRepo := courtrepo.NewMongoCourtRepository(cfg)
	announcementRepo := announcementrepo.NewMongoAnnouncementRepository(cfg)

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	paymentService := paymentservice.NewPaymentService(
		paymentRepo,
		bookingRepo,
		paymentvalidator.NewPaymentValidator(cfg.Log),
		publisher,
		cfg,
	)
	couponService := couponservice.NewCouponService(couponRepo, cfg)
	userService := userservice.NewUserService(userRepo, cfg)
	courtService := courtservice.NewCourtService(courtRepo, cfg)
	announcementService := announcementservice.NewAnnouncementService(announcementRepo, cfg)
	memberService := memberservice.NewMemberService(bookingRepo, userRepo, cfg)
	statsService := adminservice.NewStatsService(courtRepo, userRepo, bookingRepo, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		systemhandler.NewRootHandler(cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentService, cfg.Log),
		couponhandler.NewCouponHandler(couponService, cfg.Log),
		userhandler.NewUserHandler(userService, cfg.Log),
		courthandler.NewCourtHandler(courtService, cfg.Log),
		announcementhandler.NewAnnouncementHandler(announcementService, cfg.Log),
		memberhandler.NewMemberHandler(memberService, cfg.Log),
		adminhandler.NewStatsHandler(statsService, cfg.Log),
	}
}
