package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-resty/resty/v2"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/soleterra-wellness/sw-booking/config"
	"github.com/soleterra-wellness/sw-booking/internal/module/adminapp/report"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/booking"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/loyalty"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/notification"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/pricing"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/promotion"
	"github.com/soleterra-wellness/sw-booking/internal/pkg/jwt"
	internalMiddleware "github.com/soleterra-wellness/sw-booking/internal/pkg/middleware"
	"github.com/soleterra-wellness/sw-booking/internal/pkg/session"
	"github.com/soleterra-wellness/sw-booking/pkg/applogger"
	"github.com/soleterra-wellness/sw-booking/pkg/gctasks"
	"github.com/soleterra-wellness/sw-booking/pkg/kafka"
	"github.com/soleterra-wellness/sw-booking/pkg/middleware"
	"github.com/soleterra-wellness/sw-booking/pkg/monitoring"
	"github.com/soleterra-wellness/sw-booking/pkg/postgresql"
	"github.com/soleterra-wellness/sw-booking/pkg/pubsub"
	"github.com/soleterra-wellness/sw-booking/pkg/redis"
	"github.com/soleterra-wellness/sw-booking/pkg/server"
	"github.com/soleterra-wellness/sw-booking/pkg/validator"
)

var c *config.Config

func init() {
	c = config.Get()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := applogger.GetLogrus()

	mon := monitoring.NewOpenTelemetry(
		c.Application.Name,
		c.Application.Environment,
		c.Monitoring.OTLPEndpoint,
	)

	mon.Start(ctx)

	validate := validator.Get()

	jsonWebToken := jwt.NewJSONWebToken([]byte(c.JWT.PrivateKey), []byte(c.JWT.PublicKey))

	psqldb := postgresql.GetDatabase()
	if err := psqldb.Ping(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	publisher := pubsub.PublisherFromSaramaAsyncProducer(logger, kafka.NewAsyncProducer())

	rc := redis.GetClient()
	if err := rc.Ping(context.Background()).Err(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	cloudTask := gctasks.NewGCTasks(logger, c.GCP.ProjectID, c.GCP.Location, []byte(c.GCP.ServiceAccount))

	sessionStore := session.NewRedisSessionStore(logger, rc)

	customerSessionMiddleware := internalMiddleware.NewCustomerSessionMiddleware(jsonWebToken, sessionStore)
	adminSessionMiddleware := internalMiddleware.NewAdminSessionMiddleware(jsonWebToken, sessionStore)

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(c.Application.Name),
		middleware.HTTPResponseTraceInjection,
		middleware.NewHTTPRequestLogger(logger, c.Application.Debug, http.StatusInternalServerError).Middleware,
	)

	// admin's app
	reportRepo := report.NewReportRepository(logger, psqldb)
	reportUseCase := report.NewReportUseCase(report.ReportUseCaseProperty{
		Logger:           logger,
		Timeout:          c.Application.Timeout,
		ReportRepository: reportRepo,
	})
	report.InitHTTPHandler(router, adminSessionMiddleware, validate, reportUseCase)

	// customer's app
	accountRepo := loyalty.NewAccountRepository(logger, psqldb)
	ledgerRepo := loyalty.NewLedgerRepository(logger, psqldb)
	bookingRepo := booking.NewBookingRepository(logger, psqldb)

	notificationClient := resty.New().SetBaseURL(c.Notification.BaseURL)
	notificationRepo := notification.NewNotificationRepository(logger, notificationClient, c.Notification.APIKey)

	loyaltyUseCase := loyalty.NewLoyaltyUseCase(loyalty.LoyaltyUseCaseProperty{
		Logger:            logger,
		Timeout:           c.Application.Timeout,
		AccountRepository: accountRepo,
		LedgerRepository:  ledgerRepo,
	})
	loyalty.InitHTTPHandler(router, customerSessionMiddleware, loyaltyUseCase)

	pricingUseCase := pricing.NewPricingUseCase(pricing.PricingUseCaseProperty{
		Logger:            logger,
		Timeout:           c.Application.Timeout,
		AccountRepository: accountRepo,
	})
	pricing.InitHTTPHandler(router, customerSessionMiddleware, pricingUseCase)

	promotion.InitHTTPHandler(router)

	bookingUseCase := booking.NewBookingUseCase(booking.BookingUseCaseProperty{
		Logger:                 logger,
		Timeout:                c.Application.Timeout,
		BaseURL:                c.Application.BaseURL,
		ReminderLead:           c.Booking.ReminderLead,
		ReminderQueue:          c.GCP.ReminderQueue,
		ConfirmedTopic:         c.Kafka.ConfirmedTopic,
		CancelledTopic:         c.Kafka.CancelledTopic,
		BookingRepository:      bookingRepo,
		AccountRepository:      accountRepo,
		LedgerRepository:       ledgerRepo,
		NotificationRepository: notificationRepo,
		Publisher:              publisher,
		CloudTask:              cloudTask,
	})
	booking.InitHTTPHandler(router, customerSessionMiddleware, validate, bookingUseCase)

	handler := middleware.SetChain(
		router,
		cors.New(cors.Options{
			AllowedOrigins:   c.CORS.AllowedOrigins,
			AllowedMethods:   c.CORS.AllowedMethods,
			AllowedHeaders:   c.CORS.AllowedHeaders,
			ExposedHeaders:   c.CORS.ExposedHeaders,
			MaxAge:           c.CORS.MaxAge,
			AllowCredentials: c.CORS.AllowCredentials,
		}).Handler,
	)

	srv := &server.Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", c.Application.Port),
			Handler: handler,
		},
		Logger: logger,
	}

	go func() {
		srv.ListenAndServe()
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	srv.Shutdown(ctx)
	publisher.Close()
	cloudTask.Close()
	psqldb.Close()
	rc.Close()
	mon.Stop(ctx)
}
