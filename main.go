package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appauditlog "github.com/leafcart/storefront/internal/application/auditlog"
	appcart "github.com/leafcart/storefront/internal/application/cart"
	appcatalog "github.com/leafcart/storefront/internal/application/catalog"
	apporder "github.com/leafcart/storefront/internal/application/order"
	appregistration "github.com/leafcart/storefront/internal/application/registration"
	"github.com/leafcart/storefront/internal/config"
	domaccount "github.com/leafcart/storefront/internal/domain/account"
	domactivity "github.com/leafcart/storefront/internal/domain/activity"
	domcatalog "github.com/leafcart/storefront/internal/domain/catalog"
	domcustomer "github.com/leafcart/storefront/internal/domain/customer"
	domorder "github.com/leafcart/storefront/internal/domain/order"
	"github.com/leafcart/storefront/internal/infrastructure/audit"
	"github.com/leafcart/storefront/internal/infrastructure/auth"
	"github.com/leafcart/storefront/internal/infrastructure/id"
	"github.com/leafcart/storefront/internal/infrastructure/memory"
	mongostore "github.com/leafcart/storefront/internal/infrastructure/mongo"
	"github.com/leafcart/storefront/internal/infrastructure/observability/oteltrace"
	"github.com/leafcart/storefront/internal/infrastructure/observability/prometrics"
	"github.com/leafcart/storefront/internal/infrastructure/observability/telemetry"
	"github.com/leafcart/storefront/internal/infrastructure/observability/zaplogger"
	stubpayment "github.com/leafcart/storefront/internal/infrastructure/payment"
	"github.com/leafcart/storefront/internal/observability"
	httppresentation "github.com/leafcart/storefront/internal/presentation/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	baseLogger := zaplogger.New(
		observability.F("service", cfg.Service.Name),
		observability.F("env", cfg.Service.Env),
	)
	systemLogger := baseLogger.With(observability.F("component", "main"))

	registry := prometrics.New(cfg.Service.Name, "")
	counters := map[string]observability.Counter{
		observability.MHTTPRequests: registry.Counter(
			observability.MHTTPRequests, "Total number of HTTP requests.",
			"method", "route", "status",
		),
		observability.MUsecaseRequests: registry.Counter(
			observability.MUsecaseRequests, "Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MActivityAppendFailed: registry.Counter(
			observability.MActivityAppendFailed, "Count of audit append failures.",
			"reason",
		),
		observability.MActivityAppendedTotal: registry.Counter(
			observability.MActivityAppendedTotal, "Count of audit entries appended.",
		),
	}
	histograms := map[string]observability.Histogram{
		observability.MHTTPRequestDuration: registry.Histogram(
			observability.MHTTPRequestDuration, "Duration of HTTP requests in seconds.", nil,
			"method", "route",
		),
		observability.MUsecaseDuration: registry.Histogram(
			observability.MUsecaseDuration, "Duration of use case execution in seconds.", nil,
			"use_case",
		),
	}
	tel := telemetry.New(oteltrace.New("storefront"), baseLogger, counters, histograms)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		productRepo      domcatalog.Repository
		customerRepo     domcustomer.Repository
		manufacturerRepo domaccount.ManufacturerRepository
		userRepo         domaccount.UserRepository
		orderRepo        domorder.Repository
		lineItemRepo     domorder.LineItemRepository
		activityRepo     domactivity.Recorder
	)
	switch cfg.Store.Backend {
	case "mongo":
		db, err := mongostore.Connect(ctx, cfg.Store.URI, cfg.Store.Database, cfg.Store.CredentialPath)
		if err != nil {
			systemLogger.Error("store_connect_failed", observability.F("error", err.Error()))
			os.Exit(1)
		}
		productRepo = mongostore.NewProductRepository(db)
		customerRepo = mongostore.NewCustomerRepository(db)
		manufacturerRepo = mongostore.NewManufacturerRepository(db)
		userRepo = mongostore.NewUserRepository(db)
		orderRepo = mongostore.NewOrderRepository(db)
		lineItemRepo = mongostore.NewLineItemRepository(db)
		activityRepo = mongostore.NewActivityRepository(db)
	default:
		productRepo = memory.NewProductRepository()
		customerRepo = memory.NewCustomerRepository()
		manufacturerRepo = memory.NewManufacturerRepository()
		userRepo = memory.NewUserRepository()
		orderRepo = memory.NewOrderRepository()
		lineItemRepo = memory.NewLineItemRepository()
		activityRepo = memory.NewActivityRepository()
	}

	idGenerator := id.NewUUIDGenerator()

	pipeline := audit.NewPipeline(activityRepo, baseLogger, tel)
	pipeline.Start(ctx)

	activityLogger := appauditlog.NewLogger(pipeline, idGenerator)
	gateway := stubpayment.NewGateway(cfg.Payment.Mode)
	authenticator := auth.NewStubAuthenticator(idGenerator)

	catalogService := appcatalog.NewService(productRepo, idGenerator, activityLogger, baseLogger)
	cartService := appcart.NewService(customerRepo, productRepo, activityLogger, baseLogger)
	orderService := apporder.NewService(orderRepo, lineItemRepo, cartService, gateway, activityLogger, idGenerator, tel)
	registrationService := appregistration.NewService(customerRepo, manufacturerRepo, userRepo, authenticator, activityLogger, idGenerator, baseLogger)

	sessions := httppresentation.NewSessionManager(cfg.Session.SecretKey)
	handler := httppresentation.NewHandler(
		catalogService, cartService, orderService, registrationService,
		sessions, baseLogger, tel,
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: mux,
	}

	go func() {
		systemLogger.Info("http_server_start", observability.F("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error", observability.F("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error", observability.F("error", err.Error()))
	} else {
		systemLogger.Info("http_server_stopped")
	}

	pipeline.Stop(shutdownCtx)
}
