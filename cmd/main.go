package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	changeStatusHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/change_status"
	createBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_calendar"
	getCatalogHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_catalog"
	getTodayOrdersHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_today_orders"
	queryAvailabilityHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/query_availability"
	toggleDeliveryHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/toggle_delivery_status"
	toggleRoomCleanHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/toggle_room_clean"
	updateBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/events"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/directory"
	availabilityService "github.com/m04kA/SMC-RoomBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/conflicts"
	createBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_available_slots"
	updateBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/authtoken"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RoomBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load time zone: %v", err)
	}
	slotsConfig, err := cfg.Scheduling.Slots()
	if err != nil {
		log.Fatal("Failed to parse working hours: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Метрики (nil-сборщик ничего не пишет)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище
	store, err := openStorage(cfg.Database, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	// Справочник переговорных и причин
	catalogStore, err := catalog.NewStore(cfg.Catalog.Path, log.With("catalog"))
	if err != nil {
		log.Fatal("Failed to load catalog: %v", err)
	}
	if cfg.Catalog.Watch {
		if err := catalogStore.Watch(ctx); err != nil {
			log.Error("Catalog hot reload disabled: %v", err)
		} else {
			log.Info("Watching catalog %s for changes", cfg.Catalog.Path)
		}
	}

	// Справочник сотрудников и клиентов
	directoryClient := directory.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log.With("directory"),
	)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unavailable at %s, directory cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			directoryClient.UseRedisCache(rdb, time.Duration(cfg.Redis.CacheTTL)*time.Second)
			log.Info("Directory cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
		}
	}
	log.Info("Directory client initialized (url=%s, timeout=%ds)", cfg.Directory.URL, cfg.Directory.Timeout)

	// События
	var publisher interface {
		Publish(ctx context.Context, event *events.BookingEvent) error
	} = events.NoopPublisher{}
	if cfg.NATS.Enabled {
		natsPublisher, err := events.NewPublisher(cfg.NATS.URL, log.With("nats"))
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		defer func() {
			if err := natsPublisher.Close(); err != nil {
				log.Error("Failed to drain NATS connection: %v", err)
			}
		}()
		publisher = natsPublisher
		log.Info("Publishing booking events to %s", cfg.NATS.URL)
	}

	// Сервисы
	detector := conflicts.NewDetector(store.bookings)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		store.orders,
		store.tx,
		publisher,
		metricsCollector,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		store.bookings,
		store.orders,
		directoryClient,
		catalogStore,
		location,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.orders,
		detector,
		catalogStore,
		directoryClient,
		store.tx,
		publisher,
		metricsCollector,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		store.bookings,
		store.orders,
		detector,
		catalogStore,
		directoryClient,
		store.tx,
		publisher,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.bookings,
		catalogStore,
		slotsConfig,
		location,
		log,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	changeStatus := changeStatusHandler.NewHandler(bookingSvc, log)
	toggleRoomClean := toggleRoomCleanHandler.NewHandler(bookingSvc, log)
	toggleDelivery := toggleDeliveryHandler.NewHandler(bookingSvc, log)
	queryAvailability := queryAvailabilityHandler.NewHandler(availabilitySvc, log)
	getCalendar := getCalendarHandler.NewHandler(availabilitySvc, log)
	getTodayOrders := getTodayOrdersHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	getCatalog := getCatalogHandler.NewHandler(catalogStore)

	tokens := authtoken.New(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Все маршруты API требуют JWT сотрудника
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(tokens, log))

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{bookingId}/status", changeStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/room-clean", toggleRoomClean.Handle).Methods(http.MethodPatch)

	// --- Кофе-брейки ---
	api.HandleFunc("/orders/today", getTodayOrders.Handle).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}/delivery", toggleDelivery.Handle).Methods(http.MethodPatch)

	// --- Календарь ---
	api.HandleFunc("/availability", queryAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{room}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
