package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	addUnavailableTimeHandler "github.com/m04kA/bookit/internal/api/handlers/add_unavailable_time"
	createReservationHandler "github.com/m04kA/bookit/internal/api/handlers/create_reservation"
	demoteAdminHandler "github.com/m04kA/bookit/internal/api/handlers/demote_admin"
	getBookingPolicyHandler "github.com/m04kA/bookit/internal/api/handlers/get_booking_policy"
	getProfileHandler "github.com/m04kA/bookit/internal/api/handlers/get_profile"
	getReservationHandler "github.com/m04kA/bookit/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/bookit/internal/api/handlers/get_user_reservations"
	listAdminRequestsHandler "github.com/m04kA/bookit/internal/api/handlers/list_admin_requests"
	listAdminsHandler "github.com/m04kA/bookit/internal/api/handlers/list_admins"
	listReservationsHandler "github.com/m04kA/bookit/internal/api/handlers/list_reservations"
	listUsersHandler "github.com/m04kA/bookit/internal/api/handlers/list_users"
	removeUnavailableTimeHandler "github.com/m04kA/bookit/internal/api/handlers/remove_unavailable_time"
	requestAdminAccessHandler "github.com/m04kA/bookit/internal/api/handlers/request_admin_access"
	resolveAdminRequestHandler "github.com/m04kA/bookit/internal/api/handlers/resolve_admin_request"
	setReservationOutcomeHandler "github.com/m04kA/bookit/internal/api/handlers/set_reservation_outcome"
	updateBookingPolicyHandler "github.com/m04kA/bookit/internal/api/handlers/update_booking_policy"
	updateProfileHandler "github.com/m04kA/bookit/internal/api/handlers/update_profile"
	"github.com/m04kA/bookit/internal/api/middleware"
	"github.com/m04kA/bookit/internal/config"
	"github.com/m04kA/bookit/internal/domain"
	"github.com/m04kA/bookit/internal/integrations/emailapi"
	"github.com/m04kA/bookit/internal/integrations/identity"
	accountService "github.com/m04kA/bookit/internal/service/accounts"
	"github.com/m04kA/bookit/internal/service/notifications"
	policyService "github.com/m04kA/bookit/internal/service/policy"
	reservationService "github.com/m04kA/bookit/internal/service/reservations"
	createReservationUC "github.com/m04kA/bookit/internal/usecase/create_reservation"
	setOutcomeUC "github.com/m04kA/bookit/internal/usecase/set_reservation_outcome"
	"github.com/m04kA/bookit/pkg/logger"
	"github.com/m04kA/bookit/pkg/metrics"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer log.Close()

			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(parent context.Context, cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("Starting bookit (storage=%s)", cfg.Storage.Driver)

	if cfg.Identity.Secret == "" {
		return fmt.Errorf("%w: identity.secret is required to serve", config.ErrInvalidConfig)
	}

	// Инициализируем метрики
	appMetrics := metrics.New(cfg.Metrics.ServiceName)

	// Подключаем хранилище
	store, err := openBackend(ctx, cfg, appMetrics, log)
	if err != nil {
		return err
	}
	defer store.Close()

	callTimeout := cfg.Storage.CallTimeout()

	// Инициализируем уведомления
	dispatcher := notifications.NewDispatcher(newSender(cfg, log), cfg.Email.Timeout(), appMetrics, log)

	// Инициализируем use cases
	createReservation := createReservationUC.NewUseCase(
		store.reservations,
		store.policy,
		store.accounts,
		dispatcher,
		appMetrics,
		createReservationUC.Options{CallTimeout: callTimeout},
		log,
	)
	setOutcome := setOutcomeUC.NewUseCase(
		store.reservations,
		store.accounts,
		dispatcher,
		appMetrics,
		setOutcomeUC.Options{CallTimeout: callTimeout},
		log,
	)

	// Инициализируем сервисы
	reservationSvc := reservationService.NewService(store.reservations, store.accounts, callTimeout, log)
	policySvc := policyService.NewService(store.policy, store.accounts, callTimeout, log)
	accountSvc := accountService.NewService(store.accounts, store.reservations, callTimeout, log)

	// Инициализируем handlers
	createReservationH := createReservationHandler.NewHandler(createReservation, log)
	setReservationOutcomeH := setReservationOutcomeHandler.NewHandler(setOutcome, log)
	listReservationsH := listReservationsHandler.NewHandler(reservationSvc, log)
	getReservationH := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservationsH := getUserReservationsHandler.NewHandler(reservationSvc, log)

	getBookingPolicyH := getBookingPolicyHandler.NewHandler(policySvc, log)
	updateBookingPolicyH := updateBookingPolicyHandler.NewHandler(policySvc, log)
	addUnavailableTimeH := addUnavailableTimeHandler.NewHandler(policySvc, log)
	removeUnavailableTimeH := removeUnavailableTimeHandler.NewHandler(policySvc, log)

	getProfileH := getProfileHandler.NewHandler(accountSvc, log)
	updateProfileH := updateProfileHandler.NewHandler(accountSvc, log)
	requestAdminAccessH := requestAdminAccessHandler.NewHandler(accountSvc, log)
	listAdminRequestsH := listAdminRequestsHandler.NewHandler(accountSvc, log)
	resolveAdminRequestH := resolveAdminRequestHandler.NewHandler(accountSvc, log)
	listAdminsH := listAdminsHandler.NewHandler(accountSvc, log)
	demoteAdminH := demoteAdminHandler.NewHandler(accountSvc, log)
	listUsersH := listUsersHandler.NewHandler(accountSvc, log)

	verifier := identity.NewVerifier(identity.Config{
		Secret:   cfg.Identity.Secret,
		Issuer:   cfg.Identity.Issuer,
		Audience: cfg.Identity.Audience,
		Leeway:   time.Duration(cfg.Identity.LeewaySeconds) * time.Second,
	})

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(appMetrics))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Metrics endpoint enabled at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные эндпоинты
	api.HandleFunc("/booking-policy", getBookingPolicyH.Handle).Methods(http.MethodGet)

	// Защищённые эндпоинты
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(verifier, log))

	var createReservationRoute http.Handler = http.HandlerFunc(createReservationH.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
		createReservationRoute = limiter.Limit(createReservationRoute)
	}

	// Booking policy
	protected.HandleFunc("/booking-policy", updateBookingPolicyH.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/booking-policy/unavailable-times", addUnavailableTimeH.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/booking-policy/unavailable-times/{date}/{time}", removeUnavailableTimeH.Handle).Methods(http.MethodDelete)

	// Reservations
	protected.Handle("/reservations", createReservationRoute).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", listReservationsH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservationH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/outcome", setReservationOutcomeH.Handle).Methods(http.MethodPatch)

	// Profile
	protected.HandleFunc("/me", getProfileH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me", updateProfileH.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/me/reservations", getUserReservationsH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/admin-request", requestAdminAccessH.Handle).Methods(http.MethodPost)

	// Admin
	protected.HandleFunc("/admin/requests", listAdminRequestsH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/requests/{accountId}", resolveAdminRequestH.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/admins", listAdminsH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/admins/{accountId}", demoteAdminH.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/admin/users", listUsersH.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server is running on port %d", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидаем сигнал завершения или ошибку сервера
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited")
	return nil
}

// newSender выбирает транспорт писем: почтовый API или запись в лог
func newSender(cfg *config.Config, log *logger.Logger) notifications.Sender {
	if !cfg.Email.Enabled {
		log.Warn("Email delivery disabled, notifications are written to the log")
		return emailapi.NewLogSender(log)
	}

	templates := make(map[domain.TemplateKind]string, len(cfg.Email.Templates))
	for kind, id := range cfg.Email.Templates {
		templates[domain.TemplateKind(kind)] = id
	}

	return emailapi.NewClient(emailapi.Config{
		Endpoint:    cfg.Email.Endpoint,
		ServiceID:   cfg.Email.ServiceID,
		PublicKey:   cfg.Email.PublicKey,
		AccessToken: cfg.Email.AccessToken,
		Templates:   templates,
	}, cfg.Email.Timeout(), log)
}
