package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/workouttracker/internal/admin"
	"github.com/2beens/workouttracker/internal/auth"
	"github.com/2beens/workouttracker/internal/config"
	"github.com/2beens/workouttracker/internal/db"
	"github.com/2beens/workouttracker/internal/middleware"
	"github.com/2beens/workouttracker/internal/schema"
	"github.com/2beens/workouttracker/internal/telemetry/metrics"
	"github.com/2beens/workouttracker/internal/telemetry/tracing"
	"github.com/2beens/workouttracker/internal/users"
	"github.com/2beens/workouttracker/internal/web"
	"github.com/2beens/workouttracker/internal/workouts"
	"github.com/2beens/workouttracker/pkg"
)

const (
	// MinSessionSecretLength keeps the cookie HMAC key at 256 bits or more.
	MinSessionSecretLength = 32

	loginSessionsCleanupSpec = "@every 8h"
)

var ErrWeakSessionSecret = fmt.Errorf("session secret must be at least %d bytes", MinSessionSecretLength)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config        *config.Config
	sessionSecret []byte
	loginTTL      time.Duration
	dbPool        *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service
	cron         *cron.Cron

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	SessionSecret           string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	if len(params.SessionSecret) < MinSessionSecretLength {
		return nil, ErrWeakSessionSecret
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	// schema must be current before any request is served
	if err := schema.NewManager(dbPool).Migrate(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("workouttracker", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "workout-tracker")
	if err != nil {
		releaseSetupResources(rdb, dbPool.Close)
		return nil, fmt.Errorf("honeycomb setup: %w", err)
	}

	loginTTL := time.Duration(params.Config.LoginSessionTTLHours) * time.Hour
	authService := auth.NewAuthService(loginTTL, rdb)

	cleanupCron := cron.New()
	if _, err := cleanupCron.AddFunc(loginSessionsCleanupSpec, func() {
		authService.ScanAndClean(ctx)
	}); err != nil {
		otelShutdown()
		releaseSetupResources(rdb, dbPool.Close)
		return nil, fmt.Errorf("schedule login sessions cleanup: %w", err)
	}

	return &Server{
		config:        params.Config,
		sessionSecret: []byte(params.SessionSecret),
		loginTTL:      loginTTL,
		dbPool:        dbPool,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(loginTTL, rdb),
		cron:         cleanupCron,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// releaseSetupResources closes the redis client and the db pool when NewServer fails past them.
func releaseSetupResources(redisClient io.Closer, closeDBPool func()) {
	if err := redisClient.Close(); err != nil {
		log.Errorf("close redis client: %s", err)
	}
	closeDBPool()
}

func (s *Server) routerSetup() (*mux.Router, error) {
	cookies := web.NewCookieStore(s.sessionSecret, s.config.SecureCookies, s.loginTTL)
	renderer, err := web.NewRenderer(cookies)
	if err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}

	usersService := users.NewService(users.NewRepo(s.dbPool))
	workoutsService := workouts.NewService(
		workouts.NewRepo(s.dbPool),
		s.metricsManager,
		s.config.DashboardRecentLimit,
	)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "OK")
	}).Methods("GET").Name("healthz")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(usersService, s.authService, renderer, s.metricsManager)
	r.HandleFunc("/login", authHandler.HandleLoginPage).Methods("GET").Name("login-page")
	r.Handle("/login", middleware.RateLimit(
		reqRateLimiter, s.metricsManager, "login",
		s.config.LoginRateLimitAllowedPerMin, s.config.TrustProxyHeaders,
	)(http.HandlerFunc(authHandler.HandleLogin))).Methods("POST").Name("login")
	r.HandleFunc("/register", authHandler.HandleRegisterPage).Methods("GET").Name("register-page")
	r.Handle("/register", middleware.RateLimit(
		reqRateLimiter, s.metricsManager, "register",
		s.config.LoginRateLimitAllowedPerMin, s.config.TrustProxyHeaders,
	)(http.HandlerFunc(authHandler.HandleRegister))).Methods("POST").Name("register")
	r.HandleFunc("/logout", authHandler.HandleLogout).Methods("GET").Name("logout")

	workoutsHandler := workouts.NewHandler(workoutsService, renderer)
	r.HandleFunc("/", workoutsHandler.HandleDashboard).Methods("GET").Name("dashboard")
	r.HandleFunc("/start_session", workoutsHandler.HandleStartSession).Methods("POST").Name("start-session")
	r.HandleFunc("/end_session", workoutsHandler.HandleEndSession).Methods("POST").Name("end-session")
	r.HandleFunc("/submit", workoutsHandler.HandleSubmit).Methods("POST").Name("submit-workout")
	r.HandleFunc("/exercises/{muscle_group}", workoutsHandler.HandleExercises).Methods("GET").Name("exercises")
	r.HandleFunc("/download_csv", workoutsHandler.HandleDownloadCSV).Methods("GET").Name("download-csv")
	r.HandleFunc("/profile", workoutsHandler.HandleProfile).Methods("GET").Name("profile")

	adminRouter := r.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.RequireAdmin(renderer))
	admin.NewHandler(workoutsService, usersService, renderer, s.config.AdminRecentLimit).SetupRoutes(adminRouter)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker, usersService, cookies)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitAndDrainRequest(middleware.DefaultMaxBodyBytes))

	return r, nil
}

func (s *Server) Serve(host string, port int) error {
	router, err := s.routerSetup()
	if err != nil {
		return fmt.Errorf("setup router: %w", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      otelhttp.NewHandler(router, "workout-tracker"),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.cron.Start()
	s.metricsManager.GaugeLifeSignal.Set(1)

	return nil
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.cron != nil {
		select {
		case <-s.cron.Stop().Done():
			log.Trace("login sessions cleanup stopped")
		case <-ctx.Done():
			log.Warnln("login sessions cleanup still running, not waiting for it")
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
