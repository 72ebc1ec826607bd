package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	authHandler "talenthub/internal/auth/handler"
	"talenthub/internal/auth/password"
	authService "talenthub/internal/auth/service"
	userStore "talenthub/internal/auth/store/user"
	"talenthub/internal/auth/token"
	candidateHandler "talenthub/internal/candidate/handler"
	candidateService "talenthub/internal/candidate/service"
	candidateStore "talenthub/internal/candidate/store/candidate"
	companyHandler "talenthub/internal/company/handler"
	companyService "talenthub/internal/company/service"
	companyStore "talenthub/internal/company/store/company"
	jobHandler "talenthub/internal/job/handler"
	jobService "talenthub/internal/job/service"
	jobStore "talenthub/internal/job/store/job"
	"talenthub/internal/platform/config"
	"talenthub/internal/platform/database"
	"talenthub/internal/platform/health"
	"talenthub/internal/platform/logger"
	"talenthub/internal/platform/metrics"
	"talenthub/internal/platform/middleware"
	"talenthub/internal/platform/tracer"
	userHandler "talenthub/internal/user/handler"
	userService "talenthub/internal/user/service"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log.Info("initializing talenthub",
		"addr", cfg.Addr,
		"metrics_addr", cfg.MetricsAddr,
	)

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close() //nolint:errcheck // best-effort cleanup on exit
		if err := pool.Migrate(context.Background()); err != nil {
			log.Error("database migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("database migrations applied")
	}

	var (
		users      authService.UserStore
		directory  userService.Store
		companies  companyService.Store
		candidates candidateService.Store
		jobs       jobService.Store
	)
	if pool != nil {
		db := pool.DB()
		us := userStore.NewPostgres(db)
		users, directory = us, us
		companies = companyStore.NewPostgres(db)
		candidates = candidateStore.NewPostgres(db)
		jobs = jobStore.NewPostgres(db)
		log.Info("using postgres storage")
	} else {
		us := userStore.NewInMemory()
		users, directory = us, us
		companies = companyStore.NewInMemory()
		candidates = candidateStore.NewInMemory()
		jobs = jobStore.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	m := metrics.New()
	trace := tracer.NewOTel()
	hasher := password.New(cfg.BcryptCost)
	tokens := token.New(cfg.JWTSigningKey, cfg.TokenTTL)

	authSvc, err := authService.New(users, hasher, tokens,
		authService.WithLogger(log),
		authService.WithMetrics(m),
		authService.WithTracer(trace),
	)
	if err != nil {
		log.Error("auth service init failed", "error", err)
		os.Exit(1)
	}

	userSvc, err := userService.New(directory, userService.WithLogger(log))
	if err != nil {
		log.Error("user service init failed", "error", err)
		os.Exit(1)
	}

	companySvc, err := companyService.New(companies,
		companyService.WithLogger(log),
		companyService.WithMetrics(m),
	)
	if err != nil {
		log.Error("company service init failed", "error", err)
		os.Exit(1)
	}

	candidateSvc, err := candidateService.New(candidates,
		candidateService.WithLogger(log),
		candidateService.WithMetrics(m),
	)
	if err != nil {
		log.Error("candidate service init failed", "error", err)
		os.Exit(1)
	}

	jobSvc, err := jobService.New(jobs, companySvc,
		jobService.WithLogger(log),
		jobService.WithMetrics(m),
	)
	if err != nil {
		log.Error("job service init failed", "error", err)
		os.Exit(1)
	}

	principal := middleware.RequirePrincipal(tokens, authSvc)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(m))
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(middleware.ContentTypeJSON)

	health.New(pool).Register(router)

	router.Route("/api/v1", func(api chi.Router) {
		authHandler.New(authSvc, log, principal).Register(api)
		userHandler.New(userSvc, authSvc, log, principal).Register(api)
		companyHandler.New(companySvc, log, principal).Register(api)
		candidateHandler.New(candidateSvc, log, principal).Register(api)
		jobHandler.New(jobSvc, log, principal).Register(api)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("starting metrics server", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down servers gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
