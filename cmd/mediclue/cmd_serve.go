package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/haniscreator/mediclue/internal/adapter"
	"github.com/haniscreator/mediclue/internal/assessment"
	"github.com/haniscreator/mediclue/internal/catalog"
	"github.com/haniscreator/mediclue/internal/config"
	"github.com/haniscreator/mediclue/internal/db"
	"github.com/haniscreator/mediclue/internal/directory"
	"github.com/haniscreator/mediclue/internal/engine"
	"github.com/haniscreator/mediclue/internal/logging"
	"github.com/haniscreator/mediclue/internal/repository"
	"github.com/haniscreator/mediclue/internal/service"
	"github.com/haniscreator/mediclue/internal/session"
)

var serveFlags struct {
	port    string
	migrate bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the JSON API. Settings come from the environment, after loading
an optional .env file. If the database stays unreachable after the startup
retries the API still serves catalog and directory routes; account routes
answer 500 and /readyz reports 503.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.port, "port", "", "Listen port (overrides PORT)")
	f.BoolVar(&serveFlags.migrate, "migrate", true, "Create missing tables on startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	found, err := config.LoadDotEnv()
	if err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg := config.Load()
	if serveFlags.port != "" {
		cfg.Port = serveFlags.port
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	log := logging.New("serve")
	if found {
		log.Info("loaded environment from .env")
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		dbPool repository.DBPool
		ready  func(context.Context) error
	)
	pool, err := createDBPoolWithRetry(ctx, cfg, log)
	if err != nil {
		log.Error("database unavailable; account routes will fail", "error", err)
		stub := unavailablePool{err: errDatabaseUnavailable}
		dbPool = stub
		ready = stub.Ping
	} else {
		defer pool.Close()
		if serveFlags.migrate {
			if err := db.EnsureSchema(ctx, pool); err != nil {
				return err
			}
		}
		dbPool = pool
		ready = pool.Ping
	}

	a := wire(cfg, dbPool, log)
	a.ready = ready

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// wire builds repositories and services over pool.
func wire(cfg config.Config, pool repository.DBPool, log *slog.Logger) *app {
	userRepo := repository.NewUserRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	resultRepo := repository.NewResultRepo(pool)

	cat := catalog.Default()
	scorer := engine.Scorer{}
	if cfg.ExactMatch {
		scorer.Mode = engine.MatchExact
	}
	assessor := assessment.NewAssessor(cat, scorer)
	assessor.Delay = cfg.ScoringDelay

	var remote adapter.HospitalClient
	if cfg.HospitalBase != "" {
		hc, err := adapter.NewHospitalAdapter(cfg.HospitalBase, cfg.HospitalTimeout)
		if err != nil {
			log.Warn("could not create hospital adapter; using embedded directory", "error", err)
		} else {
			remote = hc
		}
	}

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty; protected endpoints will reject every request")
	}

	return &app{
		cfg:         cfg,
		catalog:     cat,
		auth:        service.NewAuthService(userRepo),
		profiles:    service.NewProfileService(profileRepo),
		assessments: service.NewAssessmentService(assessor, session.NewStore(cfg.SessionTTL), resultRepo, profileRepo),
		results:     service.NewResultService(resultRepo),
		hospitals:   service.NewHospitalService(remote, directory.Default(), 0),
		analytics:   repository.NewAnalyticsRepo(pool),
	}
}

// createDBPoolWithRetry retries until the database answers, ctx ends or the
// attempts run out.
func createDBPoolWithRetry(ctx context.Context, cfg config.Config, log *slog.Logger) (*pgxpool.Pool, error) {
	const maxAttempts = 5

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var pool *pgxpool.Pool
		pool, err = db.NewPool(ctx, cfg)
		if err == nil {
			log.Info("database pool created", "attempt", attempt)
			return pool, nil
		}
		log.Warn("database not ready", "attempt", attempt, "max", maxAttempts, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return nil, fmt.Errorf("could not create db pool after %d attempts: %w", maxAttempts, err)
}
