package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"golang.org/x/sync/errgroup"

	httpadapter "doorhop/internal/adapter/http"
	"doorhop/internal/adapter/metrics"
	metricsinmem "doorhop/internal/adapter/metrics/inmemory"
	"doorhop/internal/adapter/metrics/prom"
	"doorhop/internal/adapter/random"
	gormrepo "doorhop/internal/adapter/repo/gorm"
	"doorhop/internal/adapter/repo/memory"
	tuningloader "doorhop/internal/adapter/tuning"
	"doorhop/internal/app/auth"
	"doorhop/internal/app/decor"
	"doorhop/internal/app/matchmaking"
	"doorhop/internal/app/ports"
	"doorhop/internal/app/provision"
	"doorhop/internal/app/shared/txrun"
	"doorhop/internal/app/social"
	"doorhop/internal/app/status"
	"doorhop/internal/app/unpack"
	"doorhop/internal/domain/world"
	"doorhop/migrations"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	tuning, err := tuningloader.Load(cfg.TuningPath)
	if err != nil {
		return err
	}

	repos, tx, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}

	kpi := metricsinmem.NewRecorder()
	var recorder ports.HandlerMetrics = kpi
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		pm := prom.New()
		recorder = metrics.Multi{kpi, pm}
		metricsSrv = newMetricsServer(cfg.MetricsAddr, pm.Handler())
	}

	src := random.NewSource()
	if cfg.RandomSeed != 0 {
		src = random.NewSeeded(cfg.RandomSeed)
		logger.Warn("using fixed random seed", "seed", cfg.RandomSeed)
	}

	h := newHandler(deps{
		Repos:   repos,
		Tx:      tx,
		Metrics: recorder,
		KPI:     kpi,
		Random:  src,
		Tuning:  tuning,
		Logger:  logger,
	})
	h.AllowOrigin = cfg.CORSOrigin

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("doorhop server listening", "addr", cfg.Addr, "economy", tuning.Economy, "store", storeName(cfg))
		s.Spin()
		stop()
		return nil
	})
	if metricsSrv != nil {
		g.Go(func() error {
			logger.Info("metrics listening", "addr", metricsSrv.Addr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics listener: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			if ctx.Err() == nil {
				// the metrics listener failed while the game server is still up
				_ = s.Shutdown(context.Background())
			}
			return metricsSrv.Shutdown(context.Background())
		})
	}
	return g.Wait()
}

// buildStore picks Postgres when a DSN is configured and the in-memory store otherwise.
func buildStore(ctx context.Context, cfg Config) (ports.Repositories, ports.TxManager, error) {
	if cfg.DBDSN == "" {
		store := memory.NewStore()
		return memory.NewRepositories(store), memory.NewTxManager(store), nil
	}

	db, err := gormrepo.OpenPostgres(cfg.DBDSN)
	if err != nil {
		return ports.Repositories{}, nil, err
	}
	if cfg.AutoMigrate {
		var schema fs.FS = migrations.FS
		if cfg.MigrationsDir != "" {
			schema = os.DirFS(cfg.MigrationsDir)
		}
		if err := gormrepo.ApplyMigrations(ctx, db, schema); err != nil {
			return ports.Repositories{}, nil, err
		}
	}
	return gormrepo.NewRepositories(db), gormrepo.NewTxManager(db), nil
}

func storeName(cfg Config) string {
	if cfg.DBDSN == "" {
		return "memory"
	}
	return "postgres"
}

type deps struct {
	Repos   ports.Repositories
	Tx      ports.TxManager
	Metrics ports.HandlerMetrics
	KPI     *metricsinmem.Recorder
	Random  ports.RandomSource
	Tuning  world.Tuning
	Logger  *slog.Logger
}

func newHandler(d deps) httpadapter.Handler {
	runner := txrun.Runner{Tx: d.Tx, Metrics: d.Metrics, Attempts: d.Tuning.MatchAttempts}
	prov := provision.UseCase{Runner: runner, Repos: d.Repos, Random: d.Random, Tuning: d.Tuning, Logger: d.Logger}

	h := httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{
			Credentials: d.Repos.Credentials,
			Provision:   prov,
			Runner:      runner,
			Random:      d.Random,
			Now:         time.Now,
		},
		AuthUC:    auth.VerifyUseCase{Credentials: d.Repos.Credentials},
		ConnectUC: prov,
		StatusUC:  status.UseCase{Runner: runner, Repos: d.Repos, Tuning: d.Tuning},
		EnterUC:   matchmaking.UseCase{Runner: runner, Repos: d.Repos, Random: d.Random, Tuning: d.Tuning, Logger: d.Logger},
		DecorUC:   decor.UseCase{Runner: runner, Repos: d.Repos, Random: d.Random, Tuning: d.Tuning, Logger: d.Logger, Now: time.Now},
		LikeUC:    social.UseCase{Runner: runner, Repos: d.Repos, Logger: d.Logger},
		UnpackUC:  unpack.UseCase{Runner: runner, Repos: d.Repos, Logger: d.Logger},
	}
	if d.KPI != nil {
		h.KPI = d.KPI
	}
	return h
}

func newMetricsServer(addr string, handler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}
