package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metricsinmem "doorhop/internal/adapter/metrics/inmemory"
	"doorhop/internal/adapter/metrics/prom"
	"doorhop/internal/adapter/random"
	"doorhop/internal/app/auth"
	"doorhop/internal/app/matchmaking"
	"doorhop/internal/domain/world"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"DOORHOP_ADDR", "DOORHOP_DB_DSN", "DOORHOP_METRICS_ADDR", "DOORHOP_LOG_LEVEL", "DOORHOP_RANDOM_SEED", "DOORHOP_AUTO_MIGRATE"} {
		t.Setenv(k, "")
	}
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "", cfg.DBDSN)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "memory", storeName(cfg))
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DOORHOP_ADDR", ":9999")
	t.Setenv("DOORHOP_DB_DSN", "  postgres://x  ")
	t.Setenv("DOORHOP_RANDOM_SEED", "42")
	t.Setenv("DOORHOP_AUTO_MIGRATE", "false")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "postgres://x", cfg.DBDSN)
	assert.Equal(t, int64(42), cfg.RandomSeed)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "postgres", storeName(cfg))
}

func TestLoadConfig_RejectsBadSeed(t *testing.T) {
	t.Setenv("DOORHOP_RANDOM_SEED", "not-a-number")
	_, err := loadConfig()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "k=v")

	_, err = newLogger(&buf, "loud")
	assert.Error(t, err)
}

func TestNewHandler_WiresMemoryStore(t *testing.T) {
	repos, tx, err := buildStore(context.Background(), Config{})
	require.NoError(t, err)
	kpi := metricsinmem.NewRecorder()
	h := newHandler(deps{
		Repos:   repos,
		Tx:      tx,
		Metrics: kpi,
		KPI:     kpi,
		Random:  random.NewSeeded(1),
		Tuning:  world.DefaultTuning(),
	})

	reg, err := h.RegisterUC.Execute(context.Background(), auth.RegisterRequest{})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(reg.PlayerID, "plr_"))
	require.NotNil(t, reg.Door)
	require.NoError(t, h.AuthUC.Execute(context.Background(), auth.VerifyRequest{PlayerID: reg.PlayerID, PlayerKey: reg.PlayerKey}))

	entered, err := h.EnterUC.Execute(context.Background(), matchmaking.Request{UserID: world.UserID(reg.PlayerID)})
	require.NoError(t, err)
	assert.Equal(t, 2, entered.DoorNumber)

	snap := kpi.Snapshot()
	assert.Equal(t, uint64(1), snap.ByOp[matchmaking.Op].Success)
}

func TestNewMetricsServer_ServesPrometheus(t *testing.T) {
	pm := prom.New()
	pm.RecordSuccess(matchmaking.Op)
	srv := newMetricsServer(":0", pm.Handler())

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `doorhop_handler_total{op="enter_door",outcome="success"} 1`)

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
