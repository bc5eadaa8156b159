package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coachpo/pgnumeric/config"
	"github.com/coachpo/pgnumeric/lib/telemetry"
)

func benchConfig(workers, ops int, seed int64) config.Settings {
	cfg := config.Default()
	cfg.Bench.Workers = workers
	cfg.Bench.Operations = ops
	cfg.Bench.Seed = seed
	return cfg
}

func runBench(t *testing.T, cfg config.Settings) string {
	t.Helper()
	ctx := context.Background()
	providers, shutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	require.NoError(t, err)
	defer func() { require.NoError(t, shutdown(ctx)) }()

	logger := log.New(os.Stderr, loggerPrefix, log.LstdFlags)
	report, err := bench(ctx, cfg, providers, "test-run", logger)
	require.NoError(t, err)
	return report
}

func TestBenchAccumulatesEveryOperation(t *testing.T) {
	report := runBench(t, benchConfig(3, 500, 42))
	require.Contains(t, report, "count=500")
}

func TestBenchDeterministicForFixedSeed(t *testing.T) {
	first := runBench(t, benchConfig(4, 400, 7))
	second := runBench(t, benchConfig(4, 400, 7))
	require.Equal(t, first, second)
}

func TestBenchShardingIndependentOfWorkerCount(t *testing.T) {
	// Shard rngs are seeded from the shard index, so different worker
	// counts see different streams; only the total count is invariant.
	report := runBench(t, benchConfig(1, 250, 99))
	require.Contains(t, report, "count=250")
	report = runBench(t, benchConfig(5, 250, 99))
	require.Contains(t, report, "count=250")
}

func TestRandomValueStaysFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		v, err := randomValue(rng)
		require.NoError(t, err)
		require.True(t, v.IsFinite(), "iteration %d produced %s", i, v)
	}
}
