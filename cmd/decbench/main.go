// Command decbench drives a randomized decimal workload across a worker
// pool and reports throughput through OpenTelemetry metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
	apimetric "go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"

	"github.com/coachpo/pgnumeric/aggregate"
	"github.com/coachpo/pgnumeric/config"
	"github.com/coachpo/pgnumeric/lib/async"
	"github.com/coachpo/pgnumeric/lib/telemetry"
	"github.com/coachpo/pgnumeric/numeric"
)

const (
	loggerPrefix             = "decbench "
	telemetryShutdownTimeout = 5 * time.Second
	poolShutdownTimeout      = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "Optional YAML settings file")
		workers    = flag.Int("workers", 0, "Worker count (overrides config)")
		operations = flag.Int("ops", 0, "Total operations across all workers (overrides config)")
		rps        = flag.Float64("rate", -1, "Operations per second limit, 0 disables (overrides config)")
		burst      = flag.Int("burst", 0, "Rate limiter burst size (overrides config)")
		seed       = flag.Int64("seed", 0, "Workload seed, 0 derives one from the clock")
		endpoint   = flag.String("otlp", "", "OTLP metrics endpoint (overrides config)")
	)
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}
	cfg = config.Apply(cfg,
		config.WithBenchWorkers(*workers),
		config.WithBenchOperations(*operations),
		config.WithTelemetryEndpoint(*endpoint, ""),
	)
	if *rps >= 0 {
		cfg = config.Apply(cfg, config.WithBenchRate(*rps, *burst))
	}
	if *seed != 0 {
		cfg.Bench.Seed = *seed
	}
	if cfg.Bench.Seed == 0 {
		cfg.Bench.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(os.Stdout, loggerPrefix, log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initialise telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Printf("telemetry shutdown: %v", err)
		}
	}()

	runID := uuid.NewString()
	logger.Printf("run %s: workers=%d ops=%d rate=%g seed=%d int128=%v",
		runID, cfg.Bench.Workers, cfg.Bench.Operations, cfg.Bench.RatePerSec,
		cfg.Bench.Seed, cfg.Aggregate.Int128FastPath)

	report, err := bench(ctx, cfg, providers, runID, logger)
	if err != nil {
		return err
	}
	logger.Printf("run %s: %s", runID, report)
	return nil
}

type metrics struct {
	ops      apimetric.Int64Counter
	duration apimetric.Float64Histogram
	attrs    apimetric.MeasurementOption
}

func newMetrics(providers telemetry.Providers, runID string) (metrics, error) {
	meter := providers.Meter("decbench")
	ops, err := meter.Int64Counter("pgnumeric.bench.operations",
		apimetric.WithDescription("Completed numeric operations"))
	if err != nil {
		return metrics{}, fmt.Errorf("operations counter: %w", err)
	}
	duration, err := meter.Float64Histogram("pgnumeric.bench.batch_duration_ms",
		apimetric.WithDescription("Per-worker batch duration"),
		apimetric.WithUnit("ms"))
	if err != nil {
		return metrics{}, fmt.Errorf("duration histogram: %w", err)
	}
	return metrics{
		ops:      ops,
		duration: duration,
		attrs:    apimetric.WithAttributes(attribute.String("run_id", runID)),
	}, nil
}

// bench shards the configured operation count across pool workers. Every
// worker owns one aggregate state; the shards meet only through the binary
// serialization and Combine, the same way parallel query workers do.
func bench(ctx context.Context, cfg config.Settings, providers telemetry.Providers, runID string, logger *log.Logger) (string, error) {
	m, err := newMetrics(providers, runID)
	if err != nil {
		return "", err
	}

	var limiter *rate.Limiter
	if cfg.Bench.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Bench.RatePerSec), cfg.Bench.Burst)
	}

	workers := cfg.Bench.Workers
	pool, err := async.NewPool(workers, workers)
	if err != nil {
		return "", err
	}

	partials := make([][]byte, workers)
	var completed atomic.Int64

	var lifecycle conc.WaitGroup
	reporterCtx, stopReporter := context.WithCancel(ctx)
	lifecycle.Go(func() {
		ticker := time.NewTicker(cfg.Bench.ReportEvery)
		defer ticker.Stop()
		for {
			select {
			case <-reporterCtx.Done():
				return
			case <-ticker.C:
				logger.Printf("run %s: %d operations completed", runID, completed.Load())
			}
		}
	})

	perWorker := cfg.Bench.Operations / workers
	for i := 0; i < workers; i++ {
		shard := i
		count := perWorker
		if shard == workers-1 {
			count += cfg.Bench.Operations % workers
		}
		err := pool.SubmitWait(ctx, func(taskCtx context.Context) error {
			data, err := workerBatch(taskCtx, cfg, shard, count, limiter, m, &completed)
			if err != nil {
				return err
			}
			partials[shard] = data
			return nil
		})
		if err != nil {
			pool.Close()
			stopReporter()
			lifecycle.Wait()
			return "", err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), poolShutdownTimeout)
	defer cancel()
	shutdownErr := pool.Shutdown(shutdownCtx)
	stopReporter()
	lifecycle.Wait()
	if shutdownErr != nil {
		return "", shutdownErr
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Recombine the shards exactly as a parallel aggregate gather node would:
	// deserialize every partial state and merge it into the first.
	var total aggregate.State
	for shard, data := range partials {
		if data == nil {
			return "", fmt.Errorf("shard %d produced no partial state", shard)
		}
		var st aggregate.State
		if err := st.UnmarshalBinary(data); err != nil {
			return "", fmt.Errorf("decode shard %d: %w", shard, err)
		}
		total.Combine(&st)
	}
	sum, err := total.Sum()
	if err != nil {
		return "", err
	}
	avg, err := total.Avg()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("count=%d sum=%s avg=%s", total.Count(), sum, avg), nil
}

// workerBatch runs one shard of the workload: random literals are parsed,
// pushed through an operation mix, and folded into a private accumulator
// whose serialized form is the batch result.
func workerBatch(ctx context.Context, cfg config.Settings, shard, count int, limiter *rate.Limiter, m metrics, completed *atomic.Int64) ([]byte, error) {
	rng := rand.New(rand.NewSource(cfg.Bench.Seed + int64(shard)))
	var st aggregate.State
	start := time.Now()
	for i := 0; i < count; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("shard %d rate wait: %w", shard, err)
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}

		v, err := randomValue(rng)
		if err != nil {
			return nil, fmt.Errorf("shard %d value: %w", shard, err)
		}
		if err := st.Add(v); err != nil {
			return nil, fmt.Errorf("shard %d accumulate: %w", shard, err)
		}
		m.ops.Add(ctx, 1, m.attrs)
		completed.Add(1)
	}
	m.duration.Record(ctx, float64(time.Since(start))/float64(time.Millisecond), m.attrs)
	return st.MarshalBinary()
}

// randomValue mixes parse, multiply, divide and sqrt so the batch exercises
// more of the engine than plain accumulation would.
func randomValue(rng *rand.Rand) (numeric.Numeric, error) {
	units := rng.Int63n(2_000_000_000) - 1_000_000_000
	scale := rng.Intn(5)
	lit := strconv.FormatInt(units, 10)
	if scale > 0 {
		neg := strings.HasPrefix(lit, "-")
		digits := strings.TrimPrefix(lit, "-")
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		dot := len(digits) - scale
		lit = digits[:dot] + "." + digits[dot:]
		if neg {
			lit = "-" + lit
		}
	}
	v, err := numeric.Parse(lit)
	if err != nil {
		return numeric.Numeric{}, err
	}
	switch rng.Intn(4) {
	case 0:
		return v.Mul(numeric.FromInt64(int64(rng.Intn(99) + 1)))
	case 1:
		return v.DivScale(numeric.FromInt64(int64(rng.Intn(99)+1)), 8, true)
	case 2:
		root, err := v.Abs().SqrtToScale(6)
		if err != nil {
			return numeric.Numeric{}, err
		}
		if v.Sign() < 0 {
			root = root.Neg()
		}
		return root, nil
	default:
		return v, nil
	}
}
