package app

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/bmset"
	"github.com/hupe1980/bmset/resource"
	"github.com/hupe1980/bmset/testutil"
)

type stressConfig struct {
	rangeFlags
	workers     int
	ops         int
	rate        float64
	seed        int64
	hot         int
	outOfRange  float64
	memoryLimit int64
}

func newStressCmd(e *env) *cobra.Command {
	var c stressConfig

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a concurrent random workload against a set",
		Long: `
	Generates a seeded random mix of add, remove and query operations and
	runs it from several goroutines against one set, then reports throughput,
	lock wait times and the final membership count.
	`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd, e, &c)
		},
	}
	c.register(cmd, 0, 1<<16-1, true)
	cmd.Flags().IntVar(&c.workers, "workers", 4, "number of concurrent workers")
	cmd.Flags().IntVar(&c.ops, "ops", 100000, "total number of operations")
	cmd.Flags().Float64Var(&c.rate, "rate", 0, "maximum operations per second across all workers (0 = unlimited)")
	cmd.Flags().Int64Var(&c.seed, "seed", 1, "workload seed")
	cmd.Flags().IntVar(&c.hot, "hot", 0, "concentrate half the values on the first N values of the range")
	cmd.Flags().Float64Var(&c.outOfRange, "out-of-range", 0.01, "share of values outside the range")
	cmd.Flags().Int64Var(&c.memoryLimit, "memory-limit", 0, "memory budget in bytes for the set (0 = unlimited)")

	return cmd
}

func runStress(cmd *cobra.Command, e *env, c *stressConfig) error {
	if c.workers < 1 {
		return fmt.Errorf("invalid --workers %d", c.workers)
	}
	if c.ops < 0 {
		return fmt.Errorf("invalid --ops %d", c.ops)
	}
	if !c.locked && c.workers > 1 {
		return fmt.Errorf("--locked=false requires --workers=1")
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	rc := resource.NewController(resource.Config{MemoryLimitBytes: c.memoryLimit})
	metrics := &bmset.BasicMetricsCollector{}

	opts := append(c.options(),
		bmset.WithResourceController(rc),
		bmset.WithMetricsCollector(metrics),
	)

	s, err := bmset.New(c.min, c.max, opts...)
	e.logger.LogCreate(ctx, c.min, c.max, s, err)
	if err != nil {
		return err
	}

	rng := testutil.NewRNG(c.seed)
	ops := rng.Workload(c.ops, c.min, c.max, testutil.Mix{
		Query:      1,
		Add:        1,
		Remove:     1,
		OutOfRange: c.outOfRange,
		Hot:        c.hot,
	})
	parts := testutil.Partition(ops, c.workers)

	var limiter *rate.Limiter
	if c.rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(c.rate), c.workers)
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w, part := range parts {
		lg := e.logger.WithSet(s).WithWorker(w)
		g.Go(func() error {
			for _, op := range part {
				if limiter != nil {
					if err := limiter.Wait(gctx); err != nil {
						return err
					}
				}

				was, err := applyOp(s, toOp(op.Kind), op.Value)
				switch bmset.StatusOf(err) {
				case bmset.StatusSuccess, bmset.StatusValueRange:
				default:
					lg.LogOperation(gctx, toOp(op.Kind), op.Value, was, err)
					return err
				}
			}
			return nil
		})
	}
	runErr := g.Wait()
	elapsed := time.Since(start)

	members, werr := s.Count()

	stats := metrics.GetStats()
	size := s.SizeInBytes()

	cerr := s.Close()
	e.logger.LogClose(ctx, cerr)

	_, _ = fmt.Fprintf(out, "range:        [%d, %d] (%s values, %s)\n", c.min, c.max, humanize.Comma(int64(s.Len())), humanize.IBytes(size))
	_, _ = fmt.Fprintf(out, "workers:      %d\n", c.workers)
	_, _ = fmt.Fprintf(out, "operations:   %s in %s (%s ops/s)\n",
		humanize.Comma(stats.Operations()), elapsed.Round(time.Millisecond), humanize.Comma(opsPerSec(stats.Operations(), elapsed)))
	_, _ = fmt.Fprintf(out, "  query/add/remove: %s/%s/%s\n",
		humanize.Comma(stats.QueryCount), humanize.Comma(stats.AddCount), humanize.Comma(stats.RemoveCount))
	_, _ = fmt.Fprintf(out, "  range errors:     %s\n", humanize.Comma(stats.ValueRangeErrors))
	_, _ = fmt.Fprintf(out, "  threading errors: %s\n", humanize.Comma(stats.ThreadingErrors))
	if stats.LockWaitCount > 0 {
		_, _ = fmt.Fprintf(out, "lock wait:    avg %s, max %s\n",
			time.Duration(stats.LockWaitAvgNanos), time.Duration(stats.LockWaitMaxNanos))
	}
	_, _ = fmt.Fprintf(out, "members:      %s\n", humanize.Comma(int64(members)))
	_, _ = fmt.Fprintf(out, "peak memory:  %s\n", humanize.IBytes(uint64(rc.PeakMemoryUsage())))

	if runErr != nil {
		return runErr
	}
	if werr != nil {
		return werr
	}
	return cerr
}

func toOp(k testutil.OpKind) bmset.Op {
	switch k {
	case testutil.Add:
		return bmset.OpAdd
	case testutil.Remove:
		return bmset.OpRemove
	default:
		return bmset.OpNone
	}
}

func opsPerSec(n int64, d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(float64(n) / d.Seconds())
}
