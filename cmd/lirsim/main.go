// Command lirsim replays a block-reference trace through the LIRS
// engine and reports hit/miss statistics, optionally exposing live
// Prometheus metrics and pprof endpoints while it runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/traustis/lirsim/lirs"
	pmet "github.com/traustis/lirsim/metrics/prom"
	"github.com/traustis/lirsim/stats"
	"github.com/traustis/lirsim/trace"
)

const usage = `usage: %s [options]
  -i <traceFile>         trace file path
  -s <cacheSize>         cache size in number of blocks (>= 200)
  -f <sizeLimitFactor>   size limit factor on S list (>= 1.0)
  -r <hirPercent>        HIR resident percentage of cache size (1..100)
  -a                     read trace in ascii mode (default is binary)
  -metrics <addr>        serve Prometheus metrics at addr (empty = disabled)
  -pprof <addr>          serve pprof at addr (empty = disabled)
  -json                  print the final report as JSON
  -h                     print this message (help)
`

// config holds the validated CLI configuration (§6.3).
type config struct {
	traceFile       string
	cacheSize       int
	sizeLimitFactor float64
	hirPercent      int
	ascii           bool
	metricsAddr     string
	pprofAddr       string
	json            bool
}

func main() {
	if err := run(os.Args[0], os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(appName string, args []string, stdout *os.File) error {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprintf(os.Stderr, usage, appName) }

	cfg := config{sizeLimitFactor: 2.0, hirPercent: 1}
	fs.StringVar(&cfg.traceFile, "i", "", "trace file path")
	fs.IntVar(&cfg.cacheSize, "s", 0, "cache size in number of blocks")
	fs.Float64Var(&cfg.sizeLimitFactor, "f", cfg.sizeLimitFactor, "size limit factor on S list")
	fs.IntVar(&cfg.hirPercent, "r", cfg.hirPercent, "HIR resident percentage of cache size")
	fs.BoolVar(&cfg.ascii, "a", false, "read trace in ascii mode")
	fs.StringVar(&cfg.metricsAddr, "metrics", "", "serve Prometheus metrics at addr")
	fs.StringVar(&cfg.pprofAddr, "pprof", "", "serve pprof at addr")
	fs.BoolVar(&cfg.json, "json", false, "print the final report as JSON")
	help := fs.Bool("h", false, "print this message")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *help {
		fs.Usage()
		return nil
	}
	if err := validateConfig(cfg); err != nil {
		fs.Usage()
		return err
	}

	f, err := os.Open(cfg.traceFile)
	if err != nil {
		return fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()

	engine, err := lirs.New(cfg.cacheSize, cfg.sizeLimitFactor, cfg.hirPercent)
	if err != nil {
		return err
	}

	if cfg.pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", cfg.pprofAddr)
			log.Println(http.ListenAndServe(cfg.pprofAddr, nil))
		}()
	}
	if cfg.metricsAddr != "" {
		m := pmet.New(nil, "lirsim", "engine", nil)
		engine.SetMetrics(m)
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", cfg.metricsAddr)
			log.Println(http.ListenAndServe(cfg.metricsAddr, nil))
		}()
	}

	var reader trace.Reader
	if cfg.ascii {
		reader = trace.NewTextReader(f)
	} else {
		reader = trace.NewBinaryReader(f)
	}

	if err := replay(engine, reader); err != nil {
		return err
	}

	s := engine.Stats()
	if cfg.json {
		return stats.RenderJSON(stdout, s)
	}
	return stats.Render(stdout, s)
}

// replay feeds every reference from r into engine, and runs a periodic
// progress logger alongside it under one cancellable errgroup. Engine
// is not safe for concurrent use (lirs.Engine's own contract), so only
// the replay goroutine ever calls into it; progress is handed to the
// logger goroutine as a Stats snapshot over a channel instead of the
// logger reading the engine directly. The replay loop cancels the
// group's context as soon as the trace is exhausted, which stops the
// progress logger too.
func replay(engine *lirs.Engine, r trace.Reader) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	snapshots := make(chan lirs.Stats, 1)

	g.Go(func() error {
		defer cancel()
		defer close(snapshots)

		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		for {
			key, ok, err := r.Next()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			engine.ProcessReference(key)

			select {
			case <-ticker.C:
				select {
				case snapshots <- engine.Stats():
				default: // logger hasn't drained the last one yet
				}
			default:
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case s, ok := <-snapshots:
				if !ok {
					return nil
				}
				log.Printf("progress: refs=%d misses=%d hit-rate=%.3f%%",
					s.Refs, s.Misses, s.HitRate)
			}
		}
	})

	return g.Wait()
}

// validateConfig enforces the bounds in §6.3/§7: invalid or missing
// arguments are a ConfigError, reported before the engine is built.
func validateConfig(cfg config) error {
	if cfg.traceFile == "" {
		return errors.New("please provide a trace file (-i)")
	}
	if cfg.sizeLimitFactor < 1.0 {
		return fmt.Errorf("please provide a stack factor >= %.1f", 1.0)
	}
	if cfg.cacheSize < lirs.MinCacheSize {
		return fmt.Errorf("please provide a cache size >= %d", lirs.MinCacheSize)
	}
	if cfg.hirPercent < 1 || cfg.hirPercent > 100 {
		return errors.New("please provide a HIR percent value in [1,100]")
	}
	return nil
}
