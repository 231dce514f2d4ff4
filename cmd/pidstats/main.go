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
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/spf13/cobra"

	"github.com/ja7ad/pidstats/pkg/metrics"
	"github.com/ja7ad/pidstats/pkg/stats"
	"github.com/ja7ad/pidstats/pkg/system/sampler"
	"github.com/ja7ad/pidstats/pkg/system/util"
	"github.com/ja7ad/pidstats/pkg/types"
)

type opts struct {
	samples     int
	interval    time.Duration
	ema         float64
	jsonOut     bool
	metricsAddr string
}

const _console = "# host: %s | backend: %s | mem: %s | started: %s\n"

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "pidstats [name=PID | PID]...",
		Short: "Per-process CPU and memory sampling service",
		Long: `pidstats polls named processes and reports an instantaneous CPU
percentage (derived from cumulative CPU time deltas), total CPU seconds,
and resident memory. Targets are name=PID pairs; a bare PID gets a
generated name.

Examples:
  pidstats -i 1s worker=$(pidof worker) indexer=$(pidof indexer)
  pidstats --json -s 10 12345
  pidstats --metrics-addr :9105 gateway=4242`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o, args)
		},
	}

	root.Flags().IntVarP(&o.samples, "samples", "s", 0, "number of samples to print (0 = run until Ctrl-C)")
	root.Flags().DurationVarP(&o.interval, "interval", "i", time.Second, "sampling interval (e.g. 1s, 500ms)")
	root.Flags().Float64Var(&o.ema, "ema", 0, "EMA alpha for smoothing displayed CPU percent [0..1], 0 disables")
	root.Flags().BoolVar(&o.jsonOut, "json", false, "print one JSON array per tick instead of a table")
	root.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9105)")

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts, args []string) error {
	targets, err := util.ParseTargets(args)
	if err != nil {
		return err
	}
	if o.interval <= 0 {
		return fmt.Errorf("interval must be > 0")
	}
	if o.ema < 0 || o.ema > 1 {
		return fmt.Errorf("ema must be in [0,1]")
	}

	smp := sampler.New()
	agg := stats.New(&stats.Config{Sampler: smp})

	for name, pid := range targets {
		if pid > 0 && !smp.Alive(pid) {
			slog.Warn("process not running", "name", name, "pid", pid)
		}
	}

	printHostHeader(smp)

	if o.metricsAddr != "" {
		srv := metricsServer(o.metricsAddr, agg, targets)
		defer func() {
			_ = srv.Close()
		}()
	}

	var tw *tabwriter.Writer
	smooth := make(map[string]*util.EMA, len(targets))
	if !o.jsonOut {
		tw = tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tNAME\tPID\tCPU%\tCPU_TIME(s)\tMEM(MB)")
		_ = tw.Flush()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	sampleN := 0
	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted")
			return nil

		case <-ticker.C:
			if o.jsonOut {
				fmt.Println(string(agg.SampleBatchJSON(targets)))
			} else {
				now := time.Now().Format("15:04:05")
				for _, r := range agg.SampleBatch(targets) {
					pct := r.CPUPercent
					if o.ema > 0 {
						e, ok := smooth[r.Name]
						if !ok {
							e = util.NewEMA(o.ema)
							smooth[r.Name] = e
						}
						pct = e.Next(pct)
					}
					fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f\t%.2f\t%.1f\n",
						now, r.Name, targets[r.Name], pct, r.CPUTimeSeconds, r.MemoryMB)
				}
				_ = tw.Flush()
			}

			sampleN++
			if o.samples > 0 && sampleN >= o.samples {
				return nil
			}
		}
	}
}

func printHostHeader(smp sampler.Sampler) {
	host, _ := os.Hostname()
	total := "n/a"
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		total = types.Bytes(vm.Total).Humanized()
	}
	fmt.Printf(_console, host, smp.Platform(), total, time.Now().Format("2006-01-02 15:04:05"))
}

func metricsServer(addr string, agg *stats.Aggregator, targets map[string]int) *http.Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewExporter(agg, func() map[string]int {
		return targets
	}))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		slog.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server", "err", err)
		}
	}()
	return srv
}
