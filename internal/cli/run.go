package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/born-ml/xorresilient/internal/config"
	"github.com/born-ml/xorresilient/internal/experiment"
	"github.com/born-ml/xorresilient/internal/report"
)

func newRunCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "train every configured experiment and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd, v)
		},
	}

	cmd.Flags().AddFlagSet(runFlags())
	return cmd
}

func runFlags() *flag.FlagSet {
	flags := flag.NewFlagSet("run", flag.ContinueOnError)
	flags.String("format", string(report.FormatTable), "output format: table or tsv")
	flags.Bool("pad", false, "pad the tsv training log to the epoch limit")
	flags.Int("workers", 1, "experiments trained concurrently")
	flags.Int64("seed", 0, "weight initialization seed (overrides the config)")
	flags.StringSlice("only", nil, "run only these experiments (title or activation name)")
	flags.String("metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
	flags.Bool("calibrate", true, "run a warm-up iteration before timing")
	return flags
}

func run(ctx context.Context, cmd *cobra.Command, v *viper.Viper) error {
	fv, err := config.NewViper(v.GetString("config"))
	if err != nil {
		return err
	}
	cfg, err := config.Load(fv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Defaults.Seed = v.GetInt64("seed")
	}

	cfgs, err := cfg.Build(v.GetStringSlice("only"))
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}
	reporter := &report.Reporter{
		Format: format,
		Pad:    v.GetBool("pad"),
		Color:  !v.GetBool("no-color"),
	}

	suite := &experiment.Suite{
		Workers:         v.GetInt("workers"),
		Calibrate:       v.GetBool("calibrate"),
		CalibrationSeed: cfg.Defaults.Seed,
	}

	addr := v.GetString("metrics-addr")
	if addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		suite.Metrics, err = experiment.NewMetrics(reg)
		if err != nil {
			return err
		}
		srv, bound, err := serveMetrics(addr, reg)
		if err != nil {
			return err
		}
		defer shutdown(srv)
		addr = bound.String()
	}

	log.Infof("running %d experiments with %d workers", len(cfgs), max(suite.Workers, 1))
	results, runErr := suite.Run(ctx, cfgs)

	out := cmd.OutOrStdout()
	var done []*experiment.Result
	for _, res := range results {
		if res == nil {
			continue
		}
		reporter.Training(out, res)
		reporter.Results(out, res)
		done = append(done, res)
	}
	if len(done) > 1 {
		reporter.Summary(out, done)
	}
	if runErr != nil {
		return runErr
	}

	if addr != "" {
		log.Infof("serving metrics on %s until interrupted", addr)
		<-ctx.Done()
	}
	return nil
}

// serveMetrics binds addr and serves reg on /metrics in the background.
func serveMetrics(addr string, reg *prometheus.Registry) (*http.Server, net.Addr, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Errorf("metrics server failed")
		}
	}()
	return srv, ln.Addr(), nil
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("metrics server shutdown")
	}
}
