package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog"
	"github.com/marcelsud/webhook-scheduler/config"
	"github.com/marcelsud/webhook-scheduler/internal/http/chi"
	"github.com/marcelsud/webhook-scheduler/metrics"
	"github.com/marcelsud/webhook-scheduler/scheduler"
	"github.com/marcelsud/webhook-scheduler/targets"
	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/marcelsud/webhook-scheduler/webhook/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

/* Wiring only: config -> targets -> history -> invoker -> service -> scheduler + HTTP
 * Imports go one way: the binary imports the domain packages, never the reverse
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}

	logger := httplog.NewLogger("webhook-scheduler", httplog.Options{
		JSON: true,
	})
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	loader := targets.NewLoader(cfg.PrimaryTarget(), cfg.SecondaryTarget())
	if cfg.TargetsFile != "" {
		if err := loader.Load(cfg.TargetsFile); err != nil {
			fmt.Println(err)
			return
		}
	}

	repo := memory.NewRepository(memory.DefaultCapacity)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	exporter, err := metrics.NewOTelExporter(metrics.NewHistoryCollector(repo), registry)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(context.Background())

	invoker := webhook.NewInvoker(repo, nil, exporter, logger)
	s := webhook.NewService(repo, invoker, loader.Primary(), loader.Secondary(), logger)

	sched, err := scheduler.New(s, scheduler.Config{Enabled: cfg.SchedulerEnabled}, logger)
	if err != nil {
		fmt.Println(err)
		return
	}
	sched.Start()

	r := chi.Handlers(ctx, s, sched, exporter.ServeHTTP(), logger)
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout(loader.List()),
		Addr:         ":" + cfg.Port,
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, sched, ctx, errShutdown)
	logger.Info().Str("port", cfg.Port).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

// writeTimeout leaves room for a manual trigger to reach its target timeout
func writeTimeout(all []webhook.Target) time.Duration {
	longest := webhook.DefaultTimeout
	for _, t := range all {
		longest = max(longest, t.Timeout)
	}
	return longest + 10*time.Second
}

func shutdown(server *http.Server, sched *scheduler.Scheduler, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	if err := sched.Stop(ctxTimeout); err != nil {
		fmt.Println(err)
	}

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
