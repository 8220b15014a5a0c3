// Command hydradns runs the authoritative DNS reactor: dns_server <file.json>.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jroosing/hydradns/internal/config"
	"github.com/jroosing/hydradns/internal/logging"
	"github.com/jroosing/hydradns/internal/querylog"
	"github.com/jroosing/hydradns/internal/reactor"
	"github.com/jroosing/hydradns/internal/statusapi"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: dns_server <file.json>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	})
	sink := logging.NewSlogSink(logger)

	table, err := config.BuildTable(cfg)
	if err != nil {
		return err
	}

	r, err := reactor.New(cfg.IP, cfg.Port, table, sink)
	if err != nil {
		return fmt.Errorf("starting reactor: %w", err)
	}

	if cfg.QueryLog.Enabled {
		db, err := querylog.Open(cfg.QueryLog.Path)
		if err != nil {
			return fmt.Errorf("opening query log: %w", err)
		}
		qlog := querylog.NewSink(db, sink)
		defer qlog.Close()
		r.QueryLog = qlog
	}

	var statusSrv *statusapi.Server
	if cfg.StatusAPI.Enabled {
		statusSrv = statusapi.New(cfg.StatusAPI.Host, cfg.StatusAPI.Port, r, sink)
		go func() {
			if err := statusSrv.ListenAndServe(); err != nil {
				logger.Error("status api server error", "err", err)
			}
		}()
	}

	logger.Info("dns reactor listening", "ip", cfg.IP, "port", cfg.Port, "instance_id", r.InstanceID)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go r.Start()
	go func() {
		<-ctx.Done()
		r.Shutdown()
	}()
	r.Join()

	if statusSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = statusSrv.Shutdown(shutdownCtx)
	}

	logger.Info("dns reactor stopped")
	return nil
}
