package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"timetable-go/internal/config"
	"timetable-go/internal/scraper"
)

func main() {
	cfgPath := flag.String("config", "", "department YAML file (built-in table when empty)")
	only    := flag.String("departments", "", "comma-separated departments to scrape (default all)")
	out     := flag.String("out", "", "directory for timetable_<dept>.json (overrides config)")
	workers := flag.Int("workers", 0, "parallel departments (overrides config)")
	metrics := flag.String("metrics", "", "metrics listen address, e.g. :2112 (overrides config)")
	verbose := flag.Bool("v", false, "debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *metrics != "" {
		cfg.MetricsAddr = *metrics
	}

	var names []string
	for _, n := range strings.Split(*only, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := scraper.Options{
		Config: cfg,
		Only:   names,
		Logger: logger,
	}
	if err := scraper.Run(ctx, opts); err != nil {
		stop()
		log.Fatal(err)
	}
}
