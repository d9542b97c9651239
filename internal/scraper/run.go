// Package scraper runs the timetable engine over every configured
// department: fetch, extract, publish, archive.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"timetable-go/internal/config"
	"timetable-go/internal/hostman"
	"timetable-go/internal/storage"
)

// Run scrapes the selected departments in parallel. A failing department
// never stops the others; Run returns the joined hard failures.
func Run(ctx context.Context, opts Options) error {
	depts, err := opts.prepare()
	if err != nil {
		return err
	}
	cfg := opts.Config
	runID := uuid.NewString()
	log := opts.Logger.With("run_id", runID)

	if cfg.MetricsAddr != "" {
		stop := serveMetrics(cfg.MetricsAddr, log)
		defer stop()
	}

	sinks, err := openSinks(ctx, cfg, log)
	if err != nil {
		return err
	}
	sinks = append(sinks, opts.Sinks...)
	defer func() {
		for _, s := range sinks {
			if err := s.Close(); err != nil {
				log.Warn("closing sink", "err", err)
			}
		}
	}()

	w := &worker{
		cfg:    cfg,
		client: opts.Client,
		hosts:  hostman.New(opts.Client, cfg.Fetch.UserAgent, cfg.Fetch.RequestsPerHost, cfg.Fetch.RobotsTimeout),
		sinks:  sinks,
		runID:  runID,
		now:    opts.Now,
		log:    log,
	}

	workers := min(cfg.Workers, len(depts))
	jobs := make(chan config.Department)
	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	start := time.Now()
	log.Info("scrape started", "departments", len(depts), "workers", workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range jobs {
				if err := w.scrape(ctx, d); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

dispatch:
	for _, d := range depts {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- d:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	log.Info("scrape finished", "departments", len(depts), "failed", len(errs), "elapsed", time.Since(start))
	return errors.Join(errs...)
}

// openSinks connects the optional MongoDB store and SQLite archive.
func openSinks(ctx context.Context, cfg *config.Config, log *slog.Logger) ([]storage.Sink, error) {
	var sinks []storage.Sink
	if cfg.MongoURI != "" {
		store, err := storage.New(ctx, cfg.MongoURI, cfg.MongoDatabase, true, log)
		if err != nil {
			return nil, fmt.Errorf("connect mongodb: %w", err)
		}
		sinks = append(sinks, store)
	} else {
		log.Debug("mongodb disabled")
	}

	if cfg.ArchivePath != "" {
		archive, err := storage.OpenArchive(ctx, cfg.ArchivePath)
		if err != nil {
			for _, s := range sinks {
				s.Close()
			}
			return nil, fmt.Errorf("open archive: %w", err)
		}
		sinks = append(sinks, archive)
	}
	return sinks, nil
}
