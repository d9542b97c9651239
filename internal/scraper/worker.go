package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"timetable-go/internal/config"
	"timetable-go/internal/engine"
	"timetable-go/internal/hostman"
	"timetable-go/internal/metrics"
	"timetable-go/internal/registry"
	"timetable-go/internal/storage"
)

// worker holds what every department scrape of one run shares.
type worker struct {
	cfg    *config.Config
	client *http.Client
	hosts  *hostman.Manager
	sinks  []storage.Sink
	runID  string
	now    func() time.Time
	log    *slog.Logger
}

// scrape handles the whole life-cycle of one department.
func (w *worker) scrape(ctx context.Context, d config.Department) error {
	log := w.log.With("department", d.Name, "url", d.URL)
	fail := func(kind Kind, err error) error {
		metrics.Failures.WithLabelValues(d.Name, string(kind)).Inc()
		log.Error("department failed", "kind", kind, "err", err)
		return &Error{Kind: kind, Department: d.Name, URL: d.URL, Err: err}
	}

	eng, err := engine.New(d)
	if err != nil {
		return fail(KindParse, err)
	}

	body, err := w.fetch(ctx, d)
	if err != nil {
		return fail(KindFetch, err)
	}
	fetchedAt := w.now()

	res, err := eng.Extract(body, d.URL)
	if err != nil {
		return fail(KindParse, err)
	}
	w.record(log, d, res.Report)

	if err := storage.WriteJSON(w.cfg.OutputPath(d), res.Document); err != nil {
		return fail(KindPersist, err)
	}
	metrics.GroupsPublished.WithLabelValues(d.Name).Set(float64(len(res.Document.Groups)))

	added, err := registry.Merge(w.cfg.RegistryPath(d), res.Discovered)
	if err != nil {
		return fail(KindPersist, err)
	}
	metrics.GroupsRegistered.WithLabelValues(d.Name).Add(float64(len(added)))
	if len(added) > 0 {
		log.Info("new groups registered", "groups", added)
	}

	snap := storage.Snapshot{RunID: w.runID, Department: d.Name, FetchedAt: fetchedAt, Document: res.Document}
	var sinkErrs []error
	for _, s := range w.sinks {
		if err := s.Save(ctx, snap); err != nil {
			sinkErrs = append(sinkErrs, err)
		}
	}
	if err := errors.Join(sinkErrs...); err != nil {
		return fail(KindPersist, err)
	}

	log.Info("department published", "groups", len(res.Document.Groups), "path", w.cfg.OutputPath(d))
	return nil
}

// record turns the engine's report into metrics and debug logs.
func (w *worker) record(log *slog.Logger, d config.Department, rep engine.Report) {
	metrics.TablesLocated.WithLabelValues(d.Name).Add(float64(rep.TablesLocated))
	metrics.TablesSkipped.WithLabelValues(d.Name).Add(float64(len(rep.Misses)))
	for shape, n := range rep.Shapes {
		metrics.Cells.WithLabelValues(d.Name, shape.String()).Add(float64(n))
	}

	for _, m := range rep.Misses {
		log.Debug("table skipped", "label", m.Label, "reason", m.Reason)
	}
	if len(rep.Unexpanded) > 0 {
		log.Info("labels kept as group ids", "labels", rep.Unexpanded)
	}
	if rep.RowsDropped > 0 {
		log.Debug("rows dropped", "rows", rep.RowsDropped)
	}
	if len(rep.FreeGroups) > 0 {
		log.Debug("free groups not registered", "groups", rep.FreeGroups)
	}
}

// fetch downloads the department page, honouring robots.txt, the host's
// rate limit and the configured size cap.
func (w *worker) fetch(ctx context.Context, d config.Department) ([]byte, error) {
	u, err := url.Parse(d.URL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	ctx, cancel := context.WithTimeout(ctx, w.cfg.Fetch.Timeout)
	defer cancel()

	allowed, wait := w.hosts.Check(ctx, u)
	if !allowed {
		return nil, fmt.Errorf("disallowed by robots.txt")
	}
	if err := wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", w.cfg.Fetch.UserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	limit := w.cfg.Fetch.MaxBytes
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("page larger than %d bytes", limit)
	}
	metrics.BytesFetched.WithLabelValues(d.Name).Add(float64(len(b)))
	metrics.PagesFetched.WithLabelValues(d.Name).Inc()
	return b, nil
}
