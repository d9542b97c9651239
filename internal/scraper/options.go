package scraper

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"timetable-go/internal/config"
	"timetable-go/internal/storage"
)

// Options configures one scrape run.
type Options struct {
	Config *config.Config
	Only   []string // department names; empty means every configured one

	Client *http.Client
	Logger *slog.Logger
	Now    func() time.Time

	// Sinks receive every published snapshot in addition to the ones
	// configured through MongoURI and ArchivePath.
	Sinks []storage.Sink
}

// prepare fills defaults and resolves the departments to scrape.
func (o *Options) prepare() ([]config.Department, error) {
	if o.Config == nil {
		return nil, fmt.Errorf("scraper: no configuration")
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: o.Config.Fetch.Timeout}
	}
	if o.Now == nil {
		o.Now = time.Now
	}

	if len(o.Only) == 0 {
		return o.Config.Departments, nil
	}
	depts := make([]config.Department, 0, len(o.Only))
	for _, name := range o.Only {
		d, ok := o.Config.Find(name)
		if !ok {
			return nil, fmt.Errorf("scraper: unknown department %q", name)
		}
		depts = append(depts, d)
	}
	return depts, nil
}
