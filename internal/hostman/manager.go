// Package hostman keeps scrapes of department hosts polite: robots.txt is
// honoured and every host gets its own token bucket.
package hostman

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// HostInfo stores the robots policy and limiter for one host.
type HostInfo struct {
	robots  *robotstxt.RobotsData // nil if fetch failed
	limiter *rate.Limiter
}

// Manager holds HostInfo for every department host we touch. Several
// departments may live on one host, so it is shared between workers.
type Manager struct {
	mu        sync.Mutex
	hosts     map[string]*HostInfo
	client    *http.Client
	userAgent string
	rps       float64
	timeout   time.Duration // robots.txt download timeout
}

// New returns a ready Manager. A nil client means http.DefaultClient.
func New(client *http.Client, ua string, rps float64, robotsTimeout time.Duration) *Manager {
	if client == nil {
		client = http.DefaultClient
	}
	return &Manager{
		hosts:     make(map[string]*HostInfo),
		client:    client,
		userAgent: ua,
		rps:       rps,
		timeout:   robotsTimeout,
	}
}

// Check reports whether u may be fetched and returns the wait function of
// the host's token bucket.
func (m *Manager) Check(ctx context.Context, u *url.URL) (bool, func(ctx context.Context) error) {
	h := m.host(ctx, u)

	allowed := true
	if h.robots != nil {
		allowed = h.robots.FindGroup(m.userAgent).Test(u.EscapedPath())
	}
	return allowed, h.limiter.Wait
}

// host returns the HostInfo for u, fetching robots.txt on first contact.
// The lock is held across the fetch so one host is never asked twice.
func (m *Manager) host(ctx context.Context, u *url.URL) *HostInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.hosts[u.Host]; ok {
		return h
	}
	burst := int(m.rps)
	if burst < 1 {
		burst = 1
	}
	h := &HostInfo{
		limiter: rate.NewLimiter(rate.Limit(m.rps), burst),
		robots:  m.fetchRobots(ctx, u.Scheme, u.Host),
	}
	m.hosts[u.Host] = h
	return h
}

func (m *Manager) fetchRobots(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scheme+"://"+host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil // treat as no robots file
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil
	}

	robots, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return robots
}
