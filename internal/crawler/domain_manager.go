package crawler

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// DomainManager keeps page fetches polite: one request per interval per
// host, and nothing robots.txt disallows for our user agent.
type DomainManager struct {
	mu          sync.Mutex
	interval    time.Duration
	userAgent   string
	robots      bool
	client      *http.Client
	limiters    map[string]*rate.Limiter
	robotsCache map[string]*robotstxt.Group
	logger      *log.Logger
}

// NewDomainManager returns a manager that idles interval between requests
// to the same host. With robots false robots.txt is not consulted.
func NewDomainManager(interval time.Duration, userAgent string, robots bool, client *http.Client, logger *log.Logger) *DomainManager {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &DomainManager{
		interval:    interval,
		userAgent:   userAgent,
		robots:      robots,
		client:      client,
		limiters:    make(map[string]*rate.Limiter),
		robotsCache: make(map[string]*robotstxt.Group),
		logger:      logger,
	}
}

// Wait blocks until a request to targetURL's host may be issued.
func (d *DomainManager) Wait(ctx context.Context, targetURL string) error {
	u, err := url.Parse(targetURL)
	if err != nil {
		return err
	}

	d.mu.Lock()
	limiter, exists := d.limiters[u.Host]
	if !exists {
		limit := rate.Inf
		if d.interval > 0 {
			limit = rate.Every(d.interval)
		}
		// Burst 1: the first request goes out at once, the next waits.
		limiter = rate.NewLimiter(limit, 1)
		d.limiters[u.Host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// IsAllowed reports whether robots.txt of link's host permits link.
// A missing or unreadable robots.txt allows everything.
func (d *DomainManager) IsAllowed(ctx context.Context, link string) bool {
	if !d.robots {
		return true
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	group, exists := d.robotsCache[u.Host]
	if !exists {
		group = d.fetchRobots(ctx, u)
		d.robotsCache[u.Host] = group
	}
	if group == nil {
		return true
	}
	return group.Test(u.Path)
}

func (d *DomainManager) fetchRobots(ctx context.Context, u *url.URL) *robotstxt.Group {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Debug("robots.txt unavailable", "host", u.Host, "err", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		d.logger.Warn("unreadable robots.txt", "host", u.Host, "err", err)
		return nil
	}
	return data.FindGroup(d.userAgent)
}
