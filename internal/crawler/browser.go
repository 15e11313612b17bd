package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// BrowserSource fetches render endpoint documents through headless
// Chrome, for hosts that refuse plain HTTP clients.
type BrowserSource struct {
	URLs      SearchURLs
	allocCtx  context.Context
	domainMgr *DomainManager
	timeout   time.Duration
	logger    *log.Logger
}

// NewBrowserSource starts a browser allocator bound to parent. The
// returned cancel func shuts the browser down.
func NewBrowserSource(parent context.Context, urls SearchURLs, userAgent string, timeout time.Duration, domainMgr *DomainManager, logger *log.Logger) (*BrowserSource, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserAgent(userAgent))
	allocCtx, cancel := chromedp.NewExecAllocator(parent, opts...)
	return &BrowserSource{
		URLs:      urls,
		allocCtx:  allocCtx,
		domainMgr: domainMgr,
		timeout:   timeout,
		logger:    logger,
	}, cancel
}

func (b *BrowserSource) FetchJSON(ctx context.Context, page int) ([]byte, error) {
	target := b.URLs.Render(page)
	if b.domainMgr != nil {
		if !b.domainMgr.IsAllowed(ctx, target) {
			return nil, fmt.Errorf("%s: %w", target, ErrDisallowed)
		}
		if err := b.domainMgr.Wait(ctx, target); err != nil {
			return nil, err
		}
	}

	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var body string
	start := time.Now()
	err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept": "application/json"}),
		chromedp.Navigate(target),
		chromedp.Text("body", &body, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch %s: %w", target, err)
	}
	b.logger.Debug("fetched with browser", "url", target, "took", time.Since(start))
	return []byte(body), nil
}
