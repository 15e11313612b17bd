package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"

	"market-crawler/internal/config"
	"market-crawler/internal/crawler"
	"market-crawler/internal/crawler/engine"
	"market-crawler/internal/storage"
	"market-crawler/pkg/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}

	// Flags override the environment (./crawler -pages=5 -size=big -mode=json)
	pages := flag.Int("pages", cfg.Pages, "Number of search pages to fetch")
	size := flag.String("size", cfg.ImageSize, "Image size: small, medium or big")
	mode := flag.String("mode", cfg.Mode, "Extraction mode: markup, tree or json")
	lang := flag.String("lang", cfg.Language, "Storefront language")
	dryRun := flag.Bool("dry-run", false, "Print items instead of storing them")
	progress := flag.Bool("progress", false, "Show a spinner while the run is in progress")
	flag.Parse()

	cfg.Pages, cfg.ImageSize, cfg.Mode, cfg.Language = *pages, *size, *mode, *lang
	if err := cfg.Validate(*dryRun); err != nil {
		log.Fatal("invalid configuration", "err", err, "languages", crawler.Languages())
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	level, _ := log.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *dryRun, *progress, logger); err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dryRun, progress bool, logger *log.Logger) error {
	proc, cleanup := newProcessor(ctx, cfg, logger)
	defer cleanup()

	var sink engine.Sink = engine.WriterSink{W: os.Stdout}
	if !dryRun {
		db, err := storage.Open(ctx, cfg.DatabaseURL, cfg.DBConnectAttempts, cfg.DBConnectDelay, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		store := storage.NewStorage(db, cfg.TablePrefix)
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sink = &storage.ItemSink{Storage: store}
	}

	if progress {
		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = fmt.Sprintf(" fetching %d page(s) in %s mode", cfg.Pages, cfg.Mode)
		s.Start()
		defer s.Stop()
	}

	eng := engine.NewEngine(engine.Config{Pages: cfg.Pages}, proc, sink, logger)
	_, err := eng.Run(ctx)
	return err
}

func newProcessor(ctx context.Context, cfg *config.Config, logger *log.Logger) (engine.Processor, func()) {
	domainMgr := crawler.NewDomainManager(cfg.RateLimit, cfg.UserAgent, cfg.RespectRobots, nil, logger)
	urls := crawler.SearchURLs{BaseURL: cfg.MarketURL, Language: cfg.Language, PerPage: cfg.PageSize}
	httpSource := crawler.NewHTTPSource(urls, cfg.UserAgent, cfg.RequestTimeout, domainMgr, logger)
	prefix := crawler.ListingsPrefix(cfg.MarketURL)
	size := models.ParseSize(cfg.ImageSize)

	switch cfg.Mode {
	case config.ModeJSON:
		proc := &crawler.SearchProcessor{
			Source:    httpSource,
			Extractor: crawler.NewJSONExtractor(cfg.MarketURL, cfg.CDNURL, logger),
			PerPage:   cfg.PageSize,
			Logger:    logger,
		}
		if !cfg.Browser {
			return proc, func() {}
		}
		browser, cancel := crawler.NewBrowserSource(ctx, urls, cfg.UserAgent, cfg.RequestTimeout, domainMgr, logger)
		proc.Source = browser
		return proc, cancel
	case config.ModeTree:
		return &crawler.MarkupProcessor{
			Source:    httpSource,
			Extractor: crawler.NewTreeExtractor(prefix, logger),
			Size:      size,
			Logger:    logger,
		}, func() {}
	default:
		return &crawler.MarkupProcessor{
			Source:     httpSource,
			Extractor:  crawler.NewMarkupExtractor(prefix, logger),
			Attributor: crawler.NewCategoryAttributor(),
			Size:       size,
			Logger:     logger,
		}, func() {}
	}
}
