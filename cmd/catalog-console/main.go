package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hexadmin/catalog-console/internal/config"
	"github.com/hexadmin/catalog-console/internal/console"
	"github.com/hexadmin/catalog-console/internal/metrics"
	"github.com/hexadmin/catalog-console/internal/notify"
	"github.com/hexadmin/catalog-console/internal/render"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, metrics.Handler()); err != nil {
				slog.Error("⚠️ Metrics endpoint stopped", slog.String("error", err.Error()))
			}
		}()
	}

	sink := notify.NewLogSink(logger)
	c := console.Build(cfg, sink, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("🚀 Catalog console starting...", slog.String("env", cfg.Env), slog.String("api", cfg.API.BaseURL))

	c.Start(ctx)

	if !c.Authenticated() {
		username := os.Getenv("CATALOG_USERNAME")
		password := os.Getenv("CATALOG_PASSWORD")

		if username == "" || password == "" {
			slog.Error("❌ No session and no credentials; set CATALOG_USERNAME and CATALOG_PASSWORD")
			os.Exit(1)
		}

		if err := c.Login(ctx, username, password); err != nil {
			os.Exit(1)
		}
	}

	products := c.Catalog().Products()
	pagination, _ := c.Catalog().Pagination()

	slog.Info("📦 Product page loaded",
		slog.Int("count", len(products)),
		slog.Int("page", c.Catalog().CurrentPage()),
		slog.Int("total_pages", pagination.TotalPages))

	for _, p := range products {
		slog.Info("Product",
			slog.String("id", p.ID),
			slog.String("title", p.Title),
			slog.String("category", p.Category),
			slog.Float64("price", p.Price),
			slog.Bool("enabled", p.IsEnabled != 0))
	}

	if len(products) > 0 {
		c.OpenDetail(products[0])

		if detail, ok := c.Overlays().Detail(); ok {
			os.Stdout.WriteString(render.Detail(detail).String())
		}

		c.CloseOverlay()
	}
}
