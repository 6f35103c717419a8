package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/sgmobility/taxihotspots/internal/adapters/console"
	"github.com/sgmobility/taxihotspots/internal/adapters/datagovsg"
	"github.com/sgmobility/taxihotspots/internal/adapters/nominatim"
	"github.com/sgmobility/taxihotspots/internal/adapters/onemap"
	"github.com/sgmobility/taxihotspots/internal/adapters/valkey"
	"github.com/sgmobility/taxihotspots/internal/core/ports"
	"github.com/sgmobility/taxihotspots/internal/core/usecases"
	"github.com/sgmobility/taxihotspots/internal/pkg/config"
	"github.com/sgmobility/taxihotspots/internal/pkg/logging"
)

func main() {
	topN := flag.Int("top", 0, "number of areas to report (default from config, 10)")
	year := flag.Int("year", 0, "planning-area dataset year (default from config, 2019)")
	format := flag.String("format", "", "output format: text or json (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Flag overrides
	if *topN > 0 {
		cfg.Report.TopN = *topN
	}
	if *year > 0 {
		cfg.OneMap.Year = *year
	}
	if *format != "" {
		cfg.Report.Format = *format
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()

	// Cache is optional: without it every run refetches everything.
	var cache ports.CacheService
	if cfg.Valkey.Addr != "" {
		vk, err := valkey.New(ctx, cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable, running uncached", "error", err)
		} else {
			defer vk.Close()
			cache = vk
		}
	}

	svc := usecases.NewHotspotService(
		datagovsg.NewClient(cfg.DataGovSG),
		onemap.NewClient(cfg.OneMap),
		nominatim.NewClient(cfg.Nominatim),
		cache,
	)

	report, err := svc.TopAreas(ctx, cfg.Report.TopN)
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	switch cfg.Report.Format {
	case "json":
		err = console.WriteJSON(os.Stdout, report)
	default:
		err = console.WriteText(os.Stdout, report)
	}
	if err != nil {
		slog.Error("write report", "error", err)
		os.Exit(1)
	}
}
