package di

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"sector_dashboard/internal/feature/refresh/usecase"
	sectoradapters "sector_dashboard/internal/feature/sectors/adapters"
	sectorsusecase "sector_dashboard/internal/feature/sectors/usecase"
	"sector_dashboard/internal/platform/cache"
)

// NewCatalog loads the sector tables: the built-in defaults, optionally
// overridden per market by a YAML file named in SECTORS_CONFIG.
func NewCatalog() *sectoradapters.Catalog {
	path := os.Getenv("SECTORS_CONFIG")
	if path == "" {
		return sectoradapters.DefaultCatalog()
	}
	catalog, err := sectoradapters.LoadCatalog(path)
	if err != nil {
		slog.Error("sector config load failed, using defaults", "path", path, "error", err)
		return sectoradapters.DefaultCatalog()
	}
	return catalog
}

// NewScheduler wires the refresh scheduler over the sector aggregation
// pipeline. REFRESH_INTERVAL_SECONDS tunes the warm-tick period.
func NewScheduler(sectors *sectorsusecase.SectorsUsecase, store cache.Store) *usecase.Scheduler {
	interval := usecase.DefaultInterval
	if raw := os.Getenv("REFRESH_INTERVAL_SECONDS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			interval = time.Duration(n) * time.Second
		}
	}
	return usecase.NewScheduler(sectors, store, interval, nil)
}
