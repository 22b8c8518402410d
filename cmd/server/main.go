package main

import (
	"context"
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"sector_dashboard/internal/app/di"
	"sector_dashboard/internal/app/router"
	favoritesadapters "sector_dashboard/internal/feature/favorites/adapters"
	favoriteshandler "sector_dashboard/internal/feature/favorites/transport/handler"
	favoritesusecase "sector_dashboard/internal/feature/favorites/usecase"
	quoteshandler "sector_dashboard/internal/feature/quotes/transport/handler"
	quotesusecase "sector_dashboard/internal/feature/quotes/usecase"
	refreshhandler "sector_dashboard/internal/feature/refresh/transport/handler"
	sectorshandler "sector_dashboard/internal/feature/sectors/transport/handler"
	sectorsusecase "sector_dashboard/internal/feature/sectors/usecase"
	platformdb "sector_dashboard/internal/platform/db"
	platformredis "sector_dashboard/internal/platform/redis"
)

func main() {
	// Favorites DB (SQLite file unless FAVORITES_DSN points at Postgres)
	db := platformdb.OpenDB()

	// Redis result cache; the app runs fine without it
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Using in-process cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}
	store := di.NewCacheStore(rdb)

	// Quote pipeline
	source := di.NewQuoteSource()
	quotesUC := quotesusecase.NewQuotesUsecase(source, store)
	sectorsUC := sectorsusecase.NewSectorsUsecase(quotesUC, di.NewCatalog(), store)

	// Scheduler: cold load now, warm ticks until shutdown
	scheduler := di.NewScheduler(sectorsUC, store)
	if err := scheduler.Start(context.Background()); err != nil {
		slog.Error("initial aggregation failed, dashboard starts empty", "error", err)
	}
	defer scheduler.Stop()

	// Favorites
	favRepo := favoritesadapters.NewFavoriteRepository(db)
	favUC := favoritesusecase.NewFavoritesUsecase(favRepo)

	// Handlers
	quotesH := quoteshandler.NewQuotesHandler(quotesUC)
	sectorsH := sectorshandler.NewSectorsHandler(sectorsUC)
	dashboardH := refreshhandler.NewDashboardHandler(scheduler)
	favoritesH := favoriteshandler.NewFavoritesHandler(favUC)

	r := router.NewRouter(quotesH, sectorsH, dashboardH, favoritesH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
