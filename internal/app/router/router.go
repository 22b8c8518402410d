// Package router wires every HTTP endpoint onto one gin engine.
package router

import (
	favoriteshandler "sector_dashboard/internal/feature/favorites/transport/handler"
	quoteshandler "sector_dashboard/internal/feature/quotes/transport/handler"
	refreshhandler "sector_dashboard/internal/feature/refresh/transport/handler"
	sectorshandler "sector_dashboard/internal/feature/sectors/transport/handler"
	"sector_dashboard/internal/platform/http/handler"
	"sector_dashboard/internal/platform/proxy"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the API surface: aggregation endpoints, the
// dashboard snapshot, favorites CRUD and the upstream proxy routes.
func NewRouter(quotes *quoteshandler.QuotesHandler, sectors *sectorshandler.SectorsHandler,
	dashboard *refreshhandler.DashboardHandler, favorites *favoriteshandler.FavoritesHandler) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.HEAD("/health", handler.Health)
		api.OPTIONS("/health", handler.Health)

		api.GET("/quotes", quotes.List)
		api.GET("/sectors", sectors.List)
		api.DELETE("/cache", sectors.ClearCache)

		api.GET("/dashboard", dashboard.Dashboard)
		api.POST("/refresh", dashboard.Refresh)

		api.GET("/favorites", favorites.List)
		api.POST("/favorites", favorites.Add)
		api.DELETE("/favorites", favorites.Clear)
		api.DELETE("/favorites/:symbol", favorites.Remove)
	}

	// Same-origin hops to upstreams that refuse cross-origin browser calls.
	r.Any("/api/sina/*path", proxy.Handler("/api/sina", proxy.SinaUpstream()))
	r.Any("/api/stock/*path", proxy.Handler("/api/stock", proxy.SinaUpstream()))
	r.Any("/api/eastmoney/*path", proxy.Handler("/api/eastmoney", proxy.EastmoneyUpstream()))

	return r
}
