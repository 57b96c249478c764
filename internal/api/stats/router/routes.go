// Package router đăng ký các route thuộc domain Statistics lên /api/v1/stats.
package router

import (
	"github.com/gofiber/fiber/v3"

	apirouter "my_godfather/internal/api/router"
	statshdl "my_godfather/internal/api/stats/handler"
	statssvc "my_godfather/internal/api/stats/service"
)

// Register đăng ký tất cả route thống kê lên v1: dashboard, alerts, distribution,
// timeseries, activity, export, report và trigger snapshot.
func Register(v1 fiber.Router, service *statssvc.StatsService) {
	h := statshdl.NewStatsHandler(service)

	apirouter.RegisterRouteWithMiddleware(v1, "/stats", "GET", "/dashboard", nil, h.HandleDashboard)
	apirouter.RegisterRouteWithMiddleware(v1, "/stats", "GET", "/alerts", nil, h.HandleAlerts)
	apirouter.RegisterRouteWithMiddleware(v1, "/stats", "GET", "/matching/distribution", nil, h.HandleMatchingDistribution)
	apirouter.RegisterRouteWithMiddleware(v1, "/stats", "GET", "/timeseries", nil, h.HandleTimeSeries)
	apirouter.RegisterRouteWithMiddleware(v1, "/stats", "GET", "/activity", nil, h.HandleActivity)
	apirouter.RegisterRouteWithMiddleware(v1, "/stats", "GET", "/export", nil, h.HandleExport)
	apirouter.RegisterRouteWithMiddleware(v1, "/stats", "GET", "/report", nil, h.HandleReport)
	apirouter.RegisterRouteWithMiddleware(v1, "/stats", "POST", "/snapshot", nil, h.HandleSnapshot)
}
