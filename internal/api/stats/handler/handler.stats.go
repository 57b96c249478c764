// Package statshdl - Handler cho domain Statistics: dashboard, alerts, distribution,
// timeseries, activity, export/report và trigger snapshot thủ công.
package statshdl

import (
	basehdl "my_godfather/internal/api/base/handler"
	statsdto "my_godfather/internal/api/stats/dto"
	statssvc "my_godfather/internal/api/stats/service"
	"my_godfather/internal/common"
	"my_godfather/internal/global"

	"github.com/gofiber/fiber/v3"
)

// StatsHandler xử lý các request thống kê, delegate toàn bộ logic cho StatsService.
type StatsHandler struct {
	StatsService *statssvc.StatsService
}

// NewStatsHandler tạo StatsHandler trên một StatsService đã cấu hình.
func NewStatsHandler(service *statssvc.StatsService) *StatsHandler {
	return &StatsHandler{StatsService: service}
}

// bindStatsQuery parse + validate query chung (period, from, to).
func bindStatsQuery(c fiber.Ctx) (*statsdto.StatsQuery, error) {
	var query statsdto.StatsQuery
	if err := c.Bind().Query(&query); err != nil {
		return nil, common.ErrInvalidInput
	}
	if err := global.Validate.Struct(&query); err != nil {
		return nil, common.ErrInvalidInput
	}
	return &query, nil
}

// HandleDashboard xử lý GET /stats/dashboard — stats + trends + alerts.
// Query: period=day|week|month (mặc định day), from/to=YYYY-MM-DD (thắng period).
func (h *StatsHandler) HandleDashboard(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		query, err := bindStatsQuery(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		start, end, err := h.StatsService.ResolveRange(query.Period, query.From, query.To)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		result, err := h.StatsService.GetDashboard(c.Context(), start, end)
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleAlerts xử lý GET /stats/alerts — danh sách cảnh báo nổ cho range.
func (h *StatsHandler) HandleAlerts(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		query, err := bindStatsQuery(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		start, end, err := h.StatsService.ResolveRange(query.Period, query.From, query.To)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		alerts, err := h.StatsService.GetAlerts(c.Context(), start, end)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, fiber.Map{"alerts": alerts, "count": len(alerts)}, nil)
	})
}

// HandleMatchingDistribution xử lý GET /stats/matching/distribution — histogram
// điểm tương thích theo bucket 10 điểm.
func (h *StatsHandler) HandleMatchingDistribution(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		query, err := bindStatsQuery(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		start, end, err := h.StatsService.ResolveRange(query.Period, query.From, query.To)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		buckets, err := h.StatsService.GetMatchingDistribution(c.Context(), start, end)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, fiber.Map{"buckets": buckets}, nil)
	})
}

// HandleTimeSeries xử lý GET /stats/timeseries — chuỗi giá trị theo ngày.
// Query: metric=sessions|messages|users|feedback|matchings (bắt buộc), period.
func (h *StatsHandler) HandleTimeSeries(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var query statsdto.TimeSeriesQuery
		if err := c.Bind().Query(&query); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
		}
		if err := global.Validate.Struct(&query); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
		}
		series, err := h.StatsService.GetTimeSeries(c.Context(), query.Metric, query.Period)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, fiber.Map{"metric": query.Metric, "series": series}, nil)
	})
}

// HandleActivity xử lý GET /stats/activity — feed hoạt động gần đây có phân trang.
// Query: limit (mặc định 10), offset, type=user|session|matching|message.
func (h *StatsHandler) HandleActivity(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var query statsdto.ActivityQuery
		if err := c.Bind().Query(&query); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
		}
		result, err := h.StatsService.GetRecentActivity(c.Context(), query)
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleExport xử lý GET /stats/export — tải file thống kê (table/csv/json).
// Trả thẳng nội dung file với Content-Disposition attachment, không bọc JSON envelope.
func (h *StatsHandler) HandleExport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var query statsdto.ExportQuery
		if err := c.Bind().Query(&query); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
		}
		if query.Format != "" {
			if err := global.Validate.Struct(&query); err != nil {
				return basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			}
		}
		result, err := h.StatsService.Export(c.Context(), query)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		c.Set("Content-Type", result.ContentType)
		c.Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
		return c.Status(common.StatusOK).Send(result.Content)
	})
}

// HandleReport xử lý GET /stats/report — như export nhưng trả metadata + nội dung
// trong JSON envelope (client tự render).
func (h *StatsHandler) HandleReport(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var query statsdto.ExportQuery
		if err := c.Bind().Query(&query); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
		}
		if query.Format != "" {
			if err := global.Validate.Struct(&query); err != nil {
				return basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			}
		}
		result, err := h.StatsService.Export(c.Context(), query)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, fiber.Map{
			"filename":    result.Filename,
			"contentType": result.ContentType,
			"content":     string(result.Content),
		}, nil)
	})
}

// HandleSnapshot xử lý POST /stats/snapshot — trigger thủ công job chốt thống kê
// ngày hôm qua. Idempotent: gọi lại cùng ngày ghi đè, không tạo trùng.
func (h *StatsHandler) HandleSnapshot(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		snap, err := h.StatsService.SnapshotYesterday(c.Context())
		return basehdl.HandleResponse(c, snap, err)
	})
}
