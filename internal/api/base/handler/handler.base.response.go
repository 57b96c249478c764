// Package basehdl chứa helper response dùng chung cho mọi domain handler.
package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"my_godfather/internal/common"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// để hỗ trợ UTF-8 encoding đúng cách.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandlerWrapper bọc handler với recover để server luôn trả về response
// cho client kể cả khi có panic.
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}

// HandleResponse chuẩn hóa response trả về cho client, format thống nhất
// {code, message, data, status} trong toàn bộ ứng dụng.
func HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		// Lỗi input của engine thống kê (metric/format/section/date lạ):
		// check sentinel trước để giữ message chi tiết đã wrap.
		if errors.Is(err, common.ErrInvalidInput) || errors.Is(err, common.ErrInvalidFormat) {
			return JSONResponse(c, common.StatusBadRequest, fiber.Map{
				"code":    common.ErrCodeValidationInput.Code,
				"message": err.Error(),
				"status":  "error",
			})
		}
		if errors.Is(err, common.ErrNotFound) {
			return JSONResponse(c, common.StatusNotFound, fiber.Map{
				"code":    common.ErrCodeDatabaseQuery.Code,
				"message": err.Error(),
				"status":  "error",
			})
		}
		var customErr *common.Error
		if errors.As(err, &customErr) {
			return JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
		}
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeDatabase.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"code":    common.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}
