package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportResults 导出赛事结果 Excel
// GET /api/v1/events/:id/export
func (h *ExportHandler) ExportResults(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportResults(c.Request.Context(), eventID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportCalendar 导出赛事日历 ICS（公开订阅）
// GET /api/v1/public/events/calendar.ics
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	buf, err := h.exportSvc.ExportCalendar(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=events.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// handleExportError 统一处理导出模块业务错误
func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12001, "赛事不存在")
	case errors.Is(err, service.ErrExportNotReady):
		response.Forbidden(c, 17101, "评分锁定前不能导出结果")
	case errors.Is(err, service.ErrExportNoResults):
		response.BadRequest(c, 17102, "该赛事暂无排名结果，请先计算")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
