package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// ResultHandler 结果模块 HTTP 处理器
type ResultHandler struct {
	resultSvc service.ResultService
}

// NewResultHandler 创建 ResultHandler
func NewResultHandler(resultSvc service.ResultService) *ResultHandler {
	return &ResultHandler{resultSvc: resultSvc}
}

// ComputeResults 计算赛事结果（聚合、排名、定档、铸发徽章）
// POST /api/v1/events/:id/results/compute
func (h *ResultHandler) ComputeResults(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.resultSvc.ComputeResults(c.Request.Context(), eventID, callerID)
	if err != nil {
		h.handleResultError(c, err)
		return
	}

	response.OK(c, result)
}

// PublishResults 发布结果（review → published）
// POST /api/v1/events/:id/results/publish
func (h *ResultHandler) PublishResults(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.resultSvc.Publish(c.Request.Context(), eventID, callerID); err != nil {
		h.handleResultError(c, err)
		return
	}

	response.OK(c, nil)
}

// Leaderboard 公开排行榜（仅已发布赛事）
// GET /api/v1/public/events/:id/leaderboard
func (h *ResultHandler) Leaderboard(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	leaderboard, err := h.resultSvc.Leaderboard(c.Request.Context(), eventID)
	if err != nil {
		h.handleResultError(c, err)
		return
	}

	response.OK(c, leaderboard)
}

// handleResultError 统一处理结果模块业务错误
func (h *ResultHandler) handleResultError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12001, "赛事不存在")
	case errors.Is(err, service.ErrComputeNotAllowed):
		response.Forbidden(c, 15001, "当前状态不允许计算结果")
	case errors.Is(err, service.ErrResultsPublished):
		response.Conflict(c, 15002, "结果已发布，禁止重新计算")
	case errors.Is(err, service.ErrResultsNotPublished):
		response.NotFound(c, 15003, "结果尚未发布")
	case errors.Is(err, service.ErrPublishNotAllowed):
		response.Forbidden(c, 15004, "只有复核阶段的赛事可以发布结果")
	case errors.Is(err, service.ErrStatusConflict):
		response.Conflict(c, 12004, "赛事状态已被其他操作修改")
	default:
		response.InternalError(c)
	}
}
