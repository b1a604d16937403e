package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// EventHandler 赛事模块 HTTP 处理器
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// CreateEvent 创建赛事
// POST /api/v1/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, event)
}

// GetEvent 获取赛事详情
// GET /api/v1/public/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	event, err := h.eventSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// ListEvents 赛事列表（可按状态过滤）
// GET /api/v1/public/events
func (h *EventHandler) ListEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	status := c.Query("status")

	events, total, err := h.eventSvc.List(c.Request.Context(), status, page, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, events, total, page, pageSize)
}

// UpdateEvent 更新赛事
// PUT /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// DeleteEvent 删除赛事
// DELETE /api/v1/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

// AdvanceStatus 生命周期单步前进
// PUT /api/v1/events/:id/status
func (h *EventHandler) AdvanceStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.AdvanceStatus(c.Request.Context(), id, req.Target, callerID)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// OverrideStatus 管理员强制设置状态（可回退，原因留痕）
// PUT /api/v1/events/:id/status/override
func (h *EventHandler) OverrideStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	event, err := h.eventSvc.OverrideStatus(c.Request.Context(), id, req.Target, req.Reason, callerID)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// AssignJudge 分配评委
// POST /api/v1/events/:id/judges
func (h *EventHandler) AssignJudge(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.AssignJudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.eventSvc.AssignJudge(c.Request.Context(), id, req.JudgeID, callerID); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, nil)
}

// RemoveJudge 移除评委
// DELETE /api/v1/events/:id/judges/:judgeId
func (h *EventHandler) RemoveJudge(c *gin.Context) {
	id := c.Param("id")
	judgeID := c.Param("judgeId")
	if id == "" || judgeID == "" {
		response.BadRequest(c, 10001, "赛事ID与评委ID不能为空")
		return
	}

	if err := h.eventSvc.RemoveJudge(c.Request.Context(), id, judgeID); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListJudges 赛事评委列表（含评分进度）
// GET /api/v1/events/:id/judges
func (h *EventHandler) ListJudges(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	judges, err := h.eventSvc.ListJudges(c.Request.Context(), id)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, gin.H{"list": judges})
}

// handleEventError 统一处理赛事模块业务错误
func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12001, "赛事不存在")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 12002, "赛事日期无效")
	case errors.Is(err, service.ErrInvalidTransition):
		response.BadRequest(c, 12003, "非法的状态流转")
	case errors.Is(err, service.ErrStatusConflict):
		response.Conflict(c, 12004, "赛事状态已被其他操作修改")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 11001, "用户不存在")
	case errors.Is(err, service.ErrNotAJudge):
		response.BadRequest(c, 12005, "该用户不是评委角色")
	case errors.Is(err, service.ErrJudgeAlreadyAssigned):
		response.Conflict(c, 12006, "该评委已分配到此赛事")
	case errors.Is(err, service.ErrJudgeNotAssigned):
		response.NotFound(c, 12007, "该评委未分配到此赛事")
	default:
		response.InternalError(c)
	}
}
