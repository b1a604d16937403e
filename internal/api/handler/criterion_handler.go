package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// CriterionHandler 评分项模块 HTTP 处理器
type CriterionHandler struct {
	criterionSvc service.CriterionService
}

// NewCriterionHandler 创建 CriterionHandler
func NewCriterionHandler(criterionSvc service.CriterionService) *CriterionHandler {
	return &CriterionHandler{criterionSvc: criterionSvc}
}

// CreateCriterion 创建评分项
// POST /api/v1/events/:id/criteria
func (h *CriterionHandler) CreateCriterion(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	var req dto.CreateCriterionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	criterion, err := h.criterionSvc.Create(c.Request.Context(), eventID, &req, callerID)
	if err != nil {
		h.handleCriterionError(c, err)
		return
	}

	response.Created(c, criterion)
}

// UpdateCriterion 更新评分项
// PUT /api/v1/criteria/:id
func (h *CriterionHandler) UpdateCriterion(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评分项ID不能为空")
		return
	}

	var req dto.UpdateCriterionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	criterion, err := h.criterionSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCriterionError(c, err)
		return
	}

	response.OK(c, criterion)
}

// DeleteCriterion 删除评分项
// DELETE /api/v1/criteria/:id
func (h *CriterionHandler) DeleteCriterion(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "评分项ID不能为空")
		return
	}

	if err := h.criterionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCriterionError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListCriteria 赛事评分项列表
// GET /api/v1/public/events/:id/criteria
func (h *CriterionHandler) ListCriteria(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	criteria, err := h.criterionSvc.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		h.handleCriterionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": criteria})
}

// handleCriterionError 统一处理评分项模块业务错误
func (h *CriterionHandler) handleCriterionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCriterionNotFound):
		response.NotFound(c, 13001, "评分项不存在")
	case errors.Is(err, service.ErrRubricLocked):
		response.Conflict(c, 13002, "评分已锁定，评分项不可修改")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12001, "赛事不存在")
	default:
		response.InternalError(c)
	}
}
