package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// SchoolHandler 学校模块 HTTP 处理器
type SchoolHandler struct {
	schoolSvc service.SchoolService
}

// NewSchoolHandler 创建 SchoolHandler
func NewSchoolHandler(schoolSvc service.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolSvc: schoolSvc}
}

// RegisterSchool 学校注册（公开，注册后进入待审批）
// POST /api/v1/public/schools
func (h *SchoolHandler) RegisterSchool(c *gin.Context) {
	var req dto.RegisterSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	school, err := h.schoolSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleSchoolError(c, err)
		return
	}

	response.Created(c, school)
}

// ListSchools 学校列表（可按审批状态过滤）
// GET /api/v1/public/schools
func (h *SchoolHandler) ListSchools(c *gin.Context) {
	status := c.Query("status")

	schools, err := h.schoolSvc.List(c.Request.Context(), status)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": schools})
}

// ApproveSchool 审批学校（通过/驳回）
// PUT /api/v1/schools/:id/approval
func (h *SchoolHandler) ApproveSchool(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学校ID不能为空")
		return
	}

	var req dto.ApproveSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	school, err := h.schoolSvc.Approve(c.Request.Context(), id, req.Approve, callerID)
	if err != nil {
		h.handleSchoolError(c, err)
		return
	}

	response.OK(c, school)
}

// handleSchoolError 统一处理学校模块业务错误
func (h *SchoolHandler) handleSchoolError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSchoolNotFound):
		response.NotFound(c, 11003, "学校不存在")
	case errors.Is(err, service.ErrSchoolAlreadyReviewed):
		response.Conflict(c, 11006, "该学校已完成审批")
	default:
		response.InternalError(c)
	}
}
