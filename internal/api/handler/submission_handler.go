package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// SubmissionHandler 作品模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// CreateSubmission 提交作品（学生）
// POST /api/v1/submissions
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	submission, err := h.submissionSvc.Create(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.Created(c, submission)
}

// GetSubmission 获取作品详情
// GET /api/v1/submissions/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "作品ID不能为空")
		return
	}

	submission, err := h.submissionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, submission)
}

// WithdrawSubmission 撤回作品（仅作者本人）
// PUT /api/v1/submissions/:id/withdraw
func (h *SubmissionHandler) WithdrawSubmission(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "作品ID不能为空")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.submissionSvc.Withdraw(c.Request.Context(), id, studentID); err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListEventSubmissions 赛事作品列表
// GET /api/v1/events/:id/submissions
func (h *SubmissionHandler) ListEventSubmissions(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	submissions, err := h.submissionSvc.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": submissions})
}

// ListMySubmissions 当前学生的作品列表
// GET /api/v1/submissions/mine
func (h *SubmissionHandler) ListMySubmissions(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	submissions, err := h.submissionSvc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": submissions})
}

// handleSubmissionError 统一处理作品模块业务错误
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 17001, "作品不存在")
	case errors.Is(err, service.ErrSubmissionClosed):
		response.Forbidden(c, 17002, "当前赛事不接受作品提交")
	case errors.Is(err, service.ErrNotSubmissionOwner):
		response.Forbidden(c, 17003, "只能操作自己的作品")
	case errors.Is(err, service.ErrSubmissionWithdrawn):
		response.Conflict(c, 17004, "作品已撤回")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12001, "赛事不存在")
	default:
		response.InternalError(c)
	}
}
