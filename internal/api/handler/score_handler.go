package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// ScoreHandler 评分模块 HTTP 处理器
type ScoreHandler struct {
	scoreSvc service.ScoreService
}

// NewScoreHandler 创建 ScoreHandler
func NewScoreHandler(scoreSvc service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreSvc: scoreSvc}
}

// SubmitScore 评委提交评分（同一三元组重复提交覆盖旧值）
// PUT /api/v1/submissions/:id/scores
func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	submissionID := c.Param("id")
	if submissionID == "" {
		response.BadRequest(c, 10001, "作品ID不能为空")
		return
	}

	var req dto.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	judgeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	score, err := h.scoreSvc.Submit(c.Request.Context(), submissionID, judgeID, &req)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	response.OK(c, score)
}

// ListScores 作品评分记录（锁定后仍可读，供复核）
// GET /api/v1/submissions/:id/scores
func (h *ScoreHandler) ListScores(c *gin.Context) {
	submissionID := c.Param("id")
	if submissionID == "" {
		response.BadRequest(c, 10001, "作品ID不能为空")
		return
	}

	scores, err := h.scoreSvc.ListBySubmission(c.Request.Context(), submissionID)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	response.OK(c, gin.H{"list": scores})
}

// GetProgress 当前评委在某赛事下的评分进度
// GET /api/v1/events/:id/progress
func (h *ScoreHandler) GetProgress(c *gin.Context) {
	eventID := c.Param("id")
	if eventID == "" {
		response.BadRequest(c, 10001, "赛事ID不能为空")
		return
	}

	judgeID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	progress, err := h.scoreSvc.Progress(c.Request.Context(), eventID, judgeID)
	if err != nil {
		h.handleScoreError(c, err)
		return
	}

	response.OK(c, progress)
}

// handleScoreError 统一处理评分模块业务错误
func (h *ScoreHandler) handleScoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScoringLocked):
		response.Forbidden(c, 14001, "当前赛事不在评分阶段")
	case errors.Is(err, service.ErrScoreOutOfRange):
		response.BadRequest(c, 14002, "分数必须在 0-100 之间")
	case errors.Is(err, service.ErrJudgeNotAuthorized):
		response.Forbidden(c, 14003, "您未被分配到该赛事，无法评分")
	case errors.Is(err, service.ErrCriterionMismatch):
		response.BadRequest(c, 14004, "评分项不属于该作品所在赛事")
	case errors.Is(err, service.ErrCriterionNotFound):
		response.NotFound(c, 13001, "评分项不存在")
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 17001, "作品不存在")
	case errors.Is(err, service.ErrSubmissionWithdrawn):
		response.Conflict(c, 17004, "作品已撤回")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 12001, "赛事不存在")
	default:
		response.InternalError(c)
	}
}
