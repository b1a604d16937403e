package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// VoteHandler 公众投票 HTTP 处理器
type VoteHandler struct {
	voteSvc service.VoteService
}

// NewVoteHandler 创建 VoteHandler
func NewVoteHandler(voteSvc service.VoteService) *VoteHandler {
	return &VoteHandler{voteSvc: voteSvc}
}

// Vote 匿名投票
// POST /api/v1/public/vote/:submissionId
func (h *VoteHandler) Vote(c *gin.Context) {
	submissionID := c.Param("submissionId")
	if submissionID == "" {
		response.BadRequest(c, 10001, "作品ID不能为空")
		return
	}

	if err := h.voteSvc.Vote(c.Request.Context(), submissionID, c.ClientIP()); err != nil {
		h.handleVoteError(c, err)
		return
	}

	response.Created(c, nil)
}

// handleVoteError 统一处理投票模块业务错误
func (h *VoteHandler) handleVoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVotingClosed):
		response.Forbidden(c, 16001, "当前赛事不在投票阶段")
	case errors.Is(err, service.ErrAlreadyVoted):
		response.Conflict(c, 16002, "您已为该作品投过票")
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 17001, "作品不存在")
	default:
		response.InternalError(c)
	}
}
