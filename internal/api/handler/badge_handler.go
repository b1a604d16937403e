package handler

import (
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// BadgeHandler 徽章模块 HTTP 处理器
type BadgeHandler struct {
	badgeSvc service.BadgeService
}

// NewBadgeHandler 创建 BadgeHandler
func NewBadgeHandler(badgeSvc service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeSvc: badgeSvc}
}

// VerifyBadge 公开校验凭证（JSON）
// GET /api/v1/public/verify/:credentialId
func (h *BadgeHandler) VerifyBadge(c *gin.Context) {
	credentialID := c.Param("credentialId")
	if credentialID == "" {
		response.BadRequest(c, 10001, "凭证ID不能为空")
		return
	}

	badge, err := h.badgeSvc.Verify(c.Request.Context(), credentialID)
	if err != nil {
		h.handleBadgeError(c, err)
		return
	}

	response.OK(c, badge)
}

// RenderBadge 渲染 SVG 电子证书
// GET /api/v1/public/badge/:credentialId
func (h *BadgeHandler) RenderBadge(c *gin.Context) {
	credentialID := c.Param("credentialId")
	if credentialID == "" {
		response.BadRequest(c, 10001, "凭证ID不能为空")
		return
	}

	badge, err := h.badgeSvc.Verify(c.Request.Context(), credentialID)
	if err != nil {
		h.handleBadgeError(c, err)
		return
	}

	c.Header("Content-Type", "image/svg+xml; charset=utf-8")
	c.Header("Cache-Control", "public, max-age=3600")
	c.String(http.StatusOK, renderBadgeSVG(badge))
}

// handleBadgeError 统一处理徽章模块业务错误
func (h *BadgeHandler) handleBadgeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBadgeNotFound):
		response.NotFound(c, 15005, "凭证不存在或结果尚未发布")
	default:
		response.InternalError(c)
	}
}

// ── SVG 证书渲染 ──

var tierColors = map[string]string{
	model.TierGold:        "#D4A017",
	model.TierSilver:      "#A8A9AD",
	model.TierBronze:      "#B08D57",
	model.TierParticipant: "#4472C4",
}

var tierTitles = map[string]string{
	model.TierGold:        "金奖",
	model.TierSilver:      "银奖",
	model.TierBronze:      "铜奖",
	model.TierParticipant: "参与奖",
}

// renderBadgeSVG 生成电子证书 SVG；文本一律转义防注入
func renderBadgeSVG(badge *dto.BadgeResponse) string {
	color := tierColors[badge.Tier]
	if color == "" {
		color = tierColors[model.TierParticipant]
	}
	tierTitle := tierTitles[badge.Tier]
	if tierTitle == "" {
		tierTitle = badge.Tier
	}

	holder := badge.StudentName
	if badge.SchoolName != "" {
		holder += " · " + badge.SchoolName
	}

	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="640" height="400" viewBox="0 0 640 400">
  <rect width="640" height="400" fill="#FFFFFF" stroke="%s" stroke-width="8"/>
  <rect x="24" y="24" width="592" height="352" fill="none" stroke="%s" stroke-width="2"/>
  <text x="320" y="92" text-anchor="middle" font-family="serif" font-size="28" fill="#333333">电子获奖证书</text>
  <text x="320" y="158" text-anchor="middle" font-family="serif" font-size="40" font-weight="bold" fill="%s">%s</text>
  <text x="320" y="214" text-anchor="middle" font-family="sans-serif" font-size="24" fill="#333333">%s</text>
  <text x="320" y="258" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#666666">%s</text>
  <text x="320" y="294" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#666666">名次 %d · 加权分 %.2f</text>
  <text x="320" y="352" text-anchor="middle" font-family="monospace" font-size="11" fill="#999999">凭证号 %s</text>
</svg>`,
		color, color, color,
		html.EscapeString(tierTitle),
		html.EscapeString(holder),
		html.EscapeString(badge.EventTitle),
		badge.Rank, badge.WeightedScore,
		html.EscapeString(badge.CredentialID))
}
