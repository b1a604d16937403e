package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

// SettingHandler 站点配置 HTTP 处理器
type SettingHandler struct {
	settingSvc service.SettingService
}

// NewSettingHandler 创建 SettingHandler
func NewSettingHandler(settingSvc service.SettingService) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc}
}

// UpsertSetting 写入站点配置（键存在则覆盖）
// PUT /api/v1/settings
func (h *SettingHandler) UpsertSetting(c *gin.Context) {
	var req dto.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	setting, err := h.settingSvc.Upsert(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSettingError(c, err)
		return
	}

	response.OK(c, setting)
}

// ListSettings 站点配置列表
// GET /api/v1/settings
func (h *SettingHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": settings})
}

// DeleteSetting 删除站点配置
// DELETE /api/v1/settings/:key
func (h *SettingHandler) DeleteSetting(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		response.BadRequest(c, 10001, "配置键不能为空")
		return
	}

	if err := h.settingSvc.Delete(c.Request.Context(), key); err != nil {
		h.handleSettingError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetSiteContent 公开站点内容快照（首页文案、公告等）
// GET /api/v1/public/site
func (h *SettingHandler) GetSiteContent(c *gin.Context) {
	snapshot, err := h.settingSvc.Snapshot(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, snapshot)
}

// handleSettingError 统一处理站点配置业务错误
func (h *SettingHandler) handleSettingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSettingNotFound):
		response.NotFound(c, 17201, "配置项不存在")
	default:
		response.InternalError(c)
	}
}
