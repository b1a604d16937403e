package dto

// ── 站点配置模块 DTO ──

// UpsertSettingRequest 写入站点配置请求
type UpsertSettingRequest struct {
	Key   string `json:"key"   binding:"required,min=1,max=100"`
	Value string `json:"value" binding:"omitempty,max=10000"`
}

// SettingResponse 站点配置响应
type SettingResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}
