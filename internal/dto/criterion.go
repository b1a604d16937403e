package dto

// ── 评分项模块 DTO ──

// CreateCriterionRequest 创建评分项请求
type CreateCriterionRequest struct {
	Label        string `json:"label"         binding:"required,min=2,max=200"`
	Weight       int    `json:"weight"        binding:"min=0,max=100"`
	DisplayOrder int    `json:"display_order" binding:"omitempty,min=0"`
}

// UpdateCriterionRequest 更新评分项请求
type UpdateCriterionRequest struct {
	Label        *string `json:"label"         binding:"omitempty,min=2,max=200"`
	Weight       *int    `json:"weight"        binding:"omitempty,min=0,max=100"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,min=0"`
}

// CriterionResponse 评分项响应
type CriterionResponse struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	Label        string `json:"label"`
	Weight       int    `json:"weight"`
	DisplayOrder int    `json:"display_order"`
}
