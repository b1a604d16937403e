package dto

// ── 用户与学校模块 DTO ──

// UserResponse 用户信息响应
type UserResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   string          `json:"role"`
	Status string          `json:"status"`
	School *SchoolResponse `json:"school,omitempty"`
}

// ApproveUserRequest 审批用户请求
type ApproveUserRequest struct {
	Approve bool `json:"approve"`
}

// RegisterSchoolRequest 学校注册请求（公开，注册后进入待审批）
type RegisterSchoolRequest struct {
	Name string `json:"name" binding:"required,min=2,max=200"`
	City string `json:"city" binding:"omitempty,max=100"`
}

// ApproveSchoolRequest 审批学校请求
type ApproveSchoolRequest struct {
	Approve bool `json:"approve"`
}

// SchoolResponse 学校信息响应
type SchoolResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	City   string `json:"city,omitempty"`
	Status string `json:"status,omitempty"`
}
