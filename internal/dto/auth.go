package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求（学生/教师/评委，注册后进入待审批）
type RegisterRequest struct {
	Name     string  `json:"name"      binding:"required,min=2,max=100"`
	Email    string  `json:"email"     binding:"required,email"`
	Password string  `json:"password"  binding:"required,min=8,max=72"`
	Role     string  `json:"role"      binding:"required,oneof=teacher student judge"`
	SchoolID *string `json:"school_id" binding:"omitempty,uuid"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// TokenResponse 登录/刷新成功响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}
