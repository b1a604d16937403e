package dto

// ── 赛事模块 DTO ──

// CreateEventRequest 创建赛事请求
type CreateEventRequest struct {
	Title           string  `json:"title"            binding:"required,min=2,max=200"`
	Description     string  `json:"description"      binding:"omitempty,max=5000"`
	StartDate       string  `json:"start_date"       binding:"required"` // "2026-09-01"
	EndDate         string  `json:"end_date"         binding:"required"` // "2026-10-15"
	ScoringDeadline *string `json:"scoring_deadline"`
	GoldCount       *int    `json:"gold_count"       binding:"omitempty,min=0"`
	SilverCount     *int    `json:"silver_count"     binding:"omitempty,min=0"`
	BronzeCount     *int    `json:"bronze_count"     binding:"omitempty,min=0"`
}

// UpdateEventRequest 更新赛事请求
type UpdateEventRequest struct {
	Title           *string `json:"title"            binding:"omitempty,min=2,max=200"`
	Description     *string `json:"description"      binding:"omitempty,max=5000"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	ScoringDeadline *string `json:"scoring_deadline"`
	GoldCount       *int    `json:"gold_count"       binding:"omitempty,min=0"`
	SilverCount     *int    `json:"silver_count"     binding:"omitempty,min=0"`
	BronzeCount     *int    `json:"bronze_count"     binding:"omitempty,min=0"`
}

// AdvanceStatusRequest 生命周期单步前进请求
type AdvanceStatusRequest struct {
	Target string `json:"target" binding:"required,oneof=not_started scoring_open scoring_locked review published"`
}

// OverrideStatusRequest 管理员强制设置状态请求（可回退）
type OverrideStatusRequest struct {
	Target string `json:"target" binding:"required,oneof=not_started scoring_open scoring_locked review published"`
	Reason string `json:"reason" binding:"required,min=2,max=500"`
}

// AssignJudgeRequest 分配评委请求
type AssignJudgeRequest struct {
	JudgeID string `json:"judge_id" binding:"required,uuid"`
}

// EventResponse 赛事信息响应
type EventResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	StartDate       string              `json:"start_date"`
	EndDate         string              `json:"end_date"`
	ScoringDeadline string              `json:"scoring_deadline,omitempty"`
	ResultsStatus   string              `json:"results_status"`
	Overdue         bool                `json:"overdue"`
	OverdueDays     int                 `json:"overdue_days,omitempty"`
	GoldCount       int                 `json:"gold_count"`
	SilverCount     int                 `json:"silver_count"`
	BronzeCount     int                 `json:"bronze_count"`
	Criteria        []CriterionResponse `json:"criteria,omitempty"`
}

// EventJudgeResponse 评委分配响应
type EventJudgeResponse struct {
	JudgeID   string `json:"judge_id"`
	JudgeName string `json:"judge_name"`
	Scored    int    `json:"scored"`
	Total     int    `json:"total"`
}
