package dto

// ── 评分模块 DTO ──

// SubmitScoreRequest 评委提交评分请求
//
// score 用指针承载，避免 0 分被 required 校验误杀
type SubmitScoreRequest struct {
	CriterionID string `json:"criterion_id" binding:"required,uuid"`
	Score       *int   `json:"score"        binding:"required"`
	Feedback    string `json:"feedback"     binding:"omitempty,max=5000"`
}

// ScoreResponse 评分记录响应
type ScoreResponse struct {
	SubmissionID string `json:"submission_id"`
	CriterionID  string `json:"criterion_id"`
	JudgeID      string `json:"judge_id"`
	Score        int    `json:"score"`
	Feedback     string `json:"feedback,omitempty"`
	UpdatedAt    string `json:"updated_at"`
}

// JudgeProgressResponse 评委评分进度响应
type JudgeProgressResponse struct {
	EventID string `json:"event_id"`
	JudgeID string `json:"judge_id"`
	Scored  int    `json:"scored"` // count(distinct submission_id)，封顶为 total
	Total   int    `json:"total"`
}
