package dto

// ── 结果与徽章模块 DTO ──

// RankedSubmissionResponse 单条排名结果
type RankedSubmissionResponse struct {
	SubmissionID  string  `json:"submission_id"`
	Title         string  `json:"title"`
	StudentName   string  `json:"student_name"`
	SchoolName    string  `json:"school_name,omitempty"`
	WeightedScore float64 `json:"weighted_score"`
	Rank          int     `json:"rank"`
	Tier          string  `json:"tier"`
	VoteCount     int     `json:"vote_count"`
}

// ComputeResultsResponse 结果计算响应
type ComputeResultsResponse struct {
	EventID  string                     `json:"event_id"`
	Ranked   []RankedSubmissionResponse `json:"ranked"`
	Unscored int                        `json:"unscored"` // 无任何评分、被排除的作品数
}

// BadgeResponse 徽章公开校验响应
type BadgeResponse struct {
	CredentialID  string  `json:"credential_id"`
	Tier          string  `json:"tier"`
	Rank          int     `json:"rank"`
	WeightedScore float64 `json:"weighted_score"`
	StudentName   string  `json:"student_name"`
	SchoolName    string  `json:"school_name,omitempty"`
	EventTitle    string  `json:"event_title"`
	IssuedAt      string  `json:"issued_at"`
}

// LeaderboardResponse 公开排行榜响应
type LeaderboardResponse struct {
	EventID    string                     `json:"event_id"`
	EventTitle string                     `json:"event_title"`
	Entries    []RankedSubmissionResponse `json:"entries"`
}
