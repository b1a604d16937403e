package dto

// ── 作品模块 DTO ──

// CreateSubmissionRequest 提交作品请求
type CreateSubmissionRequest struct {
	EventID   string `json:"event_id"   binding:"required,uuid"`
	Title     string `json:"title"      binding:"required,min=2,max=200"`
	MediaType string `json:"media_type" binding:"required,oneof=video audio image document"`
	MediaURL  string `json:"media_url"  binding:"required,url,max=500"`
}

// SubmissionResponse 作品信息响应
type SubmissionResponse struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	Title       string `json:"title"`
	MediaType   string `json:"media_type"`
	MediaURL    string `json:"media_url"`
	Status      string `json:"status"`
	VoteCount   int    `json:"vote_count"`
	CreatedAt   string `json:"created_at"`
}
