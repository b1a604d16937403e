package model

// ── 作品状态 ──

const (
	SubmissionSubmitted = "submitted"
	SubmissionWithdrawn = "withdrawn"
)

// ── 媒体类型 ──

const (
	MediaVideo    = "video"
	MediaAudio    = "audio"
	MediaImage    = "image"
	MediaDocument = "document"
)

// Submission 参赛作品表 — 对应 submissions
type Submission struct {
	SubmissionID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	EventID      string `gorm:"type:uuid;not null;index"                       json:"event_id"`
	StudentID    string `gorm:"type:uuid;not null;index"                       json:"student_id"`
	Title        string `gorm:"type:varchar(200);not null"                     json:"title"`
	MediaType    string `gorm:"type:varchar(20);not null"                      json:"media_type"` // video | audio | image | document
	MediaURL     string `gorm:"type:varchar(500);not null"                     json:"media_url"`
	Status       string `gorm:"type:varchar(20);not null;default:'submitted'"  json:"status"` // submitted | withdrawn
	VoteCount    int    `gorm:"not null;default:0"                             json:"vote_count"`
	BaseModel

	// 关联
	Student *User  `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
	Event   *Event `gorm:"foreignKey:EventID;references:EventID"  json:"event,omitempty"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }
