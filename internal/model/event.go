package model

import "time"

// ── 结果生命周期状态 ──
//
// 状态机：not_started → scoring_open → scoring_locked → review → published
// 仅管理员操作驱动流转；逾期只计算用于展示，不触发自动流转。

const (
	ResultsNotStarted    = "not_started"
	ResultsScoringOpen   = "scoring_open"
	ResultsScoringLocked = "scoring_locked"
	ResultsReview        = "review"
	ResultsPublished     = "published"
)

// ResultsStatusOrder 生命周期状态的先后顺序，用于校验单步前进
var ResultsStatusOrder = []string{
	ResultsNotStarted,
	ResultsScoringOpen,
	ResultsScoringLocked,
	ResultsReview,
	ResultsPublished,
}

// Event 赛事表 — 对应 events
type Event struct {
	EventID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"event_id"`
	Title           string     `gorm:"type:varchar(200);not null"                      json:"title"`
	Description     string     `gorm:"type:text;not null;default:''"                   json:"description"`
	StartDate       time.Time  `gorm:"not null"                                        json:"start_date"`
	EndDate         time.Time  `gorm:"not null"                                        json:"end_date"`
	ScoringDeadline *time.Time `json:"scoring_deadline,omitempty"`
	ResultsStatus   string     `gorm:"type:varchar(20);not null;default:'not_started'" json:"results_status"`
	GoldCount       int        `gorm:"not null;default:1"                              json:"gold_count"`
	SilverCount     int        `gorm:"not null;default:2"                              json:"silver_count"`
	BronzeCount     int        `gorm:"not null;default:3"                              json:"bronze_count"`
	BaseModel

	// 关联
	Criteria []EvaluationCriterion `gorm:"foreignKey:EventID" json:"criteria,omitempty"`
}

// TableName 指定表名
func (Event) TableName() string { return "events" }

// EventJudge 赛事评委分配表 — 对应 event_judges
type EventJudge struct {
	EventJudgeID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"event_judge_id"`
	EventID      string    `gorm:"type:uuid;not null;uniqueIndex:uniq_event_judge"     json:"event_id"`
	JudgeID      string    `gorm:"type:uuid;not null;uniqueIndex:uniq_event_judge"     json:"judge_id"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                  json:"created_at"`
	CreatedBy    *string   `gorm:"type:uuid"                                           json:"created_by,omitempty"`

	// 关联
	Judge *User `gorm:"foreignKey:JudgeID;references:UserID" json:"judge,omitempty"`
}

// TableName 指定表名
func (EventJudge) TableName() string { return "event_judges" }
