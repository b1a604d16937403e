package model

import "time"

// ── 名次档位 ──

const (
	TierGold        = "gold"
	TierSilver      = "silver"
	TierBronze      = "bronze"
	TierParticipant = "participant"
)

// Badge 电子徽章表 — 对应 badges
//
// submission_id 唯一：重复触发结果计算不会铸出第二个凭证；
// credential_id 是对外的唯一查询键，内部 ID 永不暴露。
// 持有人姓名、学校、赛事名称在颁发时快照落库，后续改名不影响展示。
type Badge struct {
	BadgeID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"badge_id"`
	CredentialID  string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"credential_id"`
	SubmissionID  string    `gorm:"type:uuid;not null;uniqueIndex"                 json:"submission_id"`
	EventID       string    `gorm:"type:uuid;not null;index"                       json:"event_id"`
	Tier          string    `gorm:"type:varchar(20);not null"                      json:"tier"` // gold | silver | bronze | participant
	Rank          int       `gorm:"not null"                                       json:"rank"`
	WeightedScore float64   `gorm:"type:numeric(6,2);not null"                     json:"weighted_score"`
	StudentName   string    `gorm:"type:varchar(100);not null"                     json:"student_name"`
	SchoolName    string    `gorm:"type:varchar(200);not null;default:''"          json:"school_name"`
	EventTitle    string    `gorm:"type:varchar(200);not null"                     json:"event_title"`
	IssuedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"issued_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Badge) TableName() string { return "badges" }
