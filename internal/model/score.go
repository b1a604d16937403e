package model

import "time"

// SubmissionScore 评委评分表 — 对应 submission_scores
//
// (submission_id, criterion_id, judge_id) 三元组唯一；
// 同一评委重复提交按 upsert 覆盖，不保留历史。
type SubmissionScore struct {
	ScoreID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"score_id"`
	SubmissionID string    `gorm:"type:uuid;not null;uniqueIndex:uniq_score_tuple" json:"submission_id"`
	CriterionID  string    `gorm:"type:uuid;not null;uniqueIndex:uniq_score_tuple" json:"criterion_id"`
	JudgeID      string    `gorm:"type:uuid;not null;uniqueIndex:uniq_score_tuple" json:"judge_id"`
	Score        int       `gorm:"not null"                                        json:"score"` // 0-100
	Feedback     string    `gorm:"type:text;not null;default:''"                   json:"feedback"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"              json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"              json:"updated_at"`
}

// TableName 指定表名
func (SubmissionScore) TableName() string { return "submission_scores" }

// ScoreWithWeight 评分与权重的联查投影（聚合计算用）
//
// 显式投影替代「数组还是对象」的裸 join 结果，消费方不再处理一元数组歧义。
type ScoreWithWeight struct {
	SubmissionID string `json:"submission_id"`
	CriterionID  string `json:"criterion_id"`
	JudgeID      string `json:"judge_id"`
	Score        int    `json:"score"`
	Weight       int    `json:"weight"`
}
