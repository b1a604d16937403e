package model

// EvaluationCriterion 评分项表 — 对应 evaluation_criteria
//
// 单个赛事所有评分项的权重约定合计 100，但写入时不强制；
// 聚合阶段按实际权重和归一化（容忍配置偏差）。
type EvaluationCriterion struct {
	CriterionID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"criterion_id"`
	EventID      string `gorm:"type:uuid;not null;index"                       json:"event_id"`
	Label        string `gorm:"type:varchar(200);not null"                     json:"label"`
	Weight       int    `gorm:"not null"                                       json:"weight"` // 0-100
	DisplayOrder int    `gorm:"not null;default:0"                             json:"display_order"`
	BaseModel
}

// TableName 指定表名
func (EvaluationCriterion) TableName() string { return "evaluation_criteria" }
