package model

// School 学校表 — 对应 schools
type School struct {
	SchoolID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_id"`
	Name     string `gorm:"type:varchar(200);not null"                     json:"name"`
	City     string `gorm:"type:varchar(100);not null;default:''"          json:"city"`
	Status   string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	BaseModel
}

// TableName 指定表名
func (School) TableName() string { return "schools" }
