package model

import "time"

// SiteSetting 站点内容配置表 — 对应 site_settings（键值对 CMS）
//
// 每次请求按需取一次快照注入，不做进程内全局缓存。
type SiteSetting struct {
	SettingID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"setting_id"`
	Key       string    `gorm:"type:varchar(100);not null;uniqueIndex"         json:"key"`
	Value     string    `gorm:"type:text;not null;default:''"                  json:"value"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                                      json:"updated_by,omitempty"`
}

// TableName 指定表名
func (SiteSetting) TableName() string { return "site_settings" }
