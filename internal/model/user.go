package model

// ── 角色 ──

const (
	RoleSuperAdmin = "super_admin"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
	RoleJudge      = "judge"
)

// ── 审批状态（用户与学校共用） ──

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`   // super_admin | teacher | student | judge
	Status       string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	SchoolID     *string `gorm:"type:uuid"                                      json:"school_id,omitempty"`
	BaseModel

	// 关联
	School *School `gorm:"foreignKey:SchoolID;references:SchoolID" json:"school,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
