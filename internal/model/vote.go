package model

import "time"

// Vote 公众投票表 — 对应 votes
//
// voter_hash 为 sha256(客户端IP + 盐)，明文 IP 不入库；
// (submission_id, voter_hash) 唯一约束承担并发去重。
type Vote struct {
	VoteID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"vote_id"`
	SubmissionID string    `gorm:"type:uuid;not null;uniqueIndex:uniq_vote"       json:"submission_id"`
	VoterHash    string    `gorm:"type:char(64);not null;uniqueIndex:uniq_vote"   json:"-"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Vote) TableName() string { return "votes" }
