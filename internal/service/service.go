package service

import (
	"go.uber.org/zap"

	"github.com/jithuth/competeskool-final-sub001/config"
	"github.com/jithuth/competeskool-final-sub001/internal/repository"
	"github.com/jithuth/competeskool-final-sub001/pkg/jwt"
	"github.com/jithuth/competeskool-final-sub001/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	School     SchoolService
	Event      EventService
	Criterion  CriterionService
	Submission SubmissionService
	Score      ScoreService
	Result     ResultService
	Badge      BadgeService
	Vote       VoteService
	Setting    SettingService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		School:     NewSchoolService(repo, logger),
		Event:      NewEventService(&cfg.Results, repo, logger),
		Criterion:  NewCriterionService(repo, logger),
		Submission: NewSubmissionService(repo, logger),
		Score:      NewScoreService(repo, logger),
		Result:     NewResultService(repo, logger),
		Badge:      NewBadgeService(repo, logger),
		Vote:       NewVoteService(&cfg.Vote, repo, logger),
		Setting:    NewSettingService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
