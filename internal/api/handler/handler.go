package handler

import "github.com/jithuth/competeskool-final-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	School     *SchoolHandler
	Event      *EventHandler
	Criterion  *CriterionHandler
	Submission *SubmissionHandler
	Score      *ScoreHandler
	Result     *ResultHandler
	Badge      *BadgeHandler
	Vote       *VoteHandler
	Setting    *SettingHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		School:     NewSchoolHandler(svc.School),
		Event:      NewEventHandler(svc.Event),
		Criterion:  NewCriterionHandler(svc.Criterion),
		Submission: NewSubmissionHandler(svc.Submission),
		Score:      NewScoreHandler(svc.Score),
		Result:     NewResultHandler(svc.Result),
		Badge:      NewBadgeHandler(svc.Badge),
		Vote:       NewVoteHandler(svc.Vote),
		Setting:    NewSettingHandler(svc.Setting),
		Export:     NewExportHandler(svc.Export),
	}
}
