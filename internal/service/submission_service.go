package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/repository"
)

// ── 作品模块业务错误 ──

var (
	ErrSubmissionNotFound  = errors.New("作品不存在")
	ErrSubmissionClosed    = errors.New("当前赛事不接受作品提交")
	ErrNotSubmissionOwner  = errors.New("只能操作自己的作品")
	ErrSubmissionWithdrawn = errors.New("作品已撤回")
)

// SubmissionService 作品业务接口
type SubmissionService interface {
	Create(ctx context.Context, studentID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SubmissionResponse, error)
	Withdraw(ctx context.Context, id, studentID string) error
	ListByEvent(ctx context.Context, eventID string) ([]dto.SubmissionResponse, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *submissionService) Create(ctx context.Context, studentID string, req *dto.CreateSubmissionRequest) (*dto.SubmissionResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	// 赛事已结束或评分已锁定后不再接受提交
	if time.Now().After(event.EndDate.AddDate(0, 0, 1)) {
		return nil, ErrSubmissionClosed
	}
	switch event.ResultsStatus {
	case model.ResultsNotStarted, model.ResultsScoringOpen:
		// 可提交
	default:
		return nil, ErrSubmissionClosed
	}

	submission := &model.Submission{
		EventID:   req.EventID,
		StudentID: studentID,
		Title:     req.Title,
		MediaType: req.MediaType,
		MediaURL:  req.MediaURL,
		Status:    model.SubmissionSubmitted,
	}
	submission.CreatedBy = &studentID

	if err := s.repo.Submission.Create(ctx, submission); err != nil {
		s.logger.Error("创建作品失败",
			zap.String("event_id", req.EventID),
			zap.String("student_id", studentID),
			zap.Error(err))
		return nil, err
	}

	return toSubmissionResponse(submission), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *submissionService) GetByID(ctx context.Context, id string) (*dto.SubmissionResponse, error) {
	submission, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	resp := toSubmissionResponse(submission)

	// 列表用冗余计数，详情页回源 votes 表取准确值
	if count, err := s.repo.Vote.CountBySubmission(ctx, id); err == nil {
		resp.VoteCount = int(count)
	}
	return resp, nil
}

// ────────────────────── Withdraw ──────────────────────

func (s *submissionService) Withdraw(ctx context.Context, id, studentID string) error {
	submission, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	if submission.StudentID != studentID {
		return ErrNotSubmissionOwner
	}
	if submission.Status == model.SubmissionWithdrawn {
		return ErrSubmissionWithdrawn
	}

	submission.Status = model.SubmissionWithdrawn
	submission.UpdatedBy = &studentID

	if err := s.repo.Submission.Update(ctx, submission); err != nil {
		s.logger.Error("撤回作品失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListByEvent ──────────────────────

func (s *submissionService) ListByEvent(ctx context.Context, eventID string) ([]dto.SubmissionResponse, error) {
	submissions, err := s.repo.Submission.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("列出作品失败", zap.String("event_id", eventID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		result = append(result, *toSubmissionResponse(&submissions[i]))
	}
	return result, nil
}

// ────────────────────── ListByStudent ──────────────────────

func (s *submissionService) ListByStudent(ctx context.Context, studentID string) ([]dto.SubmissionResponse, error) {
	submissions, err := s.repo.Submission.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("列出学生作品失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		result = append(result, *toSubmissionResponse(&submissions[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func toSubmissionResponse(submission *model.Submission) *dto.SubmissionResponse {
	resp := &dto.SubmissionResponse{
		ID:        submission.SubmissionID,
		EventID:   submission.EventID,
		StudentID: submission.StudentID,
		Title:     submission.Title,
		MediaType: submission.MediaType,
		MediaURL:  submission.MediaURL,
		Status:    submission.Status,
		VoteCount: submission.VoteCount,
		CreatedAt: submission.CreatedAt.Format(time.RFC3339),
	}
	if submission.Student != nil {
		resp.StudentName = submission.Student.Name
	}
	return resp
}
