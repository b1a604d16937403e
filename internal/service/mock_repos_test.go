package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, role, status string, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if status != "" && u.Status != status {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock SchoolRepository ──

type mockSchoolRepo struct {
	schools map[string]*model.School
}

func newMockSchoolRepo() *mockSchoolRepo {
	return &mockSchoolRepo{schools: make(map[string]*model.School)}
}

func (m *mockSchoolRepo) Create(_ context.Context, school *model.School) error {
	if school.SchoolID == "" {
		school.SchoolID = fmt.Sprintf("school-%d", len(m.schools)+1)
	}
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) GetByID(_ context.Context, id string) (*model.School, error) {
	if s, ok := m.schools[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) Update(_ context.Context, school *model.School) error {
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) List(_ context.Context, status string) ([]model.School, error) {
	var result []model.School
	for _, s := range m.schools {
		if status != "" && s.Status != status {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SchoolID < result[j].SchoolID })
	return result, nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
	// conflictOnce 为真时下一次 UpdateStatus 返回零行受影响，模拟并发双写
	conflictOnce bool
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("event-%d", len(m.events)+1)
	}
	if event.ResultsStatus == "" {
		event.ResultsStatus = model.ResultsNotStarted
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) List(_ context.Context, status string, offset, limit int) ([]model.Event, int64, error) {
	var all []model.Event
	for _, e := range m.events {
		if status != "" && e.ResultsStatus != status {
			continue
		}
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].EventID < all[j].EventID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockEventRepo) UpdateStatus(_ context.Context, id, from, to string) (int64, error) {
	if m.conflictOnce {
		m.conflictOnce = false
		return 0, nil
	}
	e, ok := m.events[id]
	if !ok || e.ResultsStatus != from {
		return 0, nil
	}
	e.ResultsStatus = to
	return 1, nil
}

// ── Mock EventJudgeRepository ──

type mockEventJudgeRepo struct {
	assignments map[string]*model.EventJudge // key: eventID|judgeID
}

func newMockEventJudgeRepo() *mockEventJudgeRepo {
	return &mockEventJudgeRepo{assignments: make(map[string]*model.EventJudge)}
}

func (m *mockEventJudgeRepo) Assign(_ context.Context, ej *model.EventJudge) error {
	key := ej.EventID + "|" + ej.JudgeID
	if _, ok := m.assignments[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if ej.EventJudgeID == "" {
		ej.EventJudgeID = fmt.Sprintf("ej-%d", len(m.assignments)+1)
	}
	m.assignments[key] = ej
	return nil
}

func (m *mockEventJudgeRepo) Remove(_ context.Context, eventID, judgeID string) error {
	key := eventID + "|" + judgeID
	if _, ok := m.assignments[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, key)
	return nil
}

func (m *mockEventJudgeRepo) IsAssigned(_ context.Context, eventID, judgeID string) (bool, error) {
	_, ok := m.assignments[eventID+"|"+judgeID]
	return ok, nil
}

func (m *mockEventJudgeRepo) ListByEvent(_ context.Context, eventID string) ([]model.EventJudge, error) {
	var result []model.EventJudge
	for _, ej := range m.assignments {
		if ej.EventID == eventID {
			result = append(result, *ej)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].JudgeID < result[j].JudgeID })
	return result, nil
}

// ── Mock CriterionRepository ──

type mockCriterionRepo struct {
	criteria map[string]*model.EvaluationCriterion
}

func newMockCriterionRepo() *mockCriterionRepo {
	return &mockCriterionRepo{criteria: make(map[string]*model.EvaluationCriterion)}
}

func (m *mockCriterionRepo) Create(_ context.Context, criterion *model.EvaluationCriterion) error {
	if criterion.CriterionID == "" {
		criterion.CriterionID = fmt.Sprintf("crit-%d", len(m.criteria)+1)
	}
	m.criteria[criterion.CriterionID] = criterion
	return nil
}

func (m *mockCriterionRepo) GetByID(_ context.Context, id string) (*model.EvaluationCriterion, error) {
	if c, ok := m.criteria[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCriterionRepo) Update(_ context.Context, criterion *model.EvaluationCriterion) error {
	m.criteria[criterion.CriterionID] = criterion
	return nil
}

func (m *mockCriterionRepo) Delete(_ context.Context, id string) error {
	delete(m.criteria, id)
	return nil
}

func (m *mockCriterionRepo) ListByEvent(_ context.Context, eventID string) ([]model.EvaluationCriterion, error) {
	var result []model.EvaluationCriterion
	for _, c := range m.criteria {
		if c.EventID == eventID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayOrder < result[j].DisplayOrder })
	return result, nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	submissions map[string]*model.Submission
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{submissions: make(map[string]*model.Submission)}
}

func (m *mockSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	if submission.SubmissionID == "" {
		submission.SubmissionID = fmt.Sprintf("sub-%d", len(m.submissions)+1)
	}
	if submission.Status == "" {
		submission.Status = model.SubmissionSubmitted
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now()
	}
	m.submissions[submission.SubmissionID] = submission
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.submissions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) Update(_ context.Context, submission *model.Submission) error {
	m.submissions[submission.SubmissionID] = submission
	return nil
}

func (m *mockSubmissionRepo) ListByEvent(_ context.Context, eventID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.EventID == eventID && s.Status == model.SubmissionSubmitted {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].SubmissionID < result[j].SubmissionID
	})
	return result, nil
}

func (m *mockSubmissionRepo) ListByStudent(_ context.Context, studentID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.submissions {
		if s.StudentID == studentID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubmissionID < result[j].SubmissionID })
	return result, nil
}

func (m *mockSubmissionRepo) CountByEvent(_ context.Context, eventID string) (int64, error) {
	var count int64
	for _, s := range m.submissions {
		if s.EventID == eventID && s.Status == model.SubmissionSubmitted {
			count++
		}
	}
	return count, nil
}

func (m *mockSubmissionRepo) IncrementVoteCount(_ context.Context, id string) error {
	s, ok := m.submissions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.VoteCount++
	return nil
}

// ── Mock ScoreRepository ──

// mockScoreRepo 持有评分项与作品 mock 的引用，
// 以便在内存中完成权重联查与按赛事去重计数。
type mockScoreRepo struct {
	scores      map[string]*model.SubmissionScore // key: submissionID|criterionID|judgeID
	criteria    *mockCriterionRepo
	submissions *mockSubmissionRepo
}

func newMockScoreRepo(criteria *mockCriterionRepo, submissions *mockSubmissionRepo) *mockScoreRepo {
	return &mockScoreRepo{
		scores:      make(map[string]*model.SubmissionScore),
		criteria:    criteria,
		submissions: submissions,
	}
}

func (m *mockScoreRepo) Upsert(_ context.Context, score *model.SubmissionScore) error {
	key := score.SubmissionID + "|" + score.CriterionID + "|" + score.JudgeID
	if existing, ok := m.scores[key]; ok {
		existing.Score = score.Score
		existing.Feedback = score.Feedback
		existing.UpdatedAt = time.Now()
		return nil
	}
	if score.ScoreID == "" {
		score.ScoreID = fmt.Sprintf("score-%d", len(m.scores)+1)
	}
	m.scores[key] = score
	return nil
}

func (m *mockScoreRepo) ListBySubmission(_ context.Context, submissionID string) ([]model.SubmissionScore, error) {
	var result []model.SubmissionScore
	for _, s := range m.scores {
		if s.SubmissionID == submissionID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScoreID < result[j].ScoreID })
	return result, nil
}

func (m *mockScoreRepo) ListWithWeights(_ context.Context, submissionID string) ([]model.ScoreWithWeight, error) {
	var result []model.ScoreWithWeight
	for _, s := range m.scores {
		if s.SubmissionID != submissionID {
			continue
		}
		weight := 0
		if c, ok := m.criteria.criteria[s.CriterionID]; ok {
			weight = c.Weight
		}
		result = append(result, model.ScoreWithWeight{
			SubmissionID: s.SubmissionID,
			CriterionID:  s.CriterionID,
			JudgeID:      s.JudgeID,
			Score:        s.Score,
			Weight:       weight,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].JudgeID != result[j].JudgeID {
			return result[i].JudgeID < result[j].JudgeID
		}
		return result[i].CriterionID < result[j].CriterionID
	})
	return result, nil
}

func (m *mockScoreRepo) CountDistinctSubmissions(_ context.Context, eventID, judgeID string) (int64, error) {
	seen := make(map[string]bool)
	for _, s := range m.scores {
		if s.JudgeID != judgeID {
			continue
		}
		sub, ok := m.submissions.submissions[s.SubmissionID]
		if !ok || sub.EventID != eventID {
			continue
		}
		seen[s.SubmissionID] = true
	}
	return int64(len(seen)), nil
}

// ── Mock BadgeRepository ──

type mockBadgeRepo struct {
	badges    map[string]*model.Badge // key: submissionID
	upsertErr error                   // 注入写入失败
}

func newMockBadgeRepo() *mockBadgeRepo {
	return &mockBadgeRepo{badges: make(map[string]*model.Badge)}
}

func (m *mockBadgeRepo) UpsertBySubmission(_ context.Context, badge *model.Badge) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if existing, ok := m.badges[badge.SubmissionID]; ok {
		// 冲突时保留 credential_id 与 issued_at，仅刷新名次相关字段
		existing.Tier = badge.Tier
		existing.Rank = badge.Rank
		existing.WeightedScore = badge.WeightedScore
		existing.StudentName = badge.StudentName
		existing.SchoolName = badge.SchoolName
		existing.EventTitle = badge.EventTitle
		existing.UpdatedAt = time.Now()
		return nil
	}
	if badge.BadgeID == "" {
		badge.BadgeID = fmt.Sprintf("badge-%d", len(m.badges)+1)
	}
	if badge.IssuedAt.IsZero() {
		badge.IssuedAt = time.Now()
	}
	m.badges[badge.SubmissionID] = badge
	return nil
}

func (m *mockBadgeRepo) GetByCredentialID(_ context.Context, credentialID string) (*model.Badge, error) {
	for _, b := range m.badges {
		if b.CredentialID == credentialID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBadgeRepo) GetBySubmissionID(_ context.Context, submissionID string) (*model.Badge, error) {
	if b, ok := m.badges[submissionID]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBadgeRepo) ListByEvent(_ context.Context, eventID string) ([]model.Badge, error) {
	var result []model.Badge
	for _, b := range m.badges {
		if b.EventID == eventID {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Rank < result[j].Rank })
	return result, nil
}

// ── Mock VoteRepository ──

type mockVoteRepo struct {
	votes      map[string]*model.Vote // key: submissionID|voterHash
	existsMiss bool                   // Exists 恒返回 false，模拟读写竞态
}

func newMockVoteRepo() *mockVoteRepo {
	return &mockVoteRepo{votes: make(map[string]*model.Vote)}
}

func (m *mockVoteRepo) Create(_ context.Context, vote *model.Vote) error {
	key := vote.SubmissionID + "|" + vote.VoterHash
	if _, ok := m.votes[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if vote.VoteID == "" {
		vote.VoteID = fmt.Sprintf("vote-%d", len(m.votes)+1)
	}
	m.votes[key] = vote
	return nil
}

func (m *mockVoteRepo) Exists(_ context.Context, submissionID, voterHash string) (bool, error) {
	if m.existsMiss {
		// 模拟读取落后于并发写入
		return false, nil
	}
	_, ok := m.votes[submissionID+"|"+voterHash]
	return ok, nil
}

func (m *mockVoteRepo) CountBySubmission(_ context.Context, submissionID string) (int64, error) {
	var count int64
	for _, v := range m.votes {
		if v.SubmissionID == submissionID {
			count++
		}
	}
	return count, nil
}

// ── 测试用仓储组装 ──

// testMocks 聚合全部 mock 仓储，供各服务测试按需直访内部 map
type testMocks struct {
	users       *mockUserRepo
	schools     *mockSchoolRepo
	events      *mockEventRepo
	eventJudges *mockEventJudgeRepo
	criteria    *mockCriterionRepo
	submissions *mockSubmissionRepo
	scores      *mockScoreRepo
	badges      *mockBadgeRepo
	votes       *mockVoteRepo
	settings    *mockSiteSettingRepo
}

func newTestMocks() *testMocks {
	criteria := newMockCriterionRepo()
	submissions := newMockSubmissionRepo()
	return &testMocks{
		users:       newMockUserRepo(),
		schools:     newMockSchoolRepo(),
		events:      newMockEventRepo(),
		eventJudges: newMockEventJudgeRepo(),
		criteria:    criteria,
		submissions: submissions,
		scores:      newMockScoreRepo(criteria, submissions),
		badges:      newMockBadgeRepo(),
		votes:       newMockVoteRepo(),
		settings:    newMockSiteSettingRepo(),
	}
}

// repo 组装无数据库句柄的 Repository，事务退化为直接执行
func (m *testMocks) repo() *repository.Repository {
	return &repository.Repository{
		User:        m.users,
		School:      m.schools,
		Event:       m.events,
		EventJudge:  m.eventJudges,
		Criterion:   m.criteria,
		Submission:  m.submissions,
		Score:       m.scores,
		Badge:       m.badges,
		Vote:        m.votes,
		SiteSetting: m.settings,
	}
}

// ── Mock SiteSettingRepository ──

type mockSiteSettingRepo struct {
	settings map[string]*model.SiteSetting // key: setting key
}

func newMockSiteSettingRepo() *mockSiteSettingRepo {
	return &mockSiteSettingRepo{settings: make(map[string]*model.SiteSetting)}
}

func (m *mockSiteSettingRepo) Upsert(_ context.Context, setting *model.SiteSetting) error {
	if existing, ok := m.settings[setting.Key]; ok {
		existing.Value = setting.Value
		existing.UpdatedAt = time.Now()
		existing.UpdatedBy = setting.UpdatedBy
		return nil
	}
	if setting.SettingID == "" {
		setting.SettingID = fmt.Sprintf("setting-%d", len(m.settings)+1)
	}
	m.settings[setting.Key] = setting
	return nil
}

func (m *mockSiteSettingRepo) GetByKey(_ context.Context, key string) (*model.SiteSetting, error) {
	if s, ok := m.settings[key]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSiteSettingRepo) List(_ context.Context) ([]model.SiteSetting, error) {
	var result []model.SiteSetting
	for _, s := range m.settings {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (m *mockSiteSettingRepo) Delete(_ context.Context, key string) error {
	if _, ok := m.settings[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.settings, key)
	return nil
}
