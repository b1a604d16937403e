package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jithuth/competeskool-final-sub001/internal/dto"
	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/service"
	"github.com/jithuth/competeskool-final-sub001/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock BadgeService ──

type mockBadgeService struct {
	verifyResult *dto.BadgeResponse
	verifyErr    error
}

func (m *mockBadgeService) Verify(_ context.Context, _ string) (*dto.BadgeResponse, error) {
	return m.verifyResult, m.verifyErr
}

// ── Mock VoteService ──

type mockVoteService struct {
	voteErr error
}

func (m *mockVoteService) Vote(_ context.Context, _, _ string) error {
	return m.voteErr
}

// ── Mock ScoreService ──

type mockScoreService struct {
	submitResult   *dto.ScoreResponse
	submitErr      error
	listResult     []dto.ScoreResponse
	listErr        error
	progressResult *dto.JudgeProgressResponse
	progressErr    error
}

func (m *mockScoreService) Submit(_ context.Context, _, _ string, _ *dto.SubmitScoreRequest) (*dto.ScoreResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockScoreService) ListBySubmission(_ context.Context, _ string) ([]dto.ScoreResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockScoreService) Progress(_ context.Context, _, _ string) (*dto.JudgeProgressResponse, error) {
	return m.progressResult, m.progressErr
}

// ── Mock ResultService ──

type mockResultService struct {
	computeResult     *dto.ComputeResultsResponse
	computeErr        error
	publishErr        error
	leaderboardResult *dto.LeaderboardResponse
	leaderboardErr    error
}

func (m *mockResultService) ComputeResults(_ context.Context, _, _ string) (*dto.ComputeResultsResponse, error) {
	return m.computeResult, m.computeErr
}
func (m *mockResultService) Publish(_ context.Context, _, _ string) error {
	return m.publishErr
}
func (m *mockResultService) Leaderboard(_ context.Context, _ string) (*dto.LeaderboardResponse, error) {
	return m.leaderboardResult, m.leaderboardErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", model.RoleSuperAdmin)
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

func intPtr(v int) *int { return &v }

// ═══════════════════════════════════════════════════════════
// BadgeHandler Tests
// ═══════════════════════════════════════════════════════════

func TestBadgeHandler_VerifyBadge_Success(t *testing.T) {
	h := NewBadgeHandler(&mockBadgeService{
		verifyResult: &dto.BadgeResponse{
			CredentialID: "cred-abc",
			Tier:         model.TierGold,
			Rank:         1,
			StudentName:  "张三",
			EventTitle:   "校园科创大赛",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/public/verify/cred-abc", nil)

	r := gin.New()
	r.GET("/public/verify/:credentialId", h.VerifyBadge)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("期望 code=0，实际=%d", resp.Code)
	}
}

func TestBadgeHandler_VerifyBadge_NotFound(t *testing.T) {
	h := NewBadgeHandler(&mockBadgeService{verifyErr: service.ErrBadgeNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/public/verify/no-such", nil)

	r := gin.New()
	r.GET("/public/verify/:credentialId", h.VerifyBadge)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际=%d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15005 {
		t.Errorf("期望错误码 15005，实际=%d", resp.Code)
	}
}

func TestBadgeHandler_RenderBadge_SVG(t *testing.T) {
	h := NewBadgeHandler(&mockBadgeService{
		verifyResult: &dto.BadgeResponse{
			CredentialID:  "cred-abc",
			Tier:          model.TierGold,
			Rank:          1,
			WeightedScore: 92.5,
			StudentName:   "张三 <script>",
			SchoolName:    "第一中学",
			EventTitle:    "校园科创大赛",
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/public/badge/cred-abc", nil)

	r := gin.New()
	r.GET("/public/badge/:credentialId", h.RenderBadge)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Errorf("期望 SVG Content-Type，实际=%s", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<svg") {
		t.Error("响应应为 SVG 文档")
	}
	if strings.Contains(body, "<script>") {
		t.Error("持有人姓名应经过转义，不允许注入标签")
	}
	if !strings.Contains(body, "cred-abc") {
		t.Error("证书应包含凭证号")
	}
}

// ═══════════════════════════════════════════════════════════
// VoteHandler Tests
// ═══════════════════════════════════════════════════════════

func voteRequest(h *VoteHandler) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/public/vote/sub-1", nil)

	r := gin.New()
	r.POST("/public/vote/:submissionId", h.Vote)
	r.ServeHTTP(w, req)
	return w
}

func TestVoteHandler_Vote_Created(t *testing.T) {
	w := voteRequest(NewVoteHandler(&mockVoteService{}))
	if w.Code != http.StatusCreated {
		t.Errorf("期望 201，实际=%d", w.Code)
	}
}

func TestVoteHandler_Vote_Closed(t *testing.T) {
	w := voteRequest(NewVoteHandler(&mockVoteService{voteErr: service.ErrVotingClosed}))
	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际=%d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16001 {
		t.Errorf("期望错误码 16001，实际=%d", resp.Code)
	}
}

func TestVoteHandler_Vote_Duplicate(t *testing.T) {
	w := voteRequest(NewVoteHandler(&mockVoteService{voteErr: service.ErrAlreadyVoted}))
	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际=%d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 16002 {
		t.Errorf("期望错误码 16002，实际=%d", resp.Code)
	}
}

func TestVoteHandler_Vote_SubmissionNotFound(t *testing.T) {
	w := voteRequest(NewVoteHandler(&mockVoteService{voteErr: service.ErrSubmissionNotFound}))
	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ScoreHandler Tests
// ═══════════════════════════════════════════════════════════

func submitScore(h *ScoreHandler, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/submissions/sub-1/scores", body)
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/submissions/:id/scores", func(c *gin.Context) {
		setAuth(c)
		h.SubmitScore(c)
	})
	r.ServeHTTP(w, req)
	return w
}

func TestScoreHandler_SubmitScore_Success(t *testing.T) {
	h := NewScoreHandler(&mockScoreService{
		submitResult: &dto.ScoreResponse{SubmissionID: "sub-1", Score: 88},
	})

	w := submitScore(h, jsonBody(dto.SubmitScoreRequest{
		CriterionID: "3f0e8a68-3e65-4a26-bb19-2dfd9a9c9a01",
		Score:       intPtr(88),
	}))
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
}

func TestScoreHandler_SubmitScore_BadJSON(t *testing.T) {
	h := NewScoreHandler(&mockScoreService{})
	w := submitScore(h, bytes.NewReader([]byte("not json")))
	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际=%d", w.Code)
	}
}

func TestScoreHandler_SubmitScore_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode int
	}{
		{"评分锁定", service.ErrScoringLocked, http.StatusForbidden, 14001},
		{"分数越界", service.ErrScoreOutOfRange, http.StatusBadRequest, 14002},
		{"未分配评委", service.ErrJudgeNotAuthorized, http.StatusForbidden, 14003},
		{"评分项错配", service.ErrCriterionMismatch, http.StatusBadRequest, 14004},
		{"作品不存在", service.ErrSubmissionNotFound, http.StatusNotFound, 17001},
	}
	for _, tc := range cases {
		h := NewScoreHandler(&mockScoreService{submitErr: tc.err})
		w := submitScore(h, jsonBody(dto.SubmitScoreRequest{
			CriterionID: "3f0e8a68-3e65-4a26-bb19-2dfd9a9c9a01",
			Score:       intPtr(88),
		}))
		if w.Code != tc.wantHTTP {
			t.Errorf("%s: 期望 HTTP %d，实际=%d", tc.name, tc.wantHTTP, w.Code)
		}
		if resp := parseResponse(w); resp.Code != tc.wantCode {
			t.Errorf("%s: 期望错误码 %d，实际=%d", tc.name, tc.wantCode, resp.Code)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// ResultHandler Tests
// ═══════════════════════════════════════════════════════════

func TestResultHandler_ComputeResults_Success(t *testing.T) {
	h := NewResultHandler(&mockResultService{
		computeResult: &dto.ComputeResultsResponse{EventID: "event-1", Unscored: 0},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/events/event-1/results/compute", nil)

	r := gin.New()
	r.POST("/events/:id/results/compute", func(c *gin.Context) {
		setAuth(c)
		h.ComputeResults(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
}

func TestResultHandler_ComputeResults_PublishedConflict(t *testing.T) {
	h := NewResultHandler(&mockResultService{computeErr: service.ErrResultsPublished})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/events/event-1/results/compute", nil)

	r := gin.New()
	r.POST("/events/:id/results/compute", func(c *gin.Context) {
		setAuth(c)
		h.ComputeResults(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际=%d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15002 {
		t.Errorf("期望错误码 15002，实际=%d", resp.Code)
	}
}

func TestResultHandler_Leaderboard_NotPublished(t *testing.T) {
	h := NewResultHandler(&mockResultService{leaderboardErr: service.ErrResultsNotPublished})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/public/events/event-1/leaderboard", nil)

	r := gin.New()
	r.GET("/public/events/:id/leaderboard", h.Leaderboard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际=%d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 15003 {
		t.Errorf("期望错误码 15003，实际=%d", resp.Code)
	}
}

func TestResultHandler_Leaderboard_Success(t *testing.T) {
	h := NewResultHandler(&mockResultService{
		leaderboardResult: &dto.LeaderboardResponse{
			EventID:    "event-1",
			EventTitle: "校园科创大赛",
			Entries: []dto.RankedSubmissionResponse{
				{SubmissionID: "sub-1", Rank: 1, Tier: model.TierGold},
			},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/public/events/event-1/leaderboard", nil)

	r := gin.New()
	r.GET("/public/events/:id/leaderboard", h.Leaderboard)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("期望 code=0，实际=%d", resp.Code)
	}
}
