package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jithuth/competeskool-final-sub001/internal/model"
	"github.com/jithuth/competeskool-final-sub001/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNotReady     = errors.New("评分锁定前不能导出结果")
	ErrExportNoResults    = errors.New("该赛事暂无排名结果，请先计算")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 结果导出为 Excel (.xlsx)：排行榜 Sheet + 评分明细 Sheet
//   - 赛事日历导出为 iCalendar (.ics)，公开订阅
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportResults 导出赛事结果为 Excel
	ExportResults(ctx context.Context, eventID string) (*bytes.Buffer, string, error)
	// ExportCalendar 导出全部赛事为 ICS 日历
	ExportCalendar(ctx context.Context) (*bytes.Buffer, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportResults — 导出赛事结果为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "排行榜"：名次 | 档位 | 作品 | 学生 | 学校 | 加权分 | 票数
//   - Sheet "评分明细"：作品 | 评分项 | 评委 | 分数 | 评语
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportResults(ctx context.Context, eventID string) (*bytes.Buffer, string, error) {
	// 1. 查询赛事并校验阶段
	event, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEventNotFound
		}
		s.logger.Error("查询赛事失败", zap.Error(err))
		return nil, "", err
	}
	switch event.ResultsStatus {
	case model.ResultsScoringLocked, model.ResultsReview, model.ResultsPublished:
		// 可导出
	default:
		return nil, "", ErrExportNotReady
	}

	// 2. 查询排名结果（徽章即排名快照）
	badges, err := s.repo.Badge.ListByEvent(ctx, eventID)
	if err != nil {
		s.logger.Error("查询排名结果失败", zap.Error(err))
		return nil, "", err
	}
	if len(badges) == 0 {
		return nil, "", ErrExportNoResults
	}

	submissions, err := s.repo.Submission.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, "", err
	}
	byID := make(map[string]*model.Submission, len(submissions))
	for i := range submissions {
		byID[submissions[i].SubmissionID] = &submissions[i]
	}

	// 3. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	tierNames := map[string]string{
		model.TierGold:        "金奖",
		model.TierSilver:      "银奖",
		model.TierBronze:      "铜奖",
		model.TierParticipant: "参与奖",
	}

	// 排行榜 Sheet
	rankSheet := "排行榜"
	idx, _ := f.NewSheet(rankSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(rankSheet, "A", "B", 10)
	f.SetColWidth(rankSheet, "C", "E", 22)
	f.SetColWidth(rankSheet, "F", "G", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(rankSheet, "A1", fmt.Sprintf("%s — 排行榜", event.Title))
	f.MergeCell(rankSheet, "A1", "G1")
	f.SetCellStyle(rankSheet, "A1", "A1", headerStyle)

	row := 2
	headers := []string{"名次", "档位", "作品", "学生", "学校", "加权分", "票数"}
	for i, h := range headers {
		f.SetCellValue(rankSheet, cell(colName(i), row), h)
	}

	row = 3
	for i := range badges {
		b := &badges[i]
		title, votes := "", 0
		if sub, ok := byID[b.SubmissionID]; ok {
			title = sub.Title
			votes = sub.VoteCount
		}
		f.SetCellValue(rankSheet, cell("A", row), b.Rank)
		f.SetCellValue(rankSheet, cell("B", row), tierNames[b.Tier])
		f.SetCellValue(rankSheet, cell("C", row), title)
		f.SetCellValue(rankSheet, cell("D", row), b.StudentName)
		f.SetCellValue(rankSheet, cell("E", row), b.SchoolName)
		f.SetCellValue(rankSheet, cell("F", row), b.WeightedScore)
		f.SetCellValue(rankSheet, cell("G", row), votes)
		row++
	}

	// 评分明细 Sheet
	detailSheet := "评分明细"
	f.NewSheet(detailSheet)
	f.SetColWidth(detailSheet, "A", "C", 22)
	f.SetColWidth(detailSheet, "D", "D", 8)
	f.SetColWidth(detailSheet, "E", "E", 40)

	criteria, err := s.repo.Criterion.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, "", err
	}
	criterionLabels := make(map[string]string, len(criteria))
	for i := range criteria {
		criterionLabels[criteria[i].CriterionID] = criteria[i].Label
	}

	row = 1
	detailHeaders := []string{"作品", "评分项", "评委", "分数", "评语"}
	for i, h := range detailHeaders {
		f.SetCellValue(detailSheet, cell(colName(i), row), h)
	}

	row = 2
	for i := range submissions {
		sub := &submissions[i]
		scores, err := s.repo.Score.ListBySubmission(ctx, sub.SubmissionID)
		if err != nil {
			return nil, "", err
		}
		judgeNames := make(map[string]string)
		for j := range scores {
			label := criterionLabels[scores[j].CriterionID]
			judgeName, ok := judgeNames[scores[j].JudgeID]
			if !ok {
				if judge, err := s.repo.User.GetByID(ctx, scores[j].JudgeID); err == nil {
					judgeName = judge.Name
				} else {
					judgeName = scores[j].JudgeID
				}
				judgeNames[scores[j].JudgeID] = judgeName
			}
			f.SetCellValue(detailSheet, cell("A", row), sub.Title)
			f.SetCellValue(detailSheet, cell("B", row), label)
			f.SetCellValue(detailSheet, cell("C", row), judgeName)
			f.SetCellValue(detailSheet, cell("D", row), scores[j].Score)
			f.SetCellValue(detailSheet, cell("E", row), scores[j].Feedback)
			row++
		}
	}

	// 4. 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("结果_%s.xlsx", event.Title)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar — 导出赛事日历为 ICS
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCalendar(ctx context.Context) (*bytes.Buffer, error) {
	events, _, err := s.repo.Event.List(ctx, "", 0, 500)
	if err != nil {
		s.logger.Error("查询赛事列表失败", zap.Error(err))
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//competeskool//events//ZH")

	for i := range events {
		ev := cal.AddEvent(fmt.Sprintf("event-%s@competeskool", events[i].EventID))
		ev.SetCreatedTime(events[i].CreatedAt)
		ev.SetDtStampTime(time.Now())
		ev.SetAllDayStartAt(events[i].StartDate)
		// DTEND 按 RFC 5545 为开区间，结束日加一天
		ev.SetAllDayEndAt(events[i].EndDate.AddDate(0, 0, 1))
		ev.SetSummary(events[i].Title)
		if events[i].Description != "" {
			ev.SetDescription(events[i].Description)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
