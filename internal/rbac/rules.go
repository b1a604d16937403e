package rbac

import (
	"github.com/jithuth/competeskool-final-sub001/internal/model"
)

// ── 操作动作 ──
//
// 所有写路径的权限判断收敛到这一张 (action → roles) 表，
// 不在各 Handler 里散落 role 分支。

const (
	ActionUserList         = "user:list"
	ActionUserApprove      = "user:approve"
	ActionSchoolApprove    = "school:approve"
	ActionEventManage      = "event:manage"
	ActionJudgeAssign      = "event:judge_assign"
	ActionLifecycle        = "event:lifecycle"
	ActionRubricEdit       = "rubric:edit"
	ActionScoreSubmit      = "score:submit"
	ActionScoreRead        = "score:read"
	ActionResultsCompute   = "results:compute"
	ActionResultsPublish   = "results:publish"
	ActionSubmissionCreate = "submission:create"
	ActionExportResults    = "export:results"
	ActionSettingsEdit     = "settings:edit"
)

// rules 动作 → 允许的角色
var rules = map[string][]string{
	ActionUserList:         {model.RoleSuperAdmin},
	ActionUserApprove:      {model.RoleSuperAdmin, model.RoleTeacher},
	ActionSchoolApprove:    {model.RoleSuperAdmin},
	ActionEventManage:      {model.RoleSuperAdmin},
	ActionJudgeAssign:      {model.RoleSuperAdmin},
	ActionLifecycle:        {model.RoleSuperAdmin},
	ActionRubricEdit:       {model.RoleSuperAdmin},
	ActionScoreSubmit:      {model.RoleJudge},
	ActionScoreRead:        {model.RoleSuperAdmin, model.RoleJudge},
	ActionResultsCompute:   {model.RoleSuperAdmin},
	ActionResultsPublish:   {model.RoleSuperAdmin},
	ActionSubmissionCreate: {model.RoleStudent},
	ActionExportResults:    {model.RoleSuperAdmin, model.RoleTeacher},
	ActionSettingsEdit:     {model.RoleSuperAdmin},
}

// Can 判定角色是否允许执行动作
func Can(role, action string) bool {
	allowed, ok := rules[action]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
