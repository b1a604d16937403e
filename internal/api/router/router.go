package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jithuth/competeskool-final-sub001/config"
	"github.com/jithuth/competeskool-final-sub001/internal/api/handler"
	"github.com/jithuth/competeskool-final-sub001/internal/api/middleware"
	"github.com/jithuth/competeskool-final-sub001/internal/rbac"
	"github.com/jithuth/competeskool-final-sub001/pkg/jwt"
	"github.com/jithuth/competeskool-final-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查与指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公开路由（无需认证）
		public := v1.Group("/public")
		{
			public.POST("/register", h.Auth.Register)
			public.POST("/login", h.Auth.Login)
			public.POST("/refresh", h.Auth.RefreshToken)

			public.POST("/schools", h.School.RegisterSchool)
			public.GET("/schools", h.School.ListSchools)

			public.GET("/events", h.Event.ListEvents)
			public.GET("/events/calendar.ics", h.Export.ExportCalendar)
			public.GET("/events/:id", h.Event.GetEvent)
			public.GET("/events/:id/criteria", h.Criterion.ListCriteria)
			public.GET("/events/:id/leaderboard", h.Result.Leaderboard)

			public.GET("/verify/:credentialId", h.Badge.VerifyBadge)
			public.GET("/badge/:credentialId", h.Badge.RenderBadge)

			public.POST("/vote/:submissionId",
				middleware.RateLimit(rdb, cfg.Vote.RateLimit, cfg.Vote.RateWindow),
				h.Vote.Vote)

			public.GET("/site", h.Setting.GetSiteContent)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.GET("", middleware.RequireAction(rbac.ActionUserList), h.User.ListUsers)
				users.PUT("/:id/approval", middleware.RequireAction(rbac.ActionUserApprove), h.User.ApproveUser)
			}

			// 学校模块
			schools := authorized.Group("/schools")
			{
				schools.PUT("/:id/approval", middleware.RequireAction(rbac.ActionSchoolApprove), h.School.ApproveSchool)
			}

			// 赛事模块
			events := authorized.Group("/events")
			{
				events.POST("", middleware.RequireAction(rbac.ActionEventManage), h.Event.CreateEvent)
				events.PUT("/:id", middleware.RequireAction(rbac.ActionEventManage), h.Event.UpdateEvent)
				events.DELETE("/:id", middleware.RequireAction(rbac.ActionEventManage), h.Event.DeleteEvent)

				// 生命周期闸门
				events.PUT("/:id/status", middleware.RequireAction(rbac.ActionLifecycle), h.Event.AdvanceStatus)
				events.PUT("/:id/status/override", middleware.RequireAction(rbac.ActionLifecycle), h.Event.OverrideStatus)

				// 评委分配
				events.POST("/:id/judges", middleware.RequireAction(rbac.ActionJudgeAssign), h.Event.AssignJudge)
				events.DELETE("/:id/judges/:judgeId", middleware.RequireAction(rbac.ActionJudgeAssign), h.Event.RemoveJudge)
				events.GET("/:id/judges", middleware.RequireAction(rbac.ActionJudgeAssign), h.Event.ListJudges)

				// 评分项
				events.POST("/:id/criteria", middleware.RequireAction(rbac.ActionRubricEdit), h.Criterion.CreateCriterion)

				// 作品与评分进度
				events.GET("/:id/submissions", h.Submission.ListEventSubmissions)
				events.GET("/:id/progress", middleware.RequireAction(rbac.ActionScoreSubmit), h.Score.GetProgress)

				// 结果管线
				events.POST("/:id/results/compute", middleware.RequireAction(rbac.ActionResultsCompute), h.Result.ComputeResults)
				events.POST("/:id/results/publish", middleware.RequireAction(rbac.ActionResultsPublish), h.Result.PublishResults)
				events.GET("/:id/export", middleware.RequireAction(rbac.ActionExportResults), h.Export.ExportResults)
			}

			// 评分项模块（按 ID 操作）
			criteria := authorized.Group("/criteria")
			{
				criteria.PUT("/:id", middleware.RequireAction(rbac.ActionRubricEdit), h.Criterion.UpdateCriterion)
				criteria.DELETE("/:id", middleware.RequireAction(rbac.ActionRubricEdit), h.Criterion.DeleteCriterion)
			}

			// 作品模块
			submissions := authorized.Group("/submissions")
			{
				submissions.POST("", middleware.RequireAction(rbac.ActionSubmissionCreate), h.Submission.CreateSubmission)
				submissions.GET("/mine", h.Submission.ListMySubmissions)
				submissions.GET("/:id", h.Submission.GetSubmission)
				submissions.PUT("/:id/withdraw", middleware.RequireAction(rbac.ActionSubmissionCreate), h.Submission.WithdrawSubmission)

				// 评分
				submissions.PUT("/:id/scores", middleware.RequireAction(rbac.ActionScoreSubmit), h.Score.SubmitScore)
				submissions.GET("/:id/scores", middleware.RequireAction(rbac.ActionScoreRead), h.Score.ListScores)
			}

			// 站点配置模块
			settings := authorized.Group("/settings")
			{
				settings.GET("", middleware.RequireAction(rbac.ActionSettingsEdit), h.Setting.ListSettings)
				settings.PUT("", middleware.RequireAction(rbac.ActionSettingsEdit), h.Setting.UpsertSetting)
				settings.DELETE("/:key", middleware.RequireAction(rbac.ActionSettingsEdit), h.Setting.DeleteSetting)
			}
		}
	}

	return r
}
