package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"law_office_v1/internal/controller"
	"law_office_v1/internal/middleware"
	"law_office_v1/pkg/metrics"

	_ "law_office_v1/docs"
)

// Controllers 路由依赖的控制器
type Controllers struct {
	Auth     *controller.AuthController
	LawFirm  *controller.LawFirmController
	Group    *controller.GroupController
	LawCase  *controller.LawCaseController
	Customer *controller.CustomerController
	SubAgent *controller.SubAgentController
	Board    *controller.BoardController
	User     *controller.UserController
	Task     *controller.TaskController
}

// Options 路由配置
type Options struct {
	Logger         *zap.Logger
	Sessions       middleware.SessionResolver
	Limiter        *middleware.RateLimiter
	SignUpInterval time.Duration
	AllowOrigins   []string
	EnableSwagger  bool
	EnableMetrics  bool
	OpsToken       string
}

// New 创建 gin 引擎并注册全部中间件与路由
func New(ctls *Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(opts.Logger))
	if opts.EnableMetrics {
		r.Use(middleware.Metrics())
	}
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))

	InitRoutes(r, ctls, opts)
	return r
}

func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Request-ID")
	if len(allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowOrigins
	}
	return cfg
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers, opts Options) {
	// 1. 运维路由
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.EnableMetrics {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	if opts.EnableSwagger {
		// 访问 http://localhost:8080/swagger/index.html 即可查看
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 未配置运维令牌时不开放
	if ctls.Task != nil && opts.OpsToken != "" {
		ops := r.Group("/ops/tasks", middleware.OpsToken(opts.OpsToken))
		ops.GET("", ctls.Task.Status)
		ops.POST("/membership", ctls.Task.RepairMembership)
		ops.POST("/notifications", ctls.Task.CleanupNotifications)
	}

	limiter := opts.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter()
	}
	session := middleware.Session(opts.Sessions)
	audit := middleware.AuditContext()
	requireLawFirm := middleware.RequireLawFirm()

	v1 := r.Group("/v1")
	{
		// auth 认证
		auths := v1.Group("/auths")
		{
			auths.POST("", middleware.RateLimitByIP(limiter, "sign_up", opts.SignUpInterval), ctls.Auth.SignUp)
			auths.POST("/session", ctls.Auth.SignIn)
			auths.POST("/session/refresh", ctls.Auth.Refresh)
		}

		// 未加入律所也可访问
		users := v1.Group("/users", session, audit)
		{
			joins := users.Group("/lawfirms/joins")
			joins.POST("", ctls.LawFirm.RequestJoin)
			joins.GET("", ctls.LawFirm.ListMyJoinRequests)
			joins.DELETE("/:idx", ctls.LawFirm.CancelJoinRequest)
		}
		v1.POST("/lawfirms", session, audit, ctls.LawFirm.Create)

		// 以下均要求已加入律所
		lawFirms := v1.Group("/lawfirms", session, audit, requireLawFirm)
		{
			lawFirms.PUT("", ctls.LawFirm.Update)
			lawFirms.GET("", ctls.LawFirm.Get)
			lawFirms.DELETE("", ctls.LawFirm.Disband)
			lawFirms.POST("/withdraw", ctls.LawFirm.Withdraw)
			lawFirms.PUT("/owner", ctls.LawFirm.ChangeOwner)

			// 分组
			groups := lawFirms.Group("/groups")
			groups.POST("", ctls.Group.Create)
			groups.GET("", ctls.Group.List)
			groups.PUT("/:groupIdx", ctls.Group.Update)
			groups.DELETE("/:groupIdx", ctls.Group.Remove)
			groups.PUT("/:groupIdx/permission", ctls.Group.UpdatePermission)
			groups.POST("/:groupIdx/users/:userIdx", ctls.Group.AddUser)
			groups.DELETE("/:groupIdx/users/:userIdx", ctls.Group.RemoveUser)

			// 加入申请
			joins := lawFirms.Group("/joins")
			joins.GET("", ctls.LawFirm.ListJoinRequests)
			joins.POST("/:idx", ctls.LawFirm.AcceptJoinRequest)
			joins.DELETE("/:idx", ctls.LawFirm.RejectJoinRequest)

			// 客户
			customers := lawFirms.Group("/customers")
			customers.POST("", ctls.Customer.Create)
			customers.GET("", ctls.Customer.List)
			customers.PUT("/:customerIdx", ctls.Customer.Update)
			customers.POST("/:customerIdx/consultings", ctls.Customer.CreateConsulting)
			customers.PUT("/:customerIdx/consultings/:consultingIdx", ctls.Customer.UpdateConsulting)

			// 案件
			lawCases := lawFirms.Group("/lawcases")
			lawCases.POST("", ctls.LawCase.Create)
			lawCases.GET("", ctls.LawCase.List)
			lawCases.GET("/:idx", ctls.LawCase.Get)
			lawCases.PUT("/:idx", ctls.LawCase.Update)
			lawCases.DELETE("/:idx", ctls.LawCase.Remove)
			lawCases.POST("/:idx/users/:userIdx", ctls.LawCase.AddUser)
			lawCases.DELETE("/:idx/users/:userIdx", ctls.LawCase.RemoveUser)
			lawCases.POST("/:idx/customers/:customerIdx", ctls.LawCase.AddCustomer)
			lawCases.DELETE("/:idx/customers/:customerIdx", ctls.LawCase.RemoveCustomer)
		}
	}

	sub := r.Group("/subagent/v1", session, audit)
	{
		sub.GET("/courts", ctls.SubAgent.Courts)

		// 委托
		subAgents := sub.Group("/subagents")
		subAgents.POST("", ctls.SubAgent.Create)
		subAgents.GET("", ctls.SubAgent.List)
		subAgents.GET("/histories", ctls.SubAgent.Histories)
		subAgents.GET("/:idx", ctls.SubAgent.Get)
		subAgents.PUT("/:idx", ctls.SubAgent.Update)
		subAgents.DELETE("/:idx", ctls.SubAgent.Remove)
		subAgents.POST("/:idx/requests", ctls.SubAgent.Request)
		subAgents.DELETE("/:idx/requests", ctls.SubAgent.Cancel)
		subAgents.PUT("/:idx/requests/:targetUserIdx", ctls.SubAgent.Accept)
		subAgents.DELETE("/:idx/requests/:targetUserIdx", ctls.SubAgent.Deny)

		// 社区
		boards := sub.Group("/boards/:boardType")
		boards.POST("", ctls.Board.Create)
		boards.GET("", ctls.Board.List)
		boards.GET("/:boardIdx", ctls.Board.Get)
		boards.PUT("/:boardIdx", ctls.Board.Update)
		boards.DELETE("/:boardIdx", ctls.Board.Remove)
		boards.POST("/:boardIdx/replies", ctls.Board.CreateReply)
		boards.GET("/:boardIdx/replies", ctls.Board.ListReplies)
		boards.PUT("/:boardIdx/replies/:replyIdx", ctls.Board.UpdateReply)
		boards.DELETE("/:boardIdx/replies/:replyIdx", ctls.Board.RemoveReply)

		// 用户资料
		sub.GET("/users", ctls.User.GetMe)
		sub.GET("/users/:userIdx", ctls.User.Get)
		sub.PUT("/users", ctls.User.Update)
	}
}
