package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/config"
	"law_office_v1/internal/controller"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
	"law_office_v1/internal/router"
	"law_office_v1/internal/service"
	"law_office_v1/internal/task"
	"law_office_v1/pkg/database"
	"law_office_v1/pkg/logger"
)

// ==================== 依赖容器 ====================

type application struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *gorm.DB
	UoW      *repository.UnitOfWork
	Services *services
}

type services struct {
	Auth        *service.AuthService
	LawFirm     *service.LawFirmService
	JoinRequest *service.JoinRequestService
	Group       *service.GroupService
	LawCase     *service.LawCaseService
	Customer    *service.CustomerService
	SubAgent    *service.SubAgentService
	Board       *service.BoardService
	UserInfo    *service.UserInfoService
}

// bootstrap 加载配置、连接数据库并建表
func bootstrap(env string) (*application, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.App.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTTL,
		Issuer:          cfg.JWT.Issuer,
	})
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	logLevel := gormlogger.Info
	if cfg.App.IsProduction() {
		logLevel = gormlogger.Warn
	}
	db, err := database.Open(database.Options{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		LogLevel: logLevel,
	})
	if err != nil {
		return nil, err
	}
	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		return nil, fmt.Errorf("注册审计回调失败: %w", err)
	}

	if err := database.Migrate(db, model.RegisterJoinTables, model.AllModels()...); err != nil {
		return nil, err
	}

	uow := repository.NewUnitOfWork(db)
	return &application{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		UoW:      uow,
		Services: newServices(uow, cfg),
	}, nil
}

func newServices(uow *repository.UnitOfWork, cfg *config.Config) *services {
	throttle := middleware.NewSignInThrottle(middleware.NewRateLimiter(), cfg.Auth.SignInInterval)
	return &services{
		Auth:        service.NewAuthService(uow, throttle),
		LawFirm:     service.NewLawFirmService(uow),
		JoinRequest: service.NewJoinRequestService(uow),
		Group:       service.NewGroupService(uow),
		LawCase:     service.NewLawCaseService(uow),
		Customer:    service.NewCustomerService(uow),
		SubAgent:    service.NewSubAgentService(uow),
		Board:       service.NewBoardService(uow),
		UserInfo:    service.NewUserInfoService(uow),
	}
}

func newControllers(svc *services, tasks controller.TaskTrigger, log *zap.Logger) *router.Controllers {
	return &router.Controllers{
		Auth:     controller.NewAuthController(svc.Auth, log),
		LawFirm:  controller.NewLawFirmController(svc.LawFirm, svc.JoinRequest, log),
		Group:    controller.NewGroupController(svc.Group, log),
		LawCase:  controller.NewLawCaseController(svc.LawCase, log),
		Customer: controller.NewCustomerController(svc.Customer, log),
		SubAgent: controller.NewSubAgentController(svc.SubAgent, log),
		Board:    controller.NewBoardController(svc.Board, log),
		User:     controller.NewUserController(svc.UserInfo, log),
		Task:     controller.NewTaskController(tasks, log),
	}
}

func newTaskManager(app *application) *task.TaskManager {
	cfg := app.Config.Task
	return task.NewTaskManager(app.UoW, app.Logger, &task.TaskManagerConfig{
		MembershipEnabled:     cfg.MembershipRepairSpec != "",
		MembershipSpec:        cfg.MembershipRepairSpec,
		NotificationEnabled:   cfg.NotificationCleanupSpec != "",
		NotificationSpec:      cfg.NotificationCleanupSpec,
		NotificationRetention: cfg.NotificationRetention(),
	})
}

// seed 空库时写入默认律所
func (app *application) seed(ctx context.Context) error {
	lawFirm, err := app.Services.LawFirm.Seed(ctx)
	if err != nil {
		return fmt.Errorf("写入默认律所失败: %w", err)
	}
	if lawFirm != nil {
		app.Logger.Info("已创建默认律所", zap.Int64("law_firm_id", lawFirm.ID))
	}
	return nil
}

// Close 释放数据库连接并刷新日志
func (app *application) Close() {
	if sqlDB, err := app.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = app.Logger.Sync()
}
