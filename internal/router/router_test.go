package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"law_office_v1/internal/api/dto"
	"law_office_v1/internal/controller"
	"law_office_v1/internal/middleware"
	"law_office_v1/internal/model"
	"law_office_v1/internal/repository"
	"law_office_v1/internal/service"
	"law_office_v1/internal/task"
	"law_office_v1/pkg/database"
)

// ==================== 测试辅助 ====================

type fakeTasks struct {
	disabled bool
}

func (f *fakeTasks) TriggerMembershipRepair(context.Context) (int, error) {
	if f.disabled {
		return 0, task.ErrTaskDisabled
	}
	return 2, nil
}

func (f *fakeTasks) TriggerNotificationCleanup(context.Context) (int64, error) {
	if f.disabled {
		return 0, task.ErrTaskDisabled
	}
	return 5, nil
}

func (f *fakeTasks) Status() map[string]bool {
	return map[string]bool{"membership": !f.disabled, "notification": !f.disabled}
}

func setupTestRouter(t *testing.T, tasks controller.TaskTrigger, opsToken string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		t.Fatalf("注册校验规则失败: %v", err)
	}

	db, err := database.Open(database.Options{
		Driver:   "sqlite",
		DSN:      "file::memory:",
		LogLevel: logger.Silent,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		t.Fatalf("注册审计回调失败: %v", err)
	}
	if err := database.Migrate(db, model.RegisterJoinTables, model.AllModels()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	uow := repository.NewUnitOfWork(db)
	log := zap.NewNop()
	authService := service.NewAuthService(uow, nil)

	ctls := &Controllers{
		Auth:     controller.NewAuthController(authService, log),
		LawFirm:  controller.NewLawFirmController(service.NewLawFirmService(uow), service.NewJoinRequestService(uow), log),
		Group:    controller.NewGroupController(service.NewGroupService(uow), log),
		LawCase:  controller.NewLawCaseController(service.NewLawCaseService(uow), log),
		Customer: controller.NewCustomerController(service.NewCustomerService(uow), log),
		SubAgent: controller.NewSubAgentController(service.NewSubAgentService(uow), log),
		Board:    controller.NewBoardController(service.NewBoardService(uow), log),
		User:     controller.NewUserController(service.NewUserInfoService(uow), log),
	}
	if tasks != nil {
		ctls.Task = controller.NewTaskController(tasks, log)
	}

	return New(ctls, Options{
		Logger:         log,
		Sessions:       authService,
		SignUpInterval: time.Hour,
		OpsToken:       opsToken,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("编码请求体失败: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp controller.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析错误响应失败: %v, body = %s", err, w.Body.String())
	}
	return resp.Error
}

func signIn(t *testing.T, r *gin.Engine, id string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/v1/auths/session", "", map[string]string{"id": id, "password": "password"})
	if w.Code != http.StatusOK {
		t.Fatalf("登录失败: %d %s", w.Code, w.Body.String())
	}
	var tokens dto.TokenResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tokens); err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	return tokens.AccessToken
}

// ==================== 测试用例 ====================

func TestHealth(t *testing.T) {
	r := setupTestRouter(t, nil, "")
	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestLawFirmFlow(t *testing.T) {
	r := setupTestRouter(t, nil, "")

	signUp := map[string]string{
		"id":           "lawyer01",
		"password":     "password",
		"userType":     string(model.UserTypeLawyer),
		"serialNumber": "S-1",
		"issueNumber":  "I-1",
		"name":         "김변호",
	}
	if w := doJSON(t, r, http.MethodPost, "/v1/auths", "", signUp); w.Code != http.StatusOK {
		t.Fatalf("注册失败: %d %s", w.Code, w.Body.String())
	}

	// 同一 IP 在限流间隔内再次注册
	if w := doJSON(t, r, http.MethodPost, "/v1/auths", "", signUp); w.Code != http.StatusTooManyRequests {
		t.Errorf("重复注册 status = %d, want 429", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/v1/auths/session", "", map[string]string{"id": "lawyer01", "password": "wrong-password"})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != service.ErrInvalidIDOrPassword.Code {
		t.Errorf("错误密码: %d %s", w.Code, w.Body.String())
	}

	token := signIn(t, r, "lawyer01")

	if w := doJSON(t, r, http.MethodGet, "/v1/lawfirms", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("未登录 status = %d, want 401", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/v1/lawfirms", token, nil); w.Code != http.StatusBadRequest || errorCode(t, w) != "not_exist_lawfirm" {
		t.Errorf("未加入律所: %d %s", w.Code, w.Body.String())
	}

	if w := doJSON(t, r, http.MethodPost, "/v1/lawfirms", token, map[string]string{}); w.Code != http.StatusBadRequest || errorCode(t, w) != service.ErrInvalidParameter.Code {
		t.Errorf("缺少律所名称: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, "/v1/lawfirms", token, map[string]string{"name": "법무법인"}); w.Code != http.StatusOK {
		t.Fatalf("创建律所失败: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/v1/lawfirms", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("查询律所失败: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		LawFirm struct {
			Name     string `json:"name"`
			JoinCode string `json:"joinCode"`
		} `json:"lawFirm"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析律所失败: %v", err)
	}
	if resp.LawFirm.Name != "법무법인" {
		t.Errorf("name = %q", resp.LawFirm.Name)
	}
	oldCode := resp.LawFirm.JoinCode

	// 不带 joinCode 的更新不改加入码
	w = doJSON(t, r, http.MethodPut, "/v1/lawfirms", token, map[string]string{"address": "서울"})
	if w.Code != http.StatusOK {
		t.Fatalf("更新律所失败: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析律所失败: %v", err)
	}
	if resp.LawFirm.JoinCode != oldCode {
		t.Errorf("加入码不应变化: %q -> %q", oldCode, resp.LawFirm.JoinCode)
	}

	w = doJSON(t, r, http.MethodPut, "/v1/lawfirms", token, map[string]string{"joinCode": "randomStr"})
	if w.Code != http.StatusOK {
		t.Fatalf("重置加入码失败: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析律所失败: %v", err)
	}
	if code := resp.LawFirm.JoinCode; code == "" || code == oldCode || code == "randomStr" {
		t.Errorf("加入码未重新生成: %q -> %q", oldCode, code)
	}

	if w := doJSON(t, r, http.MethodGet, "/v1/lawfirms/groups", token, nil); w.Code != http.StatusOK {
		t.Errorf("查询分组失败: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodGet, "/v1/lawfirms/lawcases/abc", token, nil); w.Code != http.StatusBadRequest || errorCode(t, w) != service.ErrInvalidParameter.Code {
		t.Errorf("非法 idx: %d %s", w.Code, w.Body.String())
	}
}

func TestSignUp_Validation(t *testing.T) {
	r := setupTestRouter(t, nil, "")

	w := doJSON(t, r, http.MethodPost, "/v1/auths", "", map[string]string{
		"id": "abc", "password": "password", "userType": "ROBOT", "name": "x",
	})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != service.ErrInvalidParameter.Code {
		t.Errorf("非法 userType: %d %s", w.Code, w.Body.String())
	}
}

func TestSubAgentRoutes(t *testing.T) {
	r := setupTestRouter(t, nil, "")

	if w := doJSON(t, r, http.MethodPost, "/v1/auths", "", map[string]string{
		"id": "employee01", "password": "password", "userType": string(model.UserTypeEmployee), "name": "직원",
	}); w.Code != http.StatusOK {
		t.Fatalf("注册失败: %d %s", w.Code, w.Body.String())
	}
	token := signIn(t, r, "employee01")

	if w := doJSON(t, r, http.MethodGet, "/subagent/v1/courts", token, nil); w.Code != http.StatusOK {
		t.Errorf("法院列表: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/subagent/v1/boards/NOPE", token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("非法板块 status = %d, want 400", w.Code)
	}
	w := doJSON(t, r, http.MethodGet, "/subagent/v1/boards/LAWYER", token, nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != service.ErrHasNotPermission.Code {
		t.Errorf("职员访问律师板块: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodGet, "/subagent/v1/subagents?type=UNKNOWN", token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("非法视角 status = %d, want 400", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/subagent/v1/users", token, nil); w.Code != http.StatusOK {
		t.Errorf("个人资料: %d %s", w.Code, w.Body.String())
	}
}

func TestOpsRoutes(t *testing.T) {
	tests := []struct {
		name     string
		tasks    *fakeTasks
		opsToken string
		sent     string
		path     string
		method   string
		want     int
	}{
		{"未配置令牌时不注册", &fakeTasks{}, "", "", "/ops/tasks", http.MethodGet, http.StatusNotFound},
		{"令牌错误", &fakeTasks{}, "secret", "bad", "/ops/tasks", http.MethodGet, http.StatusUnauthorized},
		{"查询状态", &fakeTasks{}, "secret", "secret", "/ops/tasks", http.MethodGet, http.StatusOK},
		{"触发分组修复", &fakeTasks{}, "secret", "secret", "/ops/tasks/membership", http.MethodPost, http.StatusOK},
		{"任务已关闭", &fakeTasks{disabled: true}, "secret", "secret", "/ops/tasks/notifications", http.MethodPost, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupTestRouter(t, tt.tasks, tt.opsToken)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.sent != "" {
				req.Header.Set(middleware.HeaderOpsToken, tt.sent)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d, body = %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
