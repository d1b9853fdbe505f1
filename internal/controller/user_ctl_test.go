package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/middleware"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
	"canyin_dev_v1_202602/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 请求构造辅助 ====================

func setupUserRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	ctrl := NewUserController(service.NewUserService(repository.NewUserRepository(db)))

	r := gin.New()
	r.POST("/api/user/register", ctrl.Register)
	r.GET("/api/user/login", ctrl.Login)

	// 鉴权路由：测试中间件直接注入用户身份
	auth := r.Group("/api", func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, int64(1))
		c.Set(middleware.ContextKeyUsername, "zhangsan")
		c.Next()
	})
	auth.GET("/user/profile", ctrl.GetProfile)
	return r, db
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法 JSON: %v", err)
	}
	return resp
}

// ==================== 信封约定测试 ====================

func TestRegisterAndLogin_Envelope(t *testing.T) {
	r, _ := setupUserRouter(t)

	// 注册成功
	w := performRequest(r, "POST", "/api/user/register", map[string]interface{}{
		"username": "zhangsan",
		"password": "secret123",
		"email":    "zs@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseEnvelope(t, w)
	assert.Equal(t, float64(200), resp["statusCode"])
	assert.Equal(t, "注册成功", resp["message"])
	assert.NotNil(t, resp["data"])

	// 重名注册：HTTP 仍为 200，业务码 409
	w = performRequest(r, "POST", "/api/user/register", map[string]interface{}{
		"username": "zhangsan",
		"password": "secret123",
		"email":    "zs2@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	resp = parseEnvelope(t, w)
	assert.Equal(t, float64(409), resp["statusCode"])
	assert.Nil(t, resp["data"])

	// 登录走查询参数
	w = performRequest(r, "GET", "/api/user/login?username=zhangsan&password=secret123", nil)
	resp = parseEnvelope(t, w)
	assert.Equal(t, float64(200), resp["statusCode"])
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	// 错误密码：业务码 400，提示不区分用户不存在和密码错误
	w = performRequest(r, "GET", "/api/user/login?username=zhangsan&password=wrong", nil)
	resp = parseEnvelope(t, w)
	assert.Equal(t, float64(400), resp["statusCode"])
}

func TestRegister_InvalidParams(t *testing.T) {
	r, _ := setupUserRouter(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{name: "空请求体", body: nil},
		{name: "缺少密码", body: map[string]interface{}{"username": "lisi", "email": "ls@example.com"}},
		{name: "缺少邮箱", body: map[string]interface{}{"username": "lisi", "password": "secret123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, "POST", "/api/user/register", tt.body)
			assert.Equal(t, http.StatusOK, w.Code)
			resp := parseEnvelope(t, w)
			assert.Equal(t, float64(400), resp["statusCode"])
		})
	}
}

func TestGetProfile_FromContext(t *testing.T) {
	r, db := setupUserRouter(t)

	db.Create(&model.User{Username: "zhangsan", Password: "x", Email: "zs@example.com", UserType: "user"})

	w := performRequest(r, "GET", "/api/user/profile", nil)
	resp := parseEnvelope(t, w)
	assert.Equal(t, float64(200), resp["statusCode"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "zhangsan", data["username"])
}
