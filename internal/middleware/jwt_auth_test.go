package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "zhangsan", "merchant")
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析 token 失败: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "zhangsan" || claims.UserType != "merchant" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestGuestTokenExpiry(t *testing.T) {
	token, err := GenerateGuestToken("桌5顾客", time.Hour)
	if err != nil {
		t.Fatalf("生成临时 token 失败: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("解析临时 token 失败: %v", err)
	}
	if claims.UserID != 0 || claims.UserType != "customer" {
		t.Errorf("claims = %+v, want uid=0 type=customer", claims)
	}

	// 已过期的 token 解析失败
	expired, _ := GenerateGuestToken("桌5顾客", -time.Minute)
	if _, err := ParseToken(expired); err == nil {
		t.Error("过期 token 不应解析成功")
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/protected", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": GetUserID(c), "type": GetUserType(c)})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "无认证头", header: "", wantStatus: http.StatusUnauthorized},
		{name: "格式错误", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "伪造 token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}

	token, _ := GenerateToken(7, "lisi", "user")
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("合法 token status = %d, want 200", w.Code)
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/feed", OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": GetUserID(c)})
	})

	// 未登录放行，uid 为 0
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/feed", nil))
	if w.Code != http.StatusOK {
		t.Errorf("未登录 status = %d, want 200", w.Code)
	}

	// 伪造 token 也放行，当作未登录
	req := httptest.NewRequest("GET", "/feed", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("伪造 token status = %d, want 200", w.Code)
	}
}
