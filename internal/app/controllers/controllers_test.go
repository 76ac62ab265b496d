package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cuca-backend/internal/app/middleware"
	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/domain/services/container"
	"cuca-backend/internal/infrastructure/config"
)

// testEnv 控制器层测试环境：内存数据库 + 服务容器 + 路由
type testEnv struct {
	DB        *gorm.DB
	Container *container.ServiceContainer
	Router    *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ContactMessage{},
		&models.AnalyticsEvent{},
		&models.FanPhoto{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{JWTSecretKey: "test-secret-key", JWTExpiresHours: 1}
	c := container.NewServiceContainer(db, cfg, nil)

	r := gin.New()
	authService := c.GetAuthTokenService()

	api := r.Group("/api")
	{
		api.POST("/auth/register", HandleAuthFunc(c, "register"))
		api.POST("/auth/login", HandleAuthFunc(c, "login"))
		api.POST("/contact", HandleContactFunc(c, "submitMessage"))
		api.GET("/products", HandleProductFunc(c, "getProducts"))
		api.GET("/products/:id", HandleProductFunc(c, "getProduct"))
		api.GET("/fan-photos", HandleFanPhotoFunc(c, "getApprovedPhotos"))
		api.POST("/analytics/events",
			middleware.OptionalAuthentication(authService),
			HandleAnalyticsFunc(c, "recordEvent"))
	}

	authenticated := api.Group("")
	authenticated.Use(middleware.Authentication(authService))
	{
		authenticated.POST("/auth/logout", HandleAuthFunc(c, "logout"))
		authenticated.GET("/auth/user", HandleAuthFunc(c, "getUser"))
		authenticated.POST("/orders", HandleOrderFunc(c, "createOrder"))
		authenticated.GET("/orders", HandleOrderFunc(c, "getMyOrders"))
		authenticated.GET("/orders/:id", HandleOrderFunc(c, "getOrder"))
		authenticated.POST("/fan-photos", HandleFanPhotoFunc(c, "submitPhoto"))
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Authentication(authService), middleware.RequireAdmin())
	{
		admin.POST("/products", HandleProductFunc(c, "createProduct"))
		admin.GET("/orders", HandleOrderFunc(c, "getAllOrders"))
		admin.PUT("/orders/:id/status", HandleOrderFunc(c, "updateOrderStatus"))
		admin.PUT("/users/:id/status", HandleUserFunc(c, "setUserActive"))
		admin.GET("/contact-messages", HandleContactFunc(c, "getAllMessages"))
		admin.PUT("/fan-photos/:id/status", HandleFanPhotoFunc(c, "moderatePhoto"))
	}

	return &testEnv{DB: db, Container: c, Router: r}
}

// do 发送JSON请求
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// decode 解析响应体
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerAndLogin 注册并登录，返回token
func (e *testEnv) registerAndLogin(t *testing.T, username, email, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":  username,
		"email":     email,
		"password":  password,
		"firstName": "Test",
		"lastName":  "User",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return e.login(t, username, password)
}

// login 登录并返回token
func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

// adminToken 创建管理员账户并登录
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	e.registerAndLogin(t, "admin", "admin@cuca.ao", "segredo1")
	require.NoError(t, e.DB.Model(&models.User{}).
		Where("username = ?", "admin").
		Update("role", models.RoleAdmin).Error)

	// 重新登录以拿到携带管理员角色的令牌
	return e.login(t, "admin", "segredo1")
}
