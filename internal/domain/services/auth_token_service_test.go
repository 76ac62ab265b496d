package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

func newAuthService(t *testing.T, redisService InterfaceRedisService) (InterfaceAuthTokenService, *config.Config) {
	t.Helper()
	cfg := newTestConfig()
	db := newTestDB(t)
	return NewAuthTokenService(cfg, db, redisService), cfg
}

func newMiniredisService(t *testing.T) InterfaceRedisService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisServiceWithClient(client)
}

func TestRegisterAndLoginRoundtrip(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterDraft{
		Username:  "usuario",
		Email:     "usuario@example.com",
		Password:  "123456",
		FirstName: "Ana",
		LastName:  "Silva",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)

	// 存储的是bcrypt哈希而不是明文
	assert.NotEqual(t, "123456", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("123456")))

	result, err := svc.Login(ctx, "usuario", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)

	claims, err := svc.ValidateToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "usuario", claims.Username)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDraft{
		Username: "usuario",
		Email:    "usuario@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "usuario", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthService(t, nil)

	_, err := svc.Login(context.Background(), "nobody", "123456")
	// 用户不存在与密码错误返回同一个错误，不泄露账户是否存在
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	cfg := newTestConfig()
	db := newTestDB(t)
	svc := NewAuthTokenService(cfg, db, nil)
	ctx := context.Background()

	user, err := svc.Register(ctx, &RegisterDraft{
		Username: "usuario",
		Email:    "usuario@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err = svc.Login(ctx, "usuario", "123456")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	cfg := newTestConfig()
	db := newTestDB(t)
	svc := NewAuthTokenService(cfg, db, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDraft{
		Username: "usuario",
		Email:    "usuario@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterDraft{
		Username: "usuario",
		Email:    "outro@example.com",
		Password: "123456",
	})
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	// 冲突的注册不会留下新行
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDraft{
		Username: "usuario",
		Email:    "usuario@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterDraft{
		Username: "outro",
		Email:    "usuario@example.com",
		Password: "123456",
	})
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthTokenService(&config.Config{JWTSecretKey: ""}, db, nil)

	_, err := svc.GenerateToken(&models.User{Username: "usuario"})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

// signTestToken 用给定过期时间签发令牌，用于过期边界测试
func signTestToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()

	claims := &JWTClaims{
		UserID:   1,
		Username: "usuario",
		Role:     models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "boundary-test",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateTokenExpiryBoundary(t *testing.T) {
	svc, cfg := newAuthService(t, nil)
	ctx := context.Background()

	// 过期前一刻仍然有效
	stillValid := signTestToken(t, cfg.JWTSecretKey, time.Now().Add(30*time.Second))
	_, err := svc.ValidateToken(ctx, stillValid)
	assert.NoError(t, err)

	// 过期后一刻被拒绝
	expired := signTestToken(t, cfg.JWTSecretKey, time.Now().Add(-time.Second))
	_, err = svc.ValidateToken(ctx, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateTokenTampered(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	// 用错误密钥签发的令牌必须被拒绝
	forged := signTestToken(t, "another-secret", time.Now().Add(time.Hour))
	_, err := svc.ValidateToken(ctx, forged)
	assert.Error(t, err)
}

func TestRevokeTokenBlocksReuse(t *testing.T) {
	redisService := newMiniredisService(t)
	cfg := newTestConfig()
	db := newTestDB(t)
	svc := NewAuthTokenService(cfg, db, redisService)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDraft{
		Username: "usuario",
		Email:    "usuario@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "usuario", "123456")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(ctx, result.Token))

	_, err = svc.ValidateToken(ctx, result.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRevokeTokenWithoutRedis(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterDraft{
		Username: "usuario",
		Email:    "usuario@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "usuario", "123456")
	require.NoError(t, err)

	// Redis未配置时登出不报错，令牌由客户端丢弃
	assert.NoError(t, svc.RevokeToken(ctx, result.Token))

	_, err = svc.ValidateToken(ctx, result.Token)
	assert.NoError(t, err)
}

func TestRevokeInvalidTokenIsNoop(t *testing.T) {
	svc, _ := newAuthService(t, newMiniredisService(t))

	assert.NoError(t, svc.RevokeToken(context.Background(), "not-a-token"))
}
