package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	Logger "cuca-backend/pkg/logger"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

// 认证相关的哨兵错误，控制器据此映射错误码
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrDuplicateAccount   = errors.New("username or email already in use")
	ErrMissingSecret      = errors.New("jwt secret key is not configured")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// InterfaceAuthTokenService 定义认证令牌服务接口，签发/校验/吊销为唯一的凭据机制
type InterfaceAuthTokenService interface {
	GenerateToken(user *models.User) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (*JWTClaims, error)
	RevokeToken(ctx context.Context, tokenString string) error
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, draft *RegisterDraft) (*models.User, error)
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterDraft 表示注册请求经过校验后的数据
type RegisterDraft struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// AuthTokenService 提供无状态JWT的签发、校验与吊销。
// 吊销通过Redis黑名单实现，Redis未配置时登出退化为客户端丢弃令牌。
type AuthTokenService struct {
	secretKey  string
	issuer     string
	expiration time.Duration
	DB         *gorm.DB
	Redis      InterfaceRedisService // 可为nil
}

// NewAuthTokenService 创建一个新的认证令牌服务
func NewAuthTokenService(cfg *config.Config, db *gorm.DB, redisService InterfaceRedisService) InterfaceAuthTokenService {
	return &AuthTokenService{
		secretKey:  cfg.JWTSecretKey,
		issuer:     "cuca-backend",
		expiration: cfg.JWTExpiration(),
		DB:         db,
		Redis:      redisService,
	}
}

// 1 GenerateToken 生成JWT令牌，密钥缺失时拒绝签发
func (s *AuthTokenService) GenerateToken(user *models.User) (string, error) {
	if s.secretKey == "" {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := &JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// 2 ValidateToken 验证JWT令牌并返回声明，过期、篡改或已吊销均返回错误
func (s *AuthTokenService) ValidateToken(ctx context.Context, tokenString string) (*JWTClaims, error) {
	if s.secretKey == "" {
		return nil, ErrMissingSecret
	}

	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	// 黑名单检查；Redis不可用时按令牌有效处理而不是拒绝所有请求
	if s.Redis != nil && claims.ID != "" {
		blocked, err := s.Redis.IsTokenBlocked(ctx, claims.ID)
		if err != nil {
			Logger.Warning("令牌黑名单查询失败: %v", err)
		} else if blocked {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// 3 RevokeToken 吊销令牌：将jti加入黑名单，TTL为剩余有效期
func (s *AuthTokenService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		// 无效或已过期的令牌无需吊销
		return nil
	}

	if s.Redis == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return s.Redis.BlocklistToken(ctx, claims.ID, ttl)
}

// 4 Login 处理用户登录：精确用户名匹配、bcrypt比对、停用账户拒绝
func (s *AuthTokenService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 不区分用户不存在和密码错误
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// bcrypt比较本身是常数时间的
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: &user}, nil
}

// 5 Register 注册新账户：哈希密码后直接插入，唯一约束冲突映射为重复账户错误。
// 不做先查后插，并发注册由存储层唯一索引兜底。
func (s *AuthTokenService) Register(ctx context.Context, draft *RegisterDraft) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := models.User{
		Username:  strings.TrimSpace(draft.Username),
		Email:     strings.TrimSpace(draft.Email),
		Password:  string(hashedPassword),
		FirstName: strings.TrimSpace(draft.FirstName),
		LastName:  strings.TrimSpace(draft.LastName),
		Phone:     strings.TrimSpace(draft.Phone),
		Role:      models.RoleUser,
		IsActive:  true,
	}

	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, err
	}

	return &user, nil
}
