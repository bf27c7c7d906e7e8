package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/vitrina-next/internal/cache"
	"github.com/vitrina-next/internal/config"
	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/logger"
	"github.com/vitrina-next/internal/models"
	"github.com/vitrina-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 后台认证与账号管理服务
type AuthService struct {
	cfg       *config.Config
	adminRepo repository.AdminRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		adminRepo: adminRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	AdminID      uint   `json:"admin_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(admin *models.AdminAccount) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		AdminID:      admin.ID,
		Email:        admin.Email,
		Role:         admin.Role,
		TokenVersion: admin.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.JWT.Issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// ResolveAuthState 校验 Token 对应账号仍然有效，优先读取 Redis 快照
func (s *AuthService) ResolveAuthState(ctx context.Context, claims *JWTClaims) (*cache.AdminAuthState, error) {
	if claims == nil || claims.AdminID == 0 {
		return nil, ErrInvalidToken
	}
	state, hit, err := cache.GetAdminAuthState(ctx, claims.AdminID)
	if err != nil {
		logger.Warnw("admin_auth_state_cache_read_failed", "admin_id", claims.AdminID, "error", err)
	}
	if !hit || state == nil {
		admin, err := s.adminRepo.GetByID(claims.AdminID)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			return nil, ErrTokenRevoked
		}
		state = cache.BuildAdminAuthState(admin)
		if err := cache.SetAdminAuthState(ctx, state); err != nil {
			logger.Warnw("admin_auth_state_cache_write_failed", "admin_id", admin.ID, "error", err)
		}
	}
	if state.Status != constants.AdminStatusActive {
		return nil, ErrAdminDisabled
	}
	if state.TokenVersion != claims.TokenVersion {
		return nil, ErrTokenRevoked
	}
	return state, nil
}

// Login 后台登录
func (s *AuthService) Login(email, password string) (*models.AdminAccount, string, time.Time, error) {
	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if admin.Status != constants.AdminStatusActive {
		return nil, "", time.Time{}, ErrAdminDisabled
	}

	token, expiresAt, err := s.GenerateJWT(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, "", time.Time{}, err
	}
	s.refreshAuthState(admin)
	return admin, token, expiresAt, nil
}

// ChangePassword 修改密码，旧 Token 全部失效
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	if err := s.VerifyPassword(admin.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}
	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	admin.PasswordHash = hashedPassword
	admin.TokenVersion++
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	s.refreshAuthState(admin)
	return nil
}

// CreateAdminInput 创建后台账号输入
type CreateAdminInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateAdminInput 更新后台账号输入，空字段表示不修改
type UpdateAdminInput struct {
	Name   *string
	Role   *string
	Status *string
}

// ListAdmins 后台账号列表
func (s *AuthService) ListAdmins() ([]models.AdminAccount, error) {
	return s.adminRepo.List()
}

// CreateAdmin 创建后台账号
func (s *AuthService) CreateAdmin(input CreateAdminInput) (*models.AdminAccount, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	role := constants.AdminRoleSME
	if raw := strings.TrimSpace(input.Role); raw != "" {
		normalized, ok := normalizeAdminRole(raw)
		if !ok {
			return nil, ErrAdminRoleInvalid
		}
		role = normalized
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	count, err := s.adminRepo.CountByEmail(email, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAdminEmailExists
	}
	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	admin := &models.AdminAccount{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       constants.AdminStatusActive,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// UpdateAdmin 更新账号角色、状态，不允许修改自己的角色与状态
func (s *AuthService) UpdateAdmin(operatorID, adminID uint, input UpdateAdminInput) (*models.AdminAccount, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	if operatorID == adminID && (input.Role != nil || input.Status != nil) {
		return nil, ErrAdminSelfModify
	}
	revoke := false
	if input.Name != nil {
		admin.Name = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		role, ok := normalizeAdminRole(*input.Role)
		if !ok {
			return nil, ErrAdminRoleInvalid
		}
		revoke = revoke || role != admin.Role
		admin.Role = role
	}
	if input.Status != nil {
		status, ok := normalizeAdminStatus(*input.Status)
		if !ok {
			return nil, ErrAdminStatusInvalid
		}
		revoke = revoke || status != admin.Status
		admin.Status = status
	}
	if revoke {
		admin.TokenVersion++
	}
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}
	s.refreshAuthState(admin)
	return admin, nil
}

// DeleteAdmin 删除账号
func (s *AuthService) DeleteAdmin(operatorID, adminID uint) error {
	if operatorID == adminID {
		return ErrAdminSelfModify
	}
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	if err := s.adminRepo.Delete(adminID); err != nil {
		return err
	}
	if err := cache.DelAdminAuthState(context.Background(), adminID); err != nil {
		logger.Warnw("admin_auth_state_cache_delete_failed", "admin_id", adminID, "error", err)
	}
	return nil
}

func (s *AuthService) refreshAuthState(admin *models.AdminAccount) {
	if err := cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin)); err != nil {
		logger.Warnw("admin_auth_state_cache_write_failed", "admin_id", admin.ID, "error", err)
	}
}

func normalizeAdminRole(raw string) (string, bool) {
	return matchStatus(raw, constants.AdminRoleSME, constants.AdminRoleSuperadmin)
}

func normalizeAdminStatus(raw string) (string, bool) {
	return matchStatus(raw, constants.AdminStatusActive, constants.AdminStatusInactive, constants.AdminStatusSuspended)
}

func isValidEmail(email string) bool {
	if email == "" || len(email) > 200 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
