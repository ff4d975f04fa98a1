package service

import (
	"errors"
	"fmt"

	"llmv-go/internal/config"
	"llmv-go/internal/dto"
	"llmv-go/internal/models"
	"llmv-go/internal/repository"
	"llmv-go/internal/utils"
)

// 认证相关的业务错误
var (
	// ErrUsernameTaken 用户名已被占用
	ErrUsernameTaken = errors.New("该用户名已被占用")
	// ErrBadCredentials 账号或密码不正确
	ErrBadCredentials = errors.New("账号或密码不正确")
	// ErrAccountDisabled 账号已被禁用
	ErrAccountDisabled = errors.New("账号已被禁用")
)

// AuthService 账户认证, 宿主平台账户体系的本地替身
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *utils.JWTManager
	cfg        *config.Config
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo *repository.UserRepository, jwtManager *utils.JWTManager, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		cfg:        cfg,
	}
}

// Register 注册新账号
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("检查用户名失败: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hashed,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}
	return user, nil
}

// Login 登录并签发Token
// 账号不存在和密码错误返回同一个错误, 不暴露账号是否存在
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrBadCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("签发Token失败: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserInfo(user),
	}, nil
}

// GetMe 获取当前用户信息
func (s *AuthService) GetMe(userID uint) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// InitAdmin 确保存在管理员账户
// 配置中的管理员密码既可以是明文也可以直接是bcrypt哈希
func (s *AuthService) InitAdmin() error {
	if admin, err := s.userRepo.GetAdmin(); err == nil && admin != nil {
		return nil
	}

	passwordHash := s.cfg.Admin.Password
	if !utils.IsBcryptHash(passwordHash) {
		hashed, err := utils.HashPassword(passwordHash)
		if err != nil {
			return fmt.Errorf("密码哈希失败: %w", err)
		}
		passwordHash = hashed
	}

	admin := &models.User{
		Username:     s.cfg.Admin.Username,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return fmt.Errorf("创建管理员失败: %w", err)
	}
	return nil
}

// toUserInfo 转换用户视图
func toUserInfo(user *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:       user.ID,
		Username: user.Username,
		TeamID:   user.TeamID,
		IsActive: user.IsActive,
		IsAdmin:  user.IsAdmin,
	}
}
