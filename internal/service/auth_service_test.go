package service

import (
	"errors"
	"testing"
	"time"

	"llmv-go/internal/config"
	"llmv-go/internal/dto"
	"llmv-go/internal/models"
	"llmv-go/internal/repository"
	"llmv-go/internal/utils"
)

func newAuthService(t *testing.T) (*AuthService, *config.Config) {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{
		Admin: config.AdminConfig{Username: "admin", Password: "admin-secret"},
	}
	jwtManager := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	return NewAuthService(repository.NewUserRepository(db), jwtManager, cfg), cfg
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(&dto.RegisterRequest{Username: "player_1", Password: "secret123"})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if user.IsAdmin {
		t.Error("注册的账号不应是管理员")
	}

	resp, err := svc.Login(&dto.LoginRequest{Username: "player_1", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("登录应签发Token")
	}
	if resp.User.Username != "player_1" {
		t.Errorf("用户信息错误: %s", resp.User.Username)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.Register(&dto.RegisterRequest{Username: "player_1", Password: "secret123"}); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	_, err := svc.Register(&dto.RegisterRequest{Username: "player_1", Password: "another123"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("期望ErrUsernameTaken, 实际: %v", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.Register(&dto.RegisterRequest{Username: "player_1", Password: "secret123"}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 账号不存在和密码错误返回同一个错误
	if _, err := svc.Login(&dto.LoginRequest{Username: "player_1", Password: "wrong"}); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("密码错误期望ErrBadCredentials, 实际: %v", err)
	}
	if _, err := svc.Login(&dto.LoginRequest{Username: "nobody", Password: "secret123"}); !errors.Is(err, ErrBadCredentials) {
		t.Errorf("账号不存在期望ErrBadCredentials, 实际: %v", err)
	}
}

func TestInitAdminIdempotent(t *testing.T) {
	svc, cfg := newAuthService(t)

	if err := svc.InitAdmin(); err != nil {
		t.Fatalf("初始化管理员失败: %v", err)
	}
	if err := svc.InitAdmin(); err != nil {
		t.Fatalf("重复初始化失败: %v", err)
	}

	resp, err := svc.Login(&dto.LoginRequest{Username: cfg.Admin.Username, Password: cfg.Admin.Password})
	if err != nil {
		t.Fatalf("管理员登录失败: %v", err)
	}
	if !resp.User.IsAdmin {
		t.Error("初始化的账号应是管理员")
	}
}

func TestInitAdminAcceptsBcryptHash(t *testing.T) {
	db := newTestDB(t)

	hashed, err := utils.HashPassword("pre-hashed-secret")
	if err != nil {
		t.Fatalf("生成哈希失败: %v", err)
	}
	cfg := &config.Config{
		Admin: config.AdminConfig{Username: "admin", Password: hashed},
	}
	jwtManager := utils.NewJWTManager("test-secret", "HS256", time.Hour)
	svc := NewAuthService(repository.NewUserRepository(db), jwtManager, cfg)

	if err := svc.InitAdmin(); err != nil {
		t.Fatalf("初始化管理员失败: %v", err)
	}

	// 配置中已是哈希时不再二次哈希
	var admin models.User
	if err := db.Where("is_admin = ?", true).First(&admin).Error; err != nil {
		t.Fatalf("查询管理员失败: %v", err)
	}
	if admin.PasswordHash != hashed {
		t.Error("哈希密码被二次处理")
	}
	if _, err := svc.Login(&dto.LoginRequest{Username: "admin", Password: "pre-hashed-secret"}); err != nil {
		t.Fatalf("管理员登录失败: %v", err)
	}
}
