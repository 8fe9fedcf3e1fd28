package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ltizzi/PZTools/internal/server/models"
	"github.com/Ltizzi/PZTools/internal/server/store"
	"github.com/Ltizzi/PZTools/internal/shared/utils"
)

// 认证相关业务错误
var (
	// ErrUsernameTaken 用户名已被占用
	ErrUsernameTaken = errors.New("用户名已存在")
	// ErrInvalidCredentials 用户名或密码错误，不区分具体原因
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	// ErrPasswordTooShort 密码长度不足
	ErrPasswordTooShort = errors.New("密码长度不能少于4位")
	// ErrEmptyCredentials 用户名或密码为空
	ErrEmptyCredentials = errors.New("用户名和密码不能为空")
)

// MinPasswordLength 密码最小长度
const MinPasswordLength = 4

// UserService 用户服务
type UserService struct {
	users store.UserStore
}

// NewUserService 创建用户服务
func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// Register 注册新用户
func (us *UserService) Register(username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	// 检查用户名是否已存在
	if _, err := us.users.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	now := time.Now()
	user := &models.User{
		Username:   username,
		Password:   hashedPassword,
		LastActive: &now,
	}
	if err := us.users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login 用户登录。查无此人和密码错误返回同一错误，避免泄露用户是否存在。
func (us *UserService) Login(username, password string) (*models.User, error) {
	user, err := us.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 更新最后活跃时间
	now := time.Now()
	if err := us.users.UpdateLastActive(user.ID, now); err != nil {
		return nil, err
	}
	user.LastActive = &now

	return user, nil
}

// GetUserByID 根据ID获取用户
func (us *UserService) GetUserByID(id uint) (*models.User, error) {
	return us.users.FindByID(id)
}
