package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/langchou/evlife/internal/models"
	"github.com/langchou/evlife/internal/repository"
)

// UserService 用户服务
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{logger: logger, users: users}
}

// RegisterUserInput 注册用户输入
type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
	Phone    *string
}

// Register 注册用户。口令只保存 bcrypt 散列；
// 邮箱重复时返回 ErrEmailTaken，存储不变。
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Get 通过 ID 获取用户
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return user, nil
}

// List 分页获取用户
func (s *UserService) List(ctx context.Context, skip, limit int) ([]*models.User, error) {
	return s.users.List(ctx, skip, limit)
}
