package service

import (
	"context"
	"strings"

	"github.com/giftmart/internal/cache"
	"github.com/giftmart/internal/constants"
	"github.com/giftmart/internal/logger"
	"github.com/giftmart/internal/models"
	"github.com/giftmart/internal/repository"
)

// UserService 管理端用户服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List 用户列表
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	return s.userRepo.List(filter)
}

// Get 用户详情
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateStatus 封禁/解封用户，封禁时使缓存的鉴权快照失效。
func (s *UserService) UpdateStatus(id uint, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case constants.UserStatusActive, constants.UserStatusBlocked:
	default:
		return ErrInvalidUserStatus
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.UpdateStatus(id, status); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), id)

	logger.Infow("user_status_updated",
		"user_id", id,
		"from", user.Status,
		"to", status,
	)
	return nil
}
