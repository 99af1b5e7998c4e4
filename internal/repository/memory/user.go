package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/langchou/evlife/internal/models"
	"github.com/langchou/evlife/internal/repository"
)

// UserRepository 内存用户仓库。
// 邮箱唯一性通过索引表在持锁状态下检查并插入，对调用方原子。
type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string // email -> id（区分大小写）
	order   []string          // 插入顺序
}

// NewUserRepository 创建内存用户仓库
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

// Create 插入用户，邮箱重复返回 ErrEmailTaken
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}

	user.ID = uuid.NewString()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	stored := *user
	r.users[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	r.order = append(r.order, stored.ID)
	return nil
}

// GetByID 通过 ID 获取用户
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := *user
	return &u, nil
}

// List 按注册先后顺序返回用户
func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := page(r.order, skip, limit)
	out := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		u := *r.users[id]
		out = append(out, &u)
	}
	return out, nil
}

// page 对有序 ID 切片应用 skip/limit，越界返回空
func page(ids []string, skip, limit int) []string {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if skip >= len(ids) {
		return nil
	}
	end := skip + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[skip:end]
}
