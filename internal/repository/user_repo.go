package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== UserRepository 用户仓库 ====================

// UserRepository 用户仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByHuaweiOpenID(ctx context.Context, openID string) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) (int64, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdateLastLogin(ctx context.Context, id int64) error
	Search(ctx context.Context, keyword string, excludeID int64, limit int) ([]model.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID 根据 ID 获取用户
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetByHuaweiOpenID 根据华为 OpenID 获取用户
func (r *userRepository) GetByHuaweiOpenID(ctx context.Context, openID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("huawei_open_id = ?", openID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// UpdateProfile 部分更新资料，返回影响行数
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// UpdatePassword 更新密码
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}

// UpdateEmail 更新邮箱
func (r *userRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("email", email).Error
}

// UpdateLastLogin 更新最后登录时间
func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

// Search 按用户名/邮箱模糊搜索，结果不含 excludeID 本人
func (r *userRepository) Search(ctx context.Context, keyword string, excludeID int64, limit int) ([]model.User, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", pattern, pattern)
	}
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var users []model.User
	err := query.Order("username").Limit(limit).Find(&users).Error
	return users, err
}

// ExistsByID 检查用户是否存在
func (r *userRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
