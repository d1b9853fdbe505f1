package repository

import (
	"context"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== FollowRepository 关注仓库 ====================

// FollowRepository 关注关系仓库接口
type FollowRepository interface {
	Create(ctx context.Context, follow *model.Follow) error
	Delete(ctx context.Context, followerID, followingID int64) (int64, error)
	Exists(ctx context.Context, followerID, followingID int64) (bool, error)
	FollowingIDs(ctx context.Context, followerID int64) ([]int64, error)
	FollowerIDs(ctx context.Context, followingID int64) ([]int64, error)
	CountFollowing(ctx context.Context, followerID int64) (int64, error)
	CountFollowers(ctx context.Context, followingID int64) (int64, error)
	FollowedIDs(ctx context.Context, followerID int64, targetIDs []int64) (map[int64]bool, error)
}

// ==================== 实现 ====================

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository 创建关注仓库
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create 建立关注
func (r *followRepository) Create(ctx context.Context, follow *model.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

// Delete 取消关注，返回影响行数
func (r *followRepository) Delete(ctx context.Context, followerID, followingID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	return result.RowsAffected, result.Error
}

// Exists 是否已关注
func (r *followRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// FollowingIDs 我关注的人，最近关注在前
func (r *followRepository) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Order("created_at DESC").
		Pluck("following_id", &ids).Error
	return ids, err
}

// FollowerIDs 关注我的人，最近关注在前
func (r *followRepository) FollowerIDs(ctx context.Context, followingID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", followingID).
		Order("created_at DESC").
		Pluck("follower_id", &ids).Error
	return ids, err
}

// CountFollowing 关注数
func (r *followRepository) CountFollowing(ctx context.Context, followerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&count).Error
	return count, err
}

// CountFollowers 粉丝数
func (r *followRepository) CountFollowers(ctx context.Context, followingID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", followingID).
		Count(&count).Error
	return count, err
}

// FollowedIDs 批量查当前用户对一组作者的关注状态
func (r *followRepository) FollowedIDs(ctx context.Context, followerID int64, targetIDs []int64) (map[int64]bool, error) {
	followed := make(map[int64]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return followed, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, targetIDs).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}
