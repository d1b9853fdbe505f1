package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== PostRepository 帖子仓库 ====================

// PostRepository 帖子仓库接口
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, offset, limit int) ([]model.Post, error)
	ListByUsers(ctx context.Context, userIDs []int64, offset, limit int) ([]model.Post, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]model.Post, error)
	Count(ctx context.Context) (int64, error)
	CountByUsers(ctx context.Context, userIDs []int64) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id, userID int64) (int64, error)
	IncrLikes(ctx context.Context, id int64, delta int) error
	IncrCommentCount(ctx context.Context, id int64, delta int) error
	HasLike(ctx context.Context, userID, postID int64) (bool, error)
	CreateLike(ctx context.Context, like *model.PostLike) error
	DeleteLike(ctx context.Context, userID, postID int64) (int64, error)
	DeleteLikesByPost(ctx context.Context, postID int64) error
	LikedPostIDs(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error)
}

// ==================== 实现 ====================

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建帖子仓库
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create 发布帖子
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID 获取帖子
func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &post, err
}

// List 全量流，新帖在前
func (r *postRepository) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ListByUsers 指定作者集合的流（关注页用）
func (r *postRepository) ListByUsers(ctx context.Context, userIDs []int64, offset, limit int) ([]model.Post, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

// ListByUser 单个作者的帖子
func (r *postRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Count 帖子总数
func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error
	return count, err
}

// CountByUsers 指定作者集合的帖子数
func (r *postRepository) CountByUsers(ctx context.Context, userIDs []int64) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("user_id IN ?", userIDs).
		Count(&count).Error
	return count, err
}

// CountByUser 单个作者的帖子数
func (r *postRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Delete 删除自己的帖子，作者不符视同不存在
func (r *postRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Post{})
	return result.RowsAffected, result.Error
}

// IncrLikes 点赞计数增减，减到 0 为止不出负数
func (r *postRepository) IncrLikes(ctx context.Context, id int64, delta int) error {
	expr := gorm.Expr("likes + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("CASE WHEN likes + ? < 0 THEN 0 ELSE likes + ? END", delta, delta)
	}
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update("likes", expr).Error
}

// IncrCommentCount 评论计数增减
func (r *postRepository) IncrCommentCount(ctx context.Context, id int64, delta int) error {
	expr := gorm.Expr("comment_count + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("CASE WHEN comment_count + ? < 0 THEN 0 ELSE comment_count + ? END", delta, delta)
	}
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update("comment_count", expr).Error
}

// HasLike 是否已点赞
func (r *postRepository) HasLike(ctx context.Context, userID, postID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// CreateLike 写入点赞行
func (r *postRepository) CreateLike(ctx context.Context, like *model.PostLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike 删除点赞行，返回影响行数
func (r *postRepository) DeleteLike(ctx context.Context, userID, postID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.PostLike{})
	return result.RowsAffected, result.Error
}

// DeleteLikesByPost 删帖时清掉帖子的全部点赞行
func (r *postRepository) DeleteLikesByPost(ctx context.Context, postID int64) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.PostLike{}).Error
}

// LikedPostIDs 批量查当前用户对一组帖子的点赞状态
func (r *postRepository) LikedPostIDs(ctx context.Context, userID int64, postIDs []int64) (map[int64]bool, error) {
	liked := make(map[int64]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
