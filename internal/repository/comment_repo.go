package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== CommentRepository 评论仓库 ====================

// CommentRepository 评论仓库接口
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	Delete(ctx context.Context, id, userID int64) (int64, error)
	DeleteByPost(ctx context.Context, postID int64) error
}

// ==================== 实现 ====================

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓库
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create 发表评论
func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID 获取评论
func (r *commentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &comment, err
}

// ListByPost 帖子的评论，按时间正序
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}

// Delete 删除自己的评论，作者不符视同不存在
func (r *commentRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}

// DeleteByPost 删帖时清掉帖子的全部评论行
func (r *commentRepository) DeleteByPost(ctx context.Context, postID int64) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.Comment{}).Error
}

// ==================== 事务支持 ====================

// SocialUnitOfWork 社区工作单元（事务）：
// 点赞/评论行的增删和帖子上的派生计数必须同事务更新
type SocialUnitOfWork struct {
	db       *gorm.DB
	Posts    PostRepository
	Comments CommentRepository
}

// NewSocialUnitOfWork 创建工作单元
func NewSocialUnitOfWork(db *gorm.DB) *SocialUnitOfWork {
	return &SocialUnitOfWork{
		db:       db,
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
	}
}

// Transaction 执行事务
func (u *SocialUnitOfWork) Transaction(ctx context.Context, fn func(uow *SocialUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &SocialUnitOfWork{
			db:       tx,
			Posts:    NewPostRepository(tx),
			Comments: NewCommentRepository(tx),
		}
		return fn(txUow)
	})
}
