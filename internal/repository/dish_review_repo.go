package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"canyin_dev_v1_202602/internal/model"
)

// ==================== DishReviewRepository 菜品评价仓库 ====================

// DishRatingStat 菜品评分聚合
type DishRatingStat struct {
	DishID      int64
	AvgRating   float64
	ReviewCount int64
}

// DishReviewRepository 菜品评价仓库接口
type DishReviewRepository interface {
	Upsert(ctx context.Context, review *model.DishReview) error
	GetByDishAndUser(ctx context.Context, dishID, userID int64) (*model.DishReview, error)
	ListByDish(ctx context.Context, dishID int64) ([]model.DishReview, error)
	RatingStats(ctx context.Context, dishIDs []int64) (map[int64]DishRatingStat, error)
}

// ==================== 实现 ====================

type dishReviewRepository struct {
	db *gorm.DB
}

// NewDishReviewRepository 创建菜品评价仓库
func NewDishReviewRepository(db *gorm.DB) DishReviewRepository {
	return &dishReviewRepository{db: db}
}

// Upsert 同一用户对同一菜品重复评价时覆盖旧评价
func (r *dishReviewRepository) Upsert(ctx context.Context, review *model.DishReview) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "dish_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "content", "updated_at"}),
	}).Create(review).Error
}

// GetByDishAndUser 查询用户对菜品的评价
func (r *dishReviewRepository) GetByDishAndUser(ctx context.Context, dishID, userID int64) (*model.DishReview, error) {
	var review model.DishReview
	err := r.db.WithContext(ctx).
		Where("dish_id = ? AND user_id = ?", dishID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &review, err
}

// ListByDish 菜品评价，新评在前
func (r *dishReviewRepository) ListByDish(ctx context.Context, dishID int64) ([]model.DishReview, error) {
	var reviews []model.DishReview
	err := r.db.WithContext(ctx).
		Where("dish_id = ?", dishID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// RatingStats 批量聚合一组菜品的均分与评价数
func (r *dishReviewRepository) RatingStats(ctx context.Context, dishIDs []int64) (map[int64]DishRatingStat, error) {
	stats := make(map[int64]DishRatingStat, len(dishIDs))
	if len(dishIDs) == 0 {
		return stats, nil
	}
	var rows []DishRatingStat
	err := r.db.WithContext(ctx).
		Model(&model.DishReview{}).
		Select("dish_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count").
		Where("dish_id IN ?", dishIDs).
		Group("dish_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats[row.DishID] = row
	}
	return stats, nil
}
