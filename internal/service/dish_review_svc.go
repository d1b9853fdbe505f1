package service

import (
	"context"
	"errors"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== DishReviewService 菜品评价服务 ====================

// DishReviewService 菜品评价服务
type DishReviewService struct {
	reviewRepo repository.DishReviewRepository
	dishRepo   repository.DishRepository
	userRepo   repository.UserRepository
}

// NewDishReviewService 创建菜品评价服务
func NewDishReviewService(reviewRepo repository.DishReviewRepository, dishRepo repository.DishRepository, userRepo repository.UserRepository) *DishReviewService {
	return &DishReviewService{reviewRepo: reviewRepo, dishRepo: dishRepo, userRepo: userRepo}
}

// CreateReview 提交评价，同一用户对同一菜品重复提交覆盖旧评价
func (s *DishReviewService) CreateReview(ctx context.Context, userID, dishID int64, req *dto.CreateReviewReq) (*dto.ReviewResp, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	dish, err := s.dishRepo.GetByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, ErrDishNotFound
	}

	review := &model.DishReview{
		DishID:  dishID,
		UserID:  userID,
		Rating:  req.Rating,
		Content: req.Content,
	}
	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		return nil, err
	}

	// 覆盖路径下 Create 不回填 ID，重查拿权威行
	saved, err := s.reviewRepo.GetByDishAndUser(ctx, dishID, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toReviewResp(saved, user), nil
}

// ListReviews 菜品评价列表，附评价者信息
func (s *DishReviewService) ListReviews(ctx context.Context, dishID int64) ([]dto.ReviewResp, error) {
	dish, err := s.dishRepo.GetByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, ErrDishNotFound
	}

	reviews, err := s.reviewRepo.ListByDish(ctx, dishID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ReviewResp, 0, len(reviews))
	for i := range reviews {
		user, err := s.userRepo.GetByID(ctx, reviews[i].UserID)
		if err != nil {
			return nil, err
		}
		result = append(result, *s.toReviewResp(&reviews[i], user))
	}
	return result, nil
}

// toReviewResp 转换为 DTO，评价者可能已注销
func (s *DishReviewService) toReviewResp(review *model.DishReview, user *model.User) *dto.ReviewResp {
	resp := &dto.ReviewResp{
		ID:        review.ID,
		DishID:    review.DishID,
		UserID:    review.UserID,
		Username:  "匿名用户",
		Rating:    review.Rating,
		Content:   review.Content,
		CreatedAt: review.CreatedAt.UnixMilli(),
	}
	if user != nil {
		resp.Username = user.Username
		resp.Avatar = user.Avatar
	}
	return resp
}

// ==================== 错误定义 ====================

var ErrInvalidRating = errors.New("评分必须在 1 到 5 之间")
