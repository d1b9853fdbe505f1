package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== FollowService 关注服务 ====================

// FollowService 关注服务
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifRepo  repository.NotificationRepository
	log        zerolog.Logger
}

// NewFollowService 创建关注服务
func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	log zerolog.Logger,
) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo, notifRepo: notifRepo, log: log}
}

// Follow 关注
// 校验顺序固定：先查自关注，再查对方存在，最后查重
func (s *FollowService) Follow(ctx context.Context, followerID, followingID int64) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	exists, err := s.userRepo.ExistsByID(ctx, followingID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	already, err := s.followRepo.Exists(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if already {
		return ErrAlreadyFollowing
	}

	if err := s.followRepo.Create(ctx, &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}); err != nil {
		// 并发下唯一键冲突视同已关注
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}

	// 通知尽力而为
	follower, err := s.userRepo.GetByID(ctx, followerID)
	if err == nil && follower != nil {
		fid := followerID
		notif := &model.Notification{
			UserID:      followingID,
			Type:        model.NotificationTypeFollow,
			Title:       "新粉丝",
			Content:     fmt.Sprintf("%s 关注了你", follower.Username),
			RelatedID:   &fid,
			RelatedType: "user",
		}
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			s.log.Warn().Err(err).Int64("following_id", followingID).Msg("写入关注通知失败")
		}
	}
	return nil
}

// Unfollow 取消关注
func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID int64) error {
	rows, err := s.followRepo.Delete(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFollowing
	}
	return nil
}

// IsFollowing 是否已关注
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followingID)
}

// FollowingList 我关注的人
func (s *FollowService) FollowingList(ctx context.Context, userID int64, page, limit int) (*dto.FollowListResp, error) {
	ids, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildUserList(ctx, ids, page, limit)
}

// FollowersList 关注我的人
func (s *FollowService) FollowersList(ctx context.Context, userID int64, page, limit int) (*dto.FollowListResp, error) {
	ids, err := s.followRepo.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildUserList(ctx, ids, page, limit)
}

// Stats 关注数和粉丝数
func (s *FollowService) Stats(ctx context.Context, userID int64) (*dto.FollowStatsResp, error) {
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowStatsResp{
		FollowingCount: following,
		FollowersCount: followers,
	}, nil
}

// buildUserList 把有序 ID 列表翻页并补全用户信息
func (s *FollowService) buildUserList(ctx context.Context, ids []int64, page, limit int) (*dto.FollowListResp, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	total := int64(len(ids))
	start := (page - 1) * limit
	if start > len(ids) {
		start = len(ids)
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}

	users := make([]dto.FollowUserResp, 0, end-start)
	for _, id := range ids[start:end] {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		users = append(users, dto.FollowUserResp{
			ID:         user.ID,
			Username:   user.Username,
			Avatar:     user.Avatar,
			Email:      user.Email,
			FollowTime: user.CreatedAt.Unix(),
		})
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &dto.FollowListResp{
		Users: users,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}, nil
}

// ==================== 错误定义 ====================

var (
	ErrSelfFollow       = errors.New("不能关注自己")
	ErrAlreadyFollowing = errors.New("已经关注过该用户")
	ErrNotFollowing     = errors.New("尚未关注该用户")
)
