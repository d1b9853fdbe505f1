package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/middleware"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
	"canyin_dev_v1_202602/pkg/utils"
)

// ==================== UserService 用户服务 ====================

// UserService 用户服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ==================== 认证相关 ====================

// Register 用户注册
func (s *UserService) Register(ctx context.Context, req *dto.RegisterReq) (*dto.UserInfoResp, error) {
	// 检查用户名是否存在
	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	// 加密密码
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: hashed,
		Email:    req.Email,
		Avatar:   req.Avatar,
		UserType: model.UserTypeUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.toUserInfo(user, ""), nil
}

// Login 用户登录
// 用户不存在和密码错误返回同一个错误，不向外泄露账号是否存在
func (s *UserService) Login(ctx context.Context, username, password string) (*dto.UserInfoResp, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, user.UserType)
	if err != nil {
		return nil, err
	}

	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	return s.toUserInfo(user, token), nil
}

// HuaweiLogin 华为账号登录，首次登录自动建号
func (s *UserService) HuaweiLogin(ctx context.Context, openID, unionID, nickname string) (*dto.UserInfoResp, error) {
	if openID == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByHuaweiOpenID(ctx, openID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// 首登建号：随机密码占位，不可用密码方式登录
		placeholder, err := utils.HashPassword(uuid.NewString())
		if err != nil {
			return nil, err
		}
		username := nickname
		if username == "" {
			username = fmt.Sprintf("华为用户_%s", openID[:8])
		}
		user = &model.User{
			Username:     username,
			Password:     placeholder,
			UserType:     model.UserTypeCustomer,
			HuaweiOpenID: &openID,
		}
		if unionID != "" {
			user.HuaweiUnionID = &unionID
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, user.UserType)
	if err != nil {
		return nil, err
	}

	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	return s.toUserInfo(user, token), nil
}

// GuestSession 顾客扫码临时会话
// 不落用户表，签一个 customer 类型短时 Token
func (s *UserService) GuestSession(ctx context.Context, tableID string) (*dto.GuestSessionResp, error) {
	if tableID == "" {
		return nil, ErrTableRequired
	}

	ttl := 2 * time.Hour
	username := fmt.Sprintf("桌%s顾客", tableID)
	token, err := middleware.GenerateGuestToken(username, ttl)
	if err != nil {
		return nil, err
	}

	return &dto.GuestSessionResp{
		Token:     token,
		TableID:   tableID,
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}

// ==================== 资料相关 ====================

// GetProfile 获取当前用户信息
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserInfoResp, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserInfo(user, ""), nil
}

// UpdateProfile 更新资料，nil 字段不动
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileReq) (*dto.UserInfoResp, error) {
	fields := map[string]interface{}{}
	if req.Username != nil {
		// 改名要查重
		existing, err := s.userRepo.GetByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrUsernameExists
		}
		fields["username"] = *req.Username
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if len(fields) == 0 {
		return nil, ErrNothingToUpdate
	}

	rows, err := s.userRepo.UpdateProfile(ctx, userID, fields)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUserNotFound
	}

	return s.GetProfile(ctx, userID)
}

// UpdatePassword 修改密码，旧密码必须验证通过
func (s *UserService) UpdatePassword(ctx context.Context, userID int64, req *dto.UpdatePasswordReq) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !utils.VerifyPassword(req.OldPassword, user.Password) {
		return ErrInvalidOldPassword
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// UpdateEmail 修改邮箱
func (s *UserService) UpdateEmail(ctx context.Context, userID int64, email string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.UpdateEmail(ctx, userID, email)
}

// SearchUsers 按关键字搜索用户，结果不含搜索者本人
func (s *UserService) SearchUsers(ctx context.Context, callerID int64, keyword string, limit int) ([]dto.SearchUserResp, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	users, err := s.userRepo.Search(ctx, keyword, callerID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SearchUserResp, 0, len(users))
	for _, u := range users {
		item := dto.SearchUserResp{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Type:      u.UserType,
			Avatar:    u.Avatar,
			CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if u.LastLogin != nil {
			item.LastLogin = u.LastLogin.Format("2006-01-02 15:04:05")
		}
		result = append(result, item)
	}
	return result, nil
}

// ==================== 辅助方法 ====================

// toUserInfo 转换为 DTO
func (s *UserService) toUserInfo(user *model.User, token string) *dto.UserInfoResp {
	return &dto.UserInfoResp{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		UserType: user.UserType,
		Avatar:   user.Avatar,
		Address:  user.Address,
		Token:    token,
	}
}

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = errors.New("用户不存在或密码错误")
	ErrUsernameExists     = errors.New("用户名已存在")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidOldPassword = errors.New("原密码错误")
	ErrNothingToUpdate    = errors.New("没有需要更新的字段")
	ErrTableRequired      = errors.New("缺少桌号")
)
