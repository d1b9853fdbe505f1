package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

// ==================== PostService 社区帖子服务 ====================

// 帖子流分类
const (
	FeedCategoryRecommend = "推荐"
	FeedCategoryNearby    = "附近" // 暂无定位能力，和推荐同源
	FeedCategoryFollow    = "关注"
)

// PostService 社区帖子服务
// 点赞/评论和帖子上的派生计数走工作单元事务，
// 响应里的计数是提交后回读的权威值
type PostService struct {
	uow         *repository.SocialUnitOfWork
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	userRepo    repository.UserRepository
}

// NewPostService 创建帖子服务
func NewPostService(
	uow *repository.SocialUnitOfWork,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		uow:         uow,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		userRepo:    userRepo,
	}
}

// ==================== 发帖 / 删帖 ====================

// CreatePost 发帖
// 媒体地址逗号拼接落库；image_urls 字段优先，否则拼 images+videos
func (s *PostService) CreatePost(ctx context.Context, userID int64, req *dto.CreatePostReq) (*dto.PostResp, error) {
	imageURLs := req.ImageURLs
	if imageURLs == "" {
		urls := append(append([]string{}, req.Images...), req.Videos...)
		imageURLs = strings.Join(urls, ",")
	}

	post := &model.Post{
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		ImageURLs: imageURLs,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := s.toPostResp(post, user, false, false)
	return &resp, nil
}

// DeletePost 删除自己的帖子，连带点赞行和评论行
func (s *PostService) DeletePost(ctx context.Context, userID, postID int64) error {
	return s.uow.Transaction(ctx, func(uow *repository.SocialUnitOfWork) error {
		rows, err := uow.Posts.Delete(ctx, postID, userID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrPostNotFound
		}
		if err := uow.Posts.DeleteLikesByPost(ctx, postID); err != nil {
			return err
		}
		return uow.Comments.DeleteByPost(ctx, postID)
	})
}

// ==================== 帖子流 ====================

// ListFeed 帖子流
// category 取 推荐/附近/关注；viewerID 为 0 表示未登录，
// 点赞/关注状态全为 false
func (s *PostService) ListFeed(ctx context.Context, viewerID int64, category string, page, limit int) (*dto.PostListResp, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	var (
		posts []model.Post
		total int64
		err   error
	)
	if category == FeedCategoryFollow {
		if viewerID == 0 {
			return s.emptyFeed(page, limit), nil
		}
		followingIDs, ferr := s.followRepo.FollowingIDs(ctx, viewerID)
		if ferr != nil {
			return nil, ferr
		}
		if len(followingIDs) == 0 {
			return s.emptyFeed(page, limit), nil
		}
		posts, err = s.postRepo.ListByUsers(ctx, followingIDs, offset, limit)
		if err != nil {
			return nil, err
		}
		total, err = s.postRepo.CountByUsers(ctx, followingIDs)
	} else {
		posts, err = s.postRepo.List(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		total, err = s.postRepo.Count(ctx)
	}
	if err != nil {
		return nil, err
	}

	items, err := s.enrichPosts(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	return &dto.PostListResp{
		Posts:      items,
		Pagination: paginate(page, limit, total),
	}, nil
}

// ListUserPosts 指定作者的帖子
func (s *PostService) ListUserPosts(ctx context.Context, viewerID, authorID int64, page, limit int) (*dto.PostListResp, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	posts, err := s.postRepo.ListByUser(ctx, authorID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.postRepo.CountByUser(ctx, authorID)
	if err != nil {
		return nil, err
	}

	items, err := s.enrichPosts(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}
	return &dto.PostListResp{
		Posts:      items,
		Pagination: paginate(page, limit, total),
	}, nil
}

// ==================== 点赞 ====================

// ToggleLike 点赞/取消点赞，返回提交后回读的权威计数
func (s *PostService) ToggleLike(ctx context.Context, userID, postID int64) (*dto.LikeResp, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	liked, err := s.postRepo.HasLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	err = s.uow.Transaction(ctx, func(uow *repository.SocialUnitOfWork) error {
		if liked {
			rows, err := uow.Posts.DeleteLike(ctx, userID, postID)
			if err != nil {
				return err
			}
			if rows == 0 {
				// 并发下已被另一请求取消
				return nil
			}
			return uow.Posts.IncrLikes(ctx, postID, -1)
		}

		if err := uow.Posts.CreateLike(ctx, &model.PostLike{UserID: userID, PostID: postID}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// 并发下已被另一请求点过，计数不再追加
				return nil
			}
			return err
		}
		return uow.Posts.IncrLikes(ctx, postID, 1)
	})
	if err != nil {
		return nil, err
	}

	// 回读权威计数
	fresh, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	likes := 0
	if fresh != nil {
		likes = fresh.Likes
	}
	return &dto.LikeResp{IsLiked: !liked, Likes: likes}, nil
}

// ==================== 评论 ====================

// CreateComment 发表评论，评论行和帖子计数同事务落库
func (s *PostService) CreateComment(ctx context.Context, userID int64, req *dto.CreateCommentReq) (*dto.CreateCommentResp, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		PostID:  req.PostID,
		UserID:  userID,
		Content: req.Content,
	}
	err = s.uow.Transaction(ctx, func(uow *repository.SocialUnitOfWork) error {
		if err := uow.Comments.Create(ctx, comment); err != nil {
			return err
		}
		return uow.Posts.IncrCommentCount(ctx, req.PostID, 1)
	})
	if err != nil {
		return nil, err
	}

	fresh, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	count := 0
	if fresh != nil {
		count = fresh.CommentCount
	}
	return &dto.CreateCommentResp{CommentID: comment.ID, CommentCount: count}, nil
}

// DeleteComment 删除自己的评论，帖子计数同事务回退
func (s *PostService) DeleteComment(ctx context.Context, userID, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.UserID != userID {
		return ErrCommentNotFound
	}

	return s.uow.Transaction(ctx, func(uow *repository.SocialUnitOfWork) error {
		rows, err := uow.Comments.Delete(ctx, commentID, userID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrCommentNotFound
		}
		return uow.Posts.IncrCommentCount(ctx, comment.PostID, -1)
	})
}

// ListComments 帖子的评论，附评论者信息
func (s *PostService) ListComments(ctx context.Context, postID int64) ([]dto.CommentResp, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CommentResp, 0, len(comments))
	for _, c := range comments {
		item := dto.CommentResp{
			ID:         c.ID,
			UserID:     c.UserID,
			PostID:     c.PostID,
			Content:    c.Content,
			Username:   "匿名用户",
			CreateTime: c.CreatedAt.Unix(),
		}
		if user, err := s.userRepo.GetByID(ctx, c.UserID); err == nil && user != nil {
			item.Username = user.Username
			item.Avatar = user.Avatar
		}
		result = append(result, item)
	}
	return result, nil
}

// ==================== 辅助方法 ====================

// enrichPosts 附加作者信息和观察者视角的点赞/关注状态
func (s *PostService) enrichPosts(ctx context.Context, viewerID int64, posts []model.Post) ([]dto.PostResp, error) {
	postIDs := make([]int64, len(posts))
	authorIDs := make([]int64, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDs[i] = p.UserID
	}

	liked := map[int64]bool{}
	followed := map[int64]bool{}
	if viewerID != 0 {
		var err error
		liked, err = s.postRepo.LikedPostIDs(ctx, viewerID, postIDs)
		if err != nil {
			return nil, err
		}
		followed, err = s.followRepo.FollowedIDs(ctx, viewerID, authorIDs)
		if err != nil {
			return nil, err
		}
	}

	result := make([]dto.PostResp, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		user, err := s.userRepo.GetByID(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		result = append(result, s.toPostResp(p, user, liked[p.ID], followed[p.UserID]))
	}
	return result, nil
}

// toPostResp 转换为 DTO
func (s *PostService) toPostResp(post *model.Post, user *model.User, isLiked, isFollowed bool) dto.PostResp {
	resp := dto.PostResp{
		ID:           post.ID,
		UserID:       post.UserID,
		Username:     "匿名用户",
		Title:        post.Title,
		Content:      post.Content,
		ImageURLs:    post.ImageURLs,
		Images:       []string{},
		Videos:       []string{},
		LikeCount:    post.Likes,
		CommentCount: post.CommentCount,
		IsLiked:      isLiked,
		IsFollowed:   isFollowed,
		CreateTime:   post.CreatedAt.Unix(),
	}
	if user != nil {
		resp.Username = user.Username
		resp.Avatar = user.Avatar
	}

	// 视频按扩展名从媒体串里分流
	for _, url := range strings.Split(post.ImageURLs, ",") {
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if isVideoURL(url) {
			resp.Videos = append(resp.Videos, url)
		} else {
			resp.Images = append(resp.Images, url)
		}
	}
	return resp
}

func isVideoURL(url string) bool {
	lower := strings.ToLower(url)
	for _, ext := range []string{".mp4", ".mov", ".avi", ".webm"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (s *PostService) emptyFeed(page, limit int) *dto.PostListResp {
	return &dto.PostListResp{
		Posts:      []dto.PostResp{},
		Pagination: paginate(page, limit, 0),
	}
}

// paginate 分页信息
func paginate(page, limit int, total int64) dto.Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return dto.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ==================== 错误定义 ====================

var (
	ErrPostNotFound    = errors.New("帖子不存在")
	ErrCommentNotFound = errors.New("评论不存在")
)
