package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canyin_dev_v1_202602/internal/api/dto"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
)

func setupPostSvcTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	// 单连接串行化，避免内存库在并发下各连各的库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&model.Post{}, &model.PostLike{}, &model.Comment{}, &model.Follow{}, &model.User{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(
		repository.NewSocialUnitOfWork(db),
		repository.NewPostRepository(db),
		repository.NewCommentRepository(db),
		repository.NewFollowRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestPostService_CreatePostJoinsMedia(t *testing.T) {
	db := setupPostSvcTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	db.Create(&model.User{Username: "作者", Password: "x"})

	post, err := svc.CreatePost(ctx, 1, &dto.CreatePostReq{
		Title:   "今日推荐",
		Content: "招牌红烧肉上新",
		Images:  []string{"/img/a.jpg", "/img/b.jpg"},
		Videos:  []string{"/video/c.mp4"},
	})
	if err != nil {
		t.Fatalf("发帖失败: %v", err)
	}
	if post.ImageURLs != "/img/a.jpg,/img/b.jpg,/video/c.mp4" {
		t.Errorf("image_urls = %q", post.ImageURLs)
	}
	// 读取侧按扩展名拆分图片和视频
	if len(post.Images) != 2 || len(post.Videos) != 1 {
		t.Errorf("images = %v, videos = %v", post.Images, post.Videos)
	}
}

func TestPostService_ToggleLike(t *testing.T) {
	db := setupPostSvcTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	db.Create(&model.User{Username: "作者", Password: "x"})
	post, _ := svc.CreatePost(ctx, 1, &dto.CreatePostReq{Title: "t", Content: "c"})

	liked, err := svc.ToggleLike(ctx, 2, post.ID)
	if err != nil {
		t.Fatalf("点赞失败: %v", err)
	}
	if !liked.IsLiked || liked.Likes != 1 {
		t.Errorf("点赞后 = %+v, want isLiked=true likes=1", liked)
	}

	unliked, err := svc.ToggleLike(ctx, 2, post.ID)
	if err != nil {
		t.Fatalf("取消点赞失败: %v", err)
	}
	if unliked.IsLiked || unliked.Likes != 0 {
		t.Errorf("取消后 = %+v, want isLiked=false likes=0", unliked)
	}

	_, err = svc.ToggleLike(ctx, 2, 999)
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("不存在的帖子 err = %v, want ErrPostNotFound", err)
	}
}

func TestPostService_ConcurrentToggleLikeConsistent(t *testing.T) {
	db := setupPostSvcTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	db.Create(&model.User{Username: "作者", Password: "x"})
	post, _ := svc.CreatePost(ctx, 1, &dto.CreatePostReq{Title: "t", Content: "c"})

	// 同一用户并发连点：唯一键冲突的输家按无操作处理，
	// 不向上抛裸存储错误，计数最终与点赞行数一致
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := svc.ToggleLike(ctx, 2, post.ID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("并发点赞 err = %v, want nil", err)
	}

	var rows int64
	db.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&rows)
	var fresh model.Post
	db.First(&fresh, post.ID)
	if int64(fresh.Likes) != rows {
		t.Errorf("likes = %d, 点赞行数 = %d, 两者应一致", fresh.Likes, rows)
	}
	if fresh.Likes < 0 {
		t.Errorf("likes = %d, 不应为负", fresh.Likes)
	}
}

func TestPostService_CommentCountStaysConsistent(t *testing.T) {
	db := setupPostSvcTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	db.Create(&model.User{Username: "作者", Password: "x"})
	post, _ := svc.CreatePost(ctx, 1, &dto.CreatePostReq{Title: "t", Content: "c"})

	// 并发评论，计数必须与评论行数一致
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		i := i
		g.Go(func() error {
			_, err := svc.CreateComment(ctx, 2, &dto.CreateCommentReq{
				PostID:  post.ID,
				Content: fmt.Sprintf("评论 %d", i),
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("并发评论失败: %v", err)
	}

	var fresh model.Post
	db.First(&fresh, post.ID)
	var rows int64
	db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&rows)
	if int64(fresh.CommentCount) != rows || rows != 10 {
		t.Errorf("comment_count = %d, 评论行数 = %d, want 10/10", fresh.CommentCount, rows)
	}

	// 删评回退计数
	comments, _ := svc.ListComments(ctx, post.ID)
	if err := svc.DeleteComment(ctx, 2, comments[0].ID); err != nil {
		t.Fatalf("删评失败: %v", err)
	}
	db.First(&fresh, post.ID)
	if fresh.CommentCount != 9 {
		t.Errorf("删评后 comment_count = %d, want 9", fresh.CommentCount)
	}

	// 不能删别人的评论
	err := svc.DeleteComment(ctx, 3, comments[1].ID)
	if !errors.Is(err, ErrCommentNotFound) {
		t.Errorf("删他人评论 err = %v, want ErrCommentNotFound", err)
	}
}

func TestPostService_DeletePostCascades(t *testing.T) {
	db := setupPostSvcTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	db.Create(&model.User{Username: "作者", Password: "x"})
	post, _ := svc.CreatePost(ctx, 1, &dto.CreatePostReq{Title: "t", Content: "c"})
	svc.ToggleLike(ctx, 2, post.ID)
	svc.CreateComment(ctx, 2, &dto.CreateCommentReq{PostID: post.ID, Content: "评论"})

	// 他人删帖被拒
	if err := svc.DeletePost(ctx, 2, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("删他人帖 err = %v, want ErrPostNotFound", err)
	}

	if err := svc.DeletePost(ctx, 1, post.ID); err != nil {
		t.Fatalf("删帖失败: %v", err)
	}

	// 点赞行和评论行一并清掉
	var likes, comments int64
	db.Model(&model.PostLike{}).Where("post_id = ?", post.ID).Count(&likes)
	db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
	if likes != 0 || comments != 0 {
		t.Errorf("删帖残留 likes=%d comments=%d, want 0/0", likes, comments)
	}
}

func TestPostService_FollowFeed(t *testing.T) {
	db := setupPostSvcTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	db.Create(&model.User{Username: "被关注的人", Password: "x"})
	db.Create(&model.User{Username: "路人", Password: "x"})
	svc.CreatePost(ctx, 1, &dto.CreatePostReq{Title: "关注流内", Content: "a"})
	svc.CreatePost(ctx, 2, &dto.CreatePostReq{Title: "关注流外", Content: "b"})

	// 观察者 9 只关注用户 1
	db.Create(&model.Follow{FollowerID: 9, FollowingID: 1})

	feed, err := svc.ListFeed(ctx, 9, FeedCategoryFollow, 1, 10)
	if err != nil {
		t.Fatalf("查询关注流失败: %v", err)
	}
	if len(feed.Posts) != 1 || feed.Posts[0].Title != "关注流内" {
		t.Errorf("关注流 = %+v, want 只含用户 1 的帖子", feed.Posts)
	}
	if !feed.Posts[0].IsFollowed {
		t.Error("关注流内帖子 isFollowed 应为 true")
	}

	// 未登录的关注流为空
	anon, _ := svc.ListFeed(ctx, 0, FeedCategoryFollow, 1, 10)
	if len(anon.Posts) != 0 {
		t.Errorf("未登录关注流 = %d 条, want 0", len(anon.Posts))
	}

	// 推荐流含全部帖子
	all, _ := svc.ListFeed(ctx, 9, FeedCategoryRecommend, 1, 10)
	if len(all.Posts) != 2 {
		t.Errorf("推荐流 = %d 条, want 2", len(all.Posts))
	}
}
