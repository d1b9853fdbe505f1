package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"canyin_dev_v1_202602/internal/controller"
	"canyin_dev_v1_202602/internal/middleware"
	"canyin_dev_v1_202602/internal/model"
	"canyin_dev_v1_202602/internal/repository"
	"canyin_dev_v1_202602/internal/router"
	"canyin_dev_v1_202602/internal/service"
	"canyin_dev_v1_202602/internal/task"
	"canyin_dev_v1_202602/pkg/config"
	"canyin_dev_v1_202602/pkg/database"
	"canyin_dev_v1_202602/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(gin.Mode() != gin.ReleaseMode)

	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey: cfg.JWT.SecretKey,
		TokenTTL:  cfg.JWT.ExpiresIn,
		Issuer:    cfg.JWT.Issuer,
	})

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(db, cfg, log)

	// 4. 启动定时任务
	initTasks(deps, log)

	// 5. 初始化路由
	r := gin.New()
	r.Use(logger.GinLogger(log), gin.Recovery())
	router.InitRoutes(r,
		deps.Controllers.User,
		deps.Controllers.Shop,
		deps.Controllers.Dish,
		deps.Controllers.Table,
		deps.Controllers.Cart,
		deps.Controllers.Order,
		deps.Controllers.Customer,
		deps.Controllers.Post,
		deps.Controllers.Follow,
		deps.Controllers.Message,
		deps.Controllers.Notification,
		deps.Controllers.Payment,
	)

	// 6. 启动服务
	startServer(r, cfg, log)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
	Maintenance *task.MaintenanceTask
}

// Repositories 仓库集合
type Repositories struct {
	User         repository.UserRepository
	Shop         repository.ShopRepository
	Dish         repository.DishRepository
	DishReview   repository.DishReviewRepository
	Table        repository.TableRepository
	Cart         repository.CartRepository
	Order        repository.OrderRepository
	OrderUow     *repository.OrderUnitOfWork
	Post         repository.PostRepository
	Comment      repository.CommentRepository
	SocialUow    *repository.SocialUnitOfWork
	Follow       repository.FollowRepository
	Conversation repository.ConversationRepository
	Message      repository.MessageRepository
	MessageUow   *repository.MessageUnitOfWork
	Notification repository.NotificationRepository
	Payment      repository.PaymentRepository
}

// Services 服务集合
type Services struct {
	User         *service.UserService
	Shop         *service.ShopService
	Dish         *service.DishService
	DishReview   *service.DishReviewService
	Table        *service.TableService
	Cart         *service.CartService
	Order        *service.OrderService
	Post         *service.PostService
	Follow       *service.FollowService
	Message      *service.MessageService
	Notification *service.NotificationService
	Payment      *service.PaymentService
}

// Controllers 控制器集合
type Controllers struct {
	User         *controller.UserController
	Shop         *controller.ShopController
	Dish         *controller.DishController
	Table        *controller.TableController
	Cart         *controller.CartController
	Order        *controller.OrderController
	Customer     *controller.CustomerController
	Post         *controller.PostController
	Follow       *controller.FollowController
	Message      *controller.MessageController
	Notification *controller.NotificationController
	Payment      *controller.PaymentController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Mysql.DSN(),
		// 用户 & 店铺
		&model.User{}, &model.Shop{},
		// 菜品
		&model.Dish{}, &model.DishReview{},
		// 桌位 & 购物车
		&model.DiningTable{}, &model.CartItem{},
		// 订单 & 支付
		&model.Order{}, &model.OrderItem{}, &model.PaymentIntent{},
		// 社区
		&model.Post{}, &model.PostLike{}, &model.Comment{}, &model.Follow{},
		// 私信 & 通知
		&model.Conversation{}, &model.Message{}, &model.Notification{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- Service 层 --------
	services := &Services{
		User:       service.NewUserService(repos.User),
		Shop:       service.NewShopService(repos.Shop, cfg.Shop.ID, cfg.Shop.MerchantUserID),
		Dish:       service.NewDishService(repos.Dish, repos.DishReview, cfg.Shop.ID),
		DishReview: service.NewDishReviewService(repos.DishReview, repos.Dish, repos.User),
		Table:      service.NewTableService(repos.Table, cfg.Server.BaseURL),
		Cart:       service.NewCartService(repos.Cart, repos.Dish),
		Order: service.NewOrderService(
			repos.OrderUow, repos.Order, repos.Cart, repos.Dish, repos.Table,
			repos.Notification, log, cfg.Shop.ID, cfg.Shop.MerchantUserID),
		Post:         service.NewPostService(repos.SocialUow, repos.Post, repos.Comment, repos.Follow, repos.User),
		Follow:       service.NewFollowService(repos.Follow, repos.User, repos.Notification, log),
		Message:      service.NewMessageService(repos.MessageUow, repos.Conversation, repos.Message, repos.User, repos.Notification, log),
		Notification: service.NewNotificationService(repos.Notification),
		Payment:      service.NewPaymentService(repos.Payment, repos.Order, log, cfg.Wechat),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		User:         controller.NewUserController(services.User),
		Shop:         controller.NewShopController(services.Shop),
		Dish:         controller.NewDishController(services.Dish, services.DishReview),
		Table:        controller.NewTableController(services.Table),
		Cart:         controller.NewCartController(services.Cart),
		Order:        controller.NewOrderController(services.Order),
		Customer:     controller.NewCustomerController(services.User, services.Dish, services.Order),
		Post:         controller.NewPostController(services.Post),
		Follow:       controller.NewFollowController(services.Follow),
		Message:      controller.NewMessageController(services.Message),
		Notification: controller.NewNotificationController(services.Notification),
		Payment:      controller.NewPaymentController(services.Payment),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化仓库层
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         repository.NewUserRepository(db),
		Shop:         repository.NewShopRepository(db),
		Dish:         repository.NewDishRepository(db),
		DishReview:   repository.NewDishReviewRepository(db),
		Table:        repository.NewTableRepository(db),
		Cart:         repository.NewCartRepository(db),
		Order:        repository.NewOrderRepository(db),
		OrderUow:     repository.NewOrderUnitOfWork(db),
		Post:         repository.NewPostRepository(db),
		Comment:      repository.NewCommentRepository(db),
		SocialUow:    repository.NewSocialUnitOfWork(db),
		Follow:       repository.NewFollowRepository(db),
		Conversation: repository.NewConversationRepository(db),
		Message:      repository.NewMessageRepository(db),
		MessageUow:   repository.NewMessageUnitOfWork(db),
		Notification: repository.NewNotificationRepository(db),
		Payment:      repository.NewPaymentRepository(db),
	}
}

// initTasks 启动定时任务
func initTasks(deps *Dependencies, log zerolog.Logger) {
	deps.Maintenance = task.NewMaintenanceTask(deps.Repos.Table, deps.Repos.Notification, log)
	deps.Maintenance.Start()
	log.Info().Msg("维护任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动 HTTP 服务并处理优雅退出
func startServer(r *gin.Engine, cfg *config.Config, log zerolog.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Info().Str("addr", addr).Msg("服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("服务启动失败")
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("服务强制关闭")
	}

	log.Info().Msg("服务已退出")
}
