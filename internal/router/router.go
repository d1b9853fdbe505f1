package router

import (
	"github.com/gin-gonic/gin"

	"canyin_dev_v1_202602/internal/controller"
	"canyin_dev_v1_202602/internal/middleware"
)

// InitRoutes 注册所有路由
// 路径沿用移动端既定约定，信封 HTTP 状态码恒为 200，
// 只有认证中间件返回真实的 401
func InitRoutes(r *gin.Engine,
	userCtl *controller.UserController,
	shopCtl *controller.ShopController,
	dishCtl *controller.DishController,
	tableCtl *controller.TableController,
	cartCtl *controller.CartController,
	orderCtl *controller.OrderController,
	customerCtl *controller.CustomerController,
	postCtl *controller.PostController,
	followCtl *controller.FollowController,
	messageCtl *controller.MessageController,
	notifCtl *controller.NotificationController,
	paymentCtl *controller.PaymentController) {

	api := r.Group("/api")
	{
		// 用户：注册登录免认证，资料相关要登录
		api.GET("/Users/Login", userCtl.Login)
		api.POST("/Users/Register", userCtl.Register)
		api.POST("/Users/HuaweiLogin", userCtl.HuaweiLogin)
		users := api.Group("", middleware.JWTAuth())
		{
			users.GET("/Users/Profile", userCtl.GetProfile)
			users.PUT("/Users/Profile", userCtl.UpdateProfile)
			users.PUT("/Users/Password", userCtl.UpdatePassword)
			users.PUT("/Users/Email", userCtl.UpdateEmail)
		}

		// 店铺
		api.GET("/shops/info", shopCtl.GetInfo)
		api.PUT("/shops/info", middleware.JWTAuth(), shopCtl.UpdateInfo)

		// 菜品与评价
		api.GET("/dishes", dishCtl.ListDishes)
		api.GET("/dishes/list", dishCtl.ListDishes)
		api.GET("/dishes/:id", dishCtl.GetDish)
		api.GET("/dishes/:id/reviews", dishCtl.ListReviews)
		dishes := api.Group("", middleware.JWTAuth())
		{
			dishes.POST("/dishes/add", dishCtl.CreateDish)
			dishes.PUT("/dishes/:id", dishCtl.UpdateDish)
			dishes.DELETE("/dishes/:id", dishCtl.DeleteDish)
			dishes.POST("/dishes/:id/reviews", dishCtl.CreateReview)
		}

		// 桌位
		api.GET("/tables", tableCtl.ListTables)
		tables := api.Group("/tables", middleware.JWTAuth())
		{
			tables.POST("", tableCtl.CreateTable)
			tables.PUT("/:id/status", tableCtl.UpdateStatus)
			tables.DELETE("/:id", tableCtl.DeleteTable)
			tables.GET("/:id/qrcode", tableCtl.GetQRCode)
		}

		// 购物车
		cart := api.Group("/cart", middleware.JWTAuth())
		{
			cart.GET("/items", cartCtl.GetCart)
			cart.POST("/add", cartCtl.AddItem)
			cart.POST("/update", cartCtl.UpdateItem)
			cart.DELETE("/remove", cartCtl.RemoveItem)
			cart.POST("/clear", cartCtl.Clear)
		}

		// 订单
		api.POST("/orders", orderCtl.CreateH5Order) // H5 免登录下单
		orders := api.Group("", middleware.JWTAuth())
		{
			orders.POST("/orders/create", orderCtl.CreateOrder)
			orders.POST("/orders/pay", orderCtl.PayOrder)
			orders.GET("/orders/list", orderCtl.ListOrders)
			orders.GET("/orders/:id", orderCtl.GetOrder)
			orders.PUT("/orders/:id/status", orderCtl.UpdateStatus)
			orders.GET("/sales/stats", orderCtl.GetSalesStats)
		}

		// 社区：浏览可匿名，写操作要登录
		api.GET("/posts/list", middleware.OptionalAuth(), postCtl.ListFeed)
		api.GET("/posts/user", middleware.OptionalAuth(), postCtl.ListUserPosts)
		api.GET("/posts/comments", postCtl.ListComments)
		posts := api.Group("", middleware.JWTAuth())
		{
			posts.POST("/posts/create", postCtl.CreatePost)
			posts.DELETE("/posts/:id", postCtl.DeletePost)
			posts.POST("/posts/like", postCtl.ToggleLike)
			posts.POST("/posts/comments/create", postCtl.CreateComment)
			posts.DELETE("/posts/comments/:id", postCtl.DeleteComment)
		}

		// 关注
		follow := api.Group("", middleware.JWTAuth())
		{
			follow.POST("/follow", followCtl.Follow)
			follow.POST("/unfollow", followCtl.Unfollow)
			follow.GET("/follow/check", followCtl.Check)
			follow.GET("/follow/list", followCtl.List)
			follow.GET("/follow/stats", followCtl.Stats)
		}

		// 私信
		messages := api.Group("/messages", middleware.JWTAuth())
		{
			messages.GET("/conversations", messageCtl.ListConversations)
			messages.POST("/conversation/create", messageCtl.CreateConversation)
			messages.GET("/list", messageCtl.ListMessages)
			messages.POST("/send", messageCtl.SendMessage)
			messages.GET("/users/search", userCtl.SearchUsers)
		}

		// 通知
		notifications := api.Group("/notifications", middleware.JWTAuth())
		{
			notifications.GET("/list", notifCtl.List)
			notifications.GET("/unread_count", notifCtl.UnreadCount)
			notifications.POST("/read", notifCtl.MarkRead)
			notifications.POST("/read_all", notifCtl.MarkAllRead)
			notifications.POST("/delete", notifCtl.Delete)
		}

		// 扫码顾客，全部免登录
		customer := api.Group("/customer")
		{
			customer.POST("/session", customerCtl.CreateSession)
			customer.GET("/menu", customerCtl.GetMenu)
			customer.POST("/order", customerCtl.CreateOrder)
			customer.GET("/order/:id/status", customerCtl.GetOrderStatus)
		}

		// 支付
		payment := api.Group("/payment")
		{
			payment.POST("/wechat/create", middleware.JWTAuth(), paymentCtl.CreateWechatOrder)
			payment.POST("/wechat/notify", paymentCtl.WechatNotify) // 网关回调无认证
			payment.POST("/huawei/verify", middleware.JWTAuth(), paymentCtl.VerifyHuaweiPurchase)
			payment.GET("/order/status", paymentCtl.GetOrderStatus)
		}
	}
}
