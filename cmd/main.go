package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"blog-backend/config"
	"blog-backend/internal/api/admin"
	"blog-backend/internal/api/comment"
	"blog-backend/internal/api/post"
	"blog-backend/internal/api/user"
	"blog-backend/internal/middleware"
	"blog-backend/internal/repository/mongodb"
	"blog-backend/internal/service"
	"blog-backend/internal/storage"
	"blog-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 连接数据库
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, config.AppConfig.MongoURI)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	db := client.Database(config.AppConfig.MongoDatabase)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		util.Logger.Fatal("创建索引失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", util.ValidateUsername)
	}

	// 确保上传文件夹存在
	if config.AppConfig.StorageBackend == "local" {
		ensureUploadsFolder()
	}

	// 初始化存储后端
	mediaStorage, err := storage.NewFromConfig(config.AppConfig)
	if err != nil {
		util.Logger.Fatal("初始化存储后端失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	emailService := service.NewEmailService()
	userService := service.NewUserService(userRepo, postRepo, commentRepo, emailService)
	postService := service.NewPostService(postRepo, userRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)
	adminService := service.NewAdminService(userRepo, postRepo, commentRepo)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService, mediaStorage)
	favoritesHandler := user.NewFavoritesHandler(userService)
	postHandler := post.NewPostHandler(postService, mediaStorage)
	commentHandler := comment.NewCommentHandler(commentService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()
	adminHandler := admin.NewAdminHandler(adminService, errorMonitor)

	// 设置 Gin 路由
	r := gin.Default()

	// 添加中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length",
		"Content-Type",
		"Access-Control-Allow-Origin",
	}
	r.Use(cors.New(corsConfig))

	// 静态文件的 CORS 单独处理
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(200)
				return
			}
		}
		c.Next()
	})

	// 配置静态文件服务
	r.Static("/uploads", config.AppConfig.LocalStoragePath)

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 认证相关路由
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/admin-login", authHandler.AdminLogin)

		// 需要认证的用户路由
		authorized := api.Group("/auth")
		authorized.Use(middleware.AuthMiddleware())
		{
			authorized.GET("/me", authHandler.GetMe)
			authorized.PUT("/user/update", profileHandler.UpdateProfile)
			authorized.PUT("/favorite/:postId", favoritesHandler.ToggleFavorite)
			authorized.GET("/favorites", favoritesHandler.ListFavorites)
		}

		// 帖子相关路由
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/no-params", postHandler.ListAllPosts)
		api.GET("/posts/tag/:tag", postHandler.ListPostsByTag)
		api.GET("/posts/comments/:id", postHandler.GetPostComments)
		api.GET("/posts/user/me", middleware.AuthMiddleware(), postHandler.GetMyPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.POST("/posts", middleware.AuthMiddleware(), postHandler.CreatePost)
		api.PUT("/posts/like/:id", middleware.AuthMiddleware(), postHandler.ToggleLike)
		api.PUT("/posts/:id", middleware.AuthMiddleware(), postHandler.UpdatePost)
		api.DELETE("/posts/:id", middleware.AuthMiddleware(), postHandler.RemovePost)

		// 评论相关路由
		api.POST("/comments", middleware.AuthMiddleware(), commentHandler.CreateComment)
		api.GET("/comments", commentHandler.ListComments)

		// 管理员路由组
		adminRoutes := api.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware(userService))
		{
			adminRoutes.GET("/users", adminHandler.ListUsers)
			adminRoutes.DELETE("/users/:id", adminHandler.DeleteUser)
			adminRoutes.GET("/posts", adminHandler.ListPosts)
			adminRoutes.DELETE("/posts/:id", adminHandler.DeletePost)
			adminRoutes.GET("/comments", adminHandler.ListComments)
			adminRoutes.DELETE("/comments/:id", adminHandler.DeleteComment)
			adminRoutes.GET("/stats", adminHandler.GetSystemStats)
		}
	}

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.ServerPort,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// 确保上传文件夹存在
func ensureUploadsFolder() {
	uploadsPath := config.AppConfig.LocalStoragePath
	if err := os.MkdirAll(uploadsPath, 0755); err != nil {
		util.Logger.Fatal("创建上传文件夹失败", zap.Error(err), zap.String("path", uploadsPath))
	}
	util.Logger.Info("上传文件夹已创建或已存在", zap.String("path", uploadsPath))
}
