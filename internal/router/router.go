package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"book-talk-api/internal/auth"
	"book-talk-api/internal/client"
	"book-talk-api/internal/handler"
	"book-talk-api/internal/metrics"
	"book-talk-api/internal/middleware"
	"book-talk-api/internal/repository"
	"book-talk-api/internal/service"
)

// Config holds the dependencies the router wires together
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	TokenManager   *auth.TokenManager
	AladinClient   client.AladinClient
	GenAIClient    client.GenAIClient
	BasePath       string
	Metrics        *metrics.Metrics
	ChatSessionTTL time.Duration
}

// Setup builds the gin engine with all routes and middleware
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(cfg.Metrics))

	// Repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	bookRepo := repository.NewBookRepository(cfg.DB)
	quoteRepo := repository.NewQuoteRepository(cfg.DB)
	discussionRepo := repository.NewDiscussionRepository(cfg.DB)
	groupRepo := repository.NewReadingGroupRepository(cfg.DB)
	sessionRepo := repository.NewChatSessionRepository(cfg.Redis, cfg.ChatSessionTTL)

	// Services
	expService := service.NewExpService(userRepo, cfg.Metrics)
	authService := service.NewAuthService(userRepo, cfg.TokenManager, cfg.Logger)
	bookService := service.NewBookService(bookRepo, cfg.AladinClient, cfg.Logger)
	bookmarkService := service.NewBookmarkService(bookRepo)
	quoteService := service.NewQuoteService(quoteRepo, bookRepo, expService, cfg.Logger, cfg.Metrics)
	discussionService := service.NewDiscussionService(discussionRepo, bookRepo, cfg.Logger, cfg.Metrics)
	voteService := service.NewDiscussionVoteService(discussionRepo, expService, cfg.Logger, cfg.Metrics)
	summaryService := service.NewDiscussionSummaryService(discussionRepo, cfg.GenAIClient, cfg.Logger, cfg.Metrics)
	groupService := service.NewReadingGroupService(groupRepo, bookRepo, cfg.Logger)
	myPageService := service.NewMyPageService(userRepo, bookRepo, quoteRepo, discussionRepo, expService)
	chatService := service.NewAIChatService(sessionRepo, bookRepo, cfg.GenAIClient, cfg.Logger)
	recommendationService := service.NewRecommendationService(userRepo, bookRepo, quoteRepo, discussionRepo, cfg.AladinClient, cfg.GenAIClient, cfg.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	discussionHandler := handler.NewDiscussionHandler(discussionService)
	voteHandler := handler.NewDiscussionVoteHandler(voteService, summaryService)
	groupHandler := handler.NewReadingGroupHandler(groupService)
	myPageHandler := handler.NewMyPageHandler(myPageService)
	chatHandler := handler.NewChatHandler(chatService)
	recommendationHandler := handler.NewRecommendationHandler(recommendationService)

	// Health and metrics stay reachable at the root regardless of base path
	metricsHandler := gin.WrapH(promhttp.Handler())
	r.GET("/health", healthCheck)
	r.GET("/metrics", metricsHandler)

	root := r.Group(cfg.BasePath)
	if cfg.BasePath != "" {
		root.GET("/health", healthCheck)
		root.GET("/metrics", metricsHandler)
	}

	root.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.Auth(cfg.TokenManager)
	optionalAuth := middleware.OptionalAuth(cfg.TokenManager)

	v1 := root.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", requireAuth, authHandler.Logout)
			authGroup.DELETE("/withdraw", requireAuth, authHandler.Withdraw)
		}

		books := v1.Group("/books")
		{
			books.GET("/search", bookHandler.SearchBooks)
			books.GET("/bestsellers", bookHandler.ListBestsellers)
			books.GET("/genres", bookHandler.ListGenres)
			books.GET("/recommendations", requireAuth, recommendationHandler.GetRecommendations)
			books.GET("/:bookId", optionalAuth, bookHandler.GetBookDetail)
			books.POST("/:bookId/bookmark", requireAuth, bookmarkHandler.AddBookmark)
			books.DELETE("/:bookId/bookmark", requireAuth, bookmarkHandler.RemoveBookmark)
			books.GET("/:bookId/quotes", optionalAuth, quoteHandler.ListQuotesByBook)
			books.POST("/:bookId/quotes", requireAuth, quoteHandler.CreateQuote)
			books.GET("/:bookId/discussions", discussionHandler.ListDiscussions)
			books.POST("/:bookId/discussions", requireAuth, discussionHandler.CreateDiscussion)
		}

		quotes := v1.Group("/quotes")
		{
			quotes.GET("/popular", optionalAuth, quoteHandler.ListPopularQuotes)
			quotes.GET("/:quoteId", optionalAuth, quoteHandler.GetQuote)
			quotes.PUT("/:quoteId", requireAuth, quoteHandler.UpdateQuote)
			quotes.DELETE("/:quoteId", requireAuth, quoteHandler.DeleteQuote)
			quotes.POST("/:quoteId/like", requireAuth, quoteHandler.LikeQuote)
			quotes.DELETE("/:quoteId/like", requireAuth, quoteHandler.UnlikeQuote)
		}

		discussions := v1.Group("/discussions")
		{
			discussions.GET("/:discussionId", discussionHandler.GetDiscussion)
			discussions.GET("/:discussionId/comments", discussionHandler.ListComments)
			discussions.POST("/:discussionId/like", requireAuth, discussionHandler.LikeDiscussion)
			discussions.DELETE("/:discussionId/like", requireAuth, discussionHandler.UnlikeDiscussion)
			discussions.POST("/:discussionId/messages", requireAuth, voteHandler.PostMessage)
			discussions.POST("/:discussionId/vote", requireAuth, voteHandler.Vote)
			discussions.GET("/:discussionId/vote", requireAuth, voteHandler.GetOpinionRatio)
			discussions.GET("/:discussionId/vote-status", requireAuth, voteHandler.GetVoteStatus)
			discussions.GET("/:discussionId/summary", requireAuth, voteHandler.GetSummary)
		}

		groups := v1.Group("/reading-groups")
		{
			groups.GET("", optionalAuth, groupHandler.ListGroups)
			groups.POST("", requireAuth, groupHandler.CreateGroup)
			groups.GET("/:groupId", optionalAuth, groupHandler.GetGroup)
			groups.POST("/:groupId/join", requireAuth, groupHandler.JoinGroup)
			groups.PUT("/:groupId/progress", requireAuth, groupHandler.UpdateProgress)
			groups.GET("/:groupId/members", optionalAuth, groupHandler.ListMembers)
		}

		users := v1.Group("/users/me", requireAuth)
		{
			users.GET("", myPageHandler.GetProfile)
			users.PUT("", myPageHandler.UpdateProfile)
			users.PUT("/genres", myPageHandler.SelectGenres)
			users.GET("/bookmarks", bookmarkHandler.ListBookmarks)
			users.GET("/quotes", myPageHandler.ListMyQuotes)
			users.GET("/discussions", myPageHandler.ListMyDiscussions)
		}

		v1.GET("/mypage", requireAuth, myPageHandler.GetMyPage)

		ai := v1.Group("/ai", requireAuth)
		{
			ai.POST("/chats", chatHandler.StartChat)
			ai.POST("/chats/messages", chatHandler.ContinueChat)
		}
	}

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
