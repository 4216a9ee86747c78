package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"anoa.com/socialfeed/internal/middleware"
	"anoa.com/socialfeed/pkg/cache"
	"anoa.com/socialfeed/pkg/clock"
	"anoa.com/socialfeed/pkg/storage"

	commentHttp "anoa.com/socialfeed/internal/modules/comment/delivery/http"
	commentRepo "anoa.com/socialfeed/internal/modules/comment/repository"
	commentService "anoa.com/socialfeed/internal/modules/comment/service"

	healthHttp "anoa.com/socialfeed/internal/modules/health/delivery/http"
	mediaHttp "anoa.com/socialfeed/internal/modules/media/delivery/http"

	postHttp "anoa.com/socialfeed/internal/modules/post/delivery/http"
	postRepo "anoa.com/socialfeed/internal/modules/post/repository"
	postService "anoa.com/socialfeed/internal/modules/post/service"

	reactionHttp "anoa.com/socialfeed/internal/modules/reaction/delivery/http"
	reactionRepo "anoa.com/socialfeed/internal/modules/reaction/repository"
	reactionService "anoa.com/socialfeed/internal/modules/reaction/service"

	userHttp "anoa.com/socialfeed/internal/modules/user/delivery/http"
	userRepo "anoa.com/socialfeed/internal/modules/user/repository"
	userService "anoa.com/socialfeed/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Options struct {
	DB    *gorm.DB
	Redis *redis.Client
	Store storage.BlobStore

	Logger         *slog.Logger
	Clock          clock.Clock
	AllowedOrigins []string
	MaxUploadMB    int64
}

type Server struct {
	engine *gin.Engine
	logger *slog.Logger
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	counts := cache.NewReactionCounts(opts.Redis, logger)

	userRepo := userRepo.NewUserRepository(opts.DB)
	postRepo := postRepo.NewPostRepository(opts.DB)
	commentRepo := commentRepo.NewCommentRepository(opts.DB)
	reactionRepo := reactionRepo.NewReactionRepository(opts.DB)

	userSvc := userService.NewUserService(userRepo, opts.Store, counts, logger)
	userHandler := userHttp.NewUserHandler(userSvc)

	postSvc := postService.NewPostService(postRepo, userRepo, opts.Store, counts, logger)
	postHandler := postHttp.NewPostHandler(postSvc)

	commentSvc := commentService.NewCommentService(commentRepo, postRepo, userRepo)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	reactionSvc := reactionService.NewReactionService(reactionRepo, postRepo, userRepo, counts, clk)
	reactionHandler := reactionHttp.NewReactionHandler(reactionSvc)

	mediaHandler := mediaHttp.NewMediaHandler(opts.Store)
	healthHandler := healthHttp.NewHealthHandler(opts.DB)

	router := gin.New()
	if opts.MaxUploadMB > 0 {
		router.MaxMultipartMemory = opts.MaxUploadMB << 20
	}

	setupCORS(router, opts.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health"},
	}))
	router.Use(middleware.Identity())
	router.Use(middleware.BodyLimit(opts.MaxUploadMB << 20))

	router.GET("/health", healthHandler.Health)
	router.GET("/uploads/:key", mediaHandler.ServeUpload)

	// User routes
	router.POST("/users", userHandler.CreateUser)
	router.GET("/users/:user_id", userHandler.GetUser)
	router.PUT("/users/:user_id/profile-picture", userHandler.UpdateProfilePicture)
	router.DELETE("/users/:user_id", userHandler.DeleteUser)

	// Post routes
	router.POST("/posts", postHandler.CreatePost)
	router.GET("/posts", postHandler.ListPosts)
	router.GET("/posts/:post_id", postHandler.GetPost)
	router.DELETE("/posts/:post_id", postHandler.DeletePost)

	// Comment routes
	router.POST("/comments", commentHandler.CreateComment)
	router.GET("/comments/:post_id", commentHandler.ListComments)
	router.DELETE("/comments/:comment_id", commentHandler.DeleteComment)

	// Reaction routes
	router.POST("/reactions", reactionHandler.ApplyReaction)
	router.GET("/reactions/:post_id", reactionHandler.ListReactions)
	router.GET("/reactions/:post_id/count", reactionHandler.CountReactions)
	router.DELETE("/reactions/:post_id/:user_id", reactionHandler.RemoveReaction)

	return &Server{
		engine: router,
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.UserIDHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
