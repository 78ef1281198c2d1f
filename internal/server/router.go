package server

import (
	"github.com/aidosqali/vidtube/internal/admin"
	"github.com/aidosqali/vidtube/internal/auth"
	"github.com/aidosqali/vidtube/internal/comment"
	"github.com/aidosqali/vidtube/internal/config"
	"github.com/aidosqali/vidtube/internal/dashboard"
	"github.com/aidosqali/vidtube/internal/like"
	"github.com/aidosqali/vidtube/internal/metrics"
	"github.com/aidosqali/vidtube/internal/playlist"
	"github.com/aidosqali/vidtube/internal/subscription"
	"github.com/aidosqali/vidtube/internal/tweet"
	"github.com/aidosqali/vidtube/internal/user"
	"github.com/aidosqali/vidtube/internal/video"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config              config.Config
	DB                  *pgxpool.Pool
	ObjectStore         *minio.Client
	Tokens              *auth.TokenService
	UserService         *user.Service
	VideoService        *video.Service
	CommentService      *comment.Service
	LikeService         *like.Service
	SubscriptionService *subscription.Service
	TweetService        *tweet.Service
	PlaylistService     *playlist.Service
	DashboardService    *dashboard.Service
	AdminService        *admin.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(metrics.Middleware())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/api/v1")
	user.RegisterRoutes(api, deps.UserService, deps.Tokens, deps.Config.Auth)
	video.RegisterRoutes(api, deps.VideoService, deps.Tokens)
	comment.RegisterRoutes(api, deps.CommentService, deps.Tokens)
	like.RegisterRoutes(api, deps.LikeService, deps.Tokens)
	subscription.RegisterRoutes(api, deps.SubscriptionService, deps.Tokens)
	tweet.RegisterRoutes(api, deps.TweetService, deps.Tokens)
	playlist.RegisterRoutes(api, deps.PlaylistService, deps.Tokens)
	dashboard.RegisterRoutes(api, deps.DashboardService, deps.Tokens)
	admin.RegisterRoutes(api, deps.AdminService, deps.Tokens)

	return router
}
