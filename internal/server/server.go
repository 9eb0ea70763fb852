package server

import (
	"backend-broadcast/internal/auth"
	"backend-broadcast/internal/comment"
	"backend-broadcast/internal/config"
	"backend-broadcast/internal/geo"
	"backend-broadcast/internal/market"
	"backend-broadcast/internal/media"
	"backend-broadcast/internal/news"
	"backend-broadcast/internal/post"
	"backend-broadcast/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Tree   *geo.Tree
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, tree *geo.Tree, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		Tree:   tree,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	postSvc := post.NewService(s.DB, s.Tree, s.Stream, s.Cfg.UnrestrictedHome)
	commentSvc := comment.NewService(s.DB)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB), jwtMiddleware)

	posts := s.App.Group("/posts")
	post.RegisterRoutes(posts, postSvc, jwtMiddleware)
	comment.RegisterPostRoutes(posts, commentSvc, jwtMiddleware)
	comment.RegisterRoutes(s.App.Group("/comments"), commentSvc, jwtMiddleware)

	market.RegisterRoutes(s.App.Group("/products"), s.App.Group("/categories"), market.NewService(s.DB), jwtMiddleware)
	news.RegisterRoutes(s.App.Group("/news"), news.NewService(s.DB), jwtMiddleware)
	media.RegisterRoutes(s.App.Group("/media"), media.NewService(s.DB), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
