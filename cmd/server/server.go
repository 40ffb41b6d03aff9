package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"

	"github.com/thereayou/rythmrun/internal/config"
	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/events"
	"github.com/thereayou/rythmrun/internal/handlers"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/services"
	"github.com/thereayou/rythmrun/internal/session"
	"github.com/thereayou/rythmrun/internal/storage"
	ws "github.com/thereayou/rythmrun/internal/websocket"
	"github.com/thereayou/rythmrun/pkg/auth"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Router *gin.Engine
	DB     *database.Database
	Redis  *redis.Client
	NATS   *nats.Conn
	Hub    *ws.Hub

	cfg *config.Config
	log logging.Logger
}

// Deps всё, что нужно для сборки обработчиков
type Deps struct {
	DB        *database.Database
	Sessions  session.Store
	Tokens    *auth.TokenIssuer
	Publisher events.Publisher
	Presigner storage.Presigner
	Hub       *ws.Hub
	Log       logging.Logger

	AllowRerequestAfterReject bool
}

func NewServer(ctx context.Context, cfg *config.Config, log logging.Logger) (*Server, error) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres connect failed: %w", err)
	}
	s := &Server{DB: db, cfg: cfg, log: log}

	var sessions session.Store = db.RefreshSessions()
	if cfg.SessionStore == config.SessionStoreRedis {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		s.Redis = redis.NewClient(redisOpts)
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			s.Close()
			return nil, fmt.Errorf("redis connect failed: %w", err)
		}
		sessions = session.NewRedisStore(s.Redis)
	}
	log.Info(ctx, "refresh sessions", "store", cfg.SessionStore)

	s.Hub = ws.NewHub(log)
	publishers := events.Multi{s.Hub}
	if cfg.NATSURL != "" {
		s.NATS, err = events.ConnectNATS(cfg.NATSURL, log)
		if err != nil {
			s.Close()
			return nil, err
		}
		publishers = append(publishers, events.NewNATSPublisher(s.NATS))
	}

	var presigner storage.Presigner
	if cfg.AvatarsEnabled() {
		p, err := storage.NewS3Presigner(ctx, cfg.S3)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("s3 presigner: %w", err)
		}
		presigner = p
	} else {
		log.Warn(ctx, "S3_BUCKET is not set, avatar endpoints are disabled")
	}

	tokens := auth.NewTokenIssuer(cfg.AccessSecret, cfg.RefreshSecret)
	h := BuildHandlers(Deps{
		DB:                        db,
		Sessions:                  sessions,
		Tokens:                    tokens,
		Publisher:                 publishers,
		Presigner:                 presigner,
		Hub:                       s.Hub,
		Log:                       log,
		AllowRerequestAfterReject: cfg.AllowRerequestAfterReject,
	})
	s.Router = NewRouter(h, tokens, log)

	return s, nil
}

func BuildHandlers(d Deps) *Handlers {
	gate := services.NewGate(d.DB)

	authSvc := services.NewAuthService(d.DB, d.Sessions, d.Tokens, d.Log)
	userSvc := services.NewUserService(d.DB, d.Presigner, d.Log)
	friendSvc := services.NewFriendService(d.DB, d.DB, d.Publisher, d.Log, d.AllowRerequestAfterReject)
	activitySvc := services.NewActivityService(d.DB, gate, d.Log)
	commentSvc := services.NewCommentService(d.DB, gate, d.Publisher, d.Log)
	likeSvc := services.NewLikeService(d.DB, gate, d.Publisher, d.Log)

	return &Handlers{
		Auth:     handlers.NewAuthHandler(authSvc, d.Log),
		User:     handlers.NewUserHandler(userSvc, d.Log),
		Friend:   handlers.NewFriendHandler(friendSvc, d.Log),
		Activity: handlers.NewActivityHandler(activitySvc, d.Log),
		Comment:  handlers.NewCommentHandler(commentSvc, d.Log),
		Like:     handlers.NewLikeHandler(likeSvc, d.Log),
		WS:       handlers.NewWebSocketHandler(d.Hub, d.Log),
		Health:   handlers.NewHealthHandler(d.DB),
	}
}

// Run обслуживает HTTP до отмены ctx, затем останавливается с таймаутом
func (s *Server) Run(ctx context.Context) error {
	go s.Hub.Run()

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "server starting", "port", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

func (s *Server) Close() {
	if s.Hub != nil {
		s.Hub.Stop()
	}
	if s.NATS != nil {
		_ = s.NATS.Drain()
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.DB != nil {
		_ = s.DB.Close()
	}
}
