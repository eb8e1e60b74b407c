package cmd

import (
	"context"
	"fmt"

	"bunshack-api/config"
	"bunshack-api/handlers"
	"bunshack-api/metrics"
	"bunshack-api/middleware"
	"bunshack-api/routes"
	"bunshack-api/session"
	"bunshack-api/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// newRevoker picks Redis when REDIS_ADDR is set, memory otherwise. The
// returned func closes whatever was opened.
func newRevoker(ctx context.Context, cfg *config.Config, log *logrus.Logger) (session.Revoker, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("session revocation kept in memory")
		return session.NewMemoryRevoker(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
	}
	log.WithField("addr", cfg.RedisAddr).Info("session revocation kept in redis")
	return session.NewRedisRevoker(client), func() { client.Close() }, nil
}

// newRouter wires stores, session handling and handlers onto a gin engine.
func newRouter(cfg *config.Config, db *gorm.DB, revoker session.Revoker, log *logrus.Logger) *gin.Engine {
	users := store.NewUserStore(db)
	auth := &middleware.Authenticator{
		Tokens:  session.NewManager(cfg.JWTSecret, cfg.SessionTTL),
		Revoker: revoker,
		Users:   users,
	}
	m := metrics.New()

	h := handlers.New(handlers.Deps{
		Menus:   store.NewMenuStore(db),
		Orders:  store.NewOrderStore(db),
		Users:   users,
		Auth:    auth,
		Metrics: m,
		Cookies: session.CookieOptions{Secure: cfg.CookieSecure},
	})

	return routes.NewRouter(routes.Options{
		Handler:        h,
		Auth:           auth,
		Metrics:        m,
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins(),
	})
}
