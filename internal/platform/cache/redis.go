package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/growthlab/boostup/pkg/config"
)

func NewRedis(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		l.Errorf("failed to connect redis: %v", err)
		return nil, err
	}
	l.Infow("connected to redis", "addr", cfg.Redis.Addr)
	return client, nil
}

var Module = fx.Options(
	fx.Provide(NewRedis),
	fx.Invoke(registerRedisClose),
)

func registerRedisClose(lc fx.Lifecycle, l *zap.SugaredLogger, client *redis.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			l.Infow("closing redis connection")
			return client.Close()
		},
	})
}
