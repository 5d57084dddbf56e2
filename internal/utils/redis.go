// 包 utils：外部依赖（PostgreSQL、Redis、TLS 证书）的打开与准备
package utils

import (
	"country-stats/internal/config"
	"country-stats/internal/logger"

	"github.com/redis/go-redis/v9"
)

// OpenRedis：REDIS_ENABLE=false 时返回 nil
func OpenRedis(c config.Redis) *redis.Client {
	if !c.Enable {
		return nil
	}
	db := c.DB
	if db < 0 {
		db = 0
	}
	logger.L().Debug("redis_env", "addr", c.Addr(), "db", db)
	return redis.NewClient(&redis.Options{Addr: c.Addr(), Password: c.Pass, DB: db})
}
