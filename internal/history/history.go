// 包 history：最近搜索词（Redis 列表，去重后保留最新 N 条）
package history

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	"country-stats/internal/logger"
	"country-stats/internal/widget"
)

const DefaultKey = "countrystats:recent"

// History：rc 为 nil 时所有操作为空操作
type History struct {
	rc   *redis.Client
	key  string
	size int
}

func New(rc *redis.Client, size int) *History {
	if size <= 0 {
		size = 10
	}
	return &History{rc: rc, key: DefaultKey, size: size}
}

// Push：写入一条搜索词；同词先移除再置顶
func (h *History) Push(ctx context.Context, q string) error {
	q = strings.TrimSpace(q)
	if h == nil || h.rc == nil || q == "" {
		return nil
	}
	_, err := h.rc.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LRem(ctx, h.key, 0, q)
		p.LPush(ctx, h.key, q)
		p.LTrim(ctx, h.key, 0, int64(h.size-1))
		return nil
	})
	return err
}

// Recent：按最近优先返回
func (h *History) Recent(ctx context.Context) ([]string, error) {
	if h == nil || h.rc == nil {
		return nil, nil
	}
	return h.rc.LRange(ctx, h.key, 0, int64(h.size-1)).Result()
}

// Observe：只记录成功的名称搜索
func (h *History) Observe(ctx context.Context, o widget.Outcome) {
	if !o.OK || o.Trigger != widget.TriggerSearch {
		return
	}
	if err := h.Push(context.WithoutCancel(ctx), o.Query); err != nil {
		logger.L().Error("history_push_error", "err", err)
	}
}
