package ha

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// StateProvider 是门面读取实体状态的唯一入口。
// *Client 直接实现它；SnapshotCache 和 CachedProvider 在其上组合缓存语义。
type StateProvider interface {
	State(ctx context.Context, entityID string) (EntityState, error)
}

// SnapshotCache 持有一份整体替换的实体状态快照。
// 读路径无锁：Lookup 只解引用当前快照，Replace 原子换入新 map。
type SnapshotCache struct {
	snap atomic.Pointer[map[string]EntityState]
}

// NewSnapshotCache 创建空缓存。
func NewSnapshotCache() *SnapshotCache {
	c := &SnapshotCache{}
	empty := map[string]EntityState{}
	c.snap.Store(&empty)
	return c
}

// Lookup 返回缓存中的状态。第二个返回值指示是否命中。
func (c *SnapshotCache) Lookup(entityID string) (EntityState, bool) {
	m := *c.snap.Load()
	st, ok := m[entityID]
	return st, ok
}

// Replace 整体换入新快照。调用方换入后不得再修改 states。
func (c *SnapshotCache) Replace(states map[string]EntityState) {
	c.snap.Store(&states)
}

// CachedProvider 先查缓存，未命中时回落到 next。
type CachedProvider struct {
	Cache *SnapshotCache
	Next  StateProvider
}

// State 实现 StateProvider。
func (p *CachedProvider) State(ctx context.Context, entityID string) (EntityState, error) {
	if st, ok := p.Cache.Lookup(entityID); ok {
		return st, nil
	}
	return p.Next.State(ctx, entityID)
}

// Refresher 周期性拉取一组实体并整体刷新快照。
// 单个实体失败只从快照中缺席，不影响其余实体。
type Refresher struct {
	Client   StateProvider
	Cache    *SnapshotCache
	Entities []string
	Interval time.Duration
}

// RefreshOnce 拉取一轮所有实体并换入快照。
// 全部失败时返回错误且不换入，避免把可用的旧快照清空。
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	states := make(map[string]EntityState, len(r.Entities))
	var lastErr error
	for _, id := range r.Entities {
		if id == "" {
			continue
		}
		st, err := r.Client.State(ctx, id)
		if err != nil {
			lastErr = err
			continue
		}
		states[id] = st
	}
	if len(states) == 0 && lastErr != nil {
		return fmt.Errorf("刷新快照失败: %w", lastErr)
	}
	r.Cache.Replace(states)
	return nil
}

// Run 按 Interval 循环刷新，直到 ctx 取消。启动时先刷新一次。
func (r *Refresher) Run(ctx context.Context) {
	if err := r.RefreshOnce(ctx); err != nil {
		log.Printf("首次刷新失败: %v", err)
	}
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.RefreshOnce(ctx); err != nil {
				log.Printf("刷新失败: %v", err)
			}
		}
	}
}
