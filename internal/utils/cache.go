package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// Cache 全局缓存实例（题材列表等小数据）
var Cache *cache.Cache

// InitCache 初始化缓存
func InitCache() {
	// 默认过期时间5分钟，清理间隔10分钟
	Cache = cache.New(5*time.Minute, 10*time.Minute)
}

// CacheGet 获取缓存值
func CacheGet(key string) (interface{}, bool) {
	return Cache.Get(key)
}

// CacheSet 设置缓存值
func CacheSet(key string, value interface{}, duration time.Duration) {
	Cache.Set(key, value, duration)
}

// CacheDelete 删除缓存
func CacheDelete(key string) {
	Cache.Delete(key)
}

// CacheClear 清空所有缓存
func CacheClear() {
	Cache.Flush()
}

// CacheItem 包装实际的数据，增加过期时间
type CacheItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// EntityCache 按 ID 缓存条目详情的 LRU 封装
type EntityCache[T any] struct {
	storage *lru.Cache[int, CacheItem[T]]
	ttl     time.Duration
}

// NewEntityCache 初始化，size 是最大缓存条数，ttl 是数据有效期
func NewEntityCache[T any](size int, ttl time.Duration) *EntityCache[T] {
	// lru.New 是线程安全的
	c, _ := lru.New[int, CacheItem[T]](size)
	return &EntityCache[T]{
		storage: c,
		ttl:     ttl,
	}
}

// Set 写入缓存，已存在时覆盖
func (c *EntityCache[T]) Set(id int, value T) {
	item := CacheItem[T]{
		Value:     value,
		ExpiredAt: time.Now().Add(c.ttl),
	}
	c.storage.Add(id, item)
}

// Get 读取缓存，带过期检查
func (c *EntityCache[T]) Get(id int) (T, bool) {
	var zero T
	item, ok := c.storage.Get(id)
	if !ok {
		return zero, false
	}

	// 检查是否过期
	if time.Now().After(item.ExpiredAt) {
		c.storage.Remove(id)
		return zero, false
	}

	return item.Value, true
}

// Delete 删除缓存
func (c *EntityCache[T]) Delete(id int) {
	c.storage.Remove(id)
}

// Clear 清空缓存
func (c *EntityCache[T]) Clear() {
	c.storage.Purge()
}

// Len 当前缓存条数
func (c *EntityCache[T]) Len() int {
	return c.storage.Len()
}
