package providers

import (
	"unsafe"

	"github.com/coocood/freecache"
	json "github.com/goccy/go-json"

	"visitors/internal/models"
	"visitors/internal/structures"
)

// VisitorCacheInterface holds reconstructed records keyed by their file path.
// The file stays authoritative: callers confirm it still exists before
// trusting a hit and Delete the entry when it does not.
type VisitorCacheInterface interface {
	Get(key string) (*models.Visitor, bool)
	Put(key string, visitor *models.Visitor)
	Delete(key string)
}

type VisitorCache struct {
	cache   *freecache.Cache
	ttl     int
	metrics MetricsProviderInterface
}

// NewVisitorCacheProvider returns a freecache-backed record cache, or a noop
// one when caching is off. The noop cache reports no hits or misses.
func NewVisitorCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) VisitorCacheInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Visitor cache disabled")
		return &noopVisitorCache{}
	}

	// freecache expires in whole seconds; anything shorter would mean "never".
	ttl := max(int(conf.Cache.TTL.Seconds()), 1)
	logger.Infof(TypeApp, "Visitor cache initialized: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &VisitorCache{
		cache:   freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:     ttl,
		metrics: metrics,
	}
}

// keyBytes avoids copying the key; freecache only reads it.
func keyBytes(key string) []byte {
	if key == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(key), len(key))
}

func (c *VisitorCache) Get(key string) (*models.Visitor, bool) {
	data, err := c.cache.Get(keyBytes(key))
	if err != nil {
		c.metrics.IncCacheMisses()
		return nil, false
	}

	var visitor models.Visitor
	if err = json.Unmarshal(data, &visitor); err != nil {
		c.cache.Del(keyBytes(key))
		c.metrics.IncCacheMisses()
		return nil, false
	}

	c.metrics.IncCacheHits()
	return &visitor, true
}

func (c *VisitorCache) Put(key string, visitor *models.Visitor) {
	if visitor == nil {
		return
	}
	data, err := json.Marshal(visitor)
	if err != nil {
		return
	}
	_ = c.cache.Set(keyBytes(key), data, c.ttl)
}

func (c *VisitorCache) Delete(key string) {
	c.cache.Del(keyBytes(key))
}

type noopVisitorCache struct{}

func (n *noopVisitorCache) Get(_ string) (*models.Visitor, bool) { return nil, false }
func (n *noopVisitorCache) Put(_ string, _ *models.Visitor)      {}
func (n *noopVisitorCache) Delete(_ string)                      {}
