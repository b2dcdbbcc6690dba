package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/cache"
	"github.com/spec-kit/inventory-service/internal/events"
)

// CacheRecorder receives cache hit/miss observations.
type CacheRecorder interface {
	RecordCacheLookup(hit bool)
}

// CatalogCache serves public catalog reads from the cache and drops stale
// entries when catalog events arrive. A nil *CatalogCache disables caching.
type CatalogCache struct {
	client     cache.Client
	dispatcher events.Dispatcher
	ttl        time.Duration
	logger     *zap.Logger
	recorder   CacheRecorder
}

// NewCatalogCache builds the cache. dispatcher, logger and recorder may be nil.
func NewCatalogCache(client cache.Client, dispatcher events.Dispatcher, ttl time.Duration, logger *zap.Logger, recorder CacheRecorder) *CatalogCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogCache{client: client, dispatcher: dispatcher, ttl: ttl, logger: logger, recorder: recorder}
}

// invalidateTimeout bounds an eviction once it is detached from the request.
const invalidateTimeout = 2 * time.Second

const (
	keyAllStores   = "stores:all"
	keyAllProducts = "products:all"
)

func storeKey(id string) string {
	return "stores:id:" + id
}

func storesByOwnerKey(ownerID string) string {
	return "stores:owner:" + ownerID
}

func productKey(id string) string {
	return "products:id:" + id
}

func productsByStoreKey(storeID string) string {
	return "products:store:" + storeID
}

// RegisterHandlers subscribes the invalidation handlers to every catalog event.
func (c *CatalogCache) RegisterHandlers() {
	if c == nil || c.dispatcher == nil {
		return
	}
	for _, t := range events.StoreEvents {
		c.dispatcher.Subscribe(t, c.handleStoreEvent)
	}
	for _, t := range events.ProductEvents {
		c.dispatcher.Subscribe(t, c.handleProductEvent)
	}
}

func (c *CatalogCache) handleStoreEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.StorePayload)
	if !ok {
		return errors.New("unexpected store event payload")
	}
	keys := []string{keyAllStores, storeKey(payload.StoreID)}
	if payload.OwnerID != "" {
		keys = append(keys, storesByOwnerKey(payload.OwnerID))
	}
	if event.Type == events.EventStoreDeleted {
		// Products went with the store.
		keys = append(keys, keyAllProducts, productsByStoreKey(payload.StoreID))
		for _, id := range payload.ProductIDs {
			keys = append(keys, productKey(id))
		}
	}
	return c.invalidate(ctx, event, keys)
}

func (c *CatalogCache) handleProductEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ProductPayload)
	if !ok {
		return errors.New("unexpected product event payload")
	}
	keys := []string{keyAllProducts, productKey(payload.ProductID), productsByStoreKey(payload.StoreID)}
	if payload.PreviousStoreID != "" && payload.PreviousStoreID != payload.StoreID {
		keys = append(keys, productsByStoreKey(payload.PreviousStoreID))
	}
	return c.invalidate(ctx, event, keys)
}

func (c *CatalogCache) invalidate(ctx context.Context, event events.Event, keys []string) error {
	// The write has already committed; a request timeout must not skip the eviction.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()

	if err := c.client.Delete(ctx, keys...); err != nil {
		return err
	}
	c.logger.Debug("catalog cache invalidated",
		zap.String("event_type", string(event.Type)),
		zap.Strings("keys", keys))
	return nil
}

// readThrough returns the cached value under key or calls fetch and caches its
// result. Cache failures are logged and fall back to fetch.
func readThrough[T any](ctx context.Context, c *CatalogCache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil || c.client == nil {
		return fetch(ctx)
	}

	var cached T
	err := cache.GetJSON(ctx, c.client, key, &cached)
	switch {
	case err == nil:
		c.record(true)
		return cached, nil
	case !errors.Is(err, cache.ErrNotFound):
		c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	c.record(false)

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}
	if err := cache.SetJSON(ctx, c.client, key, value, c.ttl); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

func (c *CatalogCache) record(hit bool) {
	if c.recorder != nil {
		c.recorder.RecordCacheLookup(hit)
	}
}

// publish sends event through the dispatcher, if any.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, event)
}
