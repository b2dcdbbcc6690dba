package worker

import (
	"github.com/spec-kit/inventory-service/internal/service"
)

// StartCacheInvalidator registers the catalog cache invalidation handlers on
// the event dispatcher. Handlers run synchronously inside Publish, so a write
// has cleared stale entries before its response is sent.
func StartCacheInvalidator(catalog *service.CatalogCache) {
	if catalog == nil {
		return
	}
	catalog.RegisterHandlers()
}
