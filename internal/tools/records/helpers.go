package records

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"atlas/internal/tools/shared"
	"atlas/pkg/errors"
)

// Collections exposed to the agent
const (
	CollectionProducts  = "products"
	CollectionSuppliers = "suppliers"
	CollectionOrders    = "orders"
)

func validCollection(name string) bool {
	switch name {
	case CollectionProducts, CollectionSuppliers, CollectionOrders:
		return true
	}
	return false
}

func invalidCollectionErr(name string) error {
	return errors.Wrapf(errors.ErrInvalidCollection,
		"%q (known collections: %s, %s, %s)",
		name, CollectionProducts, CollectionSuppliers, CollectionOrders)
}

// toRecords converts domain entities to generic records through their
// JSON representation, so tool output uses the same field names the
// agent uses in filters.
func toRecords(v interface{}) ([]map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode records")
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "decode records")
	}

	return records, nil
}

// toRecord converts a single entity to a generic record.
func toRecord(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode record")
	}

	var record map[string]interface{}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "decode record")
	}

	return record, nil
}

// queryCacheKey builds a cache key for a read, namespaced by a
// per-collection version so writes invalidate prior reads.
func queryCacheKey(ctx context.Context, cache shared.CacheClient, collection string, filter map[string]interface{}, limit int) string {
	version := collectionVersion(ctx, cache, collection)

	payload, _ := json.Marshal(map[string]interface{}{
		"filter": filter,
		"limit":  limit,
	})
	digest := sha256.Sum256(payload)

	return fmt.Sprintf("records:q:%s:%s:%x", collection, version, digest[:8])
}

func versionKey(collection string) string {
	return "records:ver:" + collection
}

func collectionVersion(ctx context.Context, cache shared.CacheClient, collection string) string {
	var version string
	if err := cache.Get(ctx, versionKey(collection), &version); err != nil {
		return "0"
	}
	return version
}

// bumpCollectionVersion invalidates cached reads for a collection after
// a write. Failures are ignored; a stale cache entry expires on its own.
func bumpCollectionVersion(ctx context.Context, cache shared.CacheClient, collection string) {
	if cache == nil {
		return
	}
	_ = cache.Set(ctx, versionKey(collection), fmt.Sprintf("%d", time.Now().UnixNano()), 0)
}
