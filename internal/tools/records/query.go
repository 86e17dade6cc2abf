package records

import (
	"time"

	"google.golang.org/adk/tool"

	"atlas/internal/domain/order"
	"atlas/internal/domain/product"
	"atlas/internal/domain/supplier"
	"atlas/internal/metrics"
	"atlas/internal/tools/shared"
	"atlas/pkg/errors"
)

// NewDBAccessTool reads records from a collection. Queries are read-only
// and results are cached briefly in Redis when a cache is wired.
func NewDBAccessTool(deps shared.Deps) (tool.Tool, error) {
	return shared.NewToolBuilder(
		"db_access",
		"Query records from a collection. Args: collection (products|suppliers|orders), "+
			"query (optional filter object, supports $eq/$ne/$lt/$lte/$gt/$gte/$contains/$regex operators), limit (optional).",
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			collection, ok := shared.StringArg(args, "collection")
			if !ok {
				return nil, errors.Wrap(errors.ErrInvalidInput, "collection is required")
			}
			if !validCollection(collection) {
				return nil, invalidCollectionErr(collection)
			}

			filter, _ := shared.MapArgAny(args, "query", "filter")
			limit := shared.IntArg(args, "limit", 0)

			var cacheKey string
			if deps.HasCache() {
				cacheKey = queryCacheKey(ctx, deps.Cache, collection, filter, limit)

				var cached map[string]interface{}
				if err := deps.Cache.Get(ctx, cacheKey, &cached); err == nil {
					metrics.RecordCacheLookup("hit")
					return cached, nil
				}
				metrics.RecordCacheLookup("miss")
			}

			records, err := findRecords(ctx, deps, collection, filter, limit)
			if err != nil {
				return nil, err
			}

			result := shared.OK(map[string]interface{}{
				"collection": collection,
				"count":      len(records),
				"records":    records,
			})

			if cacheKey != "" {
				if err := deps.Cache.Set(ctx, cacheKey, result, deps.QueryCacheTTL); err != nil {
					deps.Log.Warnf("Failed to cache db_access result: %v", err)
				}
			}

			return result, nil
		},
		deps,
	).
		WithTimeout(10 * time.Second).
		WithRetry(2, 300*time.Millisecond).
		WithMetrics().
		Build()
}

func findRecords(ctx tool.Context, deps shared.Deps, collection string, filter map[string]interface{}, limit int) ([]map[string]interface{}, error) {
	if !deps.HasRecordServices() {
		return nil, errors.Wrap(errors.ErrUnavailable, "record services not configured")
	}

	switch collection {
	case CollectionProducts:
		results, err := deps.Products.Find(ctx, product.Filter(filter), limit)
		if err != nil {
			return nil, err
		}
		return toRecords(results)
	case CollectionSuppliers:
		results, err := deps.Suppliers.Find(ctx, supplier.Filter(filter), limit)
		if err != nil {
			return nil, err
		}
		return toRecords(results)
	case CollectionOrders:
		results, err := deps.Orders.Find(ctx, order.Filter(filter), limit)
		if err != nil {
			return nil, err
		}
		return toRecords(results)
	}

	return nil, invalidCollectionErr(collection)
}
