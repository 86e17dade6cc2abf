package records

import (
	"time"

	"google.golang.org/adk/tool"

	"atlas/internal/domain/order"
	"atlas/internal/domain/product"
	"atlas/internal/domain/supplier"
	"atlas/internal/tools/shared"
	"atlas/pkg/errors"
)

// NewDBDeleteTool deletes records matching a filter. An empty filter is
// rejected; wiping a whole collection must not be one malformed tool
// call away.
func NewDBDeleteTool(deps shared.Deps) (tool.Tool, error) {
	return shared.NewToolBuilder(
		"db_delete",
		"Delete records from a collection. Args: collection (products|suppliers|orders), "+
			"filter_query (object selecting the records to delete, required).",
		func(ctx tool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			collection, ok := shared.StringArg(args, "collection")
			if !ok {
				return nil, errors.Wrap(errors.ErrInvalidInput, "collection is required")
			}
			if !validCollection(collection) {
				return nil, invalidCollectionErr(collection)
			}

			filter, ok := shared.MapArgAny(args, "filter_query", "filter")
			if !ok || len(filter) == 0 {
				return nil, errors.Wrap(errors.ErrInvalidInput, "filter_query is required")
			}

			deleted, err := deleteRecords(ctx, deps, collection, filter)
			if err != nil {
				return nil, err
			}

			bumpCollectionVersion(ctx, deps.Cache, collection)

			return shared.OK(map[string]interface{}{
				"collection": collection,
				"deleted":    deleted,
			}), nil
		},
		deps,
	).
		WithTimeout(10 * time.Second).
		WithMetrics().
		Build()
}

func deleteRecords(ctx tool.Context, deps shared.Deps, collection string, filter map[string]interface{}) (int64, error) {
	if !deps.HasRecordServices() {
		return 0, errors.Wrap(errors.ErrUnavailable, "record services not configured")
	}

	switch collection {
	case CollectionProducts:
		return deps.Products.Delete(ctx, product.Filter(filter))
	case CollectionSuppliers:
		return deps.Suppliers.Delete(ctx, supplier.Filter(filter))
	case CollectionOrders:
		return deps.Orders.Delete(ctx, order.Filter(filter))
	}

	return 0, invalidCollectionErr(collection)
}
