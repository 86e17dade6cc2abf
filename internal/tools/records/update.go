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

// NewDBUpdateTool updates records matching a filter. Matching nothing is
// reported as not_found so the model can tell the user instead of
// assuming success.
func NewDBUpdateTool(deps shared.Deps) (tool.Tool, error) {
	return shared.NewToolBuilder(
		"db_update",
		"Update records in a collection. Args: collection (products|suppliers|orders), "+
			"filter_query (object selecting records), update_data (object with replacement field values).",
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

			changes, ok := shared.MapArgAny(args, "update_data", "update")
			if !ok || len(changes) == 0 {
				return nil, errors.Wrap(errors.ErrInvalidInput, "update_data is required")
			}

			matched, err := updateRecords(ctx, deps, collection, filter, changes)
			if err != nil {
				return nil, err
			}

			bumpCollectionVersion(ctx, deps.Cache, collection)

			return shared.OK(map[string]interface{}{
				"collection": collection,
				"matched":    matched,
			}), nil
		},
		deps,
	).
		WithTimeout(10 * time.Second).
		WithMetrics().
		Build()
}

func updateRecords(ctx tool.Context, deps shared.Deps, collection string, filter, changes map[string]interface{}) (int64, error) {
	if !deps.HasRecordServices() {
		return 0, errors.Wrap(errors.ErrUnavailable, "record services not configured")
	}

	switch collection {
	case CollectionProducts:
		return deps.Products.Update(ctx, product.Filter(filter), product.Changes(changes))
	case CollectionSuppliers:
		return deps.Suppliers.Update(ctx, supplier.Filter(filter), supplier.Changes(changes))
	case CollectionOrders:
		return deps.Orders.Update(ctx, order.Filter(filter), order.Changes(changes))
	}

	return 0, invalidCollectionErr(collection)
}
